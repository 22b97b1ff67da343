package service

import (
	"fmt"
	"math"
	"time"
)

// Insight is a short month-over-month comparison message for the dashboard.
type Insight struct {
	Text     string
	Positive bool
}

// MonthWindows returns the current month-to-date window and the previous
// calendar month window, both [start, end).
func MonthWindows(now time.Time) (curStart, curEnd, prevStart, prevEnd time.Time) {
	curStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevStart = curStart.AddDate(0, -1, 0)
	return curStart, now, prevStart, curStart
}

// HeartRateInsight compares average resting heart rate across months; a
// drop is an improvement.
func HeartRateInsight(lastMonth, currentMonth *float64) Insight {
	if lastMonth == nil || currentMonth == nil {
		return Insight{Text: "Insufficient data for resting heart rate insights.", Positive: true}
	}
	difference := *currentMonth - *lastMonth
	if difference < 0 {
		return Insight{
			Text:     fmt.Sprintf("Your resting heart rate has improved by %d bpm over the past month. Keep up the good work!", int(math.Abs(difference))),
			Positive: true,
		}
	}
	return Insight{
		Text:     fmt.Sprintf("Your resting heart rate increased by %d bpm compared to last month. Let's focus on improving it!", int(difference)),
		Positive: false,
	}
}

// CaloriesInsight compares total calories burned across months; burning
// more is an improvement.
func CaloriesInsight(lastMonth, currentMonth *float64) Insight {
	if lastMonth == nil || currentMonth == nil {
		return Insight{Text: "Insufficient data for calorie insights.", Positive: true}
	}
	difference := *currentMonth - *lastMonth
	if difference > 0 {
		return Insight{
			Text:     fmt.Sprintf("You’ve burned %d more calories this month than last month. Great job!", int(difference)),
			Positive: true,
		}
	}
	return Insight{
		Text:     fmt.Sprintf("You’ve burned %d fewer calories this month compared to last. Let’s aim higher!", int(math.Abs(difference))),
		Positive: false,
	}
}
