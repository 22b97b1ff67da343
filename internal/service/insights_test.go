package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yourname/moveup/internal"
)

func ptr(v float64) *float64 { return &v }

func TestMonthWindows(t *testing.T) {
	now := time.Date(2025, 4, 18, 15, 30, 0, 0, time.UTC)
	curStart, curEnd, prevStart, prevEnd := MonthWindows(now)

	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), curStart)
	assert.Equal(t, now, curEnd)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), prevStart)
	assert.Equal(t, curStart, prevEnd)
}

func TestMonthWindows_JanuaryWrapsToDecember(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	_, _, prevStart, prevEnd := MonthWindows(now)

	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), prevStart)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), prevEnd)
}

func TestHeartRateInsight(t *testing.T) {
	improved := HeartRateInsight(ptr(68), ptr(62))
	assert.True(t, improved.Positive)
	assert.Equal(t, "Your resting heart rate has improved by 6 bpm over the past month. Keep up the good work!", improved.Text)

	worsened := HeartRateInsight(ptr(60), ptr(65))
	assert.False(t, worsened.Positive)
	assert.Equal(t, "Your resting heart rate increased by 5 bpm compared to last month. Let's focus on improving it!", worsened.Text)

	missing := HeartRateInsight(nil, ptr(62))
	assert.True(t, missing.Positive)
	assert.Equal(t, "Insufficient data for resting heart rate insights.", missing.Text)
}

func TestCaloriesInsight(t *testing.T) {
	improved := CaloriesInsight(ptr(9000), ptr(10500))
	assert.True(t, improved.Positive)
	assert.Equal(t, "You’ve burned 1500 more calories this month than last month. Great job!", improved.Text)

	worsened := CaloriesInsight(ptr(10500), ptr(9000))
	assert.False(t, worsened.Positive)
	assert.Equal(t, "You’ve burned 1500 fewer calories this month compared to last. Let’s aim higher!", worsened.Text)

	missing := CaloriesInsight(ptr(9000), nil)
	assert.True(t, missing.Positive)
	assert.Equal(t, "Insufficient data for calorie insights.", missing.Text)
}

func TestChallengeActive(t *testing.T) {
	now := time.Now()
	active := internal.Challenge{EndDate: now.Add(24 * time.Hour)}
	ended := internal.Challenge{EndDate: now.Add(-time.Minute)}

	assert.True(t, ChallengeActive(active, now))
	assert.False(t, ChallengeActive(ended, now))
}

func TestProgressFraction_Clamps(t *testing.T) {
	assert.Equal(t, 0.75, ProgressFraction(75000, 100000))
	assert.Equal(t, 1.0, ProgressFraction(120000, 100000))
	assert.Equal(t, 0.0, ProgressFraction(-10, 100000))
	assert.Equal(t, 0.0, ProgressFraction(50, 0))
}

func TestProgressRemaining(t *testing.T) {
	assert.Equal(t, 25000.0, ProgressRemaining(75000, 100000))
	assert.Equal(t, 0.0, ProgressRemaining(120000, 100000))
}
