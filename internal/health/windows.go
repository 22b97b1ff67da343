package health

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DailySnapshot answers "what is today's value" for a metric using the
// [startOfLocalDay, now) window. Flow metrics sum, discrete metrics use the
// provider's native average.
func DailySnapshot(ctx context.Context, p Provider, metric Metric, now time.Time) (float64, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stat := StatisticAverage
	if metric.Flow() {
		stat = StatisticSum
	}
	return p.QueryAggregate(ctx, metric, stat, startOfDay, now)
}

// TimeFrameAverage computes the per-day average for a metric over a named
// timeframe. Only "week" is supported; anything else fails fast rather than
// silently defaulting.
//
// Flow metrics divide the cumulative sum by elapsed whole days, not by a
// fixed 7. Resting heart rate uses the native average directly. Sleep
// reports total asleep hours over the window.
func TimeFrameAverage(ctx context.Context, p Provider, metric Metric, timeFrame string, now time.Time) (float64, error) {
	var start time.Time
	switch strings.ToLower(timeFrame) {
	case "week":
		start = now.AddDate(0, 0, -7)
	default:
		return 0, fmt.Errorf("health: unsupported timeframe %q", timeFrame)
	}

	if metric == MetricSleepHours {
		summary, err := p.QuerySleep(ctx, start, now)
		if err != nil {
			return 0, err
		}
		return summary.Hours, nil
	}

	if !metric.Flow() {
		return p.QueryAggregate(ctx, metric, StatisticAverage, start, now)
	}

	sum, err := p.QueryAggregate(ctx, metric, StatisticSum, start, now)
	if err != nil {
		return 0, err
	}
	days := int(now.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return sum / float64(days), nil
}
