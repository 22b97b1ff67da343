package root

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourname/moveup/internal/health"
	"github.com/yourname/moveup/internal/service"
)

func newInsightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Month-over-month quick insights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			curStart, curEnd, prevStart, prevEnd := service.MonthWindows(now)

			heartRate := service.HeartRateInsight(
				monthValue(cmd, health.MetricRestingHeartRate, health.StatisticAverage, prevStart, prevEnd),
				monthValue(cmd, health.MetricRestingHeartRate, health.StatisticAverage, curStart, curEnd),
			)
			calories := service.CaloriesInsight(
				monthValue(cmd, health.MetricCalories, health.StatisticSum, prevStart, prevEnd),
				monthValue(cmd, health.MetricCalories, health.StatisticSum, curStart, curEnd),
			)

			fmt.Println(marker(heartRate.Positive), heartRate.Text)
			fmt.Println(marker(calories.Positive), calories.Text)
			return nil
		},
	}
}

// monthValue folds "no data" into nil so the insight renders its
// insufficient-data fallback.
func monthValue(cmd *cobra.Command, metric health.Metric, stat health.Statistic, start, end time.Time) *float64 {
	value, err := a.provider.QueryAggregate(cmd.Context(), metric, stat, start, end)
	if err != nil {
		if !errors.Is(err, health.ErrNoData) {
			a.logger.Warnf("failed to read %s: %v", metric, err)
		}
		return nil
	}
	return &value
}

func marker(positive bool) string {
	if positive {
		return "+"
	}
	return "-"
}
