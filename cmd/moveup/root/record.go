package root

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yourname/moveup/internal"
	"github.com/yourname/moveup/internal/health"
)

func newRecordCmd() *cobra.Command {
	var (
		metricName string
		value      float64
		at         string
		stage      string
		duration   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a health sample in the local store",
		Long:  "Writes a single reading into the local sample store. Quantity metrics take --value (distance in meters); sleep takes --stage and --duration instead. Recorded samples are picked up by the next 'moveup sync'.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, err := health.MetricFromName(metricName)
			if err != nil {
				return err
			}

			start := time.Now()
			if at != "" {
				start, err = time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at timestamp: %w", err)
				}
			}

			sample := &internal.RawSample{
				ID:        uuid.NewString(),
				MetricID:  int(metric),
				Source:    internal.SourcePlatform,
				StartTime: start,
				EndTime:   start,
			}

			if metric == health.MetricSleepHours {
				sleepStage, err := parseSleepStage(stage)
				if err != nil {
					return err
				}
				if duration <= 0 {
					return fmt.Errorf("sleep samples need a positive --duration")
				}
				sample.Stage = sleepStage
				sample.EndTime = start.Add(duration)
			} else {
				if value <= 0 {
					return fmt.Errorf("%s samples need a positive --value", metric)
				}
				sample.Value = value
			}

			if err := a.samples.SaveSample(cmd.Context(), sample); err != nil {
				return fmt.Errorf("failed to save sample: %w", err)
			}
			fmt.Printf("Recorded %s sample %s\n", metric, sample.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&metricName, "metric", "m", "", "metric name (steps, calories, restingHeartRate, sleepHours, exerciseMinutes, distanceKm)")
	cmd.Flags().Float64VarP(&value, "value", "v", 0, "reading value for quantity metrics")
	cmd.Flags().StringVar(&at, "at", "", "sample time as RFC3339 (default now)")
	cmd.Flags().StringVar(&stage, "stage", "", "sleep stage (rem, core, deep, awake)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "sleep interval duration, e.g. 90m")
	_ = cmd.MarkFlagRequired("metric")

	return cmd
}

func parseSleepStage(name string) (internal.SleepStage, error) {
	switch internal.SleepStage(name) {
	case internal.SleepStageREM, internal.SleepStageCore, internal.SleepStageDeep, internal.SleepStageAwake:
		return internal.SleepStage(name), nil
	default:
		return "", fmt.Errorf("unknown sleep stage %q", name)
	}
}
