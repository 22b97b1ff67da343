package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourname/moveup/internal/health"
)

func newBenchmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Demographic benchmarks",
	}
	cmd.AddCommand(newBenchmarkListCmd(), newBenchmarkCreateCmd())
	return cmd
}

func newBenchmarkListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your benchmarks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}
			a.state.RefreshBenchmarks(cmd.Context())
			for _, b := range a.state.Benchmarks() {
				fmt.Printf("%s  metric %d (%s, %s, %s): you %.1f, average %.1f, recommended %.1f\n",
					b.CreatedAt.Format("2006-01-02"), b.DataTypeID, b.AgeRange, b.Gender, b.LocationName,
					b.UserDataValue, b.AverageValue, b.RecommendedValue)
			}
			return nil
		},
	}
}

func newBenchmarkCreateCmd() *cobra.Command {
	var metricName, gender string
	var minAge, maxAge, locationID int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Benchmark your weekly average against demographic peers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}
			metric, err := health.MetricFromName(metricName)
			if err != nil {
				return err
			}
			if err := a.state.CreateBenchmark(cmd.Context(), metric, minAge, maxAge, gender, locationID); err != nil {
				return err
			}
			fmt.Println("Benchmark created")
			a.state.RefreshBenchmarks(cmd.Context())
			return nil
		},
	}

	cmd.Flags().StringVar(&metricName, "metric", "steps", "Metric to benchmark")
	cmd.Flags().IntVar(&minAge, "min-age", 0, "Lower bound of the age range")
	cmd.Flags().IntVar(&maxAge, "max-age", 0, "Upper bound of the age range")
	cmd.Flags().StringVar(&gender, "gender", "", "Demographic gender bucket")
	cmd.Flags().IntVar(&locationID, "location", 0, "Location id")
	return cmd
}
