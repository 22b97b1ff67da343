package health

import "fmt"

// Metric identifies one of the six tracked health data types. The numeric
// values match the backend's datatype ids.
type Metric int

const (
	MetricSteps            Metric = 1
	MetricCalories         Metric = 2
	MetricRestingHeartRate Metric = 3
	MetricSleepHours       Metric = 4
	MetricExerciseMinutes  Metric = 5
	MetricDistanceKm       Metric = 6
)

func AllMetrics() []Metric {
	return []Metric{
		MetricSteps,
		MetricCalories,
		MetricRestingHeartRate,
		MetricSleepHours,
		MetricExerciseMinutes,
		MetricDistanceKm,
	}
}

func (m Metric) String() string {
	switch m {
	case MetricSteps:
		return "steps"
	case MetricCalories:
		return "calories"
	case MetricRestingHeartRate:
		return "restingHeartRate"
	case MetricSleepHours:
		return "sleepHours"
	case MetricExerciseMinutes:
		return "exerciseMinutes"
	case MetricDistanceKm:
		return "distanceKm"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// Flow reports whether the metric accumulates over time (sum semantics).
// Discrete metrics like resting heart rate average their readings instead.
func (m Metric) Flow() bool {
	switch m {
	case MetricSteps, MetricCalories, MetricExerciseMinutes, MetricDistanceKm:
		return true
	default:
		return false
	}
}

// MetricFromName resolves a user-supplied metric name; unknown names fail
// fast rather than defaulting.
func MetricFromName(name string) (Metric, error) {
	for _, m := range AllMetrics() {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("health: unknown metric %q", name)
}

type Statistic int

const (
	StatisticSum Statistic = iota
	StatisticAverage
)
