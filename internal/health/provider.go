package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourname/moveup/internal"
	"github.com/yourname/moveup/internal/storage"
)

var (
	// ErrNoData means the query window contained no samples. Callers treat
	// it as "nothing to report", never as a failure requiring retry.
	ErrNoData = errors.New("health: no data available for this metric")

	// ErrNotAvailable means the metric is not supported by this provider.
	ErrNotAvailable = errors.New("health: metric type is unavailable")

	// ErrPermissionDenied means read access was never granted.
	ErrPermissionDenied = errors.New("health: read access not authorized")
)

// SleepSummary is the result of categorical sleep aggregation: total asleep
// duration in hours plus the count of awake intervals.
type SleepSummary struct {
	Hours      float64
	Awakenings int
}

// Provider answers point-in-time and range-bounded aggregate queries for a
// fixed metric set. Windows are [start, end).
type Provider interface {
	RequestAuthorization(ctx context.Context) error
	QueryAggregate(ctx context.Context, metric Metric, stat Statistic, start, end time.Time) (float64, error)
	QuerySleep(ctx context.Context, start, end time.Time) (*SleepSummary, error)
}

// StoreProvider aggregates over the local sample repository. Distance is
// stored in meters and converted to kilometers here, once, at the boundary.
type StoreProvider struct {
	samples    storage.SampleRepository
	logger     internal.Logger
	authorized bool
}

func NewStoreProvider(samples storage.SampleRepository, logger internal.Logger) *StoreProvider {
	return &StoreProvider{samples: samples, logger: logger}
}

// RequestAuthorization grants read access to the fixed metric set. Queries
// issued before authorization fail with ErrPermissionDenied.
func (p *StoreProvider) RequestAuthorization(ctx context.Context) error {
	p.authorized = true
	return nil
}

func (p *StoreProvider) QueryAggregate(ctx context.Context, metric Metric, stat Statistic, start, end time.Time) (float64, error) {
	if !p.authorized {
		return 0, ErrPermissionDenied
	}
	if metric == MetricSleepHours {
		summary, err := p.QuerySleep(ctx, start, end)
		if err != nil {
			return 0, err
		}
		return summary.Hours, nil
	}
	switch metric {
	case MetricSteps, MetricCalories, MetricRestingHeartRate, MetricExerciseMinutes, MetricDistanceKm:
	default:
		return 0, fmt.Errorf("%w: %s", ErrNotAvailable, metric)
	}

	samples, err := p.samples.QuerySamples(ctx, int(metric), start, end)
	if err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoData, metric)
	}

	var total float64
	for _, s := range samples {
		total += s.Value
	}

	var result float64
	switch stat {
	case StatisticSum:
		result = total
	case StatisticAverage:
		result = total / float64(len(samples))
	default:
		return 0, fmt.Errorf("health: unsupported statistic %d", stat)
	}

	if metric == MetricDistanceKm {
		result /= 1000.0
	}
	return result, nil
}

// QuerySleep aggregates categorical sleep samples: only platform-sourced
// samples count, asleep sub-states (REM, core, deep) contribute their
// duration, awake intervals are tallied without adding time.
func (p *StoreProvider) QuerySleep(ctx context.Context, start, end time.Time) (*SleepSummary, error) {
	if !p.authorized {
		return nil, ErrPermissionDenied
	}
	samples, err := p.samples.QuerySamples(ctx, int(MetricSleepHours), start, end)
	if err != nil {
		return nil, err
	}

	var asleep time.Duration
	awakenings := 0
	seen := false
	for _, s := range samples {
		if s.Source != internal.SourcePlatform {
			continue
		}
		seen = true
		duration := s.EndTime.Sub(s.StartTime)
		switch s.Stage {
		case internal.SleepStageREM, internal.SleepStageCore, internal.SleepStageDeep:
			asleep += duration
		case internal.SleepStageAwake:
			awakenings++
		}
	}
	if !seen {
		return nil, fmt.Errorf("%w: %s", ErrNoData, MetricSleepHours)
	}
	return &SleepSummary{Hours: asleep.Hours(), Awakenings: awakenings}, nil
}

var _ Provider = (*StoreProvider)(nil)
