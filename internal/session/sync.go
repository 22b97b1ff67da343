package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yourname/moveup/internal"
	"github.com/yourname/moveup/internal/backend"
	"github.com/yourname/moveup/internal/health"
)

// SyncHealthData runs the launch-time upload: for each of the six metrics,
// query today's value and upload it with the current local timestamp and
// zone offset. The six fetch-then-upload pairs are fully independent; one
// metric failing never blocks or cancels the others, and a metric with no
// data today is silently skipped.
func (s *State) SyncHealthData(ctx context.Context) {
	userID, _ := s.currentIdentity()
	if userID == "" {
		s.logger.Warn("not authenticated, skipping health data sync")
		return
	}

	now := time.Now()
	_, offsetSeconds := now.Zone()

	var wg sync.WaitGroup
	for _, metric := range health.AllMetrics() {
		wg.Add(1)
		go func(metric health.Metric) {
			defer wg.Done()

			value, err := health.DailySnapshot(ctx, s.provider, metric, now)
			if errors.Is(err, health.ErrNoData) {
				s.logger.Debugf("no %s data for today, skipping upload", metric)
				return
			}
			if err != nil {
				s.logger.Errorf("failed to read %s: %v", metric, err)
				return
			}

			sample := internal.HealthMetricSample{
				MetricID:              int(metric),
				Value:                 value,
				RecordedAt:            now,
				TimeZoneOffsetMinutes: offsetSeconds / 60,
			}
			if err := s.client.UploadHealthMetric(ctx, userID, sample); err != nil {
				s.logger.Errorf("failed to upload %s: %v", metric, err)
				return
			}
			s.logger.Infof("%s uploaded successfully", metric)
		}(metric)
	}
	wg.Wait()
}

// CanConvert reports whether the cached balances allow a points-to-tokens
// conversion. Unknown balances disable the action.
func (s *State) CanConvert() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userPoints != nil && s.pointsPerToken != nil && *s.userPoints >= *s.pointsPerToken
}

// ConvertPoints performs the conversion. The guard runs client-side: below
// the rate no network call is made. Both the success and failure messages
// come from the server verbatim; after a success the balances are
// re-fetched because conversion does not return them.
func (s *State) ConvertPoints(ctx context.Context) (string, error) {
	if !s.CanConvert() {
		return "", ErrInsufficientPoints
	}
	userID, _ := s.currentIdentity()

	message, err := s.client.ConvertPointsToTokens(ctx, userID)
	if err != nil {
		return "", err
	}
	s.RefreshBalances(ctx)
	return message, nil
}

// RefreshRewardHistory reloads one of the two ledgers, preserving server
// order.
func (s *State) RefreshRewardHistory(ctx context.Context, kind backend.RewardKind) {
	_, address := s.currentIdentity()
	if address == "" {
		return
	}
	switch kind {
	case backend.RewardPoints:
		history, err := s.client.FetchPointsHistory(ctx, address)
		if err != nil {
			s.logger.Errorf("failed to fetch points history: %v", err)
			return
		}
		s.mu.Lock()
		s.pointsHistory = history
		s.mu.Unlock()
	case backend.RewardTokens:
		history, err := s.client.FetchTokenHistory(ctx, address)
		if err != nil {
			s.logger.Errorf("failed to fetch token history: %v", err)
			return
		}
		s.mu.Lock()
		s.tokenHistory = history
		s.mu.Unlock()
	}
}

// CreateBenchmark reads the weekly average for the metric from the provider
// and asks the server to compute and persist the demographic comparison.
func (s *State) CreateBenchmark(ctx context.Context, metric health.Metric, minAge, maxAge int, gender string, locationID int) error {
	userID, _ := s.currentIdentity()
	if userID == "" {
		return errors.New("session: not authenticated")
	}

	const timeFrame = "week"
	value, err := health.TimeFrameAverage(ctx, s.provider, metric, timeFrame, time.Now())
	if err != nil {
		return err
	}

	return s.client.CreateBenchmark(ctx, backend.CreateBenchmarkRequest{
		UserID:     userID,
		DataValue:  value,
		DataTypeID: int(metric),
		MinAge:     minAge,
		MaxAge:     maxAge,
		TimeFrame:  timeFrame,
		Gender:     gender,
		LocationID: locationID,
	})
}
