package storage

import (
	"context"
	"time"

	"github.com/yourname/moveup/internal"
)

// SampleRepository is the local health sample store the provider aggregates
// over. Query windows are [start, end).
type SampleRepository interface {
	SaveSample(ctx context.Context, sample *internal.RawSample) error
	QuerySamples(ctx context.Context, metricID int, start, end time.Time) ([]internal.RawSample, error)
	Close() error
}

// SessionRepository persists the identity pair between launches. Load
// returns (nil, nil) when no session has been saved.
type SessionRepository interface {
	Save(ctx context.Context, session *internal.Session) error
	Load(ctx context.Context) (*internal.Session, error)
	Clear(ctx context.Context) error
}
