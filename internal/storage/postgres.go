package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/moveup/internal"
)

type PostgresSampleStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresSampleStorage(dsn string, logger internal.Logger) (*PostgresSampleStorage, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresSampleStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresSampleStorage) SaveSample(ctx context.Context, sample *internal.RawSample) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO health_samples (id, metric_id, value, stage, source, start_time, end_time) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sample.ID, sample.MetricID, sample.Value, string(sample.Stage), sample.Source, sample.StartTime, sample.EndTime)
	if err != nil {
		p.logger.Errorf("failed to insert sample: %v", err)
		return err
	}
	return nil
}

func (p *PostgresSampleStorage) QuerySamples(ctx context.Context, metricID int, start, end time.Time) ([]internal.RawSample, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, metric_id, value, stage, source, start_time, end_time FROM health_samples WHERE metric_id = $1 AND start_time >= $2 AND start_time < $3 ORDER BY start_time DESC`,
		metricID, start, end)
	if err != nil {
		p.logger.Errorf("failed to query samples: %v", err)
		return nil, err
	}
	defer rows.Close()

	var samples []internal.RawSample
	for rows.Next() {
		var s internal.RawSample
		var stage string
		if err := rows.Scan(&s.ID, &s.MetricID, &s.Value, &stage, &s.Source, &s.StartTime, &s.EndTime); err != nil {
			p.logger.Errorf("failed to scan sample: %v", err)
			return nil, err
		}
		s.Stage = internal.SleepStage(stage)
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

func (p *PostgresSampleStorage) Close() error {
	p.pool.Close()
	return nil
}

var _ SampleRepository = (*PostgresSampleStorage)(nil)
