package storage

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yourname/moveup/internal"
)

type sampleRecord struct {
	ID        string `gorm:"primaryKey"`
	MetricID  int    `gorm:"index:idx_metric_start"`
	Value     float64
	Stage     string
	Source    string
	StartTime time.Time `gorm:"index:idx_metric_start"`
	EndTime   time.Time
}

func (sampleRecord) TableName() string { return "health_samples" }

type SQLiteSampleStorage struct {
	db     *gorm.DB
	logger internal.Logger
}

func NewSQLiteSampleStorage(path string, logger internal.Logger) (*SQLiteSampleStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Errorf("failed to open sqlite database: %v", err)
		return nil, err
	}
	if err := db.AutoMigrate(&sampleRecord{}); err != nil {
		logger.Errorf("failed to migrate sample schema: %v", err)
		return nil, err
	}
	return &SQLiteSampleStorage{db: db, logger: logger}, nil
}

func (s *SQLiteSampleStorage) SaveSample(ctx context.Context, sample *internal.RawSample) error {
	rec := sampleRecord{
		ID:        sample.ID,
		MetricID:  sample.MetricID,
		Value:     sample.Value,
		Stage:     string(sample.Stage),
		Source:    sample.Source,
		StartTime: sample.StartTime,
		EndTime:   sample.EndTime,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		s.logger.Errorf("failed to insert sample: %v", err)
		return err
	}
	return nil
}

func (s *SQLiteSampleStorage) QuerySamples(ctx context.Context, metricID int, start, end time.Time) ([]internal.RawSample, error) {
	var records []sampleRecord
	err := s.db.WithContext(ctx).
		Where("metric_id = ? AND start_time >= ? AND start_time < ?", metricID, start, end).
		Order("start_time DESC").
		Find(&records).Error
	if err != nil {
		s.logger.Errorf("failed to query samples: %v", err)
		return nil, err
	}

	samples := make([]internal.RawSample, len(records))
	for i, rec := range records {
		samples[i] = internal.RawSample{
			ID:        rec.ID,
			MetricID:  rec.MetricID,
			Value:     rec.Value,
			Stage:     internal.SleepStage(rec.Stage),
			Source:    rec.Source,
			StartTime: rec.StartTime,
			EndTime:   rec.EndTime,
		}
	}
	return samples, nil
}

func (s *SQLiteSampleStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ SampleRepository = (*SQLiteSampleStorage)(nil)
