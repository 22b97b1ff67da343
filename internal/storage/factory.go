package storage

import (
	"fmt"

	"github.com/yourname/moveup/internal"
	"github.com/yourname/moveup/internal/config"
)

// NewSampleRepository picks the sample backend selected by configuration.
func NewSampleRepository(cfg *config.Config, logger internal.Logger) (SampleRepository, error) {
	switch cfg.SampleStore {
	case "file":
		return NewFileSampleStorage(cfg.SamplesFile, logger)
	case "sqlite":
		return NewSQLiteSampleStorage(cfg.SQLitePath, logger)
	case "postgres":
		return NewPostgresSampleStorage(cfg.PostgresDSN, logger)
	default:
		return nil, fmt.Errorf("storage: unknown sample store %q", cfg.SampleStore)
	}
}
