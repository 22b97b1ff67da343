package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/yourname/moveup/internal"
)

// FileSampleStorage keeps all samples in memory, indexed per metric and
// sorted descending by start time, with debounced JSON persistence.
type FileSampleStorage struct {
	samples     map[string]*internal.RawSample   // id -> sample
	metricIndex map[int][]*internal.RawSample    // metricID -> descending by StartTime
	mu          sync.RWMutex
	filePath    string
	saveChan    chan struct{}
	shutdown    chan struct{}
	saveDelay   time.Duration
	logger      internal.Logger
}

// NewFileSampleStorage loads the sample file (missing or empty is fine) and
// starts the save worker.
func NewFileSampleStorage(filePath string, logger internal.Logger) (*FileSampleStorage, error) {
	s := &FileSampleStorage{
		samples:     make(map[string]*internal.RawSample),
		metricIndex: make(map[int][]*internal.RawSample),
		filePath:    filePath,
		saveChan:    make(chan struct{}, 1),
		shutdown:    make(chan struct{}),
		saveDelay:   500 * time.Millisecond,
		logger:      logger,
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("storage: failed to load samples: %w", err)
	}
	go s.saveWorker()
	return s, nil
}

func (s *FileSampleStorage) load() error {
	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var samples []*internal.RawSample
	if err := json.NewDecoder(file).Decode(&samples); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sample := range samples {
		s.samples[sample.ID] = sample
		s.metricIndex[sample.MetricID] = append(s.metricIndex[sample.MetricID], sample)
	}
	for metricID := range s.metricIndex {
		idx := s.metricIndex[metricID]
		sort.Slice(idx, func(i, j int) bool {
			return idx[i].StartTime.After(idx[j].StartTime)
		})
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}
	return os.Rename(tempFile, filePath)
}

func (s *FileSampleStorage) save() error {
	s.mu.RLock()
	samples := make([]*internal.RawSample, 0, len(s.samples))
	for _, sample := range s.samples {
		samples = append(samples, sample)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.filePath, samples)
}

// saveWorker batches writes to avoid hitting the disk on every sample.
func (s *FileSampleStorage) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.save(); err != nil {
				s.logger.Errorf("storage: error saving samples: %v", err)
			}
		case <-s.shutdown:
			return
		}
	}
}

func (s *FileSampleStorage) SaveSample(ctx context.Context, sample *internal.RawSample) error {
	s.mu.Lock()
	if old, ok := s.samples[sample.ID]; ok {
		s.removeFromIndex(old)
	}
	s.samples[sample.ID] = sample

	// Insert into the metric index keeping descending order.
	idx := s.metricIndex[sample.MetricID]
	inserted := false
	for i, existing := range idx {
		if existing.StartTime.Before(sample.StartTime) {
			idx = append(idx[:i], append([]*internal.RawSample{sample}, idx[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		idx = append(idx, sample)
	}
	s.metricIndex[sample.MetricID] = idx
	s.mu.Unlock()

	select {
	case s.saveChan <- struct{}{}:
	default:
	}
	return nil
}

// removeFromIndex drops the old pointer when a sample id is overwritten, so
// the replaced reading never double-counts in aggregates. Caller holds mu.
func (s *FileSampleStorage) removeFromIndex(old *internal.RawSample) {
	idx := s.metricIndex[old.MetricID]
	for i, existing := range idx {
		if existing.ID == old.ID {
			s.metricIndex[old.MetricID] = append(idx[:i], idx[i+1:]...)
			return
		}
	}
}

func (s *FileSampleStorage) QuerySamples(ctx context.Context, metricID int, start, end time.Time) ([]internal.RawSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []internal.RawSample
	for _, sample := range s.metricIndex[metricID] {
		if sample.StartTime.Before(start) {
			break
		}
		if sample.StartTime.Before(end) {
			out = append(out, *sample)
		}
	}
	return out, nil
}

// Close stops the save worker and flushes pending samples synchronously.
func (s *FileSampleStorage) Close() error {
	close(s.shutdown)
	return s.save()
}

var _ SampleRepository = (*FileSampleStorage)(nil)
