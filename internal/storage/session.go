package storage

import (
	"context"
	"encoding/json"
	"os"

	"github.com/yourname/moveup/internal"
)

// FileSessionStorage persists the two identity fields under stable keys in
// a small JSON file. Presence of both at load time means the process starts
// authenticated.
type FileSessionStorage struct {
	filePath string
	logger   internal.Logger
}

func NewFileSessionStorage(filePath string, logger internal.Logger) *FileSessionStorage {
	return &FileSessionStorage{filePath: filePath, logger: logger}
}

func (s *FileSessionStorage) Save(ctx context.Context, session *internal.Session) error {
	return atomicWriteFileJSON(s.filePath, session)
}

func (s *FileSessionStorage) Load(ctx context.Context) (*internal.Session, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var session internal.Session
	if err := json.Unmarshal(data, &session); err != nil {
		s.logger.Warnf("discarding corrupt session file: %v", err)
		return nil, nil
	}
	if session.UserID == "" || session.WalletAddress == "" {
		return nil, nil
	}
	return &session, nil
}

func (s *FileSessionStorage) Clear(ctx context.Context) error {
	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var _ SessionRepository = (*FileSessionStorage)(nil)
