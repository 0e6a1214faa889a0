package users

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"
)

// FileStore persists the user list as a JSON array in a single file,
// read fully and rewritten fully on every mutation.
type FileStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Load(ctx context.Context) []User {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		s.logger.Error("read store file", zap.String("path", s.path), zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var list []User
	if err := json.Unmarshal(data, &list); err != nil {
		s.logger.Error("decode store file", zap.String("path", s.path), zap.Error(err))
		return nil
	}
	return list
}

func (s *FileStore) Save(ctx context.Context, users []User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
