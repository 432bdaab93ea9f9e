package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/introspection"
)

// FileConfig configures a FileStore.
type FileConfig struct {
	Dir    string
	Perm   os.FileMode
	Logger *slog.Logger
	// ErrorHandler receives runtime watcher failures.
	ErrorHandler func(error)
}

// FileStore stores each key in its own file inside Dir.
type FileStore struct {
	config FileConfig

	mu       sync.Mutex
	watchers int
	writes   int64
}

// NewFileStore returns a FileStore rooted at config.Dir. The directory is
// created on first write.
func NewFileStore(config FileConfig) *FileStore {
	if config.Perm == 0 {
		config.Perm = 0o600
	}
	return &FileStore{config: config}
}

// Path returns the file backing key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.config.Dir, key)
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.config.Dir, 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.config.Dir, err)
	}
	if err := writeFileAtomic(s.Path(key), value, s.config.Perm); err != nil {
		return err
	}

	s.mu.Lock()
	s.writes++
	s.mu.Unlock()

	if s.config.Logger != nil {
		s.config.Logger.Debug("kv set", "key", key, "bytes", len(value))
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	err := os.Remove(s.Path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	if s.config.Logger != nil {
		s.config.Logger.Debug("kv delete", "key", key)
	}
	return nil
}

func (s *FileStore) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if active {
		s.watchers++
	} else if s.watchers > 0 {
		s.watchers--
	}
}

// FileStoreState is the introspection snapshot of a FileStore.
type FileStoreState struct {
	Dir            string `json:"dir"`
	ActiveWatchers int    `json:"active_watchers"`
	Writes         int64  `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *FileStore) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FileStoreState{
		Dir:            s.config.Dir,
		ActiveWatchers: s.watchers,
		Writes:         s.writes,
	}
}

// ComponentType implements introspection.Component.
func (s *FileStore) ComponentType() string {
	return "kv-file"
}

var (
	_ Store                        = (*FileStore)(nil)
	_ Watchable                    = (*FileStore)(nil)
	_ introspection.Introspectable = (*FileStore)(nil)
	_ introspection.Component      = (*FileStore)(nil)
)
