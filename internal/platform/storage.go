package platform

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/notekeep/pkg/kv"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore opens the local key-value store for backend inside dir. The
// returned closer releases backend resources.
func OpenStore(backend, dir string, logger *slog.Logger) (kv.Store, io.Closer, error) {
	switch backend {
	case "", BackendFile:
		return kv.NewFileStore(kv.FileConfig{Dir: dir, Logger: logger}), nopCloser{}, nil
	case BackendSQLite:
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
		s, err := kv.OpenSQLite(filepath.Join(dir, "notekeep.db"))
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case BackendMemory:
		return kv.NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
