package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/valter-silva-au/today/pkg/models"
)

// KeyValueStore is the durable store the task blob lives in. Values are
// opaque bytes addressed by a key.
type KeyValueStore interface {
	// Get returns the value for key. A missing key is reported as
	// found == false with a nil error.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// OpenKeyValueStore opens the backend named by cfg.Backend. Relative
// storage paths are resolved against basePath.
func OpenKeyValueStore(cfg models.StorageConfig, basePath string) (KeyValueStore, error) {
	dir := cfg.Path
	if dir == "" {
		dir = "data"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(basePath, dir)
	}

	switch cfg.Backend {
	case "", models.BackendFile:
		return NewFileKeyValueStore(dir)
	case models.BackendSQLite:
		return NewSQLiteKeyValueStore(filepath.Join(dir, "today.db"))
	case models.BackendBolt:
		return NewBoltKeyValueStore(filepath.Join(dir, "today.bolt"))
	case models.BackendMemory:
		return NewMemoryKeyValueStore(), nil
	default:
		return nil, fmt.Errorf("opening storage: unknown backend %q", cfg.Backend)
	}
}
