package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

type fileKeyValueStore struct {
	dir string
}

// NewFileKeyValueStore stores each key as its own file in dir. Writes go to
// a temp file first and are renamed into place, so readers never observe a
// partial blob.
func NewFileKeyValueStore(dir string) (KeyValueStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("opening file store: directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("opening file store: creating directory: %w", err)
	}
	return &fileKeyValueStore{dir: dir}, nil
}

func (s *fileKeyValueStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

func (s *fileKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading key %s: %w", key, err)
	}
	return data, true, nil
}

func (s *fileKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	unlock, err := lockFile(filepath.Join(s.dir, ".lock"))
	if err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	defer func() { _ = unlock() }()

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("writing key %s: creating temp file: %w", key, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return fmt.Errorf("writing key %s: renaming: %w", key, err)
	}
	return nil
}

func (s *fileKeyValueStore) Close() error { return nil }
