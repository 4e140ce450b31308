//go:build !unix

package storage

import (
	"fmt"
	"os"
)

// lockFile only creates the lock file on platforms without flock. Writes
// are still atomic through the rename, but concurrent writers are not
// serialized.
func lockFile(path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	return f.Close, nil
}
