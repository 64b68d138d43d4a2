// Package cache provides a write-once cache of raw service responses on
// local disk.
package cache

import (
	"errors"
	"os"
	"path/filepath"
)

// Disk stores entries as files under a root directory. Entries never
// expire and are never invalidated; a stale entry persists until it is
// removed by hand. Concurrent writers to one key race with last writer
// wins. It is not otherwise thread safe.
type Disk struct {
	root string
}

// NewDisk creates a Disk cache rooted at the given directory. The root
// must be non-empty; it is created lazily on first Put.
func NewDisk(root string) (*Disk, error) {
	if root == "" {
		return nil, errors.New("cache root must not be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Disk{root: abs}, nil
}

// Path returns the file that backs key. The key is a slash-separated
// relative path.
func (c *Disk) Path(key string) string {
	return filepath.Join(c.root, filepath.FromSlash(key))
}

// Get retrieves the body cached under key. ok is false if the key has
// never been written.
func (c *Disk) Get(key string) (body []byte, ok bool) {
	body, err := os.ReadFile(c.Path(key))
	if err != nil {
		return nil, false
	}
	return body, true
}

// Put writes body verbatim under key, creating parent directories as
// needed.
func (c *Disk) Put(key string, body []byte) error {
	path := c.Path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o644)
}
