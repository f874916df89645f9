// Package localcache is the lightweight device-local cache backing the cart
// and the session marker. It survives a restart but is not the durable
// store: losing it costs a cart, never a record.
package localcache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

var ErrNoEntry = errors.New("localcache: no entry")

type Cache struct {
	dir string
}

func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get decodes the entry for key into v. Missing entries return ErrNoEntry.
func (c *Cache) Get(key string, v any) error {
	b, err := os.ReadFile(c.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNoEntry
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Put writes atomically: temp file then rename, so a crash mid-write leaves
// either the old entry or the new one, never a torn file.
func (c *Cache) Put(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path(key))
}

// Delete removes the entry; deleting a missing key is a no-op.
func (c *Cache) Delete(key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
