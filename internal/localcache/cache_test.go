package localcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCache_RoundTrip(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	type entry struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, c.Put("cart", entry{Name: "x", Count: 2}))

	var got entry
	require.NoError(t, c.Get("cart", &got))
	require.Equal(t, entry{Name: "x", Count: 2}, got)

	// Overwrite replaces the whole entry.
	require.NoError(t, c.Put("cart", entry{Name: "y", Count: 9}))
	require.NoError(t, c.Get("cart", &got))
	require.Equal(t, "y", got.Name)
}

func TestCache_MissingEntry(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	var v string
	require.ErrorIs(t, c.Get("session", &v), ErrNoEntry)
}

func TestCache_DeleteIdempotent(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Put("session", "user-1"))
	require.NoError(t, c.Delete("session"))
	require.NoError(t, c.Delete("session"))

	var v string
	require.ErrorIs(t, c.Get("session", &v), ErrNoEntry)
}

func TestCache_PutLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, c.Put("cart", []int{1, 2, 3}))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, matches)

	_, err = os.Stat(filepath.Join(dir, "cart.json"))
	require.NoError(t, err)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	_, err := Open(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
