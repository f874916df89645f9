package repos

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a key does not exist in its collection.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a unique index (user email).
	ErrConflict = errors.New("conflict")
	// ErrUnavailable wraps failures to open or prepare the underlying store.
	ErrUnavailable = errors.New("storage unavailable")
)

// isUniqueViolation matches the sqlite unique-index failure surfaced by the
// modernc driver.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
