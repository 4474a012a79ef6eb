package store

import (
	"errors"
	"fmt"
)

// Persistence keys.
const (
	KeyTimerState    = "breeze_flow_timer_state"
	KeyFocusSessions = "breeze_flow_focus_sessions"
)

// Supported drivers.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// ErrNotFound is returned by Get when no value is stored under a key.
var ErrNotFound = errors.New("key not found")

// Store is the key/value persistence interface. Values are opaque byte
// slices (JSON in practice).
type Store interface {
	// Get returns the value stored under key or ErrNotFound
	Get(key string) ([]byte, error)
	// Set creates or overwrites the value stored under key
	Set(key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error
	Remove(key string) error
	// Close releases the underlying resources
	Close() error
}

// Open returns a store for the named driver. The path is ignored by the
// memory driver.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverBolt, "":
		return NewClient(path)
	case DriverSQLite:
		return NewSQLite(path)
	case DriverMemory:
		return NewMemory(), nil
	}

	return nil, fmt.Errorf("unknown store driver: %s", driver)
}
