// Package store provides the small string key-value persistence the
// theme selection survives in between runs.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Keys under which the theme selection is persisted.
const (
	KeyTheme = "theme-key"
	KeyMode  = "theme-mode"
)

// Supported drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// ErrCorrupt is returned when the backing data cannot be decoded.
var ErrCorrupt = errors.New("store data is corrupt")

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key; ok is false when the key is unset.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open returns the store for driver. path is ignored for the memory driver.
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		if path == "" {
			return nil, fmt.Errorf("file store requires a path")
		}
		return NewFile(path), nil
	case DriverSQLite:
		if path == "" {
			return nil, fmt.Errorf("sqlite store requires a path")
		}
		db, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", driver)
	}
}

// Memory is an in-process store, used for tests and ephemeral servers.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
