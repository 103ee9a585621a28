package storage

import "errors"

// ErrNotFound is returned by Get when no value is stored under the key
var ErrNotFound = errors.New("key not found")

// Provider is a key-value blob store. Values are opaque bytes; the habit
// and settings adapters store JSON documents in them.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
