// Package kv provides the small durable key-value surface the preference
// counters persist through: string keys mapped to opaque byte payloads,
// with interchangeable local drivers.
package kv

import "errors"

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

type Driver string

const (
	DriverMemory     Driver = "memory"
	DriverFilesystem Driver = "fs"
	DriverSQLite     Driver = "sqlite"
)

// Store is a durable mapping of keys to byte payloads. Set overwrites.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, payload []byte) error
	Close() error
}
