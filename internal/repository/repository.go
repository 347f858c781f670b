// Package repository contains data access layer abstractions.
// Implementations live in subpackages (file, memory, postgres) inside this directory.
package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when nothing is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// StateRepository persists opaque JSON values by key.
// No business logic here, strictly persistence operations.
type StateRepository interface {
	// Get returns the stored value or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}
