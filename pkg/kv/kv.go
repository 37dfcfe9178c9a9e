// Package kv provides the key-value media the entity store persists into.
//
// A medium maps string keys to opaque byte values. Implementations must make
// a single Set or Delete atomic for its key; nothing here coordinates writes
// across keys.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// Medium is the storage contract shared by every backend.
type Medium interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
