// Package kv defines the key-value contract the menu store persists through,
// along with the in-process backends.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("kv: key not found")

// Store is an eventually consistent key-value store. There are no
// transactions across keys and Put overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
