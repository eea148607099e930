// Package store provides the durable key-value slots a client process uses
// to carry session state across restarts.
package store

import (
	"context"
	"errors"
)

var (
	NotFoundErr = errors.New("key not found")
)

// Store is a string-keyed key-value store. Implementations must treat
// Delete of a missing key as a no-op.
type Store interface {
	// Get retrieves the value for a key, NotFoundErr if absent
	Get(ctx context.Context, key string) (string, error)

	// Set creates or replaces the value for a key
	Set(ctx context.Context, key, value string) error

	// Delete removes a key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}
