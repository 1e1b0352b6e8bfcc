package providers

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by KeyValueStore.Get for missing keys
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore defines durable string storage for client state
type KeyValueStore interface {
	// Get retrieves a value, returning ErrKeyNotFound when absent
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value; a zero ttl keeps it until deleted
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes a value; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}
