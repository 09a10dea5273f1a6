package repositories

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by [Store.Get] when the key has no value.
var ErrKeyNotFound = errors.New("key not found")

// Store is a synchronous string-keyed, string-valued store with no transactions and no expiry.
type Store interface {
	// Get returns the value stored under key, or [ErrKeyNotFound].
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys lists every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)
}
