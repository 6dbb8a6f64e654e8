// Package kvstore provides the persisted-state interface injected into
// components that previously relied on ambient browser storage: selection
// attempts, idempotency replay records, and reminder dedup marks.
package kvstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist or has expired.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a minimal JSON-valued key-value store with per-key TTL.
type Store interface {
	// Get unmarshals the value at key into dest. Returns ErrNotFound for
	// missing or expired keys.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores value at key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether key is present and unexpired.
	Exists(ctx context.Context, key string) (bool, error)
}
