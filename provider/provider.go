// Package provider defines the storage abstraction used by swkit.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no prepended
// metadata, no re-encoding, no mutation). If a store performs internal
// transforms (e.g., compression), they MUST be fully reversed so that the
// bytes returned by Get are identical to the bytes provided to Set.
//
// The keyspace "entry:<scope>:" is owned by swkit. External code MUST NOT
// write values under this prefix; foreign writes may be treated as
// corruption by wire-format validation and deleted.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs and prefix deletion.
// Must be safe for concurrent use; swkit fetch handlers may call Get and
// Set on the same key at the same time (last Set wins).
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL; ttl <= 0 means no expiry where
	// the store supports it. Returns ok=false when the store rejected the
	// write under pressure.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// DelPrefix removes every key starting with prefix. Used for
	// whole-generation purges during activation cleanup.
	DelPrefix(ctx context.Context, prefix string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
