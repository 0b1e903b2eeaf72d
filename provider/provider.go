// Package provider defines the byte store behind the capture store.
//
// Implementations MUST be byte-for-byte transparent: Get returns exactly the
// []byte previously passed to Set for a key. Stores that transform values
// internally (compression, say) must fully reverse the transform on Get.
//
// The keyspaces "rec:<ns>:" and "seq:<ns>:" are owned by package capture.
// Foreign values written under these prefixes fail envelope validation and are
// deleted on read.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs. Safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. May ignore cost if unsupported.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// Scanner is implemented by providers that can enumerate their keys.
type Scanner interface {
	// Scan calls fn for every key starting with prefix until fn returns false.
	// Order is unspecified; keys written during a scan may or may not be seen.
	Scan(ctx context.Context, prefix string, fn func(key string) bool) error
}

// BatchSetter is implemented by providers that store many values in one round-trip.
type BatchSetter interface {
	SetMany(ctx context.Context, items map[string][]byte, ttl time.Duration) error
}
