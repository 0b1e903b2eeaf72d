// Package seqstore hands out per-channel capture sequence numbers.
package seqstore

import (
	"context"
	"time"
)

// Sequencer abstracts where sequence counters live.
// Use Local (default) for in-process counters, or Redis to share them across processes.
type Sequencer interface {
	// Next atomically increments and returns the channel's sequence. The first
	// call for a channel returns 1.
	Next(ctx context.Context, channel string) (uint64, error)
	// Current returns the last issued sequence; missing => 0.
	Current(ctx context.Context, channel string) (uint64, error)
	// CurrentMany returns sequences for many channels; missing => 0.
	CurrentMany(ctx context.Context, channels []string) (map[string]uint64, error)
	// Cleanup prunes idle counters if applicable (no-op for Redis).
	Cleanup(retention time.Duration)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
