// Package ristretto keeps captures in an in-process, cost-bounded cache.
// Writes are admitted asynchronously; call Wait before reading back a value
// that must be visible.
package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/paramwire/provider"
)

var ErrInvalidConfig = errors.New("ristretto provider: invalid config")

const (
	defaultMaxCost     = 64 << 20
	defaultBufferItems = 64
	// ~10 counters per item at full capacity, for ~100-byte entries
	countersPerByte = 10.0 / 100
)

type Provider struct {
	c *rc.Cache
}

var _ pr.Provider = (*Provider)(nil)

// Config zero values pick defaults: 64 MiB of envelope bytes, counters sized
// for ~100-byte entries, 64 buffered items.
type Config struct {
	NumCounters int64
	MaxCost     int64 // bytes; the capture store passes the envelope size as cost
	BufferItems int64
	Metrics     bool
}

func (c Config) withDefaults() (Config, error) {
	if c.NumCounters < 0 || c.MaxCost < 0 || c.BufferItems < 0 {
		return c, ErrInvalidConfig
	}
	if c.MaxCost == 0 {
		c.MaxCost = defaultMaxCost
	}
	if c.NumCounters == 0 {
		c.NumCounters = max(int64(float64(c.MaxCost)*countersPerByte), 1000)
	}
	if c.BufferItems == 0 {
		c.BufferItems = defaultBufferItems
	}
	return c, nil
}

func New(cfg Config) (*Provider, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
		// cost is the envelope size; item overhead would skew the byte budget
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set returns false when the write was dropped by admission or contention.
// Non-positive TTLs store without expiry.
func (p *Provider) Set(_ context.Context, key string, value []byte, cost int64, ttl time.Duration) (bool, error) {
	return p.c.SetWithTTL(key, value, max(cost, 1), max(ttl, 0)), nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Del(key)
	return nil
}

// Wait blocks until buffered writes are applied.
func (p *Provider) Wait() { p.c.Wait() }

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto counters; nil unless Config.Metrics is set.
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
