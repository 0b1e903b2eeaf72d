// Package bigcache keeps captures in a sharded, GC-friendly in-process cache.
// Entries share one global life window; per-entry TTLs are ignored.
package bigcache

import (
	"context"
	"errors"
	"strings"
	"time"

	bc "github.com/allegro/bigcache/v3"

	pr "github.com/unkn0wn-root/paramwire/provider"
)

type Provider struct {
	c *bc.BigCache
}

var (
	_ pr.Provider = (*Provider)(nil)
	_ pr.Scanner  = (*Provider)(nil)
)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
	Shards             int // power of two; 0 = bigcache default
}

func New(cfg Config) (*Provider, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	conf.Verbose = false
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	if cfg.Shards > 0 {
		conf.Shards = cfg.Shards
	}
	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := p.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set ignores cost and ttl; entries live for Config.LifeWindow.
func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, _ time.Duration) (bool, error) {
	if err := p.c.Set(key, value); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	if err := p.c.Delete(key); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
		return err
	}
	return nil
}

// Scan walks every shard with the bigcache iterator. Cost is linear in the
// number of stored entries, not in the matches.
func (p *Provider) Scan(ctx context.Context, prefix string, fn func(key string) bool) error {
	it := p.c.Iterator()
	for it.SetNext() {
		if err := ctx.Err(); err != nil {
			return err
		}
		e, err := it.Value()
		if err != nil {
			// entry evicted mid-iteration
			continue
		}
		if k := e.Key(); strings.HasPrefix(k, prefix) && !fn(k) {
			return nil
		}
	}
	return nil
}

// Len is the number of stored entries, expired ones included until cleanup.
func (p *Provider) Len() int { return p.c.Len() }

func (p *Provider) Close(_ context.Context) error {
	return p.c.Close()
}
