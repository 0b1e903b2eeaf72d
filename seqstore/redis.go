package seqstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares per-channel sequences across processes and survives restarts.
// Optionally, a TTL is applied to counter keys to prevent unbounded growth; an
// expired counter restarts at 1.
type Redis struct {
	rdb         redis.UniversalClient
	ns          string        // logical namespace; should match capture.Options.Namespace
	ttl         time.Duration // 0 disables expiry
	closeClient bool
}

var _ Sequencer = (*Redis)(nil)

type RedisConfig struct {
	Client      redis.UniversalClient
	Namespace   string
	TTL         time.Duration
	CloseClient bool // set true only if the sequencer exclusively owns the client
}

func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("seqstore: nil redis client")
	}
	if cfg.Namespace == "" {
		return nil, fmt.Errorf("seqstore: namespace required")
	}
	return &Redis{rdb: cfg.Client, ns: cfg.Namespace, ttl: cfg.TTL, closeClient: cfg.CloseClient}, nil
}

// Key returns the Redis key holding the channel counter.
func (s *Redis) Key(ch string) string { return "seq:" + s.ns + ":" + ch }

// Next increments the counter. When ttl > 0, INCR + EXPIRE are pipelined in a
// single round-trip and the INCR result is taken from the pipeline.
func (s *Redis) Next(ctx context.Context, ch string) (uint64, error) {
	k := s.Key(ch)

	if s.ttl <= 0 {
		v, err := s.rdb.Incr(ctx, k).Result()
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	}

	var incr *redis.IntCmd
	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return uint64(incr.Val()), nil
}

func (s *Redis) Current(ctx context.Context, ch string) (uint64, error) {
	res, err := s.rdb.Get(ctx, s.Key(ch)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(res, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis seq parse: %w", err)
	}
	return u, nil
}

func (s *Redis) CurrentMany(ctx context.Context, chs []string) (map[string]uint64, error) {
	if len(chs) == 0 {
		return map[string]uint64{}, nil
	}
	keys := make([]string, len(chs))
	for i, ch := range chs {
		keys[i] = s.Key(ch)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]uint64, len(chs))
	for i, v := range vals {
		u, err := parseCounter(v)
		if err != nil {
			return nil, fmt.Errorf("redis seq parse at %s: %w", chs[i], err)
		}
		out[chs[i]] = u
	}
	return out, nil
}

func parseCounter(v any) (uint64, error) {
	switch vv := v.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.ParseUint(vv, 10, 64)
	case []byte:
		return strconv.ParseUint(string(vv), 10, 64)
	default:
		return strconv.ParseUint(fmt.Sprint(vv), 10, 64)
	}
}

// Cleanup is not applicable (Redis handles expiry if TTL is set).
func (s *Redis) Cleanup(time.Duration) {}

// Close closes the client only when the sequencer owns it.
func (s *Redis) Close(context.Context) error {
	if !s.closeClient {
		return nil
	}
	if err := s.rdb.Close(); err != nil && err != redis.ErrClosed {
		return err
	}
	return nil
}
