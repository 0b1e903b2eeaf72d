// Package asynchook moves hook delivery off the encode/decode path.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{DecodeFailedEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	s, _ := paramwire.NewTraits[resource.URL, traits.URL](paramwire.Options[resource.URL]{
//	    Name:  "url",
//	    Hooks: hooks,
//	})
//
// Events are dropped, never blocked on, when the queue is full.
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/paramwire"
	"github.com/unkn0wn-root/paramwire/wire"
)

type Hooks struct {
	inner   paramwire.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ paramwire.Hooks = (*Hooks)(nil)

func New(inner paramwire.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events sent after Close
// are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped is the number of events discarded because the queue was full or closed.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) MessageEncoded(name string, size int) {
	h.try(func() { h.inner.MessageEncoded(name, size) })
}
func (h *Hooks) DecodeFailed(name string, kind wire.Kind, size int) {
	h.try(func() { h.inner.DecodeFailed(name, kind, size) })
}
func (h *Hooks) MessageOversized(name, op string, size, limit int) {
	h.try(func() { h.inner.MessageOversized(name, op, size, limit) })
}
func (h *Hooks) DescribeTruncated(name string, limit int) {
	h.try(func() { h.inner.DescribeTruncated(name, limit) })
}
