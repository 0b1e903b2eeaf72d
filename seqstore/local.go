package seqstore

import (
	"context"
	"sync"
	"time"
)

type localEntry struct {
	Seq       uint64
	UpdatedAt time.Time
}

// Local keeps counters in-process.
// Optional cleanup loop to prune long-idle channels.
type Local struct {
	mu     sync.RWMutex
	seqs   map[string]localEntry
	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

var _ Sequencer = (*Local)(nil)

func NewLocal(cleanupInterval, retention time.Duration) *Local {
	s := &Local{seqs: make(map[string]localEntry)}
	if cleanupInterval > 0 && retention > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-s.ticker.C:
					s.Cleanup(retention)
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

func (s *Local) Next(_ context.Context, ch string) (uint64, error) {
	now := time.Now()
	s.mu.Lock()
	e := s.seqs[ch]
	e.Seq++
	e.UpdatedAt = now
	s.seqs[ch] = e
	s.mu.Unlock()
	return e.Seq, nil
}

func (s *Local) Current(_ context.Context, ch string) (uint64, error) {
	s.mu.RLock()
	e := s.seqs[ch]
	s.mu.RUnlock()
	return e.Seq, nil
}

// CurrentMany takes the read lock once for all channels.
func (s *Local) CurrentMany(_ context.Context, chs []string) (map[string]uint64, error) {
	out := make(map[string]uint64, len(chs))
	s.mu.RLock()
	for _, ch := range chs {
		out[ch] = s.seqs[ch].Seq
	}
	s.mu.RUnlock()
	return out, nil
}

// Cleanup forgets channels idle for longer than retention. A forgotten channel
// restarts at 1, so retention should outlive the capture TTL.
func (s *Local) Cleanup(retention time.Duration) {
	if retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-retention)

	s.mu.Lock()
	for ch, e := range s.seqs {
		if !e.UpdatedAt.IsZero() && e.UpdatedAt.Before(cutoff) {
			delete(s.seqs, ch)
		}
	}
	s.mu.Unlock()
}

func (s *Local) Close(_ context.Context) error {
	s.once.Do(func() {
		if s.stopCh == nil {
			return
		}
		close(s.stopCh)
		s.ticker.Stop()
		s.wg.Wait()
	})
	return nil
}
