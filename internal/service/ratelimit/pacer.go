package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a fixed minimum interval between successive calls per
// key. The history source tolerates only paced page requests, so the
// interval is a contract with the source, not an optimization.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[string]time.Time
}

func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval, last: make(map[string]time.Time)}
}

// Wait blocks until at least the configured interval has passed since
// the previous Wait for the same key, or the context is done.
func (p *Pacer) Wait(ctx context.Context, key string) error {
	now := time.Now()

	p.mu.Lock()
	prev, ok := p.last[key]
	var wait time.Duration
	if ok {
		if until := prev.Add(p.interval); until.After(now) {
			wait = until.Sub(now)
		}
	}
	p.last[key] = now.Add(wait)
	p.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
