package fetch

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Concurrency limits for one run. DefaultConcurrency matches the public flag
// CDN's comfortable request rate; MaxConcurrency is a hard ceiling.
const (
	DefaultConcurrency = 5
	MaxConcurrency     = 1000
)

// Gate bounds how many fetch stages may be in flight at once. A task holds
// the gate for the duration of a single HTTP exchange, not for its whole
// lifetime, so slots recycle as fast as possible.
type Gate struct {
	sem      *semaphore.Weighted
	capacity int
	inFlight atomic.Int64
	peak     atomic.Int64
}

// NewGate returns a Gate admitting at most capacity concurrent holders.
// Capacity outside [1, MaxConcurrency] is a configuration error.
func NewGate(capacity int) (*Gate, error) {
	if capacity < 1 || capacity > MaxConcurrency {
		return nil, fmt.Errorf("gate capacity %d outside [1, %d]", capacity, MaxConcurrency)
	}
	return &Gate{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: capacity,
	}, nil
}

// Acquire blocks until a slot frees or ctx is done.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire gate: %w", err)
	}
	cur := g.inFlight.Add(1)
	for {
		peak := g.peak.Load()
		if cur <= peak || g.peak.CompareAndSwap(peak, cur) {
			break
		}
	}
	return nil
}

// Release returns one slot. It must pair with a successful Acquire.
func (g *Gate) Release() {
	g.inFlight.Add(-1)
	g.sem.Release(1)
}

// Capacity returns the configured slot count.
func (g *Gate) Capacity() int {
	return g.capacity
}

// InFlight returns the number of currently admitted holders.
func (g *Gate) InFlight() int64 {
	return g.inFlight.Load()
}

// Peak returns the highest concurrent holder count observed so far.
func (g *Gate) Peak() int64 {
	return g.peak.Load()
}
