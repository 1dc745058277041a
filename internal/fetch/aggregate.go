package fetch

// Counts tallies download outcomes for one run. It is mutated only by the
// orchestrator's single draining goroutine, so it needs no locking.
type Counts struct {
	counts map[Outcome]int
}

// NewCounts returns a Counts with every Outcome present at zero.
func NewCounts() *Counts {
	c := &Counts{counts: make(map[Outcome]int, len(Outcomes))}
	for _, o := range Outcomes {
		c.counts[o] = 0
	}
	return c
}

// Increment adds one to the given outcome's tally.
func (c *Counts) Increment(o Outcome) {
	c.counts[o]++
}

// Get returns the tally for one outcome.
func (c *Counts) Get(o Outcome) int {
	return c.counts[o]
}

// Total returns the number of drained tasks.
func (c *Counts) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Snapshot returns an independent copy safe to hand to the caller.
func (c *Counts) Snapshot() map[Outcome]int {
	out := make(map[Outcome]int, len(c.counts))
	for o, n := range c.counts {
		out[o] = n
	}
	return out
}
