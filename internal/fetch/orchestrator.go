// Package fetch implements the bounded-concurrency download pipeline: an
// admission gate capping in-flight HTTP exchanges, a per-key two-stage fetch
// task, and an orchestrator that drains completions in arrival order and
// aggregates outcome counts.
package fetch

import (
	"context"
	"errors"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/flagfetch/internal/progress"
	"github.com/JakeFAU/flagfetch/internal/remote"
)

// Options configure one orchestration run.
type Options struct {
	// Concurrency caps in-flight fetch stages; must be in [1, MaxConcurrency].
	Concurrency int
	// Verbose switches from aggregate progress to per-key logging.
	Verbose bool
}

// Orchestrator owns one run: it launches a task per country code, drains
// completions as they arrive, and tallies outcomes. Construct with
// NewOrchestrator and call Run once per key list.
type Orchestrator struct {
	client  Client
	saver   Saver
	emitter progress.Emitter
	logger  *zap.Logger
}

// NewOrchestrator wires an Orchestrator. emitter may be nil (verbose runs
// log per key instead of reporting aggregate progress).
func NewOrchestrator(client Client, saver Saver, emitter progress.Emitter, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		client:  client,
		saver:   saver,
		emitter: emitter,
		logger:  logger,
	}
}

// completion carries one task's terminal state to the draining loop.
type completion struct {
	key   string
	res   Result
	err   error
	start time.Time
}

// Run downloads every key under the configured concurrency cap and returns
// the per-outcome tallies. Keys are launched in ascending sorted order but
// drained in completion order. Cancelling ctx stops draining promptly and
// returns the partial tallies accumulated so far; any task finishing after
// that parks in a buffered channel and has no further effect. Errors other
// than classified HTTP/transport failures abort the run.
func (o *Orchestrator) Run(ctx context.Context, keys []string, opts Options) (map[Outcome]int, error) {
	gate, err := NewGate(opts.Concurrency)
	if err != nil {
		return nil, err
	}
	counts := NewCounts()
	if len(keys) == 0 {
		return counts.Snapshot(), nil
	}

	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	t := &task{
		client:  o.client,
		saver:   o.saver,
		gate:    gate,
		verbose: opts.Verbose,
		logger:  o.logger,
	}
	// Buffered so abandoned tasks never block after the run is finalized.
	results := make(chan completion, len(sorted))
	for _, key := range sorted {
		go func(key string) {
			start := time.Now()
			res, err := t.run(ctx, key)
			results <- completion{key: key, res: res, err: err, start: start}
		}(key)
	}

	for drained := 0; drained < len(sorted); drained++ {
		select {
		case <-ctx.Done():
			o.logger.Info("run interrupted",
				zap.Int("drained", drained),
				zap.Int("total", len(sorted)),
			)
			return counts.Snapshot(), nil
		case c := <-results:
			res, err := o.accept(c, opts.Verbose)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return counts.Snapshot(), nil
				}
				return nil, err
			}
			counts.Increment(res.Outcome)
			o.emit(res, time.Since(c.start))
		}
	}
	return counts.Snapshot(), nil
}

// accept converts one completion into a Result. Classified HTTP/transport
// failures become OutcomeError here so every task gets uniform request
// context; anything else is fatal and propagates.
func (o *Orchestrator) accept(c completion, verbose bool) (Result, error) {
	if c.err == nil {
		return c.res, nil
	}
	if errors.Is(c.err, context.Canceled) {
		// Interrupt surfaced through a task; the draining loop returns the
		// partial tallies rather than counting it.
		return Result{}, c.err
	}
	if !remote.IsRemote(c.err) {
		return Result{}, c.err
	}
	res := Result{Key: c.key, Outcome: OutcomeError, Message: c.err.Error()}
	if verbose {
		cc := c.key
		if stem := urlStem(remote.FailingURL(c.err)); stem != "" {
			cc = stem
		}
		o.logger.Error("download failed",
			zap.String("cc", cc),
			zap.String("msg", res.Message),
		)
	}
	return res, nil
}

func (o *Orchestrator) emit(res Result, dur time.Duration) {
	if o.emitter == nil {
		return
	}
	o.emitter.Emit(progress.Event{
		Key:     res.Key,
		Outcome: res.Outcome.String(),
		Note:    res.Message,
		Dur:     dur,
		TS:      time.Now().UTC(),
	})
}

// urlStem extracts the last path segment of a URL without its extension,
// uppercased for display next to country codes.
func urlStem(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}
	return strings.ToUpper(strings.TrimSuffix(base, path.Ext(base)))
}
