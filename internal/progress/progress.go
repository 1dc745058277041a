// Package progress renders aggregate download progress. Completion events
// flow from the orchestrator's single draining goroutine through a Tracker
// that fans them out to sinks, so sinks never see concurrent calls.
package progress

import (
	"time"

	"github.com/google/uuid"
)

// Event describes one completed download.
type Event struct {
	// RunID identifies the orchestration run the event belongs to.
	RunID uuid.UUID
	// Key is the country code the event reports on.
	Key string
	// Outcome is the terminal classification (OK, NOT_FOUND, ERROR).
	Outcome string
	// Note carries the task's human-readable message, if any.
	Note string
	// Dur is the task's wall-clock duration.
	Dur time.Duration
	// TS is the UTC timestamp recorded by the emitter.
	TS time.Time
}

// Emitter publishes individual completion events; Tracker satisfies this
// interface so the orchestrator stays agnostic about rendering.
type Emitter interface {
	Emit(evt Event)
}

// Sink consumes completion events. Implementations are called from a single
// goroutine and need no internal locking.
type Sink interface {
	Consume(evt Event)
	Close() error
}

// Tracker stamps events with the run ID and fans them out to sinks.
type Tracker struct {
	runID uuid.UUID
	sinks []Sink
}

// NewTracker returns a Tracker for one run.
func NewTracker(runID uuid.UUID, sinks ...Sink) *Tracker {
	return &Tracker{
		runID: runID,
		sinks: append([]Sink(nil), sinks...),
	}
}

// Emit forwards one event to every sink.
func (t *Tracker) Emit(evt Event) {
	if t == nil {
		return
	}
	evt.RunID = t.runID
	if evt.TS.IsZero() {
		evt.TS = time.Now().UTC()
	}
	for _, sink := range t.sinks {
		if sink != nil {
			sink.Consume(evt)
		}
	}
}

// Close closes every sink, returning the first failure.
func (t *Tracker) Close() error {
	if t == nil {
		return nil
	}
	var first error
	for _, sink := range t.sinks {
		if sink == nil {
			continue
		}
		if err := sink.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
