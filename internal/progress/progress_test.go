package progress

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type captureSink struct {
	events   []Event
	closeErr error
	closed   bool
}

func (s *captureSink) Consume(evt Event) {
	s.events = append(s.events, evt)
}

func (s *captureSink) Close() error {
	s.closed = true
	return s.closeErr
}

func TestTrackerStampsAndFansOut(t *testing.T) {
	t.Parallel()

	runID := uuid.New()
	first := &captureSink{}
	second := &captureSink{}
	tracker := NewTracker(runID, first, second)

	tracker.Emit(Event{Key: "bf", Outcome: "OK"})

	require.Len(t, first.events, 1)
	require.Len(t, second.events, 1)
	require.Equal(t, runID, first.events[0].RunID)
	require.False(t, first.events[0].TS.IsZero())
}

func TestTrackerCloseReturnsFirstFailure(t *testing.T) {
	t.Parallel()

	bad := &captureSink{closeErr: errors.New("flush failed")}
	good := &captureSink{}
	tracker := NewTracker(uuid.New(), bad, good)

	require.ErrorContains(t, tracker.Close(), "flush failed")
	require.True(t, good.closed, "later sinks still close")
}

func TestBarSinkRendersRunningCounter(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	sink := NewBarSink(&buf, 3)

	sink.Consume(Event{})
	sink.Consume(Event{})
	require.NoError(t, sink.Close())

	out := buf.String()
	require.Contains(t, out, "\r1/3")
	require.Contains(t, out, "\r2/3")
	require.True(t, strings.HasSuffix(out, "\n"))
}

func TestBarSinkCloseSilentWhenUnused(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	sink := NewBarSink(&buf, 5)
	require.NoError(t, sink.Close())
	require.Empty(t, buf.String())
}

func TestLogSinkEmitsStructuredEntry(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zap.DebugLevel)
	sink := NewLogSink(zap.New(core))

	sink.Consume(Event{
		Key:     "gh",
		Outcome: "NOT_FOUND",
		Note:    "not found: http://cdn.test/flags/gh/gh.gif",
		Dur:     42 * time.Millisecond,
	})
	require.NoError(t, sink.Close())

	entries := observed.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "gh", fields["cc"])
	require.Equal(t, "NOT_FOUND", fields["outcome"])
}

func TestPromSinkConsumesWithoutPanic(t *testing.T) {
	t.Parallel()

	sink := NewPromSink()
	sink.Consume(Event{Outcome: "OK"})
	require.NoError(t, sink.Close())
}
