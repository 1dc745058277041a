package progress

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/JakeFAU/flagfetch/internal/metrics"
)

// BarSink renders an in-place done/total counter, one redraw per event.
type BarSink struct {
	w     io.Writer
	total int
	done  int
}

// NewBarSink returns a BarSink writing to w, typically stderr so the final
// report on stdout stays clean.
func NewBarSink(w io.Writer, total int) *BarSink {
	return &BarSink{w: w, total: total}
}

// Consume advances the counter by one event.
func (s *BarSink) Consume(Event) {
	s.done++
	fmt.Fprintf(s.w, "\r%d/%d", s.done, s.total)
}

// Close terminates the in-place line.
func (s *BarSink) Close() error {
	if s.done > 0 {
		fmt.Fprintln(s.w)
	}
	return nil
}

// LogSink emits one structured log line per completion, useful for audits
// where a terminal bar is unavailable.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink wires a Zap logger to the sink interface.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Consume logs the event using structured fields.
func (s *LogSink) Consume(evt Event) {
	s.logger.Debug("download completed",
		zap.String("run_id", evt.RunID.String()),
		zap.String("cc", evt.Key),
		zap.String("outcome", evt.Outcome),
		zap.Duration("dur", evt.Dur),
		zap.String("note", evt.Note),
	)
}

// Close implements the Sink interface; it performs no action.
func (s *LogSink) Close() error {
	return nil
}

// PromSink forwards completions to the Prometheus download counter.
type PromSink struct{}

// NewPromSink initializes the collectors and returns a PromSink.
func NewPromSink() *PromSink {
	metrics.Init()
	return &PromSink{}
}

// Consume counts the event by outcome.
func (s *PromSink) Consume(evt Event) {
	metrics.ObserveDownload(evt.Outcome)
}

// Close implements the Sink interface; it performs no action.
func (s *PromSink) Close() error {
	return nil
}
