package fetch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeFAU/flagfetch/internal/remote"
)

// Client is the remote fetch boundary used by tasks. Implementations must be
// safe for concurrent use.
type Client interface {
	// FetchFlag returns the raw flag image for a country code.
	FetchFlag(ctx context.Context, cc string) ([]byte, error)
	// FetchCountry returns the country's display name from its metadata.
	FetchCountry(ctx context.Context, cc string) (string, error)
}

// Saver persists one fetched flag image under a display name.
type Saver interface {
	Save(name string, data []byte) error
}

// task downloads both resources for one country code. Both fetch stages hold
// the shared gate independently; holding it across the whole task would cut
// effective concurrency in half.
type task struct {
	client  Client
	saver   Saver
	gate    *Gate
	verbose bool
	logger  *zap.Logger
}

// run produces exactly one Result or one error per invocation. 404s are
// classified here; every other remote failure is returned unclassified so
// the orchestrator can attach uniform request context.
func (t *task) run(ctx context.Context, key string) (Result, error) {
	image, err := t.fetchImage(ctx, key)
	if err != nil {
		return t.classify(key, err)
	}
	country, err := t.fetchCountry(ctx, key)
	if err != nil {
		return t.classify(key, err)
	}
	// Saving is blocking file I/O, but it runs on this task's own goroutine
	// so sibling tasks keep making progress.
	if err := t.saver.Save(country, image); err != nil {
		return Result{}, fmt.Errorf("save flag %s: %w", key, err)
	}
	return t.finish(Result{Key: key, Outcome: OutcomeOK, Message: "OK"}), nil
}

func (t *task) fetchImage(ctx context.Context, key string) ([]byte, error) {
	if err := t.gate.Acquire(ctx); err != nil {
		return nil, err
	}
	defer t.gate.Release()
	return t.client.FetchFlag(ctx, key)
}

func (t *task) fetchCountry(ctx context.Context, key string) (string, error) {
	if err := t.gate.Acquire(ctx); err != nil {
		return "", err
	}
	defer t.gate.Release()
	return t.client.FetchCountry(ctx, key)
}

func (t *task) classify(key string, err error) (Result, error) {
	var statusErr *remote.StatusError
	if errors.As(err, &statusErr) && statusErr.NotFound() {
		res := Result{
			Key:     key,
			Outcome: OutcomeNotFound,
			Message: "not found: " + statusErr.URL,
		}
		return t.finish(res), nil
	}
	return Result{}, err
}

func (t *task) finish(res Result) Result {
	if t.verbose && res.Message != "" {
		t.logger.Info("download finished",
			zap.String("cc", res.Key),
			zap.Stringer("outcome", res.Outcome),
			zap.String("msg", res.Message),
		)
	}
	return res
}
