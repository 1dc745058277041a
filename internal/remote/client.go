// Package remote talks to the flag CDN. It derives the two resource
// locations for a country code and classifies failures into typed errors
// instead of leaking raw HTTP details to the pipeline.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/flagfetch/internal/metrics"
)

// DefaultTimeout bounds a single request/response exchange.
const DefaultTimeout = 3 * time.Second

// Config captures the parameters for the CDN client.
type Config struct {
	// BaseURL is the CDN root, e.g. https://www.fluentpython.com/data/flags.
	BaseURL string
	// Timeout bounds each exchange; DefaultTimeout when zero.
	Timeout time.Duration
}

// Client fetches flag images and metadata documents. The embedded HTTP
// client pools connections and is safe for concurrent use.
type Client struct {
	base   string
	http   *http.Client
	logger *zap.Logger
}

// metadata is the CDN's per-country metadata document.
type metadata struct {
	Country string `json:"country"`
}

// New constructs a Client for the given CDN base.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics.Init()
	return &Client{
		base: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// FlagURL returns the image location for a country code.
func (c *Client) FlagURL(cc string) string {
	cc = strings.ToLower(cc)
	return fmt.Sprintf("%s/%s/%s.gif", c.base, cc, cc)
}

// MetadataURL returns the metadata location for a country code.
func (c *Client) MetadataURL(cc string) string {
	return fmt.Sprintf("%s/%s/metadata.json", c.base, strings.ToLower(cc))
}

// FetchFlag returns the raw flag image for a country code.
func (c *Client) FetchFlag(ctx context.Context, cc string) ([]byte, error) {
	return c.get(ctx, c.FlagURL(cc))
}

// FetchCountry returns the country display name from the metadata document.
// A document without a country field is a malformed upstream response, not a
// countable outcome, so it surfaces as a plain error.
func (c *Client) FetchCountry(ctx context.Context, cc string) (string, error) {
	url := c.MetadataURL(cc)
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	var meta metadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return "", fmt.Errorf("decode metadata %s: %w", url, err)
	}
	if meta.Country == "" {
		return "", fmt.Errorf("metadata %s missing country field", url)
	}
	return meta.Country, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", url, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveRemoteRequest(0, time.Since(start))
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // read-side close
	metrics.ObserveRemoteRequest(resp.StatusCode, time.Since(start))

	c.logger.Debug("remote exchange",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
	)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the pooled connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	return body, nil
}
