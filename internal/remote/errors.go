package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError reports a non-2xx HTTP response. The orchestrator matches on
// it to split "not found" from every other status failure.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d - %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// NotFound reports whether the response carried a 404 status.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// TransportError reports a request that never produced a response: DNS
// failure, refused connection, timeout.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %s: %v", e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRemote reports whether err is a classified HTTP or transport failure.
// Anything else (decode errors, filesystem errors) is treated as fatal by
// callers.
func IsRemote(err error) bool {
	var statusErr *StatusError
	var transportErr *TransportError
	return errors.As(err, &statusErr) || errors.As(err, &transportErr)
}

// FailingURL returns the URL attached to a classified failure, or "" when
// err carries none.
func FailingURL(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.URL
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.URL
	}
	return ""
}
