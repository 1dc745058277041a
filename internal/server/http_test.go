package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/flagfetch/internal/index"
)

func newTestHTTPServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := NewHTTPServer(index.New(32, 128), zap.NewNop())
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchEndpointReturnsHits(t *testing.T) {
	t.Parallel()

	srv := newTestHTTPServer(t)
	resp, err := http.Get(srv.URL + "/search?q=digit+nine")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var hits []charName
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&hits))
	require.Equal(t, []charName{{Char: "9", Name: "DIGIT NINE"}}, hits)
}

func TestSearchEndpointEmptyResultIsEmptyArray(t *testing.T) {
	t.Parallel()

	srv := newTestHTTPServer(t)
	resp, err := http.Get(srv.URL + "/search?q=zzyzx")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var hits []charName
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&hits))
	require.Empty(t, hits)
}

func TestSearchEndpointRequiresQuery(t *testing.T) {
	t.Parallel()

	srv := newTestHTTPServer(t)
	resp, err := http.Get(srv.URL + "/search")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	srv := newTestHTTPServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestHTTPServer(t)
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}
