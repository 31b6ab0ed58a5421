package stats

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerServesMetrics(t *testing.T) {
	c := NewCollector()
	c.AddQueriesServed(3)
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg, c, func() int { return 42 }))

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ffind_queries_total 3")
	assert.Contains(t, string(body), "ffind_index_records 42")
}

func TestHandlerUnknownPath(t *testing.T) {
	srv := httptest.NewServer(Handler(prometheus.NewRegistry()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeMetricsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ServeMetrics(ctx, "127.0.0.1:0", prometheus.NewRegistry()) }()

	cancel()
	require.Eventually(t, func() bool {
		select {
		case err := <-done:
			assert.NoError(t, err)
			return true
		default:
			return false
		}
	}, testTimeout, testTick)
}

func TestServeMetricsBadAddr(t *testing.T) {
	err := ServeMetrics(context.Background(), "not-an-addr", prometheus.NewRegistry())
	assert.ErrorContains(t, err, "metrics listener")
}
