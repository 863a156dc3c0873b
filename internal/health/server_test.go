package health

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-oracle/internal/cache"
)

func newTestServer(stats CacheStatsSource) *Server {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewServer(Config{
		ServiceName: "gridiron-oracle-test",
		Version:     "test",
		Port:        "0",
		Logger:      logger,
		CacheStats:  stats,
	})
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(nil)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "gridiron-oracle-test", response.Service)
	assert.NotEmpty(t, response.Timestamp)
}

func TestHandleReadyBeforeAndAfter(t *testing.T) {
	s := newTestServer(nil)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.SetReady(true)
	assert.True(t, s.IsReady())

	rec = httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Checks["service"])
}

func TestHandleLive(t *testing.T) {
	s := newTestServer(nil)

	rec := httptest.NewRecorder()
	s.handleLive(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleCacheStats(t *testing.T) {
	s := newTestServer(func() map[string]cache.Stats {
		return map[string]cache.Stats{
			"schedule": {Entries: 3, Hits: 10, Misses: 2, HitRatio: 10.0 / 12.0},
		}
	})

	rec := httptest.NewRecorder()
	s.handleCacheStats(rec, httptest.NewRequest(http.MethodGet, "/debug/cache", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]cache.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 3, response["schedule"].Entries)
	assert.Equal(t, uint64(10), response["schedule"].Hits)
}

func TestHandleCacheStatsUnconfigured(t *testing.T) {
	s := newTestServer(nil)

	rec := httptest.NewRecorder()
	s.handleCacheStats(rec, httptest.NewRequest(http.MethodGet, "/debug/cache", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewServerDefaultPort(t *testing.T) {
	s := NewServer(Config{ServiceName: "test"})
	assert.Equal(t, "8080", s.port)
}
