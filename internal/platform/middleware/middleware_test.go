package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vouch/internal/platform/metrics"
)

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/verify/start", nil)
	rec := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rec, req)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDPreservesClientHeader(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/verify/start", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	RequestID(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "client-supplied", seen)
}

func TestLoggerObservesEndpointLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWith(reg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	r.Use(Logger(logger, m))
	r.Get("/verify/{did}/status", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/verify/did:example:alice/status", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, testutil.CollectAndCount(m.EndpointLatency))

	// The single series is labeled by the route pattern, not the raw path.
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "vouch_endpoint_latency_seconds" {
			continue
		}
		require.Len(t, family.GetMetric(), 1)
		labels := family.GetMetric()[0].GetLabel()
		require.Len(t, labels, 1)
		assert.Equal(t, "endpoint", labels[0].GetName())
		assert.Equal(t, "/verify/{did}/status", labels[0].GetValue())
		assert.Equal(t, uint64(1), family.GetMetric()[0].GetHistogram().GetSampleCount())
	}
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Recovery(logger)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/verify/start", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
