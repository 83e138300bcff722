package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"bakery-dispatch/internal/metrics"
	testlog "bakery-dispatch/internal/testutil"
)

func newHTTPMetrics() HTTPMetrics {
	return HTTPMetrics{
		Requests: metrics.NewHTTPRequestsTotal(),
		Duration: metrics.NewHTTPRequestDuration(),
	}
}

func TestObservability_UsesRoutePatternForLabels(t *testing.T) {
	t.Parallel()

	m := newHTTPMetrics()
	pattern := "/api/orders/{orderId}/status"

	r := chi.NewRouter()
	r.Use(Observability(nil, m))
	r.Put(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/orders/"+id+"/status", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	require.Equal(t, float64(3), testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodPut, pattern, "204")))
	require.Equal(t, 1, testutil.CollectAndCount(m.Requests))
	require.EqualValues(t, 3, histogramCount(t, m.Duration, http.MethodPut, pattern, "204"))
}

func TestObservability_ImplicitOKAndAccessLog(t *testing.T) {
	t.Parallel()

	m := newHTTPMetrics()
	rec := testlog.New()

	r := chi.NewRouter()
	r.Use(Observability(rec.Logger(), m))
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/ping", "200")))

	entries := rec.ByMsg("http request")
	require.Len(t, entries, 1)
	status, ok := entries[0].Field("status")
	require.True(t, ok)
	require.EqualValues(t, http.StatusOK, status)
	path, _ := entries[0].Field("path")
	require.Equal(t, "/ping", path)
}

func TestObservability_UnmatchedRouteFallsBackToPath(t *testing.T) {
	t.Parallel()

	m := newHTTPMetrics()
	h := Observability(nil, m)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/nope", "404")))
}

func histogramCount(t *testing.T, hv *prometheus.HistogramVec, method, path, status string) uint64 {
	t.Helper()

	obs, err := hv.GetMetricWithLabelValues(method, path, status)
	require.NoError(t, err)

	metric, ok := obs.(prometheus.Metric)
	require.True(t, ok, "must implement prometheus.Metric")

	m := &dto.Metric{}
	require.NoError(t, metric.Write(m))

	h := m.GetHistogram()
	require.NotNil(t, h)
	return h.GetSampleCount()
}
