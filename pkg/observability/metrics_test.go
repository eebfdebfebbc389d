package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandler(t *testing.T) {
	reg := NewRegistry(MetricsConfig{Namespace: "offer"})
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "offer_sample_total", Help: "sample"})
	reg.MustRegister(c)
	c.Inc()

	rec := httptest.NewRecorder()
	MetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "offer_sample_total 1")
}

func TestInitMetrics_ExportsThroughRegistry(t *testing.T) {
	reg := NewRegistry(MetricsConfig{})
	provider, err := InitMetrics(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	counter, err := provider.Meter("test").Int64Counter("offer_sample")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	rec := httptest.NewRecorder()
	MetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "offer_sample_total 3")
}
