package metrics_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/offer-engine/internal/infrastructure/metrics"
	"github.com/bibbank/offer-engine/pkg/observability"
)

// counterValue returns the value of the series of family name whose labels
// include want.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	series:
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue series
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	t.Fatalf("series %s%v not found", name, want)
	return 0
}

func TestRecorder(t *testing.T) {
	reg := observability.NewRegistry(observability.MetricsConfig{})
	provider, err := observability.InitMetrics(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	r, err := metrics.NewRecorder(provider.Meter(metrics.ScopeName))
	require.NoError(t, err)

	r.SessionOpened(false)
	r.SessionOpened(false)
	r.SessionOpened(true)
	r.TenuresDropped(2)
	r.TenuresDropped(0)
	r.Reconciled("slider", true)
	r.Reconciled("text", false)
	r.OfferAccepted(24)

	assert.Equal(t, 2.0, counterValue(t, reg, "offer_sessions_opened_total", map[string]string{"no_offer": "false"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "offer_sessions_opened_total", map[string]string{"no_offer": "true"}))
	assert.Equal(t, 2.0, counterValue(t, reg, "offer_tenures_dropped_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "offer_reconciliations_total", map[string]string{"source": "slider", "applied": "true"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "offer_reconciliations_total", map[string]string{"source": "text", "applied": "false"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "offer_offers_accepted_total", map[string]string{"tenure_months": "24"}))
}
