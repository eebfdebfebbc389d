package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Namespace string
	// RuntimeCollectors adds the Go and process collectors.
	RuntimeCollectors bool
}

// NewRegistry returns a dedicated registry so tests and multiple servers in one
// process never collide on the global default registerer.
func NewRegistry(cfg MetricsConfig) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	if cfg.RuntimeCollectors {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: cfg.Namespace}),
		)
	}
	return reg
}

// InitMetrics returns an OpenTelemetry MeterProvider whose instruments are
// exported through reg.
func InitMetrics(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exporter, err := promexporter.New(
		promexporter.WithRegisterer(reg),
		promexporter.WithoutScopeInfo(),
		promexporter.WithoutTargetInfo(),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: create prometheus exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)), nil
}

// MetricsHandler exposes reg in the Prometheus text format.
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
