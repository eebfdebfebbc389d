// Package metrics records offer flow counters through OpenTelemetry.
package metrics

import (
	"context"
	"errors"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ScopeName is the instrumentation scope of the offer counters.
const ScopeName = "github.com/bibbank/offer-engine"

// Recorder implements port.Metrics.
type Recorder struct {
	sessionsOpened  metric.Int64Counter
	tenuresDropped  metric.Int64Counter
	reconciliations metric.Int64Counter
	offersAccepted  metric.Int64Counter
}

// NewRecorder creates the offer counters on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	var r Recorder
	var err, e error
	r.sessionsOpened, e = meter.Int64Counter("offer_sessions_opened",
		metric.WithDescription("Offer sessions opened, by whether any offer was available."))
	err = errors.Join(err, e)
	r.tenuresDropped, e = meter.Int64Counter("offer_tenures_dropped",
		metric.WithDescription("Tenures discarded because their series did not line up."))
	err = errors.Join(err, e)
	r.reconciliations, e = meter.Int64Counter("offer_reconciliations",
		metric.WithDescription("Slider and text reconciliations, by edit source and outcome."))
	err = errors.Join(err, e)
	r.offersAccepted, e = meter.Int64Counter("offer_offers_accepted",
		metric.WithDescription("Accepted offers, by tenure in months."))
	err = errors.Join(err, e)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// The port carries no context, so counters are recorded against a background one.

func (r *Recorder) SessionOpened(noOffer bool) {
	r.sessionsOpened.Add(context.Background(), 1,
		metric.WithAttributes(attribute.Bool("no_offer", noOffer)))
}

func (r *Recorder) TenuresDropped(n int) {
	if n > 0 {
		r.tenuresDropped.Add(context.Background(), int64(n))
	}
}

func (r *Recorder) Reconciled(source string, applied bool) {
	r.reconciliations.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("source", source), attribute.Bool("applied", applied)))
}

func (r *Recorder) OfferAccepted(tenureMonths int) {
	r.offersAccepted.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("tenure_months", strconv.Itoa(tenureMonths))))
}
