package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type Metrics struct {
	Checkouts     *prometheus.CounterVec
	Payments      *prometheus.CounterVec
	Cancellations *prometheus.CounterVec
	PaymentAmount *prometheus.HistogramVec
}

// New registers the counters on reg. A nil reg keeps them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Checkouts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkouts_total",
				Help:      "Total number of checkout attempts by outcome",
			},
			[]string{"outcome"},
		),
		Payments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_total",
				Help:      "Total number of payment attempts by status",
			},
			[]string{"status"},
		),
		Cancellations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cancellations_total",
				Help:      "Total number of cancelled orders by actor",
			},
			[]string{"actor"},
		),
		PaymentAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "payment_amount",
				Help:      "Settled order totals",
				Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
			},
			[]string{"currency"},
		),
	}
}

// Nop returns unregistered metrics for tests and tools.
func Nop() *Metrics {
	return New(nil)
}

func (m *Metrics) Checkout(outcome string) {
	m.Checkouts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Payment(status string) {
	m.Payments.WithLabelValues(status).Inc()
}

func (m *Metrics) Settled(currency string, amount float64) {
	m.PaymentAmount.WithLabelValues(currency).Observe(amount)
}

func (m *Metrics) Cancellation(actor string) {
	m.Cancellations.WithLabelValues(actor).Inc()
}
