package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout submissions and collaborator health.
type CheckoutMetrics struct {
	submissions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	orderValue  prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_submissions_total",
		Help: "Checkout submissions by payment method and outcome.",
	}, []string{"payment_method", "outcome"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_collaborator_failures_total",
		Help: "Best-effort collaborator call failures by collaborator.",
	}, []string{"collaborator"})
	orderValue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_order_value_uzs",
		Help:    "Final order totals in UZS.",
		Buckets: prometheus.ExponentialBuckets(50_000, 4, 8),
	})
	reg.MustRegister(submissions, failures, orderValue)
	return &CheckoutMetrics{
		submissions: submissions,
		failures:    failures,
		orderValue:  orderValue,
	}
}

// IncSubmission counts one submission outcome.
func (c *CheckoutMetrics) IncSubmission(paymentMethod, outcome string) {
	if c == nil || c.submissions == nil {
		return
	}
	c.submissions.WithLabelValues(normalizeLabel(paymentMethod), normalizeLabel(outcome)).Inc()
}

// IncCollaboratorFailure counts a swallowed collaborator error.
func (c *CheckoutMetrics) IncCollaboratorFailure(collaborator string) {
	if c == nil || c.failures == nil {
		return
	}
	c.failures.WithLabelValues(normalizeLabel(collaborator)).Inc()
}

// ObserveOrderValue records a completed order total.
func (c *CheckoutMetrics) ObserveOrderValue(totalUZS int64) {
	if c == nil || c.orderValue == nil {
		return
	}
	c.orderValue.Observe(float64(totalUZS))
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return strings.ReplaceAll(value, " ", "_")
}
