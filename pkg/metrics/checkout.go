package metrics

import "github.com/prometheus/client_golang/prometheus"

// CheckoutMetrics tracks order creation outcomes.
type CheckoutMetrics struct {
	created    *prometheus.CounterVec
	failed     *prometheus.CounterVec
	collisions prometheus.Counter
}

func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_orders_created_total",
		Help: "Orders created, by payment method.",
	}, []string{"payment_method"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Checkout attempts rejected or failed, by error code.",
	}, []string{"code"})
	collisions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_order_number_collisions_total",
		Help: "Order number unique violations that triggered a retry.",
	})
	reg.MustRegister(created, failed, collisions)
	return &CheckoutMetrics{created: created, failed: failed, collisions: collisions}
}

func (c *CheckoutMetrics) IncCreated(paymentMethod string) {
	if c == nil || c.created == nil {
		return
	}
	c.created.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

func (c *CheckoutMetrics) IncFailed(code string) {
	if c == nil || c.failed == nil {
		return
	}
	c.failed.WithLabelValues(normalizeLabel(code)).Inc()
}

func (c *CheckoutMetrics) IncCollision() {
	if c == nil || c.collisions == nil {
		return
	}
	c.collisions.Inc()
}
