package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"sentimeter/internal/platform/resilience"
)

// BreakerMetrics tracks circuit breaker state per breaker name.
type BreakerMetrics struct {
	State        *prometheus.GaugeVec
	StateChanges *prometheus.CounterVec
}

// NewBreakerMetrics creates and registers circuit breaker metrics on the given registry.
func NewBreakerMetrics(reg prometheus.Registerer) *BreakerMetrics {
	m := &BreakerMetrics{
		State: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "circuit_breaker",
			Name:      "state",
			Help:      "Current circuit breaker state (0=closed, 1=half-open, 2=open).",
		}, []string{"breaker"}),
		StateChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "circuit_breaker",
			Name:      "state_changes_total",
			Help:      "Circuit breaker state transitions, by breaker and new state.",
		}, []string{"breaker", "state"}),
	}

	reg.MustRegister(m.State, m.StateChanges)
	return m
}

// Init publishes the starting state so the gauge exists before the first transition.
func (m *BreakerMetrics) Init(name string) {
	m.State.WithLabelValues(name).Set(float64(resilience.StateClosed))
}

// OnStateChange matches resilience.Settings.OnStateChange.
func (m *BreakerMetrics) OnStateChange(name string, _, to resilience.State) {
	m.State.WithLabelValues(name).Set(float64(to))
	m.StateChanges.WithLabelValues(name, to.String()).Inc()
}
