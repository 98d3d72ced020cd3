package gateway

import "github.com/prometheus/client_golang/prometheus"

// Metrics tracks gateway counters exported at /metrics. The gateway owns its
// registry so tests can construct gateways without duplicate-register panics.
type Metrics struct {
	registry *prometheus.Registry
	renders  *prometheus.CounterVec
	relays   *prometheus.CounterVec
}

func newMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "approvalgate_page_renders_total",
			Help: "Approval page renders by terminal state.",
		}, []string{"state"}),
		relays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "approvalgate_relay_attempts_total",
			Help: "Relay attempts by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(m.renders, m.relays)
	return m
}

// RecordRender counts one page render in the given terminal state.
func (m *Metrics) RecordRender(state pageState) {
	m.renders.WithLabelValues(string(state)).Inc()
}

// RecordRelay counts one relay attempt.
func (m *Metrics) RecordRelay(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.relays.WithLabelValues(result).Inc()
}
