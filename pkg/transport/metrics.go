package transport

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "mockroute"

// matchBuckets covers in-memory matching, which rarely exceeds a few
// milliseconds unless stubs are read from disk.
var matchBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5}

// Metrics holds the Prometheus collectors updated by a Transport.
type Metrics struct {
	// RequestsTotal counts requests by method and outcome.
	RequestsTotal *prometheus.CounterVec
	// MatchDuration observes the time spent producing mock responses.
	MatchDuration *prometheus.HistogramVec
}

// NewMetrics creates the transport collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "requests_total",
				Help:      "Count of requests seen by the mock transport by method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		MatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricNamespace,
				Name:      "match_duration_seconds",
				Help:      "Time in seconds spent producing mock responses.",
				Buckets:   matchBuckets,
			},
			[]string{"outcome"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.RequestsTotal, m.MatchDuration)
	}
	return m
}

func (m *Metrics) observe(method string, outcome Outcome, d time.Duration) {
	m.RequestsTotal.WithLabelValues(strings.ToUpper(method), string(outcome)).Inc()
	if outcome != OutcomePassthrough {
		m.MatchDuration.WithLabelValues(string(outcome)).Observe(d.Seconds())
	}
}
