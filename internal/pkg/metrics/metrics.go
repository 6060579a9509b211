// Package metrics holds the Prometheus collectors exported by the order service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "takeout"

type Metrics struct {
	HTTPRequests  *prometheus.CounterVec
	HTTPLatencyMS *prometheus.HistogramVec

	WSClients prometheus.Gauge
	WSDropped prometheus.Counter

	TimeoutsFired     prometheus.Counter
	TimeoutsCancelled prometheus.Counter
	TimeoutsRetried   prometheus.Counter
}

// New builds the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "status"}),
		HTTPLatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "clients",
			Help:      "Currently connected operator clients.",
		}),
		WSDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "dropped_total",
			Help:      "Connections dropped because of a full send queue or a write failure.",
		}),
		TimeoutsFired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reaper",
			Name:      "fired_total",
			Help:      "Payment timeout tasks delivered to the reaper.",
		}),
		TimeoutsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reaper",
			Name:      "cancelled_total",
			Help:      "Orders cancelled because payment did not arrive in time.",
		}),
		TimeoutsRetried: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reaper",
			Name:      "retried_total",
			Help:      "Payment timeout tasks left in the queue after a failed attempt.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequests, m.HTTPLatencyMS,
		m.WSClients, m.WSDropped,
		m.TimeoutsFired, m.TimeoutsCancelled, m.TimeoutsRetried,
	)
	return m
}

// NewNop returns collectors registered on a throwaway registry, for tests and tools.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
