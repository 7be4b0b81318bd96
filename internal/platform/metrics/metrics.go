package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the action counters exposed on /metrics.
type Metrics struct {
	Registry      *prometheus.Registry
	ActionsTotal  *prometheus.CounterVec
	ActionLatency *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	actionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_total",
		Help:      "Total number of dispatched API actions by action and HTTP status.",
	}, []string{"action", "status"})

	actionLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "action_latency_seconds",
		Help:      "Latency of dispatched API actions.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})

	registry.MustRegister(
		actionsTotal,
		actionLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		Registry:      registry,
		ActionsTotal:  actionsTotal,
		ActionLatency: actionLatency,
	}
}

func (m *Metrics) Observe(action string, status int, elapsed time.Duration) {
	m.ActionsTotal.WithLabelValues(action, strconv.Itoa(status)).Inc()
	m.ActionLatency.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
