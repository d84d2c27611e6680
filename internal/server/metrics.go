package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the collectors exported on /metrics.
type metrics struct {
	requests    *prometheus.CounterVec
	parses      *prometheus.CounterVec
	evaluations prometheus.Counter
	render      prometheus.Histogram
}

// Labels for the parses counter.
const (
	parseOK     = "ok"
	parseError  = "error"
	parseCached = "cached"
)

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cexpr",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cexpr",
			Name:      "parses_total",
			Help:      "Expression parses by result.",
		}, []string{"result"}),
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cexpr",
			Name:      "evaluations_total",
			Help:      "Point evaluations served by /eval.",
		}),
		render: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cexpr",
			Name:      "plot_render_seconds",
			Help:      "Time to sample and draw a plot.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
	reg.MustRegister(m.requests, m.parses, m.evaluations, m.render)
	return m
}
