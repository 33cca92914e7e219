package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	outcomeOK      = "ok"
	outcomeMissing = "missing"
	outcomeError   = "error"
)

type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	bytes    prometheus.Histogram
}

// Each server owns its registry so several can run in one process (tests).
func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	m := &metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "siftly",
			Name:      "sheet_requests_total",
			Help:      "Requests for the spreadsheet file by outcome.",
		}, []string{"outcome"}),
		bytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "siftly",
			Name:      "sheet_served_bytes",
			Help:      "Size of the spreadsheet file served.",
			Buckets:   prometheus.ExponentialBuckets(16<<10, 4, 6),
		}),
	}
	reg.MustRegister(
		m.requests,
		m.bytes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) observe(outcome string, size int64) {
	m.requests.WithLabelValues(outcome).Inc()
	if outcome == outcomeOK {
		m.bytes.Observe(float64(size))
	}
}
