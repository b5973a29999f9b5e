package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements metrics.Collector for Prometheus.
// It also implements prometheus.Collector so it can be registered directly
// with a registry.
type PrometheusCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	transfersTotal   prometheus.Counter
	transferredMinor prometheus.Counter

	logSize prometheus.Gauge
}

// NewPrometheusCollector creates a new Prometheus metrics collector.
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of service requests per operation and status",
			},
			[]string{"op", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Service request latency per operation",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		transfersTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transfers_total",
				Help:      "Total number of completed transfers",
			},
		),
		transferredMinor: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transferred_minor_units_total",
				Help:      "Total amount moved by completed transfers, in minor units",
			},
		),
		logSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "transaction_log_size",
				Help:      "Current number of records in the transaction log",
			},
		),
	}
}

// RecordRequest records one service operation.
func (pc *PrometheusCollector) RecordRequest(op string, status string, duration time.Duration) {
	pc.requestsTotal.WithLabelValues(op, status).Inc()
	pc.requestDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordTransfer records a completed transfer.
func (pc *PrometheusCollector) RecordTransfer(amountMinorUnits int64) {
	pc.transfersTotal.Inc()
	pc.transferredMinor.Add(float64(amountMinorUnits))
}

// RecordLogSize records the current transaction log length.
func (pc *PrometheusCollector) RecordLogSize(size int) {
	pc.logSize.Set(float64(size))
}

// Describe implements prometheus.Collector.
func (pc *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	pc.requestsTotal.Describe(ch)
	pc.requestDuration.Describe(ch)
	pc.transfersTotal.Describe(ch)
	pc.transferredMinor.Describe(ch)
	pc.logSize.Describe(ch)
}

// Collect implements prometheus.Collector.
func (pc *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	pc.requestsTotal.Collect(ch)
	pc.requestDuration.Collect(ch)
	pc.transfersTotal.Collect(ch)
	pc.transferredMinor.Collect(ch)
	pc.logSize.Collect(ch)
}
