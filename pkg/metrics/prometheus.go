package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	resultsSent *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	lastPrice   *prometheus.GaugeVec
	decision    *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		resultsSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigpull_results_sent_total",
				Help: "Total number of analysis results sent to backend",
			},
			[]string{"backend", "symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigpull_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sigpull_last_price",
				Help: "Last recorded price for a symbol",
			},
			[]string{"symbol"},
		),
		decision: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sigpull_decision",
				Help: "Latest decision per symbol: 1 buy, -1 sell, 0 neutral",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sigpull_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordResultSent records an analysis result sent to a backend.
func (r *Recorder) RecordResultSent(backend, symbol string) {
	r.resultsSent.WithLabelValues(backend, symbol).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordDecision records the latest decision for a symbol.
func (r *Recorder) RecordDecision(symbol, decision string) {
	v := 0.0
	switch decision {
	case "Buy":
		v = 1
	case "Sell":
		v = -1
	}
	r.decision.WithLabelValues(symbol).Set(v)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
