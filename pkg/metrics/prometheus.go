package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	scanDuration     *prometheus.HistogramVec
	errorsTotal      *prometheus.CounterVec
	topScore         *prometheus.GaugeVec
	backtestDuration *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		scanDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "signaldesk_scan_duration_seconds",
				Help:    "Duration of multi-timeframe symbol scans in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signaldesk_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		topScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "signaldesk_top_score",
				Help: "Best consensus score from the last scan of a symbol",
			},
			[]string{"symbol"},
		),
		backtestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "signaldesk_backtest_duration_seconds",
				Help:    "Duration of backtest runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"symbol"},
		),
	}
}

// RecordScan records the duration of a full symbol scan.
func (r *Recorder) RecordScan(symbol string, durSeconds float64) {
	r.scanDuration.WithLabelValues(symbol).Observe(durSeconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordTopScore records the winning consensus score for a symbol.
func (r *Recorder) RecordTopScore(symbol string, score int) {
	r.topScore.WithLabelValues(symbol).Set(float64(score))
}

// RecordBacktest records the duration of a backtest run.
func (r *Recorder) RecordBacktest(symbol string, durSeconds float64) {
	r.backtestDuration.WithLabelValues(symbol).Observe(durSeconds)
}
