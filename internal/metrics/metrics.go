// Package metrics defines the domain Prometheus collectors. A nil *Metrics is valid and
// records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	uploads       *prometheus.CounterVec
	activeUploads prometheus.Gauge
	extraction    *prometheus.HistogramVec
	answers       *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docqa_uploads_total",
				Help: "Uploads by final status.",
			},
			[]string{"status"},
		),
		activeUploads: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "docqa_uploads_active",
			Help: "Uploads currently in progress.",
		}),
		extraction: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docqa_extraction_duration_seconds",
				Help:    "Text extraction latency by strategy.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"strategy"},
		),
		answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docqa_answers_total",
				Help: "Questions asked by outcome.",
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.uploads, m.activeUploads, m.extraction, m.answers} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) UploadStarted() {
	if m == nil {
		return
	}
	m.activeUploads.Inc()
}

// UploadFinished records the outcome ("completed" or "error") of an upload.
func (m *Metrics) UploadFinished(status string) {
	if m == nil {
		return
	}
	m.activeUploads.Dec()
	m.uploads.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveExtraction(strategy string, d time.Duration) {
	if m == nil {
		return
	}
	m.extraction.WithLabelValues(strategy).Observe(d.Seconds())
}

func (m *Metrics) AnswerFinished(outcome string) {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(outcome).Inc()
}
