// Package metrics exposes Prometheus collectors for validation runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/BartekS5/odevalidator/pkg/models"
)

// Metrics holds the collectors for one process. Each instance owns its
// registry so several pipelines (or tests) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	recordsTotal  *prometheus.CounterVec
	fieldResults  *prometheus.CounterVec
	batchDuration prometheus.Histogram
	batchesTotal  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odevalidator_records_total",
				Help: "Total number of records validated",
			},
			[]string{"result"},
		),

		fieldResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odevalidator_field_checks_total",
				Help: "Total number of field checks performed",
			},
			[]string{"field", "result"},
		),

		batchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "odevalidator_batch_duration_seconds",
				Help:    "Time taken to drain and validate one batch",
				Buckets: prometheus.DefBuckets,
			},
		),

		batchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odevalidator_batches_total",
				Help: "Total number of batch runs",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(m.recordsTotal, m.fieldResults, m.batchDuration, m.batchesTotal)
	return m
}

// ObserveBatch records the outcome of a completed batch.
func (m *Metrics) ObserveBatch(report *models.BatchReport, elapsed time.Duration) {
	m.batchesTotal.WithLabelValues("ok").Inc()
	m.batchDuration.Observe(elapsed.Seconds())

	for _, rec := range report.Results {
		if rec.Valid() {
			m.recordsTotal.WithLabelValues("valid").Inc()
		} else {
			m.recordsTotal.WithLabelValues("invalid").Inc()
		}
		for _, v := range rec.Validations {
			m.fieldResults.WithLabelValues(v.Field, resultLabel(v.Valid)).Inc()
		}
	}
}

// ObserveFailure counts a batch that aborted with an error.
func (m *Metrics) ObserveFailure(elapsed time.Duration) {
	m.batchesTotal.WithLabelValues("error").Inc()
	m.batchDuration.Observe(elapsed.Seconds())
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func resultLabel(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}
