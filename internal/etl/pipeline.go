package etl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BartekS5/odevalidator/internal/validator"
	"github.com/BartekS5/odevalidator/pkg/logger"
	"github.com/BartekS5/odevalidator/pkg/metrics"
	"github.com/BartekS5/odevalidator/pkg/models"
)

// Pipeline drains one queue through the batch validator and hands the
// report to the loader.
type Pipeline struct {
	Queue     validator.Queue
	Validator *validator.BatchValidator
	Loader    Loader
	Metrics   *metrics.Metrics
}

func NewPipeline(q validator.Queue, v *validator.BatchValidator, loader Loader, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		Queue:     q,
		Validator: v,
		Loader:    loader,
		Metrics:   m,
	}
}

func (p *Pipeline) Run(ctx context.Context) (*models.BatchReport, error) {
	runID := uuid.NewString()
	log := logger.L().With("run_id", runID)
	log.Info("starting validation run", "fields", len(p.Validator.TestCase().Fields()))

	startTime := time.Now()

	// 1. Drain and validate
	report, err := p.Validator.ValidateQueue(ctx, p.Queue)
	elapsed := time.Since(startTime)
	if err != nil {
		if p.Metrics != nil {
			p.Metrics.ObserveFailure(elapsed)
		}
		log.Error("validation run failed", "error", err)
		return nil, err
	}

	// 2. Stats
	if p.Metrics != nil {
		p.Metrics.ObserveBatch(report, elapsed)
	}
	summary := report.Summary()
	rate := 0.0
	if elapsed.Seconds() > 0 {
		rate = float64(summary.Records) / elapsed.Seconds()
	}
	log.Info("validation run done",
		"records", summary.Records,
		"invalid_records", summary.InvalidRecords,
		"invalid_fields", summary.InvalidFields,
		"rate_per_sec", rate,
	)

	// 3. Load
	if p.Loader != nil {
		if err := p.Loader.Load(report); err != nil {
			log.Error("writing report failed", "error", err)
			return report, err
		}
	}

	return report, nil
}
