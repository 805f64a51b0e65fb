package etl

import (
	"context"

	"github.com/BartekS5/odevalidator/pkg/models"
)

// Extractor pages serialized records out of a store in a stable order.
// It returns the records of one page and the offset of the next page.
type Extractor interface {
	Extract(ctx context.Context, batchSize int, offset int) ([][]byte, int, error)
}

// Loader receives the finished batch report.
type Loader interface {
	Load(report *models.BatchReport) error
}
