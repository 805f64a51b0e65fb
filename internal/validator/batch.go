package validator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BartekS5/odevalidator/pkg/models"
	"github.com/BartekS5/odevalidator/pkg/utils"
)

// DefaultRecordIDPath locates the record identifier in each message.
const DefaultRecordIDPath = "metadata.serialId.recordId"

// Queue supplies serialized records one at a time until it is empty.
type Queue interface {
	Empty(ctx context.Context) (bool, error)
	Get(ctx context.Context) ([]byte, error)
}

// BatchValidator drains a queue through a TestCase.
type BatchValidator struct {
	testCase     *TestCase
	recordIDPath string
	recordIDKeys []string
}

type Option func(*BatchValidator)

// WithRecordIDPath overrides DefaultRecordIDPath.
func WithRecordIDPath(path string) Option {
	return func(b *BatchValidator) {
		if path != "" {
			b.recordIDPath = path
		}
	}
}

func NewBatchValidator(tc *TestCase, opts ...Option) *BatchValidator {
	b := &BatchValidator{testCase: tc, recordIDPath: DefaultRecordIDPath}
	for _, opt := range opts {
		opt(b)
	}
	b.recordIDKeys = strings.Split(b.recordIDPath, ".")
	return b
}

func (b *BatchValidator) TestCase() *TestCase { return b.testCase }

// ValidateQueue pulls records until the queue is empty and returns the report.
// Records are processed strictly in the order the queue yields them. Any
// decoding, identifier or traversal failure aborts the whole batch.
func (b *BatchValidator) ValidateQueue(ctx context.Context, q Queue) (*models.BatchReport, error) {
	report := &models.BatchReport{Results: []models.RecordReport{}}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		empty, err := q.Empty(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to poll queue: %w", err)
		}
		if empty {
			break
		}

		raw, err := q.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d from queue: %w", len(report.Results)+1, err)
		}

		rec, err := b.ValidateRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(report.Results)+1, err)
		}
		report.Results = append(report.Results, rec)
	}

	return report, nil
}

// ValidateRecord decodes one serialized record and checks it.
func (b *BatchValidator) ValidateRecord(raw []byte) (models.RecordReport, error) {
	record, err := decodeRecord(raw)
	if err != nil {
		return models.RecordReport{}, err
	}

	id, err := b.recordID(record)
	if err != nil {
		return models.RecordReport{}, err
	}

	validations, err := b.testCase.Validate(record)
	if err != nil {
		return models.RecordReport{}, fmt.Errorf("record '%s': %w", id, err)
	}

	return models.RecordReport{RecordID: id, Validations: validations}, nil
}

func (b *BatchValidator) recordID(record map[string]interface{}) (string, error) {
	v, found, err := extractPath(record, b.recordIDPath, b.recordIDKeys)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecordID, err)
	}
	if !found || v == nil {
		return "", fmt.Errorf("%w: no value at '%s'", ErrRecordID, b.recordIDPath)
	}
	return utils.ToString(v), nil
}

func decodeRecord(raw []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var record map[string]interface{}
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordDecode, err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrRecordDecode)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrRecordDecode)
	}
	return record, nil
}
