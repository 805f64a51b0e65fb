package validator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BartekS5/odevalidator/pkg/models"
)

type sliceQueue struct {
	items [][]byte
	err   error
}

func (q *sliceQueue) Empty(context.Context) (bool, error) { return len(q.items) == 0, nil }

func (q *sliceQueue) Get(context.Context) ([]byte, error) {
	if q.err != nil {
		return nil, q.err
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, nil
}

func queueOf(items ...string) *sliceQueue {
	q := &sliceQueue{}
	for _, it := range items {
		q.items = append(q.items, []byte(it))
	}
	return q
}

func sequenceTestCase(t *testing.T) *TestCase {
	t.Helper()
	tc, err := NewTestCase([]models.Section{
		section("id", "Path", "metadata.serialId.recordId", "Type", "decimal", "Increment", "1"),
		section("kind", "Path", "metadata.kind", "Type", "enum", "Values", `["A","B"]`),
	})
	require.NoError(t, err)
	return tc
}

func msg(id int, kind string) string {
	return fmt.Sprintf(`{"metadata":{"serialId":{"recordId":%d},"kind":%q}}`, id, kind)
}

func TestValidateQueue(t *testing.T) {
	bv := NewBatchValidator(sequenceTestCase(t))

	report, err := bv.ValidateQueue(context.Background(), queueOf(msg(5, "A"), msg(6, "C"), msg(8, "B")))
	require.NoError(t, err)
	require.Len(t, report.Results, 3)

	ids := []string{report.Results[0].RecordID, report.Results[1].RecordID, report.Results[2].RecordID}
	assert.Equal(t, []string{"5", "6", "8"}, ids)

	for _, r := range report.Results {
		require.Len(t, r.Validations, 2)
		assert.Equal(t, "metadata.serialId.recordId", r.Validations[0].Field)
		assert.Equal(t, "metadata.kind", r.Validations[1].Field)
	}

	assert.True(t, report.Results[0].Valid())
	assert.False(t, report.Results[1].Validations[1].Valid)
	assert.True(t, report.Results[1].Validations[0].Valid)
	assert.Equal(t, "Field 'metadata.serialId.recordId' successor value '8' did not match expected value '7', increment '1'",
		report.Results[2].Validations[0].Details)

	s := report.Summary()
	assert.Equal(t, models.Summary{Records: 3, InvalidRecords: 2, InvalidFields: 2}, s)
}

func TestValidateQueueEmpty(t *testing.T) {
	report, err := NewBatchValidator(sequenceTestCase(t)).ValidateQueue(context.Background(), queueOf())
	require.NoError(t, err)
	assert.NotNil(t, report.Results)
	assert.Empty(t, report.Results)
}

func TestValidateQueueFatalErrors(t *testing.T) {
	tests := []struct {
		name   string
		record string
		target error
	}{
		{name: "malformed json", record: `{"metadata":`, target: ErrRecordDecode},
		{name: "not an object", record: `[1,2,3]`, target: ErrRecordDecode},
		{name: "trailing data", record: `{"a":1} {"b":2}`, target: ErrRecordDecode},
		{name: "missing record id", record: `{"metadata":{"kind":"A"}}`, target: ErrRecordID},
		{name: "record id path blocked", record: `{"metadata":"flat"}`, target: ErrRecordID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bv := NewBatchValidator(sequenceTestCase(t))
			report, err := bv.ValidateQueue(context.Background(), queueOf(msg(1, "A"), tt.record, msg(2, "A")))
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestValidateQueueTraversalAborts(t *testing.T) {
	tc, err := NewTestCase([]models.Section{
		section("deep", "Path", "payload.data.speed", "Type", "decimal"),
	})
	require.NoError(t, err)

	rec := `{"metadata":{"serialId":{"recordId":"r-1"}},"payload":[1]}`
	_, err = NewBatchValidator(tc).ValidateQueue(context.Background(), queueOf(rec))
	assert.True(t, errors.Is(err, ErrTraversal))

	lenient, err := NewTestCase([]models.Section{
		section("deep", "Path", "payload.data.speed", "Type", "decimal"),
	}, WithLenientTraversal())
	require.NoError(t, err)
	report, err := NewBatchValidator(lenient).ValidateQueue(context.Background(), queueOf(rec))
	require.NoError(t, err)
	assert.Equal(t, "r-1", report.Results[0].RecordID)
	assert.Equal(t, "Field 'payload.data.speed' missing", report.Results[0].Validations[0].Details)
}

func TestValidateQueueCustomRecordIDPath(t *testing.T) {
	tc, err := NewTestCase([]models.Section{
		section("kind", "Path", "header.kind", "Type", "string"),
	})
	require.NoError(t, err)

	bv := NewBatchValidator(tc, WithRecordIDPath("header.id"))
	report, err := bv.ValidateQueue(context.Background(), queueOf(`{"header":{"id":"abc-1","kind":"x"}}`))
	require.NoError(t, err)
	assert.Equal(t, "abc-1", report.Results[0].RecordID)
}

func TestValidateQueueGetError(t *testing.T) {
	q := queueOf(msg(1, "A"))
	q.err = errors.New("connection reset")

	_, err := NewBatchValidator(sequenceTestCase(t)).ValidateQueue(context.Background(), q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestValidateQueueCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBatchValidator(sequenceTestCase(t)).ValidateQueue(ctx, queueOf(msg(1, "A")))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateRecordNumberFormatting(t *testing.T) {
	tc, err := NewTestCase([]models.Section{
		section("id", "Path", "metadata.serialId.recordId", "Type", "decimal"),
	})
	require.NoError(t, err)

	rep, err := NewBatchValidator(tc).ValidateRecord([]byte(`{"metadata":{"serialId":{"recordId":12345678901234567890}}}`))
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567890", rep.RecordID)
}
