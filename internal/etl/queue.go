package etl

import (
	"context"
	"errors"
	"sync"
)

var ErrQueueEmpty = errors.New("queue is empty")

// MemoryQueue is a FIFO of serialized records held in memory.
type MemoryQueue struct {
	mu    sync.Mutex
	items [][]byte
}

func NewMemoryQueue(items ...[]byte) *MemoryQueue {
	return &MemoryQueue{items: items}
}

func (q *MemoryQueue) Put(item []byte) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
}

func (q *MemoryQueue) Empty(context.Context) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) == 0, nil
}

func (q *MemoryQueue) Get(context.Context) ([]byte, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, ErrQueueEmpty
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, nil
}

// ExtractorQueue turns a paging Extractor into a queue. Pages are fetched on
// demand and the queue reports empty once a page comes back with no records.
type ExtractorQueue struct {
	extractor Extractor
	batchSize int

	offset    int
	buffer    [][]byte
	exhausted bool
}

func NewExtractorQueue(ext Extractor, batchSize int) *ExtractorQueue {
	if batchSize < 1 {
		batchSize = 1
	}
	return &ExtractorQueue{extractor: ext, batchSize: batchSize}
}

func (q *ExtractorQueue) Empty(ctx context.Context) (bool, error) {
	if len(q.buffer) > 0 {
		return false, nil
	}
	if q.exhausted {
		return true, nil
	}

	data, next, err := q.extractor.Extract(ctx, q.batchSize, q.offset)
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		q.exhausted = true
		return true, nil
	}

	q.buffer = data
	q.offset = next
	return false, nil
}

func (q *ExtractorQueue) Get(ctx context.Context) ([]byte, error) {
	empty, err := q.Empty(ctx)
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, ErrQueueEmpty
	}
	item := q.buffer[0]
	q.buffer = q.buffer[1:]
	return item, nil
}

// Offset is the offset of the next page to fetch.
func (q *ExtractorQueue) Offset() int { return q.offset }
