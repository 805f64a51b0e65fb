package etl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
)

const maxLineSize = 16 * 1024 * 1024

// FileQueue reads newline-delimited JSON records. Blank lines are skipped.
type FileQueue struct {
	scanner *bufio.Scanner
	closer  io.Closer

	next    []byte
	hasNext bool
	line    int
}

func NewReaderQueue(r io.Reader) *FileQueue {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	q := &FileQueue{scanner: sc}
	if c, ok := r.(io.Closer); ok {
		q.closer = c
	}
	return q
}

// OpenFileQueue opens path for reading; "-" reads standard input.
func OpenFileQueue(path string) (*FileQueue, error) {
	if path == "-" {
		return NewReaderQueue(io.NopCloser(os.Stdin)), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record file '%s': %w", path, err)
	}
	return NewReaderQueue(f), nil
}

func (q *FileQueue) Empty(context.Context) (bool, error) {
	if q.hasNext {
		return false, nil
	}
	for q.scanner.Scan() {
		q.line++
		line := bytes.TrimSpace(q.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		q.next = append([]byte(nil), line...)
		q.hasNext = true
		return false, nil
	}
	if err := q.scanner.Err(); err != nil {
		return false, fmt.Errorf("failed to read line %d: %w", q.line+1, err)
	}
	return true, nil
}

func (q *FileQueue) Get(ctx context.Context) ([]byte, error) {
	empty, err := q.Empty(ctx)
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, ErrQueueEmpty
	}
	q.hasNext = false
	return q.next, nil
}

func (q *FileQueue) Close() error {
	if q.closer == nil {
		return nil
	}
	return q.closer.Close()
}
