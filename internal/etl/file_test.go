package etl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderQueueSkipsBlankLines(t *testing.T) {
	q := NewReaderQueue(strings.NewReader("{\"a\":1}\n\n  \n{\"a\":2}\r\n{\"a\":3}"))
	assert.Equal(t, []string{`{"a":1}`, `{"a":2}`, `{"a":3}`}, drain(t, q))
}

func TestOpenFileQueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.ndjson")
	require.NoError(t, os.WriteFile(path, []byte("{\"a\":1}\n{\"a\":2}\n"), 0o644))

	q, err := OpenFileQueue(path)
	require.NoError(t, err)
	defer q.Close()

	assert.Equal(t, []string{`{"a":1}`, `{"a":2}`}, drain(t, q))
}

func TestOpenFileQueueMissing(t *testing.T) {
	_, err := OpenFileQueue(filepath.Join(t.TempDir(), "missing.ndjson"))
	require.Error(t, err)
}
