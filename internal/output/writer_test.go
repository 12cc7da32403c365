package output

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/seeker/internal/pool"
)

func TestWriterBuffersUntilFlush(t *testing.T) {
	var out bytes.Buffer
	sink := NewSink(&out)
	w := NewWriter(sink, "file.txt:")

	fmt.Fprintln(w, "match one")
	fmt.Fprintln(w, "match two")
	assert.Zero(t, out.Len(), "nothing reaches the sink before Flush")

	require.NoError(t, w.Flush())
	assert.Equal(t, "file.txt:\nmatch one\nmatch two\n", out.String())
}

// A task with zero output emits nothing, header included.
func TestWriterEmptyFlushIsNoOp(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(NewSink(&out), "file.txt:")

	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())
	assert.Zero(t, out.Len())
}

func TestWriterFlushClearsBuffer(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(NewSink(&out), "h:")

	fmt.Fprintln(w, "line")
	require.NoError(t, w.Flush())
	require.NoError(t, w.Flush())
	assert.Equal(t, "h:\nline\n", out.String(), "a second flush must not re-emit")
}

func TestWriterCloseFlushes(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(NewSink(&out), "h:")

	fmt.Fprintln(w, "line")
	require.NoError(t, w.Close())
	assert.Equal(t, "h:\nline\n", out.String())
}

// syncBuffer serializes raw writes so the test can run writers from many
// goroutines against one in-memory stream.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// quietLogger swallows the expected fault report.
type quietLogger struct{}

func (quietLogger) Errorf(format string, args ...any) {}

// Scenario: two workers, five tasks, one fault — the four surviving tasks
// each emit one contiguous header+body unit, with no interleaving.
func TestConcurrentWritersDoNotInterleave(t *testing.T) {
	out := &syncBuffer{}
	sink := NewSink(out)
	workers := pool.NewWithLogger(2, quietLogger{})

	for i := 0; i < 5; i++ {
		header := fmt.Sprintf("file%d:", i)
		faulty := i == 3
		workers.Execute(func() {
			w := NewWriter(sink, header)
			defer w.Close()

			for line := 0; line < 20; line++ {
				fmt.Fprintf(w, "%s line %d\n", header, line)
			}
			if faulty {
				panic("deliberate task fault")
			}
		})
	}
	workers.Wait()

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Len(t, lines, 5*21, "even the faulty task flushes its buffered unit on Close")

	// Each file's unit must appear contiguously: a header, then its 20
	// lines, before any other file's header.
	current := ""
	remaining := 0
	for _, line := range lines {
		if remaining == 0 {
			require.True(t, strings.HasSuffix(line, ":"), "expected a header, got %q", line)
			current = line
			remaining = 20
			continue
		}
		require.True(t, strings.HasPrefix(line, current+" "), "line %q leaked into %s's unit", line, current)
		remaining--
	}
	assert.Zero(t, remaining)
}
