// Package output serializes concurrent per-file search results onto one
// shared stream.
//
// Each task buffers its output privately in a Writer and flushes it as a
// single atomic unit — a header line followed by the buffered payload —
// under the shared Sink's lock. Units from different tasks therefore never
// interleave, and a task that produced nothing emits nothing, header
// included.
package output

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// bufferSize is the initial capacity of a Writer's private buffer.
const bufferSize = 8192

// Sink wraps the shared output stream every Writer flushes into. The mutex
// is the only cross-task synchronization in the output path.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSink wraps w as the shared destination for a set of Writers.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// emit writes one atomic unit: the header line followed by the payload.
func (s *Sink) emit(header string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "%s\n", header); err != nil {
		return err
	}
	_, err := s.w.Write(payload)
	return err
}

// Writer accumulates one task's output and emits it as a single unit.
// A Writer is owned by exactly one task and is not safe for concurrent use;
// only the Sink it flushes into is shared.
type Writer struct {
	sink   *Sink
	header string
	buf    bytes.Buffer
}

// NewWriter creates a Writer bound to the shared sink. The header —
// typically the searched file's identity — is emitted ahead of the payload,
// but only if at least one byte was written.
func NewWriter(sink *Sink, header string) *Writer {
	w := &Writer{sink: sink, header: header}
	w.buf.Grow(bufferSize)
	return w
}

// Write buffers p privately. Nothing reaches the shared stream until Flush.
func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Flush atomically writes the header and everything buffered, then clears
// the buffer. Flushing an empty buffer is a no-op, so a task with zero
// output prints no header.
func (w *Writer) Flush() error {
	if w.buf.Len() == 0 {
		return nil
	}
	if err := w.sink.emit(w.header, w.buf.Bytes()); err != nil {
		return err
	}
	w.buf.Reset()
	return nil
}

// Close flushes any remaining buffered output. Deferring Close guarantees
// the unit is emitted even when the task exits early.
func (w *Writer) Close() error {
	return w.Flush()
}
