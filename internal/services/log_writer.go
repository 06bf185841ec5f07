package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/codyseavey/dataset-ingest/internal/metrics"
	"github.com/codyseavey/dataset-ingest/internal/models"
)

// writeQueueDepth bounds how many appends may wait on the writer goroutine
// before producers block.
const writeQueueDepth = 256

// ErrWriterClosed is returned by Append once shutdown has begun.
var ErrWriterClosed = errors.New("log writer closed")

type writeRequest struct {
	line   []byte
	result chan error
}

// LogWriter appends normalized entries to the dataset file as JSON lines.
//
// A single goroutine owns the file handle; concurrent callers enqueue
// requests on a channel, so lines never interleave and entries land in the
// order their writes were submitted. Append returns only after the physical
// write, and Close drains every enqueued write before closing the file.
type LogWriter struct {
	file     *os.File
	requests chan writeRequest
	done     chan struct{}
	closeErr error

	mu      sync.Mutex
	pending sync.WaitGroup
	closed  bool
}

// NewLogWriter opens (creating if needed) the dataset file for append and
// starts the writer goroutine. Parent directories are created as needed.
func NewLogWriter(path string) (*LogWriter, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	w := &LogWriter{
		file:     file,
		requests: make(chan writeRequest, writeQueueDepth),
		done:     make(chan struct{}),
	}
	go w.run()

	infoLog("Writer: appending to %s", path)
	return w, nil
}

// Append serializes entry as a single JSON line and submits it to the writer
// goroutine. It returns nil only once the line has been written in full.
// The context only bounds the wait to enqueue; a write already submitted is
// allowed to finish even if the caller's context is cancelled.
func (w *LogWriter) Append(ctx context.Context, entry models.Entry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	req := writeRequest{
		line:   append(line, '\n'),
		result: make(chan error, 1),
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWriterClosed
	}
	w.pending.Add(1)
	w.mu.Unlock()

	select {
	case w.requests <- req:
		w.pending.Done()
	case <-ctx.Done():
		w.pending.Done()
		return ctx.Err()
	}

	return <-req.result
}

// Close refuses new appends, drains everything already submitted, and closes
// the file. Safe to call more than once.
func (w *LogWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return w.closeErr
	}
	w.closed = true
	w.mu.Unlock()

	// Wait for callers that passed the closed check before closing the
	// channel out from under them.
	w.pending.Wait()
	close(w.requests)
	<-w.done

	infoLog("Writer: closed")
	return w.closeErr
}

func (w *LogWriter) run() {
	for req := range w.requests {
		_, err := w.file.Write(req.line)
		if err != nil {
			metrics.WriteErrorsTotal.Inc()
			infoLog("Writer: append failed: %v", err)
		}
		req.result <- err
	}
	w.closeErr = w.file.Close()
	close(w.done)
}
