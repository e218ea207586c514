package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

var (
	// ErrInputCanceled is returned when the context ends before a line arrives.
	ErrInputCanceled = errors.New("input canceled")
	// ErrInputClosed is returned when the input ends before a line is entered.
	ErrInputClosed = errors.New("input closed")
)

type readResult struct {
	err  error
	line string
}

// LineReader reads lines from a terminal without blocking past the caller's
// context. A read abandoned by cancellation is not lost: its line is handed
// to the next call. Reads must not be issued concurrently.
type LineReader struct {
	src     *bufio.Reader
	mu      sync.Mutex
	pending chan readResult
}

// NewLineReader wraps src.
func NewLineReader(src io.Reader) *LineReader {
	if src == nil {
		panic("cli: nil input")
	}
	return &LineReader{src: bufio.NewReader(src)}
}

// ReadString reads up to and including delim. If an earlier read is still
// waiting on input, its result is returned instead of starting a new one.
func (r *LineReader) ReadString(ctx context.Context, delim byte) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCanceled
	}

	select {
	case <-ctx.Done():
		return "", ErrInputCanceled
	case res := <-r.inflight(delim):
		r.mu.Lock()
		r.pending = nil
		r.mu.Unlock()
		return res.line, res.err
	}
}

func (r *LineReader) inflight(delim byte) <-chan readResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		ch := make(chan readResult, 1)
		r.pending = ch
		go func() {
			line, err := r.src.ReadString(delim)
			ch <- readResult{line: line, err: err}
		}()
	}
	return r.pending
}

// ReadLine returns the next line with surrounding whitespace removed. A last
// line missing its newline still counts; an exhausted input gives
// ErrInputClosed.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	line, err := r.ReadString(ctx, '\n')
	switch {
	case errors.Is(err, io.EOF) && line == "":
		return "", ErrInputClosed
	case errors.Is(err, io.EOF):
	case err != nil:
		return "", err
	}
	return strings.TrimSpace(line), nil
}
