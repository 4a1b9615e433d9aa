package http

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Reader buffers raw connection bytes and exposes the two read shapes the
// parser needs: terminator-delimited lines and fixed-length slices. Consumed
// bytes are never re-delivered.
type Reader struct {
	br      *bufio.Reader
	maxLine int
	line    []byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{
		br:      bufio.NewReaderSize(r, DefaultReadBufferSize),
		maxLine: MaxLineBytes,
	}
}

// Reset rearms the reader on a new source, keeping its buffer.
func (r *Reader) Reset(src io.Reader) {
	r.br.Reset(src)
	r.line = r.line[:0]
}

// ReadLine returns the next line without its terminator. Both CRLF and bare
// LF terminate a line. The returned slice is valid until the next call.
//
// EOF before any byte of the line fails with ErrConnectionClosed; EOF in the
// middle of a line fails with ErrTruncated. A line longer than MaxLineBytes
// fails with ErrRequestTooLarge.
func (r *Reader) ReadLine() ([]byte, error) {
	r.line = r.line[:0]

	for {
		b, err := r.br.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("http: read line: %w", err)
			}
			if len(r.line) == 0 {
				return nil, ErrConnectionClosed
			}
			return nil, ErrTruncated
		}

		if b == '\n' {
			line := r.line
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
			return line, nil
		}

		if len(r.line) >= r.maxLine {
			return nil, ErrRequestTooLarge
		}
		r.line = append(r.line, b)
	}
}

// ReadExact returns exactly n freshly allocated bytes, failing with
// ErrTruncated if the peer closes first.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncated
		}
		return nil, fmt.Errorf("http: read body: %w", err)
	}
	return buf, nil
}
