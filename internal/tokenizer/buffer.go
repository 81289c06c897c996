// Package tokenizer implements the pull-based, zero-copy KDL tokenizer
// (spec §4.5), grounded on ckdl's tokenizer.c
// (_examples/original_source/src/tokenizer.c) for token rules and on the
// teacher's internal/compiler/lexer.go for Go-idiomatic streaming-scanner
// shape (position tracking, start/current offsets, backoff-on-mismatch).
package tokenizer

import "io"

const (
	minBufferSize       = 1024
	bufferSizeIncrement = 4096
)

// buffer is the growable byte window a Tokenizer reads from. For an
// in-memory source it simply wraps the caller's slice (read is nil and the
// window never grows); for a streaming source it owns a buffer that is
// compacted and grown on refill, the Go analogue of ckdl's
// _refill_tokenizer.
type buffer struct {
	data []byte
	pos  int // read cursor, offset into data
	read io.Reader
	eof  bool
}

func newStringBuffer(s []byte) *buffer {
	return &buffer{data: s, eof: true}
}

func newReaderBuffer(r io.Reader) *buffer {
	return &buffer{read: r}
}

// available returns the number of unconsumed bytes currently buffered.
func (b *buffer) available() int {
	return len(b.data) - b.pos
}

// ensure attempts to make at least n unconsumed bytes available, refilling
// from the reader as needed. It returns the number of bytes actually
// available, which may be less than n at end of input.
func (b *buffer) ensure(n int) int {
	for b.available() < n && !b.eof {
		if b.read == nil {
			b.eof = true
			break
		}
		b.refill()
	}
	return b.available()
}

func (b *buffer) refill() {
	// Compact: move unconsumed bytes to the front.
	remaining := b.available()
	if b.pos > 0 {
		copy(b.data[:remaining], b.data[b.pos:])
		b.data = b.data[:remaining]
		b.pos = 0
	}

	if cap(b.data)-len(b.data) < minBufferSize {
		grown := make([]byte, len(b.data), len(b.data)+bufferSizeIncrement)
		copy(grown, b.data)
		b.data = grown
	}

	free := b.data[len(b.data):cap(b.data)]
	n, err := b.read.Read(free)
	b.data = b.data[:len(b.data)+n]
	if err != nil {
		b.eof = true
	}
}

// bytes returns the currently unconsumed window. The slice is only valid
// until the next call that may refill (advance past the current window or
// ensure beyond what is already buffered).
func (b *buffer) bytes() []byte {
	return b.data[b.pos:]
}

func (b *buffer) advance(n int) {
	b.pos += n
}

func (b *buffer) atEOF() bool {
	return b.eof && b.available() == 0
}
