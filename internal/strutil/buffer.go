// Package strutil implements the escape/unescape and multi-line dedent
// rules for KDL strings (spec §4.4), grounded on ckdl's str.c
// (original_source/src/str.c).
package strutil

import "github.com/ATSOTECK/kdlgo/internal/codec"

// Buffer is a growable byte buffer, the Go analogue of ckdl's
// _kdl_write_buffer: a growable accumulator used by escape and unescape.
type Buffer struct {
	buf []byte
}

// NewBuffer returns a Buffer with capacity pre-sized to sizeHint bytes.
func NewBuffer(sizeHint int) *Buffer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Buffer{buf: make([]byte, 0, sizeHint)}
}

func (b *Buffer) WriteByte(c byte) { b.buf = append(b.buf, c) }

func (b *Buffer) WriteString(s string) { b.buf = append(b.buf, s...) }

func (b *Buffer) WriteBytes(p []byte) { b.buf = append(b.buf, p...) }

// WriteRune encodes r as UTF-8 and appends it. It returns false if r is not
// a valid Unicode scalar value encodable in UTF-8.
func (b *Buffer) WriteRune(r rune) bool {
	var tmp [4]byte
	n := codec.EncodeOne(r, tmp[:])
	if n == 0 {
		return false
	}
	b.buf = append(b.buf, tmp[:n]...)
	return true
}

func (b *Buffer) String() string { return string(b.buf) }

func (b *Buffer) Bytes() []byte { return b.buf }

func (b *Buffer) Len() int { return len(b.buf) }
