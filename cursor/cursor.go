// Package cursor implements a bounded, in-place writer over a
// caller-provided mutable byte slice. It is the low-level primitive the
// container package's Containerizer uses to author a manifest container
// without any intermediate staging buffer: every write lands directly in
// the caller's output slice, and a seek/write/seek-back sequence is used to
// patch header fields once the body and signature lengths are known.
package cursor

import (
	"encoding/binary"
	"errors"
)

// ErrBufferExhausted is returned whenever a write or seek would reach
// beyond the bounds of the underlying buffer.
var ErrBufferExhausted = errors.New("cursor: buffer exhausted")

// Cursor is a bounded writer over buf. The "logical write position" is the
// offset the next WriteLE/WriteBytes call appends at; Seek moves it without
// writing, which is how Containerizer goes back to patch already-written
// header fields.
type Cursor struct {
	buf []byte
	pos int
	// consumed tracks the highest position ever reached by a forward
	// write, independent of where pos currently sits after a Seek. This is
	// what ConsumedLen reports: "how much of the buffer has been
	// authored", not "where the cursor happens to be right now".
	consumed int
}

// New returns a Cursor writing into buf starting at offset 0.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Seek moves the logical write position to the given absolute offset. It
// is an error to seek beyond the end of the buffer. Seeking forward of the
// high-water mark counts as consuming the skipped span, so that a cursor
// positioned past a not-yet-written header (as Containerizer does at
// construction) reports that span via ConsumedLen without requiring a
// dummy write.
func (c *Cursor) Seek(abs int) error {
	if abs < 0 || abs > len(c.buf) {
		return ErrBufferExhausted
	}
	c.pos = abs
	if c.pos > c.consumed {
		c.consumed = c.pos
	}
	return nil
}

// WriteBytes appends p at the current position, advancing it.
func (c *Cursor) WriteBytes(p []byte) error {
	if len(p) > len(c.buf)-c.pos {
		return ErrBufferExhausted
	}
	n := copy(c.buf[c.pos:], p)
	c.pos += n
	if c.pos > c.consumed {
		c.consumed = c.pos
	}
	return nil
}

// WriteLE16 writes v as a little-endian uint16 at the current position.
func (c *Cursor) WriteLE16(v uint16) error {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return c.WriteBytes(tmp[:])
}

// WriteLE32 writes v as a little-endian uint32 at the current position.
func (c *Cursor) WriteLE32(v uint32) error {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return c.WriteBytes(tmp[:])
}

// ConsumedLen returns the number of bytes authored so far: the high-water
// mark of the write position, not the current (possibly seeked-back) one.
func (c *Cursor) ConsumedLen() int {
	return c.consumed
}

// ConsumeWithPrior splits the buffer's consumed prefix into a message slice
// spanning [0, consumed) and a trailing slice of length n immediately
// following it, extending consumed by n. It is used once, at sign time, to
// obtain adjoining (header‖body, signature) slices without re-borrowing the
// whole buffer.
func (c *Cursor) ConsumeWithPrior(n int) (message, tail []byte, err error) {
	if n < 0 || n > len(c.buf)-c.consumed {
		return nil, nil, ErrBufferExhausted
	}
	message = c.buf[:c.consumed]
	tail = c.buf[c.consumed : c.consumed+n]
	c.consumed += n
	c.pos = c.consumed
	return message, tail, nil
}

// TakeConsumedBytes returns the prefix of the underlying buffer authored so
// far, i.e. buf[:ConsumedLen()].
func (c *Cursor) TakeConsumedBytes() []byte {
	return c.buf[:c.consumed]
}
