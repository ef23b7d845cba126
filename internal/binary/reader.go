// Package binary provides bounds-checked fixed-width reads over a script buffer.
package binary

import (
	"encoding/binary"
	"fmt"

	"github.com/wippyai/alis-assets/errors"
)

// Reader reads integers at absolute offsets of an in-memory buffer using
// the byte order of the platform the buffer came from.
type Reader struct {
	buf   []byte
	order binary.ByteOrder
}

// NewReader creates a Reader over buf. A nil order means big-endian.
func NewReader(buf []byte, order binary.ByteOrder) *Reader {
	if order == nil {
		order = binary.BigEndian
	}
	return &Reader{buf: buf, order: order}
}

// Len returns the buffer length.
func (r *Reader) Len() int {
	return len(r.buf)
}

// Order returns the byte order used for multi-byte reads.
func (r *Reader) Order() binary.ByteOrder {
	return r.order
}

// LittleEndian reports whether multi-byte reads are little-endian.
func (r *Reader) LittleEndian() bool {
	return r.order == binary.LittleEndian
}

// Bytes returns the underlying buffer. Callers must not modify it.
func (r *Reader) Bytes() []byte {
	return r.buf
}

// Has reports whether n bytes starting at off lie inside the buffer.
func (r *Reader) Has(off, n int) bool {
	return off >= 0 && n >= 0 && off <= len(r.buf) && n <= len(r.buf)-off
}

func (r *Reader) check(off, n int) error {
	if !r.Has(off, n) {
		return errors.OutOfBounds(errors.PhaseRead, off, n, len(r.buf))
	}
	return nil
}

// U8 reads one byte.
func (r *Reader) U8(off int) (uint8, error) {
	if err := r.check(off, 1); err != nil {
		return 0, err
	}
	return r.buf[off], nil
}

// U16 reads a 16-bit unsigned integer.
func (r *Reader) U16(off int) (uint16, error) {
	if err := r.check(off, 2); err != nil {
		return 0, err
	}
	return r.order.Uint16(r.buf[off:]), nil
}

// I16 reads a 16-bit signed integer.
func (r *Reader) I16(off int) (int16, error) {
	v, err := r.U16(off)
	return int16(v), err
}

// U32 reads a 32-bit unsigned integer.
func (r *Reader) U32(off int) (uint32, error) {
	if err := r.check(off, 4); err != nil {
		return 0, err
	}
	return r.order.Uint32(r.buf[off:]), nil
}

// I32 reads a 32-bit signed integer.
func (r *Reader) I32(off int) (int32, error) {
	v, err := r.U32(off)
	return int32(v), err
}

// Slice returns n bytes at off without copying.
func (r *Reader) Slice(off, n int) ([]byte, error) {
	if err := r.check(off, n); err != nil {
		return nil, err
	}
	return r.buf[off : off+n : off+n], nil
}

// Copy returns a copy of n bytes at off.
func (r *Reader) Copy(off, n int) ([]byte, error) {
	src, err := r.Slice(off, n)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, n)
	copy(dst, src)
	return dst, nil
}

// CString reads a NUL-terminated string of at most max bytes starting at off.
// The terminator is not required when max bytes are available.
func (r *Reader) CString(off, max int) ([]byte, error) {
	if err := r.check(off, 1); err != nil {
		return nil, err
	}
	end := off
	for end < len(r.buf) && end-off < max && r.buf[end] != 0 {
		end++
	}
	return r.buf[off:end:end], nil
}

// Hex formats up to n bytes at off as space separated hex pairs, followed by
// "..." when the range was truncated. Out-of-range bytes are omitted.
func (r *Reader) Hex(off, n int) string {
	if off < 0 {
		n += off
		off = 0
	}
	if n <= 0 || off >= len(r.buf) {
		return ""
	}
	truncated := false
	if n > len(r.buf)-off {
		n = len(r.buf) - off
		truncated = true
	}
	const limit = 24
	if n > limit {
		n = limit
		truncated = true
	}
	b := make([]byte, 0, n*3+3)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ' ')
		}
		b = fmt.Appendf(b, "%02x", r.buf[off+i])
	}
	if truncated {
		b = append(b, " ..."...)
	}
	return string(b)
}
