package script

import (
	"encoding/binary"

	abinary "github.com/wippyai/alis-assets/internal/binary"
	"github.com/wippyai/alis-assets/platform"
)

// Script is one depacked script image. It is never modified.
type Script struct {
	Name     string
	Platform platform.Platform
	r        *abinary.Reader
}

// New wraps buf for the given platform. The platform decides the byte order.
func New(name string, buf []byte, p platform.Platform) *Script {
	return &Script{
		Name:     name,
		Platform: p,
		r:        abinary.NewReader(buf, p.ByteOrder()),
	}
}

// Len returns the script size in bytes.
func (s *Script) Len() int {
	return s.r.Len()
}

// Bytes returns the script image. Callers must not modify it.
func (s *Script) Bytes() []byte {
	return s.r.Bytes()
}

// Order returns the byte order of multi-byte fields.
func (s *Script) Order() binary.ByteOrder {
	return s.r.Order()
}

// Reader returns the bounds-checked reader over the script.
func (s *Script) Reader() *abinary.Reader {
	return s.r
}

// Hex formats up to n bytes at off for log output.
func (s *Script) Hex(off, n int) string {
	return s.r.Hex(off, n)
}
