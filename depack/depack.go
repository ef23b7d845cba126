// Package depack restores the flat memory image of packed script files.
//
// Scripts ship compressed with one of several packers. The extractor only
// needs to recognise a packed buffer and expand it; anything it does not
// recognise is handled as already depacked.
package depack

import (
	"github.com/wippyai/alis-assets/errors"
)

// Depacker recognises and expands one packed container format.
type Depacker interface {
	// IsPacked reports whether buf starts with this format's header.
	IsPacked(buf []byte) bool
	// DecodedSize returns the size announced by the header, or 0.
	DecodedSize(buf []byte) int
	// Unpack expands buf.
	Unpack(buf []byte) ([]byte, error)
}

// Passthrough recognises nothing and returns buffers unchanged.
type Passthrough struct{}

func (Passthrough) IsPacked([]byte) bool { return false }

func (Passthrough) DecodedSize(buf []byte) int { return len(buf) }

func (Passthrough) Unpack(buf []byte) ([]byte, error) { return buf, nil }

// Chain tries each depacker in order and uses the first that recognises the
// buffer.
type Chain []Depacker

// Default returns the chain of every supported packer.
func Default() Chain {
	return Chain{ICE{}, Zstd{}}
}

func (c Chain) match(buf []byte) Depacker {
	for _, d := range c {
		if d.IsPacked(buf) {
			return d
		}
	}
	return nil
}

func (c Chain) IsPacked(buf []byte) bool {
	return c.match(buf) != nil
}

func (c Chain) DecodedSize(buf []byte) int {
	if d := c.match(buf); d != nil {
		return d.DecodedSize(buf)
	}
	return 0
}

func (c Chain) Unpack(buf []byte) ([]byte, error) {
	d := c.match(buf)
	if d == nil {
		return nil, errors.InvalidInput(errors.PhaseDepack, "unrecognised packer")
	}
	return d.Unpack(buf)
}

// Depack expands buf when d recognises it. Unpacked reports whether the
// returned buffer differs from the input. A failing unpack returns the
// input unchanged together with the error.
func Depack(d Depacker, buf []byte) (out []byte, unpacked bool, err error) {
	if d == nil || !d.IsPacked(buf) {
		return buf, false, nil
	}
	out, err = d.Unpack(buf)
	if err != nil {
		return buf, false, err
	}
	return out, true, nil
}
