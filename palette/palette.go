// Package palette holds 256-colour RGB palettes and the chain that decides
// which palette an entry is rendered with.
package palette

import (
	"fmt"
	"image/color"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/wippyai/alis-assets/errors"
)

// Size is the byte size of a palette: 256 RGB triples.
const Size = 256 * 3

// Palette is 256 RGB triples, independent of the bitmap depth it serves.
type Palette [Size]byte

// Default returns the grayscale ramp used when a script defines no palette:
// sixteen 16-step ramps, so both 4-bit and 8-bit indices stay visible.
func Default() *Palette {
	var p Palette
	for ramp := 0; ramp < 16; ramp++ {
		for i := 0; i < 16; i++ {
			at := (ramp*16 + i) * 3
			v := byte(i * 16)
			p[at], p[at+1], p[at+2] = v, v, v
		}
	}
	return &p
}

// Parse copies exactly Size bytes into a palette.
func Parse(b []byte) (*Palette, error) {
	if len(b) != Size {
		return nil, errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("palette must be %d bytes, got %d", Size, len(b)))
	}
	var p Palette
	copy(p[:], b)
	return &p, nil
}

// Load reads a raw 768-byte palette file (the .act files this tool writes).
func Load(path string) (*Palette, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read palette "+path)
	}
	return Parse(b)
}

// RGB returns the colour at index i.
func (p *Palette) RGB(i uint8) (r, g, b uint8) {
	at := int(i) * 3
	return p[at], p[at+1], p[at+2]
}

// Set stores the colour at index i.
func (p *Palette) Set(i uint8, r, g, b uint8) {
	at := int(i) * 3
	p[at], p[at+1], p[at+2] = r, g, b
}

// Colors converts the palette for use with image.Paletted.
func (p *Palette) Colors() color.Palette {
	out := make(color.Palette, 256)
	for i := range out {
		r, g, b := p.RGB(uint8(i))
		out[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return out
}

// Digest identifies the palette contents.
func (p *Palette) Digest() uint64 {
	return xxhash.Sum64(p[:])
}

// Bytes returns the palette as a byte slice sharing storage with p.
func (p *Palette) Bytes() []byte {
	return p[:]
}
