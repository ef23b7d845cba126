// Package canvas implements the fixed 320x200 indexed raster that composite
// entries are rendered onto, together with the per-depth layers and the
// placement correction used while rendering.
package canvas

import (
	"image"
	"image/color"
	"slices"
)

// Screen dimensions of the engine.
const (
	Width  = 320
	Height = 200
)

// Canvas is a Width x Height raster holding one palette index per pixel.
type Canvas struct {
	Pix []byte
}

// New returns a canvas cleared to index 0.
func New() *Canvas {
	return &Canvas{Pix: make([]byte, Width*Height)}
}

// At returns the palette index at (x, y), or 0 outside the canvas.
func (c *Canvas) At(x, y int) byte {
	if x < 0 || y < 0 || x >= Width || y >= Height {
		return 0
	}
	return c.Pix[y*Width+x]
}

// Paletted wraps the canvas pixels as an image using pal.
func (c *Canvas) Paletted(pal color.Palette) *image.Paletted {
	return &image.Paletted{
		Pix:     c.Pix,
		Stride:  Width,
		Rect:    image.Rect(0, 0, Width, Height),
		Palette: pal,
	}
}

// Sprite is an indexed bitmap placed onto a layer.
type Sprite struct {
	Pix    []byte
	Width  int
	Height int
	// Clear is the transparent index, or -1 when every index is painted.
	Clear int
}

// Layer is one depth plane of a composite. Covered pixels are tracked
// separately from their value so that index 0 can still hide farther layers.
type Layer struct {
	pix     []byte
	covered []bool
}

func newLayer() *Layer {
	return &Layer{
		pix:     make([]byte, Width*Height),
		covered: make([]bool, Width*Height),
	}
}

// Blit paints s with its top-left corner at (x, y), clipped to the canvas.
// With mirror set each source row is read right to left.
func (l *Layer) Blit(s Sprite, x, y int, mirror bool) {
	if s.Width <= 0 || s.Height <= 0 || len(s.Pix) < s.Width*s.Height {
		return
	}
	r, ok := Clip(x, y, s.Width, s.Height)
	if !ok {
		return
	}
	for sy := r.SrcY; sy < r.SrcY+r.H; sy++ {
		row := (y + sy) * Width
		for sx := r.SrcX; sx < r.SrcX+r.W; sx++ {
			col := sx
			if mirror {
				col = s.Width - (sx + 1)
			}
			v := s.Pix[sy*s.Width+col]
			if s.Clear >= 0 && int(v) == s.Clear {
				continue
			}
			at := row + x + sx
			l.pix[at] = v
			l.covered[at] = true
		}
	}
}

// Fill paints a solid w x h block of index at (x, y), clipped to the canvas.
func (l *Layer) Fill(x, y, w, h int, index byte) {
	r, ok := Clip(x, y, w, h)
	if !ok {
		return
	}
	for dy := r.DstY; dy < r.DstY+r.H; dy++ {
		row := dy * Width
		for dx := r.DstX; dx < r.DstX+r.W; dx++ {
			l.pix[row+dx] = index
			l.covered[row+dx] = true
		}
	}
}

// Rect is the visible part of a w x h block placed at some position.
type Rect struct {
	SrcX, SrcY int
	DstX, DstY int
	W, H       int
}

// Clip intersects a w x h block at (x, y) with the canvas. It reports false
// when nothing of the block is visible.
func Clip(x, y, w, h int) (Rect, bool) {
	r := Rect{DstX: x, DstY: y, W: w, H: h}
	if r.DstX < 0 {
		r.SrcX = -r.DstX
		r.W += r.DstX
		r.DstX = 0
	}
	if r.DstY < 0 {
		r.SrcY = -r.DstY
		r.H += r.DstY
		r.DstY = 0
	}
	if r.DstX+r.W > Width {
		r.W = Width - r.DstX
	}
	if r.DstY+r.H > Height {
		r.H = Height - r.DstY
	}
	if r.W <= 0 || r.H <= 0 {
		return Rect{}, false
	}
	return r, true
}

// Stack groups layers by depth for one composite.
type Stack struct {
	layers map[int16]*Layer
}

// NewStack returns an empty layer stack.
func NewStack() *Stack {
	return &Stack{layers: make(map[int16]*Layer)}
}

// Layer returns the layer for depth, creating it on first use.
func (s *Stack) Layer(depth int16) *Layer {
	l, ok := s.layers[depth]
	if !ok {
		l = newLayer()
		s.layers[depth] = l
	}
	return l
}

// Depths returns the depths in paint order: largest (farthest) first.
func (s *Stack) Depths() []int16 {
	depths := make([]int16, 0, len(s.layers))
	for d := range s.layers {
		depths = append(depths, d)
	}
	slices.Sort(depths)
	slices.Reverse(depths)
	return depths
}

// Flatten paints every layer back to front onto a new canvas.
func (s *Stack) Flatten() *Canvas {
	c := New()
	for _, d := range s.Depths() {
		l := s.layers[d]
		for i, ok := range l.covered {
			if ok {
				c.Pix[i] = l.pix[i]
			}
		}
	}
	return c
}
