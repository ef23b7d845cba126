package canvas

import (
	"image/color"
	"testing"
)

func sprite(w, h int, fill byte, clear int) Sprite {
	pix := make([]byte, w*h)
	for i := range pix {
		pix[i] = fill
	}
	return Sprite{Pix: pix, Width: w, Height: h, Clear: clear}
}

func TestClip(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h int
		want       Rect
		ok         bool
	}{
		{"inside", 10, 10, 5, 5, Rect{0, 0, 10, 10, 5, 5}, true},
		{"left edge", -2, 0, 5, 5, Rect{2, 0, 0, 0, 3, 5}, true},
		{"top edge", 0, -3, 5, 5, Rect{0, 3, 0, 0, 5, 2}, true},
		{"right edge", 318, 0, 5, 1, Rect{0, 0, 318, 0, 2, 1}, true},
		{"bottom edge", 0, 198, 1, 5, Rect{0, 0, 0, 198, 1, 2}, true},
		{"fully left", -10, 0, 5, 5, Rect{}, false},
		{"fully below", 0, 200, 5, 5, Rect{}, false},
		{"empty", 5, 5, 0, 3, Rect{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Clip(tt.x, tt.y, tt.w, tt.h)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Clip = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBlitClearIndex(t *testing.T) {
	s := NewStack()
	spr := Sprite{Pix: []byte{1, 0, 2, 0}, Width: 2, Height: 2, Clear: 0}
	s.Layer(0).Blit(spr, 0, 0, false)
	c := s.Flatten()

	if c.At(0, 0) != 1 || c.At(0, 1) != 2 {
		t.Errorf("painted pixels wrong: %d %d", c.At(0, 0), c.At(0, 1))
	}
	if s.layers[0].covered[1] {
		t.Error("clear index should not cover the pixel")
	}
}

func TestBlitMirror(t *testing.T) {
	s := NewStack()
	spr := Sprite{Pix: []byte{1, 2, 3}, Width: 3, Height: 1, Clear: -1}
	s.Layer(0).Blit(spr, 0, 0, true)
	c := s.Flatten()
	for x, want := range []byte{3, 2, 1} {
		if c.At(x, 0) != want {
			t.Errorf("x=%d: got %d, want %d", x, c.At(x, 0), want)
		}
	}
}

func TestBlitMirrorClipped(t *testing.T) {
	s := NewStack()
	spr := Sprite{Pix: []byte{1, 2, 3, 4}, Width: 4, Height: 1, Clear: -1}
	s.Layer(0).Blit(spr, -2, 0, true)
	c := s.Flatten()
	// Mirrored row is 4 3 2 1; the first two columns fall off the left edge.
	if c.At(0, 0) != 2 || c.At(1, 0) != 1 {
		t.Errorf("got %d %d, want 2 1", c.At(0, 0), c.At(1, 0))
	}
}

func TestFlattenDepthOrder(t *testing.T) {
	s := NewStack()
	s.Layer(5).Blit(sprite(4, 4, 9, -1), 0, 0, false)
	s.Layer(-1).Blit(sprite(2, 2, 7, -1), 1, 1, false)
	s.Layer(2).Fill(0, 0, 1, 1, 0)

	if got := s.Depths(); len(got) != 3 || got[0] != 5 || got[1] != 2 || got[2] != -1 {
		t.Fatalf("Depths = %v, want [5 2 -1]", got)
	}

	c := s.Flatten()
	if c.At(0, 0) != 0 {
		t.Errorf("nearer fill should hide farther sprite, got %d", c.At(0, 0))
	}
	if c.At(1, 1) != 7 {
		t.Errorf("nearest sprite should win, got %d", c.At(1, 1))
	}
	if c.At(3, 3) != 9 {
		t.Errorf("farthest sprite visible where uncovered, got %d", c.At(3, 3))
	}
}

func TestFlattenCoveredZeroHidesFartherLayer(t *testing.T) {
	s := NewStack()
	s.Layer(3).Blit(sprite(2, 1, 7, -1), 0, 0, false)
	// Index 0 is painted: only 5 is transparent for this sprite.
	near := Sprite{Pix: []byte{0, 5}, Width: 2, Height: 1, Clear: 5}
	s.Layer(1).Blit(near, 0, 0, false)

	c := s.Flatten()
	if c.At(0, 0) != 0 {
		t.Errorf("painted index 0 should cover the farther layer, got %d", c.At(0, 0))
	}
	if c.At(1, 0) != 7 {
		t.Errorf("clear pixel should show the farther layer, got %d", c.At(1, 0))
	}
}

func TestSameDepthLaterWins(t *testing.T) {
	s := NewStack()
	l := s.Layer(0)
	l.Blit(sprite(2, 2, 1, -1), 0, 0, false)
	l.Blit(sprite(2, 2, 2, -1), 1, 0, false)
	c := s.Flatten()
	if c.At(1, 0) != 2 {
		t.Errorf("later command should overwrite, got %d", c.At(1, 0))
	}
}

func TestBlitRejectsShortPixels(t *testing.T) {
	s := NewStack()
	s.Layer(0).Blit(Sprite{Pix: []byte{1}, Width: 2, Height: 2, Clear: -1}, 0, 0, false)
	if s.Flatten().At(0, 0) != 0 {
		t.Error("short sprite should be ignored")
	}
}

func TestPaletted(t *testing.T) {
	c := New()
	c.Pix[Width+1] = 3
	img := c.Paletted(color.Palette{color.Black, color.White, color.Black, color.White})
	if img.ColorIndexAt(1, 1) != 3 {
		t.Errorf("ColorIndexAt = %d", img.ColorIndexAt(1, 1))
	}
}

func TestBoundsCorrection(t *testing.T) {
	t.Run("centres overflowing box", func(t *testing.T) {
		b := NewBounds()
		b.Add(-10, 50, 100, 10)
		b.Add(240, 60, 100, 10)
		if b.MinX != -10 || b.MaxX != 340 {
			t.Fatalf("bounds x = [%d,%d]", b.MinX, b.MaxX)
		}
		dx, dy := b.Correction()
		if dx != -5 {
			t.Errorf("dx = %d, want -5", dx)
		}
		if centre := (b.MinX+dx+b.MaxX+dx)/2; centre != Width/2 {
			t.Errorf("centre = %d, want %d", centre, Width/2)
		}
		if dy != 0 {
			t.Errorf("dy = %d, want 0 for a box that fits vertically", dy)
		}
	})

	t.Run("fits", func(t *testing.T) {
		b := NewBounds()
		b.Add(10, 10, 20, 20)
		if dx, dy := b.Correction(); dx != 0 || dy != 0 {
			t.Errorf("correction = %d,%d, want 0,0", dx, dy)
		}
	})

	t.Run("empty", func(t *testing.T) {
		b := NewBounds()
		if dx, dy := b.Correction(); dx != 0 || dy != 0 || b.Len() != 0 {
			t.Errorf("empty bounds corrected by %d,%d", dx, dy)
		}
	})

	t.Run("vertical", func(t *testing.T) {
		b := NewBounds()
		b.Add(0, -40, 10, 100)
		_, dy := b.Correction()
		if dy != Height/2-(50-40) {
			t.Errorf("dy = %d", dy)
		}
	})
}
