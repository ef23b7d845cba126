package script

import (
	"github.com/wippyai/alis-assets/canvas"
	"github.com/wippyai/alis-assets/errors"
)

const commandSize = 8

// composite decodes the draw program of e and renders it. A program with no
// commands renders a blank canvas.
func (d *Decoder) composite(e *Entry) error {
	cmds, err := d.commands(e.Location, int(e.Param))
	if err != nil {
		return err
	}
	e.Kind = KindComposite
	e.Commands = cmds
	e.Width, e.Height = canvas.Width, canvas.Height
	e.Payload = d.Render(cmds).Pix
	return nil
}

// commands parses n placement commands at loc. The entry index is the low
// byte of the leading word in script byte order, the opcode the high byte.
func (d *Decoder) commands(loc, n int) ([]Command, error) {
	r := d.script.r
	if !r.Has(loc, n*commandSize) {
		return nil, errors.OutOfBounds(errors.PhaseRender, loc, n*commandSize, r.Len())
	}
	cmds := make([]Command, n)
	for b := range cmds {
		at := loc + b*commandSize
		word, _ := r.U16(at)
		x, _ := r.I16(at + 2)
		depth, _ := r.I16(at + 4)
		y, _ := r.I16(at + 6)
		cmds[b] = Command{
			Op:    byte(word >> 8),
			Index: int(word & 0xff),
			X:     x,
			Depth: depth,
			Y:     y,
		}
	}
	return cmds, nil
}

// Placement returns the top-left corner of a w x h bitmap drawn by c, before
// centring. Commands address the bitmap centre with y growing upwards.
func Placement(c Command, w, h int) (x, y int) {
	return 1 + int(c.X) - (w+1)/2, canvas.Height - (int(c.Y) + (h+1)/2)
}

// Render paints a draw program onto a fresh canvas. Bitmaps are placed into
// per-depth layers which are flattened farthest first; when the bitmaps
// leave the screen the whole scene is shifted to the centre.
func (d *Decoder) Render(cmds []Command) *canvas.Canvas {
	bounds := canvas.NewBounds()
	for _, c := range cmds {
		if c.Index >= d.table.Entries {
			continue
		}
		ref := d.Entry(c.Index)
		if !ref.Kind.IsBitmap() {
			continue
		}
		x, y := Placement(c, ref.Width, ref.Height)
		bounds.Add(x, y, ref.Width, ref.Height)
	}
	dx, dy := bounds.Correction()

	stack := canvas.NewStack()
	for _, c := range cmds {
		if c.Index >= d.table.Entries {
			continue
		}
		ref := d.Entry(c.Index)
		switch {
		case ref.Kind.IsBitmap():
			x, y := Placement(c, ref.Width, ref.Height)
			stack.Layer(c.Depth).Blit(ref.Sprite(), x+dx, y+dy, c.Mirror())
		case ref.Kind == KindRectangle && ref.Width > 0:
			x, y := Placement(c, ref.Width, ref.Height)
			stack.Layer(c.Depth).Fill(x+dx, y+dy, ref.Width, ref.Height, 0)
		}
	}
	return stack.Flatten()
}
