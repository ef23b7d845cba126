package sink

import (
	"image"
	"image/color"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/bmp"

	"github.com/wippyai/alis-assets/errors"
	"github.com/wippyai/alis-assets/palette"
)

// Format selects the image container.
type Format int

const (
	PNG Format = iota
	BMP
)

// ParseFormat maps "png" or "bmp" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	}
	return PNG, errors.InvalidInput(errors.PhaseConfig, "unknown image format "+s)
}

func (f Format) String() string {
	if f == BMP {
		return "bmp"
	}
	return "png"
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

func (f Format) encoder() imgio.Encoder {
	if f == BMP {
		return bmp.Encode
	}
	return imgio.PNGEncoder()
}

// Indexed wraps w x h palette indices as a paletted image. Missing pixels
// stay at index 0.
func Indexed(w, h int, pix []byte, pal *palette.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, w, h), pal.Colors())
	copy(img.Pix, pix)
	return img
}

// TrueColor expands indices through pal. Pixels equal to transparent get
// alpha 0; pass -1 to keep every pixel opaque.
func TrueColor(w, h int, pix []byte, pal *palette.Palette, transparent int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h && i < len(pix); i++ {
		r, g, b := pal.RGB(pix[i])
		a := uint8(0xff)
		if int(pix[i]) == transparent {
			a = 0
		}
		img.SetNRGBA(i%w, i/w, color.NRGBA{R: r, G: g, B: b, A: a})
	}
	return img
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling.
// Paletted images keep their palette.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx()*factor, b.Dy()*factor
	if p, ok := img.(*image.Paletted); ok {
		dst := image.NewPaletted(image.Rect(0, 0, w, h), p.Palette)
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), p, b, xdraw.Src, nil)
		return dst
	}
	return transform.Resize(img, w, h, transform.NearestNeighbor)
}

// SaveImage encodes img to path.
func SaveImage(path string, img image.Image, f Format) error {
	if err := imgio.Save(path, img, f.encoder()); err != nil {
		return errors.EncoderIO(path, err)
	}
	return nil
}
