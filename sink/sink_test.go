package sink

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/wippyai/alis-assets/errors"
	"github.com/wippyai/alis-assets/palette"
	"github.com/wippyai/alis-assets/platform"
	"github.com/wippyai/alis-assets/script"
)

func TestNormalizePCM8(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"mostly unsigned", []byte{0x81, 0x82, 0x01}, []byte{0x01, 0x02, 0x81}},
		{"mostly signed", []byte{0x01, 0x02, 0x81}, []byte{0x01, 0x02, 0x81}},
		{"tie", []byte{0x90, 0x10}, []byte{0x90, 0x10}},
		{"empty", []byte{}, []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := bytes.Clone(tt.in)
			got := NormalizePCM8(in)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("NormalizePCM8(% x) = % x, want % x", tt.in, got, tt.want)
			}
			if !bytes.Equal(in, tt.in) {
				t.Error("input modified")
			}
		})
	}
}

func TestWriteWAV(t *testing.T) {
	var buf bytes.Buffer
	pcm := []byte{1, 2, 3}
	if err := WriteWAV(&buf, 11000, pcm); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	b := buf.Bytes()
	if len(b) != wavHeaderSize+len(pcm) {
		t.Fatalf("length = %d", len(b))
	}
	le := binary.LittleEndian
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"riff", string(b[0:4]), "RIFF"},
		{"riff size", le.Uint32(b[4:]), uint32(39)},
		{"wave", string(b[8:12]), "WAVE"},
		{"channels", le.Uint16(b[22:]), uint16(1)},
		{"rate", le.Uint32(b[24:]), uint32(11000)},
		{"bits", le.Uint16(b[34:]), uint16(8)},
		{"data size", le.Uint32(b[40:]), uint32(3)},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if !bytes.Equal(b[wavHeaderSize:], pcm) {
		t.Errorf("samples = % x", b[wavHeaderSize:])
	}
}

func TestSaveWAVNormalises(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.wav")
	if err := SaveWAV(path, 8000, []byte{0x81, 0x82, 0x01}); err != nil {
		t.Fatalf("SaveWAV: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b[wavHeaderSize:], []byte{0x01, 0x02, 0x81}) {
		t.Errorf("samples = % x", b[wavHeaderSize:])
	}
}

func testPalette() *palette.Palette {
	pal := palette.Default()
	pal.Set(1, 255, 0, 0)
	pal.Set(2, 0, 255, 0)
	return pal
}

func TestTrueColor(t *testing.T) {
	img := TrueColor(2, 1, []byte{1, 2}, testPalette(), 2)
	if c := img.NRGBAAt(0, 0); c.R != 255 || c.G != 0 || c.A != 255 {
		t.Errorf("pixel 0 = %+v", c)
	}
	if c := img.NRGBAAt(1, 0); c.G != 255 || c.A != 0 {
		t.Errorf("clear pixel = %+v, want green with alpha 0", c)
	}

	opaque := TrueColor(2, 1, []byte{1, 2}, testPalette(), -1)
	if c := opaque.NRGBAAt(1, 0); c.A != 255 {
		t.Errorf("alpha = %d without clear index", c.A)
	}
}

func TestScale(t *testing.T) {
	src := Indexed(2, 1, []byte{1, 2}, testPalette())
	got, ok := Scale(src, 3).(*image.Paletted)
	if !ok {
		t.Fatal("scaled paletted image lost its palette")
	}
	if b := got.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("bounds = %v", b)
	}
	if r, _, _, _ := got.At(2, 2).RGBA(); r>>8 != 255 {
		t.Errorf("pixel (2,2) red = %d", r>>8)
	}
	if _, g, _, _ := got.At(3, 0).RGBA(); g>>8 != 255 {
		t.Errorf("pixel (3,0) green = %d", g>>8)
	}

	rgba := Scale(TrueColor(1, 1, []byte{1}, testPalette(), -1), 2)
	if b := rgba.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("truecolour bounds = %v", b)
	}
	if Scale(src, 1) != image.Image(src) {
		t.Error("factor 1 copied the image")
	}
}

func TestSaveImage(t *testing.T) {
	pix := []byte{0, 1, 2, 1, 0, 2}
	img := Indexed(3, 2, pix, testPalette())
	dir := t.TempDir()

	tests := []struct {
		format Format
		decode func(*os.File) (image.Image, error)
	}{
		{PNG, func(f *os.File) (image.Image, error) { return png.Decode(f) }},
		{BMP, func(f *os.File) (image.Image, error) { return bmp.Decode(f) }},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			path := filepath.Join(dir, "img"+tt.format.Ext())
			if err := SaveImage(path, img, tt.format); err != nil {
				t.Fatalf("SaveImage: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			got, err := tt.decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			for i, v := range pix {
				x, y := i%3, i/3
				wr, wg, wb, _ := img.Palette[v].RGBA()
				gr, gg, gb, _ := got.At(x, y).RGBA()
				if wr != gr || wg != gg || wb != gb {
					t.Errorf("pixel (%d,%d) differs", x, y)
				}
			}
		})
	}
}

func TestSaveErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing", "x")
	errs := []error{
		SaveRaw(missing, []byte{1}),
		SaveWAV(missing, 8000, []byte{1}),
		SaveImage(missing, Indexed(1, 1, []byte{0}, palette.Default()), PNG),
	}
	for i, err := range errs {
		if !errors.IsKind(err, errors.KindEncoderIO) {
			t.Errorf("writer %d: err = %v, want encoder_io", i, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": PNG, "png": PNG, "BMP": BMP} {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("gif: err = %v", err)
	}
}

func TestWriteTemplate(t *testing.T) {
	// Header, then a two-entry table at 24 and the entries at 32.
	buf := make([]byte, 24, 64)
	buf[9] = 0x44
	binary.BigEndian.PutUint32(buf[10:], 14)
	binary.BigEndian.PutUint16(buf[14:], 2)
	buf = append(buf, 0, 0, 0, 8, 0, 0, 0, 10)
	buf = append(buf, 0x01, 0, 0, 0, 0, 0) // rectangle at 32
	buf = append(buf, 0x33, 0, 1, 2, 3, 4) // unknown at 38
	buf = append(buf, make([]byte, 8)...)

	s := script.New("t", buf, platform.AtariST)
	table, err := script.Locate(s)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	var out bytes.Buffer
	if err := WriteTemplate(&out, script.NewDecoder(s, table)); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"big_endian\n",
		`section "Address Block" {`,
		"    # 24...27\n    uint32 \"entry 000 address\"\n",
		"    # 32...38\n    hex 6 \"entry 000 rectangle\"\n",
		"    # 38...40\n    hex 2 \"entry 001 unknown\"\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("template missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "bytes 0") {
		t.Error("empty gap emitted")
	}
}
