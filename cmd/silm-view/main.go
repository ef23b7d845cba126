// Command silm-view shows the bitmaps and composites of one script in a
// window.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wippyai/alis-assets/canvas"
	"github.com/wippyai/alis-assets/extract"
	"github.com/wippyai/alis-assets/palette"
	"github.com/wippyai/alis-assets/platform"
	"github.com/wippyai/alis-assets/script"
	"github.com/wippyai/alis-assets/sink"
)

const (
	ScreenWidth  = canvas.Width * 3
	ScreenHeight = canvas.Height*3 + 40
)

// Viewer pages through the drawable entries of a script.
type Viewer struct {
	name    string
	decoder *script.Decoder
	pals    palette.Context
	entries []*script.Entry
	images  map[int]*ebiten.Image
	current int
	zoom    float64
}

func NewViewer(name string, d *script.Decoder, override *palette.Palette) *Viewer {
	_, active := d.FirstPalette()
	pals := palette.NewContext().WithActive(active)
	if override != nil {
		pals = pals.WithOverride(override)
	}
	v := &Viewer{
		name:    name,
		decoder: d,
		pals:    pals,
		images:  make(map[int]*ebiten.Image),
		zoom:    3,
	}
	for _, e := range d.All() {
		if e.Width == 0 || e.Height == 0 {
			continue
		}
		if e.Kind.IsBitmap() || e.Kind == script.KindComposite {
			v.entries = append(v.entries, e)
		}
	}
	return v
}

func (v *Viewer) image(e *script.Entry) *ebiten.Image {
	if img, ok := v.images[e.Index]; ok {
		return img
	}
	transparent := e.Clear
	if e.Kind == script.KindComposite {
		transparent = -1
	}
	rgba := sink.TrueColor(e.Width, e.Height, e.Payload, v.pals.For(e.Index), transparent)
	img := ebiten.NewImageFromImage(rgba)
	v.images[e.Index] = img
	return img
}

func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if len(v.entries) == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.current = (v.current + 1) % len(v.entries)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		v.current = (v.current + len(v.entries) - 1) % len(v.entries)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		v.current = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		v.current = len(v.entries) - 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) && v.zoom < 8 {
		v.zoom++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) && v.zoom > 1 {
		v.zoom--
	}
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 40, 255})

	if len(v.entries) == 0 {
		ebitenutil.DebugPrintAt(screen, v.name+": no bitmaps or composites", 10, 10)
		return
	}

	e := v.entries[v.current]
	img := v.image(e)
	w, h := float64(e.Width)*v.zoom, float64(e.Height)*v.zoom

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(v.zoom, v.zoom)
	op.GeoM.Translate((ScreenWidth-w)/2, (ScreenHeight-40-h)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)

	info := fmt.Sprintf("%s | %d/%d | entry %d: %s | zoom %.0fx | [Left/Right] Page [+/-] Zoom [Q] Quit",
		v.name, v.current+1, len(v.entries), e.Index, e, v.zoom)
	ebitenutil.DebugPrintAt(screen, info, 5, ScreenHeight-20)
}

func (v *Viewer) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func main() {
	var (
		paletteFile = flag.String("p", "", "768-byte palette file overriding script palettes")
		platformArg = flag.String("platform", "", "Platform override")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: silm-view [-p palette.act] [-platform name] <script>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	x := extract.New("")
	if *platformArg != "" {
		p, err := platform.Parse(*platformArg)
		if err != nil {
			log.Fatal(err)
		}
		x.WithPlatform(p)
	}
	var override *palette.Palette
	if *paletteFile != "" {
		p, err := palette.Load(*paletteFile)
		if err != nil {
			log.Fatal(err)
		}
		override = p
	}

	s, _, err := x.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	d, err := extract.Open(s)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("silm-view " + s.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewViewer(s.Name, d, override)); err != nil {
		log.Fatal(err)
	}
}
