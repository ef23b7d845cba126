package extract

import (
	"maps"

	"github.com/wippyai/alis-assets/depack"
	"github.com/wippyai/alis-assets/palette"
	"github.com/wippyai/alis-assets/platform"
	"github.com/wippyai/alis-assets/sink"
)

// Extractor writes the assets of scripts to an output directory. Use the
// builder methods to configure it before the first extraction.
type Extractor struct {
	out        string
	categories Category
	format     sink.Format
	scale      int
	trueColor  bool
	listOnly   bool
	template   bool
	dump       bool
	manifest   bool
	dedupPals  bool
	workers    int
	palette    *palette.Palette
	entryPals  map[int]*palette.Palette
	depacker   depack.Depacker
	platform   platform.Platform
}

// New creates an extractor writing every category as PNG into out.
func New(out string) *Extractor {
	return &Extractor{
		out:        out,
		categories: All,
		format:     sink.PNG,
		scale:      1,
		workers:    1,
		entryPals:  make(map[int]*palette.Palette),
		depacker:   depack.Default(),
	}
}

// WithCategories limits the written artifacts. Decoding still covers every
// entry.
func (x *Extractor) WithCategories(c Category) *Extractor {
	x.categories = c
	return x
}

// WithFormat sets the image container.
func (x *Extractor) WithFormat(f sink.Format) *Extractor {
	x.format = f
	return x
}

// WithScale enlarges written images by an integer factor.
func (x *Extractor) WithScale(n int) *Extractor {
	x.scale = max(n, 1)
	return x
}

// WithForceTrueColor writes RGBA images with the clear index transparent.
func (x *Extractor) WithForceTrueColor(on bool) *Extractor {
	x.trueColor = on
	return x
}

// WithListOnly logs entries without writing anything.
func (x *Extractor) WithListOnly(on bool) *Extractor {
	x.listOnly = on
	return x
}

// WithTemplate also writes a Hex Fiend template per script.
func (x *Extractor) WithTemplate(on bool) *Extractor {
	x.template = on
	return x
}

// WithDump also writes the depacked script as a zstd file.
func (x *Extractor) WithDump(on bool) *Extractor {
	x.dump = on
	return x
}

// WithManifest also writes a JSON summary of each script's table,
// entries and artifacts.
func (x *Extractor) WithManifest(on bool) *Extractor {
	x.manifest = on
	return x
}

// WithDedupPalettes writes identical palettes of a script only once. By
// default every palette entry gets its own file.
func (x *Extractor) WithDedupPalettes(on bool) *Extractor {
	x.dedupPals = on
	return x
}

// WithWorkers sets how many files ExtractDir processes at once.
func (x *Extractor) WithWorkers(n int) *Extractor {
	x.workers = max(n, 1)
	return x
}

// WithPalette renders every entry with p instead of the script palette.
func (x *Extractor) WithPalette(p *palette.Palette) *Extractor {
	x.palette = p
	return x
}

// WithEntryPalette renders entry index with p, taking precedence over
// WithPalette.
func (x *Extractor) WithEntryPalette(index int, p *palette.Palette) *Extractor {
	x.entryPals[index] = p
	return x
}

// WithDepacker replaces the default packer chain.
func (x *Extractor) WithDepacker(d depack.Depacker) *Extractor {
	x.depacker = d
	return x
}

// WithPlatform forces the platform instead of guessing it from file names.
func (x *Extractor) WithPlatform(p platform.Platform) *Extractor {
	x.platform = p
	return x
}

// Out returns the output directory.
func (x *Extractor) Out() string {
	return x.out
}

// Categories returns the categories written.
func (x *Extractor) Categories() Category {
	return x.categories
}

// Workers returns the number of concurrent files.
func (x *Extractor) Workers() int {
	return x.workers
}

// ListOnly reports whether writing is disabled.
func (x *Extractor) ListOnly() bool {
	return x.listOnly
}

// Palettes returns the palette context for a script whose first full
// palette is active (nil if it has none).
func (x *Extractor) Palettes(active *palette.Palette) palette.Context {
	return palette.NewContext().
		WithActive(active).
		WithOverride(x.palette).
		WithEntries(maps.Clone(x.entryPals))
}
