// Package config loads extraction settings from an INI file.
//
//	[output]
//	dir            = out
//	format         = png
//	scale          = 2
//	truecolor      = true
//	template       = false
//	dump           = false
//	manifest       = false
//	dedup_palettes = false
//
//	[palette]
//	file = game.act
//	12   = title.act ; entry 12 only
//
//	[extract]
//	types    = image,composite
//	list     = false
//	workers  = 4
//	platform = atari
//
// Missing keys keep their defaults. Relative palette paths are resolved
// against the directory of the configuration file.
package config

import (
	"path/filepath"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/wippyai/alis-assets/errors"
	"github.com/wippyai/alis-assets/extract"
	"github.com/wippyai/alis-assets/palette"
	"github.com/wippyai/alis-assets/platform"
	"github.com/wippyai/alis-assets/sink"
)

// Config holds every setting the CLI accepts.
type Config struct {
	Out       string
	Format    string
	Scale     int
	TrueColor bool
	Template  bool
	Dump      bool
	Manifest  bool

	// DedupPalettes writes identical palettes of a script once.
	DedupPalettes bool

	Palette       string
	EntryPalettes map[int]string

	Types    string
	ListOnly bool
	Workers  int
	Platform string
}

// Default returns the settings used without a configuration file.
func Default() Config {
	return Config{
		Out:           ".",
		Format:        "png",
		Scale:         1,
		Types:         "all",
		Workers:       1,
		EntryPalettes: make(map[int]string),
	}
}

var loadOptions = ini.LoadOptions{
	InsensitiveSections:     true,
	InsensitiveKeys:         true,
	SkipUnrecognizableLines: true,
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "load "+path)
	}
	c, err := parse(f)
	if err != nil {
		return Config{}, err
	}
	c.resolve(filepath.Dir(path))
	return c, nil
}

// Parse reads INI data over the defaults.
func Parse(data []byte) (Config, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse config")
	}
	return parse(f)
}

func parse(f *ini.File) (Config, error) {
	c := Default()

	out := f.Section("output")
	c.Out = out.Key("dir").MustString(c.Out)
	c.Format = out.Key("format").MustString(c.Format)
	c.Scale = out.Key("scale").MustInt(c.Scale)
	c.TrueColor = out.Key("truecolor").MustBool(c.TrueColor)
	c.Template = out.Key("template").MustBool(c.Template)
	c.Dump = out.Key("dump").MustBool(c.Dump)
	c.Manifest = out.Key("manifest").MustBool(c.Manifest)
	c.DedupPalettes = out.Key("dedup_palettes").MustBool(c.DedupPalettes)

	for _, k := range f.Section("palette").Keys() {
		if k.Name() == "file" {
			c.Palette = k.String()
			continue
		}
		index, err := strconv.Atoi(k.Name())
		if err != nil || index < 0 {
			return Config{}, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Path("palette", k.Name()).
				Detail("palette keys are \"file\" or an entry index").
				Build()
		}
		c.EntryPalettes[index] = k.String()
	}

	ext := f.Section("extract")
	c.Types = ext.Key("types").MustString(c.Types)
	c.ListOnly = ext.Key("list").MustBool(c.ListOnly)
	c.Workers = ext.Key("workers").MustInt(c.Workers)
	c.Platform = ext.Key("platform").String()
	return c, nil
}

func (c *Config) resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Palette = abs(c.Palette)
	for i, p := range c.EntryPalettes {
		c.EntryPalettes[i] = abs(p)
	}
}

// Extractor builds an extractor from the settings, loading every palette
// file they name.
func (c Config) Extractor() (*extract.Extractor, error) {
	format, err := sink.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}
	types, err := extract.ParseCategories(c.Types)
	if err != nil {
		return nil, err
	}
	x := extract.New(c.Out).
		WithFormat(format).
		WithScale(c.Scale).
		WithForceTrueColor(c.TrueColor).
		WithTemplate(c.Template).
		WithDump(c.Dump).
		WithManifest(c.Manifest).
		WithDedupPalettes(c.DedupPalettes).
		WithCategories(types).
		WithListOnly(c.ListOnly).
		WithWorkers(c.Workers)

	if c.Platform != "" {
		p, err := platform.Parse(c.Platform)
		if err != nil {
			return nil, err
		}
		x.WithPlatform(p)
	}
	if c.Palette != "" {
		p, err := palette.Load(c.Palette)
		if err != nil {
			return nil, err
		}
		x.WithPalette(p)
	}
	for i, path := range c.EntryPalettes {
		p, err := palette.Load(path)
		if err != nil {
			return nil, err
		}
		x.WithEntryPalette(i, p)
	}
	return x, nil
}
