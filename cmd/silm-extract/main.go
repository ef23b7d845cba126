package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	alisassets "github.com/wippyai/alis-assets"
	"github.com/wippyai/alis-assets/config"
	"github.com/wippyai/alis-assets/extract"
	"github.com/wippyai/alis-assets/script"
)

type options struct {
	in          string
	configFile  string
	verbose     bool
	jsonLogs    bool
	interactive bool
}

func main() {
	cfg := config.Default()
	var opts options

	flag.StringVar(&opts.in, "in", "", "Script file or directory of scripts")
	flag.StringVar(&opts.configFile, "config", "", "INI configuration file")
	flag.StringVar(&cfg.Out, "o", cfg.Out, "Output directory")
	flag.StringVar(&cfg.Palette, "p", "", "768-byte palette file overriding script palettes")
	flag.BoolVar(&cfg.TrueColor, "f", false, "Force RGBA output")
	flag.BoolVar(&cfg.ListOnly, "l", false, "List entries without writing files")
	flag.StringVar(&cfg.Types, "types", cfg.Types, "Asset types to write (image,video,palette,composite,sound,all)")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "Image format (png, bmp)")
	flag.IntVar(&cfg.Scale, "scale", cfg.Scale, "Integer upscale factor for images")
	flag.BoolVar(&cfg.Template, "template", false, "Write a hex editor template per script")
	flag.BoolVar(&cfg.Dump, "dump", false, "Write the depacked script as .bin.zst")
	flag.BoolVar(&cfg.Manifest, "manifest", false, "Write a JSON manifest per script")
	flag.BoolVar(&cfg.DedupPalettes, "dedup-palettes", false, "Write identical palettes of a script once")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Scripts extracted concurrently")
	flag.StringVar(&cfg.Platform, "platform", "", "Platform override (atari, amiga, mac, dos, ...)")
	entryPalettes := flag.String("entry-palettes", "", "Per-entry palettes (INDEX=FILE,INDEX=FILE)")
	flag.BoolVar(&opts.verbose, "v", false, "Debug logging")
	flag.BoolVar(&opts.jsonLogs, "json", false, "JSON logs")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive entry browser")
	flag.Parse()

	if opts.in == "" && flag.NArg() > 0 {
		opts.in = flag.Arg(0)
	}
	if opts.in == "" {
		fmt.Fprintln(os.Stderr, "Usage: silm-extract -in <script|dir> [-o out] [-p palette.act] [-f] [-l] [-types image,sound]")
		fmt.Fprintln(os.Stderr, "       silm-extract -in <script> -i  (interactive mode)")
		os.Exit(1)
	}

	if opts.configFile != "" {
		if err := overlay(&cfg, opts.configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *entryPalettes != "" {
		if err := parseEntryPalettes(cfg.EntryPalettes, *entryPalettes); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger, err := newLogger(opts.verbose, opts.jsonLogs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	script.SetLogger(logger.Named("script"))
	extract.SetLogger(logger.Named("extract"))

	x, err := cfg.Extractor()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if opts.interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(x, opts.in); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(x, opts.in); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// overlay loads the configuration file and re-applies every flag given on
// the command line on top of it.
func overlay(cfg *config.Config, path string) error {
	fromFile, err := config.Load(path)
	if err != nil {
		return err
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	keep := *cfg
	*cfg = fromFile
	for name, apply := range map[string]func(){
		"o":              func() { cfg.Out = keep.Out },
		"p":              func() { cfg.Palette = keep.Palette },
		"f":              func() { cfg.TrueColor = keep.TrueColor },
		"l":              func() { cfg.ListOnly = keep.ListOnly },
		"types":          func() { cfg.Types = keep.Types },
		"format":         func() { cfg.Format = keep.Format },
		"scale":          func() { cfg.Scale = keep.Scale },
		"template":       func() { cfg.Template = keep.Template },
		"dump":           func() { cfg.Dump = keep.Dump },
		"manifest":       func() { cfg.Manifest = keep.Manifest },
		"dedup-palettes": func() { cfg.DedupPalettes = keep.DedupPalettes },
		"workers":        func() { cfg.Workers = keep.Workers },
		"platform":       func() { cfg.Platform = keep.Platform },
	} {
		if set[name] {
			apply()
		}
	}
	return nil
}

func parseEntryPalettes(dst map[int]string, s string) error {
	for _, kv := range strings.Split(s, ",") {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("entry palette %q: want INDEX=FILE", kv)
		}
		index, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || index < 0 {
			return fmt.Errorf("entry palette %q: bad index", kv)
		}
		dst[index] = strings.TrimSpace(parts[1])
	}
	return nil
}

func newLogger(verbose, jsonLogs bool) (*zap.Logger, error) {
	var cfg zap.Config
	if jsonLogs {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
		if term.IsTerminal(int(os.Stderr.Fd())) {
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	}
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func run(x *extract.Extractor, in string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reports, err := alisassets.Extract(ctx, x, in)
	for _, rep := range reports {
		printReport(rep)
	}
	return err
}

func printReport(rep *extract.Report) {
	if rep == nil {
		return
	}
	fmt.Printf("%s (%s, %d bytes", rep.Script, rep.Platform, rep.Size)
	if rep.Packed {
		fmt.Printf(", packed")
	}
	fmt.Printf(")\n")
	if rep.Table.Entries == 0 {
		fmt.Printf("  no asset table\n")
		return
	}
	fmt.Printf("  table 0x%06x, %d entries\n", rep.Table.Address, rep.Table.Entries)
	for _, e := range rep.Entries {
		fmt.Printf("  %4d  %s\n", e.Index, e)
	}
	fmt.Printf("  %d files written", len(rep.Artifacts))
	if rep.Duplicates > 0 {
		fmt.Printf(", %d duplicate palettes skipped", rep.Duplicates)
	}
	if len(rep.Errors) > 0 {
		fmt.Printf(", %d errors", len(rep.Errors))
	}
	fmt.Printf("\n")
}
