// Package alisassets extracts the graphics, palettes, animations and sounds
// embedded in Silmarils ALIS game scripts.
//
// ALIS scripts (.ao, .co, .do, .fo, .io, .mo) carry an asset table: a run of
// 32-bit relative offsets, each pointing just past a two byte tag that
// identifies a bitmap, palette, composite, FLI animation, pattern or sample.
// The table position is not recorded anywhere and is found heuristically.
//
// # Architecture Overview
//
//	alisassets/          Extract convenience over files and directories
//	├── script/          Table location, asset sizing, entry decoding, composites
//	├── canvas/          320x200 indexed raster, depth layers, placement bounds
//	├── palette/         768-byte palettes and per-entry resolution
//	├── platform/        Extension based platform detection and byte order
//	├── depack/          ICE! and zstd container depacking
//	├── sink/            PNG/BMP, WAV, raw and hex template writers
//	├── extract/         Pipeline, worker pool and per-script reports
//	├── config/          INI configuration
//	├── errors/          Structured error types for debugging
//	└── cmd/             silm-extract CLI and silm-view viewer
//
// # Quick Start
//
// Extract every asset of a script:
//
//	x := extract.New("out").WithScale(2)
//	rep, err := x.ExtractFile(ctx, "DATA/MAIN.AO")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(rep.Artifacts), "files written")
//
// Decode entries without writing anything:
//
//	s := script.New("main", buf, platform.AtariST)
//	table, err := script.Locate(s)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d := script.NewDecoder(s, table)
//	for _, e := range d.All() {
//	    fmt.Println(e.Index, e)
//	}
//
// # Thread Safety
//
// Extractor is safe for concurrent use once configured. Decoder memoizes
// entries and must be used by a single goroutine.
package alisassets
