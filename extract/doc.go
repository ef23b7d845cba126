// Package extract runs the extraction pipeline over script files: depack,
// locate the asset table, decode every entry and write the selected
// categories through the sinks.
//
// An Extractor is configured with builder methods and is safe to share
// between goroutines once configured:
//
//	x := extract.New("out").
//	    WithCategories(extract.Image | extract.Composite).
//	    WithForceTrueColor(true).
//	    WithWorkers(4)
//	reports, err := x.ExtractDir(ctx, "scripts")
//
// Every script keeps its own decoder; nothing decoded from one script is
// visible to another.
package extract
