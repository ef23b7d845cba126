package extract

import (
	stderrors "errors"

	"github.com/wippyai/alis-assets/platform"
	"github.com/wippyai/alis-assets/script"
)

// Artifact is one file written for an entry.
type Artifact struct {
	Index  int
	Kind   script.Kind
	Path   string
	Size   int
	Digest uint64
}

// Report summarises the extraction of one script.
type Report struct {
	Script   string
	Platform platform.Platform
	// Size is the depacked size; Packed reports whether depacking applied.
	Size   int
	Packed bool
	Table  script.Table
	// Entries holds every decoded entry in table order.
	Entries   []*script.Entry
	Artifacts []Artifact
	// Duplicates counts palettes skipped because an identical one was
	// already written for this script. Only set with WithDedupPalettes.
	Duplicates int
	// Errors collects failures that did not stop the script.
	Errors []error
}

// Err joins the collected errors.
func (r *Report) Err() error {
	return stderrors.Join(r.Errors...)
}

// Count returns how many entries decoded as kind k.
func (r *Report) Count(k script.Kind) int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == k {
			n++
		}
	}
	return n
}
