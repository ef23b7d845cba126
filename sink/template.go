package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/wippyai/alis-assets/errors"
	"github.com/wippyai/alis-assets/script"
)

// ExtTemplate is the extension of Hex Fiend templates.
const ExtTemplate = ".tcl"

const headerSize = 24

var headerFields = []struct {
	typ, name string
	size      int
}{
	{"uint16", "script id", 2},
	{"uint16", "unknown word 1", 2},
	{"uint16", "code start offset - 2", 2},
	{"uint32", "offset to subscript routine", 4},
	{"uint32", "offset to interrupt routine", 4},
	{"uint32", "unknown dword", 4},
	{"uint16", "unknown word 3", 2},
	{"uint16", "ram to allocate", 2},
	{"uint16", "unknown word 5", 2},
}

// WriteTemplate writes a Hex Fiend binary template that labels the script
// header, the address block and every resolvable entry.
func WriteTemplate(w io.Writer, d *script.Decoder) error {
	s, t := d.Script(), d.Table()
	bw := bufio.NewWriter(w)

	if s.Platform.LittleEndian() {
		fmt.Fprintln(bw, "little_endian")
	} else {
		fmt.Fprintln(bw, "big_endian")
	}

	fmt.Fprintln(bw, `section "Header" {`)
	pos := 0
	for _, f := range headerFields {
		fmt.Fprintf(bw, "    # %d...%d\n    %s %q\n", pos, pos+f.size-1, f.typ, f.name)
		pos += f.size
	}
	fmt.Fprintln(bw, "}")

	if gap := t.Address - headerSize; gap > 0 {
		fmt.Fprintf(bw, "bytes %d\n", gap)
	}
	fmt.Fprintln(bw, `section "Address Block" {`)
	for i := range t.Entries {
		slot := t.Slot(i)
		fmt.Fprintf(bw, "    # %d...%d\n    uint32 \"entry %03d address\"\n", slot, slot+3, i)
	}
	fmt.Fprintln(bw, "}")

	type span struct {
		index, loc int
	}
	var spans []span
	for i := range t.Entries {
		if loc, err := s.Location(t, i); err == nil {
			spans = append(spans, span{i, loc})
		}
	}
	slices.SortStableFunc(spans, func(a, b span) int { return a.loc - b.loc })

	pos = t.Slot(t.Entries)
	if len(spans) > 0 {
		if gap := spans[0].loc - 2 - pos; gap > 0 {
			fmt.Fprintf(bw, "bytes %d\n", gap)
		}
		pos = spans[0].loc - 2
	}
	fmt.Fprintln(bw, `section "Assets Block" {`)
	buf := s.Bytes()
	for _, sp := range spans {
		start := sp.loc - 2
		if start < pos {
			// Overlapping entries cannot be described sequentially.
			fmt.Fprintf(bw, "    # entry %03d at %d overlaps the previous entry\n", sp.index, start)
			continue
		}
		if gap := start - pos; gap > 0 {
			fmt.Fprintf(bw, "    bytes %d\n", gap)
		}
		end := min(sp.loc+4, len(buf))
		size := script.AssetSize(t.TagModifier+uint32(buf[start]), buf[start+1], buf[sp.loc:end], s.Order())
		size = min(size, len(buf)-sp.loc)
		fmt.Fprintf(bw, "    # %d...%d\n    hex %d \"entry %03d %s\"\n",
			start, sp.loc+size, size+2, sp.index, d.Entry(sp.index).Kind)
		pos = sp.loc + size
	}
	fmt.Fprintln(bw, "}")

	return bw.Flush()
}

// SaveTemplate writes the template of d to path.
func SaveTemplate(path string, d *script.Decoder) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.EncoderIO(path, err)
	}
	err = WriteTemplate(f, d)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.EncoderIO(path, err)
	}
	return nil
}
