// Package script recovers the assets embedded in a depacked ALIS script.
//
// A script is a flat memory image with no header describing its assets. The
// asset table is found heuristically, then every slot of the table is
// decoded on demand into a typed Entry.
//
// # Locating the table
//
// Locate scans for the address-block marker the compiler left behind and
// validates candidates with an accept predicate:
//
//	s := script.New("intro", buf, platform.AtariST)
//	table, err := script.Locate(s)
//	if err != nil {
//	    // errors.KindTableNotFound: nothing to extract from this script
//	}
//
// Scripts from later engine revisions are found through a fixed signature
// instead and use the modified tag space (Table.TagModifier == 0x100).
//
// # Decoding entries
//
// A Decoder memoizes entries by index. Composite entries reference other
// entries; those references resolve through the same cache, so every caller
// observes one instance per index:
//
//	d := script.NewDecoder(s, table)
//	for i := range table.Entries {
//	    e := d.Entry(i)
//	    fmt.Println(i, e.Kind, e.Width, e.Height)
//	}
//
// Entries whose data would reach outside the script decode as KindUnknown
// with Entry.Err describing the failure.
//
// # Composites
//
// Draw-program entries (tag 0xFF) are rendered onto a 320x200 canvas. The
// placement commands are relative to a screen origin the script does not
// record, so the combined bounding box is re-centred when it leaves the
// screen.
package script
