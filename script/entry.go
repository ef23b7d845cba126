package script

import (
	"github.com/wippyai/alis-assets/canvas"
	"github.com/wippyai/alis-assets/palette"
)

// Entry is one decoded asset. Entries are created once per index by a
// Decoder and must not be modified afterwards.
type Entry struct {
	Index int
	Kind  Kind
	// Location is the offset just past the tag bytes, or -1 when the slot
	// did not resolve.
	Location int
	// Tag is the first tag byte plus the table's tag modifier.
	Tag uint32
	// Param is the second tag byte: colour count for palettes, command
	// count for composites, rate code for samples.
	Param byte

	Width  int
	Height int
	// Clear is the transparent index of a standalone bitmap, or -1.
	Clear int
	// Base is the palette offset added to 4-bit indices.
	Base byte

	// Payload holds pixels for bitmaps and composites, the 768 palette
	// bytes for palettes, the container file for videos and raw data for
	// patterns and samples.
	Payload []byte

	Palette    *palette.Palette
	Video      *VideoInfo
	SampleRate int
	Commands   []Command

	// Err records why an entry decoded as KindUnknown.
	Err error
}

// VideoInfo describes an embedded FLI/FLC animation.
type VideoInfo struct {
	Name string
	// Declared is the size recorded in front of the name.
	Declared int
	Size     int
	Magic    uint16
	Frames   int
	Width    int
	Height   int
}

// Command is one placement of a composite draw program.
type Command struct {
	Op    byte
	Index int
	X     int16
	Depth int16
	Y     int16
}

// Mirror reports whether the referenced bitmap is flipped horizontally.
func (c Command) Mirror() bool {
	return c.Op&1 != 0
}

// Sprite returns the entry as a blittable bitmap for composites. 2-bit and
// legacy 4-bit bitmaps use index 0 as transparent there.
func (e *Entry) Sprite() canvas.Sprite {
	transparent := e.Clear
	if transparent < 0 {
		transparent = 0
	}
	return canvas.Sprite{
		Pix:    e.Payload,
		Width:  e.Width,
		Height: e.Height,
		Clear:  transparent,
	}
}

// Failed reports whether decoding fell back to KindUnknown because of an
// error.
func (e *Entry) Failed() bool {
	return e.Kind == KindUnknown && e.Err != nil
}
