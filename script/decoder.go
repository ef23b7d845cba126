package script

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/wippyai/alis-assets/errors"
	"github.com/wippyai/alis-assets/palette"
)

type slotState uint8

const (
	stateEmpty slotState = iota
	stateDecoding
	stateDone
)

// Decoder turns table slots into entries, once per index. A Decoder belongs
// to one script and is not safe for concurrent use.
type Decoder struct {
	script  *Script
	table   Table
	entries []*Entry
	state   []slotState
}

// NewDecoder creates a decoder for the entries of t.
func NewDecoder(s *Script, t Table) *Decoder {
	return &Decoder{
		script:  s,
		table:   t,
		entries: make([]*Entry, t.Entries),
		state:   make([]slotState, t.Entries),
	}
}

// Script returns the decoded script.
func (d *Decoder) Script() *Script {
	return d.script
}

// Table returns the asset table being decoded.
func (d *Decoder) Table() Table {
	return d.table
}

// Len returns the number of table entries.
func (d *Decoder) Len() int {
	return d.table.Entries
}

// Entry returns the decoded entry at index i. Repeated calls return the same
// instance. An index referenced while its own decode is in progress yields a
// fresh KindUnknown entry that is not cached.
func (d *Decoder) Entry(i int) *Entry {
	if i < 0 || i >= d.table.Entries {
		return &Entry{
			Index:    i,
			Kind:     KindUnknown,
			Location: -1,
			Clear:    -1,
			Err: errors.New(errors.PhaseDecode, errors.KindInvalidInput).
				Path("entry", itoa(i)).
				Detail("index outside table of %d entries", d.table.Entries).
				Build(),
		}
	}
	switch d.state[i] {
	case stateDone:
		return d.entries[i]
	case stateDecoding:
		Logger().Debug("entry referenced while decoding",
			zap.String("script", d.script.Name),
			zap.Int("index", i))
		return &Entry{Index: i, Kind: KindUnknown, Location: -1, Clear: -1, Err: errors.Cycle(i)}
	}
	d.state[i] = stateDecoding
	e := d.decode(i)
	d.entries[i] = e
	d.state[i] = stateDone
	return e
}

// All decodes every entry in table order.
func (d *Decoder) All() []*Entry {
	out := make([]*Entry, d.table.Entries)
	for i := range out {
		out[i] = d.Entry(i)
	}
	return out
}

// FirstPalette returns the index and palette of the first full palette
// entry (tag fe00 or feff), or -1 and nil when the script has none.
func (d *Decoder) FirstPalette() (int, *palette.Palette) {
	for i := range d.table.Entries {
		loc, err := d.script.Location(d.table, i)
		if err != nil {
			continue
		}
		tag0, tag1, _ := d.script.Tag(loc)
		if d.table.TagModifier+uint32(tag0) != tagPalette || (tag1 != 0x00 && tag1 != 0xff) {
			continue
		}
		if e := d.Entry(i); e.Palette != nil {
			return i, e.Palette
		}
	}
	return -1, nil
}

func (d *Decoder) decode(i int) *Entry {
	loc, err := d.script.Location(d.table, i)
	if err != nil {
		return &Entry{Index: i, Kind: KindUnknown, Location: -1, Clear: -1, Err: err}
	}
	tag0, tag1, _ := d.script.Tag(loc)
	e := &Entry{
		Index:    i,
		Location: loc,
		Tag:      d.table.TagModifier + uint32(tag0),
		Param:    tag1,
		Clear:    -1,
	}

	switch e.Tag {
	case tagRectangle:
		err = d.rectangle(e)
	case tagBitmap4Legacy, tagBitmap4Legacy2:
		err = d.bitmapLegacy(e)
	case tagBitmap4, tagBitmap4b:
		err = d.bitmap4(e)
	case tagBitmap8, tagBitmap8b:
		err = d.bitmap8(e)
	case tagVideo:
		err = d.video(e)
	case tagPalette:
		err = d.palette(e)
	case tagComposite:
		err = d.composite(e)
	case tagPattern, tagPattern2:
		err = d.block(e, KindPattern)
	case tagSample, tagSample2:
		if err = d.block(e, KindSample); err == nil {
			e.SampleRate = sampleRate(e.Param)
		}
	default:
		if e.Tag > tagPattern {
			Logger().Debug("unknown sound type",
				zap.String("script", d.script.Name),
				zap.Int("index", i),
				zap.Uint32("tag", e.Tag))
		}
		err = errors.UnknownTag(i, e.Tag, loc)
	}

	if err != nil {
		Logger().Debug("entry decoded as unknown",
			zap.String("script", d.script.Name),
			zap.Int("index", i),
			zap.Int("location", loc),
			zap.String("data", d.script.Hex(loc-2, 24)),
			zap.Error(err))
		return &Entry{
			Index:    i,
			Kind:     KindUnknown,
			Location: loc,
			Tag:      e.Tag,
			Param:    e.Param,
			Clear:    -1,
			Err:      err,
		}
	}
	return e
}

func (d *Decoder) dims(loc int) (w, h int, err error) {
	r := d.script.r
	a, err := r.U16(loc)
	if err != nil {
		return 0, 0, err
	}
	b, err := r.U16(loc + 2)
	if err != nil {
		return 0, 0, err
	}
	return int(a) + 1, int(b) + 1, nil
}

func (d *Decoder) rectangle(e *Entry) error {
	e.Kind = KindRectangle
	// The rectangle size is optional; composites skip rectangles without one.
	if w, h, err := d.dims(e.Location); err == nil {
		e.Width, e.Height = w, h
	}
	return nil
}

// bitmapLegacy tries the narrowest encoding the platform allows that stays
// inside the script and clear of every other entry.
func (d *Decoder) bitmapLegacy(e *Entry) error {
	w, h, err := d.dims(e.Location)
	if err != nil {
		return err
	}
	at := e.Location + 4

	type candidate struct {
		kind   Kind
		length int
	}
	candidates := []candidate{{KindBitmap4BitLegacy, w / 2 * h}}
	if d.script.Platform.TwoBitBitmaps() {
		candidates = append([]candidate{{KindBitmap2Bit, w / 4 * h}}, candidates...)
	}

	for _, c := range candidates {
		src, err := d.script.r.Slice(at, c.length)
		if err != nil {
			continue
		}
		if Overlaps(d.script, d.table, e.Index, e.Location, c.length) {
			continue
		}
		e.Kind, e.Width, e.Height = c.kind, w, h
		if c.kind == KindBitmap2Bit {
			e.Payload = unpack2(src, w, h)
		} else {
			e.Payload = unpack4(src, w, h, 0)
		}
		return nil
	}
	return errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
		Path("entry", itoa(e.Index)).
		Offset(e.Location).
		Detail("no bitmap encoding of %dx%d fits", w, h).
		Build()
}

func (d *Decoder) bitmap4(e *Entry) error {
	w, h, err := d.dims(e.Location)
	if err != nil {
		return err
	}
	r := d.script.r
	base, err := r.U8(e.Location + 4)
	if err != nil {
		return err
	}
	transparent, err := r.U8(e.Location + 5)
	if err != nil {
		return err
	}
	src, err := r.Slice(e.Location+6, w/2*h)
	if err != nil {
		return err
	}
	e.Kind, e.Width, e.Height = KindBitmap4Bit, w, h
	e.Base = base
	e.Clear = int(base) + int(transparent)
	e.Payload = unpack4(src, w, h, base)
	return nil
}

func (d *Decoder) bitmap8(e *Entry) error {
	w, h, err := d.dims(e.Location)
	if err != nil {
		return err
	}
	transparent, err := d.script.r.U8(e.Location + 5)
	if err != nil {
		return err
	}
	pix, err := d.script.r.Copy(e.Location+6, w*h)
	if err != nil {
		return err
	}
	e.Kind, e.Width, e.Height = KindBitmap8Bit, w, h
	e.Clear = int(transparent)
	e.Payload = pix
	return nil
}

// FLI headers are little-endian on every platform.
const (
	videoNameLen = 26
	videoHeader  = 30
)

func (d *Decoder) video(e *Entry) error {
	r := d.script.r
	declared, err := r.U32(e.Location)
	if err != nil {
		return err
	}
	raw, err := r.CString(e.Location+4, videoNameLen)
	if err != nil {
		return err
	}
	name, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "video name")
	}
	fli, err := r.Slice(e.Location+videoHeader, 12)
	if err != nil {
		return err
	}
	size := int(le32(fli))
	payload, err := r.Copy(e.Location+videoHeader, size)
	if err != nil {
		return err
	}
	e.Kind = KindVideo
	e.Payload = payload
	e.Video = &VideoInfo{
		Name:     string(name),
		Declared: int(declared),
		Size:     size,
		Magic:    le16(fli[4:]),
		Frames:   int(le16(fli[6:])),
		Width:    int(le16(fli[8:])),
		Height:   int(le16(fli[10:])),
	}
	e.Width, e.Height = e.Video.Width, e.Video.Height
	return nil
}

func le16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (d *Decoder) palette(e *Entry) error {
	pal := palette.Default()
	r := d.script.r
	if e.Param == 0 {
		src, err := r.Slice(e.Location, 32)
		if err != nil {
			return err
		}
		for f := range 16 {
			hi, lo := src[f*2], src[f*2+1]
			pal.Set(uint8(f), (hi&7)<<5, (lo>>4)<<5, (lo&7)<<5)
		}
		e.Kind = KindPalette16
	} else {
		n := int(e.Param) + 1
		src, err := r.Slice(e.Location+2, n*3)
		if err != nil {
			return err
		}
		for f := range n {
			pal.Set(uint8(f), src[f*3], src[f*3+1], src[f*3+2])
		}
		e.Kind = KindPalette256
	}
	e.Palette = pal
	e.Payload = pal.Bytes()
	return nil
}

func (d *Decoder) block(e *Entry, kind Kind) error {
	r := d.script.r
	n, err := r.U32(e.Location)
	if err != nil {
		return err
	}
	n--
	if int64(n) >= int64(r.Len()) {
		return errors.OutOfBounds(errors.PhaseDecode, e.Location+4, int(n), r.Len())
	}
	data, err := r.Copy(e.Location+4, int(n))
	if err != nil {
		return err
	}
	e.Kind = kind
	e.Payload = data
	return nil
}

// sampleRate maps the rate code of a sample tag to Hz. Codes outside 3..23
// play at 8 kHz.
func sampleRate(code byte) int {
	if code < 3 || code > 23 {
		code = 8
	}
	return int(code) * 1000
}

// String formats a one-line summary of the entry.
func (e *Entry) String() string {
	switch {
	case e.Kind.IsBitmap():
		return fmt.Sprintf("%s %dx%d", e.Kind, e.Width, e.Height)
	case e.Kind == KindVideo && e.Video != nil:
		return fmt.Sprintf("%s %q %d frames", e.Kind, e.Video.Name, e.Video.Frames)
	case e.Kind == KindSample:
		return fmt.Sprintf("%s %d bytes %d Hz", e.Kind, len(e.Payload), e.SampleRate)
	case e.Kind == KindComposite:
		return fmt.Sprintf("%s %d commands", e.Kind, len(e.Commands))
	case e.Kind == KindUnknown && e.Err != nil:
		return fmt.Sprintf("%s (%v)", e.Kind, e.Err)
	}
	return e.Kind.String()
}
