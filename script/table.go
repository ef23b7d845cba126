package script

import (
	"github.com/wippyai/alis-assets/errors"
)

// ModifiedTagSpace is the tag modifier of tables found through the sample
// block signature. Their entries decode as patterns and samples.
const ModifiedTagSpace = 0x100

// Table is the asset address table of a script.
type Table struct {
	// Address is the offset of slot 0.
	Address int
	// Entries is the number of 4-byte slots.
	Entries int
	// TagModifier is added to the first tag byte of every entry.
	TagModifier uint32
}

// Slot returns the offset of slot i.
func (t Table) Slot(i int) int {
	return t.Address + 4*i
}

// Location resolves entry i to the offset just past its two tag bytes.
// Slots hold a signed offset relative to the slot position plus two.
func (s *Script) Location(t Table, i int) (int, error) {
	slot := t.Slot(i)
	v, err := s.r.I32(slot)
	if err != nil {
		return -1, err
	}
	loc := slot + 2 + int(v)
	if v <= 0 || loc >= s.Len() {
		return -1, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path("entry", itoa(i)).
			Offset(slot).
			Value(int(v)).
			Detail("slot offset %d resolves outside the script", v).
			Build()
	}
	return loc, nil
}

// Tag returns the two tag bytes preceding an entry location.
func (s *Script) Tag(loc int) (tag0, tag1 byte, ok bool) {
	if loc < 2 || loc > s.Len() {
		return 0, 0, false
	}
	buf := s.Bytes()
	return buf[loc-2], buf[loc-1], true
}

// Fits reports whether every slot of t resolves to a location inside the
// script.
func Fits(s *Script, t Table) bool {
	if t.Entries <= 0 || t.Address < 0 || !s.r.Has(t.Address, 4*t.Entries) {
		return false
	}
	for i := range t.Entries {
		if _, err := s.Location(t, i); err != nil {
			return false
		}
	}
	return true
}

// FitsSamples validates a modified tag space table: every slot must hold a
// positive offset to a length-prefixed block that ends inside the script.
func FitsSamples(s *Script, t Table) bool {
	if t.Entries <= 0 || t.Address < 0 {
		return false
	}
	n := s.Len()
	loc := t.Address
	for range t.Entries {
		v, err := s.r.I32(loc)
		if err != nil || v <= 0 {
			return false
		}
		at := loc + int(v)
		if at < 0 || at+8 >= n {
			return false
		}
		size, err := s.r.U32(at + 2)
		if err != nil {
			return false
		}
		size--
		if int64(size) >= int64(n) || at+int(size) >= n {
			return false
		}
		loc += 4
	}
	return true
}

// DefaultAccept picks the validation matching the table's tag space.
func DefaultAccept(s *Script, t Table) bool {
	if t.TagModifier == ModifiedTagSpace {
		return FitsSamples(s, t)
	}
	return Fits(s, t)
}
