package binary

import (
	"encoding/binary"
	"errors"
	"testing"

	aerrors "github.com/wippyai/alis-assets/errors"
)

func TestReaderByteOrder(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78}

	tests := []struct {
		name  string
		order binary.ByteOrder
		u16   uint16
		u32   uint32
	}{
		{"big endian", binary.BigEndian, 0x1234, 0x12345678},
		{"little endian", binary.LittleEndian, 0x3412, 0x78563412},
		{"nil defaults to big endian", nil, 0x1234, 0x12345678},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(data, tt.order)
			u16, err := r.U16(0)
			if err != nil {
				t.Fatalf("U16: %v", err)
			}
			if u16 != tt.u16 {
				t.Errorf("U16: got 0x%04x, want 0x%04x", u16, tt.u16)
			}
			u32, err := r.U32(0)
			if err != nil {
				t.Fatalf("U32: %v", err)
			}
			if u32 != tt.u32 {
				t.Errorf("U32: got 0x%08x, want 0x%08x", u32, tt.u32)
			}
		})
	}
}

func TestReaderSigned(t *testing.T) {
	r := NewReader([]byte{0xff, 0xf6, 0xff, 0xff, 0xff, 0xfe}, binary.BigEndian)

	v16, err := r.I16(0)
	if err != nil || v16 != -10 {
		t.Errorf("I16: got %d, %v; want -10", v16, err)
	}
	v32, err := r.I32(2)
	if err != nil || v32 != -2 {
		t.Errorf("I32: got %d, %v; want -2", v32, err)
	}
}

func TestReaderOutOfBounds(t *testing.T) {
	r := NewReader([]byte{1, 2, 3}, binary.BigEndian)

	tests := []struct {
		name string
		read func() error
	}{
		{"U8 past end", func() error { _, err := r.U8(3); return err }},
		{"U16 straddling end", func() error { _, err := r.U16(2); return err }},
		{"U32 too wide", func() error { _, err := r.U32(0); return err }},
		{"negative offset", func() error { _, err := r.U8(-1); return err }},
		{"slice too long", func() error { _, err := r.Slice(1, 3); return err }},
		{"negative length", func() error { _, err := r.Slice(0, -1); return err }},
	}

	target := &aerrors.Error{Phase: aerrors.PhaseRead, Kind: aerrors.KindOutOfBounds}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, target) {
				t.Errorf("expected out_of_bounds, got %v", err)
			}
		})
	}
}

func TestReaderHas(t *testing.T) {
	r := NewReader(make([]byte, 8), nil)
	if !r.Has(0, 8) {
		t.Error("Has(0, 8) should be true")
	}
	if !r.Has(8, 0) {
		t.Error("Has(8, 0) should be true")
	}
	if r.Has(7, 2) {
		t.Error("Has(7, 2) should be false")
	}
	if r.Has(1<<62, 1<<62) {
		t.Error("Has should not overflow")
	}
}

func TestReaderCopyIsIndependent(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	r := NewReader(data, nil)
	c, err := r.Copy(1, 2)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	c[0] = 9
	if data[1] != 2 {
		t.Error("Copy aliases the source buffer")
	}
}

func TestReaderCString(t *testing.T) {
	r := NewReader([]byte("intro.fli\x00junk"), nil)
	s, err := r.CString(0, 26)
	if err != nil {
		t.Fatalf("CString: %v", err)
	}
	if string(s) != "intro.fli" {
		t.Errorf("CString: got %q", s)
	}

	s, err = r.CString(0, 5)
	if err != nil || string(s) != "intro" {
		t.Errorf("CString limited: got %q, %v", s, err)
	}
}

func TestReaderHex(t *testing.T) {
	r := NewReader([]byte{0x14, 0x00, 0x00, 0x07}, nil)
	if got := r.Hex(0, 2); got != "14 00" {
		t.Errorf("Hex: got %q", got)
	}
	if got := r.Hex(2, 8); got != "00 07 ..." {
		t.Errorf("Hex truncated: got %q", got)
	}
	if got := r.Hex(10, 2); got != "" {
		t.Errorf("Hex out of range: got %q", got)
	}
}
