package platform

import (
	"encoding/binary"
	"testing"
)

func TestGuess(t *testing.T) {
	tests := []struct {
		path string
		want Platform
	}{
		{"/games/storm/MAIN.AO", AtariST},
		{"main.io", DOS},
		{"intro.Mo", Macintosh},
		{"x.do", Amiga},
		{"x.co", AmigaAGA},
		{"x.fo", Falcon},
		{"readme.txt", Unknown},
		{"noext", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Guess(tt.path); got != tt.want {
				t.Errorf("Guess(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestByteOrder(t *testing.T) {
	if DOS.ByteOrder() != binary.LittleEndian {
		t.Error("DOS should be little-endian")
	}
	for _, p := range []Platform{AtariST, Falcon, Amiga, AmigaAGA, Macintosh, Unknown} {
		if p.ByteOrder() != binary.BigEndian {
			t.Errorf("%v should be big-endian", p)
		}
	}
}

func TestIsScript(t *testing.T) {
	for _, ext := range Extensions() {
		if !IsScript("file." + ext) {
			t.Errorf("IsScript(file.%s) = false", ext)
		}
	}
	if IsScript("file.png") {
		t.Error("IsScript(file.png) = true")
	}
}

func TestTwoBitBitmaps(t *testing.T) {
	if !Macintosh.TwoBitBitmaps() {
		t.Error("Macintosh scripts use 2-bit bitmaps")
	}
	if AtariST.TwoBitBitmaps() {
		t.Error("Atari scripts use 4-bit bitmaps")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{"atari", AtariST, false},
		{"DOS", DOS, false},
		{"mo", Macintosh, false},
		{".co", AmigaAGA, false},
		{"unknown", Unknown, true},
		{"c64", Unknown, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("Parse(%q) = %v, %v", tt.in, got, err)
		}
	}
}
