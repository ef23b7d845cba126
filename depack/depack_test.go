package depack

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/wippyai/alis-assets/errors"
)

func iceFile(decrunched int, stream ...byte) []byte {
	buf := make([]byte, iceHeaderSize, iceHeaderSize+len(stream))
	binary.BigEndian.PutUint32(buf, iceMagic)
	binary.BigEndian.PutUint32(buf[4:], uint32(iceHeaderSize+len(stream)))
	binary.BigEndian.PutUint32(buf[8:], uint32(decrunched))
	return append(buf, stream...)
}

func TestICEUnpack(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		// literal run of one byte: bits 1 0
		{"single literal", iceFile(1, 'X', 0xa0), "X"},
		// literal run of two: bits 1 1 00
		{"literal run", iceFile(2, 'A', 'B', 0xc8), "AB"},
		// literal "AB" then a length 2 match at offset 0
		{"literal and match", iceFile(4, 0x08, 'A', 'B', 0xc1), "ABAB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ice ICE
			if !ice.IsPacked(tt.in) {
				t.Fatal("IsPacked = false")
			}
			if got := ice.DecodedSize(tt.in); got != len(tt.want) {
				t.Errorf("DecodedSize = %d, want %d", got, len(tt.want))
			}
			out, err := ice.Unpack(tt.in)
			if err != nil {
				t.Fatalf("Unpack: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Unpack = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestICEInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"truncated", iceFile(4, 0x08, 'A', 'B', 0xc1)[:14]},
		{"no payload", iceFile(1)},
		{"literal past input", iceFile(8, 0xc8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (ICE{}).Unpack(tt.in); !errors.IsKind(err, errors.KindInvalidData) {
				t.Errorf("err = %v, want invalid_data", err)
			}
		})
	}

	if _, err := (ICE{}).Unpack([]byte("plain")); !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("unpacked input: err = %v, want invalid_input", err)
	}
}

func TestZstdDump(t *testing.T) {
	script := bytes.Repeat([]byte("ALIS"), 100)
	var buf bytes.Buffer
	if err := WriteDump(&buf, script); err != nil {
		t.Fatalf("WriteDump: %v", err)
	}

	var z Zstd
	if !z.IsPacked(buf.Bytes()) {
		t.Fatal("dump not recognised")
	}
	if got := z.DecodedSize(buf.Bytes()); got != len(script) {
		t.Errorf("DecodedSize = %d, want %d", got, len(script))
	}
	out, err := z.Unpack(buf.Bytes())
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if !bytes.Equal(out, script) {
		t.Error("round trip changed the script")
	}
}

func TestDepack(t *testing.T) {
	plain := []byte("not packed at all")
	packed := iceFile(2, 'A', 'B', 0xc8)

	tests := []struct {
		name     string
		d        Depacker
		in       []byte
		want     []byte
		unpacked bool
		wantErr  bool
	}{
		{"passthrough", Passthrough{}, packed, packed, false, false},
		{"nil depacker", nil, packed, packed, false, false},
		{"chain plain", Default(), plain, plain, false, false},
		{"chain ice", Default(), packed, []byte("AB"), true, false},
		{"broken keeps input", ICE{}, iceFile(8, 0xc8), iceFile(8, 0xc8), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, unpacked, err := Depack(tt.d, tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if unpacked != tt.unpacked {
				t.Errorf("unpacked = %v, want %v", unpacked, tt.unpacked)
			}
			if !bytes.Equal(out, tt.want) {
				t.Errorf("out = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestChainUnrecognised(t *testing.T) {
	if _, err := Default().Unpack([]byte("plain")); !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("err = %v, want invalid_input", err)
	}
	if Default().DecodedSize([]byte("plain")) != 0 {
		t.Error("DecodedSize of unpacked buffer != 0")
	}
}
