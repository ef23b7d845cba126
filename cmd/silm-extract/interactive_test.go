package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/alis-assets/extract"
)

// bitmapScript holds one 2x2 8-bit bitmap behind a table at 16.
func bitmapScript() []byte {
	be := binary.BigEndian
	buf := make([]byte, 20)
	buf[9] = 0x44
	be.PutUint32(buf[10:], 6)
	be.PutUint16(buf[14:], 1)
	be.PutUint32(buf[16:], 4)
	buf = append(buf, 0x14, 0, 0, 1, 0, 1, 0, 0, 1, 2, 3, 4)
	return append(buf, make([]byte, 8)...)
}

func TestInteractiveExtractCreatesOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.ao")
	if err := os.WriteFile(path, bitmapScript(), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "missing", "out")

	m := newInteractiveModel(extract.New(out), path)
	raw := m.extractScript()
	msg, ok := raw.(extractedMsg)
	if !ok {
		t.Fatalf("message = %T", raw)
	}
	if msg.err != nil {
		t.Fatalf("extract: %v", msg.err)
	}
	if _, err := os.Stat(filepath.Join(out, "main 0.png")); err != nil {
		t.Errorf("bitmap not written: %v", err)
	}
}

func TestParseEntryPalettes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    map[int]string
		wantErr bool
	}{
		{"single", "3=a.act", map[int]string{3: "a.act"}, false},
		{"several", "1=a.act, 7 = b.act", map[int]string{1: "a.act", 7: "b.act"}, false},
		{"missing file", "3", nil, true},
		{"bad index", "x=a.act", nil, true},
		{"negative index", "-1=a.act", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make(map[int]string)
			err := parseEntryPalettes(got, tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("entry %d = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}
