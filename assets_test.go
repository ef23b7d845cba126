package alisassets

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/alis-assets/errors"
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

func writeScript(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, bitmapScript(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.ao")
	out := filepath.Join(dir, "out", "nested")

	reports, err := Extract(context.Background(), extract.New(out), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(reports) != 1 || len(reports[0].Artifacts) != 1 {
		t.Fatalf("reports = %+v", reports)
	}
	if _, err := os.Stat(filepath.Join(out, "main 0.png")); err != nil {
		t.Errorf("bitmap not written: %v", err)
	}
}

func TestExtractDirectory(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "a.ao")
	writeScript(t, dir, "b.io")
	out := filepath.Join(t.TempDir(), "out")

	reports, err := Extract(context.Background(), extract.New(out), dir)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
}

func TestExtractListOnlyCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.ao")
	out := filepath.Join(dir, "out")

	reports, err := Extract(context.Background(), extract.New(out).WithListOnly(true), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(reports[0].Entries) != 1 {
		t.Errorf("entries = %d, want 1", len(reports[0].Entries))
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output directory created in list mode: %v", err)
	}
}

func TestExtractMissingInput(t *testing.T) {
	_, err := Extract(context.Background(), extract.New(t.TempDir()), filepath.Join(t.TempDir(), "none.ao"))
	if !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("err = %v, want invalid_input", err)
	}
}
