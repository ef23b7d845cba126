package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/sjson"

	"github.com/wippyai/alis-assets/errors"
)

const ExtManifest = ".json"

// Manifest renders rep as indented JSON:
//
//	{"script": "main", "platform": "atari", "size": 1234, "packed": false,
//	 "table": {"address": "0x000010", "entries": 2, "modifier": 0},
//	 "entries": [{"index": 0, "kind": "palette 16", "location": "0x000018"}],
//	 "artifacts": [{"index": 0, "file": "main 0.act", "digest": "..."}]}
//
// Artifact file names are relative to the output directory.
func Manifest(rep *Report) ([]byte, error) {
	out := []byte("{}")
	set := func(path string, v any) {
		if out == nil {
			return
		}
		var err error
		if out, err = sjson.SetBytes(out, path, v); err != nil {
			out = nil
		}
	}

	set("script", rep.Script)
	set("platform", rep.Platform.String())
	set("size", rep.Size)
	set("packed", rep.Packed)
	set("table.address", fmt.Sprintf("0x%06x", rep.Table.Address))
	set("table.entries", rep.Table.Entries)
	set("table.modifier", rep.Table.TagModifier)
	set("entries", []any{})
	for i, e := range rep.Entries {
		prefix := fmt.Sprintf("entries.%d.", i)
		set(prefix+"index", e.Index)
		set(prefix+"kind", e.Kind.String())
		if e.Location >= 0 {
			set(prefix+"location", fmt.Sprintf("0x%06x", e.Location))
		}
		if e.Width > 0 || e.Height > 0 {
			set(prefix+"width", e.Width)
			set(prefix+"height", e.Height)
		}
		if e.Err != nil {
			set(prefix+"error", e.Err.Error())
		}
	}
	set("artifacts", []any{})
	for i, a := range rep.Artifacts {
		prefix := fmt.Sprintf("artifacts.%d.", i)
		set(prefix+"index", a.Index)
		set(prefix+"kind", a.Kind.String())
		set(prefix+"file", filepath.Base(a.Path))
		set(prefix+"size", a.Size)
		set(prefix+"digest", fmt.Sprintf("%016x", a.Digest))
	}
	set("duplicates", rep.Duplicates)
	if out == nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Path("manifest", rep.Script).
			Detail("cannot encode manifest").
			Build()
	}

	return indent(rep.Script, out)
}

func indent(name string, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Path("manifest", name).
			Cause(err).
			Detail("indent manifest").
			Build()
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// SaveManifest writes the manifest of rep to path.
func SaveManifest(path string, rep *Report) error {
	data, err := Manifest(rep)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.EncoderIO(path, err)
	}
	return nil
}
