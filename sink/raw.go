package sink

import (
	"os"

	"github.com/wippyai/alis-assets/errors"
)

// Extensions of verbatim artifacts.
const (
	ExtVideo   = ".fli"
	ExtPattern = ".pattern"
	ExtPalette = ".act"
	ExtSample  = ".wav"
)

// SaveRaw writes data to path unchanged.
func SaveRaw(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.EncoderIO(path, err)
	}
	return nil
}
