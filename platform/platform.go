// Package platform identifies the machine an ALIS script was compiled for.
//
// The compiler emitted one script flavour per platform and marked it only by
// file extension. The platform decides the byte order of every multi-byte
// field and how legacy bitmap tags are interpreted.
package platform

import (
	"encoding/binary"
	"path/filepath"
	"strings"

	"github.com/wippyai/alis-assets/errors"
)

// Platform is a target machine of the ALIS compiler.
type Platform int

const (
	Unknown Platform = iota
	AtariST
	Falcon
	Amiga
	AmigaAGA
	Macintosh
	DOS
)

var names = map[Platform]string{
	Unknown:   "unknown",
	AtariST:   "atari",
	Falcon:    "falcon",
	Amiga:     "amiga",
	AmigaAGA:  "aga",
	Macintosh: "mac",
	DOS:       "dos",
}

var byExtension = map[string]Platform{
	"ao": AtariST,
	"fo": Falcon,
	"do": Amiga,
	"co": AmigaAGA,
	"mo": Macintosh,
	"io": DOS,
}

func (p Platform) String() string {
	if s, ok := names[p]; ok {
		return s
	}
	return "unknown"
}

// Extensions returns the known script file extensions without the dot.
func Extensions() []string {
	return []string{"ao", "co", "do", "fo", "io", "mo"}
}

// FromExtension maps a file extension (with or without the dot, any case).
func FromExtension(ext string) Platform {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return byExtension[ext]
}

// Guess derives the platform from a script path.
func Guess(path string) Platform {
	return FromExtension(filepath.Ext(path))
}

// Parse accepts a platform name such as "atari" or a script extension such
// as "ao".
func Parse(s string) (Platform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range names {
		if p != Unknown && name == s {
			return p, nil
		}
	}
	if p := FromExtension(s); p != Unknown {
		return p, nil
	}
	return Unknown, errors.InvalidInput(errors.PhaseConfig, "unknown platform "+s)
}

// IsScript reports whether path carries a known script extension.
func IsScript(path string) bool {
	return Guess(path) != Unknown
}

// LittleEndian reports whether the platform stores integers little-endian.
// Only the DOS build does; everything else ran on 680x0 machines.
func (p Platform) LittleEndian() bool {
	return p == DOS
}

// ByteOrder returns the byte order for multi-byte script fields.
func (p Platform) ByteOrder() binary.ByteOrder {
	if p.LittleEndian() {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// TwoBitBitmaps reports whether legacy bitmap tags 0x00/0x02 hold
// interleaved 2-bit images rather than packed 4-bit ones.
func (p Platform) TwoBitBitmaps() bool {
	return p == Macintosh
}
