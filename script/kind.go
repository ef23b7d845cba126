package script

// Kind is the decoded type of an entry.
type Kind int

const (
	KindNone Kind = iota
	KindBitmap2Bit
	KindBitmap4BitLegacy
	KindBitmap4Bit
	KindBitmap8Bit
	KindVideo
	KindPalette16
	KindPalette256
	KindComposite
	KindRectangle
	KindPattern
	KindSample
	KindUnknown
)

var kindNames = [...]string{
	KindNone:             "none",
	KindBitmap2Bit:       "bitmap 2 bit",
	KindBitmap4BitLegacy: "bitmap 4 bit",
	KindBitmap4Bit:       "bitmap 4 bit (using 8 bit palette)",
	KindBitmap8Bit:       "bitmap 8 bit",
	KindVideo:            "video",
	KindPalette16:        "palette 16",
	KindPalette256:       "palette 256",
	KindComposite:        "composite",
	KindRectangle:        "rectangle",
	KindPattern:          "pattern",
	KindSample:           "sample",
	KindUnknown:          "unknown",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsBitmap reports whether entries of this kind carry an indexed image.
func (k Kind) IsBitmap() bool {
	switch k {
	case KindBitmap2Bit, KindBitmap4BitLegacy, KindBitmap4Bit, KindBitmap8Bit:
		return true
	}
	return false
}

// IsPalette reports whether entries of this kind carry a palette.
func (k Kind) IsPalette() bool {
	return k == KindPalette16 || k == KindPalette256
}
