package script

import (
	"encoding/binary"
)

// Effective tags, after the table's tag modifier is applied.
const (
	tagBitmap4Legacy  = 0x00
	tagRectangle      = 0x01
	tagBitmap4Legacy2 = 0x02
	tagBitmap4        = 0x10
	tagBitmap4b       = 0x12
	tagBitmap8        = 0x14
	tagBitmap8b       = 0x16
	tagVideo          = 0x40
	tagPalette        = 0xfe
	tagComposite      = 0xff
	tagPattern        = 0x100
	tagSample         = 0x101
	tagSample2        = 0x102
	tagPattern2       = 0x104
)

// AssetSize estimates the bytes an entry occupies after its tag, for
// overlap tests only. trailing holds the bytes at the entry location; fewer
// than four yield zero for sized types. AssetSize never fails and never
// returns a negative size.
func AssetSize(tag uint32, tag1 byte, trailing []byte, order binary.ByteOrder) int {
	switch tag {
	case tagRectangle:
		return 4
	case tagPalette:
		if tag1 == 0 {
			return 32
		}
		return (int(tag1) + 1) * 3
	case tagComposite:
		return 8 * int(tag1)
	}
	if len(trailing) < 4 {
		return 0
	}
	switch tag {
	case tagBitmap4Legacy, tagBitmap4Legacy2, tagBitmap4, tagBitmap4b:
		w, h := dims(trailing, order)
		return w / 2 * h
	case tagBitmap8, tagBitmap8b:
		w, h := dims(trailing, order)
		return w * h
	case tagVideo, tagPattern, tagSample, tagSample2, tagPattern2:
		return max(int(order.Uint32(trailing))-1, 0)
	}
	return 0
}

func dims(b []byte, order binary.ByteOrder) (w, h int) {
	return int(order.Uint16(b)) + 1, int(order.Uint16(b[2:])) + 1
}
