package script

import (
	"bytes"

	"github.com/icza/bitio"
)

// unpack2 decodes interleaved bitplanes: each group of four bytes yields
// sixteen pixels, bytes 0/2 feeding the first eight and bytes 1/3 the rest.
// A trailing partial group is decoded with its missing bytes taken as zero.
func unpack2(src []byte, w, h int) []byte {
	n := w * h
	out := make([]byte, n)
	var (
		group  [4]byte
		pixels [16]byte
	)
	for to, at := 0, 0; to < n && at < len(src); to, at = to+16, at+4 {
		group = [4]byte{}
		copy(group[:], src[at:])
		for c := range 8 {
			rot := 7 - c
			pixels[c] = (group[0]>>rot&1)<<7 | group[2]>>rot&1
			pixels[8+c] = (group[1]>>rot&1)<<7 | group[3]>>rot&1
		}
		copy(out[to:], pixels[:])
	}
	return out
}

// unpack4 expands packed nibbles, high nibble first, adding base to each.
func unpack4(src []byte, w, h int, base byte) []byte {
	n := w * h
	out := make([]byte, n)
	r := bitio.NewReader(bytes.NewReader(src))
	for i := 0; i < n && i < 2*len(src); i++ {
		v, err := r.ReadBits(4)
		if err != nil {
			break
		}
		out[i] = base + byte(v)
	}
	return out
}
