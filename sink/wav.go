package sink

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/wippyai/alis-assets/errors"
)

const wavHeaderSize = 44

// NormalizePCM8 returns a copy of pcm as unsigned 8-bit samples. Samples
// stored signed are recognised by most bytes sitting above their sign-flipped
// value and are flipped.
func NormalizePCM8(pcm []byte) []byte {
	out := make([]byte, len(pcm))
	copy(out, pcm)
	unsigned, signed := 0, 0
	for _, b := range pcm {
		switch {
		case b > b^0x80:
			unsigned++
		case b < b^0x80:
			signed++
		}
	}
	if unsigned > signed {
		for i := range out {
			out[i] ^= 0x80
		}
	}
	return out
}

// WriteWAV writes pcm as a mono 8-bit RIFF/WAVE stream.
func WriteWAV(w io.Writer, rate int, pcm []byte) error {
	var h [wavHeaderSize]byte
	le := binary.LittleEndian
	copy(h[0:], "RIFF")
	le.PutUint32(h[4:], uint32(wavHeaderSize-8+len(pcm)))
	copy(h[8:], "WAVE")
	copy(h[12:], "fmt ")
	le.PutUint32(h[16:], 16)
	le.PutUint16(h[20:], 1) // PCM
	le.PutUint16(h[22:], 1) // mono
	le.PutUint32(h[24:], uint32(rate))
	le.PutUint32(h[28:], uint32(rate)) // byte rate
	le.PutUint16(h[32:], 1)            // block align
	le.PutUint16(h[34:], 8)
	copy(h[36:], "data")
	le.PutUint32(h[40:], uint32(len(pcm)))

	if _, err := w.Write(h[:]); err != nil {
		return err
	}
	_, err := w.Write(pcm)
	return err
}

// SaveWAV normalises pcm and writes it to path.
func SaveWAV(path string, rate int, pcm []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.EncoderIO(path, err)
	}
	bw := bufio.NewWriter(f)
	err = WriteWAV(bw, rate, NormalizePCM8(pcm))
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.EncoderIO(path, err)
	}
	return nil
}
