package depack

import (
	"encoding/binary"

	"github.com/wippyai/alis-assets/errors"
)

// ICE expands data crunched with the Atari "Pack-Ice" packer. The stream is
// decoded backwards from its last byte.
type ICE struct{}

const (
	iceMagic      = 0x49434521 // "ICE!"
	iceHeaderSize = 12
)

func (ICE) IsPacked(buf []byte) bool {
	return len(buf) >= iceHeaderSize && binary.BigEndian.Uint32(buf) == iceMagic
}

func (i ICE) DecodedSize(buf []byte) int {
	if !i.IsPacked(buf) {
		return 0
	}
	return int(binary.BigEndian.Uint32(buf[8:]))
}

func (i ICE) Unpack(buf []byte) ([]byte, error) {
	if !i.IsPacked(buf) {
		return nil, errors.InvalidInput(errors.PhaseDepack, "missing ICE! header")
	}
	crunched := int(binary.BigEndian.Uint32(buf[4:]))
	decrunched := i.DecodedSize(buf)
	if crunched <= iceHeaderSize || decrunched <= 0 {
		return nil, iceError("invalid lengths: crunched=%d, decrunched=%d", crunched, decrunched)
	}
	if len(buf) < crunched {
		return nil, iceError("truncated: have %d, need %d", len(buf), crunched)
	}

	s := &iceStream{
		data:     buf,
		output:   make([]byte, decrunched),
		packed:   crunched - 1,
		unpacked: decrunched,
	}
	s.bits = int(buf[s.packed])
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.output, nil
}

func iceError(format string, args ...any) error {
	return errors.New(errors.PhaseDepack, errors.KindInvalidData).
		Path("ice").
		Detail(format, args...).
		Build()
}

// iceStream reads packed input and writes output, both backwards.
type iceStream struct {
	data     []byte
	output   []byte
	packed   int
	unpacked int
	bits     int
}

// bit returns the next bit. The low set bit of the buffer marks its end.
func (s *iceStream) bit() int {
	b := s.bits >> 7 & 1
	s.bits = s.bits << 1 & 0xff
	if s.bits == 0 {
		s.packed--
		if s.packed < iceHeaderSize {
			s.bits = 1
			return b
		}
		s.bits = int(s.data[s.packed])
		b = s.bits >> 7 & 1
		s.bits = (s.bits<<1)&0xff + 1
	}
	return b
}

func (s *iceStream) read(n int) int {
	v := 0
	for ; n > 0; n-- {
		v = v<<1 | s.bit()
	}
	return v
}

var (
	matchBits  = [...]int{0, 0, 1, 2, 10}
	matchAdd   = [...]int{2, 3, 4, 6, 10}
	offsetBits = [...]int{8, 5, 12}
	offsetAdd  = [...]int{31, -1, 287}
	directBits = [...]int{1, 2, 2, 3, 8, 15}
	directOnes = [...]int{1, 3, 3, 7, 0xff, 0x7fff}
	directAdd  = [...]int{1, 2, 5, 8, 15, 270, 270}
)

func (s *iceStream) matchLength() int {
	i := 0
	for i < 4 && s.bit() != 0 {
		i++
	}
	n := 0
	if matchBits[i] > 0 {
		n = s.read(matchBits[i])
	}
	return n + matchAdd[i]
}

func (s *iceStream) matchOffset(length int) int {
	if length == 2 {
		if s.bit() != 0 {
			return s.read(9) + 0x3f
		}
		return s.read(6) - 1
	}
	i := 0
	for i < 2 && s.bit() != 0 {
		i++
	}
	off := s.read(offsetBits[i]) + offsetAdd[i]
	if off < 0 {
		off -= length - 2
	}
	return off
}

func (s *iceStream) directLength() int {
	i, n := 0, 0
	for i < len(directBits) {
		n = s.read(directBits[i])
		if n != directOnes[i] {
			break
		}
		i++
	}
	return n + directAdd[i]
}

// copyBack copies n output bytes from `from` to `to`, highest address first,
// so overlapping matches repeat their source.
func (s *iceStream) copyBack(to, from, n int) {
	for k := n - 1; k >= 0; k-- {
		t, f := to+k, from+k
		if t >= 0 && t < len(s.output) && f >= 0 && f < len(s.output) {
			s.output[t] = s.output[f]
		}
	}
}

func (s *iceStream) run() error {
	for {
		if s.bit() != 0 {
			n := s.directLength()
			s.packed -= n
			s.unpacked -= n
			if s.unpacked < 0 {
				return iceError("output underflow in literal run")
			}
			if s.packed < iceHeaderSize {
				return iceError("input underflow in literal run")
			}
			copy(s.output[s.unpacked:], s.data[s.packed:s.packed+n])
		}
		if s.unpacked <= 0 {
			return nil
		}

		n := s.matchLength()
		off := s.matchOffset(n)
		s.unpacked -= n
		if s.unpacked < 0 {
			return iceError("output underflow in match at %d", s.packed)
		}
		s.copyBack(s.unpacked, s.unpacked+n+off, n)
	}
}
