package depack

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/wippyai/alis-assets/errors"
)

// DumpExt is appended to script names for compressed dumps.
const DumpExt = ".bin.zst"

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Zstd expands zstd frames, which is how depacked scripts are dumped.
type Zstd struct{}

func (Zstd) IsPacked(buf []byte) bool {
	return bytes.HasPrefix(buf, zstdMagic)
}

func (z Zstd) DecodedSize(buf []byte) int {
	if !z.IsPacked(buf) {
		return 0
	}
	var h zstd.Header
	if err := h.Decode(buf); err != nil || !h.HasFCS {
		return 0
	}
	return int(h.FrameContentSize)
}

func (Zstd) Unpack(buf []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDepack, errors.KindInvalidData, err, "zstd decoder")
	}
	defer dec.Close()
	out, err := dec.DecodeAll(buf, nil)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDepack, errors.KindInvalidData, err, "zstd frame")
	}
	return out, nil
}

// WriteDump writes buf to w as a single zstd frame.
func WriteDump(w io.Writer, buf []byte) error {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()
	_, err = w.Write(enc.EncodeAll(buf, nil))
	return err
}
