package alisassets

import (
	"context"
	"os"

	"github.com/wippyai/alis-assets/errors"
	"github.com/wippyai/alis-assets/extract"
)

// Extract runs x over in, which is either one script file or a directory of
// scripts. The output directory is created unless x only lists entries.
func Extract(ctx context.Context, x *extract.Extractor, in string) ([]*extract.Report, error) {
	info, err := os.Stat(in)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRead, errors.KindInvalidInput, err, "stat "+in)
	}
	if !x.ListOnly() {
		if err := os.MkdirAll(x.Out(), 0o755); err != nil {
			return nil, errors.EncoderIO(x.Out(), err)
		}
	}
	if info.IsDir() {
		return x.ExtractDir(ctx, in)
	}
	rep, err := x.ExtractFile(ctx, in)
	return []*extract.Report{rep}, err
}
