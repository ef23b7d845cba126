package extract

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/alis-assets/errors"
	"github.com/wippyai/alis-assets/platform"
)

// Scripts lists the script files directly inside dir, sorted by name.
func Scripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRead, errors.KindInvalidInput, err, "read directory "+dir)
	}
	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && platform.IsScript(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)
	return paths, nil
}

// ExtractDir extracts every script file in dir, up to Workers files at a
// time. A failing file does not stop the others; scripts without an asset
// table are logged and skipped. Reports are returned in file name order.
func (x *Extractor) ExtractDir(ctx context.Context, dir string) ([]*Report, error) {
	paths, err := Scripts(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		Logger().Warn("no scripts found", zap.String("dir", dir))
		return nil, nil
	}

	reports := make([]*Report, len(paths))
	errs := make([]error, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range min(x.workers, len(paths)) {
		wg.Go(func() {
			for i := range jobs {
				reports[i], errs[i] = x.ExtractFile(ctx, paths[i])
			}
		})
	}

feed:
	for i := range paths {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	var failed []error
	for i, err := range errs {
		if err == nil || errors.IsKind(err, errors.KindTableNotFound) ||
			stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			continue
		}
		failed = append(failed, err)
		Logger().Error("extraction failed", zap.String("file", paths[i]), zap.Error(err))
	}
	if err := ctx.Err(); err != nil {
		failed = append(failed, err)
	}

	out := reports[:0]
	for _, r := range reports {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, stderrors.Join(failed...)
}
