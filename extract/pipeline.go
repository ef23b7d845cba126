package extract

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/wippyai/alis-assets/depack"
	"github.com/wippyai/alis-assets/errors"
	"github.com/wippyai/alis-assets/palette"
	"github.com/wippyai/alis-assets/platform"
	"github.com/wippyai/alis-assets/script"
	"github.com/wippyai/alis-assets/sink"
)

const hexContext = 24

// Name returns the artifact base name of a script path: the file name
// without its extension.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadFile loads and depacks a script file.
func (x *Extractor) ReadFile(path string) (*script.Script, bool, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, false, errors.Wrap(errors.PhaseRead, errors.KindInvalidInput, err, "read "+path)
	}
	p := x.platform
	if p == platform.Unknown {
		p = platform.Guess(path)
	}
	s, packed := x.load(Name(path), buf, p)
	return s, packed, nil
}

func (x *Extractor) load(name string, buf []byte, p platform.Platform) (*script.Script, bool) {
	data, packed, err := depack.Depack(x.depacker, buf)
	if err != nil {
		Logger().Warn("depack failed, using raw bytes",
			zap.String("script", name),
			zap.Error(err))
	}
	return script.New(name, data, p), packed
}

// Open locates the asset table of s and returns a decoder for it.
func Open(s *script.Script) (*script.Decoder, error) {
	table, err := script.Locate(s)
	if err != nil {
		return nil, err
	}
	return script.NewDecoder(s, table), nil
}

// ExtractFile extracts one script file.
func (x *Extractor) ExtractFile(ctx context.Context, path string) (*Report, error) {
	s, packed, err := x.ReadFile(path)
	if err != nil {
		return &Report{Script: Name(path)}, err
	}
	rep := &Report{Script: s.Name, Platform: s.Platform, Size: s.Len(), Packed: packed}
	return rep, x.extract(ctx, s, rep)
}

// ExtractBuffer extracts a script already held in memory.
func (x *Extractor) ExtractBuffer(ctx context.Context, name string, buf []byte, p platform.Platform) (*Report, error) {
	s, packed := x.load(name, buf, p)
	rep := &Report{Script: name, Platform: p, Size: s.Len(), Packed: packed}
	return rep, x.extract(ctx, s, rep)
}

func (x *Extractor) extract(ctx context.Context, s *script.Script, rep *Report) error {
	log := Logger().With(zap.String("script", s.Name))
	log.Info("reading script",
		zap.Stringer("platform", s.Platform),
		zap.Int("bytes", s.Len()),
		zap.Bool("packed", rep.Packed))

	if x.dump && !x.listOnly {
		x.writeDump(s, rep)
	}

	d, err := Open(s)
	if err != nil {
		log.Warn("no asset table", zap.Error(err))
		return err
	}
	t := d.Table()
	rep.Table = t
	log.Info("asset table",
		zap.String("address", fmt.Sprintf("0x%06x", t.Address)),
		zap.Int("entries", t.Entries),
		zap.Uint32("modifier", t.TagModifier))

	idx, active := d.FirstPalette()
	if active != nil {
		log.Debug("active palette", zap.Int("index", idx))
	}
	w := &writer{
		x:    x,
		rep:  rep,
		name: s.Name,
		pals: x.Palettes(active),
		seen: make(map[uint64]bool),
	}

	if x.template && !x.listOnly {
		path := filepath.Join(x.out, s.Name+sink.ExtTemplate)
		if err := sink.SaveTemplate(path, d); err != nil {
			rep.Errors = append(rep.Errors, err)
		}
	}

	for i := range t.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		e := d.Entry(i)
		rep.Entries = append(rep.Entries, e)
		logEntry(log, d, e)

		if x.listOnly || x.categories&CategoryOf(e.Kind) == 0 {
			continue
		}
		if err := w.write(e); err != nil {
			log.Error("write failed", zap.Int("index", i), zap.Error(err))
			rep.Errors = append(rep.Errors, err)
		}
	}
	if x.manifest && !x.listOnly {
		path := filepath.Join(x.out, s.Name+ExtManifest)
		if err := SaveManifest(path, rep); err != nil {
			rep.Errors = append(rep.Errors, err)
		}
	}
	return rep.Err()
}

func (x *Extractor) writeDump(s *script.Script, rep *Report) {
	path := filepath.Join(x.out, s.Name+depack.DumpExt)
	f, err := os.Create(path)
	if err == nil {
		err = depack.WriteDump(f, s.Bytes())
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		rep.Errors = append(rep.Errors, errors.EncoderIO(path, err))
	}
}

func logEntry(log *zap.Logger, d *script.Decoder, e *script.Entry) {
	s := d.Script()
	fields := []zap.Field{
		zap.Int("index", e.Index),
		zap.String("position", fmt.Sprintf("0x%06x", d.Table().Slot(e.Index))),
		zap.Stringer("kind", e.Kind),
	}
	if e.Location >= 0 {
		fields = append(fields,
			zap.String("location", fmt.Sprintf("0x%06x", e.Location)),
			zap.String("bytes", s.Hex(e.Location-2, hexContext)))
	}

	switch {
	case e.Kind.IsBitmap(), e.Kind == script.KindRectangle:
		fields = append(fields, zap.Int("width", e.Width), zap.Int("height", e.Height))
	case e.Kind == script.KindVideo:
		fields = append(fields,
			zap.String("name", e.Video.Name),
			zap.Int("size", e.Video.Size),
			zap.Int("frames", e.Video.Frames))
	case e.Kind == script.KindSample:
		fields = append(fields, zap.Int("size", len(e.Payload)), zap.Int("rate", e.SampleRate))
	case e.Kind == script.KindPattern:
		fields = append(fields, zap.Int("size", len(e.Payload)))
	case e.Kind == script.KindComposite:
		fields = append(fields, zap.Int("commands", len(e.Commands)))
	case e.Kind == script.KindUnknown && e.Err != nil:
		fields = append(fields, zap.Error(e.Err))
	}
	log.Info("entry", fields...)

	for order, c := range e.Commands {
		ref := d.Entry(c.Index)
		log.Debug("draw",
			zap.Int("order", order),
			zap.Uint8("cmd", c.Op),
			zap.Int("index", c.Index),
			zap.Stringer("kind", ref.Kind),
			zap.Int16("x", c.X),
			zap.Int16("y", c.Y),
			zap.Int("w", ref.Width),
			zap.Int("h", ref.Height),
			zap.Int16("depth", c.Depth))
	}
}

// writer materialises the entries of one script.
type writer struct {
	x    *Extractor
	rep  *Report
	name string
	pals palette.Context
	seen map[uint64]bool
}

func (w *writer) path(e *script.Entry, suffix string) string {
	return filepath.Join(w.x.out, fmt.Sprintf("%s %d%s", w.name, e.Index, suffix))
}

func (w *writer) write(e *script.Entry) error {
	var (
		path string
		err  error
	)
	switch {
	case e.Kind.IsBitmap():
		path = w.path(e, w.x.format.Ext())
		err = w.image(path, e, e.Clear)
	case e.Kind == script.KindComposite:
		path = w.path(e, " (composite)"+w.x.format.Ext())
		err = w.image(path, e, -1)
	case e.Kind.IsPalette():
		digest := e.Palette.Digest()
		if w.x.dedupPals && w.seen[digest] {
			w.rep.Duplicates++
			Logger().Debug("duplicate palette skipped",
				zap.String("script", w.name),
				zap.Int("index", e.Index))
			return nil
		}
		w.seen[digest] = true
		path = w.path(e, sink.ExtPalette)
		err = sink.SaveRaw(path, e.Payload)
	case e.Kind == script.KindVideo:
		path = w.path(e, sink.ExtVideo)
		err = sink.SaveRaw(path, e.Payload)
	case e.Kind == script.KindPattern:
		path = w.path(e, sink.ExtPattern)
		err = sink.SaveRaw(path, e.Payload)
	case e.Kind == script.KindSample:
		path = w.path(e, sink.ExtSample)
		err = sink.SaveWAV(path, e.SampleRate, e.Payload)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	w.rep.Artifacts = append(w.rep.Artifacts, Artifact{
		Index:  e.Index,
		Kind:   e.Kind,
		Path:   path,
		Size:   len(e.Payload),
		Digest: xxhash.Sum64(e.Payload),
	})
	return nil
}

func (w *writer) image(path string, e *script.Entry, transparent int) error {
	pal := w.pals.For(e.Index)
	var img image.Image
	if w.x.trueColor {
		img = sink.TrueColor(e.Width, e.Height, e.Payload, pal, transparent)
	} else {
		img = sink.Indexed(e.Width, e.Height, e.Payload, pal)
	}
	return sink.SaveImage(path, sink.Scale(img, w.x.scale), w.x.format)
}
