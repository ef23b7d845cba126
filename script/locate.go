package script

import (
	"bytes"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/alis-assets/errors"
)

// AcceptFunc decides whether a candidate table is the script's asset table.
type AcceptFunc func(s *Script, t Table) bool

// LocatorOptions tunes the table search.
type LocatorOptions struct {
	// Accept validates candidates. Defaults to DefaultAccept.
	Accept AcceptFunc
	// Start is the first offset scanned. Defaults to 8.
	Start int
}

const (
	addressMarker = 0x44
	defaultStart  = 8
)

// Sample block signatures, compared one byte past the scan position.
var samplePatterns = [][]byte{
	{0x44, 0x00, 0x00, 0x00, 0x00, 0x58, 0x00, 0x00, 0x00, 0x00, 0x00, 0x58, 0x00, 0x00, 0x00, 0x00, 0x00, 0x58},
	{0x44, 0x00, 0x00, 0x00, 0x58, 0x00, 0x00, 0x00, 0x00, 0x00, 0x58, 0x00, 0x00, 0x00, 0x00, 0x00, 0x58},
}

// Locate finds the asset table with default options.
func Locate(s *Script) (Table, error) {
	return LocateWith(s, LocatorOptions{})
}

// LocateWith scans the script for the address-block marker. At every marker
// byte it first tries the table address the marker points at, then the
// sample block signatures. The first candidate accepted wins.
func LocateWith(s *Script, opts LocatorOptions) (Table, error) {
	accept := opts.Accept
	if accept == nil {
		accept = DefaultAccept
	}
	start := opts.Start
	if start <= 0 {
		start = defaultStart
	}

	buf := s.Bytes()
	for i := start; i+1 < len(buf); i++ {
		if buf[i+1] != addressMarker {
			continue
		}
		if t, ok := addressCandidate(s, i); ok && accept(s, t) {
			Logger().Debug("asset table found",
				zap.String("script", s.Name),
				zap.Int("address", t.Address),
				zap.Int("entries", t.Entries))
			return t, nil
		}
		for _, pattern := range samplePatterns {
			if !bytes.HasPrefix(buf[i+1:], pattern) {
				continue
			}
			if t, ok := sampleCandidate(s, i+1+len(pattern), accept); ok {
				Logger().Debug("sample table found",
					zap.String("script", s.Name),
					zap.Int("address", t.Address),
					zap.Int("entries", t.Entries))
				return t, nil
			}
		}
	}
	return Table{}, errors.TableNotFound(s.Name)
}

// addressCandidate reads the relative table address and entry count stored
// after the marker at i.
func addressCandidate(s *Script, i int) (Table, bool) {
	loc := i + 2 + i%2
	a, err := s.r.I32(loc)
	if err != nil {
		return Table{}, false
	}
	e, err := s.r.U16(loc + 4)
	if err != nil {
		return Table{}, false
	}
	addr := int(a) + loc
	if addr < 0 || e == 0 || addr+4*int(e) >= s.Len() {
		return Table{}, false
	}
	return Table{Address: addr, Entries: int(e)}, true
}

// sampleCandidate reads the entry count stored right after a signature and
// tries every later non-zero byte as the start of the table.
func sampleCandidate(s *Script, loc int, accept AcceptFunc) (Table, bool) {
	e, err := s.r.U16(loc)
	if err != nil || e == 0 {
		return Table{}, false
	}
	buf := s.Bytes()
	for idx := loc + 6; idx < len(buf); idx++ {
		if buf[idx] == 0 {
			continue
		}
		t := Table{
			Address:     idx - (2 + idx%2),
			Entries:     int(e),
			TagModifier: ModifiedTagSpace,
		}
		if accept(s, t) {
			return t, true
		}
	}
	return Table{}, false
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
