package script

// Overlaps reports whether the byte range [loc, loc+length) intersects the
// footprint of any entry of t other than skip. Unresolvable slots are
// ignored.
func Overlaps(s *Script, t Table, skip, loc, length int) bool {
	buf := s.Bytes()
	for i := range t.Entries {
		if i == skip {
			continue
		}
		at, err := s.Location(t, i)
		if err != nil {
			continue
		}
		tag0, tag1, ok := s.Tag(at)
		if !ok {
			continue
		}
		end := min(at+4, len(buf))
		size := AssetSize(t.TagModifier+uint32(tag0), tag1, buf[at:end], s.Order())
		if at+size > loc && at < loc+length {
			return true
		}
	}
	return false
}
