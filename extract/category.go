package extract

import (
	"strings"

	"github.com/wippyai/alis-assets/errors"
	"github.com/wippyai/alis-assets/script"
)

// Category selects which decoded entries are written.
type Category uint8

const (
	Image Category = 1 << iota
	Video
	Palette
	Composite
	Sound

	All = Image | Video | Palette | Composite | Sound
)

var categoryNames = []struct {
	c    Category
	name string
}{
	{Image, "image"},
	{Video, "video"},
	{Palette, "palette"},
	{Composite, "composite"},
	{Sound, "sound"},
}

// CategoryOf returns the category an entry kind is written under, or 0 for
// kinds that produce no artifact.
func CategoryOf(k script.Kind) Category {
	switch {
	case k.IsBitmap():
		return Image
	case k.IsPalette():
		return Palette
	}
	switch k {
	case script.KindVideo:
		return Video
	case script.KindComposite:
		return Composite
	case script.KindSample, script.KindPattern:
		return Sound
	}
	return 0
}

// ParseCategories parses a comma separated list such as "image,sound".
// "all" and the empty string select everything.
func ParseCategories(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return All, nil
	}
	var c Category
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "all" {
			c |= All
			continue
		}
		found := false
		for _, n := range categoryNames {
			if n.name == part || n.name+"s" == part {
				c |= n.c
				found = true
			}
		}
		if !found {
			return 0, errors.InvalidInput(errors.PhaseConfig, "unknown asset type "+part)
		}
	}
	return c, nil
}

func (c Category) String() string {
	if c == All {
		return "all"
	}
	var parts []string
	for _, n := range categoryNames {
		if c&n.c != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}
