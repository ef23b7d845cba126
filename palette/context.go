package palette

import "maps"

// Context resolves the palette used for one entry. Resolution order is the
// per-entry override, then the caller override, then the script's active
// palette, then the grayscale default.
//
// Context is a value: the With methods return an updated copy and never
// modify the receiver or any palette they were given.
type Context struct {
	active   *Palette
	override *Palette
	entries  map[int]*Palette
	fallback *Palette
}

// NewContext returns a context that resolves to the default palette.
func NewContext() Context {
	return Context{fallback: Default()}
}

// WithActive returns a copy whose active palette is p.
func (c Context) WithActive(p *Palette) Context {
	c.active = p
	return c
}

// WithOverride returns a copy that prefers p over the active palette.
func (c Context) WithOverride(p *Palette) Context {
	c.override = p
	return c
}

// WithEntry returns a copy that renders entry index with p.
func (c Context) WithEntry(index int, p *Palette) Context {
	entries := make(map[int]*Palette, len(c.entries)+1)
	maps.Copy(entries, c.entries)
	entries[index] = p
	c.entries = entries
	return c
}

// WithEntries returns a copy with every override in m applied.
func (c Context) WithEntries(m map[int]*Palette) Context {
	for i, p := range m {
		c = c.WithEntry(i, p)
	}
	return c
}

// Active returns the script palette, or nil if none was set.
func (c Context) Active() *Palette {
	return c.active
}

// For returns the palette to render entry index with.
func (c Context) For(index int) *Palette {
	if p := c.entries[index]; p != nil {
		return p
	}
	if c.override != nil {
		return c.override
	}
	if c.active != nil {
		return c.active
	}
	if c.fallback == nil {
		return Default()
	}
	return c.fallback
}
