package canvas

// Bounds accumulates the placement rectangles of a composite so that a
// scene drawn relative to an unknown screen origin can be re-centred.
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
	n          int
}

// NewBounds returns bounds that fit the canvas until something is added.
func NewBounds() Bounds {
	return Bounds{MinX: Width, MinY: Height}
}

// Add extends the bounds with a w x h block at (x, y).
func (b *Bounds) Add(x, y, w, h int) {
	b.MinX = min(b.MinX, x)
	b.MinY = min(b.MinY, y)
	b.MaxX = max(b.MaxX, x+w)
	b.MaxY = max(b.MaxY, y+h)
	b.n++
}

// Len returns the number of blocks added.
func (b Bounds) Len() int {
	return b.n
}

// Correction returns the translation that centres the bounds on the canvas
// along each axis where they leave it, and zero along axes that fit.
func (b Bounds) Correction() (dx, dy int) {
	if b.MinX < 0 || b.MaxX >= Width {
		dx = Width/2 - ((b.MaxX-b.MinX)/2 + b.MinX)
	}
	if b.MinY < 0 || b.MaxY >= Height {
		dy = Height/2 - ((b.MaxY-b.MinY)/2 + b.MinY)
	}
	return dx, dy
}
