package grid

// Context is the state a generator receives for one layer: the bounds of the
// plane and the random stream seeded for that layer.
type Context struct {
	Width  int
	Height int
	Seed   int64
	Rand   *Rand
}

// NewContext builds a context; negative dimensions are treated as zero.
func NewContext(width, height int, seed int64) *Context {
	return &Context{
		Width:  max(width, 0),
		Height: max(height, 0),
		Seed:   seed,
		Rand:   NewRand(seed),
	}
}

func (c *Context) Bounds() Rect {
	return Rect{W: c.Width, H: c.Height}
}

func (c *Context) Area() int {
	return c.Width * c.Height
}

func (c *Context) InBounds(p Point) bool {
	return p.X >= 0 && p.X < c.Width && p.Y >= 0 && p.Y < c.Height
}

// Clip drops every member of s outside the context bounds.
func (c *Context) Clip(s *PositionSet) *PositionSet {
	return s.Clip(c.Width, c.Height)
}

// Full returns a set holding every cell of the plane.
func (c *Context) Full() *PositionSet {
	out := NewPositionSet()
	c.Bounds().Fill(out)
	return out
}
