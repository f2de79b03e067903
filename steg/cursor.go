package steg

import "github.com/bodgit/bmpsteg/bmp"

// cursor visits pixel byte positions in storage order, skipping row padding
type cursor struct {
	g     bmp.Geometry
	limit int
	pos   int
	row   int
	col   int
}

func newCursor(g bmp.Geometry, limit int) *cursor {
	return &cursor{
		g:     g,
		limit: limit,
		pos:   g.Offset,
	}
}

// next returns the position of the next pixel byte, or false once every row
// has been visited or the position reaches the limit
func (c *cursor) next() (int, bool) {
	if c.g.RowStride == 0 || c.row >= c.g.Height || c.pos >= c.limit {
		return 0, false
	}

	i := c.pos
	c.pos++
	if c.col++; c.col == c.g.RowStride {
		c.pos += c.g.RowPadding
		c.row++
		c.col = 0
	}

	return i, true
}
