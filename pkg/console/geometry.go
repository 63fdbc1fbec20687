package console

// Geometry tracks the terminal size and the physical cursor position.
//
// Coordinates are 0-indexed. The column may sit one past the last cell
// (col == cols) after writing into the final cell of a row; the row always
// stays inside [0, rows).
type Geometry struct {
	cols int
	rows int
	col  int
	row  int
}

// NewGeometry creates a geometry for a cols x rows terminal with the cursor
// at the origin.
func NewGeometry(cols, rows int) *Geometry {
	return &Geometry{cols: cols, rows: rows}
}

// Size returns the stored terminal size.
func (g *Geometry) Size() (cols, rows int) {
	return g.cols, g.rows
}

// Cursor returns the tracked cursor position.
func (g *Geometry) Cursor() (col, row int) {
	return g.col, g.row
}

// SetCursor places the cursor. Used when the screen is cleared.
func (g *Geometry) SetCursor(col, row int) {
	g.col, g.row = col, row
}

// RowsFor returns how many extra rows a span of length runes wraps onto.
// A span whose length is an exact multiple of the width does not count an
// extra row.
func (g *Geometry) RowsFor(length int) int {
	if g.cols <= 0 {
		return 0
	}
	return length / g.cols
}

// Advance moves the cursor to column 0 of the row after a rendered span
// that wrapped onto rowsConsumed extra rows. It returns how many rows the
// terminal has to scroll up to keep the cursor visible.
func (g *Geometry) Advance(rowsConsumed int) int {
	g.row += rowsConsumed + 1
	g.col = 0
	return g.clampRow()
}

// MoveLeft moves the cursor one cell left, wrapping to the end of the
// previous row at column 0. At the origin row it does nothing.
func (g *Geometry) MoveLeft() {
	if g.col > 0 {
		g.col--
		return
	}
	if g.row > 0 {
		g.row--
		g.col = g.cols
	}
}

// MoveRight moves the cursor one cell right, wrapping to column 0 of the
// next row at the right edge. It returns the scroll count like Advance.
func (g *Geometry) MoveRight() int {
	if g.col >= g.cols {
		g.row++
		g.col = 0
		return g.clampRow()
	}
	g.col++
	return 0
}

// Resize replaces the stored size. The cursor is left where it is.
func (g *Geometry) Resize(cols, rows int) {
	g.cols, g.rows = cols, rows
}

// Visible returns the cursor clamped into the visible cell area, suitable
// for a cursor-position sequence.
func (g *Geometry) Visible() (col, row int) {
	col, row = g.col, g.row
	if g.cols > 0 && col > g.cols-1 {
		col = g.cols - 1
	}
	if g.rows > 0 && row > g.rows-1 {
		row = g.rows - 1
	}
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}
	return col, row
}

func (g *Geometry) clampRow() int {
	last := g.rows - 1
	if last < 0 || g.row <= last {
		return 0
	}
	scrolls := g.row - last
	g.row = last
	return scrolls
}
