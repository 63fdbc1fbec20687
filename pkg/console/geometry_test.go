package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometryAdvanceWrapsLongSpan(t *testing.T) {
	g := NewGeometry(10, 24)
	g.SetCursor(4, 2)

	scrolls := g.Advance(g.RowsFor(25))

	col, row := g.Cursor()
	assert.Equal(t, 0, scrolls)
	assert.Equal(t, 0, col)
	assert.Equal(t, 2+25/10+1, row)
}

func TestGeometryRowsFor(t *testing.T) {
	g := NewGeometry(10, 24)

	tests := []struct {
		length   int
		expected int
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{19, 1},
		{20, 2},
		{25, 2},
	}

	for _, tt := range tests {
		if got := g.RowsFor(tt.length); got != tt.expected {
			t.Errorf("RowsFor(%d) = %d, want %d", tt.length, got, tt.expected)
		}
	}

	assert.Equal(t, 0, NewGeometry(0, 24).RowsFor(100), "zero width never wraps")
}

func TestGeometryAdvanceScrollsAtBottom(t *testing.T) {
	g := NewGeometry(80, 5)

	g.SetCursor(7, 4)
	assert.Equal(t, 1, g.Advance(0))
	col, row := g.Cursor()
	assert.Equal(t, 0, col)
	assert.Equal(t, 4, row)

	g.SetCursor(0, 3)
	assert.Equal(t, 2, g.Advance(2), "one scroll per overflow row")
	_, row = g.Cursor()
	assert.Equal(t, 4, row)
}

func TestGeometryMoveLeft(t *testing.T) {
	g := NewGeometry(10, 5)

	g.MoveLeft()
	col, row := g.Cursor()
	assert.Equal(t, 0, col, "origin is a no-op")
	assert.Equal(t, 0, row)

	g.SetCursor(5, 0)
	g.MoveLeft()
	col, _ = g.Cursor()
	assert.Equal(t, 4, col)

	g.SetCursor(0, 2)
	g.MoveLeft()
	col, row = g.Cursor()
	assert.Equal(t, 10, col, "wraps to the width of the row above")
	assert.Equal(t, 1, row)
}

func TestGeometryMoveRight(t *testing.T) {
	g := NewGeometry(10, 3)

	assert.Equal(t, 0, g.MoveRight())
	col, _ := g.Cursor()
	assert.Equal(t, 1, col)

	g.SetCursor(10, 0)
	assert.Equal(t, 0, g.MoveRight())
	col, row := g.Cursor()
	assert.Equal(t, 0, col)
	assert.Equal(t, 1, row)

	g.SetCursor(10, 2)
	assert.Equal(t, 1, g.MoveRight(), "wrapping off the last row scrolls")
	col, row = g.Cursor()
	assert.Equal(t, 0, col)
	assert.Equal(t, 2, row)
}

func TestGeometryLeftRightRoundTrip(t *testing.T) {
	g := NewGeometry(4, 10)
	g.SetCursor(2, 3)

	for i := 0; i < 7; i++ {
		g.MoveRight()
	}
	for i := 0; i < 7; i++ {
		g.MoveLeft()
	}

	col, row := g.Cursor()
	assert.Equal(t, 2, col)
	assert.Equal(t, 3, row)
}

func TestGeometryResizeKeepsCursor(t *testing.T) {
	g := NewGeometry(80, 24)
	g.SetCursor(70, 20)

	g.Resize(40, 10)

	cols, rows := g.Size()
	assert.Equal(t, 40, cols)
	assert.Equal(t, 10, rows)

	col, row := g.Cursor()
	assert.Equal(t, 70, col)
	assert.Equal(t, 20, row)

	col, row = g.Visible()
	assert.Equal(t, 39, col)
	assert.Equal(t, 9, row)
}
