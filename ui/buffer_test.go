package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestBuffer_SetWide(t *testing.T) {
	b := NewBuffer(Size{4, 1})
	b.Set(0, 0, "世", 2, Style{})
	assert.Equal(t, Cell{Grapheme: "世", Width: 2}, b.Cell(0, 0))
	assert.True(t, b.Cell(1, 0).isContinuation())

	// overwriting the continuation blanks the head
	b.Set(1, 0, "x", 1, Style{})
	assert.Equal(t, " ", b.Cell(0, 0).Grapheme)
	assert.Equal(t, "x", b.Cell(1, 0).Grapheme)

	// overwriting the head blanks the continuation
	b.Set(2, 0, "界", 2, Style{})
	b.Set(2, 0, "y", 1, Style{})
	assert.Equal(t, " ", b.Cell(3, 0).Grapheme)
	assert.Equal(t, 1, b.Cell(3, 0).Width)
}

func TestBuffer_SetOutside(t *testing.T) {
	b := NewBuffer(Size{3, 1})
	b.Set(2, 0, "世", 2, Style{})
	b.Set(5, 0, "x", 1, Style{})
	b.Set(-1, 0, "x", 1, Style{})
	assert.Equal(t, "   ", rowText(b, 0))
	assert.Equal(t, blankCell, b.Cell(9, 9))
}

func TestBuffer_Diff(t *testing.T) {
	b := NewBuffer(Size{4, 2})
	assert.Len(t, b.Diff(), 8, "first frame repaints everything")
	assert.Empty(t, b.Diff())

	red := Style{Foreground: tcell.ColorRed}
	b.Set(1, 1, "a", 1, red)
	assert.Equal(t, []CellChange{{X: 1, Y: 1, Cell: Cell{Grapheme: "a", Style: red, Width: 1}}}, b.Diff())

	b.Set(0, 0, "世", 2, Style{})
	changes := b.Diff()
	if assert.Len(t, changes, 1, "continuation cells are carried by their head") {
		assert.Equal(t, 0, changes[0].X)
	}

	b.Invalidate()
	assert.Len(t, b.Diff(), 7)
}

func TestBuffer_Resize(t *testing.T) {
	b := NewBuffer(Size{2, 2})
	b.Diff()
	assert.False(t, b.Resize(Size{2, 2}))
	assert.True(t, b.Resize(Size{3, 1}))
	assert.Equal(t, Size{3, 1}, b.Size())
	assert.Len(t, b.Diff(), 3)

	b.Resize(Size{-1, 4})
	assert.Equal(t, Size{0, 4}, b.Size())
}

func TestBuffer_ClearRect(t *testing.T) {
	b := NewBuffer(Size{4, 2})
	for x := range 4 {
		b.Set(x, 0, "x", 1, Style{})
		b.Set(x, 1, "x", 1, Style{})
	}
	b.ClearRect(NewRect(1, 1, 10, 10))
	assert.Equal(t, []string{"xxxx", "x   "}, rows(b))
}
