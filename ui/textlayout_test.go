package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func layoutOf(s string) *textLayout {
	t := &textLayout{}
	t.set(Graphemes(s))
	return t
}

func TestTextLayout_Lines(t *testing.T) {
	l := layoutOf("ab\ncd\n")
	lines := l.Lines()
	if assert.Len(t, lines, 3) {
		assert.Equal(t, 0, lines[0].start)
		assert.Equal(t, 3, lines[1].start)
		assert.Equal(t, 6, lines[2].start)
		assert.Empty(t, lines[2].clusters)
	}
	assert.Equal(t, "ab\ncd\n", l.String())
}

func TestTextLayout_ToPosition(t *testing.T) {
	l := layoutOf("ab\ncd")
	assert.Equal(t, Point{2, 0}, l.ToPosition(2, 0))
	assert.Equal(t, Point{0, 1}, l.ToPosition(3, 0))
	assert.Equal(t, Point{2, 1}, l.ToPosition(5, 0))
	assert.Equal(t, Point{2, 1}, l.ToPosition(99, 0), "clamped")

	w := layoutOf("abcdefgh")
	assert.Equal(t, Point{0, 1}, w.ToPosition(3, 3), "a wrap boundary starts the next row")
	assert.Equal(t, Point{2, 2}, w.ToPosition(8, 3))

	wide := layoutOf("a世b")
	assert.Equal(t, Point{3, 0}, wide.ToPosition(2, 0))
}

func TestTextLayout_ToOffset(t *testing.T) {
	w := layoutOf("abcdefgh")
	assert.Equal(t, 2, w.ToOffset(Point{5, 0}, 3), "past the end of a wrapped row")
	assert.Equal(t, 4, w.ToOffset(Point{1, 1}, 3))
	assert.Equal(t, 8, w.ToOffset(Point{9, 9}, 3))
	assert.Equal(t, 0, w.ToOffset(Point{-4, -4}, 3))

	wide := layoutOf("a世b")
	assert.Equal(t, 1, wide.ToOffset(Point{2, 0}, 0), "middle of a wide cluster")
	assert.Equal(t, 2, wide.ToOffset(Point{3, 0}, 0))
}

func TestTextLayout_RoundTrip(t *testing.T) {
	l := layoutOf("héllo 世界 wide\nxy\n\nthe end")
	for _, width := range []int{0, 1, 3, 4, 7, 40} {
		for off := 0; off <= l.Len(); off++ {
			p := l.ToPosition(off, width)
			assert.Equal(t, off, l.ToOffset(p, width), "offset %d at width %d", off, width)
		}
	}
}

func TestTextLayout_SpliceKeepsSnapshots(t *testing.T) {
	l := layoutOf("ab")
	old := l.clusters
	l.splice(1, 1, []string{"x"})
	assert.Equal(t, []string{"a", "b"}, old)
	assert.Equal(t, "axb", l.String())
}

func TestTextLayout_RowsCache(t *testing.T) {
	l := layoutOf("abcdef")
	assert.Len(t, l.Rows(2), 3)
	assert.Len(t, l.Rows(4), 2)
	l.splice(6, 6, []string{"g", "h", "i"})
	assert.Len(t, l.Rows(4), 3)
}

func TestLineBounds(t *testing.T) {
	l := layoutOf("ab\ncde\nf")
	start, end := l.lineBounds(4)
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)
	start, end = l.lineBounds(6)
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)
}

func TestScrollAxis(t *testing.T) {
	tests := []struct {
		cursor, content, view, want int
	}{
		{0, 10, 5, 0},
		{2, 10, 5, 0},
		{3, 10, 5, 1},
		{5, 10, 5, 3},
		{7, 10, 5, 5},
		{9, 10, 5, 5},
		{6, 20, 5, 4},
		{18, 20, 5, 15},
		{7, 4, 5, 0},
		{3, 10, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scrollAxis(tt.cursor, tt.content, tt.view), "%+v", tt)
	}
}

func TestScrollAxis_Continuous(t *testing.T) {
	for _, view := range []int{4, 5} {
		prev := 0
		for cursor := range 20 {
			got := scrollAxis(cursor, 20, view)
			assert.LessOrEqual(t, got-prev, 1, "view %d cursor %d", view, cursor)
			assert.GreaterOrEqual(t, got, prev)
			assert.True(t, cursor >= got && cursor < got+view, "view %d cursor %d offscreen", view, cursor)
			prev = got
		}
	}
}

func TestCursor(t *testing.T) {
	c := Cursor{Start: 5, End: 2}
	start, end := c.Range()
	assert.Equal(t, 2, start)
	assert.Equal(t, 5, end)
	assert.False(t, c.IsCaret())
	assert.Equal(t, Cursor{3, 2}, c.clamp(3))
	assert.True(t, Caret(1).IsCaret())
}
