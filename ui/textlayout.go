package ui

import "slices"

// Cursor is a selection over cluster offsets. Start is the anchor and End
// the moving head; they are not ordered. Start == End is a caret.
type Cursor struct {
	Start int
	End   int
}

// Caret returns a collapsed cursor at offset.
func Caret(offset int) Cursor { return Cursor{offset, offset} }

// Range returns the half-open selected range, ordered.
func (c Cursor) Range() (int, int) {
	return min(c.Start, c.End), max(c.Start, c.End)
}

func (c Cursor) IsCaret() bool { return c.Start == c.End }

func (c Cursor) clamp(n int) Cursor {
	return Cursor{min(max(c.Start, 0), n), min(max(c.End, 0), n)}
}

// textRow is one visual row: a hard line, or one wrap segment of it.
type textRow struct {
	line     int // index of the hard line
	start    int // offset of the first cluster
	clusters []string
	width    int
	last     bool // last segment of its hard line
}

func (r textRow) end() int { return r.start + len(r.clusters) }

// textLayout holds a cluster sequence with hard line breaks and the derived
// line and wrap segmentation. Offsets index the gaps between clusters, so a
// sequence of n clusters has offsets 0..n. "\n" clusters separate lines.
//
// Derived state is rebuilt lazily: setters drop it, readers rebuild it.
type textLayout struct {
	clusters []string

	linesOK bool
	lines   []textRow // one per hard line, unwrapped

	wrapOK    bool
	wrapWidth int
	rows      []textRow
}

func (t *textLayout) set(clusters []string) {
	t.clusters = clusters
	t.linesOK, t.wrapOK = false, false
}

func (t *textLayout) Len() int { return len(t.clusters) }

func (t *textLayout) String() string {
	n := 0
	for _, c := range t.clusters {
		n += len(c)
	}
	b := make([]byte, 0, n)
	for _, c := range t.clusters {
		b = append(b, c...)
	}
	return string(b)
}

// splice replaces clusters[start:end] with ins.
func (t *textLayout) splice(start, end int, ins []string) {
	cl := slices.Clone(t.clusters[:start])
	cl = append(cl, ins...)
	cl = append(cl, t.clusters[end:]...)
	t.set(cl)
}

func (t *textLayout) Lines() []textRow {
	if t.linesOK {
		return t.lines
	}
	t.lines = t.lines[:0]
	start := 0
	for i, c := range t.clusters {
		if c == "\n" {
			t.lines = append(t.lines, t.newRow(len(t.lines), start, i, true))
			start = i + 1
		}
	}
	t.lines = append(t.lines, t.newRow(len(t.lines), start, len(t.clusters), true))
	t.linesOK = true
	t.wrapOK = false
	return t.lines
}

func (t *textLayout) newRow(line, start, end int, last bool) textRow {
	cl := t.clusters[start:end]
	return textRow{line: line, start: start, clusters: cl, width: clustersWidth(cl), last: last}
}

// Rows returns the visual rows for width. A width of 0 or less disables
// wrapping. The result is cached until the content or width changes.
func (t *textLayout) Rows(width int) []textRow {
	lines := t.Lines()
	if width <= 0 {
		return lines
	}
	if t.wrapOK && t.wrapWidth == width {
		return t.rows
	}
	t.rows = t.rows[:0]
	for _, l := range lines {
		segs := Wrap(l.clusters, width)
		start := l.start
		for i, seg := range segs {
			t.rows = append(t.rows, textRow{
				line:     l.line,
				start:    start,
				clusters: seg,
				width:    clustersWidth(seg),
				last:     i == len(segs)-1,
			})
			start += len(seg)
		}
	}
	t.wrapOK, t.wrapWidth = true, width
	return t.rows
}

// rowOf returns the index of the row holding offset. An offset on a wrap
// boundary belongs to the start of the following segment.
func rowOf(rows []textRow, offset int) int {
	for i, r := range rows {
		if offset < r.end() || (offset == r.end() && r.last) {
			return i
		}
	}
	return len(rows) - 1
}

// ToPosition maps an offset to a (column, row) position for the given wrap
// width (0 for no wrapping). Offsets are clamped to the content.
func (t *textLayout) ToPosition(offset, width int) Point {
	offset = min(max(offset, 0), len(t.clusters))
	rows := t.Rows(width)
	y := rowOf(rows, offset)
	r := rows[y]
	return Point{clustersWidth(r.clusters[:offset-r.start]), y}
}

// ToOffset maps a position back to an offset. Positions outside the content
// clamp to the nearest row and the nearest cluster boundary; a column in the
// middle of a wide cluster resolves to its start.
func (t *textLayout) ToOffset(p Point, width int) int {
	rows := t.Rows(width)
	y := min(max(p.Y, 0), len(rows)-1)
	r := rows[y]
	if p.X <= 0 {
		return r.start
	}
	x := 0
	for i, c := range r.clusters {
		if x >= p.X {
			return r.start + i
		}
		w := ClusterWidth(c)
		if x+w > p.X {
			return r.start + i
		}
		x += w
	}
	if !r.last && len(r.clusters) > 0 {
		// the end of a wrapped segment is the start of the next row
		return r.end() - 1
	}
	return r.end()
}

// lineBounds returns the offsets of the start and end of the hard line
// holding offset.
func (t *textLayout) lineBounds(offset int) (int, int) {
	lines := t.Lines()
	l := lines[rowOf(lines, offset)]
	return l.start, l.end()
}

// scrollAxis picks the first visible column (or row) so that cursor is
// shown: from the start while the cursor is in the first half screen,
// aligned to the end in the last half screen, else centered. The offset
// moves one cell per cursor step.
func scrollAxis(cursor, content, view int) int {
	half := view / 2
	switch {
	case view <= 0 || content <= view || cursor < half:
		return 0
	case cursor >= content-half:
		return content - view
	default:
		return cursor - half
	}
}
