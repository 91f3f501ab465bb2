package ui

// Cell is one terminal column. A width-2 grapheme is followed by a
// continuation cell with an empty Grapheme and Width 0.
type Cell struct {
	Grapheme string
	Style    Style
	Width    int
}

var blankCell = Cell{Grapheme: " ", Width: 1}

func (c Cell) isContinuation() bool { return c.Width == 0 && c.Grapheme == "" }

// CellChange is one entry of a frame diff, in absolute coordinates.
type CellChange struct {
	X, Y int
	Cell Cell
}

// Buffer is the cell grid for one frame. The previous frame is kept so that
// Diff only reports cells that changed.
type Buffer struct {
	size  Size
	cells []Cell
	prev  []Cell
	full  bool
}

func NewBuffer(size Size) *Buffer {
	b := &Buffer{}
	b.Resize(size)
	return b
}

func (b *Buffer) Size() Size { return b.size }

func (b *Buffer) Bounds() Rect { return Rect{Size: b.size} }

// Resize changes the grid dimensions. A resize discards the previous frame
// so the next Diff repaints everything. It reports whether the size changed.
func (b *Buffer) Resize(size Size) bool {
	size = size.Max(Size{})
	if size == b.size && b.cells != nil {
		return false
	}
	b.size = size
	b.cells = make([]Cell, size.Width*size.Height)
	b.prev = make([]Cell, size.Width*size.Height)
	b.full = true
	b.Clear()
	return true
}

// Clear blanks every cell of the current frame.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = blankCell
	}
}

// ClearRect blanks the cells of r that lie inside the grid.
func (b *Buffer) ClearRect(r Rect) {
	r = r.Intersect(b.Bounds())
	for y := r.MinY(); y < r.MaxY(); y++ {
		for x := r.MinX(); x < r.MaxX(); x++ {
			b.Set(x, y, " ", 1, Style{})
		}
	}
}

func (b *Buffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= b.size.Width || y >= b.size.Height {
		return 0, false
	}
	return y*b.size.Width + x, true
}

// Cell returns the cell at (x, y), or a blank cell outside the grid.
func (b *Buffer) Cell(x, y int) Cell {
	i, ok := b.index(x, y)
	if !ok {
		return blankCell
	}
	return b.cells[i]
}

// Set writes a grapheme of the given display width. Writes outside the grid
// are dropped, as is a wide grapheme whose second column is off the grid.
// Overwriting half of an existing wide grapheme blanks the other half.
func (b *Buffer) Set(x, y int, grapheme string, width int, style Style) {
	i, ok := b.index(x, y)
	if !ok || width <= 0 {
		return
	}
	if width > 1 && x+1 >= b.size.Width {
		return
	}
	b.breakWide(x, y)
	b.cells[i] = Cell{Grapheme: grapheme, Style: style, Width: width}
	if width > 1 {
		b.breakWide(x+1, y)
		b.cells[i+1] = Cell{Style: style}
	}
}

// breakWide blanks the partner cell of a wide grapheme that is about to lose
// one of its halves at (x, y).
func (b *Buffer) breakWide(x, y int) {
	i, ok := b.index(x, y)
	if !ok {
		return
	}
	c := b.cells[i]
	switch {
	case c.isContinuation() && x > 0:
		b.cells[i-1] = Cell{Grapheme: " ", Style: b.cells[i-1].Style, Width: 1}
	case c.Width > 1 && x+1 < b.size.Width:
		b.cells[i+1] = Cell{Grapheme: " ", Style: c.Style, Width: 1}
	}
}

// Diff returns the cells that differ from the previous frame and makes the
// current frame the new previous frame. Continuation cells are never
// emitted; their wide head carries them.
func (b *Buffer) Diff() []CellChange {
	var changes []CellChange
	for i, c := range b.cells {
		if !b.full && c == b.prev[i] {
			continue
		}
		if c.isContinuation() {
			continue
		}
		changes = append(changes, CellChange{X: i % b.size.Width, Y: i / b.size.Width, Cell: c})
	}
	copy(b.prev, b.cells)
	b.full = false
	return changes
}

// Invalidate forces the next Diff to report every cell.
func (b *Buffer) Invalidate() { b.full = true }
