package ui

import "fmt"

// Point is a cell coordinate. X grows to the right, Y grows downward.
type Point struct {
	X, Y int
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Size is a width and height in cells. Both must be >= 0.
type Size struct {
	Width, Height int
}

// Validate reports ErrInvalidSize if either dimension is negative.
func (s Size) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, s.Width, s.Height)
	}
	return nil
}

func (s Size) IsEmpty() bool { return s.Width <= 0 || s.Height <= 0 }

// Max returns the component-wise maximum of s and o.
func (s Size) Max(o Size) Size {
	return Size{max(s.Width, o.Width), max(s.Height, o.Height)}
}

// Min returns the component-wise minimum of s and o.
func (s Size) Min(o Size) Size {
	return Size{min(s.Width, o.Width), min(s.Height, o.Height)}
}

// Shrink reduces s by w and h, never going below zero.
func (s Size) Shrink(w, h int) Size {
	return Size{max(s.Width-w, 0), max(s.Height-h, 0)}
}

func (s Size) Grow(w, h int) Size {
	return Size{s.Width + w, s.Height + h}
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Rect is an origin plus a size. The edges are derived, never stored, so
// MaxX()-MinX() is always Size.Width.
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect builds a Rect, clamping negative dimensions to zero.
func NewRect(x, y, w, h int) Rect {
	return Rect{Point{x, y}, Size{max(w, 0), max(h, 0)}}
}

func (r Rect) MinX() int { return r.Origin.X }
func (r Rect) MaxX() int { return r.Origin.X + r.Size.Width }
func (r Rect) MinY() int { return r.Origin.Y }
func (r Rect) MaxY() int { return r.Origin.Y + r.Size.Height }

func (r Rect) IsEmpty() bool { return r.Size.IsEmpty() }

// Contains reports whether p lies inside r. The max edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// Offset moves r by p.
func (r Rect) Offset(p Point) Rect {
	r.Origin = r.Origin.Add(p)
	return r
}

// Intersect returns the overlap of r and o. Disjoint rects produce an empty
// rect whose origin is clamped inside r's extent.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.MinX(), o.MinX())
	y0 := max(r.MinY(), o.MinY())
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{Point{x0, y0}, Size{x1 - x0, y1 - y0}}
}

// Inset shrinks r by the given edges, clamping at zero size.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	return Rect{
		Origin: Point{r.Origin.X + left, r.Origin.Y + top},
		Size:   r.Size.Shrink(left+right, top+bottom),
	}
}

func (r Rect) String() string { return fmt.Sprintf("%v+%v", r.Origin, r.Size) }
