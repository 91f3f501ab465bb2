package ui

import (
	"fmt"
	"slices"
)

// Container owns an ordered list of children. On its own it layers every
// child over its full area, in order; Stack and Box embed it for their own
// layouts.
type Container struct {
	ViewBase
	self     View
	children []View
}

// NewContainer returns a Container that overlays children.
func NewContainer(children ...View) *Container {
	c := &Container{}
	for _, child := range children {
		c.Add(child)
	}
	return c
}

// bind records the view that embeds c, so children point at it as parent.
func (c *Container) bind(self View) { c.self = self }

func (c *Container) owner() View {
	if c.self != nil {
		return c.self
	}
	return c
}

func (c *Container) Children() []View { return c.children }

func (c *Container) Len() int { return len(c.children) }

// Add appends child. A child that already has a parent is moved.
func (c *Container) Add(child View) {
	c.Insert(len(c.children), child)
}

// Insert places child at index, clamped to [0, Len()].
func (c *Container) Insert(index int, child View) {
	if child == nil {
		return
	}
	if p := child.base().parent; p != nil {
		if pc, ok := p.(interface{ Remove(View) bool }); ok {
			pc.Remove(child)
		}
	}
	index = min(max(index, 0), len(c.children))
	c.children = slices.Insert(c.children, index, child)
	child.base().parent = c.owner()
	if c.screen != nil {
		mount(child, c.screen)
	}
	c.changed()
}

// Remove detaches child and reports whether it was a child of c.
func (c *Container) Remove(child View) bool {
	i := slices.Index(c.children, child)
	if i < 0 {
		return false
	}
	c.children = slices.Delete(c.children, i, i+1)
	unmount(child)
	child.base().parent = nil
	c.changed()
	return true
}

// RemoveAll detaches every child.
func (c *Container) RemoveAll() {
	for _, child := range c.children {
		unmount(child)
		child.base().parent = nil
	}
	c.children = nil
	c.changed()
}

func (c *Container) changed() {
	c.InvalidateSize()
	c.NeedsRender()
}

func (c *Container) NaturalSize(available Size) Size {
	var size Size
	for _, child := range c.children {
		size = size.Max(Measure(child, available))
	}
	return size
}

func (c *Container) Render(vp *Viewport) {
	for _, child := range c.children {
		vp.RenderChild(child, Rect{Size: vp.ContentSize()})
	}
}

// Insets are the widths of the four edges of a rectangle.
type Insets struct {
	Top, Right, Bottom, Left int
}

// Uniform returns Insets with every edge set to n.
func Uniform(n int) Insets { return Insets{n, n, n, n} }

func (i Insets) validate() error {
	if i.Top < 0 || i.Right < 0 || i.Bottom < 0 || i.Left < 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidPadding, i)
	}
	return nil
}

// Box decorates a single child with padding, an optional border and an
// optional fixed frame size.
type Box struct {
	Container
	padding Insets
	border  *BorderChars
	width   int
	height  int

	// Fill, if not zero, paints the whole box before the child renders.
	Fill Style
}

func NewBox(child View) *Box {
	b := &Box{}
	b.bind(b)
	if child != nil {
		b.Add(child)
	}
	return b
}

// get or build box
func boxOf(v View) *Box {
	if b, ok := v.(*Box); ok {
		return b
	}
	return NewBox(v)
}

// Pad adds spaces around the view. Negative amounts are treated as zero.
func Pad(v View, amount int) *Box {
	b := boxOf(v)
	_ = b.SetPadding(Uniform(max(amount, 0)))
	return b
}

func PadH(v View, amount int) *Box {
	b := boxOf(v)
	amount = max(amount, 0)
	b.padding.Left, b.padding.Right = amount, amount
	b.changed()
	return b
}

func PadV(v View, amount int) *Box {
	b := boxOf(v)
	amount = max(amount, 0)
	b.padding.Top, b.padding.Bottom = amount, amount
	b.changed()
	return b
}

// Border draws a single-line border around the view.
func Border(v View) *Box {
	b := boxOf(v)
	b.SetBorder(&SingleBorder)
	return b
}

// Frame fixes the view's size. Zero leaves a dimension to the child.
func Frame(v View, w, h int) *Box {
	b := boxOf(v)
	_ = b.SetFrame(Size{max(w, 0), max(h, 0)})
	return b
}

// SetPadding sets the space between the border and the child.
func (b *Box) SetPadding(p Insets) error {
	if err := p.validate(); err != nil {
		return err
	}
	b.padding = p
	b.changed()
	return nil
}

func (b *Box) Padding() Insets { return b.padding }

// SetBorder selects the border characters; nil removes the border.
func (b *Box) SetBorder(chars *BorderChars) {
	b.border = chars
	b.changed()
}

// SetFrame fixes the box size. A zero dimension follows the child.
func (b *Box) SetFrame(size Size) error {
	if err := size.Validate(); err != nil {
		return err
	}
	b.width, b.height = size.Width, size.Height
	b.changed()
	return nil
}

// chrome is the total space taken by padding and border.
func (b *Box) chrome() Insets {
	in := b.padding
	if b.border != nil {
		in.Top++
		in.Right++
		in.Bottom++
		in.Left++
	}
	return in
}

func (b *Box) NaturalSize(available Size) Size {
	in := b.chrome()
	inner := available.Shrink(in.Left+in.Right, in.Top+in.Bottom)
	size := b.Container.NaturalSize(inner).Grow(in.Left+in.Right, in.Top+in.Bottom)
	// respect Frame constraints
	if b.width > 0 {
		size.Width = b.width
	}
	if b.height > 0 {
		size.Height = b.height
	}
	return size
}

func (b *Box) Render(vp *Viewport) {
	if !b.Fill.IsZero() {
		vp.Paint(b.Fill)
	}
	rect := Rect{Size: vp.ContentSize()}
	if b.border != nil {
		drawBorder(vp, rect, *b.border, Style{Foreground: vp.Theme().Border})
	}
	in := b.chrome()
	inner := rect.Inset(in.Top, in.Right, in.Bottom, in.Left)
	if b.width > 0 {
		inner.Size.Width = min(inner.Size.Width, b.width-in.Left-in.Right)
	}
	if b.height > 0 {
		inner.Size.Height = min(inner.Size.Height, b.height-in.Top-in.Bottom)
	}
	inner.Size = inner.Size.Max(Size{})
	for _, child := range b.children {
		vp.RenderChild(child, inner)
	}
}

// BorderChars are the runes used to draw rules and boxes.
type BorderChars struct {
	H, V                    string
	TopLeft, TopRight       string
	BottomLeft, BottomRight string
}

var (
	SingleBorder = BorderChars{"─", "│", "┌", "┐", "└", "┘"}
	BoldBorder   = BorderChars{"━", "┃", "┏", "┓", "┗", "┛"}
	DoubleBorder = BorderChars{"═", "║", "╔", "╗", "╚", "╝"}
	DashedBorder = BorderChars{"╌", "╎", "┌", "┐", "└", "┘"}
)

func drawBorder(vp *Viewport, rect Rect, chars BorderChars, style Style) {
	// Too small to draw a border
	if rect.Size.Width < 2 || rect.Size.Height < 2 {
		return
	}
	x0, y0 := rect.MinX(), rect.MinY()
	x1, y1 := rect.MaxX()-1, rect.MaxY()-1
	// Top and bottom borders
	for x := x0 + 1; x < x1; x++ {
		vp.Write(chars.H, Point{x, y0}, style)
		vp.Write(chars.H, Point{x, y1}, style)
	}
	// Left and right borders
	for y := y0 + 1; y < y1; y++ {
		vp.Write(chars.V, Point{x0, y}, style)
		vp.Write(chars.V, Point{x1, y}, style)
	}
	// Corners
	vp.Write(chars.TopLeft, Point{x0, y0}, style)
	vp.Write(chars.TopRight, Point{x1, y0}, style)
	vp.Write(chars.BottomLeft, Point{x0, y1}, style)
	vp.Write(chars.BottomRight, Point{x1, y1}, style)
}
