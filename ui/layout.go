package ui

import "fmt"

// Direction is the main axis of a Stack and the order children are placed
// along it.
type Direction uint8

const (
	TopToBottom Direction = iota
	BottomToTop
	LeftToRight
	RightToLeft
)

func (d Direction) vertical() bool { return d == TopToBottom || d == BottomToTop }
func (d Direction) reversed() bool { return d == BottomToTop || d == RightToLeft }

func (d Direction) String() string {
	switch d {
	case TopToBottom:
		return "top-to-bottom"
	case BottomToTop:
		return "bottom-to-top"
	case LeftToRight:
		return "left-to-right"
	case RightToLeft:
		return "right-to-left"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Distribute shares available cells along one axis. A child with weight 0
// gets its natural size; the remaining space is split between children with
// a positive weight in proportion to it, and the units lost to rounding go
// to the earliest flexible children. When the fixed children alone do not
// fit, they are clipped in order and flexible children get nothing.
func Distribute(available int, naturals, weights []int) []int {
	sizes := make([]int, len(naturals))
	remaining := max(available, 0)
	total := 0
	for i, n := range naturals {
		if i < len(weights) && weights[i] > 0 {
			total += weights[i]
			continue
		}
		sizes[i] = min(max(n, 0), remaining)
		remaining -= sizes[i]
	}
	if total == 0 || remaining == 0 {
		return sizes
	}

	used := 0
	for i := range naturals {
		if i < len(weights) && weights[i] > 0 {
			sizes[i] = remaining * weights[i] / total
			used += sizes[i]
		}
	}
	for i := 0; used < remaining; i++ {
		if i < len(weights) && weights[i] > 0 {
			sizes[i]++
			used++
		}
	}
	return sizes
}

type stackPolicy struct {
	flex      int
	fillCross bool
}

// Stack places its children one after another along a Direction, in the
// two-pass manner: every child is first measured against the full space,
// then fixed children receive their natural size and flexible children
// share what is left by weight.
type Stack struct {
	Container
	direction Direction
	gap       int
	policy    map[View]stackPolicy
}

func NewStack(dir Direction, children ...View) *Stack {
	s := &Stack{direction: dir, policy: make(map[View]stackPolicy)}
	s.bind(s)
	for _, c := range children {
		s.Add(c)
	}
	return s
}

// VStack arranges children vertically.
func VStack(children ...View) *Stack { return NewStack(TopToBottom, children...) }

// HStack arranges children horizontally.
func HStack(children ...View) *Stack { return NewStack(LeftToRight, children...) }

func (s *Stack) Direction() Direction { return s.direction }

// SetDirection changes the main axis. Children may size themselves by the
// direction of their parent, so their cached sizes are dropped too.
func (s *Stack) SetDirection(d Direction) {
	s.direction = d
	for _, c := range s.children {
		c.base().sizeOK = false
	}
	s.changed()
}

// SetGap sets the number of empty cells between children.
func (s *Stack) SetGap(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: gap %d", ErrInvalidSize, n)
	}
	s.gap = n
	s.changed()
	return nil
}

// Append adds fixed children and returns s for chaining.
func (s *Stack) Append(children ...View) *Stack {
	for _, c := range children {
		s.Add(c)
	}
	return s
}

// AddFlex appends child with a flex weight. A weight of 0 makes it fixed.
func (s *Stack) AddFlex(weight int, child View) error {
	if weight < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWeight, weight)
	}
	s.Add(child)
	s.setPolicy(child, func(p *stackPolicy) { p.flex = weight })
	return nil
}

// SetFlex changes the weight of an existing child.
func (s *Stack) SetFlex(child View, weight int) error {
	if weight < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWeight, weight)
	}
	s.setPolicy(child, func(p *stackPolicy) { p.flex = weight })
	return nil
}

// SetFillCross controls whether child is stretched across the cross axis
// (the default) or kept at its natural cross size.
func (s *Stack) SetFillCross(child View, fill bool) {
	s.setPolicy(child, func(p *stackPolicy) { p.fillCross = fill })
}

func (s *Stack) setPolicy(child View, fn func(*stackPolicy)) {
	if child == nil || child.base().parent != View(s) {
		return
	}
	p := s.policyOf(child)
	fn(&p)
	s.policy[child] = p
	s.changed()
}

func (s *Stack) policyOf(child View) stackPolicy {
	if p, ok := s.policy[child]; ok {
		return p
	}
	return stackPolicy{fillCross: true}
}

func (s *Stack) Remove(child View) bool {
	if !s.Container.Remove(child) {
		return false
	}
	delete(s.policy, child)
	return true
}

func (s *Stack) RemoveAll() {
	s.Container.RemoveAll()
	clear(s.policy)
}

// main and cross pick the axis values of a size for the stack direction.
func (s *Stack) main(size Size) int {
	if s.direction.vertical() {
		return size.Height
	}
	return size.Width
}

func (s *Stack) cross(size Size) int {
	if s.direction.vertical() {
		return size.Width
	}
	return size.Height
}

func (s *Stack) sizeOf(main, cross int) Size {
	if s.direction.vertical() {
		return Size{cross, main}
	}
	return Size{main, cross}
}

func (s *Stack) gaps() int {
	if len(s.children) < 2 {
		return 0
	}
	return s.gap * (len(s.children) - 1)
}

func (s *Stack) NaturalSize(available Size) Size {
	mainTotal, crossMax := s.gaps(), 0
	for _, child := range s.children {
		size := Measure(child, available)
		mainTotal += s.main(size)
		crossMax = max(crossMax, s.cross(size))
	}
	return s.sizeOf(mainTotal, crossMax)
}

// Layout returns the rect of every child, in child order, for a stack of
// the given size.
func (s *Stack) Layout(size Size) []Rect {
	n := len(s.children)
	naturals := make([]Size, n)
	mains := make([]int, n)
	weights := make([]int, n)
	for i, child := range s.children {
		naturals[i] = Measure(child, size)
		mains[i] = s.main(naturals[i])
		weights[i] = s.policyOf(child).flex
	}
	avail := max(s.main(size)-s.gaps(), 0)
	alloc := Distribute(avail, mains, weights)

	rects := make([]Rect, n)
	pos := 0
	for k := range n {
		i := k
		if s.direction.reversed() {
			i = n - 1 - k
		}
		cross := s.cross(size)
		if !s.policyOf(s.children[i]).fillCross {
			cross = min(s.cross(naturals[i]), cross)
		}
		var origin Point
		switch s.direction {
		case TopToBottom:
			origin = Point{0, pos}
		case LeftToRight:
			origin = Point{pos, 0}
		case BottomToTop:
			origin = Point{0, size.Height - pos - alloc[i]}
		case RightToLeft:
			origin = Point{size.Width - pos - alloc[i], 0}
		}
		rects[i] = Rect{Origin: origin, Size: s.sizeOf(alloc[i], cross)}
		pos += alloc[i] + s.gap
	}
	return rects
}

func (s *Stack) Render(vp *Viewport) {
	for i, r := range s.Layout(vp.ContentSize()) {
		vp.RenderChild(s.children[i], r)
	}
}
