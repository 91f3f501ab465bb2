package ui

import "strings"

// Button is a focusable, clickable label.
type Button struct {
	ViewBase
	label   string
	onClick func()
	hotKey  HotKey

	hovered    bool
	pressed    bool
	focused    bool
	NoFeedback bool // disables visual feedback for hover/press states
}

// NewButton creates a new Button with the given label and click handler.
func NewButton(label string, onClick func()) *Button {
	return &Button{label: label, onClick: onClick}
}

func (b *Button) Label() string { return b.label }

func (b *Button) SetLabel(s string) {
	b.label = s
	b.InvalidateSize()
	b.NeedsRender()
}

// SetHotKey binds key to the button while it is on screen.
func (b *Button) SetHotKey(key HotKey) { b.hotKey = key }

// Click runs the click handler.
func (b *Button) Click() {
	if b.onClick != nil {
		b.onClick()
	}
}

func (b *Button) NaturalSize(Size) Size { return Size{StringWidth(b.label) + 2, 1} }

func (b *Button) Render(vp *Viewport) {
	b.focused = vp.RegisterFocus()
	vp.RegisterMouse(MouseButtons | MouseHover)
	if !b.hotKey.IsZero() {
		vp.RegisterHotKey(b.hotKey, b.Click)
	}
	st := vp.Theme().UI(UIState{})
	if !b.NoFeedback {
		st = vp.Theme().UI(UIState{Pressed: b.pressed, Hover: b.hovered})
	}
	if b.focused {
		st.Bold = FlagOn
	}
	vp.Paint(st)
	size := vp.ContentSize()
	x := max((size.Width-StringWidth(b.label))/2, 0)
	vp.Write(b.label, Point{x, size.Height / 2}, st)
}

func (b *Button) ReceiveKey(ev KeyEvent, _ System) bool {
	if ev.Mod != ModNone || (ev.Name != "enter" && ev.Name != " ") {
		return false
	}
	b.Click()
	return true
}

func (b *Button) ReceiveMouse(ev MouseEvent, sys System) {
	switch ev.Kind {
	case MouseEnter:
		b.hovered = true
	case MouseExit:
		b.hovered = false
		b.pressed = false // cancel
	case MousePress:
		b.pressed = ev.Button == ButtonLeft
	case MouseRelease:
		b.pressed = false
	case MouseClick:
		// real click
		if ev.Button == ButtonLeft {
			sys.RequestFocus()
			b.Click()
		}
	}
	sys.NeedsRender()
}

// Space is an empty view, typically added with a flex weight to push its
// siblings apart. A non-zero Fill paints its area.
type Space struct {
	ViewBase
	Fill Style
}

func NewSpace() *Space { return &Space{} }

func (s *Space) NaturalSize(Size) Size { return Size{} }

func (s *Space) Render(vp *Viewport) {
	if !s.Fill.IsZero() {
		vp.Paint(s.Fill)
	}
}

type orientation uint8

const (
	orientAuto orientation = iota
	orientHorizontal
	orientVertical
)

// Separator is a horizontal or vertical rule. An automatic separator runs
// across its parent Stack: horizontal in a vertical stack, vertical in a
// horizontal one.
type Separator struct {
	ViewBase
	Chars  BorderChars
	orient orientation
}

// NewSeparator returns a separator oriented by its parent.
func NewSeparator() *Separator { return &Separator{Chars: SingleBorder} }

func HSeparator() *Separator {
	return &Separator{Chars: SingleBorder, orient: orientHorizontal}
}

func VSeparator() *Separator {
	return &Separator{Chars: SingleBorder, orient: orientVertical}
}

func (s *Separator) vertical() bool {
	switch s.orient {
	case orientVertical:
		return true
	case orientHorizontal:
		return false
	}
	if st, ok := s.Parent().(*Stack); ok {
		return !st.Direction().vertical()
	}
	return false
}

func (s *Separator) NaturalSize(Size) Size {
	if s.vertical() {
		return Size{1, 0}
	}
	return Size{0, 1}
}

func (s *Separator) Render(vp *Viewport) {
	style := Style{Foreground: vp.Theme().Border}
	size := vp.ContentSize()
	if s.vertical() {
		x := size.Width / 2
		for y := range size.Height {
			vp.Write(s.Chars.V, Point{x, y}, style)
		}
		return
	}
	if w := ClusterWidth(s.Chars.H); w > 0 {
		vp.Write(strings.Repeat(s.Chars.H, size.Width/w), Point{0, size.Height / 2}, style)
	}
}
