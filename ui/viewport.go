package ui

import (
	"fmt"

	"go.uber.org/zap"
)

type pen struct {
	base    Style
	current Style
}

// Viewport is the window a view renders into. Coordinates are local: (0,0)
// is the top-left of the view's content. Writes outside the visible rect are
// dropped. A Viewport is only valid for the Render call it was passed to.
type Viewport struct {
	screen  *Screen
	buffer  *Buffer
	theme   Theme
	offset  Point
	content Size
	visible Rect
	pen     *pen
	view    View
	modal   View
}

// NewViewport returns a root viewport covering buf. It is not attached to a
// screen, so focus, mouse, tick and modal registrations are ignored; it is
// meant for rendering views outside a running Screen.
func NewViewport(buf *Buffer, theme Theme) *Viewport {
	return &Viewport{
		buffer:  buf,
		theme:   theme,
		content: buf.Size(),
		visible: buf.Bounds(),
		pen:     &pen{},
	}
}

// ContentSize is the size the view was laid out at.
func (vp *Viewport) ContentSize() Size { return vp.content }

// VisibleRect is the part of the content that reaches the buffer, in local
// coordinates.
func (vp *Viewport) VisibleRect() Rect { return vp.visible }

func (vp *Viewport) IsEmpty() bool { return vp.visible.IsEmpty() }

func (vp *Viewport) Theme() Theme { return vp.theme }

// Offset is the absolute buffer position of the local origin.
func (vp *Viewport) Offset() Point { return vp.offset }

// Pen returns the style escapes are currently layered on.
func (vp *Viewport) Pen() Style { return vp.pen.current }

// Write draws text starting at the local point at. SGR escape sequences in
// text change the pen for the rest of the run (and for later writes in the
// same UsingPen scope); style is laid over the pen for every cell.
func (vp *Viewport) Write(text string, at Point, style Style) {
	x, y := at.X, at.Y
	rowVisible := y >= vp.visible.MinY() && y < vp.visible.MaxY()
	for _, c := range Graphemes(text) {
		if isEscape(c) {
			vp.pen.current = applySGR(c, vp.pen.current, vp.pen.base)
			continue
		}
		w := ClusterWidth(c)
		if w == 0 {
			continue
		}
		if c == "\t" {
			c = " "
		}
		if rowVisible && x >= vp.visible.MinX() && x+w <= vp.visible.MaxX() {
			vp.buffer.Set(vp.offset.X+x, vp.offset.Y+y, c, w, vp.pen.current.Merge(style))
		}
		x += w
	}
}

// Paint fills the visible rect with blank cells in style.
func (vp *Viewport) Paint(style Style) {
	st := vp.pen.current.Merge(style)
	for y := vp.visible.MinY(); y < vp.visible.MaxY(); y++ {
		for x := vp.visible.MinX(); x < vp.visible.MaxX(); x++ {
			vp.buffer.Set(vp.offset.X+x, vp.offset.Y+y, " ", 1, st)
		}
	}
}

// UsingPen runs fn with style as the pen. Escapes written inside fn reset to
// this style. The previous pen is restored when fn returns.
func (vp *Viewport) UsingPen(style Style, fn func()) {
	prev := *vp.pen
	vp.pen.base = prev.current.Merge(style)
	vp.pen.current = vp.pen.base
	defer func() { *vp.pen = prev }()
	fn()
}

// Clipped calls fn with a viewport for rect, given in local coordinates.
// The child's content size is rect.Size; its visible rect is the part of
// rect that is visible here.
func (vp *Viewport) Clipped(rect Rect, fn func(*Viewport)) {
	fn(vp.clip(rect))
}

func (vp *Viewport) clip(rect Rect) *Viewport {
	child := *vp
	child.offset = vp.offset.Add(rect.Origin)
	child.content = rect.Size
	visible := vp.visible.Intersect(rect)
	visible.Origin = visible.Origin.Sub(rect.Origin)
	child.visible = visible.Intersect(Rect{Size: rect.Size})
	return &child
}

// RenderChild renders child into rect. A panic inside the child's Render is
// logged and leaves its area blank; the rest of the frame still renders.
func (vp *Viewport) RenderChild(child View, rect Rect) {
	cvp := vp.clip(rect)
	cvp.view = child
	defer func() {
		if r := recover(); r != nil {
			vp.logger().Error("render",
				zap.Error(fmt.Errorf("%w: %v", ErrViewPanic, r)),
				zap.String("view", fmt.Sprintf("%T", child)),
				zap.Stringer("rect", rect))
			cvp.pen.current = cvp.pen.base
			cvp.Paint(Style{})
		}
	}()
	child.Render(cvp)
}

func (vp *Viewport) logger() *zap.Logger {
	if vp.screen == nil {
		return zap.NewNop()
	}
	return vp.screen.logger
}

// absolute converts the visible rect to buffer coordinates.
func (vp *Viewport) absolute() Rect {
	return vp.visible.Offset(vp.offset)
}

// RegisterFocus makes the current view a focus candidate for this frame and
// reports whether it holds the focus.
func (vp *Viewport) RegisterFocus() bool {
	if vp.screen == nil || vp.view == nil {
		return false
	}
	return vp.screen.focus.Register(vp.view)
}

// HasFocus reports whether the current view holds the focus without
// registering it.
func (vp *Viewport) HasFocus() bool {
	return vp.screen != nil && vp.view != nil && vp.screen.focus.Focused() == vp.view
}

// RegisterMouse subscribes the current view to the given mouse events over
// its visible area.
func (vp *Viewport) RegisterMouse(events MouseKind) {
	if vp.screen == nil || vp.view == nil || vp.visible.IsEmpty() {
		return
	}
	vp.screen.mouse.Register(vp.view, vp.offset, vp.absolute(), events)
}

// RegisterTick asks for ReceiveTick calls while the view keeps registering.
func (vp *Viewport) RegisterTick() {
	if vp.screen == nil || vp.view == nil {
		return
	}
	vp.screen.tick.Register(vp.view)
}

// RegisterHotKey binds key for this frame. A nil action moves the focus to
// the current view.
func (vp *Viewport) RegisterHotKey(key HotKey, action func()) {
	if vp.screen == nil || vp.view == nil {
		return
	}
	vp.screen.focus.RegisterHotKey(vp.view, key, action)
}

// RequestModal asks to show modal over rect (local coordinates) after the
// current frame's tree has rendered. Only the topmost layer may open a new
// modal; the request reports whether it was accepted. onClose runs when the
// modal is dismissed.
func (vp *Viewport) RequestModal(modal View, rect Rect, onClose func()) bool {
	if vp.screen == nil {
		return false
	}
	return vp.screen.modal.Request(vp.modal, modal, rect.Offset(vp.offset), onClose)
}
