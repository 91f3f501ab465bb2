// Package ui is a terminal user interface engine built on top of tcell.
//
// A tree of Views is measured against the available space, rendered through
// clipped Viewports into a cell Buffer, and the difference to the previous
// frame is flushed to a Driver. Keyboard, mouse and timer input reach views
// through the focus, mouse and tick managers owned by the Screen; modals are
// overlaid by the modal manager.
package ui

import (
	"time"

	"go.uber.org/zap"
)

// View is the interface implemented by all UI elements.
//
// Views embed ViewBase and are used through pointers; identity is pointer
// equality.
type View interface {
	// NaturalSize returns the size the view would like, given the space
	// available to it. The result may exceed available.
	NaturalSize(available Size) Size
	// Render draws the view into vp, and registers for focus, mouse and
	// ticks for the coming frame.
	Render(vp *Viewport)

	base() *ViewBase
}

// ViewBase carries the state every view needs: the parent link, the screen
// it is mounted on and the natural size cache.
type ViewBase struct {
	parent View
	screen *Screen

	sizeOK    bool
	sizeAvail Size
	size      Size
}

func (b *ViewBase) base() *ViewBase { return b }

// Parent returns the containing view, or nil for a root or detached view.
func (b *ViewBase) Parent() View { return b.parent }

// IsMounted reports whether the view is attached to a running Screen.
func (b *ViewBase) IsMounted() bool { return b.screen != nil }

// InvalidateSize drops the cached natural size of the view and of every
// ancestor. Views call it whenever their content changes.
func (b *ViewBase) InvalidateSize() {
	for v := b; v != nil; {
		v.sizeOK = false
		if v.parent == nil {
			break
		}
		v = v.parent.base()
	}
}

// NeedsRender asks the screen the view is mounted on for a new frame.
func (b *ViewBase) NeedsRender() {
	if b.screen != nil {
		b.screen.markDirty()
	}
}

// Measure returns the natural size of v, using the cache when the available
// size did not change since the last call.
func Measure(v View, available Size) Size {
	b := v.base()
	if b.sizeOK && b.sizeAvail == available {
		return b.size
	}
	size := v.NaturalSize(available).Max(Size{})
	b.sizeOK, b.sizeAvail, b.size = true, available, size
	return size
}

// KeyReceiver is implemented by views that accept keyboard input. It returns
// true if the key was handled.
type KeyReceiver interface {
	ReceiveKey(ev KeyEvent, sys System) bool
}

// MouseReceiver is implemented by views that registered for mouse events.
type MouseReceiver interface {
	ReceiveMouse(ev MouseEvent, sys System)
}

// TickReceiver is implemented by views that registered for ticks. dt is the
// time since the previous tick. Returning true requests a render.
type TickReceiver interface {
	ReceiveTick(dt time.Duration) bool
}

// Mounter is notified when a view is attached to or detached from a Screen.
type Mounter interface {
	DidMount(sys System)
	DidUnmount()
}

// Focuser is notified when the view gains or loses keyboard focus.
type Focuser interface {
	FocusChanged(focused bool)
}

// parentView is implemented by views that own children.
type parentView interface {
	Children() []View
}

// System is the handle given to views while they handle input. It is valid
// for the duration of the call; the zero value is a detached no-op.
type System struct {
	screen *Screen
	view   View
}

// RequestFocus moves keyboard focus to the receiving view. It only succeeds
// for views that registered for focus this frame.
func (s System) RequestFocus() bool {
	if s.screen == nil || s.view == nil {
		return false
	}
	return s.screen.focus.Request(s.view)
}

// HasFocus reports whether the receiving view holds the keyboard focus.
func (s System) HasFocus() bool {
	return s.screen != nil && s.view != nil && s.screen.focus.Focused() == s.view
}

// NeedsRender schedules a frame after the current event.
func (s System) NeedsRender() {
	if s.screen != nil {
		s.screen.markDirty()
	}
}

// RequestRender wakes the run loop from another goroutine.
func (s System) RequestRender() {
	if s.screen != nil {
		s.screen.RequestRender()
	}
}

// DismissModal closes the topmost modal.
func (s System) DismissModal() bool {
	if s.screen == nil {
		return false
	}
	return s.screen.modal.Dismiss()
}

// Clipboard returns the screen's clipboard, or a private in-memory one when
// detached.
func (s System) Clipboard() Clipboard {
	if s.screen == nil {
		return &MemoryClipboard{}
	}
	return s.screen.clipboard
}

func (s System) Logger() *zap.Logger {
	if s.screen == nil {
		return zap.NewNop()
	}
	return s.screen.logger
}

// mount attaches v and its subtree to screen, calling DidMount top-down.
func mount(v View, screen *Screen) {
	b := v.base()
	if b.screen == screen {
		return
	}
	b.screen = screen
	if m, ok := v.(Mounter); ok {
		m.DidMount(System{screen: screen, view: v})
	}
	if p, ok := v.(parentView); ok {
		for _, c := range p.Children() {
			mount(c, screen)
		}
	}
}

// unmount detaches v and its subtree, calling DidUnmount bottom-up.
func unmount(v View) {
	b := v.base()
	if b.screen == nil {
		return
	}
	if p, ok := v.(parentView); ok {
		for _, c := range p.Children() {
			unmount(c)
		}
	}
	if m, ok := v.(Mounter); ok {
		m.DidUnmount()
	}
	b.screen = nil
}
