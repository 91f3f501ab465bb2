package ui

import (
	"slices"

	"go.uber.org/zap"
)

type modalEntry struct {
	origin  View
	modal   View
	rect    Rect
	onClose func()
}

// ModalManager keeps the stack of modals requested during the current
// frame. A view that wants its modal to stay open requests it again on
// every render; the stack is rebuilt each frame.
type ModalManager struct {
	screen  *Screen
	stack   []modalEntry
	mounted []View
}

func (m *ModalManager) reset() {
	m.stack = m.stack[:0]
}

// Len returns the number of open modals.
func (m *ModalManager) Len() int { return len(m.stack) }

// Top returns the topmost modal, or nil.
func (m *ModalManager) Top() View {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1].modal
}

// Request pushes modal over rect (absolute coordinates). origin is the modal
// the requesting view was rendered in, nil for the main tree. A request is
// accepted only from the topmost layer: from the main tree while no modal
// is open, or from the current top modal.
func (m *ModalManager) Request(origin, modal View, rect Rect, onClose func()) bool {
	if modal == nil || origin != m.Top() {
		m.logger().Debug("modal rejected",
			zap.Int("depth", len(m.stack)),
			zap.Bool("from_modal", origin != nil))
		return false
	}
	m.stack = append(m.stack, modalEntry{origin: origin, modal: modal, rect: rect, onClose: onClose})
	return true
}

// Dismiss pops the top modal and runs its onClose callback.
func (m *ModalManager) Dismiss() bool {
	if len(m.stack) == 0 {
		return false
	}
	e := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	if e.onClose != nil {
		e.onClose()
	}
	if m.screen != nil {
		m.screen.markDirty()
	}
	return true
}

// RenderModals draws every requested modal over root, bottom to top, and
// returns the topmost one (nil if there is none). Focus and mouse
// registrations are cleared before each modal so only the top one receives
// input. Modals requested while rendering are drawn in the same pass.
func (m *ModalManager) RenderModals(root *Viewport) View {
	return m.renderFrom(root, 0)
}

// rerenderTop draws the top modal again.
func (m *ModalManager) rerenderTop(root *Viewport) View {
	if len(m.stack) == 0 {
		return nil
	}
	return m.renderFrom(root, len(m.stack)-1)
}

func (m *ModalManager) renderFrom(root *Viewport, from int) View {
	var top View
	for i := from; i < len(m.stack); i++ {
		e := m.stack[i]
		if m.screen != nil {
			m.screen.focus.trap()
			m.screen.mouse.reset()
			mount(e.modal, m.screen)
		}
		root.buffer.ClearRect(e.rect)
		vp := *root
		vp.modal = e.modal
		vp.pen = &pen{}
		vp.RenderChild(e.modal, e.rect)
		top = e.modal
	}
	return top
}

// sweep unmounts modals that were not requested this frame.
func (m *ModalManager) sweep() {
	live := make([]View, 0, len(m.stack))
	for _, e := range m.stack {
		live = append(live, e.modal)
	}
	for _, v := range m.mounted {
		if !slices.Contains(live, v) {
			unmount(v)
		}
	}
	m.mounted = live
}

func (m *ModalManager) logger() *zap.Logger {
	if m.screen == nil {
		return zap.NewNop()
	}
	return m.screen.logger
}
