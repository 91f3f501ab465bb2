package ui

type mouseTarget struct {
	view   View
	offset Point
	rect   Rect
	events MouseKind
}

// MouseManager routes mouse input to the views that registered for it in
// the last frame. Later registrations are on top.
type MouseManager struct {
	screen  *Screen
	targets []mouseTarget

	hovered   mouseTarget
	pressed   mouseTarget
	clickable bool

	last    Point
	hasLast bool
}

func (m *MouseManager) reset() {
	m.targets = m.targets[:0]
}

// Register subscribes v to events over rect, in absolute coordinates.
// Positions are delivered relative to offset.
func (m *MouseManager) Register(v View, offset Point, rect Rect, events MouseKind) {
	if v == nil || events == 0 || rect.IsEmpty() {
		return
	}
	m.targets = append(m.targets, mouseTarget{view: v, offset: offset, rect: rect, events: events})
}

// Hovered returns the view under the pointer, or nil.
func (m *MouseManager) Hovered() View { return m.hovered.view }

// Pressed returns the view that holds the pointer capture, or nil.
func (m *MouseManager) Pressed() View { return m.pressed.view }

// hitTest finds the topmost target at p.
func (m *MouseManager) hitTest(p Point) mouseTarget {
	for i := len(m.targets) - 1; i >= 0; i-- {
		if m.targets[i].rect.Contains(p) {
			return m.targets[i]
		}
	}
	return mouseTarget{}
}

// refresh returns the latest registration of t's view, or t itself if the
// view did not register this frame.
func (m *MouseManager) refresh(t mouseTarget) mouseTarget {
	for i := len(m.targets) - 1; i >= 0; i-- {
		if m.targets[i].view == t.view {
			return m.targets[i]
		}
	}
	return t
}

// Dispatch delivers one input. Enter and exit are sent before the event
// itself.
func (m *MouseManager) Dispatch(in MouseInput) {
	m.last, m.hasLast = in.Position, true
	target := m.hitTest(in.Position)
	m.hover(target, in)

	switch in.Action {
	case MouseDown:
		if target.view == nil {
			return
		}
		m.pressed = target
		m.clickable = true
		m.send(target, MousePress, in)
	case MouseUp:
		if m.pressed.view == nil {
			m.send(target, MouseRelease, in)
			return
		}
		p := m.refresh(m.pressed)
		m.pressed = mouseTarget{}
		m.send(p, MouseRelease, in)
		if m.clickable && target.view == p.view {
			m.send(p, MouseClick, in)
		}
	case MouseMove:
		if m.pressed.view != nil {
			m.send(m.refresh(m.pressed), MouseDrag, in)
			return
		}
		m.send(target, MouseMoved, in)
	case WheelUp, WheelDown, WheelLeft, WheelRight:
		m.send(target, MouseWheel, in)
	}
}

// hover diffs the hovered view against target, sending exit then enter.
func (m *MouseManager) hover(target mouseTarget, in MouseInput) bool {
	if target.view == m.hovered.view {
		if target.view != nil {
			m.hovered = target
		}
		return false
	}
	prev := m.hovered
	m.hovered = target
	if prev.view != nil {
		if prev.view == m.pressed.view {
			m.clickable = false
		}
		m.send(m.refresh(prev), MouseExit, in)
	}
	m.send(target, MouseEnter, in)
	return true
}

// commit re-tests the last pointer position against this frame's targets,
// since views may have moved under a still pointer. It reports whether the
// hovered view changed.
func (m *MouseManager) commit() bool {
	if !m.hasLast {
		return false
	}
	return m.hover(m.hitTest(m.last), MouseInput{Position: m.last, Action: MouseMove})
}

func (m *MouseManager) send(t mouseTarget, kind MouseKind, in MouseInput) {
	if t.view == nil || t.events&kind == 0 {
		return
	}
	r, ok := t.view.(MouseReceiver)
	if !ok {
		return
	}
	ev := MouseEvent{
		Kind:     kind,
		Position: in.Position.Sub(t.offset),
		Button:   in.Button,
		Mod:      in.Mod,
	}
	if kind == MouseWheel {
		switch in.Action {
		case WheelUp:
			ev.Delta = Point{0, -1}
		case WheelDown:
			ev.Delta = Point{0, 1}
		case WheelLeft:
			ev.Delta = Point{-1, 0}
		case WheelRight:
			ev.Delta = Point{1, 0}
		}
	}
	r.ReceiveMouse(ev, System{screen: m.screen, view: t.view})
}
