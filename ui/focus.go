package ui

import "slices"

type hotKeyBinding struct {
	key    HotKey
	view   View
	action func()
}

// FocusManager tracks which view receives keyboard input. Candidates and
// hotkeys are collected afresh every frame; the focused view survives a
// frame only if it registers again.
type FocusManager struct {
	candidates []View
	focused    View
	registered bool
	changed    bool
	hotkeys    []hotKeyBinding
	onChange   func(prev, next View)
}

// Focused returns the focused view, or nil.
func (f *FocusManager) Focused() View { return f.focused }

// reset starts a new frame.
func (f *FocusManager) reset() {
	f.trap()
	f.changed = false
}

// trap forgets the candidates and hotkeys registered so far, so only views
// rendered afterwards (a modal) can take the focus.
func (f *FocusManager) trap() {
	f.candidates = f.candidates[:0]
	f.hotkeys = f.hotkeys[:0]
	f.registered = false
}

// Register adds v to this frame's focus order and reports whether it holds
// the focus.
func (f *FocusManager) Register(v View) bool {
	if !slices.Contains(f.candidates, v) {
		f.candidates = append(f.candidates, v)
	}
	if f.focused == v {
		f.registered = true
		return true
	}
	return false
}

// RegisterHotKey binds key for this frame. Bindings registered later win.
// A nil action focuses v.
func (f *FocusManager) RegisterHotKey(v View, key HotKey, action func()) {
	if key.IsZero() {
		return
	}
	f.hotkeys = append(f.hotkeys, hotKeyBinding{key: key, view: v, action: action})
}

// Request focuses v if it registered this frame.
func (f *FocusManager) Request(v View) bool {
	if !slices.Contains(f.candidates, v) {
		return false
	}
	f.set(v)
	f.registered = true
	return true
}

// Next moves the focus to the following candidate, wrapping around.
func (f *FocusManager) Next() bool { return f.step(1) }

// Prev moves the focus to the preceding candidate, wrapping around.
func (f *FocusManager) Prev() bool { return f.step(-1) }

func (f *FocusManager) step(dir int) bool {
	n := len(f.candidates)
	if n == 0 {
		return false
	}
	i := slices.Index(f.candidates, f.focused)
	switch {
	case i < 0 && dir > 0:
		i = 0
	case i < 0:
		i = n - 1
	default:
		i = (i + dir + n) % n
	}
	f.set(f.candidates[i])
	f.registered = true
	return true
}

// HandleHotKey runs the binding for ev, if any. A focus binding whose view
// cannot take the focus does not consume the key.
func (f *FocusManager) HandleHotKey(ev KeyEvent) bool {
	for i := len(f.hotkeys) - 1; i >= 0; i-- {
		hk := f.hotkeys[i]
		if !hk.key.Matches(ev) {
			continue
		}
		if hk.action != nil {
			hk.action()
			return true
		}
		if f.Request(hk.view) {
			return true
		}
	}
	return false
}

// commit ends the frame. A focused view that did not register loses the
// focus. It reports whether the focus changed since the frame started.
func (f *FocusManager) commit() bool {
	if f.focused != nil && !f.registered {
		f.set(nil)
	}
	changed := f.changed
	f.changed = false
	return changed
}

func (f *FocusManager) set(v View) {
	prev := f.focused
	if prev == v {
		return
	}
	f.focused = v
	f.changed = true
	if fc, ok := prev.(Focuser); ok {
		fc.FocusChanged(false)
	}
	if fc, ok := v.(Focuser); ok {
		fc.FocusChanged(true)
	}
	if f.onChange != nil {
		f.onChange(prev, v)
	}
}
