package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Event is anything a Driver hands to Screen.Trigger.
type Event interface {
	isEvent()
}

// ModMask is a set of keyboard modifiers.
type ModMask uint8

const (
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModNone ModMask = 0
)

func (m ModMask) String() string {
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// KeyEvent is a normalized key press. Name is the lower-case key name
// ("a", "enter", "left", "f5"); Char is set for printable input.
type KeyEvent struct {
	Name string
	Char rune
	Mod  ModMask
}

func (KeyEvent) isEvent() {}

// Full returns the key with its modifiers, e.g. "ctrl+shift+left".
func (e KeyEvent) Full() string {
	if e.Mod == ModNone {
		return e.Name
	}
	return e.Mod.String() + "+" + e.Name
}

func (e KeyEvent) Shift() bool { return e.Mod&ModShift != 0 }
func (e KeyEvent) Ctrl() bool  { return e.Mod&ModCtrl != 0 }
func (e KeyEvent) Alt() bool   { return e.Mod&ModAlt != 0 }

// Printable reports whether the event inserts Char as text.
func (e KeyEvent) Printable() bool {
	return e.Char != 0 && e.Mod&(ModCtrl|ModAlt) == 0
}

// Rune builds the KeyEvent for a typed character.
func Rune(r rune) KeyEvent {
	return KeyEvent{Name: string(r), Char: r}
}

// Key builds a KeyEvent for a named key, e.g. Key("left", ModShift).
func Key(name string, mod ModMask) KeyEvent {
	return KeyEvent{Name: name, Mod: mod}
}

var keyNames = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pageup": true, "pagedown": true,
	"insert": true, "delete": true, "backspace": true,
	"enter": true, "tab": true, "escape": true, "space": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true, "f6": true,
	"f7": true, "f8": true, "f9": true, "f10": true, "f11": true, "f12": true,
}

// HotKey is a key combination bound through FocusManager.
type HotKey struct {
	Name string
	Mod  ModMask
}

// ParseHotKey parses specs like "ctrl+q", "alt+shift+left" or "f2".
// Modifiers may be ctrl, alt (or meta) and shift, in any order.
func ParseHotKey(spec string) (HotKey, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(spec)), "+")
	if spec == "" || len(parts) == 0 {
		return HotKey{}, fmt.Errorf("%w: empty", ErrInvalidHotKey)
	}
	var hk HotKey
	for _, p := range parts[:len(parts)-1] {
		var m ModMask
		switch p {
		case "ctrl", "c":
			m = ModCtrl
		case "alt", "meta", "m":
			m = ModAlt
		case "shift", "s":
			m = ModShift
		default:
			return HotKey{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidHotKey, p, spec)
		}
		if hk.Mod&m != 0 {
			return HotKey{}, fmt.Errorf("%w: repeated modifier %q in %q", ErrInvalidHotKey, p, spec)
		}
		hk.Mod |= m
	}
	name := parts[len(parts)-1]
	switch {
	case name == "space":
		name = " "
	case name == "esc":
		name = "escape"
	case utf8.RuneCountInString(name) == 1 || keyNames[name]:
	default:
		return HotKey{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidHotKey, name, spec)
	}
	hk.Name = name
	return hk, nil
}

// MustHotKey is ParseHotKey for static specs; it panics on error.
func MustHotKey(spec string) HotKey {
	hk, err := ParseHotKey(spec)
	if err != nil {
		panic(err)
	}
	return hk
}

func (h HotKey) IsZero() bool { return h.Name == "" }

func (h HotKey) Matches(ev KeyEvent) bool {
	return h.Name != "" && h.Mod == ev.Mod && h.Name == ev.Name
}

func (h HotKey) String() string {
	return KeyEvent{Name: h.Name, Mod: h.Mod}.Full()
}

type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// MouseAction is what the driver saw happen.
type MouseAction uint8

const (
	MouseDown MouseAction = iota
	MouseUp
	MouseMove
	WheelUp
	WheelDown
	WheelLeft
	WheelRight
)

// MouseInput is a raw mouse event in absolute screen coordinates.
type MouseInput struct {
	Position Point
	Button   MouseButton
	Action   MouseAction
	Mod      ModMask
}

func (MouseInput) isEvent() {}

// MouseKind identifies a delivered mouse event. Kinds are bit flags so a
// view can subscribe to several at once.
type MouseKind uint16

const (
	MousePress MouseKind = 1 << iota
	MouseRelease
	MouseClick
	MouseMoved
	MouseDrag
	MouseEnter
	MouseExit
	MouseWheel

	MouseButtons = MousePress | MouseRelease | MouseClick | MouseDrag
	MouseHover   = MouseEnter | MouseExit | MouseMoved
	MouseAll     = MouseButtons | MouseHover | MouseWheel
)

func (k MouseKind) String() string {
	switch k {
	case MousePress:
		return "press"
	case MouseRelease:
		return "release"
	case MouseClick:
		return "click"
	case MouseMoved:
		return "move"
	case MouseDrag:
		return "drag"
	case MouseEnter:
		return "enter"
	case MouseExit:
		return "exit"
	case MouseWheel:
		return "wheel"
	}
	return fmt.Sprintf("MouseKind(%d)", uint16(k))
}

// MouseEvent is delivered to a view in its own local coordinates.
type MouseEvent struct {
	Kind     MouseKind
	Position Point
	Button   MouseButton
	Mod      ModMask
	// Delta is the scroll direction for MouseWheel: Y<0 is up, X<0 is left.
	Delta Point
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Size Size
}

func (ResizeEvent) isEvent() {}

// FocusEvent reports terminal window focus and blur.
type FocusEvent struct {
	Focused bool
}

func (FocusEvent) isEvent() {}
