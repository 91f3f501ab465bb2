package ui

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Driver connects a Screen to a terminal.
type Driver interface {
	Init() error
	Fini()
	Size() Size
	// Events delivers normalized input. The channel is closed when the
	// driver shuts down.
	Events() <-chan Event
	// WriteCells flushes one frame diff.
	WriteCells(changes []CellChange) error
}

// TcellDriver drives the terminal through tcell: alternate screen, mouse
// and focus reporting.
type TcellDriver struct {
	screen tcell.Screen
	mouse  bool

	events   chan Event
	quit     chan struct{}
	finiOnce sync.Once

	buttons tcell.ButtonMask
	resized atomic.Bool
}

// NewTcellDriver opens the controlling terminal.
func NewTcellDriver(mouse bool) (*TcellDriver, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcell: %w", err)
	}
	return NewTcellDriverFromScreen(s, mouse), nil
}

// NewTcellDriverFromScreen wraps an existing, not yet initialized screen,
// such as tcell.NewSimulationScreen.
func NewTcellDriverFromScreen(s tcell.Screen, mouse bool) *TcellDriver {
	return &TcellDriver{
		screen: s,
		mouse:  mouse,
		events: make(chan Event, 64),
		quit:   make(chan struct{}),
	}
}

func (d *TcellDriver) Init() error {
	if err := d.screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	if d.mouse {
		d.screen.EnableMouse()
	}
	d.screen.EnableFocus()
	d.screen.HideCursor()
	d.screen.Clear()
	go d.poll()
	return nil
}

func (d *TcellDriver) Fini() {
	d.finiOnce.Do(func() {
		close(d.quit)
		d.screen.Fini()
	})
}

func (d *TcellDriver) Size() Size {
	w, h := d.screen.Size()
	return Size{w, h}
}

func (d *TcellDriver) Events() <-chan Event { return d.events }

func (d *TcellDriver) WriteCells(changes []CellChange) error {
	for _, c := range changes {
		main, comb := splitGrapheme(c.Cell.Grapheme)
		d.screen.SetContent(c.X, c.Y, main, comb, c.Cell.Style.Apply())
	}
	if d.resized.Swap(false) {
		d.screen.Sync()
	} else {
		d.screen.Show()
	}
	return nil
}

func splitGrapheme(g string) (rune, []rune) {
	if g == "" {
		return ' ', nil
	}
	main, n := utf8.DecodeRuneInString(g)
	var comb []rune
	for _, r := range g[n:] {
		comb = append(comb, r)
	}
	return main, comb
}

func (d *TcellDriver) poll() {
	defer close(d.events)
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		for _, e := range d.convert(ev) {
			select {
			case d.events <- e:
			case <-d.quit:
				return
			}
		}
	}
}

func (d *TcellDriver) convert(ev tcell.Event) []Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return []Event{convertKey(ev)}
	case *tcell.EventMouse:
		return d.convertMouse(ev)
	case *tcell.EventResize:
		d.resized.Store(true)
		w, h := ev.Size()
		return []Event{ResizeEvent{Size{w, h}}}
	case *tcell.EventFocus:
		return []Event{FocusEvent{Focused: ev.Focused}}
	}
	return nil
}

func convertMod(m tcell.ModMask) ModMask {
	var mod ModMask
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mod |= ModAlt
	}
	return mod
}

var tcellKeyNames = map[tcell.Key]string{
	tcell.KeyUp:      "up",
	tcell.KeyDown:    "down",
	tcell.KeyLeft:    "left",
	tcell.KeyRight:   "right",
	tcell.KeyHome:    "home",
	tcell.KeyEnd:     "end",
	tcell.KeyPgUp:    "pageup",
	tcell.KeyPgDn:    "pagedown",
	tcell.KeyInsert:  "insert",
	tcell.KeyDelete:  "delete",
	tcell.KeyEsc:     "escape",
	tcell.KeyEnter:   "enter",
	tcell.KeyTab:     "tab",
	tcell.KeyBacktab: "tab",
	tcell.KeyBS:      "backspace",
	tcell.KeyDEL:     "backspace",
}

func convertKey(ev *tcell.EventKey) KeyEvent {
	mod := convertMod(ev.Modifiers())
	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		// shift is already applied to the rune
		return KeyEvent{Name: string(r), Char: r, Mod: mod &^ ModShift}
	case k == tcell.KeyBacktab:
		return KeyEvent{Name: "tab", Mod: mod | ModShift}
	case k == tcell.KeyCtrlSpace:
		return KeyEvent{Name: " ", Mod: mod | ModCtrl}
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return KeyEvent{Name: fmt.Sprintf("f%d", k-tcell.KeyF1+1), Mod: mod}
	}
	if name, ok := tcellKeyNames[k]; ok {
		if name == "enter" || name == "tab" || name == "backspace" || name == "escape" {
			mod &^= ModCtrl
		}
		return KeyEvent{Name: name, Mod: mod}
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyEvent{Name: string(rune('a' + k - tcell.KeyCtrlA)), Mod: mod | ModCtrl}
	}
	return KeyEvent{Name: ev.Name(), Mod: mod}
}

var wheelActions = []struct {
	mask   tcell.ButtonMask
	action MouseAction
}{
	{tcell.WheelUp, WheelUp},
	{tcell.WheelDown, WheelDown},
	{tcell.WheelLeft, WheelLeft},
	{tcell.WheelRight, WheelRight},
}

var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button MouseButton
}{
	{tcell.Button1, ButtonLeft},
	{tcell.Button3, ButtonMiddle},
	{tcell.Button2, ButtonRight},
}

// convertMouse turns tcell's button state into down, up and move
// transitions by diffing against the previous state.
func (d *TcellDriver) convertMouse(ev *tcell.EventMouse) []Event {
	x, y := ev.Position()
	pos := Point{x, y}
	mod := convertMod(ev.Modifiers())
	btns := ev.Buttons()

	var out []Event
	for _, w := range wheelActions {
		if btns&w.mask != 0 {
			out = append(out, MouseInput{Position: pos, Action: w.action, Mod: mod})
		}
	}

	btns &= tcell.Button1 | tcell.Button2 | tcell.Button3
	prev := d.buttons
	d.buttons = btns
	held := ButtonNone
	for _, b := range mouseButtons {
		switch {
		case prev&b.mask != 0 && btns&b.mask == 0:
			out = append(out, MouseInput{Position: pos, Button: b.button, Action: MouseUp, Mod: mod})
		case prev&b.mask == 0 && btns&b.mask != 0:
			out = append(out, MouseInput{Position: pos, Button: b.button, Action: MouseDown, Mod: mod})
		case btns&b.mask != 0:
			held = b.button
		}
	}
	if len(out) == 0 {
		out = append(out, MouseInput{Position: pos, Button: held, Action: MouseMove, Mod: mod})
	}
	return out
}
