package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/term"
)

// TermDriver talks to the terminal directly: raw mode through x/term, its
// own input parser, and truecolor SGR output. It has no terminfo database,
// so it assumes an xterm-compatible terminal.
type TermDriver struct {
	in    *os.File
	out   io.Writer
	mouse bool

	oldState *term.State
	events   chan Event
	quit     chan struct{}
	finiOnce sync.Once

	mu   sync.Mutex
	w, h int

	lastBtn MouseButton
}

// NewTermDriver returns a driver on stdin and stdout.
func NewTermDriver(mouse bool) *TermDriver {
	return newTermDriver(os.Stdin, os.Stdout, mouse)
}

func newTermDriver(in *os.File, out io.Writer, mouse bool) *TermDriver {
	return &TermDriver{
		in:     in,
		out:    out,
		mouse:  mouse,
		events: make(chan Event, 64),
		quit:   make(chan struct{}),
	}
}

func (d *TermDriver) Init() error {
	// Put terminal in raw mode
	oldState, err := term.MakeRaw(int(d.in.Fd()))
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	d.oldState = oldState

	if !d.updateSize() {
		term.Restore(int(d.in.Fd()), oldState)
		return fmt.Errorf("terminal size: %w", ErrInvalidSize)
	}

	// Enter alternate screen buffer, clear, hide cursor, report focus
	io.WriteString(d.out, "\x1b[?1049h\x1b[2J\x1b[H\x1b[?25l\x1b[?1004h")
	if d.mouse {
		d.enableMouse()
	}

	go d.readInput()
	go d.watchSize()
	return nil
}

func (d *TermDriver) Fini() {
	d.finiOnce.Do(func() {
		close(d.quit)
		if d.mouse {
			io.WriteString(d.out, "\x1b[?1006l\x1b[?1002l\x1b[?1000l")
		}
		// Exit alternate screen buffer, show cursor, stop focus reports
		io.WriteString(d.out, "\x1b[0m\x1b[?1004l\x1b[?25h\x1b[?1049l")
		if d.oldState != nil {
			term.Restore(int(d.in.Fd()), d.oldState)
		}
	})
}

func (d *TermDriver) enableMouse() {
	// Enable mouse tracking modes:
	// ?1000h = button press/release tracking
	// ?1002h = button motion tracking (motion while button pressed)
	// ?1006h = SGR mouse mode (extended coordinates)
	//
	// ?1003h (all motion) is left off: it floods the input with motion
	// events. Hover therefore updates only on clicks and drags.
	io.WriteString(d.out, "\x1b[?1000h\x1b[?1002h\x1b[?1006h")
}

// Clipboard returns an OSC 52 clipboard writing to this terminal.
func (d *TermDriver) Clipboard() Clipboard {
	return &OSC52Clipboard{W: d.out}
}

func (d *TermDriver) Size() Size {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Size{d.w, d.h}
}

func (d *TermDriver) Events() <-chan Event { return d.events }

// updateSize reads the window size and reports whether it is known.
func (d *TermDriver) updateSize() bool {
	f, ok := d.out.(*os.File)
	if !ok {
		return false
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return false
	}
	d.mu.Lock()
	changed := w != d.w || h != d.h
	d.w, d.h = w, h
	d.mu.Unlock()
	if changed {
		d.post(ResizeEvent{Size{w, h}})
	}
	return true
}

// watchSize polls the window size; SIGWINCH is not portable.
func (d *TermDriver) watchSize() {
	t := time.NewTicker(250 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-d.quit:
			return
		case <-t.C:
			d.updateSize()
		}
	}
}

func (d *TermDriver) post(ev Event) {
	select {
	case d.events <- ev:
	case <-d.quit:
	default:
	}
}

// WriteCells moves the cursor only where the changed cells are not
// contiguous and emits a style sequence only when the style changes.
func (d *TermDriver) WriteCells(changes []CellChange) error {
	if len(changes) == 0 {
		return nil
	}
	var buf strings.Builder
	cx, cy := -1, -1
	var last Style
	first := true
	for _, c := range changes {
		if c.X != cx || c.Y != cy {
			fmt.Fprintf(&buf, "\x1b[%d;%dH", c.Y+1, c.X+1)
		}
		if first || c.Cell.Style != last {
			buf.WriteString(styleToANSI(c.Cell.Style))
			last, first = c.Cell.Style, false
		}
		g := c.Cell.Grapheme
		if g == "" {
			g = " "
		}
		buf.WriteString(g)
		cx, cy = c.X+max(c.Cell.Width, 1), c.Y
	}
	buf.WriteString("\x1b[0m") // Reset style
	_, err := io.WriteString(d.out, buf.String())
	return err
}

// styleToANSI always starts from a reset so no attribute leaks from the
// previous cell.
func styleToANSI(st Style) string {
	return "\x1b[0m" + st.Escape()
}

func (d *TermDriver) readInput() {
	defer close(d.events)
	buf := make([]byte, 256)
	for {
		n, err := d.in.Read(buf)
		select {
		case <-d.quit:
			return
		default:
		}
		if err != nil {
			return
		}
		d.parseInput(buf[:n])
	}
}

func (d *TermDriver) parseInput(buf []byte) {
	i := 0
	for i < len(buf) {
		// ESC sequence
		if buf[i] == 0x1b {
			switch {
			case i+1 >= len(buf):
				// Plain ESC
				d.post(KeyEvent{Name: "escape"})
				i++
			case buf[i+1] == '[':
				// CSI sequence
				ev, consumed := d.parseCSI(buf[i:])
				if ev != nil {
					d.post(ev)
				}
				i += consumed
			case buf[i+1] == 'O' && i+2 < len(buf):
				// SS3: F1-F4 and application-mode arrows
				if ev, ok := parseSS3(buf[i+2]); ok {
					d.post(ev)
				}
				i += 3
			case buf[i+1] == 0x1b:
				d.post(KeyEvent{Name: "escape"})
				i++
			default:
				// ESC prefix is Alt
				ev, size := d.parseKey(buf[i+1:])
				if size == 0 {
					d.post(KeyEvent{Name: "escape"})
					i++
					continue
				}
				ev.Mod |= ModAlt
				d.post(ev)
				i += 1 + size
			}
			continue
		}
		ev, size := d.parseKey(buf[i:])
		if size == 0 {
			i++
			continue
		}
		d.post(ev)
		i += size
	}
}

// parseKey decodes one control character or UTF-8 rune.
func (d *TermDriver) parseKey(buf []byte) (KeyEvent, int) {
	if buf[0] < 32 || buf[0] == 0x7f {
		return parseControl(buf[0]), 1
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return KeyEvent{}, 0
	}
	return Rune(r), size
}

func parseControl(b byte) KeyEvent {
	switch b {
	case 0x08, 0x7f: // BS, DEL
		return KeyEvent{Name: "backspace"}
	case 0x09: // TAB
		return KeyEvent{Name: "tab"}
	case 0x0d, 0x0a: // CR, LF
		return KeyEvent{Name: "enter"}
	case 0x1b:
		return KeyEvent{Name: "escape"}
	case 0x00: // Ctrl+Space
		return KeyEvent{Name: " ", Mod: ModCtrl}
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyEvent{Name: string(rune('a' + b - 1)), Mod: ModCtrl}
	}
	return KeyEvent{Name: fmt.Sprintf("ctrl-%#x", b), Mod: ModCtrl}
}

func parseSS3(b byte) (KeyEvent, bool) {
	switch b {
	case 'A':
		return KeyEvent{Name: "up"}, true
	case 'B':
		return KeyEvent{Name: "down"}, true
	case 'C':
		return KeyEvent{Name: "right"}, true
	case 'D':
		return KeyEvent{Name: "left"}, true
	case 'H':
		return KeyEvent{Name: "home"}, true
	case 'F':
		return KeyEvent{Name: "end"}, true
	case 'P', 'Q', 'R', 'S':
		return KeyEvent{Name: "f" + strconv.Itoa(int(b-'P')+1)}, true
	}
	return KeyEvent{}, false
}

var csiFinalKeys = map[byte]string{
	'A': "up",
	'B': "down",
	'C': "right",
	'D': "left",
	'H': "home",
	'F': "end",
	'P': "f1",
	'Q': "f2",
	'R': "f3",
	'S': "f4",
}

var csiTildeKeys = map[int]string{
	1: "home", 2: "insert", 3: "delete", 4: "end", 5: "pageup", 6: "pagedown",
	7: "home", 8: "end",
	15: "f5", 17: "f6", 18: "f7", 19: "f8", 20: "f9", 21: "f10", 23: "f11", 24: "f12",
}

func (d *TermDriver) parseCSI(buf []byte) (Event, int) {
	if len(buf) < 3 || buf[0] != 0x1b || buf[1] != '[' {
		return KeyEvent{Name: "escape"}, 1
	}

	// Find end of CSI sequence
	end := 2
	if buf[2] == '<' {
		// SGR mouse runs to its M/m terminator even when malformed
		for end < len(buf) && buf[end] != 'M' && buf[end] != 'm' {
			end++
		}
	} else {
		for end < len(buf) && buf[end] >= 0x20 && buf[end] <= 0x3f {
			end++
		}
	}
	if end >= len(buf) {
		return nil, len(buf)
	}

	final := buf[end]
	end++
	seq := string(buf[2 : end-1])

	switch final {
	case 'M', 'm': // Mouse events
		if ev, ok := d.parseMouse(seq, final == 'm'); ok {
			return ev, end
		}
		return nil, end
	case 'I':
		return FocusEvent{Focused: true}, end
	case 'O':
		return FocusEvent{Focused: false}, end
	case 'Z':
		return KeyEvent{Name: "tab", Mod: ModShift}, end
	case '~':
		parts := strings.Split(seq, ";")
		n, _ := strconv.Atoi(parts[0])
		name, ok := csiTildeKeys[n]
		if !ok {
			return nil, end
		}
		var mod ModMask
		if len(parts) > 1 {
			mod = parseModifier(parts[1])
		}
		return KeyEvent{Name: name, Mod: mod}, end
	}

	if name, ok := csiFinalKeys[final]; ok {
		// Extended sequences like 1;2A (Shift+Up)
		var mod ModMask
		if parts := strings.Split(seq, ";"); len(parts) >= 2 {
			mod = parseModifier(parts[1])
		}
		return KeyEvent{Name: name, Mod: mod}, end
	}
	return nil, end
}

// parseModifier decodes the xterm modifier parameter, which is one more
// than a bit set of shift (1), alt (2), ctrl (4) and meta (8).
func parseModifier(param string) ModMask {
	m, err := strconv.Atoi(param)
	if err != nil || m < 1 {
		return ModNone
	}
	m--
	var mask ModMask
	if m&1 != 0 {
		mask |= ModShift
	}
	if m&(2|8) != 0 {
		mask |= ModAlt
	}
	if m&4 != 0 {
		mask |= ModCtrl
	}
	return mask
}

func (d *TermDriver) parseMouse(seq string, release bool) (MouseInput, bool) {
	// SGR mouse format: <b;x;y (the < is part of the sequence)
	seq = strings.TrimPrefix(seq, "<")

	parts := strings.Split(seq, ";")
	if len(parts) < 3 {
		return MouseInput{}, false
	}
	btn, err1 := strconv.Atoi(parts[0])
	x, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return MouseInput{}, false
	}
	ev := MouseInput{Position: Point{x - 1, y - 1}} // Convert to 0-based

	// Mouse button encoding in SGR mode:
	// Base button codes (lower 2 bits):
	//   0 = left, 1 = middle, 2 = right, 3 = none
	// Modifier bits:
	//   4 = Shift, 8 = Meta, 16 = Control
	// Motion bit:
	//   32 = motion
	// Wheel bit:
	//   64 = wheel event, low 2 bits give the direction
	if btn&4 != 0 {
		ev.Mod |= ModShift
	}
	if btn&8 != 0 {
		ev.Mod |= ModAlt
	}
	if btn&16 != 0 {
		ev.Mod |= ModCtrl
	}

	if btn&64 != 0 {
		ev.Action = [...]MouseAction{WheelUp, WheelDown, WheelLeft, WheelRight}[btn&3]
		return ev, true
	}

	var button MouseButton
	switch btn & 3 {
	case 0:
		button = ButtonLeft
	case 1:
		button = ButtonMiddle
	case 2:
		button = ButtonRight
	}

	switch {
	case release:
		ev.Action = MouseUp
		ev.Button = d.lastBtn
		if button != ButtonNone {
			ev.Button = button
		}
		d.lastBtn = ButtonNone
	case btn&32 != 0:
		// Motion, with or without a button held
		ev.Action = MouseMove
		ev.Button = button
	default:
		ev.Action = MouseDown
		ev.Button = button
		d.lastBtn = button
	}
	return ev, true
}
