package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func drain(d *TermDriver) []Event {
	var evs []Event
	for {
		select {
		case ev := <-d.events:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

func TestTermDriver_ParseInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Event
	}{
		{"rune", "a", []Event{Rune('a')}},
		{"wide rune", "世", []Event{Rune('世')}},
		{"ctrl", "\x01", []Event{Key("a", ModCtrl)}},
		{"controls", "\r\t\x7f", []Event{Key("enter", ModNone), Key("tab", ModNone), Key("backspace", ModNone)}},
		{"ctrl space", "\x00", []Event{Key(" ", ModCtrl)}},
		{"escape", "\x1b", []Event{Key("escape", ModNone)}},
		{"double escape", "\x1b\x1b", []Event{Key("escape", ModNone), Key("escape", ModNone)}},
		{"alt", "\x1bx", []Event{KeyEvent{Name: "x", Char: 'x', Mod: ModAlt}}},
		{"alt ctrl", "\x1b\x01", []Event{Key("a", ModCtrl|ModAlt)}},
		{"escape then garbage", "\x1b\xff", []Event{Key("escape", ModNone)}},
		{"arrow", "\x1b[A", []Event{Key("up", ModNone)}},
		{"ctrl arrow", "\x1b[1;5C", []Event{Key("right", ModCtrl)}},
		{"shift arrow", "\x1b[1;2A", []Event{Key("up", ModShift)}},
		{"delete", "\x1b[3~", []Event{Key("delete", ModNone)}},
		{"alt f5", "\x1b[15;3~", []Event{Key("f5", ModAlt)}},
		{"backtab", "\x1b[Z", []Event{Key("tab", ModShift)}},
		{"ss3", "\x1bOP\x1bOD", []Event{Key("f1", ModNone), Key("left", ModNone)}},
		{"focus", "\x1b[I\x1b[O", []Event{FocusEvent{Focused: true}, FocusEvent{Focused: false}}},
		{"unknown csi", "\x1b[99~a", []Event{Rune('a')}},
		{"incomplete csi", "\x1b[1;", nil},
		{"mixed", "a\x1b[Bb", []Event{Rune('a'), Key("down", ModNone), Rune('b')}},
		{"mouse press", "\x1b[<0;5;3M", []Event{MouseInput{Position: Point{4, 2}, Button: ButtonLeft, Action: MouseDown}}},
		{"mouse right", "\x1b[<2;1;1M", []Event{MouseInput{Button: ButtonRight, Action: MouseDown}}},
		{"mouse modifiers", "\x1b[<20;1;1M", []Event{MouseInput{Button: ButtonLeft, Action: MouseDown, Mod: ModShift | ModCtrl}}},
		{"mouse drag", "\x1b[<32;2;2M", []Event{MouseInput{Position: Point{1, 1}, Button: ButtonLeft, Action: MouseMove}}},
		{"wheel", "\x1b[<64;1;1M\x1b[<65;1;1M", []Event{MouseInput{Action: WheelUp}, MouseInput{Action: WheelDown}}},
		{"bad mouse", "\x1b[<0;x;1M", nil},
		{"bad mouse then key", "\x1b[<0;1;zm" + "q", []Event{Rune('q')}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTermDriver(nil, &bytes.Buffer{}, true)
			d.parseInput([]byte(tt.in))
			assert.Equal(t, tt.want, drain(d))
		})
	}
}

func TestTermDriver_MouseRelease(t *testing.T) {
	d := newTermDriver(nil, &bytes.Buffer{}, true)
	d.parseInput([]byte("\x1b[<2;3;1M\x1b[<3;3;1m"))
	assert.Equal(t, []Event{
		MouseInput{Position: Point{2, 0}, Button: ButtonRight, Action: MouseDown},
		MouseInput{Position: Point{2, 0}, Button: ButtonRight, Action: MouseUp},
	}, drain(d), "a release without a button reports the pressed one")
}

func TestParseModifier(t *testing.T) {
	tests := []struct {
		param string
		want  ModMask
	}{
		{"1", ModNone},
		{"2", ModShift},
		{"3", ModAlt},
		{"5", ModCtrl},
		{"6", ModCtrl | ModShift},
		{"8", ModCtrl | ModAlt | ModShift},
		{"9", ModAlt},
		{"", ModNone},
		{"0", ModNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseModifier(tt.param), "param %q", tt.param)
	}
}

func TestTermDriver_WriteCells(t *testing.T) {
	var out bytes.Buffer
	d := newTermDriver(nil, &out, false)
	bold := Style{Bold: FlagOn}

	err := d.WriteCells([]CellChange{
		{X: 0, Y: 0, Cell: Cell{Grapheme: "世", Width: 2, Style: bold}},
		{X: 2, Y: 0, Cell: Cell{Grapheme: "b", Width: 1, Style: bold}},
		{X: 5, Y: 2, Cell: Cell{Grapheme: "", Width: 1}},
	})
	assert.NoError(t, err)
	assert.Equal(t, "\x1b[1;1H\x1b[0m\x1b[1m世b\x1b[3;6H\x1b[0m \x1b[0m", out.String())

	out.Reset()
	assert.NoError(t, d.WriteCells(nil))
	assert.Empty(t, out.String())
}

func TestTermDriver_Clipboard(t *testing.T) {
	var out bytes.Buffer
	d := newTermDriver(nil, &out, false)
	clip := d.Clipboard()
	clip.WriteText("hi")
	assert.Equal(t, "\x1b]52;c;aGk=\a", out.String())
	assert.Equal(t, "hi", clip.ReadText())
}

func TestTermDriver_SizeWithoutTerminal(t *testing.T) {
	d := newTermDriver(nil, &bytes.Buffer{}, false)
	assert.False(t, d.updateSize())
	assert.Equal(t, Size{}, d.Size())
}
