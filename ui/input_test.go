package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeKeys(in *Input, evs ...KeyEvent) {
	for _, ev := range evs {
		in.ReceiveKey(ev, System{})
	}
}

func runes(s string) []KeyEvent {
	var evs []KeyEvent
	for _, r := range s {
		evs = append(evs, Rune(r))
	}
	return evs
}

func TestInput_Insert(t *testing.T) {
	in := NewInput("abcdef")
	in.SetCursor(Cursor{1, 4})
	in.Insert("X")
	assert.Equal(t, "aXef", in.Text())
	assert.Equal(t, Caret(2), in.Cursor())
}

func TestInput_Coerce(t *testing.T) {
	in := NewInput("a\nb\x1b[1mc\r")
	assert.Equal(t, "a bc ", in.Text())

	area := NewTextArea("a\nb")
	assert.Equal(t, "a\nb", area.Text())
	area.SetMultiline(false)
	assert.Equal(t, "a b", area.Text())

	in.SetText("")
	in.Insert("x\ny")
	assert.Equal(t, "x y", in.Text())
}

func TestInput_Keys(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     Cursor
		keys       []KeyEvent
		wantText   string
		wantCursor Cursor
	}{
		{"left", "abc", Caret(3), []KeyEvent{Key("left", ModNone)}, "abc", Caret(2)},
		{"left at start", "abc", Caret(0), []KeyEvent{Key("left", ModNone)}, "abc", Caret(0)},
		{"shift+left extends", "abc", Caret(3), []KeyEvent{Key("left", ModShift), Key("left", ModShift)}, "abc", Cursor{3, 1}},
		{"left collapses", "abc", Cursor{1, 3}, []KeyEvent{Key("left", ModNone)}, "abc", Caret(1)},
		{"right collapses", "abc", Cursor{3, 1}, []KeyEvent{Key("right", ModNone)}, "abc", Caret(3)},
		{"escape collapses", "abc", Cursor{0, 2}, []KeyEvent{Key("escape", ModNone)}, "abc", Caret(2)},
		{"home", "abc", Caret(1), []KeyEvent{Key("home", ModNone)}, "abc", Caret(0)},
		{"shift+end", "abc", Caret(1), []KeyEvent{Key("end", ModShift)}, "abc", Cursor{1, 3}},
		{"backspace", "abc", Caret(3), []KeyEvent{Key("backspace", ModNone)}, "ab", Caret(2)},
		{"backspace selection", "abcd", Cursor{3, 1}, []KeyEvent{Key("backspace", ModNone)}, "ad", Caret(1)},
		{"delete", "abc", Caret(0), []KeyEvent{Key("delete", ModNone)}, "bc", Caret(0)},
		{"delete at end", "abc", Caret(3), []KeyEvent{Key("delete", ModNone)}, "abc", Caret(3)},
		{"ctrl+w", "hello world", Caret(11), []KeyEvent{Key("w", ModCtrl)}, "hello ", Caret(6)},
		{"alt+left", "hello, world", Caret(12), []KeyEvent{Key("left", ModAlt)}, "hello, world", Caret(7)},
		{"alt+right", "hello, world", Caret(0), []KeyEvent{Key("right", ModAlt)}, "hello, world", Caret(5)},
		{"alt+shift+left", "hello, world", Caret(12), []KeyEvent{Key("left", ModAlt|ModShift)}, "hello, world", Cursor{12, 7}},
		{"typing replaces selection", "abc", Cursor{0, 3}, runes("xy"), "xy", Caret(2)},
		{"wide clusters", "世界", Caret(2), []KeyEvent{Key("left", ModNone), Key("backspace", ModNone)}, "界", Caret(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput(tt.text)
			in.SetCursor(tt.cursor)
			typeKeys(in, tt.keys...)
			assert.Equal(t, tt.wantText, in.Text())
			assert.Equal(t, tt.wantCursor, in.Cursor())
		})
	}
}

func TestInput_ContentJumps(t *testing.T) {
	area := NewTextArea("ab\ncd\nef")
	area.SetCursor(Caret(4))
	typeKeys(area, Key("a", ModCtrl))
	assert.Equal(t, Caret(0), area.Cursor(), "ctrl+a leaves the line")
	typeKeys(area, Key("e", ModCtrl))
	assert.Equal(t, Caret(8), area.Cursor())
	typeKeys(area, Key("a", ModCtrl|ModShift))
	assert.Equal(t, Cursor{8, 0}, area.Cursor())
}

func TestInput_UnhandledKeys(t *testing.T) {
	in := NewInput("abc")
	assert.False(t, in.ReceiveKey(Key("tab", ModNone), System{}))
	assert.False(t, in.ReceiveKey(Key("up", ModNone), System{}), "single-line has no rows to move between")
	assert.False(t, in.ReceiveKey(Key("escape", ModNone), System{}), "escape with no selection")
}

func TestInput_UndoRedo(t *testing.T) {
	in := NewInput("")
	typeKeys(in, runes("abc")...)
	typeKeys(in, Key("backspace", ModNone))
	assert.Equal(t, "ab", in.Text())

	typeKeys(in, Key("z", ModCtrl))
	assert.Equal(t, "abc", in.Text())
	typeKeys(in, Key("z", ModCtrl))
	assert.Equal(t, "", in.Text(), "typing merges into one record")
	assert.False(t, in.Undo())

	typeKeys(in, Key("y", ModCtrl))
	assert.Equal(t, "abc", in.Text())
	assert.Equal(t, Caret(3), in.Cursor())

	// a cursor move ends the merge run
	typeKeys(in, Rune('d'), Key("left", ModNone), Rune('e'))
	assert.Equal(t, "abced", in.Text())
	in.Undo()
	assert.Equal(t, "abcd", in.Text())
}

func TestInput_Accents(t *testing.T) {
	tests := []struct {
		name string
		keys []KeyEvent
		want string
	}{
		{"acute", []KeyEvent{Key("e", ModAlt), Rune('e')}, "\u00e9"},
		{"diaeresis", []KeyEvent{Key("u", ModAlt), Rune('u')}, "\u00fc"},
		{"tilde", []KeyEvent{Key("n", ModAlt), Rune('n')}, "\u00f1"},
		{"no composition", []KeyEvent{Key("e", ModAlt), Rune('x')}, "x"},
		{"cancelled by a move", []KeyEvent{Rune('a'), Key("e", ModAlt), Key("left", ModNone)}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput("")
			typeKeys(in, tt.keys...)
			assert.Equal(t, tt.want, in.Text())
		})
	}
}

func TestInput_AccentUndo(t *testing.T) {
	in := NewInput("")
	typeKeys(in, Key("e", ModAlt))
	assert.Equal(t, "\u0301", in.Text(), "the mark waits before the caret")

	typeKeys(in, Rune('e'))
	assert.Equal(t, "\u00e9", in.Text())
	assert.Equal(t, Caret(1), in.Cursor())

	assert.True(t, in.Undo())
	assert.Equal(t, "", in.Text())
}

func TestInput_VerticalMoves(t *testing.T) {
	in := NewTextArea("abcd\nx\nabcd")
	in.SetCursor(Caret(3))

	var got []int
	for _, key := range []string{"down", "down", "up", "up", "up"} {
		typeKeys(in, Key(key, ModNone))
		got = append(got, in.Cursor().End)
	}
	assert.Equal(t, []int{6, 10, 6, 3, 0}, got, "the goal column survives a short line")

	typeKeys(in, Key("down", ModShift))
	assert.Equal(t, Cursor{0, 6}, in.Cursor())
}

func TestInput_Enter(t *testing.T) {
	var submitted []string
	in := NewInput("abc")
	in.OnSubmit(func(s string) { submitted = append(submitted, s) })
	typeKeys(in, Key("enter", ModNone))
	assert.Equal(t, []string{"abc"}, submitted)
	assert.Equal(t, "abc", in.Text())

	area := NewTextArea("ab")
	area.SetCursor(Caret(1))
	typeKeys(area, Key("enter", ModNone))
	assert.Equal(t, "a\nb", area.Text())
	assert.Equal(t, Caret(2), area.Cursor())
}

func TestInput_OnChange(t *testing.T) {
	var changes []string
	in := NewInput("")
	in.OnChange(func(s string) { changes = append(changes, s) })
	typeKeys(in, Rune('a'), Key("left", ModNone))
	in.SetText("zz")
	assert.Equal(t, []string{"a", "zz"}, changes)
}

func TestInput_SetText(t *testing.T) {
	in := NewInput("ab")
	in.SetText("abcd")
	assert.Equal(t, Caret(4), in.Cursor(), "a caret at the end stays there")

	in.SetCursor(Caret(1))
	in.SetText("xyz")
	assert.Equal(t, Caret(1), in.Cursor())

	in.SetCursor(Caret(2))
	in.SetText("")
	assert.Equal(t, Caret(0), in.Cursor())
	assert.False(t, in.Undo(), "SetText clears the history")
}

func TestInput_Select(t *testing.T) {
	in := NewInput("hello world")
	in.SetCursor(Caret(8))
	require.True(t, in.SelectWord())
	assert.Equal(t, "world", in.SelectedText())

	in.SetCursor(Caret(5))
	require.True(t, in.SelectWord())
	assert.Equal(t, "hello", in.SelectedText())

	in.SetText("a  b")
	in.SetCursor(Caret(2))
	assert.False(t, in.SelectWord())

	area := NewTextArea("ab\ncd")
	area.SetCursor(Caret(1))
	area.SelectLine()
	assert.Equal(t, Cursor{0, 3}, area.Cursor())
	area.SetCursor(Caret(4))
	area.SelectLine()
	assert.Equal(t, Cursor{3, 5}, area.Cursor())
	assert.Equal(t, "cd", area.SelectedText())
}

func TestInput_NaturalSize(t *testing.T) {
	tests := []struct {
		name      string
		input     *Input
		available Size
		want      Size
	}{
		{"text plus caret column", NewInput("abc"), Size{80, 1}, Size{4, 1}},
		{"empty", NewInput(""), Size{80, 1}, Size{1, 1}},
		{"wide", NewInput("世界"), Size{80, 1}, Size{5, 1}},
		{"text area lines", NewTextArea("ab\nc\n"), Size{80, 10}, Size{3, 3}},
		{"text area wraps", NewTextArea("abcdefgh"), Size{5, 10}, Size{5, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.NaturalSize(tt.available))
		})
	}

	in := NewInput("")
	in.SetPlaceholder("name")
	assert.Equal(t, Size{5, 1}, in.NaturalSize(Size{80, 1}))
}

func TestInput_Render(t *testing.T) {
	in := NewInput("ab")
	assert.Equal(t, []string{"ab   "}, rows(renderView(in, 5, 1)))

	long := NewInput("abcdefgh")
	long.SetCursor(Caret(0))
	assert.Equal(t, []string{"abc…"}, rows(renderView(long, 4, 1)), "clipped text ends with an ellipsis")

	empty := NewInput("")
	empty.SetPlaceholder("name")
	assert.Equal(t, []string{"name  "}, rows(renderView(empty, 6, 1)))

	area := NewTextArea("ab\ncd")
	assert.Equal(t, []string{"ab⤦ ", "cd  "}, rows(renderView(area, 4, 2)))
}

func TestInput_RenderCursor(t *testing.T) {
	in := NewInput("ab")
	s, _ := startScreen(t, in, 5, 1)
	assert.NotEqual(t, FlagOn, s.Buffer().Cell(2, 0).Style.Inverse, "no cursor without focus")

	press(s, "tab", ModNone)
	require.Same(t, in, s.Focus().Focused())
	assert.Equal(t, FlagOn, s.Buffer().Cell(2, 0).Style.Inverse)
	assert.True(t, s.Tick().Active(), "a focused input blinks")

	in.SetCursor(Cursor{0, 1})
	s.Render()
	assert.Equal(t, FlagOn, s.Buffer().Cell(0, 0).Style.Inverse, "selected")
	assert.Equal(t, FlagOn, s.Buffer().Cell(1, 0).Style.Inverse, "cursor")
	assert.NotEqual(t, FlagOn, s.Buffer().Cell(2, 0).Style.Inverse)

	in.SetCursor(Caret(2))
	require.True(t, in.ReceiveTick(cursorBlink))
	s.Render()
	assert.NotEqual(t, FlagOn, s.Buffer().Cell(2, 0).Style.Inverse, "blinked off")
}

func TestInput_Blink(t *testing.T) {
	in := NewInput("a")
	assert.False(t, in.ReceiveTick(time.Second), "unfocused inputs do not blink")

	in.FocusChanged(true)
	assert.False(t, in.ReceiveTick(300*time.Millisecond))
	assert.True(t, in.ReceiveTick(300*time.Millisecond))
	assert.True(t, in.cursorOff)

	typeKeys(in, Rune('b'))
	assert.False(t, in.cursorOff, "typing shows the cursor")
}

func TestInput_Mouse(t *testing.T) {
	in := NewInput("hello")
	s, _ := startScreen(t, in, 10, 1)

	mouse(s, 1, 0, MouseDown)
	assert.Same(t, in, s.Focus().Focused(), "a press focuses")
	assert.Equal(t, Caret(1), in.Cursor())

	mouse(s, 4, 0, MouseMove)
	mouse(s, 4, 0, MouseUp)
	assert.Equal(t, Cursor{1, 4}, in.Cursor())
	assert.Equal(t, "ell", in.SelectedText())

	mouse(s, 9, 0, MouseDown)
	assert.Equal(t, Caret(5), in.Cursor(), "past the end clamps")
}

func TestInput_Clipboard(t *testing.T) {
	clip := &MemoryClipboard{}
	in := NewInput("hello")
	s, _ := startScreen(t, in, 10, 1, WithClipboard(clip))
	press(s, "tab", ModNone)

	press(s, "home", ModShift)
	press(s, "c", ModCtrl)
	assert.Equal(t, "hello", clip.ReadText())
	assert.Equal(t, "hello", in.Text())

	press(s, "x", ModCtrl)
	assert.Equal(t, "", in.Text())

	press(s, "v", ModCtrl)
	press(s, "v", ModCtrl)
	assert.Equal(t, "hellohello", in.Text())

	clip.WriteText("a\nb")
	press(s, "v", ModCtrl)
	assert.Equal(t, "hellohelloa b", in.Text(), "pasted line breaks become spaces")
}
