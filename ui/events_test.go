package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHotKey(t *testing.T) {
	tests := []struct {
		spec    string
		want    HotKey
		wantErr bool
	}{
		{spec: "ctrl+q", want: HotKey{"q", ModCtrl}},
		{spec: "Alt+Shift+Left", want: HotKey{"left", ModAlt | ModShift}},
		{spec: "meta+x", want: HotKey{"x", ModAlt}},
		{spec: "f2", want: HotKey{"f2", ModNone}},
		{spec: "ctrl+space", want: HotKey{" ", ModCtrl}},
		{spec: "esc", want: HotKey{"escape", ModNone}},
		{spec: " ctrl+s ", want: HotKey{"s", ModCtrl}},
		{spec: "", wantErr: true},
		{spec: "hyper+x", wantErr: true},
		{spec: "ctrl+ctrl+x", wantErr: true},
		{spec: "ctrl+nope", wantErr: true},
		{spec: "+", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseHotKey(tt.spec)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHotKey)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHotKey(t *testing.T) {
	hk := MustHotKey("shift+ctrl+a")
	assert.Equal(t, "ctrl+shift+a", hk.String())
	assert.True(t, hk.Matches(Key("a", ModCtrl|ModShift)))
	assert.False(t, hk.Matches(Key("a", ModCtrl)))
	assert.False(t, HotKey{}.Matches(Key("", ModNone)), "the zero hotkey matches nothing")
	assert.True(t, HotKey{}.IsZero())
	assert.Panics(t, func() { MustHotKey("ctrl+") })
}

func TestKeyEvent(t *testing.T) {
	assert.Equal(t, "ctrl+alt+shift+left", Key("left", ModCtrl|ModAlt|ModShift).Full())
	assert.Equal(t, "x", Rune('x').Full())

	assert.True(t, Rune('a').Printable())
	assert.False(t, KeyEvent{Name: "a", Char: 'a', Mod: ModCtrl}.Printable())
	assert.True(t, KeyEvent{Name: "A", Char: 'A', Mod: ModShift}.Printable())
	assert.False(t, Key("left", ModNone).Printable())

	ev := Key("x", ModAlt|ModShift)
	assert.True(t, ev.Alt())
	assert.True(t, ev.Shift())
	assert.False(t, ev.Ctrl())
}

func TestMouseKind_String(t *testing.T) {
	assert.Equal(t, "click", MouseClick.String())
	assert.Equal(t, "wheel", MouseWheel.String())
	assert.Equal(t, "MouseKind(0)", MouseKind(0).String())
	assert.Equal(t, "MouseKind(255)", MouseAll.String())
}
