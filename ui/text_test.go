package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText_NaturalSize(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wrap      bool
		available Size
		want      Size
	}{
		{"single", "hello", false, Size{80, 24}, Size{5, 1}},
		{"lines", "hello\nworld!", false, Size{80, 24}, Size{6, 2}},
		{"crlf", "a\r\nb", false, Size{80, 24}, Size{1, 2}},
		{"escapes take no space", "\x1b[1mbold\x1b[0m", false, Size{80, 24}, Size{4, 1}},
		{"wide", "世界", false, Size{80, 24}, Size{4, 1}},
		{"unwrapped overflow", "aaaa bbbb", false, Size{5, 1}, Size{9, 1}},
		{"wrapped", "aaaa bbbb", true, Size{5, 1}, Size{5, 2}},
		{"wrap fits", "aaaa", true, Size{5, 1}, Size{4, 1}},
		{"empty", "", false, Size{5, 1}, Size{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txt := NewText(tt.text)
			txt.SetWrap(tt.wrap)
			assert.Equal(t, tt.want, txt.NaturalSize(tt.available))
		})
	}
}

func TestText_Render(t *testing.T) {
	txt := NewText("ab\ncd")
	assert.Equal(t, []string{"ab  ", "cd  ", "    "}, rows(renderView(txt, 4, 3)))

	txt.SetAlign(AlignRight)
	assert.Equal(t, []string{"    ab", "    cd"}, rows(renderView(txt, 6, 2)))

	txt.SetAlign(AlignCenter)
	assert.Equal(t, []string{"  ab  ", "  cd  "}, rows(renderView(txt, 6, 2)))
}

func TestText_RenderWrapped(t *testing.T) {
	txt := NewText("aaaa bbbb")
	txt.SetWrap(true)
	assert.Equal(t, []string{"aaaa ", "bbbb "}, rows(renderView(txt, 5, 2)))
}

func TestText_RenderEscapes(t *testing.T) {
	txt := NewText("a\x1b[1mb\x1b[22mc")
	buf := renderView(txt, 3, 1)
	assert.Equal(t, "abc", rowText(buf, 0))
	assert.Equal(t, FlagUnset, buf.Cell(0, 0).Style.Bold)
	assert.Equal(t, FlagOn, buf.Cell(1, 0).Style.Bold)
	assert.Equal(t, FlagOff, buf.Cell(2, 0).Style.Bold)

	// escapes do not leak out of the text
	txt.SetText("\x1b[1mx")
	other := NewText("y")
	buf = renderView(VStack(txt, other), 1, 2)
	assert.Equal(t, FlagOn, buf.Cell(0, 0).Style.Bold)
	assert.Equal(t, FlagUnset, buf.Cell(0, 1).Style.Bold)
}

func TestText_SetTextInvalidatesSize(t *testing.T) {
	txt := NewText("a")
	stack := VStack(txt)
	assert.Equal(t, Size{1, 1}, Measure(stack, Size{10, 10}))
	txt.SetText("abc\nd")
	assert.Equal(t, Size{3, 2}, Measure(stack, Size{10, 10}))
}
