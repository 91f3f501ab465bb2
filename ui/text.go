package ui

import "strings"

type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Text displays read-only, possibly multi-line text. SGR escape sequences in
// the content restyle the text that follows them.
type Text struct {
	ViewBase
	layout textLayout
	style  Style
	align  Align
	wrap   bool
}

func NewText(s string) *Text {
	t := &Text{}
	t.layout.set(clustersOf(s))
	return t
}

// clustersOf segments s, treating CRLF as a single line break.
func clustersOf(s string) []string {
	return Graphemes(strings.ReplaceAll(s, "\r\n", "\n"))
}

func (t *Text) Text() string { return t.layout.String() }

func (t *Text) SetText(s string) {
	t.layout.set(clustersOf(s))
	t.changed()
}

func (t *Text) Style() Style { return t.style }

// SetStyle sets the base style. Escapes in the text are layered over it.
func (t *Text) SetStyle(s Style) {
	t.style = s
	t.NeedsRender()
}

func (t *Text) SetAlign(a Align) {
	t.align = a
	t.NeedsRender()
}

// SetWrap enables soft wrapping at the width the text is laid out at.
func (t *Text) SetWrap(wrap bool) {
	t.wrap = wrap
	t.changed()
}

func (t *Text) changed() {
	t.InvalidateSize()
	t.NeedsRender()
}

func (t *Text) rows(width int) [][]string {
	if !t.wrap {
		lines := t.layout.Lines()
		out := make([][]string, len(lines))
		for i, l := range lines {
			out[i] = l.clusters
		}
		return out
	}
	var out [][]string
	for _, r := range t.layout.Rows(width) {
		cl := r.clusters
		if r.start != t.lineStart(r.line) {
			cl = trimLeadingSpace(cl)
		}
		out = append(out, cl)
	}
	return out
}

func (t *Text) lineStart(line int) int { return t.layout.Lines()[line].start }

// trimLeadingSpace drops the blanks a soft wrap left at the start of a row.
func trimLeadingSpace(cl []string) []string {
	for len(cl) > 0 && (cl[0] == " " || cl[0] == "\t") {
		cl = cl[1:]
	}
	return cl
}

func (t *Text) NaturalSize(available Size) Size {
	width := 0
	for _, l := range t.layout.Lines() {
		width = max(width, l.width)
	}
	if !t.wrap || available.Width <= 0 || width <= available.Width {
		return Size{width, len(t.layout.Lines())}
	}
	rows := t.rows(available.Width)
	width = 0
	for _, r := range rows {
		width = max(width, clustersWidth(r))
	}
	return Size{width, len(rows)}
}

func (t *Text) Render(vp *Viewport) {
	if vp.IsEmpty() {
		return
	}
	size := vp.ContentSize()
	pen := Style{Foreground: vp.Theme().TextColor}.Merge(t.style)
	vp.UsingPen(pen, func() {
		for y, row := range t.rows(size.Width) {
			if y >= vp.VisibleRect().MaxY() {
				break
			}
			x := 0
			switch w := clustersWidth(row); t.align {
			case AlignCenter:
				x = (size.Width - w) / 2
			case AlignRight:
				x = size.Width - w
			}
			vp.Write(strings.Join(row, ""), Point{max(x, 0), y}, Style{})
		}
	})
}
