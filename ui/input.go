package ui

import (
	"math"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const cursorBlink = 500 * time.Millisecond

// accentKeys maps alt+<key> to the combining mark it starts composing.
var accentKeys = map[string]string{
	"a": "\u0300", // grave
	"e": "\u0301", // acute
	"i": "\u0302", // circumflex
	"n": "\u0303", // tilde
	"o": "\u0304", // macron
	"u": "\u0308", // diaeresis
	"c": "\u0327", // cedilla
	"s": "\u0327",
}

// accentGlyphs are the spacing forms shown under the cursor while composing.
var accentGlyphs = map[string]string{
	"\u0300": "`",
	"\u0301": "´",
	"\u0302": "^",
	"\u0303": "~",
	"\u0304": "¯",
	"\u0308": "¨",
	"\u0327": "¸",
}

// StyleSpan styles the clusters [Start, End) of one line.
type StyleSpan struct {
	Start int
	End   int // exclusive
	Style Style
}

// Highlighter returns syntax spans for the clusters of one hard line.
type Highlighter func(line []string, syntax SyntaxStyle) []StyleSpan

func expandStyles(spans []StyleSpan, base Style, n int) []Style {
	styles := make([]Style, n)
	for i := range styles {
		styles[i] = base
	}
	for _, sp := range spans {
		for i := max(sp.Start, 0); i < sp.End && i < n; i++ {
			styles[i] = styles[i].Merge(sp.Style)
		}
	}
	return styles
}

// Input is an editable text field, single-line by default.
type Input struct {
	ViewBase
	text   textLayout
	cursor Cursor

	multiline   bool
	wrap        bool
	placeholder string
	highlighter Highlighter
	onChange    func(string)
	onSubmit    func(string)

	history history
	accent  bool // a combining mark waits just before the caret
	goalX   int  // desired column when moving vertically
	hasGoal bool

	scroll  Point
	width   int // wrap width used by the last render
	focused bool
	hover   bool
	pressed bool

	blink     time.Duration
	cursorOff bool
}

// NewInput returns a single-line input holding s, with the caret at the end.
func NewInput(s string) *Input {
	in := &Input{}
	in.text.set(in.coerce(clustersOf(s)))
	in.cursor = Caret(in.text.Len())
	return in
}

// NewTextArea returns a multi-line, wrapping input.
func NewTextArea(s string) *Input {
	in := &Input{multiline: true, wrap: true}
	in.text.set(in.coerce(clustersOf(s)))
	return in
}

// coerce drops escape sequences and, in single-line mode, turns line
// breaks into spaces.
func (in *Input) coerce(cl []string) []string {
	out := cl[:0:0]
	for _, c := range cl {
		switch {
		case isEscape(c):
			continue
		case c == "\r":
			c = " "
		case c == "\n" && !in.multiline:
			c = " "
		}
		out = append(out, c)
	}
	return out
}

// SetMultiline switches between multi-line and single-line mode. Going
// single-line coerces existing line breaks.
func (in *Input) SetMultiline(multiline bool) {
	in.multiline = multiline
	in.text.set(in.coerce(in.text.clusters))
	in.changed()
}

func (in *Input) Multiline() bool { return in.multiline }

// SetWrap enables soft wrapping of long lines.
func (in *Input) SetWrap(wrap bool) {
	in.wrap = wrap
	in.InvalidateSize()
	in.NeedsRender()
}

func (in *Input) SetPlaceholder(s string) {
	in.placeholder = s
	in.InvalidateSize()
	in.NeedsRender()
}

func (in *Input) SetHighlighter(h Highlighter) {
	in.highlighter = h
	in.NeedsRender()
}

// OnChange sets the function called with the new text after every edit.
func (in *Input) OnChange(fn func(string)) { in.onChange = fn }

// OnSubmit sets the function called when enter is pressed in single-line
// mode.
func (in *Input) OnSubmit(fn func(string)) { in.onSubmit = fn }

func (in *Input) Text() string { return in.text.String() }

// Len returns the number of clusters.
func (in *Input) Len() int { return in.text.Len() }

// SetText replaces the content and clears the undo history. A caret at the
// end stays at the end; any other cursor is clamped.
func (in *Input) SetText(s string) {
	in.accent = false
	atEnd := in.cursor == Caret(in.text.Len())
	in.text.set(in.coerce(clustersOf(s)))
	in.history = history{}
	if atEnd {
		in.cursor = Caret(in.text.Len())
	} else {
		in.cursor = in.cursor.clamp(in.text.Len())
	}
	in.changed()
}

func (in *Input) Cursor() Cursor { return in.cursor }

// SetCursor moves the cursor, clamped to the content.
func (in *Input) SetCursor(c Cursor) {
	in.dropAccent()
	in.cursor = c.clamp(in.text.Len())
	in.hasGoal = false
	in.NeedsRender()
}

func (in *Input) SelectedText() string {
	start, end := in.cursor.Range()
	var t textLayout
	t.set(in.text.clusters[start:end])
	return t.String()
}

// SelectWord selects the word under or just before the caret. It reports
// false when there is no word there.
func (in *Input) SelectWord() bool {
	at := in.cursor.End
	for _, w := range wordSpans(in.text.clusters) {
		if w.start <= at && at <= w.end {
			in.SetCursor(Cursor{w.start, w.end})
			return true
		}
	}
	return false
}

// SelectLine selects the hard line holding the caret, including its line
// break.
func (in *Input) SelectLine() {
	start, end := in.text.lineBounds(in.cursor.End)
	if end < in.text.Len() {
		end++
	}
	in.SetCursor(Cursor{start, end})
}

// ToPosition maps a cluster offset to a (column, row) position, with long
// lines wrapped at width when wrapping is on.
func (in *Input) ToPosition(offset, width int) Point {
	return in.text.ToPosition(offset, in.wrapAt(width))
}

// ToOffset is the inverse of ToPosition. Positions outside the content
// clamp to the nearest offset.
func (in *Input) ToOffset(p Point, width int) int {
	return in.text.ToOffset(p, in.wrapAt(width))
}

// Location returns the hard line and column of offset, ignoring wrapping.
func (in *Input) Location(offset int) Point {
	return in.text.ToPosition(offset, 0)
}

func (in *Input) wrapAt(width int) int {
	if !in.wrap {
		return 0
	}
	return max(width, 1)
}

// Insert replaces the selection with s.
func (in *Input) Insert(s string) {
	in.dropAccent()
	in.insert(in.coerce(clustersOf(s)), false)
}

func (in *Input) insert(cl []string, merge bool) {
	start, end := in.cursor.Range()
	if len(cl) == 0 && start == end {
		return
	}
	in.replace(start, end, cl, merge && start == end)
}

// replace swaps clusters[start:end] for ins and leaves a caret after them.
func (in *Input) replace(start, end int, ins []string, merge bool) {
	in.history.save(in.record(), merge)
	in.text.splice(start, end, ins)
	in.cursor = Caret(start + len(ins))
	in.changed()
}

func (in *Input) record() editRecord {
	return editRecord{clusters: in.text.clusters, cursor: in.cursor}
}

func (in *Input) restore(rec editRecord) {
	in.text.set(rec.clusters)
	in.cursor = rec.cursor.clamp(in.text.Len())
	in.changed()
}

func (in *Input) changed() {
	in.hasGoal = false
	in.InvalidateSize()
	in.NeedsRender()
	if in.onChange != nil {
		in.onChange(in.Text())
	}
}

// Backspace deletes the selection, or the cluster before the caret.
func (in *Input) Backspace() {
	in.dropAccent()
	if in.deleteSelection() || in.cursor.End == 0 {
		return
	}
	in.replace(in.cursor.End-1, in.cursor.End, nil, false)
}

// Delete deletes the selection, or the cluster after the caret.
func (in *Input) Delete() {
	in.dropAccent()
	if in.deleteSelection() || in.cursor.End >= in.text.Len() {
		return
	}
	in.replace(in.cursor.End, in.cursor.End+1, nil, false)
}

func (in *Input) deleteSelection() bool {
	if in.cursor.IsCaret() {
		return false
	}
	start, end := in.cursor.Range()
	in.replace(start, end, nil, false)
	return true
}

func (in *Input) Undo() bool {
	in.dropAccent()
	rec, ok := in.history.Undo(in.record())
	if ok {
		in.restore(rec)
	}
	return ok
}

func (in *Input) Redo() bool {
	in.dropAccent()
	rec, ok := in.history.Redo(in.record())
	if ok {
		in.restore(rec)
	}
	return ok
}

// startAccent puts mark before the caret; the next key composes with it.
func (in *Input) startAccent(mark string) {
	start, end := in.cursor.Range()
	in.replace(start, end, []string{mark}, false)
	in.accent = true
}

// composeAccent replaces the pending mark with its composition with ev. It
// reports false when ev does not compose.
func (in *Input) composeAccent(ev KeyEvent) bool {
	at := in.cursor.End
	if !ev.Printable() || at == 0 {
		return false
	}
	composed := norm.NFC.String(string(ev.Char) + in.text.clusters[at-1])
	if utf8.RuneCountInString(composed) != 1 {
		return false
	}
	in.accent = false
	// startAccent already saved the state before the mark
	in.text.splice(at-1, at, []string{composed})
	in.cursor = Caret(at)
	in.changed()
	return true
}

// dropAccent strips a pending mark.
func (in *Input) dropAccent() {
	if !in.accent {
		return
	}
	in.accent = false
	at := in.cursor.End
	if at == 0 || at > in.text.Len() || accentGlyphs[in.text.clusters[at-1]] == "" {
		return
	}
	in.text.splice(at-1, at, nil)
	in.cursor = Caret(at - 1)
	in.changed()
}

func (in *Input) moveTo(offset int, extend bool) {
	offset = min(max(offset, 0), in.text.Len())
	if extend {
		in.cursor.End = offset
	} else {
		in.cursor = Caret(offset)
	}
}

func (in *Input) moveRow(dy int, extend bool) {
	pos := in.text.ToPosition(in.cursor.End, in.width)
	if !in.hasGoal {
		in.goalX = pos.X
	}
	rows := in.text.Rows(in.width)
	y := pos.Y + dy
	switch {
	case y < 0:
		in.moveTo(0, extend)
	case y >= len(rows):
		in.moveTo(in.text.Len(), extend)
	default:
		in.moveTo(in.text.ToOffset(Point{in.goalX, y}, in.width), extend)
	}
	in.hasGoal = true
}

func (in *Input) ReceiveKey(ev KeyEvent, sys System) bool {
	if in.accent && in.composeAccent(ev) {
		in.resetBlink()
		return true
	}
	in.dropAccent()
	if !in.handleKey(ev, sys) {
		return false
	}
	in.resetBlink()
	in.NeedsRender()
	return true
}

func (in *Input) handleKey(ev KeyEvent, sys System) bool {
	if ev.Printable() {
		in.insert([]string{string(ev.Char)}, true)
		return true
	}
	in.history.breakMerge()

	keepGoal := false
	defer func() {
		if !keepGoal {
			in.hasGoal = false
		}
	}()

	shift := ev.Shift()
	start, end := in.cursor.Range()
	switch Key(ev.Name, ev.Mod&^ModShift).Full() {
	case "left":
		if !shift && start != end {
			in.moveTo(start, false)
		} else {
			in.moveTo(in.cursor.End-1, shift)
		}
	case "right":
		if !shift && start != end {
			in.moveTo(end, false)
		} else {
			in.moveTo(in.cursor.End+1, shift)
		}
	case "alt+left", "alt+b":
		in.moveTo(prevWordStart(in.text.clusters, in.cursor.End), shift)
	case "alt+right", "alt+f":
		in.moveTo(nextWordEnd(in.text.clusters, in.cursor.End), shift)
	case "up", "down":
		if !in.multiline {
			return false
		}
		keepGoal = true
		dy := 1
		if ev.Name == "up" {
			dy = -1
		}
		in.moveRow(dy, shift)
	case "home":
		pos := in.text.ToPosition(in.cursor.End, in.width)
		in.moveTo(in.text.ToOffset(Point{0, pos.Y}, in.width), shift)
	case "end":
		pos := in.text.ToPosition(in.cursor.End, in.width)
		in.moveTo(in.text.ToOffset(Point{math.MaxInt32, pos.Y}, in.width), shift)
	case "ctrl+a", "ctrl+home":
		in.moveTo(0, shift)
	case "ctrl+e", "ctrl+end":
		in.moveTo(in.text.Len(), shift)
	case "backspace":
		in.Backspace()
	case "alt+backspace", "ctrl+w":
		if !in.deleteSelection() {
			in.replace(prevWordStart(in.text.clusters, in.cursor.End), in.cursor.End, nil, false)
		}
	case "delete":
		in.Delete()
	case "enter":
		if in.multiline {
			in.insert([]string{"\n"}, false)
		} else if in.onSubmit != nil {
			in.onSubmit(in.Text())
		}
	case "escape":
		if start == end {
			return false
		}
		in.moveTo(in.cursor.End, false)
	case "ctrl+c":
		if start != end {
			sys.Clipboard().WriteText(in.SelectedText())
		}
	case "ctrl+x":
		if start != end {
			sys.Clipboard().WriteText(in.SelectedText())
			in.deleteSelection()
		}
	case "ctrl+v":
		in.Insert(sys.Clipboard().ReadText())
	case "ctrl+z":
		in.Undo()
	case "ctrl+y":
		in.Redo()
	default:
		if mark, ok := accentKeys[ev.Name]; ok && ev.Mod == ModAlt {
			in.startAccent(mark)
			return true
		}
		return false
	}
	return true
}

func (in *Input) ReceiveMouse(ev MouseEvent, sys System) {
	switch ev.Kind {
	case MouseEnter:
		in.hover = true
	case MouseExit:
		in.hover = false
	case MousePress:
		if ev.Button != ButtonLeft {
			return
		}
		sys.RequestFocus()
		in.dropAccent()
		in.pressed = true
		in.moveTo(in.offsetAt(ev.Position), ev.Mod&ModShift != 0)
		in.hasGoal = false
		in.resetBlink()
	case MouseDrag:
		if in.pressed {
			in.moveTo(in.offsetAt(ev.Position), true)
		}
	case MouseRelease:
		in.pressed = false
	}
	sys.NeedsRender()
}

// offsetAt maps a local position to an offset, accounting for scrolling.
func (in *Input) offsetAt(p Point) int {
	return in.text.ToOffset(p.Add(in.scroll), in.width)
}

func (in *Input) ReceiveTick(dt time.Duration) bool {
	if !in.focused {
		return false
	}
	in.blink += dt
	if in.blink < cursorBlink {
		return false
	}
	in.blink = 0
	in.cursorOff = !in.cursorOff
	return true
}

func (in *Input) resetBlink() {
	in.blink = 0
	in.cursorOff = false
}

func (in *Input) FocusChanged(focused bool) {
	in.focused = focused
	if !focused {
		in.dropAccent()
		in.pressed = false
	}
	in.resetBlink()
	in.NeedsRender()
}

func (in *Input) NaturalSize(available Size) Size {
	if in.text.Len() == 0 && in.placeholder != "" {
		return Size{StringWidth(in.placeholder) + 1, 1}
	}
	wrap := 0
	if in.wrap && available.Width > 1 {
		wrap = available.Width - 1
	}
	rows := in.text.Rows(in.wrapAt(wrap))
	width := 0
	for _, r := range rows {
		width = max(width, r.width)
	}
	// one extra column for the caret or the newline sigil
	return Size{width + 1, len(rows)}
}

func (in *Input) Render(vp *Viewport) {
	in.focused = vp.RegisterFocus()
	vp.RegisterMouse(MouseButtons | MouseHover)
	if in.focused {
		vp.RegisterTick()
	}
	if vp.IsEmpty() {
		return
	}

	theme := vp.Theme()
	size := vp.ContentSize()
	base := theme.Text(TextState{Focused: in.focused, Hover: in.hover, Pressed: in.pressed})
	vp.Paint(base)
	showCursor := in.focused && !in.cursorOff
	cursorStyle := base.Merge(Style{Inverse: FlagOn})

	if in.text.Len() == 0 && in.placeholder != "" {
		in.scroll = Point{}
		st := theme.Text(TextState{Placeholder: true, Focused: in.focused, Hover: in.hover, Pressed: in.pressed})
		vp.Write(in.placeholder, Point{}, st)
		if showCursor {
			vp.Write(firstCluster(in.placeholder), Point{}, st.Merge(Style{Inverse: FlagOn}))
		}
		return
	}

	in.width = 0
	if in.wrap {
		in.width = max(size.Width-1, 1)
	}
	rows := in.text.Rows(in.width)
	pos := in.text.ToPosition(in.cursor.End, in.width)
	in.scroll.Y = scrollAxis(pos.Y, len(rows), size.Height)
	in.scroll.X = 0
	if !in.wrap {
		in.scroll.X = scrollAxis(pos.X, rows[pos.Y].width+1, size.Width)
	}

	selStart, selEnd := in.cursor.Range()
	selected := theme.Text(TextState{Selected: true, Focused: in.focused})
	dim := Style{Foreground: theme.DimText}
	lines := in.text.Lines()
	styles := map[int][]Style{}

	for y := in.scroll.Y; y < len(rows) && y-in.scroll.Y < size.Height; y++ {
		row := rows[y]
		vy := y - in.scroll.Y
		lineStyles := in.lineStyles(styles, lines[row.line], theme.Syntax, base)
		x := -in.scroll.X
		for i, c := range row.clusters {
			off := row.start + i
			st := base
			if lineStyles != nil {
				st = lineStyles[off-lines[row.line].start]
			}
			if off >= selStart && off < selEnd {
				st = st.Merge(selected)
			}
			w := ClusterWidth(c)
			if w > 0 && x >= 0 {
				vp.Write(c, Point{x, vy}, st)
			}
			x += w
		}
		if in.multiline && row.last && row.line < len(lines)-1 {
			st := dim
			if row.end() >= selStart && row.end() < selEnd {
				st = selected
			}
			vp.Write("⤦", Point{x, vy}, st)
		}
		if in.scroll.X > 0 && row.width > 0 {
			vp.Write("…", Point{0, vy}, dim)
		}
		if row.width-in.scroll.X > size.Width {
			vp.Write("…", Point{size.Width - 1, vy}, dim)
		}
	}

	if showCursor {
		glyph := " "
		if in.accent {
			glyph = accentGlyphs[in.text.clusters[in.cursor.End-1]]
		} else if in.cursor.End < in.text.Len() {
			if c := in.text.clusters[in.cursor.End]; c != "\n" && c != "\t" {
				glyph = c
			}
		}
		vp.Write(glyph, pos.Sub(in.scroll), cursorStyle)
	}
}

// lineStyles runs the highlighter once per hard line and frame.
func (in *Input) lineStyles(cache map[int][]Style, line textRow, syntax SyntaxStyle, base Style) []Style {
	if in.highlighter == nil {
		return nil
	}
	if st, ok := cache[line.line]; ok {
		return st
	}
	st := expandStyles(in.highlighter(line.clusters, syntax), base, len(line.clusters))
	cache[line.line] = st
	return st
}

func firstCluster(s string) string {
	if cl := Graphemes(s); len(cl) > 0 {
		return cl[0]
	}
	return " "
}
