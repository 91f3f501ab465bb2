package ui

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap/zapcore"
)

// LogEntry is one captured log line.
type LogEntry struct {
	Time    time.Time
	Level   zapcore.Level
	Message string
	Fields  string
}

func (e LogEntry) String() string {
	s := e.Time.Format("15:04:05") + " " + e.Level.CapitalString() + " " + e.Message
	if e.Fields != "" {
		s += " " + e.Fields
	}
	return s
}

// LogBuffer keeps the most recent log entries in memory. It is safe for
// concurrent use; Core adapts it to zap.
type LogBuffer struct {
	mu       sync.Mutex
	entries  []LogEntry
	limit    int
	gen      uint64
	onAppend func()
}

const defaultLogLimit = 500

func NewLogBuffer(limit int) *LogBuffer {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	return &LogBuffer{limit: limit}
}

// Core returns a zap core writing into the buffer at level and above.
func (b *LogBuffer) Core(level zapcore.LevelEnabler) zapcore.Core {
	return &bufferCore{LevelEnabler: level, buf: b}
}

// Entries returns a copy of the buffered entries, oldest first.
func (b *LogBuffer) Entries() []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.entries)
}

// Generation counts appends. It changes whenever Entries may have.
func (b *LogBuffer) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gen
}

func (b *LogBuffer) snapshot() ([]LogEntry, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.entries), b.gen
}

func (b *LogBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// OnAppend sets the function called after each new entry. It runs on the
// logging goroutine.
func (b *LogBuffer) OnAppend(fn func()) {
	b.mu.Lock()
	b.onAppend = fn
	b.mu.Unlock()
}

func (b *LogBuffer) append(e LogEntry) {
	b.mu.Lock()
	b.entries = append(b.entries, e)
	b.gen++
	if over := len(b.entries) - b.limit; over > 0 {
		b.entries = slices.Delete(b.entries, 0, over)
	}
	fn := b.onAppend
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}

type bufferCore struct {
	zapcore.LevelEnabler
	buf    *LogBuffer
	fields []zapcore.Field
}

func (c *bufferCore) With(fields []zapcore.Field) zapcore.Core {
	return &bufferCore{
		LevelEnabler: c.LevelEnabler,
		buf:          c.buf,
		fields:       append(slices.Clip(c.fields), fields...),
	}
}

func (c *bufferCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *bufferCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, enc.Fields[k])
	}
	c.buf.append(LogEntry{
		Time:    ent.Time,
		Level:   ent.Level,
		Message: ent.Message,
		Fields:  strings.Join(parts, " "),
	})
	return nil
}

func (c *bufferCore) Sync() error { return nil }

// LogView shows the tail of a LogBuffer, newest line at the bottom.
type LogView struct {
	ViewBase
	buf *LogBuffer
	// generation of buf behind the cached natural size
	measured uint64
}

func NewLogView(buf *LogBuffer) *LogView { return &LogView{buf: buf} }

func (l *LogView) DidMount(sys System) {
	l.buf.OnAppend(sys.RequestRender)
}

func (l *LogView) DidUnmount() {
	l.buf.OnAppend(nil)
}

// NaturalSize asks for one row per entry; the view is usually given a
// flex weight instead.
func (l *LogView) NaturalSize(Size) Size {
	width := 0
	entries, gen := l.buf.snapshot()
	l.measured = gen
	for _, e := range entries {
		width = max(width, StringWidth(e.String()))
	}
	return Size{width, len(entries)}
}

func (l *LogView) Render(vp *Viewport) {
	// appends arrive on the logging goroutine; the size cache is dropped here
	if gen := l.buf.Generation(); gen != l.measured {
		l.measured = gen
		l.InvalidateSize()
		l.NeedsRender()
	}
	height := vp.ContentSize().Height
	if vp.IsEmpty() || height == 0 {
		return
	}
	entries := l.buf.Entries()
	if len(entries) > height {
		entries = entries[len(entries)-height:]
	}
	theme := vp.Theme()
	y := height - len(entries)
	for _, e := range entries {
		head := e.Time.Format("15:04:05") + " " + fmt.Sprintf("%-5s", e.Level.CapitalString())
		vp.Write(head, Point{0, y}, levelStyle(theme, e.Level))
		msg := " " + e.Message
		vp.Write(msg, Point{StringWidth(head), y}, Style{Foreground: theme.TextColor})
		if e.Fields != "" {
			vp.Write(" "+e.Fields, Point{StringWidth(head + msg), y}, Style{Foreground: theme.DimText})
		}
		y++
	}
}

func levelStyle(theme Theme, level zapcore.Level) Style {
	switch {
	case level >= zapcore.ErrorLevel:
		return Style{Foreground: tcell.ColorRed, Bold: FlagOn}
	case level == zapcore.WarnLevel:
		return Style{Foreground: tcell.ColorYellow, Bold: FlagOn}
	case level == zapcore.InfoLevel:
		return Style{Foreground: theme.Highlight}
	}
	return Style{Foreground: theme.DimText}
}
