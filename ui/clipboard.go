package ui

import (
	"encoding/base64"
	"fmt"
	"io"
	"sync"

	"golang.design/x/clipboard"
)

// Clipboard is where Input copies to and pastes from.
type Clipboard interface {
	ReadText() string
	WriteText(s string)
}

// MemoryClipboard keeps the text in process. The zero value is ready to use.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *MemoryClipboard) ReadText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

func (c *MemoryClipboard) WriteText(s string) {
	c.mu.Lock()
	c.text = s
	c.mu.Unlock()
}

// SystemClipboard uses the desktop clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadText() string {
	return string(clipboard.Read(clipboard.FmtText))
}

func (SystemClipboard) WriteText(s string) {
	clipboard.Write(clipboard.FmtText, []byte(s))
}

// NewClipboard returns the system clipboard when it can be initialized
// (it needs cgo and a display), and an in-memory one otherwise.
func NewClipboard() (Clipboard, error) {
	if err := clipboard.Init(); err != nil {
		return &MemoryClipboard{}, fmt.Errorf("clipboard: %w", err)
	}
	return SystemClipboard{}, nil
}

// OSC52Clipboard sends copied text to the terminal with the OSC 52 escape
// sequence, which works over ssh on many terminals. Terminals do not answer
// reads reliably, so pasting uses the last copied text.
type OSC52Clipboard struct {
	MemoryClipboard
	W io.Writer
}

func (c *OSC52Clipboard) WriteText(s string) {
	c.MemoryClipboard.WriteText(s)
	if c.W != nil {
		fmt.Fprintf(c.W, "\x1b]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(s)))
	}
}
