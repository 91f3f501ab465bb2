package ui

import (
	"github.com/gdamore/tcell/v2"
)

type Color = tcell.Color

// Flag is a tri-state text attribute. The zero value means "not set" so
// that merging falls through to the underlying style.
type Flag uint8

const (
	FlagUnset Flag = iota
	FlagOn
	FlagOff
)

func (f Flag) IsOn() bool { return f == FlagOn }

func (f Flag) merge(o Flag) Flag {
	if o != FlagUnset {
		return o
	}
	return f
}

// Boolean returns FlagOn or FlagOff.
func Boolean(on bool) Flag {
	if on {
		return FlagOn
	}
	return FlagOff
}

// Style describes how a cell is drawn. tcell.ColorDefault leaves a color
// unset.
type Style struct {
	Foreground    Color
	Background    Color
	Bold          Flag
	Dim           Flag
	Italic        Flag
	Underline     Flag
	Inverse       Flag
	Strikethrough Flag
}

var DefaultStyle = Style{Foreground: tcell.ColorDefault, Background: tcell.ColorDefault}

// Merge returns s overlaid with o: every field set in o wins, unset fields
// fall through to s.
func (s Style) Merge(o Style) Style {
	if o.Foreground != tcell.ColorDefault {
		s.Foreground = o.Foreground
	}
	if o.Background != tcell.ColorDefault {
		s.Background = o.Background
	}
	s.Bold = s.Bold.merge(o.Bold)
	s.Dim = s.Dim.merge(o.Dim)
	s.Italic = s.Italic.merge(o.Italic)
	s.Underline = s.Underline.merge(o.Underline)
	s.Inverse = s.Inverse.merge(o.Inverse)
	s.Strikethrough = s.Strikethrough.merge(o.Strikethrough)
	return s
}

func (s Style) IsZero() bool { return s == Style{} }

func (s Style) Apply() tcell.Style {
	st := tcell.StyleDefault
	if s.Foreground != tcell.ColorDefault {
		st = st.Foreground(s.Foreground)
	}
	if s.Background != tcell.ColorDefault {
		st = st.Background(s.Background)
	}
	if s.Bold.IsOn() {
		st = st.Bold(true)
	}
	if s.Dim.IsOn() {
		st = st.Dim(true)
	}
	if s.Italic.IsOn() {
		st = st.Italic(true)
	}
	if s.Underline.IsOn() {
		st = st.Underline(true)
	}
	if s.Inverse.IsOn() {
		st = st.Reverse(true)
	}
	if s.Strikethrough.IsOn() {
		st = st.StrikeThrough(true)
	}
	return st
}

// Hex parses a "#rrggbb" color, or a W3C color name.
func Hex(c string) Color {
	return tcell.GetColor(c)
}
