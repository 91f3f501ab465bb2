package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// escapeEnd returns the index just past the escape sequence that starts at
// s[i]. If s[i] is not ESC, i is returned unchanged.
func escapeEnd(s string, i int) int {
	if i >= len(s) || s[i] != '\x1b' {
		return i
	}
	i++
	if i >= len(s) {
		return i
	}
	switch s[i] {
	case '[':
		// CSI: parameters, then a final byte in 0x40-0x7e
		for i++; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
		}
		return i
	case ']', '_', 'P', '^':
		// OSC, APC, DCS, PM: terminated by BEL (OSC only) or ST
		osc := s[i] == ']'
		for i++; i < len(s); i++ {
			if osc && s[i] == '\a' {
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	default:
		return i + 1
	}
}

// isEscape reports whether a cluster is an escape sequence.
func isEscape(cluster string) bool {
	return len(cluster) > 1 && cluster[0] == '\x1b'
}

// isSGR reports whether seq is a CSI ... m sequence.
func isSGR(seq string) bool {
	return len(seq) >= 3 && seq[0] == '\x1b' && seq[1] == '[' && seq[len(seq)-1] == 'm'
}

// Escape encodes the fields set in s as a single SGR sequence. Unset fields
// are not mentioned, so the sequence overlays whatever pen is active.
func (s Style) Escape() string {
	var codes []string
	flag := func(f Flag, on, off string) {
		switch f {
		case FlagOn:
			codes = append(codes, on)
		case FlagOff:
			codes = append(codes, off)
		}
	}
	flag(s.Bold, "1", "22")
	flag(s.Dim, "2", "22")
	flag(s.Italic, "3", "23")
	flag(s.Underline, "4", "24")
	flag(s.Inverse, "7", "27")
	flag(s.Strikethrough, "9", "29")
	if c := colorCode(s.Foreground, 38); c != "" {
		codes = append(codes, c)
	}
	if c := colorCode(s.Background, 48); c != "" {
		codes = append(codes, c)
	}
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func colorCode(c Color, base int) string {
	switch {
	case c == tcell.ColorDefault:
		return ""
	case c.IsRGB():
		r, g, b := c.RGB()
		return strconv.Itoa(base) + ";2;" +
			strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b))
	default:
		return strconv.Itoa(base) + ";5;" + strconv.Itoa(int(c-tcell.ColorValid))
	}
}

// applySGR updates pen according to the SGR sequence seq. A reset (empty or
// 0 parameter) returns to base. Sequences that are not SGR leave pen alone.
func applySGR(seq string, pen, base Style) Style {
	if !isSGR(seq) {
		return pen
	}
	params := strings.Split(seq[2:len(seq)-1], ";")
	for i := 0; i < len(params); i++ {
		n, err := strconv.Atoi(params[i])
		if params[i] == "" {
			n, err = 0, nil
		}
		if err != nil {
			continue
		}
		switch {
		case n == 0:
			pen = base
		case n == 1:
			pen.Bold = FlagOn
		case n == 2:
			pen.Dim = FlagOn
		case n == 3:
			pen.Italic = FlagOn
		case n == 4:
			pen.Underline = FlagOn
		case n == 7:
			pen.Inverse = FlagOn
		case n == 9:
			pen.Strikethrough = FlagOn
		case n == 22:
			pen.Bold, pen.Dim = FlagOff, FlagOff
		case n == 23:
			pen.Italic = FlagOff
		case n == 24:
			pen.Underline = FlagOff
		case n == 27:
			pen.Inverse = FlagOff
		case n == 29:
			pen.Strikethrough = FlagOff
		case n >= 30 && n <= 37:
			pen.Foreground = tcell.PaletteColor(n - 30)
		case n == 39:
			pen.Foreground = base.Foreground
		case n >= 40 && n <= 47:
			pen.Background = tcell.PaletteColor(n - 40)
		case n == 49:
			pen.Background = base.Background
		case n >= 90 && n <= 97:
			pen.Foreground = tcell.PaletteColor(n - 90 + 8)
		case n >= 100 && n <= 107:
			pen.Background = tcell.PaletteColor(n - 100 + 8)
		case n == 38 || n == 48:
			c, used := extendedColor(params[i+1:])
			i += used
			if c == tcell.ColorDefault {
				continue
			}
			if n == 38 {
				pen.Foreground = c
			} else {
				pen.Background = c
			}
		}
	}
	return pen
}

// extendedColor parses the arguments following 38 or 48 and returns the
// color plus the number of parameters consumed.
func extendedColor(args []string) (Color, int) {
	if len(args) == 0 {
		return tcell.ColorDefault, 0
	}
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	switch args[0] {
	case "5":
		if len(args) < 2 {
			return tcell.ColorDefault, len(args)
		}
		return tcell.PaletteColor(atoi(args[1])), 2
	case "2":
		if len(args) < 4 {
			return tcell.ColorDefault, len(args)
		}
		return tcell.NewRGBColor(int32(atoi(args[1])), int32(atoi(args[2])), int32(atoi(args[3]))), 4
	}
	return tcell.ColorDefault, 1
}
