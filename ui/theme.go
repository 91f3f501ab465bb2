package ui

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// DefaultTheme picks Breakers on light terminals and Mariana otherwise.
func DefaultTheme() Theme {
	if detectLightTerminal() {
		return NewBreakersTheme()
	}
	return NewMarianaTheme()
}

// ThemeByName resolves "dark", "light" or "auto". Unknown names fall back to
// auto detection.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "dark", "mariana":
		return NewMarianaTheme()
	case "light", "breakers":
		return NewBreakersTheme()
	}
	return DefaultTheme()
}

// detectLightTerminal detects if terminal has a light background via COLORFGBG.
// iTerm2 and other terminals set this as "foreground;background".
// Background 7 or 15 indicates light, 0-6 and 8 indicate dark.
func detectLightTerminal() bool {
	colorfgbg := os.Getenv("COLORFGBG")
	if colorfgbg == "" {
		return false
	}
	parts := strings.Split(colorfgbg, ";")
	if len(parts) != 2 {
		return false
	}
	bg := parts[1]
	return bg == "7" || bg == "15"
}

type Theme struct {
	Name string

	TextColor      Color
	DimText        Color
	BrightText     Color
	TextBackground Color
	DimBackground  Color

	Background Color
	Highlight  Color
	Darken     Color
	Border     Color
	Cursor     Color

	Syntax SyntaxStyle
}

type SyntaxStyle struct {
	Keyword      Style
	String       Style
	Comment      Style
	Number       Style
	Operator     Style
	FunctionName Style
	FunctionCall Style
}

// TextState describes the element asking for a text style.
type TextState struct {
	Pressed     bool
	Hover       bool
	Selected    bool
	Placeholder bool
	Focused     bool
}

// UIState describes the element asking for a chrome style (buttons, borders).
type UIState struct {
	Pressed  bool
	Hover    bool
	Ornament bool
}

// Text returns the style for editable or selectable text.
func (t Theme) Text(st TextState) Style {
	inverse := Boolean(st.Focused && st.Selected)
	bold := Boolean(st.Focused)
	switch {
	case st.Placeholder:
		s := Style{Foreground: t.DimText, Background: t.TextBackground, Bold: bold}
		if st.Pressed {
			s.Foreground = t.TextColor
		}
		if st.Hover {
			s.Background = t.DimBackground
		}
		return s
	case st.Pressed:
		return Style{Foreground: t.Highlight, Background: t.TextBackground, Inverse: inverse, Bold: bold}
	case st.Hover:
		return Style{Foreground: t.BrightText, Background: t.TextBackground, Inverse: inverse, Bold: bold}
	case st.Selected && !st.Focused:
		return Style{Foreground: t.DimText, Background: t.DimBackground}
	}
	return Style{Foreground: t.TextColor, Background: t.TextBackground, Inverse: inverse, Bold: bold}
}

// UI returns the style for non-text chrome.
func (t Theme) UI(st UIState) Style {
	fg := t.TextColor
	switch {
	case st.Pressed:
		if st.Ornament {
			fg = t.Darken
		}
		return Style{Foreground: fg, Background: t.Darken}
	case st.Hover:
		if st.Ornament {
			fg = t.Highlight
		}
		return Style{Foreground: fg, Background: t.Highlight}
	case st.Ornament:
		return Style{Foreground: t.Darken, Background: t.Background}
	}
	return Style{Foreground: t.TextColor, Background: t.Background}
}

func NewBreakersTheme() Theme {
	return Theme{
		Name:           "breakers",
		TextColor:      Hex("#333333"), // grey3
		DimText:        Hex("#999999"), // grey2
		BrightText:     Hex("#000000"),
		TextBackground: Hex("#fbffff"), // white5 (extremely light cyan-white)
		DimBackground:  Hex("#dae0e2"), // white3 (line_highlight / selection)
		Background:     Hex("#f0f4f5"),
		Highlight:      Hex("#5fb3b3"), // blue2 (caret)
		Darken:         Hex("#a7adba"),
		Border:         Hex("#d9e0e4"), // white2 (selection_border)
		Cursor:         Hex("#5fb3b3"),
		Syntax: SyntaxStyle{
			Keyword: Style{
				Foreground: Hex("#c594c5"), // pink
				Italic:     FlagOn,         // storage.type italic
			},
			String:       Style{Foreground: Hex("#89bd82")}, // green
			Comment:      Style{Foreground: Hex("#999999")}, // grey2
			Number:       Style{Foreground: Hex("#fac863")}, // orange
			FunctionName: Style{Foreground: Hex("#5fb3b3")}, // blue2 (entity.name.function)
			FunctionCall: Style{Foreground: Hex("#6699cc")}, // blue (variable.function)
			Operator:     Style{Foreground: Hex("#F97B58")}, // red2
		},
	}
}

func NewMarianaTheme() Theme {
	return Theme{
		Name:           "mariana",
		TextColor:      Hex("#d8dee9"), // white3
		DimText:        Hex("#a7adba"), // blue6
		BrightText:     Hex("#ffffff"),
		TextBackground: Hex("#303841"), // blue3
		DimBackground:  Hex("#4e5a65"),
		Background:     Hex("#343d46"),
		Highlight:      Hex("#fac863"), // orange
		Darken:         Hex("#65737e"), // blue4 (selection_border)
		Border:         Hex("#65737e"),
		Cursor:         Hex("#fac863"),
		Syntax: SyntaxStyle{
			Keyword: Style{
				Foreground: Hex("#c594c5"), // pink
				Italic:     FlagOn,
			},
			String:       Style{Foreground: Hex("#99c794")}, // green
			Comment:      Style{Foreground: Hex("#a7adba")}, // blue6
			Number:       Style{Foreground: Hex("#fac863")}, // orange
			FunctionName: Style{Foreground: Hex("#5fb3b3")}, // blue5 (entity.name.function)
			FunctionCall: Style{Foreground: Hex("#6699cc")}, // blue (variable.function)
			Operator:     Style{Foreground: Hex("#F97B58")}, // red2
		},
	}
}

// plainTheme uses the terminal's own colors. It is the zero-configuration
// theme for tests and for viewports created without a screen.
var plainTheme = Theme{
	Name:           "plain",
	TextColor:      tcell.ColorDefault,
	DimText:        tcell.ColorGray,
	BrightText:     tcell.ColorWhite,
	TextBackground: tcell.ColorDefault,
	DimBackground:  tcell.ColorDefault,
	Background:     tcell.ColorDefault,
	Highlight:      tcell.ColorYellow,
	Darken:         tcell.ColorGray,
	Border:         tcell.ColorDefault,
	Cursor:         tcell.ColorDefault,
}
