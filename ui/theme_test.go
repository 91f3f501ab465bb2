package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeByName(t *testing.T) {
	tests := []struct {
		name      string
		colorfgbg string
		want      string
	}{
		{"dark", "0;15", "mariana"},
		{"Light", "", "breakers"},
		{"auto", "0;15", "breakers"},
		{"auto", "15;0", "mariana"},
		{"auto", "", "mariana"},
		{"unknown", "0;7", "breakers"},
		{"auto", "garbage", "mariana"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.colorfgbg, func(t *testing.T) {
			t.Setenv("COLORFGBG", tt.colorfgbg)
			assert.Equal(t, tt.want, ThemeByName(tt.name).Name)
		})
	}
}

func TestTheme_Text(t *testing.T) {
	th := NewMarianaTheme()

	st := th.Text(TextState{})
	assert.Equal(t, th.TextColor, st.Foreground)
	assert.Equal(t, FlagOff, st.Inverse)

	assert.Equal(t, FlagOn, th.Text(TextState{Selected: true, Focused: true}).Inverse)
	assert.Equal(t, th.DimBackground, th.Text(TextState{Selected: true}).Background, "unfocused selection is dimmed")
	assert.Equal(t, th.DimText, th.Text(TextState{Placeholder: true}).Foreground)
	assert.Equal(t, th.TextColor, th.Text(TextState{Placeholder: true, Pressed: true}).Foreground)
	assert.Equal(t, FlagOn, th.Text(TextState{Focused: true}).Bold)
}

func TestTheme_UI(t *testing.T) {
	th := NewBreakersTheme()
	assert.Equal(t, th.Highlight, th.UI(UIState{Hover: true}).Background)
	assert.Equal(t, th.Darken, th.UI(UIState{Pressed: true}).Background)
	assert.Equal(t, th.Darken, th.UI(UIState{Ornament: true}).Foreground)
	assert.Equal(t, th.Background, th.UI(UIState{}).Background)
}
