package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cansyan/tui/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.yaml")
	content := `
driver: term
theme: light
tick_interval: 40ms
quit_key: ctrl+x
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "term", cfg.Driver)
	assert.Equal(t, "light", cfg.Theme)
	assert.True(t, cfg.Mouse, "unset fields keep their default")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "tui.log", cfg.Log.OutputPath)

	d, err := cfg.Tick()
	require.NoError(t, err)
	assert.Equal(t, 40*time.Millisecond, d)
	assert.Equal(t, ui.HotKey{Name: "x", Mod: ui.ModCtrl}, cfg.Quit())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"driver", "driver: curses\n"},
		{"theme", "theme: neon\n"},
		{"tick", "tick_interval: soon\n"},
		{"negative tick", "tick_interval: -5ms\n"},
		{"quit key", "quit_key: hyper+q\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tui.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.yaml")
	require.NoError(t, os.WriteFile(path, []byte("driver: [tcell\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.yaml")
	cfg := DefaultConfig()
	cfg.Theme = "dark"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestQuit_Empty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QuitKey = ""
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Quit().IsZero())
}
