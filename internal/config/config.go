// Package config loads the demo program's settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cansyan/tui/internal/logger"
	"github.com/cansyan/tui/ui"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Driver selects the terminal backend: "tcell" or "term".
	Driver string `yaml:"driver"`
	// Theme is "auto", "dark", "light", "mariana" or "breakers".
	Theme        string        `yaml:"theme"`
	TickInterval string        `yaml:"tick_interval"`
	QuitKey      string        `yaml:"quit_key"`
	Mouse        bool          `yaml:"mouse"`
	Log          logger.Config `yaml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Driver:       "tcell",
		Theme:        "auto",
		TickInterval: ui.DefaultTickInterval.String(),
		QuitKey:      "ctrl+q",
		Mouse:        true,
		Log:          logger.DefaultConfig(),
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Driver {
	case "tcell", "term":
	default:
		return fmt.Errorf("%w: driver %q", ErrInvalidConfig, c.Driver)
	}
	switch c.Theme {
	case "", "auto", "dark", "light", "mariana", "breakers":
	default:
		return fmt.Errorf("%w: theme %q", ErrInvalidConfig, c.Theme)
	}
	if _, err := c.Tick(); err != nil {
		return err
	}
	if c.QuitKey != "" {
		if _, err := ui.ParseHotKey(c.QuitKey); err != nil {
			return fmt.Errorf("%w: quit_key: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Tick parses TickInterval. An empty value means the engine default.
func (c *Config) Tick() (time.Duration, error) {
	if c.TickInterval == "" {
		return ui.DefaultTickInterval, nil
	}
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0, fmt.Errorf("%w: tick_interval: %w", ErrInvalidConfig, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: tick_interval %s", ErrInvalidConfig, d)
	}
	return d, nil
}

// Quit parses QuitKey. An empty value disables the quit key.
func (c *Config) Quit() ui.HotKey {
	if c.QuitKey == "" {
		return ui.HotKey{}
	}
	hk, err := ui.ParseHotKey(c.QuitKey)
	if err != nil {
		return ui.HotKey{}
	}
	return hk
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
