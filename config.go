package glint

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file-level configuration of an embedding game: window
// geometry and cadence plus audio settings, loadable from YAML.
type Config struct {
	Window WindowSettings `yaml:"window"`
	Audio  AudioSettings  `yaml:"audio"`
}

// WindowSettings mirrors the window section of the config file.
type WindowSettings struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Fullscreen       bool    `yaml:"fullscreen"`
	UpdateIntervalMs float64 `yaml:"update_interval_ms"`
	Caption          string  `yaml:"caption"`
	Display          string  `yaml:"display"`
	MapTimeoutMs     int     `yaml:"map_timeout_ms"`
}

// DefaultConfig returns the configuration used when no file is present:
// a 800x600 window at ~60 ticks per second.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowSettings{
			Width:            800,
			Height:           600,
			UpdateIntervalMs: DefaultUpdateIntervalMs,
		},
	}
}

// LoadConfig reads a YAML config file on top of the defaults. Unknown keys
// are rejected so typos surface instead of silently meaning nothing.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func unmarshalStrict(data []byte, v interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty file: defaults stand.
			return nil
		}
		return err
	}
	return nil
}

// Validate checks the configuration against the window constraints.
func (c *Config) Validate() error {
	w := c.Window
	if !w.Fullscreen && (w.Width <= 0 || w.Height <= 0) {
		return fmt.Errorf("window size must be positive, got %dx%d", w.Width, w.Height)
	}
	if w.UpdateIntervalMs <= 0 {
		return fmt.Errorf("update_interval_ms must be positive, got %g", w.UpdateIntervalMs)
	}
	if w.MapTimeoutMs < 0 {
		return fmt.Errorf("map_timeout_ms must not be negative, got %d", w.MapTimeoutMs)
	}
	if c.Audio.SampleRate < 0 {
		return fmt.Errorf("audio sample_rate must not be negative, got %d", c.Audio.SampleRate)
	}
	return nil
}

// WindowConfig converts the file settings into construction parameters for
// New.
func (c *Config) WindowConfig() WindowConfig {
	return WindowConfig{
		Width:            c.Window.Width,
		Height:           c.Window.Height,
		Fullscreen:       c.Window.Fullscreen,
		UpdateIntervalMs: c.Window.UpdateIntervalMs,
		Caption:          c.Window.Caption,
		Display:          c.Window.Display,
		MapTimeout:       time.Duration(c.Window.MapTimeoutMs) * time.Millisecond,
		Audio:            c.Audio,
	}
}
