package glint

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "window:\n  caption: hello\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Fatalf("defaults not applied: %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Caption != "hello" {
		t.Fatalf("file value not applied: %q", cfg.Window.Caption)
	}
	if cfg.Window.UpdateIntervalMs != DefaultUpdateIntervalMs {
		t.Fatalf("default interval not applied: %g", cfg.Window.UpdateIntervalMs)
	}
}

func TestLoadConfigEmptyFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Fatalf("defaults must stand for an empty file")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "window:\n  widht: 640\n")

	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("misspelled keys must be rejected")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := []string{
		"window:\n  width: -1\n",
		"window:\n  update_interval_ms: 0\n  width: 640\n  height: 480\n",
		"window:\n  update_interval_ms: -2\n",
		"audio:\n  sample_rate: -44100\n",
	}
	for _, content := range cases {
		path := writeConfig(t, content)
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("expected validation error for %q", content)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

func TestFullscreenConfigSkipsSizeCheck(t *testing.T) {
	path := writeConfig(t, "window:\n  fullscreen: true\n  width: 0\n  height: 0\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("fullscreen config must not require a size: %v", err)
	}
	if !cfg.Window.Fullscreen {
		t.Fatalf("fullscreen flag lost")
	}
}

func TestWindowConfigConversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Caption = "game"
	cfg.Window.Display = ":1"
	cfg.Window.MapTimeoutMs = 2500
	cfg.Audio.SampleRate = 48000

	wc := cfg.WindowConfig()
	if wc.Width != 800 || wc.Height != 600 {
		t.Fatalf("size not carried over: %dx%d", wc.Width, wc.Height)
	}
	if wc.Caption != "game" || wc.Display != ":1" {
		t.Fatalf("caption/display not carried over")
	}
	if wc.MapTimeout != 2500*time.Millisecond {
		t.Fatalf("map timeout not converted: %v", wc.MapTimeout)
	}
	if wc.Audio.SampleRate != 48000 {
		t.Fatalf("audio settings not carried over")
	}
}
