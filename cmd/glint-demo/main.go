// Command glint-demo opens a window and runs the tick loop until the close
// button or Escape is pressed, demonstrating the embedding contract.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/glint2d/glint"
	"github.com/glint2d/glint/event"
)

// Escape keycode on standard X keymaps.
const escapeKey = 9

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	width := flag.Int("width", 0, "window width (overrides config)")
	height := flag.Int("height", 0, "window height (overrides config)")
	fullscreen := flag.Bool("fullscreen", false, "cover the whole screen")
	caption := flag.String("caption", "", "window caption (overrides config)")
	interval := flag.Float64("interval", 0, "tick interval in milliseconds")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(*configPath, *width, *height, *fullscreen, *caption, *interval, logger); err != nil {
		fmt.Fprintf(os.Stderr, "glint-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, width, height int, fullscreen bool, caption string, interval float64, logger *slog.Logger) error {
	cfg := glint.DefaultConfig()
	if configPath != "" {
		loaded, err := glint.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if width > 0 {
		cfg.Window.Width = width
	}
	if height > 0 {
		cfg.Window.Height = height
	}
	if fullscreen {
		cfg.Window.Fullscreen = true
	}
	if caption != "" {
		cfg.Window.Caption = caption
	}
	if interval > 0 {
		cfg.Window.UpdateIntervalMs = interval
	}
	if cfg.Window.Caption == "" {
		cfg.Window.Caption = "glint demo"
	}

	wcfg := cfg.WindowConfig()
	wcfg.Logger = logger

	win, err := glint.New(wcfg)
	if err != nil {
		return err
	}
	defer win.Destroy()

	logger.Info("window created",
		"size", fmt.Sprintf("%dx%d", win.Width(), win.Height()),
		"fullscreen", win.Fullscreen(),
		"interval_ms", win.UpdateInterval())

	win.SetClearColor(glint.ColorBlack)

	var ticks uint64
	win.OnUpdate = func() {
		ticks++
		if win.Input().Pressed(event.Key(escapeKey)) {
			win.Close()
		}
	}
	win.OnDraw = func() {
		// Scene drawing goes here; the core clears and presents around it.
	}
	win.Input().OnButtonDown = func(b event.Button) {
		logger.Debug("button down", "button", b, "x", win.Input().MouseX(), "y", win.Input().MouseY())
	}

	if err := win.Show(); err != nil {
		return err
	}

	logger.Info("window closed", "ticks", ticks, "frames", win.Graphics().FrameCount())
	return nil
}
