// Package glint is a 2D game windowing and event-loop core for X11. It owns
// the display connection, the native window and its GLX context, pumps the
// platform event queue and drives a fixed-cadence tick loop around the
// embedding game's draw and update callbacks.
package glint

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/glint2d/glint/internal/x11"
)

// ErrWindowDestroyed is returned from operations on a Window whose native
// resources were already torn down.
var ErrWindowDestroyed = errors.New("window already destroyed")

// DefaultUpdateIntervalMs is the tick cadence used when the config leaves
// the interval unset: roughly 60 ticks per second.
const DefaultUpdateIntervalMs = 16.666666

// DefaultMapTimeout bounds the wait for the platform to confirm a map or
// unmap. The protocol has no cancellation path, so an unresponsive server
// surfaces as an error instead of hanging the caller forever.
const DefaultMapTimeout = 5 * time.Second

// WindowConfig carries the construction parameters of a Window. Width and
// Height must be positive unless Fullscreen is set, in which case the
// screen's size wins regardless of what was requested.
type WindowConfig struct {
	Width      int
	Height     int
	Fullscreen bool

	// UpdateIntervalMs is the target tick length in milliseconds. Zero
	// means DefaultUpdateIntervalMs.
	UpdateIntervalMs float64

	Caption string

	// Display selects the X display; empty means $DISPLAY.
	Display string

	// MapTimeout bounds map/unmap confirmation waits. Zero means
	// DefaultMapTimeout.
	MapTimeout time.Duration

	// TickHook, when set, runs once at the end of every tick, before the
	// throttle sleep. Host runtimes use it to interleave their own
	// cooperative scheduling with the loop.
	TickHook func()

	// Logger receives diagnostics for in-loop native failures when OnError
	// is unset. Nil means slog.Default.
	Logger *slog.Logger

	// Audio configures the lazily created audio engine.
	Audio AudioSettings
}

func (cfg *WindowConfig) validate() error {
	if !cfg.Fullscreen && (cfg.Width <= 0 || cfg.Height <= 0) {
		return fmt.Errorf("window size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.UpdateIntervalMs < 0 {
		return fmt.Errorf("update interval must be positive, got %g", cfg.UpdateIntervalMs)
	}
	return nil
}

// Window is the top-level entity: exactly one native window and one primary
// rendering context, destroyed together by Destroy. All methods must be
// called from the goroutine that runs Show, except Close, which is safe to
// call from callbacks running inside the tick loop.
type Window struct {
	surface  Surface
	graphics *Graphics
	input    *Input

	audio     *Audio
	audioOnce sync.Once

	width          int
	height         int
	fullscreen     bool
	updateInterval float64
	mapTimeout     time.Duration

	caption string
	mapped  bool
	showing bool
	active  bool

	clearColor Color

	// OnDraw is invoked once per successfully begun frame.
	OnDraw func()
	// OnUpdate is invoked exactly once per tick, whether or not the frame
	// rendered.
	OnUpdate func()
	// OnError receives in-loop native failures. When nil they are logged
	// and the loop continues; the embedder decides whether to Close.
	OnError func(error)

	tickHook func()
	logger   *slog.Logger

	audioCfg AudioSettings
}

// New opens the display, creates the native window and rendering context and
// wires up the Graphics and Input collaborators. Every native failure is
// fatal here: the error is returned and no partially usable Window remains.
func New(cfg WindowConfig) (*Window, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	surface, err := x11.NewSurface(x11.SurfaceConfig{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		Display:    cfg.Display,
	})
	if err != nil {
		return nil, err
	}
	return newWindow(x11Surface{surface}, cfg), nil
}

// newWindow wires a Window onto an already constructed surface. Tests drive
// the loop through this with a scripted surface.
func newWindow(surface Surface, cfg WindowConfig) *Window {
	w := &Window{
		surface:        surface,
		fullscreen:     cfg.Fullscreen,
		updateInterval: cfg.UpdateIntervalMs,
		mapTimeout:     cfg.MapTimeout,
		caption:        cfg.Caption,
		active:         true,
		clearColor:     ColorBlack,
		tickHook:       cfg.TickHook,
		logger:         cfg.Logger,
		audioCfg:       cfg.Audio,
	}
	if w.updateInterval == 0 {
		w.updateInterval = DefaultUpdateIntervalMs
	}
	if w.mapTimeout == 0 {
		w.mapTimeout = DefaultMapTimeout
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	w.width, w.height = surface.Size()
	w.graphics = newGraphics(w.width, w.height, func() bool {
		return w.mapped && !w.surface.Destroyed()
	})
	w.input = NewInput()
	return w
}

// Width reports the actual window width; under fullscreen this is the
// screen width, not the requested one.
func (w *Window) Width() int { return w.width }

// Height reports the actual window height.
func (w *Window) Height() int { return w.height }

// Fullscreen reports whether the window covers the whole screen.
func (w *Window) Fullscreen() bool { return w.fullscreen }

// UpdateInterval reports the target tick length in milliseconds.
func (w *Window) UpdateInterval() float64 { return w.updateInterval }

// Active reports whether the window currently holds input focus.
func (w *Window) Active() bool { return w.active }

// Graphics returns the window's drawing surface. Valid for the life of the
// Window, including after Show returns.
func (w *Window) Graphics() *Graphics { return w.graphics }

// Input returns the window's input dispatcher. Valid for the life of the
// Window.
func (w *Window) Input() *Input { return w.input }

// Audio returns the window's audio engine, constructing it on first call.
// Its lifecycle is independent of the tick loop.
func (w *Window) Audio() *Audio {
	w.audioOnce.Do(func() {
		w.audio = NewAudio(w.audioCfg)
	})
	return w.audio
}

// Caption returns the last caption set, whether or not it has been
// propagated to the platform yet.
func (w *Window) Caption() string { return w.caption }

// SetCaption records the caption and, if the window is already showing,
// propagates it to the platform. Before the first Show the platform title
// is left untouched; Show re-applies the stored caption once mapped.
func (w *Window) SetCaption(caption string) {
	w.caption = caption
	if !w.showing {
		return
	}
	if err := w.surface.SetTitle(caption); err != nil {
		w.reportError(fmt.Errorf("set caption: %w", err))
	}
}

// SetClearColor sets the color every frame is cleared to. Defaults to black.
func (w *Window) SetClearColor(c Color) { w.clearColor = c }

// SetTickHook installs or clears the per-tick hook. Takes effect on the
// next tick.
func (w *Window) SetTickHook(hook func()) { w.tickHook = hook }

// CreateSharedContext creates a secondary rendering context sharing GPU
// objects with the primary one, bound to a duplicate display connection,
// for use by a caller-managed second thread. The caller must invoke Release
// on the returned handle exactly once.
func (w *Window) CreateSharedContext() (SharedContext, error) {
	if w.surface.Destroyed() {
		return nil, ErrWindowDestroyed
	}
	return w.surface.NewSharedContext()
}

// Destroy tears down the native window, context and display connection.
// The Window must not be showing: callers call Close and let Show return
// first. Graphics and Input stay accessible, but no further native
// operation will succeed.
func (w *Window) Destroy() {
	w.surface.Destroy()
}

func (w *Window) reportError(err error) {
	if w.OnError != nil {
		w.OnError(err)
		return
	}
	w.logger.Warn("window: native call failed", "error", err)
}
