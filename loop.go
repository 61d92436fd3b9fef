package glint

import (
	"fmt"

	"github.com/glint2d/glint/event"
	"github.com/glint2d/glint/internal/timing"
)

// Show maps the window and blocks in the tick loop until Close is called or
// a close event arrives. It may be called again after it returns; closing
// only flips the showing state, it does not touch native resources.
func (w *Window) Show() error {
	if w.surface.Destroyed() {
		return ErrWindowDestroyed
	}

	if err := w.surface.Map(w.mapTimeout); err != nil {
		return fmt.Errorf("map window: %w", err)
	}
	w.mapped = true

	if err := w.surface.MakeCurrent(); err != nil {
		w.unmapQuietly()
		return fmt.Errorf("activate context: %w", err)
	}

	// Override-redirect fullscreen windows never get focus from the window
	// manager; take it.
	if w.fullscreen {
		if err := w.surface.ForceFocus(); err != nil {
			w.reportError(err)
		}
	}

	w.showing = true
	w.SetCaption(w.caption)

	for w.showing {
		start := timing.Milliseconds()

		w.tick()
		if w.tickHook != nil {
			w.tickHook()
		}

		elapsed := timing.Milliseconds() - start
		if elapsed < w.updateInterval {
			timing.Sleep(w.updateInterval - elapsed)
		}
	}

	if err := w.surface.ReleaseCurrent(); err != nil {
		w.reportError(err)
	}
	if err := w.surface.Unmap(w.mapTimeout); err != nil {
		w.mapped = false
		return fmt.Errorf("unmap window: %w", err)
	}
	w.mapped = false
	return nil
}

// Close schedules the tick loop to stop. Cooperative, not preemptive: the
// current tick runs to completion and the loop exits at its next top.
func (w *Window) Close() {
	w.showing = false
}

// tick runs one loop iteration: drain events, render a frame if the surface
// is ready, then advance input and the game's update logic. Input and
// update run every tick even when the frame is skipped.
func (w *Window) tick() {
	w.pumpEvents()

	if w.graphics.BeginFrame(w.clearColor) {
		if w.OnDraw != nil {
			w.OnDraw()
		}
		w.graphics.EndFrame()
		if err := w.surface.Present(); err != nil {
			w.reportError(fmt.Errorf("present frame: %w", err))
		}
	}

	w.input.Update()
	if w.OnUpdate != nil {
		w.OnUpdate()
	}
}

// pumpEvents drains every pending platform event, in arrival order, without
// blocking. Input gets first claim on each event; the rest are lifecycle
// events handled here. Unrecognized events are dropped.
func (w *Window) pumpEvents() {
	for {
		ev, ok := w.surface.PollEvent()
		if !ok {
			return
		}

		// A click on an unfocused override-redirect fullscreen window is
		// the only focus signal we will ever get; force focus back before
		// letting input see the event.
		if w.fullscreen && !w.active {
			switch ev.(type) {
			case event.ButtonDown, event.ButtonUp:
				if err := w.surface.ForceFocus(); err != nil {
					w.reportError(err)
				}
			}
		}

		if w.input.TryConsume(ev) {
			continue
		}

		switch e := ev.(type) {
		case event.Configure:
			if e.Width > 0 && e.Height > 0 {
				w.width, w.height = e.Width, e.Height
				w.graphics.Resize(e.Width, e.Height)
			}
			if err := w.surface.MakeCurrent(); err != nil {
				w.reportError(fmt.Errorf("rebind context: %w", err))
			}
		case event.CloseRequest:
			w.Close()
		case event.FocusChange:
			w.active = e.Gained
		}
	}
}

func (w *Window) unmapQuietly() {
	if err := w.surface.Unmap(w.mapTimeout); err != nil {
		w.reportError(err)
	}
	w.mapped = false
}
