package glint

import (
	"time"

	"github.com/glint2d/glint/event"
	"github.com/glint2d/glint/internal/x11"
)

// Surface abstracts the native render surface the tick loop runs against:
// one window, one primary rendering context, and the platform event queue.
type Surface interface {
	// Size reports the actual window size in pixels.
	Size() (int, int)

	// PollEvent returns the next pending event without blocking; the second
	// return value is false once the queue is empty.
	PollEvent() (event.Event, bool)

	// MakeCurrent binds the primary rendering context on the calling thread.
	MakeCurrent() error
	// ReleaseCurrent unbinds the primary rendering context.
	ReleaseCurrent() error
	// Present swaps the back and front buffers.
	Present() error

	// Map shows the window and blocks until the platform confirms, bounded
	// by the timeout.
	Map(timeout time.Duration) error
	// Unmap hides the window and blocks until the platform confirms,
	// bounded by the timeout.
	Unmap(timeout time.Duration) error

	// SetTitle propagates the caption to the platform.
	SetTitle(title string) error
	// ForceFocus grabs input focus for the window.
	ForceFocus() error

	// NewSharedContext creates a secondary context sharing GPU objects with
	// the primary one, on a duplicate display connection.
	NewSharedContext() (SharedContext, error)

	// Destroyed reports whether native resources are already torn down.
	Destroyed() bool
	// Destroy tears down all native resources. Idempotent.
	Destroy()
}

// SharedContext is a secondary rendering context for a caller-managed second
// thread. Release must be called exactly once; it is never invoked
// automatically.
type SharedContext interface {
	Activate() error
	Release()
}

// x11Surface adapts the platform surface to the Surface seam; the only
// impedance is the shared-context return type.
type x11Surface struct {
	*x11.Surface
}

func (s x11Surface) NewSharedContext() (SharedContext, error) {
	sc, err := s.Surface.NewSharedContext()
	if err != nil {
		return nil, err
	}
	return sc, nil
}
