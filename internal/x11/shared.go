package x11

import (
	"errors"
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/glx"
)

var (
	// ErrDuplicateDisplay is returned when a second connection to the
	// display cannot be opened for a shared context.
	ErrDuplicateDisplay = errors.New("cannot duplicate display connection")

	// ErrSharedContext is returned when the shared GLX context cannot be
	// created on the duplicate connection.
	ErrSharedContext = errors.New("cannot create shared context")

	// ErrReleased is returned from Activate after the context was released.
	ErrReleased = errors.New("shared context already released")
)

// SharedContext is a secondary GLX context sharing the primary context's
// object namespace, bound to its own display connection so a second
// goroutine (locked to its own OS thread) can render concurrently.
//
// The owner must call Release exactly once; nothing releases it
// automatically, since its lifetime spans an externally managed thread.
type SharedContext struct {
	mu       sync.Mutex
	conn     *Connection
	ctx      glx.Context
	ctxTag   glx.ContextTag
	drawable glx.Drawable
	released bool
}

// NewSharedContext opens a second connection to the surface's display and
// creates a context sharing GPU objects with the primary one. Failures leave
// no partial state behind.
func (s *Surface) NewSharedContext() (*SharedContext, error) {
	if s.destroyed {
		return nil, ErrDestroyed
	}

	conn, err := NewConnection(s.conn.Display)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDuplicateDisplay, err)
	}

	xc := conn.XUtil.Conn()
	if err := glx.Init(xc); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: glx unavailable: %v", ErrSharedContext, err)
	}
	ctx, err := glx.NewContextId(xc)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrSharedContext, err)
	}
	err = glx.CreateContextChecked(xc, ctx, s.visual.ID, uint32(xc.DefaultScreen), s.ctx, true).Check()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrSharedContext, err)
	}

	return &SharedContext{
		conn:     conn,
		ctx:      ctx,
		drawable: glx.Drawable(s.win),
	}, nil
}

// Activate binds the shared context and its connection on the calling
// thread. The caller is responsible for serializing GPU access against the
// primary context.
func (c *SharedContext) Activate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return ErrReleased
	}
	reply, err := glx.MakeCurrent(c.conn.XUtil.Conn(), c.drawable, c.ctx, c.ctxTag).Reply()
	if err != nil {
		return fmt.Errorf("%w: make current: %v", ErrSharedContext, err)
	}
	c.ctxTag = reply.ContextTag
	return nil
}

// Release destroys the context and closes the duplicate connection. Must be
// called exactly once by whichever thread owns the context last; calling it
// again is a no-op.
func (c *SharedContext) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return
	}
	c.released = true
	glx.DestroyContext(c.conn.XUtil.Conn(), c.ctx)
	c.conn.Close()
}
