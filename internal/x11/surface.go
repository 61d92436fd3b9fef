package x11

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/xgb/glx"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/glint2d/glint/event"
)

var (
	// ErrContext is returned when the server rejects creation of a GLX
	// rendering context.
	ErrContext = errors.New("cannot create rendering context")

	// ErrWaitTimeout is returned when the server never confirms a map or
	// unmap within the configured deadline.
	ErrWaitTimeout = errors.New("timed out waiting for window state change")

	// ErrDestroyed is returned from operations on a surface whose native
	// resources are already torn down.
	ErrDestroyed = errors.New("surface already destroyed")
)

// SurfaceConfig carries the construction parameters for a render surface.
type SurfaceConfig struct {
	Width      int
	Height     int
	Fullscreen bool
	Display    string // empty means $DISPLAY
}

// Surface owns one native X11 window and its primary GLX context. It is the
// sole holder of the display connection; everything the event loop needs
// from the platform goes through it.
type Surface struct {
	conn   *Connection
	win    xproto.Window
	visual visualConfig

	ctx    glx.Context
	ctxTag glx.ContextTag

	wmDelete xproto.Atom

	width      int
	height     int
	fullscreen bool

	// Events observed while waiting for a map/unmap confirmation are kept
	// here so the pump still sees them in arrival order.
	backlog []event.Event

	destroyed bool
}

// NewSurface connects to the display and creates the native window and its
// rendering context. Any failure is fatal: the caller gets an error and no
// partially constructed surface.
func NewSurface(cfg SurfaceConfig) (*Surface, error) {
	conn, err := NewConnection(cfg.Display)
	if err != nil {
		return nil, err
	}

	s, err := newSurfaceOn(conn, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func newSurfaceOn(conn *Connection, cfg SurfaceConfig) (*Surface, error) {
	xu := conn.XUtil
	xc := xu.Conn()

	if err := glx.Init(xc); err != nil {
		return nil, fmt.Errorf("%w: glx unavailable: %v", ErrContext, err)
	}

	visual, err := conn.findVisual()
	if err != nil {
		return nil, err
	}

	s := &Surface{
		conn:       conn,
		visual:     visual,
		width:      cfg.Width,
		height:     cfg.Height,
		fullscreen: cfg.Fullscreen,
	}
	if cfg.Fullscreen {
		s.width, s.height = conn.ScreenSize()
	}

	ctx, err := glx.NewContextId(xc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContext, err)
	}
	err = glx.CreateContextChecked(xc, ctx, visual.ID, uint32(xc.DefaultScreen), 0, true).Check()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContext, err)
	}
	s.ctx = ctx

	colormap, err := xproto.NewColormapId(xc)
	if err != nil {
		return nil, fmt.Errorf("cannot allocate colormap id: %w", err)
	}
	err = xproto.CreateColormapChecked(xc, xproto.ColormapAllocNone, colormap, conn.Root, visual.ID).Check()
	if err != nil {
		return nil, fmt.Errorf("cannot create colormap: %w", err)
	}

	win, err := xproto.NewWindowId(xc)
	if err != nil {
		return nil, fmt.Errorf("cannot allocate window id: %w", err)
	}
	const eventMask = xproto.EventMaskKeyPress |
		xproto.EventMaskKeyRelease |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskExposure |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskFocusChange
	// Value order follows the ascending CW* bit positions.
	err = xproto.CreateWindowChecked(xc,
		s.visualDepth(), win, conn.Root,
		0, 0, uint16(s.width), uint16(s.height), 0,
		xproto.WindowClassInputOutput, visual.ID,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwBitGravity|xproto.CwEventMask|xproto.CwColormap,
		[]uint32{
			xu.Screen().BlackPixel,
			0,
			xproto.GravityNorthWest,
			eventMask,
			uint32(colormap),
		}).Check()
	if err != nil {
		return nil, fmt.Errorf("cannot create window: %w", err)
	}
	s.win = win

	// Observe close-button clicks as ClientMessage events instead of the
	// server killing the connection.
	s.wmDelete, err = xprop.Atm(xu, "WM_DELETE_WINDOW")
	if err != nil {
		return nil, fmt.Errorf("cannot intern WM_DELETE_WINDOW: %w", err)
	}
	if err := icccm.WmProtocolsSet(xu, win, []string{"WM_DELETE_WINDOW"}); err != nil {
		return nil, fmt.Errorf("cannot set WM protocols: %w", err)
	}

	if cfg.Fullscreen {
		err = xproto.ConfigureWindowChecked(xc, win,
			xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{0, 0, uint32(s.width), uint32(s.height)}).Check()
		if err != nil {
			return nil, fmt.Errorf("cannot move fullscreen window: %w", err)
		}
		// Bypass window-manager placement and decoration.
		err = xproto.ChangeWindowAttributesChecked(xc, win,
			xproto.CwOverrideRedirect, []uint32{1}).Check()
		if err != nil {
			return nil, fmt.Errorf("cannot set override-redirect: %w", err)
		}
	}

	// Pin min and max size to the actual size; the window is not resizable.
	hints := icccm.NormalHints{
		Flags:     icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
		MinWidth:  uint(s.width),
		MinHeight: uint(s.height),
		MaxWidth:  uint(s.width),
		MaxHeight: uint(s.height),
	}
	if err := icccm.WmNormalHintsSet(xu, win, &hints); err != nil {
		return nil, fmt.Errorf("cannot set size hints: %w", err)
	}

	if err := s.installBlankCursor(); err != nil {
		return nil, err
	}

	conn.Sync()
	return s, nil
}

// installBlankCursor replaces the pointer with a fully transparent cursor;
// cursor visuals, when wanted, are drawn by the embedding game itself.
func (s *Surface) installBlankCursor() error {
	xc := s.conn.XUtil.Conn()

	pixmap, err := xproto.NewPixmapId(xc)
	if err != nil {
		return fmt.Errorf("cannot allocate pixmap id: %w", err)
	}
	err = xproto.CreatePixmapChecked(xc, 1, pixmap, xproto.Drawable(s.win), 1, 1).Check()
	if err != nil {
		return fmt.Errorf("cannot create cursor pixmap: %w", err)
	}

	cursor, err := xproto.NewCursorId(xc)
	if err != nil {
		return fmt.Errorf("cannot allocate cursor id: %w", err)
	}
	err = xproto.CreateCursorChecked(xc, cursor, pixmap, pixmap,
		0, 0, 0, 0, 0, 0, 0, 0).Check()
	if err != nil {
		return fmt.Errorf("cannot create blank cursor: %w", err)
	}

	err = xproto.ChangeWindowAttributesChecked(xc, s.win,
		xproto.CwCursor, []uint32{uint32(cursor)}).Check()
	if err != nil {
		return fmt.Errorf("cannot install blank cursor: %w", err)
	}

	xproto.FreeCursor(xc, cursor)
	xproto.FreePixmap(xc, pixmap)
	return nil
}

func (s *Surface) visualDepth() byte {
	return s.conn.visualDepth(s.visual.ID)
}

// Size reports the actual window size; under fullscreen this is the screen
// size, not the requested one.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Destroyed reports whether native resources have been torn down.
func (s *Surface) Destroyed() bool {
	return s.destroyed
}

// MakeCurrent binds the primary rendering context to the calling goroutine's
// connection state.
func (s *Surface) MakeCurrent() error {
	if s.destroyed {
		return ErrDestroyed
	}
	reply, err := glx.MakeCurrent(s.conn.XUtil.Conn(), glx.Drawable(s.win), s.ctx, s.ctxTag).Reply()
	if err != nil {
		return fmt.Errorf("%w: make current: %v", ErrContext, err)
	}
	s.ctxTag = reply.ContextTag
	return nil
}

// ReleaseCurrent unbinds the primary rendering context.
func (s *Surface) ReleaseCurrent() error {
	if s.destroyed {
		return ErrDestroyed
	}
	_, err := glx.MakeCurrent(s.conn.XUtil.Conn(), 0, 0, s.ctxTag).Reply()
	s.ctxTag = 0
	if err != nil {
		return fmt.Errorf("%w: release current: %v", ErrContext, err)
	}
	return nil
}

// Present swaps the back and front buffers.
func (s *Surface) Present() error {
	if s.destroyed {
		return ErrDestroyed
	}
	err := glx.SwapBuffersChecked(s.conn.XUtil.Conn(), s.ctxTag, glx.Drawable(s.win)).Check()
	if err != nil {
		return fmt.Errorf("swap buffers: %w", err)
	}
	return nil
}

// Map raises and maps the window, then blocks until the server confirms the
// map or the timeout elapses. Events arriving meanwhile are kept for the
// pump in order.
func (s *Surface) Map(timeout time.Duration) error {
	if s.destroyed {
		return ErrDestroyed
	}
	xc := s.conn.XUtil.Conn()
	xproto.MapWindow(xc, s.win)
	xproto.ConfigureWindow(xc, s.win, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove})
	return s.waitFor(timeout, func(ev interface{}) bool {
		mn, ok := ev.(xproto.MapNotifyEvent)
		return ok && mn.Window == s.win
	})
}

// Unmap hides the window and blocks until the server confirms, bounded by
// the timeout.
func (s *Surface) Unmap(timeout time.Duration) error {
	if s.destroyed {
		return ErrDestroyed
	}
	xproto.UnmapWindow(s.conn.XUtil.Conn(), s.win)
	return s.waitFor(timeout, func(ev interface{}) bool {
		un, ok := ev.(xproto.UnmapNotifyEvent)
		return ok && un.Window == s.win
	})
}

func (s *Surface) waitFor(timeout time.Duration, match func(interface{}) bool) error {
	deadline := time.Now().Add(timeout)
	for {
		ev, xerr := s.conn.XUtil.Conn().PollForEvent()
		if ev != nil {
			if match(ev) {
				return nil
			}
			if translated, ok := s.translate(ev); ok {
				s.backlog = append(s.backlog, translated)
			}
			continue
		}
		if xerr == nil {
			if time.Now().After(deadline) {
				return ErrWaitTimeout
			}
			time.Sleep(time.Millisecond)
		}
	}
}

// PollEvent returns the next pending event without blocking. The second
// return value is false once the queue is empty.
func (s *Surface) PollEvent() (event.Event, bool) {
	if len(s.backlog) > 0 {
		ev := s.backlog[0]
		s.backlog = s.backlog[1:]
		return ev, true
	}
	if s.destroyed {
		return nil, false
	}
	for {
		ev, xerr := s.conn.XUtil.Conn().PollForEvent()
		if ev == nil && xerr == nil {
			return nil, false
		}
		if xerr != nil {
			// Protocol errors from asynchronous requests; nothing to
			// classify, keep draining.
			continue
		}
		if translated, ok := s.translate(ev); ok {
			return translated, true
		}
	}
}

func (s *Surface) translate(ev interface{}) (event.Event, bool) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return event.ButtonDown{Button: event.Key(uint8(e.Detail)), X: int(e.EventX), Y: int(e.EventY)}, true
	case xproto.KeyReleaseEvent:
		return event.ButtonUp{Button: event.Key(uint8(e.Detail)), X: int(e.EventX), Y: int(e.EventY)}, true
	case xproto.ButtonPressEvent:
		return event.ButtonDown{Button: event.Button(e.Detail), X: int(e.EventX), Y: int(e.EventY)}, true
	case xproto.ButtonReleaseEvent:
		return event.ButtonUp{Button: event.Button(e.Detail), X: int(e.EventX), Y: int(e.EventY)}, true
	case xproto.MotionNotifyEvent:
		return event.MouseMove{X: int(e.EventX), Y: int(e.EventY)}, true
	case xproto.ConfigureNotifyEvent:
		return event.Configure{X: int(e.X), Y: int(e.Y), Width: int(e.Width), Height: int(e.Height)}, true
	case xproto.ClientMessageEvent:
		if e.Format == 32 && len(e.Data.Data32) > 0 && e.Data.Data32[0] == uint32(s.wmDelete) {
			return event.CloseRequest{}, true
		}
		return nil, false
	case xproto.FocusInEvent:
		return event.FocusChange{Gained: true}, true
	case xproto.FocusOutEvent:
		return event.FocusChange{Gained: false}, true
	case xproto.ExposeEvent:
		return event.Expose{}, true
	default:
		return nil, false
	}
}

// ForceFocus grabs input focus for the window. Needed for override-redirect
// fullscreen windows, which window managers never focus on their own.
func (s *Surface) ForceFocus() error {
	if s.destroyed {
		return ErrDestroyed
	}
	err := xproto.SetInputFocusChecked(s.conn.XUtil.Conn(),
		xproto.InputFocusParent, s.win, xproto.TimeCurrentTime).Check()
	if err != nil {
		return fmt.Errorf("cannot grab input focus: %w", err)
	}
	return nil
}

// SetTitle propagates the caption to the server, on both the ICCCM and EWMH
// properties, and synchronizes so the change is ordered before returning.
func (s *Surface) SetTitle(title string) error {
	if s.destroyed {
		return ErrDestroyed
	}
	xu := s.conn.XUtil
	if err := icccm.WmNameSet(xu, s.win, title); err != nil {
		return fmt.Errorf("cannot set WM_NAME: %w", err)
	}
	if err := ewmh.WmNameSet(xu, s.win, title); err != nil {
		return fmt.Errorf("cannot set _NET_WM_NAME: %w", err)
	}
	s.conn.Sync()
	return nil
}

// Destroy tears down the context, window and connection. Idempotent; the
// surface is unusable afterwards.
func (s *Surface) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	xc := s.conn.XUtil.Conn()
	glx.DestroyContext(xc, s.ctx)
	xproto.DestroyWindow(xc, s.win)
	s.conn.Sync()
	s.conn.Close()
}
