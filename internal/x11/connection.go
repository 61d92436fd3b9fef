package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection manages the X11 connection and core X resources.
type Connection struct {
	XUtil   *xgbutil.XUtil
	Root    xproto.Window
	Display string // display string the connection was opened with
}

// NewConnection establishes a connection to the X11 server. An empty display
// string uses $DISPLAY, like XOpenDisplay(NULL).
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("cannot find display: %w", err)
	}

	return &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		Display: display,
	}, nil
}

// Sync forces a blocking round trip to the server, guaranteeing that all
// previously issued requests have been processed.
func (c *Connection) Sync() {
	c.XUtil.Sync()
}

// Close disconnects from the X11 server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// ScreenSize reports the pixel size of the screen. The primary RandR CRTC is
// preferred; on multi-head setups the core screen reports a combined
// bounding box, which is the wrong size for a fullscreen window.
func (c *Connection) ScreenSize() (int, int) {
	if w, h, err := c.primaryCrtcSize(); err == nil {
		return w, h
	}
	screen := c.XUtil.Screen()
	return int(screen.WidthInPixels), int(screen.HeightInPixels)
}

func (c *Connection) primaryCrtcSize() (int, int, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return 0, 0, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get screen resources: %w", err)
	}

	primary, err := randr.GetOutputPrimary(conn, c.Root).Reply()
	if err == nil && primary.Output != 0 {
		info, err := randr.GetOutputInfo(conn, primary.Output, resources.ConfigTimestamp).Reply()
		if err == nil && info.Crtc != 0 {
			crtc, err := randr.GetCrtcInfo(conn, info.Crtc, resources.ConfigTimestamp).Reply()
			if err == nil && crtc.Width > 0 && crtc.Height > 0 {
				return int(crtc.Width), int(crtc.Height), nil
			}
		}
	}

	// No primary configured; take the first enabled CRTC.
	for _, id := range resources.Crtcs {
		crtc, err := randr.GetCrtcInfo(conn, id, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if crtc.Width == 0 || crtc.Height == 0 || len(crtc.Outputs) == 0 {
			continue
		}
		return int(crtc.Width), int(crtc.Height), nil
	}

	return 0, 0, fmt.Errorf("no enabled crtc found")
}
