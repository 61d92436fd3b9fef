package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/glx"
	"github.com/BurntSushi/xgb/xproto"
)

// ErrNoVisual is returned when the server offers no visual matching the
// rendering requirements (RGBA, double-buffered, with a depth buffer).
var ErrNoVisual = errors.New("no compatible visual")

// visualConfig is one entry of a GLXGetVisualConfigs reply. The first 18
// properties of every visual follow a fixed order defined by the GLX
// protocol; anything past that is extension data we do not need.
type visualConfig struct {
	ID           xproto.Visualid
	Class        int
	RGBA         bool
	RedSize      int
	GreenSize    int
	BlueSize     int
	AlphaSize    int
	DoubleBuffer bool
	Stereo       bool
	BufferSize   int
	DepthSize    int
	StencilSize  int
}

const visualBaseProps = 18

func parseVisualConfigs(numVisuals, numProps int, props []uint32) []visualConfig {
	if numProps < visualBaseProps {
		return nil
	}
	configs := make([]visualConfig, 0, numVisuals)
	for i := 0; i+numProps <= len(props) && len(configs) < numVisuals; i += numProps {
		p := props[i : i+numProps]
		configs = append(configs, visualConfig{
			ID:           xproto.Visualid(p[0]),
			Class:        int(p[1]),
			RGBA:         p[2] != 0,
			RedSize:      int(p[3]),
			GreenSize:    int(p[4]),
			BlueSize:     int(p[5]),
			AlphaSize:    int(p[6]),
			DoubleBuffer: p[11] != 0,
			Stereo:       p[12] != 0,
			BufferSize:   int(p[13]),
			DepthSize:    int(p[14]),
			StencilSize:  int(p[15]),
		})
	}
	return configs
}

// chooseVisual picks the first visual that can back the render surface:
// true-color RGBA with at least one bit per channel, double-buffered, and
// carrying a depth buffer. Mirrors a glXChooseVisual call with
// GLX_RGBA, GLX_DOUBLEBUFFER, GLX_{RED,GREEN,BLUE}_SIZE 1, GLX_DEPTH_SIZE 1.
func chooseVisual(configs []visualConfig) (visualConfig, bool) {
	for _, cfg := range configs {
		if !cfg.RGBA || !cfg.DoubleBuffer {
			continue
		}
		if cfg.RedSize < 1 || cfg.GreenSize < 1 || cfg.BlueSize < 1 {
			continue
		}
		if cfg.DepthSize < 1 {
			continue
		}
		return cfg, true
	}
	return visualConfig{}, false
}

func (c *Connection) findVisual() (visualConfig, error) {
	conn := c.XUtil.Conn()
	reply, err := glx.GetVisualConfigs(conn, uint32(conn.DefaultScreen)).Reply()
	if err != nil {
		return visualConfig{}, fmt.Errorf("%w: %v", ErrNoVisual, err)
	}
	configs := parseVisualConfigs(int(reply.NumVisuals), int(reply.NumProperties), reply.PropertyList)
	cfg, ok := chooseVisual(configs)
	if !ok {
		return visualConfig{}, ErrNoVisual
	}
	return cfg, nil
}

// visualDepth resolves the color depth of a visual by walking the screen's
// allowed depths.
func (c *Connection) visualDepth(id xproto.Visualid) byte {
	for _, depth := range c.XUtil.Screen().AllowedDepths {
		for _, visual := range depth.Visuals {
			if visual.VisualId == id {
				return depth.Depth
			}
		}
	}
	return c.XUtil.Screen().RootDepth
}
