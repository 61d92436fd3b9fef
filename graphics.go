package glint

// Graphics is the frame-oriented drawing surface owned by a Window. The tick
// driver brackets every rendered frame with BeginFrame/EndFrame and presents
// afterwards; drawing backends hang their draw calls off the frame state.
type Graphics struct {
	width  int
	height int

	clearColor Color
	inFrame    bool
	frames     uint64

	// ready gates frame starts; the window wires it to its mapped state.
	ready func() bool
}

func newGraphics(width, height int, ready func() bool) *Graphics {
	return &Graphics{width: width, height: height, ready: ready}
}

// BeginFrame starts a frame that will be cleared to the given color. It
// reports false when the surface is not ready to accept a frame, in which
// case the caller must skip drawing and presentation for this tick.
func (g *Graphics) BeginFrame(clear Color) bool {
	if g.inFrame {
		return false
	}
	if g.ready != nil && !g.ready() {
		return false
	}
	g.clearColor = clear
	g.inFrame = true
	return true
}

// EndFrame closes the current frame. No-op outside a frame.
func (g *Graphics) EndFrame() {
	if !g.inFrame {
		return
	}
	g.inFrame = false
	g.frames++
}

// Resize updates the drawable size after the native window changed geometry.
func (g *Graphics) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.width = width
	g.height = height
}

// Width reports the drawable width in pixels.
func (g *Graphics) Width() int { return g.width }

// Height reports the drawable height in pixels.
func (g *Graphics) Height() int { return g.height }

// FrameCount reports how many frames completed since construction.
func (g *Graphics) FrameCount() uint64 { return g.frames }

// ClearColor reports the clear color of the current or last frame.
func (g *Graphics) ClearColor() Color { return g.clearColor }
