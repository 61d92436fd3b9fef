package glint

import "testing"

func TestGraphicsFrameLifecycle(t *testing.T) {
	g := newGraphics(800, 600, nil)

	if !g.BeginFrame(ColorBlack) {
		t.Fatalf("frame must begin on a ready surface")
	}
	if g.BeginFrame(ColorBlack) {
		t.Fatalf("nested frames must be rejected")
	}
	g.EndFrame()
	if g.FrameCount() != 1 {
		t.Fatalf("expected 1 completed frame, got %d", g.FrameCount())
	}

	// EndFrame outside a frame is a no-op.
	g.EndFrame()
	if g.FrameCount() != 1 {
		t.Fatalf("stray EndFrame must not count a frame")
	}
}

func TestGraphicsReadinessGate(t *testing.T) {
	ready := false
	g := newGraphics(800, 600, func() bool { return ready })

	if g.BeginFrame(ColorBlack) {
		t.Fatalf("frame must not begin while the surface is not ready")
	}
	ready = true
	if !g.BeginFrame(ColorRed) {
		t.Fatalf("frame must begin once the surface is ready")
	}
	if g.ClearColor() != ColorRed {
		t.Fatalf("clear color not recorded")
	}
	g.EndFrame()
}

func TestGraphicsResize(t *testing.T) {
	g := newGraphics(800, 600, nil)

	g.Resize(1024, 768)
	if g.Width() != 1024 || g.Height() != 768 {
		t.Fatalf("resize not applied: %dx%d", g.Width(), g.Height())
	}

	g.Resize(0, -5)
	if g.Width() != 1024 || g.Height() != 768 {
		t.Fatalf("degenerate sizes must be ignored: %dx%d", g.Width(), g.Height())
	}
}

func TestColorFloats(t *testing.T) {
	r, g, b, a := ColorWhite.Floats()
	if r != 1 || g != 1 || b != 1 || a != 1 {
		t.Fatalf("white must normalize to all ones: %v %v %v %v", r, g, b, a)
	}
	r, g, b, a = ColorNone.Floats()
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Fatalf("the zero color must normalize to all zeros")
	}
}
