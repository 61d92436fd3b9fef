package x11

import "testing"

// prop builds one GLX visual property record in protocol order.
func prop(id uint32, rgba, doubleBuffer uint32, red, green, blue, depth uint32) []uint32 {
	return []uint32{
		id,                  // visual id
		4,                   // class (TrueColor)
		rgba,                // rgba
		red, green, blue, 8, // channel sizes
		0, 0, 0, 0, // accumulation sizes
		doubleBuffer,
		0,     // stereo
		24,    // buffer size
		depth, // depth size
		8,     // stencil size
		0,     // aux buffers
		0,     // level
	}
}

func TestParseVisualConfigs(t *testing.T) {
	props := append(prop(0x21, 1, 1, 8, 8, 8, 24), prop(0x22, 0, 1, 8, 8, 8, 24)...)

	configs := parseVisualConfigs(2, visualBaseProps, props)
	if len(configs) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(configs))
	}
	if configs[0].ID != 0x21 || !configs[0].RGBA || !configs[0].DoubleBuffer {
		t.Fatalf("first config parsed wrong: %+v", configs[0])
	}
	if configs[1].RGBA {
		t.Fatalf("second config must be color-indexed: %+v", configs[1])
	}
	if configs[0].DepthSize != 24 || configs[0].RedSize != 8 {
		t.Fatalf("sizes parsed wrong: %+v", configs[0])
	}
}

func TestParseVisualConfigsIgnoresExtensionProperties(t *testing.T) {
	// Servers may append extension property pairs past the base 18.
	record := append(prop(0x33, 1, 1, 8, 8, 8, 24), 0xdead, 0xbeef)

	configs := parseVisualConfigs(1, len(record), record)
	if len(configs) != 1 {
		t.Fatalf("expected 1 config, got %d", len(configs))
	}
	if configs[0].ID != 0x33 {
		t.Fatalf("unexpected id: %#x", configs[0].ID)
	}
}

func TestParseVisualConfigsRejectsShortRecords(t *testing.T) {
	if configs := parseVisualConfigs(1, 4, []uint32{1, 2, 3, 4}); configs != nil {
		t.Fatalf("records shorter than the base property set must be rejected")
	}
}

func TestChooseVisualRequirements(t *testing.T) {
	indexed := prop(0x1, 0, 1, 8, 8, 8, 24)
	single := prop(0x2, 1, 0, 8, 8, 8, 24)
	noDepth := prop(0x3, 1, 1, 8, 8, 8, 0)
	good := prop(0x4, 1, 1, 8, 8, 8, 24)

	var props []uint32
	for _, p := range [][]uint32{indexed, single, noDepth, good} {
		props = append(props, p...)
	}
	configs := parseVisualConfigs(4, visualBaseProps, props)

	chosen, ok := chooseVisual(configs)
	if !ok {
		t.Fatalf("expected a compatible visual")
	}
	if chosen.ID != 0x4 {
		t.Fatalf("chose %#x; only 0x4 is rgba, double-buffered and has depth", chosen.ID)
	}
}

func TestChooseVisualNoneCompatible(t *testing.T) {
	configs := parseVisualConfigs(1, visualBaseProps, prop(0x1, 1, 0, 8, 8, 8, 24))
	if _, ok := chooseVisual(configs); ok {
		t.Fatalf("single-buffered visuals must be rejected")
	}
}
