package glint

// Color is a 32-bit RGBA color, used for the frame clear color.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// RGBA returns a color with an explicit alpha channel.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Floats returns the channels normalized to [0, 1], the form a GL clear
// call wants them in.
func (c Color) Floats() (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

var (
	ColorNone  = Color{}
	ColorBlack = RGB(0, 0, 0)
	ColorWhite = RGB(0xff, 0xff, 0xff)
	ColorRed   = RGB(0xff, 0, 0)
	ColorGreen = RGB(0, 0xff, 0)
	ColorBlue  = RGB(0, 0, 0xff)
	ColorGray  = RGB(0x80, 0x80, 0x80)
)
