// Package event defines the platform-neutral events produced by a render
// surface and consumed by the window's event pump and input dispatcher.
package event

// Button identifies a key or mouse button in a single id space: mouse
// buttons keep their native codes, keyboard keys are offset by KeyOffset.
type Button uint32

const (
	ButtonNone Button = 0

	MouseLeft      Button = 1
	MouseMiddle    Button = 2
	MouseRight     Button = 3
	MouseWheelUp   Button = 4
	MouseWheelDown Button = 5

	// KeyOffset is added to a keyboard keycode to form its Button id.
	KeyOffset Button = 256
)

// Key returns the Button id for a keyboard keycode.
func Key(code uint8) Button {
	return KeyOffset + Button(code)
}

// IsKey reports whether b refers to a keyboard key rather than a mouse button.
func (b Button) IsKey() bool {
	return b >= KeyOffset
}

// Event is a single occurrence delivered by the platform, in arrival order.
type Event interface{}

// ButtonDown reports a key or mouse button going down.
type ButtonDown struct {
	Button Button
	X, Y   int
}

// ButtonUp reports a key or mouse button going up.
type ButtonUp struct {
	Button Button
	X, Y   int
}

// MouseMove reports a pointer position change in window coordinates.
type MouseMove struct {
	X, Y int
}

// Configure reports a geometry change of the native window.
type Configure struct {
	X, Y          int
	Width, Height int
}

// CloseRequest reports that the user asked the window to close, typically
// via the window manager's close button.
type CloseRequest struct{}

// FocusChange reports input focus moving onto (Gained) or off the window.
type FocusChange struct {
	Gained bool
}

// Expose reports that a region of the window needs to be redrawn.
type Expose struct{}
