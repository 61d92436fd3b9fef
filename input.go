package glint

import "github.com/glint2d/glint/event"

// Input consumes key, mouse-button and pointer events from the pump and
// tracks button state across ticks. Transitions are buffered by TryConsume
// and applied by Update, so state changes and callbacks land at a fixed
// point of every tick rather than mid-pump.
type Input struct {
	// OnButtonDown, when set, is invoked from Update for every button that
	// went down since the previous Update, in event order.
	OnButtonDown func(event.Button)
	// OnButtonUp is the release counterpart of OnButtonDown.
	OnButtonUp func(event.Button)

	queue []buttonTransition

	down     map[event.Button]bool
	pressed  map[event.Button]bool
	released map[event.Button]bool

	mouseX, mouseY int
}

type buttonTransition struct {
	button event.Button
	press  bool
}

// NewInput returns an input dispatcher with no buttons held.
func NewInput() *Input {
	return &Input{
		down:     make(map[event.Button]bool),
		pressed:  make(map[event.Button]bool),
		released: make(map[event.Button]bool),
	}
}

// TryConsume inspects a platform event and reports whether it was
// input-related. Consumed events take effect on the next Update; pointer
// position updates immediately.
func (in *Input) TryConsume(ev event.Event) bool {
	switch e := ev.(type) {
	case event.ButtonDown:
		in.queue = append(in.queue, buttonTransition{button: e.Button, press: true})
		in.mouseX, in.mouseY = e.X, e.Y
		return true
	case event.ButtonUp:
		in.queue = append(in.queue, buttonTransition{button: e.Button, press: false})
		in.mouseX, in.mouseY = e.X, e.Y
		return true
	case event.MouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
		return true
	default:
		return false
	}
}

// Update applies all buffered transitions, fires the button callbacks in
// event order, and refreshes the per-tick pressed/released edge sets.
func (in *Input) Update() {
	clear(in.pressed)
	clear(in.released)

	for _, tr := range in.queue {
		if tr.press {
			if !in.down[tr.button] {
				in.pressed[tr.button] = true
			}
			in.down[tr.button] = true
			if in.OnButtonDown != nil {
				in.OnButtonDown(tr.button)
			}
		} else {
			if in.down[tr.button] {
				in.released[tr.button] = true
			}
			delete(in.down, tr.button)
			if in.OnButtonUp != nil {
				in.OnButtonUp(tr.button)
			}
		}
	}
	in.queue = in.queue[:0]
}

// Down reports whether the button is currently held.
func (in *Input) Down(b event.Button) bool { return in.down[b] }

// Pressed reports whether the button went down during the last Update.
func (in *Input) Pressed(b event.Button) bool { return in.pressed[b] }

// Released reports whether the button went up during the last Update.
func (in *Input) Released(b event.Button) bool { return in.released[b] }

// MouseX reports the last known pointer x position in window coordinates.
func (in *Input) MouseX() int { return in.mouseX }

// MouseY reports the last known pointer y position in window coordinates.
func (in *Input) MouseY() int { return in.mouseY }
