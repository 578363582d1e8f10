package input

import "slices"

// Snapshot aggregates the input state of one frame. The engine forwards it
// to systems untouched; translating platform events into it is the host's job.
type Snapshot struct {
	Keyboard Keyboard
	Mouse    Mouse
}

type Keyboard struct {
	Pressed []Key
}

func NewKeyboard(pressed ...Key) Keyboard {
	return Keyboard{Pressed: pressed}
}

func (k Keyboard) IsPressed(key Key) bool {
	return slices.Contains(k.Pressed, key)
}

func (k Keyboard) PressedKeys() []Key {
	return k.Pressed
}

type Mouse struct {
	Position   MousePosition
	Buttons    MouseButtons
	WheelDelta float32
}

type MousePosition struct {
	X, Y float32
}

type MouseButtons struct {
	Left   bool
	Right  bool
	Middle bool
}
