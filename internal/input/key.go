package input

// Key is a keyboard key the engine knows about.
type Key int

const (
	KeyA Key = iota
	KeyD
	KeyW
	KeyS
	KeySpace
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

var keyNames = [...]string{
	KeyA:      "A",
	KeyD:      "D",
	KeyW:      "W",
	KeyS:      "S",
	KeySpace:  "Space",
	KeyEscape: "Escape",
	KeyLeft:   "Left",
	KeyRight:  "Right",
	KeyUp:     "Up",
	KeyDown:   "Down",
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "Unknown"
	}
	return keyNames[k]
}
