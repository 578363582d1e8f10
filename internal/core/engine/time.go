package engine

// FrameDelta carries the delta time in seconds for the current frame. The
// engine replaces it at the start of every Tick.
type FrameDelta struct {
	Dt float32
}

// Time tracks the last frame's delta and the number of frames advanced.
type Time struct {
	Delta float32
	Frame uint64
}

// Advance records dt as the latest delta and counts one more frame.
func (t *Time) Advance(dt float32) {
	t.Delta = dt
	t.Frame++
}
