package component

// Position is an entity's location in world space. 2D games leave Z at 0.
type Position struct {
	X, Y, Z float32
}

// Velocity is the per-frame displacement applied by the movement system.
type Velocity struct {
	DX, DY, DZ float32
}
