package component

import "github.com/pyreframe/engine/internal/core/engine"

// Color is an RGBA tint, 0-255 per channel.
type Color struct {
	R, G, B, A uint8
}

// Mesh marks an entity as drawable with the given renderer mesh.
type Mesh struct {
	ID engine.MeshID
}
