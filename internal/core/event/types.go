package event

import "github.com/pyreframe/engine/internal/core/ecs"

// EntityDespawned is emitted by the cleanup system for each queued entity it
// despawns.
type EntityDespawned struct {
	Entity ecs.Entity
}
