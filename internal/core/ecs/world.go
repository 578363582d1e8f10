package ecs

import (
	"fmt"

	"go.uber.org/zap"
)

// World is the top-level ECS container. It owns the entity pool, per-entity
// component maps, world resources, and a deferred despawn queue flushed by
// the cleanup system.
type World struct {
	pool         *EntityPool
	components   map[Entity]map[Tag]any
	resources    map[Tag]any
	despawnQueue []Entity
	log          *zap.Logger
}

type Option func(*World)

func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

func NewWorld(opts ...Option) *World {
	w := &World{
		pool:         NewEntityPool(),
		components:   make(map[Entity]map[Tag]any, 256),
		resources:    make(map[Tag]any, 16),
		despawnQueue: make([]Entity, 0, 64),
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) Spawn() Entity {
	e := w.pool.Spawn()
	w.components[e] = make(map[Tag]any, 4)
	return e
}

// Despawn drops e's components and invalidates every handle at e's id.
// Returns false without side effects when e is not alive.
func (w *World) Despawn(e Entity) bool {
	if !w.live(e) {
		return false
	}
	w.entry(e) // must exist for an alive entity
	delete(w.components, e)
	w.pool.Kill(e)
	w.log.Debug("entity despawned", zap.Stringer("entity", e))
	return true
}

func (w *World) IsAlive(e Entity) bool {
	return w.live(e)
}

// live is the handle check behind every World operation. Ids are never
// recycled, so a handle must be both current and one the pool issued; a
// forged generation past a despawn is dead, not drift.
func (w *World) live(e Entity) bool {
	return w.pool.Alive(e) && w.pool.Issued(e)
}

// TotalSpawned counts every id ever issued, despawned ones included.
func (w *World) TotalSpawned() int {
	return w.pool.Total()
}

func (w *World) AliveCount() int {
	return len(w.components)
}

// MarkForDespawn queues e for the next FlushDespawns.
func (w *World) MarkForDespawn(e Entity) {
	w.despawnQueue = append(w.despawnQueue, e)
}

// FlushDespawns despawns every queued entity in queue order and returns the
// number actually despawned. Stale and duplicate handles are skipped.
func (w *World) FlushDespawns() int {
	return w.FlushDespawnsFunc(nil)
}

// FlushDespawnsFunc is FlushDespawns calling fn after each actual despawn.
// Entities fn marks are queued for the next flush.
func (w *World) FlushDespawnsFunc(fn func(Entity)) int {
	queue := w.despawnQueue
	w.despawnQueue = make([]Entity, 0, cap(queue))
	n := 0
	for _, e := range queue {
		if !w.Despawn(e) {
			continue
		}
		n++
		if fn != nil {
			fn(e)
		}
	}
	return n
}

func (w *World) PendingDespawns() int {
	return len(w.despawnQueue)
}

// entry returns e's component map. An alive entity without one means the
// pool and the store have drifted apart, which is unrecoverable.
func (w *World) entry(e Entity) map[Tag]any {
	comps, ok := w.components[e]
	if !ok {
		panic(fmt.Sprintf("ecs: alive entity %s has no component storage", e))
	}
	return comps
}
