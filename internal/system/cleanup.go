package system

import (
	"github.com/pyreframe/engine/internal/core/ecs"
	"github.com/pyreframe/engine/internal/core/event"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred despawn queue. Register it last so
// entities marked during the frame survive until every system has seen them.
// Each despawn is announced as an EntityDespawned event when the world has a
// queue installed.
type CleanupSystem struct {
	log *zap.Logger
}

func NewCleanupSystem(log *zap.Logger) *CleanupSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CleanupSystem{log: log}
}

func (s *CleanupSystem) String() string { return "cleanup" }

func (s *CleanupSystem) Run(w *ecs.World) {
	pending := w.PendingDespawns()
	if pending == 0 {
		return
	}
	n := w.FlushDespawnsFunc(func(e ecs.Entity) {
		event.EmitTo(w, event.EntityDespawned{Entity: e})
	})
	s.log.Debug("despawn queue flushed", zap.Int("queued", pending), zap.Int("despawned", n))
}
