package system

import (
	"context"
	"time"

	"github.com/pyreframe/engine/internal/core/ecs"
	"github.com/pyreframe/engine/internal/core/engine"
	"github.com/pyreframe/engine/internal/persist"
	"go.uber.org/zap"
)

// FrameJournal is the sink JournalSystem writes to; *persist.JournalRepo
// satisfies it.
type FrameJournal interface {
	Record(rec persist.FrameRecord)
	Flush(ctx context.Context) error
}

// JournalSystem records the world's counts every frame and flushes the
// journal every interval frames. A failed flush is logged and retried on the
// next interval; it never aborts the frame. Register it after RenderSystem
// so the command count is complete.
type JournalSystem struct {
	journal  FrameJournal
	log      *zap.Logger
	interval int
	count    int
}

func NewJournalSystem(journal FrameJournal, log *zap.Logger, intervalFrames int) *JournalSystem {
	if intervalFrames <= 0 {
		intervalFrames = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &JournalSystem{journal: journal, log: log, interval: intervalFrames}
}

func (s *JournalSystem) String() string { return "journal" }

func (s *JournalSystem) Run(w *ecs.World) {
	rec := persist.FrameRecord{
		Alive:   w.AliveCount(),
		Spawned: w.TotalSpawned(),
	}
	if t, err := ecs.Resource[engine.Time](w); err == nil {
		rec.Frame = t.Frame
		rec.Dt = t.Delta
	} else if fd, err := ecs.Resource[engine.FrameDelta](w); err == nil {
		rec.Dt = fd.Dt
	}
	if q, err := ecs.Resource[engine.RenderQueue](w); err == nil {
		rec.Commands = len(q.Commands)
	}
	s.journal.Record(rec)

	s.count++
	if s.count < s.interval {
		return
	}
	s.count = 0
	s.Flush()
}

// Flush writes whatever is buffered. Called on the interval and at shutdown.
func (s *JournalSystem) Flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.journal.Flush(ctx); err != nil {
		s.log.Error("journal flush failed", zap.Error(err))
	}
}
