package system

import (
	"github.com/pyreframe/engine/internal/core/ecs"
	"go.uber.org/zap"
)

// Schedule runs systems sequentially in registration order. Order is the
// only dependency mechanism: a system consuming another's output must be
// added after it.
type Schedule struct {
	systems []System
	log     *zap.Logger
}

type Option func(*Schedule)

func WithLogger(log *zap.Logger) Option {
	return func(s *Schedule) {
		if log != nil {
			s.log = log
		}
	}
}

func NewSchedule(opts ...Option) *Schedule {
	s := &Schedule{
		systems: make([]System, 0, 16),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Schedule) Add(sys System) {
	s.systems = append(s.systems, sys)
	s.log.Debug("system registered",
		zap.String("system", NameOf(sys)),
		zap.Int("position", len(s.systems)-1))
}

// Run executes every system once. A panicking system aborts the remaining
// systems of this run; nothing is rolled back.
func (s *Schedule) Run(w *ecs.World) {
	for _, sys := range s.systems {
		sys.Run(w)
	}
}

func (s *Schedule) Len() int {
	return len(s.systems)
}

func (s *Schedule) Names() []string {
	names := make([]string, len(s.systems))
	for i, sys := range s.systems {
		names[i] = NameOf(sys)
	}
	return names
}
