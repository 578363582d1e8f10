package system

import (
	"fmt"

	"github.com/pyreframe/engine/internal/core/ecs"
	"github.com/pyreframe/engine/internal/core/engine"
)

// TimeSystem advances the Time resource by the current FrameDelta. Both
// resources are required; running without them is a setup bug and panics.
// Register it before anything that reads Time.
type TimeSystem struct{}

func NewTimeSystem() *TimeSystem { return &TimeSystem{} }

func (s *TimeSystem) String() string { return "time" }

func (s *TimeSystem) Run(w *ecs.World) {
	fd, err := ecs.Resource[engine.FrameDelta](w)
	if err != nil {
		panic(fmt.Sprintf("time system: %v", err))
	}
	t, err := ecs.ResourceMut[engine.Time](w)
	if err != nil {
		panic(fmt.Sprintf("time system: %v", err))
	}
	t.Advance(fd.Dt)
}
