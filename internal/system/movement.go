package system

import (
	"github.com/pyreframe/engine/internal/component"
	"github.com/pyreframe/engine/internal/core/ecs"
)

var movers = ecs.MustQuery(ecs.TagOf[component.Position](), ecs.TagOf[component.Velocity]())

// MovementSystem adds Velocity to Position for every entity holding both.
// Velocity is per frame, not per second.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem { return &MovementSystem{} }

func (s *MovementSystem) String() string { return "movement" }

func (s *MovementSystem) Run(w *ecs.World) {
	movers.Each(w, func(e ecs.Entity) {
		vel, err := ecs.Get[component.Velocity](w, e)
		if err != nil {
			panic(err) // matched by the query this frame
		}
		pos, err := ecs.GetMut[component.Position](w, e)
		if err != nil {
			panic(err)
		}
		pos.X += vel.DX
		pos.Y += vel.DY
		pos.Z += vel.DZ
	})
}
