package system

import (
	"sort"

	"github.com/pyreframe/engine/internal/component"
	"github.com/pyreframe/engine/internal/core/ecs"
	"github.com/pyreframe/engine/internal/core/engine"
)

var drawables = ecs.MustQuery(ecs.TagOf[component.Position](), ecs.TagOf[component.Mesh]())

// RenderSystem pushes one RenderCommand per entity holding Position and Mesh
// into the RenderQueue, installing the queue if absent. Commands are emitted
// in ascending entity order so identical worlds give identical frames.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem { return &RenderSystem{} }

func (s *RenderSystem) String() string { return "render" }

func (s *RenderSystem) Run(w *ecs.World) {
	if !ecs.HasResource[engine.RenderQueue](w) {
		ecs.InsertResource(w, engine.RenderQueue{})
	}
	q, err := ecs.ResourceMut[engine.RenderQueue](w)
	if err != nil {
		panic(err)
	}

	es := drawables.Entities(w)
	sort.Slice(es, func(i, j int) bool { return es[i].ID() < es[j].ID() })
	for _, e := range es {
		pos, err := ecs.Get[component.Position](w, e)
		if err != nil {
			panic(err)
		}
		mesh, err := ecs.Get[component.Mesh](w, e)
		if err != nil {
			panic(err)
		}
		q.Push(engine.RenderCommand{
			Mesh:      mesh.ID,
			Transform: engine.Transform{X: pos.X, Y: pos.Y, Z: pos.Z},
		})
	}
}
