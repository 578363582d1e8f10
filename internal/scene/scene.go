package scene

import (
	"fmt"
	"os"

	"github.com/pyreframe/engine/internal/component"
	"github.com/pyreframe/engine/internal/core/ecs"
	"github.com/pyreframe/engine/internal/core/engine"
	"gopkg.in/yaml.v3"
)

// Scene is the initial content of a world loaded from YAML.
type Scene struct {
	Entities []EntityDef `yaml:"entities"`
	Time     *TimeDef    `yaml:"time"`
}

// EntityDef lists the stock components of one entity. Absent fields are not
// attached.
type EntityDef struct {
	Name     string    `yaml:"name"`
	Count    int       `yaml:"count"` // copies to spawn; 0 means 1
	Position *Vec3     `yaml:"position"`
	Velocity *Vec3     `yaml:"velocity"`
	Color    *ColorDef `yaml:"color"`
	Mesh     *uint32   `yaml:"mesh"`
}

type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

type ColorDef struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

type TimeDef struct {
	Delta float32 `yaml:"delta"`
	Frame uint64  `yaml:"frame"`
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	for i, def := range s.Entities {
		if def.Count < 0 {
			return nil, fmt.Errorf("entity %d (%s): negative count %d", i, def.Name, def.Count)
		}
	}
	return &s, nil
}

func (d EntityDef) components() []any {
	comps := make([]any, 0, 4)
	if d.Position != nil {
		comps = append(comps, component.Position{X: d.Position.X, Y: d.Position.Y, Z: d.Position.Z})
	}
	if d.Velocity != nil {
		comps = append(comps, component.Velocity{DX: d.Velocity.X, DY: d.Velocity.Y, DZ: d.Velocity.Z})
	}
	if d.Color != nil {
		comps = append(comps, component.Color{R: d.Color.R, G: d.Color.G, B: d.Color.B, A: d.Color.A})
	}
	if d.Mesh != nil {
		comps = append(comps, component.Mesh{ID: engine.MeshID(*d.Mesh)})
	}
	return comps
}

// Spawn creates the scene's entities in document order and installs the Time
// resource when the scene sets one. Returns the spawned handles.
func (s *Scene) Spawn(w *ecs.World) ([]ecs.Entity, error) {
	spawned := make([]ecs.Entity, 0, len(s.Entities))
	for _, def := range s.Entities {
		n := def.Count
		if n == 0 {
			n = 1
		}
		comps := def.components()
		for i := 0; i < n; i++ {
			e := w.Spawn()
			for _, c := range comps {
				if err := ecs.InsertAny(w, e, c); err != nil {
					return spawned, fmt.Errorf("spawn %s: %w", def.Name, err)
				}
			}
			spawned = append(spawned, e)
		}
	}
	if s.Time != nil {
		ecs.InsertResource(w, engine.Time{Delta: s.Time.Delta, Frame: s.Time.Frame})
	}
	return spawned, nil
}
