package system

import (
	"fmt"

	"github.com/pyreframe/engine/internal/core/ecs"
)

// System is one unit of per-frame logic. Run gets exclusive access to the
// world for the duration of the call and must not keep it afterwards.
// A violated precondition is reported by panicking; the schedule does not
// recover it.
type System interface {
	Run(w *ecs.World)
}

// Func adapts a plain function to System.
type Func func(w *ecs.World)

func (f Func) Run(w *ecs.World) { f(w) }

type named struct {
	name string
	System
}

func (n named) String() string { return n.name }

// Named labels sys for logs and Schedule.Names.
func Named(name string, sys System) System {
	return named{name: name, System: sys}
}

// NameOf returns the label given by Named, the String of a fmt.Stringer
// system, or the dynamic type name.
func NameOf(sys System) string {
	if s, ok := sys.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", sys)
}
