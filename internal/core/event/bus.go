package event

import (
	"github.com/pyreframe/engine/internal/core/ecs"
	"github.com/pyreframe/engine/internal/core/system"
)

// Queue is a double-buffered event queue stored as a world resource. Events
// emitted in frame N are readable in frame N+1, after Swap runs.
type Queue struct {
	front map[ecs.Tag][]any
	back  map[ecs.Tag][]any
}

func NewQueue() Queue {
	return Queue{
		front: make(map[ecs.Tag][]any),
		back:  make(map[ecs.Tag][]any),
	}
}

// Emit appends ev to the back buffer.
func Emit[T any](q *Queue, ev T) {
	t := ecs.TagOf[T]()
	q.back[t] = append(q.back[t], ev)
}

// Read returns the T events emitted before the last Swap.
func Read[T any](q *Queue) []T {
	evs := q.front[ecs.TagOf[T]()]
	out := make([]T, 0, len(evs))
	for _, ev := range evs {
		if v, ok := ev.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Swap rotates back to front and clears the new back buffer.
func (q *Queue) Swap() {
	q.front, q.back = q.back, q.front
	for k := range q.back {
		q.back[k] = q.back[k][:0]
	}
}

// EmitTo emits into the world's queue when one is installed and reports
// whether it did. Producers use it so they work in worlds without events.
func EmitTo[T any](w *ecs.World, ev T) bool {
	q, err := ecs.ResourceMut[Queue](w)
	if err != nil {
		return false
	}
	Emit(q, ev)
	return true
}

// SwapSystem installs a Queue on first run and swaps it on every run.
// Register it first so every later system reads the same front buffer.
func SwapSystem() system.System {
	return system.Named("event.swap", system.Func(func(w *ecs.World) {
		q, err := ecs.ResourceMut[Queue](w)
		if err != nil {
			ecs.InsertResource(w, NewQueue())
			return
		}
		q.Swap()
	}))
}
