package ecs

import (
	"fmt"
	"reflect"
	"sort"
)

// Components live in a per-entity map keyed by Tag. Each value is a *T owned
// by the store; every read asserts the dynamic type again instead of trusting
// the key.

func deadEntity(e Entity) error {
	return fmt.Errorf("%w: %s", ErrDeadEntity, e)
}

func notFound(tag Tag, e Entity) error {
	return fmt.Errorf("%w: %s on %s", ErrNotFound, tag, e)
}

// Insert attaches v to e, replacing any value of the same type.
// The previous value is returned with replaced=true when one existed.
func Insert[T any](w *World, e Entity, v T) (prev T, replaced bool, err error) {
	if !w.live(e) {
		return prev, false, deadEntity(e)
	}
	comps := w.entry(e)
	tag := TagOf[T]()
	old, had := comps[tag]
	p := new(T)
	*p = v
	comps[tag] = p
	if !had {
		return prev, false, nil
	}
	if op, ok := old.(*T); ok {
		return *op, true, nil
	}
	return prev, false, nil
}

// InsertAny attaches v under the tag of its dynamic type. It serves callers
// that only hold values as interfaces (scene files, script bridges).
func InsertAny(w *World, e Entity, v any) error {
	if v == nil {
		return fmt.Errorf("ecs: insert nil component on %s", e)
	}
	if !w.live(e) {
		return deadEntity(e)
	}
	rv := reflect.ValueOf(v)
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	w.entry(e)[tagOfValue(v)] = p.Interface()
	return nil
}

func lookup[T any](w *World, e Entity) (*T, error) {
	if !w.live(e) {
		return nil, deadEntity(e)
	}
	tag := TagOf[T]()
	v, ok := w.entry(e)[tag]
	if !ok {
		return nil, notFound(tag, e)
	}
	p, ok := v.(*T)
	if !ok {
		return nil, notFound(tag, e)
	}
	return p, nil
}

// Get returns a copy of e's T component.
func Get[T any](w *World, e Entity) (T, error) {
	p, err := lookup[T](w, e)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// GetMut returns a pointer to e's T component. Writes through it update the
// stored value. The pointer is only valid until the component is removed,
// replaced, or e is despawned.
func GetMut[T any](w *World, e Entity) (*T, error) {
	return lookup[T](w, e)
}

// Remove detaches e's T component and returns it.
func Remove[T any](w *World, e Entity) (T, error) {
	p, err := lookup[T](w, e)
	if err != nil {
		var zero T
		return zero, err
	}
	delete(w.entry(e), TagOf[T]())
	return *p, nil
}

// Has reports whether e holds a T component. Absence is not an error.
func Has[T any](w *World, e Entity) (bool, error) {
	if !w.live(e) {
		return false, deadEntity(e)
	}
	v, ok := w.entry(e)[TagOf[T]()]
	if !ok {
		return false, nil
	}
	_, ok = v.(*T)
	return ok, nil
}

// Components lists the tags attached to e, sorted by type name.
func Components(w *World, e Entity) ([]Tag, error) {
	if !w.live(e) {
		return nil, deadEntity(e)
	}
	comps := w.entry(e)
	tags := make([]Tag, 0, len(comps))
	for tag := range comps {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].String() < tags[j].String()
	})
	return tags, nil
}
