package ecs

import "fmt"

// Resources are world-scoped singletons, at most one per type.

func missing(tag Tag) error {
	return fmt.Errorf("%w: %s", ErrMissing, tag)
}

// InsertResource stores v, replacing any resource of the same type.
func InsertResource[T any](w *World, v T) (prev T, replaced bool) {
	tag := TagOf[T]()
	old, had := w.resources[tag]
	p := new(T)
	*p = v
	w.resources[tag] = p
	if !had {
		return prev, false
	}
	if op, ok := old.(*T); ok {
		return *op, true
	}
	return prev, false
}

func lookupResource[T any](w *World) (*T, error) {
	tag := TagOf[T]()
	v, ok := w.resources[tag]
	if !ok {
		return nil, missing(tag)
	}
	p, ok := v.(*T)
	if !ok {
		return nil, missing(tag)
	}
	return p, nil
}

// Resource returns a copy of the T resource.
func Resource[T any](w *World) (T, error) {
	p, err := lookupResource[T](w)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// ResourceMut returns a pointer to the stored T resource.
func ResourceMut[T any](w *World) (*T, error) {
	return lookupResource[T](w)
}

func HasResource[T any](w *World) bool {
	_, err := lookupResource[T](w)
	return err == nil
}
