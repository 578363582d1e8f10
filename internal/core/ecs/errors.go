package ecs

import "errors"

var (
	// ErrDeadEntity means the handle was never spawned, was despawned, or
	// belongs to an older generation of its id.
	ErrDeadEntity = errors.New("ecs: dead entity")
	// ErrNotFound means the entity is alive but holds no component of the type.
	ErrNotFound = errors.New("ecs: component not found")
	// ErrMissing means no resource of the type is stored.
	ErrMissing = errors.New("ecs: resource missing")

	ErrEmptyQuery   = errors.New("ecs: query needs at least one component type")
	ErrDuplicateTag = errors.New("ecs: duplicate component type in query")
)
