package ecs

import "reflect"

// Tag is the runtime type identity used to key component and resource storage.
// The zero Tag matches nothing.
type Tag struct {
	t reflect.Type
}

func TagOf[T any]() Tag {
	return Tag{t: reflect.TypeFor[T]()}
}

func tagOfValue(v any) Tag {
	return Tag{t: reflect.TypeOf(v)}
}

func (t Tag) IsZero() bool { return t.t == nil }

func (t Tag) String() string {
	if t.t == nil {
		return "<nil>"
	}
	return t.t.String()
}
