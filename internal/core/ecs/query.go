package ecs

import "fmt"

// Query selects alive entities holding every one of a fixed set of component
// types. Build it once per distinct set and reuse it across frames.
type Query struct {
	tags []Tag
}

func NewQuery(tags ...Tag) (*Query, error) {
	if len(tags) == 0 {
		return nil, ErrEmptyQuery
	}
	seen := make(map[Tag]struct{}, len(tags))
	for _, t := range tags {
		if t.IsZero() {
			return nil, fmt.Errorf("ecs: zero tag in query")
		}
		if _, ok := seen[t]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTag, t)
		}
		seen[t] = struct{}{}
	}
	q := &Query{tags: make([]Tag, len(tags))}
	copy(q.tags, tags)
	return q, nil
}

// MustQuery is NewQuery for package-level query variables; it panics on a
// malformed tag set.
func MustQuery(tags ...Tag) *Query {
	q, err := NewQuery(tags...)
	if err != nil {
		panic(err)
	}
	return q
}

func (q *Query) Tags() []Tag {
	out := make([]Tag, len(q.tags))
	copy(out, q.tags)
	return out
}

func (q *Query) matches(comps map[Tag]any) bool {
	for _, t := range q.tags {
		if _, ok := comps[t]; !ok {
			return false
		}
	}
	return true
}

// Entities scans every alive entity. Result order is unspecified.
func (q *Query) Entities(w *World) []Entity {
	out := make([]Entity, 0, 16)
	for e, comps := range w.components {
		if q.matches(comps) {
			out = append(out, e)
		}
	}
	return out
}

// Each calls fn for every matching entity. The match set is taken before
// the first call, so fn may add or remove components freely.
func (q *Query) Each(w *World, fn func(Entity)) {
	for _, e := range q.Entities(w) {
		fn(e)
	}
}

// EntitiesWith runs a one-off query. It panics on an empty or duplicated tag set.
func EntitiesWith(w *World, tags ...Tag) []Entity {
	return MustQuery(tags...).Entities(w)
}
