package ecs

import "strconv"

// Entity encodes a 32-bit id in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on despawn to invalidate stale handles.
type Entity uint64

func NewEntity(id uint32, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(id))
}

func (e Entity) ID() uint32         { return uint32(e) }
func (e Entity) Generation() uint32 { return uint32(e >> 32) }

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.ID()), 10) + "v" + strconv.FormatUint(uint64(e.Generation()), 10)
}

// EntityPool issues sequential ids and tracks a generation per id.
// Ids are never recycled; a despawned id stays dead for the pool's lifetime.
type EntityPool struct {
	generations []uint32
	born        []uint32 // generation each id was issued with
	nextID      uint32
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 1024),
		born:        make([]uint32, 0, 1024),
	}
}

func (p *EntityPool) Spawn() Entity {
	id := p.nextID
	p.nextID++
	if int(id) >= len(p.generations) {
		p.generations = append(p.generations, 0)
		p.born = append(p.born, 0)
	}
	p.born[id] = p.generations[id]
	return NewEntity(id, p.generations[id])
}

func (p *EntityPool) Alive(e Entity) bool {
	id := e.ID()
	if id >= p.nextID {
		return false
	}
	return p.generations[id] == e.Generation()
}

// Issued reports whether e is exactly the handle Spawn returned for its id.
// A handle whose generation was bumped by Kill passes Alive at the table
// level but was never handed out.
func (p *EntityPool) Issued(e Entity) bool {
	id := e.ID()
	if id >= p.nextID {
		return false
	}
	return p.born[id] == e.Generation()
}

// Kill bumps the generation of e's id. Reports false for stale or unknown handles.
func (p *EntityPool) Kill(e Entity) bool {
	if !p.Alive(e) {
		return false
	}
	p.generations[e.ID()]++
	return true
}

// Total returns the number of ids ever issued.
func (p *EntityPool) Total() int {
	return int(p.nextID)
}
