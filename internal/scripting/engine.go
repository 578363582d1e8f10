package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/pyreframe/engine/internal/component"
	"github.com/pyreframe/engine/internal/core/ecs"
	"github.com/pyreframe/engine/internal/core/engine"
	"github.com/pyreframe/engine/internal/core/system"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM whose global functions run as systems.
// Single-goroutine access only (game loop).
type Engine struct {
	vm    *lua.LState
	api   *lua.LTable
	world *ecs.World // set only while a script system runs
	log   *zap.Logger
}

// Script-visible component names.
var componentTags = map[string]ecs.Tag{
	"position": ecs.TagOf[component.Position](),
	"velocity": ecs.TagOf[component.Velocity](),
	"color":    ecs.TagOf[component.Color](),
	"mesh":     ecs.TagOf[component.Mesh](),
}

func newEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	e := &Engine{vm: vm, log: log}
	e.api = e.buildAPI()
	vm.SetGlobal("ecs", e.api)
	return e
}

// NewEngine creates a Lua engine and loads every .lua file in dir, in name
// order. A missing dir loads nothing.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.loadDir(dir); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// NewEngineFromString creates a Lua engine from inline source.
func NewEngineFromString(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	return e, nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// System returns a system calling the global Lua function fn with the ecs
// API table. A Lua error inside it is a fatal system failure and panics.
func (e *Engine) System(fn string) (system.System, error) {
	f, ok := e.vm.GetGlobal(fn).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("lua function %s not found", fn)
	}
	return system.Named("lua."+fn, system.Func(func(w *ecs.World) {
		e.world = w
		defer func() { e.world = nil }()
		if err := e.vm.CallByParam(lua.P{
			Fn:      f,
			NRet:    0,
			Protect: true,
		}, e.api); err != nil {
			e.log.Error("lua system failed", zap.String("function", fn), zap.Error(err))
			panic(fmt.Errorf("lua system %s: %w", fn, err))
		}
	})), nil
}

func (e *Engine) buildAPI() *lua.LTable {
	t := e.vm.NewTable()
	e.vm.SetFuncs(t, map[string]lua.LGFunction{
		"spawn":        e.luaSpawn,
		"despawn":      e.luaDespawn,
		"mark_despawn": e.luaMarkDespawn,
		"alive":        e.luaAlive,
		"count":        e.luaCount,
		"entities":     e.luaEntities,
		"position":     e.luaPosition,
		"set_position": e.luaSetPosition,
		"velocity":     e.luaVelocity,
		"set_velocity": e.luaSetVelocity,
		"time":         e.luaTime,
	})
	return t
}

func (e *Engine) mustWorld(L *lua.LState) *ecs.World {
	if e.world == nil {
		L.RaiseError("ecs API used outside a running system")
	}
	return e.world
}

// checkEntity reads an (id, gen) pair at n. Both halves must fit a uint32;
// a truncated value would address some other entity.
func checkEntity(L *lua.LState, n int) ecs.Entity {
	return ecs.NewEntity(checkUint32(L, n, "entity id"), checkUint32(L, n+1, "entity generation"))
}

func checkUint32(L *lua.LState, n int, what string) uint32 {
	v := L.CheckInt64(n)
	if v < 0 || v > math.MaxUint32 {
		L.ArgError(n, fmt.Sprintf("%s %d out of range", what, v))
		return 0
	}
	return uint32(v)
}

func pushEntity(L *lua.LState, ent ecs.Entity) int {
	L.Push(lua.LNumber(ent.ID()))
	L.Push(lua.LNumber(ent.Generation()))
	return 2
}

func (e *Engine) luaSpawn(L *lua.LState) int {
	return pushEntity(L, e.mustWorld(L).Spawn())
}

func (e *Engine) luaDespawn(L *lua.LState) int {
	w := e.mustWorld(L)
	L.Push(lua.LBool(w.Despawn(checkEntity(L, 1))))
	return 1
}

func (e *Engine) luaMarkDespawn(L *lua.LState) int {
	e.mustWorld(L).MarkForDespawn(checkEntity(L, 1))
	return 0
}

func (e *Engine) luaAlive(L *lua.LState) int {
	w := e.mustWorld(L)
	L.Push(lua.LBool(w.IsAlive(checkEntity(L, 1))))
	return 1
}

func (e *Engine) luaCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.mustWorld(L).AliveCount()))
	return 1
}

// entities("position", "velocity") returns an array of {id=, gen=} tables,
// ordered by id.
func (e *Engine) luaEntities(L *lua.LState) int {
	w := e.mustWorld(L)
	tags := make([]ecs.Tag, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		name := L.CheckString(i)
		tag, ok := componentTags[name]
		if !ok {
			L.ArgError(i, "unknown component "+name)
		}
		tags = append(tags, tag)
	}
	q, err := ecs.NewQuery(tags...)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	es := q.Entities(w)
	sort.Slice(es, func(i, j int) bool { return es[i].ID() < es[j].ID() })
	out := L.NewTable()
	for _, ent := range es {
		row := L.NewTable()
		row.RawSetString("id", lua.LNumber(ent.ID()))
		row.RawSetString("gen", lua.LNumber(ent.Generation()))
		out.Append(row)
	}
	L.Push(out)
	return 1
}

func (e *Engine) luaPosition(L *lua.LState) int {
	p, err := ecs.Get[component.Position](e.mustWorld(L), checkEntity(L, 1))
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(p.X))
	L.Push(lua.LNumber(p.Y))
	L.Push(lua.LNumber(p.Z))
	return 3
}

func (e *Engine) luaSetPosition(L *lua.LState) int {
	w := e.mustWorld(L)
	p := component.Position{
		X: float32(L.CheckNumber(3)),
		Y: float32(L.CheckNumber(4)),
		Z: float32(L.OptNumber(5, 0)),
	}
	_, _, err := ecs.Insert(w, checkEntity(L, 1), p)
	L.Push(lua.LBool(err == nil))
	return 1
}

func (e *Engine) luaVelocity(L *lua.LState) int {
	v, err := ecs.Get[component.Velocity](e.mustWorld(L), checkEntity(L, 1))
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(v.DX))
	L.Push(lua.LNumber(v.DY))
	L.Push(lua.LNumber(v.DZ))
	return 3
}

func (e *Engine) luaSetVelocity(L *lua.LState) int {
	w := e.mustWorld(L)
	v := component.Velocity{
		DX: float32(L.CheckNumber(3)),
		DY: float32(L.CheckNumber(4)),
		DZ: float32(L.OptNumber(5, 0)),
	}
	_, _, err := ecs.Insert(w, checkEntity(L, 1), v)
	L.Push(lua.LBool(err == nil))
	return 1
}

// time() returns delta, frame, or nil when no Time resource exists.
func (e *Engine) luaTime(L *lua.LState) int {
	t, err := ecs.Resource[engine.Time](e.mustWorld(L))
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(t.Delta))
	L.Push(lua.LNumber(t.Frame))
	return 2
}
