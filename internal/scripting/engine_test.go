package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pyreframe/engine/internal/component"
	"github.com/pyreframe/engine/internal/core/ecs"
	"github.com/pyreframe/engine/internal/core/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

const scripts = `
function drift(ecs)
  for _, e in ipairs(ecs.entities("position", "velocity")) do
    local x, y, z = ecs.position(e.id, e.gen)
    local dx, dy, dz = ecs.velocity(e.id, e.gen)
    ecs.set_position(e.id, e.gen, x + dx * 2, y + dy * 2, z + dz * 2)
  end
end

function spawner(ecs)
  local delta, frame = ecs.time()
  if frame == nil then return end
  local id, gen = ecs.spawn()
  ecs.set_position(id, gen, frame, 0)
  ecs.set_velocity(id, gen, 1, 0)
end

function reaper(ecs)
  for _, e in ipairs(ecs.entities("position")) do
    local x = ecs.position(e.id, e.gen)
    if x > 10 then ecs.mark_despawn(e.id, e.gen) end
  end
end

function broken(ecs)
  ecs.entities("nope")
end

function wide_handle(ecs)
  wide_alive = ecs.alive(4294967296, 0)
end

function negative_handle(ecs)
  ecs.position(-1, 0)
end

function stale_reads(ecs)
  stale_alive = ecs.alive(0, 1)
  stale_pos = ecs.position(0, 1)
  stale_set = ecs.set_velocity(0, 1, 1, 1)
  stale_despawn = ecs.despawn(0, 1)
end

function counter(ecs)
  last_count = ecs.count()
end
`

func newTestEngine(t *testing.T) *Engine {
	e, err := NewEngineFromString(scripts, nil)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestLuaSystemMovesEntities(t *testing.T) {
	eng := newTestEngine(t)
	sys, err := eng.System("drift")
	require.NoError(t, err)

	w := ecs.NewWorld()
	ent := w.Spawn()
	_, _, _ = ecs.Insert(w, ent, component.Position{X: 1, Y: 1})
	_, _, _ = ecs.Insert(w, ent, component.Velocity{DX: 1, DY: 0.5})

	sys.Run(w)
	pos, err := ecs.Get[component.Position](w, ent)
	require.NoError(t, err)
	assert.Equal(t, component.Position{X: 3, Y: 2}, pos)
}

func TestLuaSpawnReadsTime(t *testing.T) {
	eng := newTestEngine(t)
	sys, err := eng.System("spawner")
	require.NoError(t, err)

	w := ecs.NewWorld()
	sys.Run(w)
	assert.Equal(t, 0, w.AliveCount())

	ecs.InsertResource(w, engine.Time{Frame: 4})
	sys.Run(w)
	require.Equal(t, 1, w.AliveCount())

	ent := ecs.NewEntity(0, 0)
	pos, err := ecs.Get[component.Position](w, ent)
	require.NoError(t, err)
	assert.Equal(t, float32(4), pos.X)
	vel, err := ecs.Get[component.Velocity](w, ent)
	require.NoError(t, err)
	assert.Equal(t, float32(1), vel.DX)
}

func TestLuaMarkDespawn(t *testing.T) {
	eng := newTestEngine(t)
	sys, err := eng.System("reaper")
	require.NoError(t, err)

	w := ecs.NewWorld()
	far := w.Spawn()
	near := w.Spawn()
	_, _, _ = ecs.Insert(w, far, component.Position{X: 11})
	_, _, _ = ecs.Insert(w, near, component.Position{X: 1})

	sys.Run(w)
	assert.Equal(t, 1, w.PendingDespawns())
	w.FlushDespawns()
	assert.False(t, w.IsAlive(far))
	assert.True(t, w.IsAlive(near))
}

func TestLuaErrorIsFatal(t *testing.T) {
	eng := newTestEngine(t)
	sys, err := eng.System("broken")
	require.NoError(t, err)
	assert.Panics(t, func() { sys.Run(ecs.NewWorld()) })
}

func TestLuaWorldNotRetained(t *testing.T) {
	eng := newTestEngine(t)
	sys, err := eng.System("counter")
	require.NoError(t, err)
	w := ecs.NewWorld()
	w.Spawn()
	sys.Run(w)
	assert.Nil(t, eng.world)
	assert.Equal(t, "1", eng.vm.GetGlobal("last_count").String())

	// the API is inert outside a running system
	assert.Error(t, eng.vm.DoString(`ecs.spawn()`))
}

func TestLuaHandleOutOfRange(t *testing.T) {
	eng := newTestEngine(t)
	w := ecs.NewWorld()
	w.Spawn()

	for _, fn := range []string{"wide_handle", "negative_handle"} {
		sys, err := eng.System(fn)
		require.NoError(t, err)
		assert.Panics(t, func() { sys.Run(w) }, fn)
	}
	assert.Equal(t, lua.LNil, eng.vm.GetGlobal("wide_alive"))
	assert.Equal(t, 1, w.AliveCount())
}

func TestLuaStaleGenerationFailsCleanly(t *testing.T) {
	eng := newTestEngine(t)
	sys, err := eng.System("stale_reads")
	require.NoError(t, err)

	w := ecs.NewWorld()
	ent := w.Spawn()
	require.True(t, w.Despawn(ent))

	assert.NotPanics(t, func() { sys.Run(w) })
	assert.Equal(t, lua.LFalse, eng.vm.GetGlobal("stale_alive"))
	assert.Equal(t, lua.LNil, eng.vm.GetGlobal("stale_pos"))
	assert.Equal(t, lua.LFalse, eng.vm.GetGlobal("stale_set"))
	assert.Equal(t, lua.LFalse, eng.vm.GetGlobal("stale_despawn"))
	assert.Equal(t, 0, w.AliveCount())
}

func TestMissingFunction(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.System("nope")
	assert.Error(t, err)
}

func TestNewEngineLoadsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte("function a(ecs) end"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not lua"), 0o644))

	eng, err := NewEngine(dir, nil)
	require.NoError(t, err)
	defer eng.Close()
	_, err = eng.System("a")
	assert.NoError(t, err)

	missing, err := NewEngine(filepath.Join(dir, "absent"), nil)
	require.NoError(t, err)
	missing.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("function ("), 0o644))
	_, err = NewEngine(dir, nil)
	assert.Error(t, err)
}
