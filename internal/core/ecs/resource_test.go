package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameDelta struct{ Dt float32 }

type clock struct {
	Delta float32
	Frame uint64
}

func TestResourceInsertGet(t *testing.T) {
	w := NewWorld()
	_, replaced := InsertResource(w, frameDelta{0.016})
	assert.False(t, replaced)

	got, err := Resource[frameDelta](w)
	require.NoError(t, err)
	assert.Equal(t, float32(0.016), got.Dt)
	assert.True(t, HasResource[frameDelta](w))
}

func TestResourceReplace(t *testing.T) {
	w := NewWorld()
	InsertResource(w, frameDelta{0.016})
	prev, replaced := InsertResource(w, frameDelta{0.033})
	assert.True(t, replaced)
	assert.Equal(t, float32(0.016), prev.Dt)

	got, err := Resource[frameDelta](w)
	require.NoError(t, err)
	assert.Equal(t, float32(0.033), got.Dt)
}

func TestResourceMut(t *testing.T) {
	w := NewWorld()
	InsertResource(w, clock{})
	c, err := ResourceMut[clock](w)
	require.NoError(t, err)
	c.Frame = 42
	c.Delta = 0.5

	got, err := Resource[clock](w)
	require.NoError(t, err)
	assert.Equal(t, clock{Delta: 0.5, Frame: 42}, got)
}

func TestResourceMissing(t *testing.T) {
	w := NewWorld()
	_, err := Resource[clock](w)
	assert.ErrorIs(t, err, ErrMissing)
	_, err = ResourceMut[clock](w)
	assert.ErrorIs(t, err, ErrMissing)
	assert.False(t, HasResource[clock](w))
}

func TestResourcesIgnoreEntities(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	InsertResource(w, clock{Frame: 1})
	w.Despawn(e)

	got, err := Resource[clock](w)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.Frame)
}

func TestResourceTagMismatch(t *testing.T) {
	w := NewWorld()
	w.resources[TagOf[clock]()] = &frameDelta{1}
	_, err := Resource[clock](w)
	assert.ErrorIs(t, err, ErrMissing)
	assert.False(t, HasResource[clock](w))
}
