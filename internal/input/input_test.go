package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyboard(t *testing.T) {
	kb := NewKeyboard(KeyW, KeySpace)
	assert.True(t, kb.IsPressed(KeyW))
	assert.False(t, kb.IsPressed(KeyS))
	assert.Equal(t, []Key{KeyW, KeySpace}, kb.PressedKeys())
	assert.False(t, Keyboard{}.IsPressed(KeyA))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "Escape", KeyEscape.String())
	assert.Equal(t, "Down", KeyDown.String())
	assert.Equal(t, "Unknown", Key(99).String())
}
