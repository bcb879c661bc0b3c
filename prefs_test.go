package smartsym

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPreferences_defaults(t *testing.T) {
	prefs, err := LoadPreferences()
	require.NoError(t, err)

	assert.Equal(t, float32(80), prefs.ArrowSizePx)

	binding, err := prefs.Binding()
	require.NoError(t, err)
	assert.Equal(t, Binding{Key: KeyX, Alt: true}, binding)
}

func TestLoadPreferences_clampsArrowSize(t *testing.T) {
	t.Setenv("SMARTSYM_ARROW_PX", "500")
	prefs, err := LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, float32(200), prefs.ArrowSizePx)

	t.Setenv("SMARTSYM_ARROW_PX", "5")
	prefs, err = LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, float32(30), prefs.ArrowSizePx)
}

func TestLoadPreferences_hotkeyOverride(t *testing.T) {
	t.Setenv("SMARTSYM_HOTKEY", "m")
	t.Setenv("SMARTSYM_HOTKEY_CTRL", "true")
	t.Setenv("SMARTSYM_HOTKEY_ALT", "false")

	prefs, err := LoadPreferences()
	require.NoError(t, err)

	binding, err := prefs.Binding()
	require.NoError(t, err)
	assert.Equal(t, Binding{Key: KeyM, Ctrl: true}, binding)
}

func TestPreferences_unknownHotkey(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.HotkeyName = "NoSuchKey"

	_, err := prefs.Binding()
	assert.Error(t, err)
}

func TestKeyByName(t *testing.T) {
	key, ok := KeyByName("X")
	require.True(t, ok)
	assert.Equal(t, KeyX, key)

	key, ok = KeyByName("Esc")
	require.True(t, ok)
	assert.Equal(t, KeyEscape, key)

	_, ok = KeyByName("")
	assert.False(t, ok)

	assert.Equal(t, "Q", KeyName(KeyQ))
}
