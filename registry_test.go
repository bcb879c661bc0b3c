package smartsym

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_teardownReverseOrder(t *testing.T) {
	r := NewRegistry()
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		r.Register(name, func() { order = append(order, name) })
	}

	require.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"a", "b", "c"}, r.Names())

	r.Teardown()
	assert.Equal(t, []string{"c", "b", "a"}, order)
	assert.Equal(t, 0, r.Len())

	// second teardown is a no-op
	r.Teardown()
	assert.Equal(t, []string{"c", "b", "a"}, order)
}

func TestBinding_Matches(t *testing.T) {
	b := Binding{Key: KeyX, Alt: true}

	assert.True(t, b.Matches(Event{Kind: EventKeyPress, Key: KeyX, Alt: true}))
	assert.False(t, b.Matches(Event{Kind: EventKeyPress, Key: KeyX}), "missing modifier")
	assert.False(t, b.Matches(Event{Kind: EventKeyPress, Key: KeyX, Alt: true, Ctrl: true}), "extra modifier")
	assert.False(t, b.Matches(Event{Kind: EventPointerPress, Key: KeyX, Alt: true}))
}

func TestBinding_String(t *testing.T) {
	assert.Equal(t, "Alt + X", Binding{Key: KeyX, Alt: true}.String())
	assert.Equal(t, "Ctrl + Shift + M", Binding{Key: KeyM, Ctrl: true, Shift: true}.String())
	assert.Equal(t, "Esc", Binding{Key: KeyEscape}.String())
}

func TestHotkeyCapture(t *testing.T) {
	t.Run("captures first non-modifier press", func(t *testing.T) {
		var c HotkeyCapture
		c.Begin()
		require.True(t, c.Active())

		_, done, _ := c.Feed(Event{Kind: EventKeyPress, Key: KeyShift})
		assert.False(t, done, "bare modifiers are skipped")

		_, done, _ = c.Feed(Event{Kind: EventPointerMove, X: 1})
		assert.False(t, done)

		binding, done, ok := c.Feed(Event{Kind: EventKeyPress, Key: KeyQ, Ctrl: true})
		require.True(t, done)
		require.True(t, ok)
		assert.Equal(t, Binding{Key: KeyQ, Ctrl: true}, binding)
		assert.False(t, c.Active())
	})

	t.Run("escape aborts", func(t *testing.T) {
		var c HotkeyCapture
		c.Begin()

		_, done, ok := c.Feed(Event{Kind: EventKeyPress, Key: KeyEscape})
		assert.True(t, done)
		assert.False(t, ok)
		assert.False(t, c.Active())
	})

	t.Run("inactive capture ignores events", func(t *testing.T) {
		var c HotkeyCapture
		_, done, _ := c.Feed(Event{Kind: EventKeyPress, Key: KeyQ})
		assert.False(t, done)
	})
}
