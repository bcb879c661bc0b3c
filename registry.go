package smartsym

import (
	"strings"
)

// Registry tracks host-side registrations (keymap items, draw handlers,
// anything with a teardown) so shutdown is an exact inverse of setup:
// Teardown runs each registered teardown in reverse registration order.
type Registry struct {
	items []registration
}

type registration struct {
	name     string
	teardown func()
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(name string, teardown func()) {
	r.items = append(r.items, registration{name: name, teardown: teardown})
}

func (r *Registry) Len() int {
	return len(r.items)
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.items))
	for i, item := range r.items {
		names[i] = item.name
	}
	return names
}

// Teardown unregisters everything in reverse order and empties the
// registry. Safe to call more than once.
func (r *Registry) Teardown() {
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].teardown != nil {
			r.items[i].teardown()
		}
	}
	r.items = nil
}

// Binding is a hotkey: a key plus required modifier state.
type Binding struct {
	Key   int
	Ctrl  bool
	Shift bool
	Alt   bool
}

// Matches reports whether a key-press event triggers this binding.
func (b Binding) Matches(ev Event) bool {
	return ev.Kind == EventKeyPress &&
		ev.Key == b.Key &&
		ev.Ctrl == b.Ctrl &&
		ev.Shift == b.Shift &&
		ev.Alt == b.Alt
}

func (b Binding) String() string {
	var parts []string
	if b.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if b.Shift {
		parts = append(parts, "Shift")
	}
	if b.Alt {
		parts = append(parts, "Alt")
	}
	parts = append(parts, KeyName(b.Key))
	return strings.Join(parts, " + ")
}

// HotkeyCapture consumes input events while the user picks a new
// binding: the next non-modifier key press becomes the binding;
// escape or a secondary click aborts.
type HotkeyCapture struct {
	active bool
}

func (c *HotkeyCapture) Begin()       { c.active = true }
func (c *HotkeyCapture) Active() bool { return c.active }

// Feed processes one event. done is true once capturing ended, either
// with a new binding (ok) or aborted (!ok).
func (c *HotkeyCapture) Feed(ev Event) (binding Binding, done bool, ok bool) {
	if !c.active {
		return Binding{}, false, false
	}
	if isCancel(ev) {
		c.active = false
		return Binding{}, true, false
	}
	if ev.Kind != EventKeyPress || isModifierKey(ev.Key) {
		return Binding{}, false, false
	}
	c.active = false
	return Binding{Key: ev.Key, Ctrl: ev.Ctrl, Shift: ev.Shift, Alt: ev.Alt}, true, true
}

func isModifierKey(key int) bool {
	return key == KeyShift || key == KeyControl || key == KeyLeftAlt
}
