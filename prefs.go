package smartsym

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	minArrowSizePx     = 30
	maxArrowSizePx     = 200
	defaultArrowSizePx = 80
)

// Preferences are the read-only user settings: on-screen arrow size and
// the hotkey that starts a mirror session. Loaded from the environment;
// there is no persistent store.
type Preferences struct {
	ArrowSizePx float32 `env:"SMARTSYM_ARROW_PX" envDefault:"80"`
	HotkeyName  string  `env:"SMARTSYM_HOTKEY" envDefault:"X"`
	HotkeyCtrl  bool    `env:"SMARTSYM_HOTKEY_CTRL" envDefault:"false"`
	HotkeyShift bool    `env:"SMARTSYM_HOTKEY_SHIFT" envDefault:"false"`
	HotkeyAlt   bool    `env:"SMARTSYM_HOTKEY_ALT" envDefault:"true"`
}

// LoadPreferences parses preferences from environment variables and
// clamps the arrow size to its supported range.
func LoadPreferences() (*Preferences, error) {
	prefs := &Preferences{}
	if err := env.Parse(prefs); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	prefs.clamp()
	return prefs, nil
}

func DefaultPreferences() *Preferences {
	return &Preferences{
		ArrowSizePx: defaultArrowSizePx,
		HotkeyName:  "X",
		HotkeyAlt:   true,
	}
}

func (p *Preferences) clamp() {
	if p.ArrowSizePx < minArrowSizePx {
		p.ArrowSizePx = minArrowSizePx
	}
	if p.ArrowSizePx > maxArrowSizePx {
		p.ArrowSizePx = maxArrowSizePx
	}
}

// Binding resolves the configured hotkey to a key binding.
func (p *Preferences) Binding() (Binding, error) {
	key, ok := KeyByName(p.HotkeyName)
	if !ok {
		return Binding{}, fmt.Errorf("unknown hotkey %q", p.HotkeyName)
	}
	return Binding{
		Key:   key,
		Ctrl:  p.HotkeyCtrl,
		Shift: p.HotkeyShift,
		Alt:   p.HotkeyAlt,
	}, nil
}
