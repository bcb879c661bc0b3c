package smartsym

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyShift
	KeyControl
	KeyLeftAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle

	inputCodeCount
)

type InputModule struct{}

// Input is the polled per-frame input state plus the ordered event
// queue consumed by modal sessions. Cursor coordinates use a
// bottom-left origin to match screen projection.
type Input struct {
	Pressed [inputCodeCount]bool

	JustPressed  [inputCodeCount]bool
	JustReleased [inputCodeCount]bool

	MouseX, MouseY float64
	ScrollY        float64

	WindowWidth, WindowHeight int

	// Events is rebuilt every frame in a stable order: pointer move
	// first, then button presses/releases, key presses, scroll.
	Events []Event
}

func (input *Input) modifiers() (ctrl, shift, alt bool) {
	return input.Pressed[KeyControl], input.Pressed[KeyShift], input.Pressed[KeyLeftAlt]
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

func inputSystem(s *WindowState, input *Input, cmd *Commands) {
	glfw.PollEvents()

	if s.windowGlfw.ShouldClose() {
		cmd.Quit()
	}

	// Update keyboard
	for key, glfwKey := range keyToGlfw {
		action := s.windowGlfw.GetKey(glfwKey)

		input.JustPressed[key] = false
		input.JustReleased[key] = false

		if glfw.Press == action {
			if !input.Pressed[key] {
				input.JustPressed[key] = true
			}
			input.Pressed[key] = true
		} else if glfw.Release == action {
			if input.Pressed[key] {
				input.JustReleased[key] = true
			}
			input.Pressed[key] = false
		}
	}

	// Update mouse buttons
	for btn := MouseButtonLeft; btn <= MouseButtonMiddle; btn++ {
		var glfwBtn glfw.MouseButton
		switch btn {
		case MouseButtonLeft:
			glfwBtn = glfw.MouseButtonLeft
		case MouseButtonRight:
			glfwBtn = glfw.MouseButtonRight
		case MouseButtonMiddle:
			glfwBtn = glfw.MouseButtonMiddle
		}

		action := s.windowGlfw.GetMouseButton(glfwBtn)
		input.JustPressed[btn] = false
		input.JustReleased[btn] = false

		if glfw.Press == action {
			if !input.Pressed[btn] {
				input.JustPressed[btn] = true
			}
			input.Pressed[btn] = true
		} else if glfw.Release == action {
			if input.Pressed[btn] {
				input.JustReleased[btn] = true
			}
			input.Pressed[btn] = false
		}
	}

	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetSize()

	// Cursor, converted from GLFW's top-left origin
	mx, my := s.windowGlfw.GetCursorPos()
	my = float64(input.WindowHeight) - my
	moved := mx != input.MouseX || my != input.MouseY
	input.MouseX = mx
	input.MouseY = my

	input.ScrollY = s.takeScroll()

	synthesizeEvents(input, moved)
}

// synthesizeEvents rebuilds the frame's event queue from the polled
// deltas, tagging each event with the current modifier state.
func synthesizeEvents(input *Input, moved bool) {
	input.Events = input.Events[:0]
	ctrl, shift, alt := input.modifiers()

	base := Event{
		X:     input.MouseX,
		Y:     input.MouseY,
		Ctrl:  ctrl,
		Shift: shift,
		Alt:   alt,
	}

	if moved {
		ev := base
		ev.Kind = EventPointerMove
		input.Events = append(input.Events, ev)
	}

	for btn := MouseButtonLeft; btn <= MouseButtonMiddle; btn++ {
		if input.JustPressed[btn] {
			ev := base
			ev.Kind = EventPointerPress
			ev.Button = pointerButtonFor(btn)
			input.Events = append(input.Events, ev)
		}
		if input.JustReleased[btn] {
			ev := base
			ev.Kind = EventPointerRelease
			ev.Button = pointerButtonFor(btn)
			input.Events = append(input.Events, ev)
		}
	}

	for key := KeyA; key < MouseButtonLeft; key++ {
		if input.JustPressed[key] {
			ev := base
			ev.Kind = EventKeyPress
			ev.Key = key
			input.Events = append(input.Events, ev)
		}
	}

	if input.ScrollY != 0 {
		ev := base
		ev.Kind = EventScroll
		input.Events = append(input.Events, ev)
	}
}

func pointerButtonFor(code int) PointerButton {
	switch code {
	case MouseButtonLeft:
		return PointerPrimary
	case MouseButtonRight:
		return PointerSecondary
	case MouseButtonMiddle:
		return PointerMiddle
	}
	return PointerNone
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:       glfw.KeyA,
	KeyB:       glfw.KeyB,
	KeyC:       glfw.KeyC,
	KeyD:       glfw.KeyD,
	KeyE:       glfw.KeyE,
	KeyF:       glfw.KeyF,
	KeyG:       glfw.KeyG,
	KeyH:       glfw.KeyH,
	KeyI:       glfw.KeyI,
	KeyJ:       glfw.KeyJ,
	KeyK:       glfw.KeyK,
	KeyL:       glfw.KeyL,
	KeyM:       glfw.KeyM,
	KeyN:       glfw.KeyN,
	KeyO:       glfw.KeyO,
	KeyP:       glfw.KeyP,
	KeyQ:       glfw.KeyQ,
	KeyR:       glfw.KeyR,
	KeyS:       glfw.KeyS,
	KeyT:       glfw.KeyT,
	KeyU:       glfw.KeyU,
	KeyV:       glfw.KeyV,
	KeyW:       glfw.KeyW,
	KeyX:       glfw.KeyX,
	KeyY:       glfw.KeyY,
	KeyZ:       glfw.KeyZ,
	KeySpace:   glfw.KeySpace,
	KeyEnter:   glfw.KeyEnter,
	KeyEscape:  glfw.KeyEscape,
	KeyTab:     glfw.KeyTab,
	KeyShift:   glfw.KeyLeftShift,
	KeyControl: glfw.KeyLeftControl,
	KeyLeftAlt: glfw.KeyLeftAlt,
}

var keyNames = map[int]string{
	KeySpace:   "Space",
	KeyEnter:   "Enter",
	KeyEscape:  "Esc",
	KeyTab:     "Tab",
	KeyShift:   "Shift",
	KeyControl: "Ctrl",
	KeyLeftAlt: "Alt",
}

// KeyName returns a display name for a key code.
func KeyName(key int) string {
	if key >= KeyA && key <= KeyZ {
		return string(rune('A' + key - KeyA))
	}
	if name, ok := keyNames[key]; ok {
		return name
	}
	return "?"
}

// KeyByName resolves a display name back to a key code.
func KeyByName(name string) (int, bool) {
	if len(name) == 1 {
		c := name[0]
		if c >= 'A' && c <= 'Z' {
			return KeyA + int(c-'A'), true
		}
		if c >= 'a' && c <= 'z' {
			return KeyA + int(c-'a'), true
		}
	}
	for key, n := range keyNames {
		if n == name {
			return key, true
		}
	}
	return 0, false
}
