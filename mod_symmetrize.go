package smartsym

import (
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNeedEditMode is reported when a session is requested outside
	// mesh edit mode or without an active mesh object.
	ErrNeedEditMode = errors.New("Edit Mode mesh required")

	// ErrNeedViewport is reported when no 3D viewport is available.
	ErrNeedViewport = errors.New("3D viewport required")
)

type EditMode int

const (
	ModeObject EditMode = iota
	ModeEdit
)

// MeshObject is the active editable object: a mesh plus its world
// transform.
type MeshObject struct {
	Name      string
	Transform ObjectTransform
	Mesh      *Mesh
}

// EditContext is the scene state the mirror gizmo operates on. A
// session can only start while Mode is ModeEdit and Object holds a
// mesh.
type EditContext struct {
	Mode   EditMode
	Object *MeshObject
}

var wireframeColor = [4]float32{0.6, 0.6, 0.6, 0.8}

// SymmetrizeState tracks the one modal session allowed at a time plus
// the hotkey binding and its capture mode.
type SymmetrizeState struct {
	session *Session

	binding Binding
	enabled bool
	capture HotkeyCapture

	arrowPx   float32
	wireframe *OverlayHandle
}

// Binding returns the active hotkey binding.
func (s *SymmetrizeState) Binding() Binding { return s.binding }

// BeginHotkeyCapture makes the next non-modifier key press the new
// binding; escape or a secondary click keeps the old one.
func (s *SymmetrizeState) BeginHotkeyCapture() { s.capture.Begin() }

// SymmetrizeModule wires the interactive mirror gizmo into the app:
// hotkey registration, session lifecycle, and the collaborators the
// session consumes. Install PlatformWindowModule, InputModule,
// TimeModule, CameraModule and OverlayModule first.
type SymmetrizeModule struct {
	Prefs    *Preferences
	Registry *Registry
	Context  *EditContext
}

func (m SymmetrizeModule) Install(app *App, cmd *Commands) {
	prefs := m.Prefs
	if prefs == nil {
		prefs = DefaultPreferences()
	}
	ctx := m.Context
	if ctx == nil {
		ctx = &EditContext{}
	}

	binding, err := prefs.Binding()
	if err != nil {
		app.Logger().Warnf("invalid hotkey preference, using Alt+X: %v", err)
		binding = Binding{Key: KeyX, Alt: true}
	}

	state := &SymmetrizeState{
		binding: binding,
		enabled: true,
		arrowPx: prefs.ArrowSizePx,
	}

	if m.Registry != nil {
		m.Registry.Register("keymap:mesh.smart_symmetrize", func() {
			state.enabled = false
		})
	}

	cmd.AddResources(ctx, state)
	app.UseSystem(
		System(symmetrizeSystem).
			InStage(Update),
	)
}

// sessionHost adapts the app's resources to the session's collaborator
// contract.
type sessionHost struct {
	overlay *Overlay
	timers  *Timers
	cam     *Camera
	input   *Input
	edit    *EditContext
}

func (h *sessionHost) View() ViewState {
	return h.cam.ViewState(Region{Width: h.input.WindowWidth, Height: h.input.WindowHeight})
}

func (h *sessionHost) ObjectTransform() ObjectTransform {
	return h.edit.Object.Transform
}

func (h *sessionHost) AddTimer(interval time.Duration, fn func()) TimerHandle {
	return h.timers.Add(interval, fn)
}

func (h *sessionHost) AddDrawHandler(fn DrawFunc) DrawHandle {
	return h.overlay.AddHandler(fn)
}

func (h *sessionHost) RequestRedraw() {
	h.overlay.RequestRedraw()
}

func (h *sessionHost) Symmetrize(dir Direction, threshold float32) error {
	return h.edit.Object.Mesh.Symmetrize(dir, threshold)
}

func symmetrizeSystem(input *Input, edit *EditContext, overlay *Overlay, timers *Timers, cam *Camera, state *SymmetrizeState, logg *DefaultLogger) {
	if state.wireframe == nil && edit.Object != nil {
		state.wireframe = overlay.AddHandler(func() []Polyline {
			return meshWireframe(edit.Object)
		})
	}

	for _, ev := range input.Events {
		if state.capture.Active() {
			if binding, done, ok := state.capture.Feed(ev); done && ok {
				state.binding = binding
				logg.Infof("new hotkey: %s", binding)
			}
			continue
		}

		if state.session != nil {
			status := state.session.Handle(ev)
			if status == StatusFinished || status == StatusCancelled {
				if err := state.session.Err(); err != nil {
					logg.Errorf("symmetrize failed: %v", err)
				}
				state.session = nil
			}
			continue
		}

		if state.enabled && state.binding.Matches(ev) {
			session, err := startMirrorSession(input, edit, overlay, timers, cam, state, logg)
			if err != nil {
				logg.Warnf("cannot start: %v", err)
			}
			state.session = session
		}
	}
}

// startMirrorSession checks the entry preconditions and, only if they
// hold, starts a session (acquiring its timer and draw subscription).
func startMirrorSession(input *Input, edit *EditContext, overlay *Overlay, timers *Timers, cam *Camera, state *SymmetrizeState, logg Logger) (*Session, error) {
	if edit.Mode != ModeEdit || edit.Object == nil || edit.Object.Mesh == nil {
		return nil, ErrNeedEditMode
	}
	if input.WindowWidth <= 0 || input.WindowHeight <= 0 {
		return nil, ErrNeedViewport
	}

	host := &sessionHost{
		overlay: overlay,
		timers:  timers,
		cam:     cam,
		input:   input,
		edit:    edit,
	}
	return StartSession(host, logg, state.arrowPx), nil
}

// meshWireframe draws the edited mesh's faces as closed polylines so
// the demo viewport shows the geometry the gizmo mirrors.
func meshWireframe(obj *MeshObject) []Polyline {
	mesh := obj.Mesh
	if mesh == nil {
		return nil
	}
	tr := obj.Transform
	lines := make([]Polyline, 0, len(mesh.Faces))
	for _, f := range mesh.Faces {
		pts := make([]mgl32.Vec3, 0, 4)
		for _, vi := range f {
			v := mesh.Vertices[vi]
			world := tr.Position.Add(tr.Rotation.Rotate(mgl32.Vec3{
				v.X() * tr.Scale.X(),
				v.Y() * tr.Scale.Y(),
				v.Z() * tr.Scale.Z(),
			}))
			pts = append(pts, world)
		}
		pts = append(pts, pts[0])
		lines = append(lines, Polyline{Points: pts, Color: wireframeColor})
	}
	return lines
}
