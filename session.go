package smartsym

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const (
	// RefreshInterval is the arrow reprojection cadence. The camera can
	// move without emitting pointer events, so arrows are refreshed on
	// a timer as well.
	RefreshInterval = 250 * time.Millisecond

	// HoverRadiusPx is the screen-space pick radius around arrow tips.
	HoverRadiusPx = 20.0

	// MergeThreshold is the vertex weld distance passed to the mirror
	// primitive on commit, in world units.
	MergeThreshold = 0.0001
)

var hoverColor = [4]float32{1, 1, 0, 1}

type EventKind int

const (
	EventTimer EventKind = iota
	EventPointerMove
	EventPointerPress
	EventPointerRelease
	EventKeyPress
	EventScroll
)

type PointerButton int

const (
	PointerNone PointerButton = iota
	PointerPrimary
	PointerSecondary
	PointerMiddle
)

// Event is one input occurrence dispatched through the session's
// transition function. X and Y are viewport coordinates with a
// bottom-left origin.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Button PointerButton
	Key    int
	Ctrl   bool
	Shift  bool
	Alt    bool
}

// Status is the session's answer to one event.
type Status int

const (
	// StatusRunning keeps the modal session alive.
	StatusRunning Status = iota
	// StatusPassThrough keeps the session alive and hands the event
	// back to the host so viewport navigation keeps working.
	StatusPassThrough
	// StatusFinished means the mirror was committed and all session
	// resources are released. Err reports the primitive's outcome.
	StatusFinished
	// StatusCancelled means the user aborted and all session resources
	// are released.
	StatusCancelled
)

type TimerHandle interface {
	Cancel()
}

type DrawHandle interface {
	Remove()
}

// Polyline is one colored line strip handed to the overlay renderer.
type Polyline struct {
	Points []mgl32.Vec3
	Color  [4]float32
}

type DrawFunc func() []Polyline

// SessionHost supplies everything the modal session needs from its
// surroundings: live camera and object state, a periodic timer, the
// overlay draw subscription, and the mirror-geometry primitive.
type SessionHost interface {
	View() ViewState
	ObjectTransform() ObjectTransform
	AddTimer(interval time.Duration, fn func()) TimerHandle
	AddDrawHandler(fn DrawFunc) DrawHandle
	RequestRedraw()
	Symmetrize(dir Direction, threshold float32) error
}

// Session owns the state of one modal mirror invocation: the current
// arrow set, the hovered arrow, and the timer and draw-subscription
// handles. It is created by StartSession and must not be reused after
// Handle returns StatusFinished or StatusCancelled.
type Session struct {
	id   uuid.UUID
	host SessionHost
	log  Logger

	pixelLength float32

	arrows []ArrowSpec
	hover  int // index into arrows, -1 when nothing is hovered

	timer    TimerHandle
	draw     DrawHandle
	released bool
	final    Status

	err error
}

// StartSession acquires the refresh timer and the overlay draw
// subscription and computes the initial arrow set, so the gizmo is
// visible before the first timer tick. Preconditions (edit mode, active
// object, viewport) are the caller's responsibility and must be checked
// before any resource is acquired.
func StartSession(host SessionHost, log Logger, arrowPixelLength float32) *Session {
	if log == nil {
		log = NewNopLogger()
	}
	s := &Session{
		id:          uuid.New(),
		host:        host,
		log:         log,
		pixelLength: arrowPixelLength,
		hover:       -1,
	}
	s.timer = host.AddTimer(RefreshInterval, func() {
		s.Handle(Event{Kind: EventTimer})
	})
	s.draw = host.AddDrawHandler(s.drawLines)
	s.refresh()
	s.log.Debugf("session %s: started, %d arrows", s.id, len(s.arrows))
	return s
}

// Handle dispatches one event through the session state machine and
// reports whether the session is still running. Every event requests a
// viewport redraw first so the overlay stays responsive on all paths.
func (s *Session) Handle(ev Event) Status {
	s.host.RequestRedraw()

	if s.released {
		return s.final
	}

	if ev.Kind == EventTimer {
		s.refresh()
		return StatusRunning
	}

	if isPassThrough(ev) {
		return StatusPassThrough
	}

	if isCancel(ev) {
		s.release()
		s.final = StatusCancelled
		s.log.Debugf("session %s: cancelled", s.id)
		return StatusCancelled
	}

	switch ev.Kind {
	case EventPointerMove:
		s.hitTest(ev.X, ev.Y)
	case EventPointerPress:
		if ev.Button == PointerPrimary && s.hover >= 0 {
			arrow := s.arrows[s.hover]
			s.err = s.commit(arrow)
			s.final = StatusFinished
			if s.err != nil {
				s.log.Warnf("session %s: symmetrize %s failed: %v", s.id, DirectionFor(arrow.Axis, arrow.Sign), s.err)
			} else {
				s.log.Infof("session %s: symmetrized %s", s.id, DirectionFor(arrow.Axis, arrow.Sign))
			}
			return StatusFinished
		}
	}
	return StatusRunning
}

// HoverIndex returns the index of the hovered arrow, or -1.
func (s *Session) HoverIndex() int { return s.hover }

// Arrows returns the current arrow set. The slice is replaced wholesale
// on each refresh and must not be mutated.
func (s *Session) Arrows() []ArrowSpec { return s.arrows }

// Err reports the mirror primitive's failure after StatusFinished.
func (s *Session) Err() error { return s.err }

// commit invokes the mirror primitive for the chosen arrow. The
// session's resources are released before the call returns on every
// path, including a primitive failure; a dangling draw subscription
// would otherwise keep firing after the session ends.
func (s *Session) commit(arrow ArrowSpec) error {
	defer s.release()
	return s.host.Symmetrize(DirectionFor(arrow.Axis, arrow.Sign), MergeThreshold)
}

func (s *Session) release() {
	if s.released {
		return
	}
	s.released = true
	if s.timer != nil {
		s.timer.Cancel()
	}
	if s.draw != nil {
		s.draw.Remove()
	}
	s.host.RequestRedraw()
}

func (s *Session) refresh() {
	s.arrows = RefreshArrows(s.host.ObjectTransform(), s.host.View(), s.pixelLength)
	if s.hover >= len(s.arrows) {
		s.hover = -1
	}
}

// hitTest marks the first arrow (in X+,X-,Y+,Y-,Z+,Z- order) whose
// projected tip lies within HoverRadiusPx of the pointer.
func (s *Session) hitTest(x, y float64) {
	view := s.host.View()
	s.hover = -1
	for i, arrow := range s.arrows {
		tip2D, ok := view.WorldToScreen(arrow.Tip)
		if !ok {
			continue
		}
		dx := x - float64(tip2D.X())
		dy := y - float64(tip2D.Y())
		if dx*dx+dy*dy <= HoverRadiusPx*HoverRadiusPx {
			s.hover = i
			break
		}
	}
}

func (s *Session) drawLines() []Polyline {
	lines := make([]Polyline, 0, len(s.arrows))
	for i, arrow := range s.arrows {
		color := arrow.Color
		if i == s.hover {
			color = hoverColor
		}
		lines = append(lines, Polyline{Points: arrow.Points, Color: color})
	}
	return lines
}

func isPassThrough(ev Event) bool {
	switch ev.Kind {
	case EventScroll:
		return true
	case EventPointerPress, EventPointerRelease:
		return ev.Button == PointerMiddle
	case EventPointerMove:
		return ev.Alt
	}
	return false
}

func isCancel(ev Event) bool {
	if ev.Kind == EventPointerPress && ev.Button == PointerSecondary {
		return true
	}
	return ev.Kind == EventKeyPress && ev.Key == KeyEscape
}
