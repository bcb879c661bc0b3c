package smartsym

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimerHandle struct{ cancels int }

func (h *fakeTimerHandle) Cancel() { h.cancels++ }

type fakeDrawHandle struct{ removes int }

func (h *fakeDrawHandle) Remove() { h.removes++ }

type commitCall struct {
	dir       Direction
	threshold float32
}

// fakeSessionHost records resource acquisition and commits so tests can
// assert the exactly-once release contract.
type fakeSessionHost struct {
	view      ViewState
	transform ObjectTransform

	timer   fakeTimerHandle
	timerFn func()
	draw    fakeDrawHandle
	drawFn  DrawFunc

	redraws   int
	commits   []commitCall
	commitErr error
}

func newFakeHost() *fakeSessionHost {
	return &fakeSessionHost{
		view:      testViewState(),
		transform: NewObjectTransform(mgl32.Vec3{}),
	}
}

func (h *fakeSessionHost) View() ViewState { return h.view }

func (h *fakeSessionHost) ObjectTransform() ObjectTransform { return h.transform }

func (h *fakeSessionHost) AddTimer(interval time.Duration, fn func()) TimerHandle {
	h.timerFn = fn
	return &h.timer
}

func (h *fakeSessionHost) AddDrawHandler(fn DrawFunc) DrawHandle {
	h.drawFn = fn
	return &h.draw
}

func (h *fakeSessionHost) RequestRedraw() { h.redraws++ }

func (h *fakeSessionHost) Symmetrize(dir Direction, threshold float32) error {
	h.commits = append(h.commits, commitCall{dir: dir, threshold: threshold})
	return h.commitErr
}

// tipScreen projects the tip of the session's arrow at the given index.
func tipScreen(t *testing.T, s *Session, host *fakeSessionHost, idx int) mgl32.Vec2 {
	t.Helper()
	require.Greater(t, len(s.Arrows()), idx)
	p, ok := host.view.WorldToScreen(s.Arrows()[idx].Tip)
	require.True(t, ok)
	return p
}

func TestStartSession_acquiresResources(t *testing.T) {
	host := newFakeHost()
	s := StartSession(host, NewNopLogger(), 80)

	require.NotNil(t, host.timerFn, "session should register a refresh timer")
	require.NotNil(t, host.drawFn, "session should register a draw handler")
	assert.Len(t, s.Arrows(), 6, "arrows must be visible before the first timer tick")
	assert.Equal(t, -1, s.HoverIndex())
}

func TestSession_hoverRadiusBoundary(t *testing.T) {
	host := newFakeHost()
	s := StartSession(host, NewNopLogger(), 80)
	tip := tipScreen(t, s, host, 0)

	// exactly on the radius counts as a hit
	s.Handle(Event{Kind: EventPointerMove, X: float64(tip.X()) + 20.0, Y: float64(tip.Y())})
	assert.Equal(t, 0, s.HoverIndex())

	// just past it does not
	s.Handle(Event{Kind: EventPointerMove, X: float64(tip.X()) + 20.001, Y: float64(tip.Y())})
	assert.Equal(t, -1, s.HoverIndex())
}

func TestSession_hoverPrefersFirstInOrder(t *testing.T) {
	host := newFakeHost()
	s := &Session{host: host, log: NewNopLogger(), hover: -1}

	// two arrows with the same tip: the earlier one wins
	tip := mgl32.Vec3{1, 0, 0}
	s.arrows = []ArrowSpec{
		{Axis: AxisX, Sign: 1, Tip: tip},
		{Axis: AxisX, Sign: -1, Tip: tip},
	}

	tip2D, ok := host.view.WorldToScreen(tip)
	require.True(t, ok)
	s.Handle(Event{Kind: EventPointerMove, X: float64(tip2D.X()), Y: float64(tip2D.Y())})
	assert.Equal(t, 0, s.HoverIndex())
}

func TestSession_hoverChangesDrawColor(t *testing.T) {
	host := newFakeHost()
	s := StartSession(host, NewNopLogger(), 80)
	tip := tipScreen(t, s, host, 0)

	s.Handle(Event{Kind: EventPointerMove, X: float64(tip.X()), Y: float64(tip.Y())})
	require.Equal(t, 0, s.HoverIndex())

	lines := host.drawFn()
	require.Len(t, lines, 6)
	assert.Equal(t, hoverColor, lines[0].Color)
	assert.Equal(t, ArrowColor(AxisX, -1), lines[1].Color)
}

func TestSession_clickCommitsHoveredDirection(t *testing.T) {
	host := newFakeHost()
	s := StartSession(host, NewNopLogger(), 80)
	tip := tipScreen(t, s, host, 1) // X-

	s.Handle(Event{Kind: EventPointerMove, X: float64(tip.X()), Y: float64(tip.Y())})
	require.Equal(t, 1, s.HoverIndex())

	status := s.Handle(Event{Kind: EventPointerPress, Button: PointerPrimary, X: float64(tip.X()), Y: float64(tip.Y())})

	assert.Equal(t, StatusFinished, status)
	assert.NoError(t, s.Err())
	require.Len(t, host.commits, 1)
	assert.Equal(t, NegativeX, host.commits[0].dir)
	assert.Equal(t, float32(MergeThreshold), host.commits[0].threshold)
	assert.Equal(t, 1, host.timer.cancels)
	assert.Equal(t, 1, host.draw.removes)
}

func TestSession_clickAwayFromArrowsDoesNothing(t *testing.T) {
	host := newFakeHost()

	// a camera with no axis near view-parallel, so every tip projects
	// well away from the object's screen position
	host.view.View = mgl32.LookAtV(mgl32.Vec3{5, 4, 8}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	s := StartSession(host, NewNopLogger(), 80)
	require.Len(t, s.Arrows(), 6)

	center, ok := host.view.WorldToScreen(mgl32.Vec3{})
	require.True(t, ok)

	s.Handle(Event{Kind: EventPointerMove, X: float64(center.X()), Y: float64(center.Y())})
	assert.Equal(t, -1, s.HoverIndex())

	status := s.Handle(Event{Kind: EventPointerPress, Button: PointerPrimary, X: float64(center.X()), Y: float64(center.Y())})
	assert.Equal(t, StatusRunning, status)
	assert.Empty(t, host.commits)
	assert.Equal(t, 0, host.timer.cancels)
}

func TestSession_commitFailureStillReleases(t *testing.T) {
	host := newFakeHost()
	host.commitErr = errors.New("mirror failed")

	s := StartSession(host, NewNopLogger(), 80)
	tip := tipScreen(t, s, host, 0)

	s.Handle(Event{Kind: EventPointerMove, X: float64(tip.X()), Y: float64(tip.Y())})
	status := s.Handle(Event{Kind: EventPointerPress, Button: PointerPrimary, X: float64(tip.X()), Y: float64(tip.Y())})

	assert.Equal(t, StatusFinished, status)
	assert.ErrorIs(t, s.Err(), host.commitErr)
	assert.Equal(t, 1, host.timer.cancels, "timer must be released even when the primitive fails")
	assert.Equal(t, 1, host.draw.removes)
}

func TestSession_cancel(t *testing.T) {
	cases := []struct {
		name string
		ev   Event
	}{
		{"escape", Event{Kind: EventKeyPress, Key: KeyEscape}},
		{"secondary click", Event{Kind: EventPointerPress, Button: PointerSecondary}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			host := newFakeHost()
			s := StartSession(host, NewNopLogger(), 80)

			// hovering at cancel time must not change the outcome
			tip := tipScreen(t, s, host, 0)
			s.Handle(Event{Kind: EventPointerMove, X: float64(tip.X()), Y: float64(tip.Y())})

			assert.Equal(t, StatusCancelled, s.Handle(tc.ev))
			assert.Equal(t, 1, host.timer.cancels)
			assert.Equal(t, 1, host.draw.removes)
			assert.Empty(t, host.commits)

			// events after release keep reporting the terminal status
			// without releasing twice
			assert.Equal(t, StatusCancelled, s.Handle(tc.ev))
			assert.Equal(t, 1, host.timer.cancels)
			assert.Equal(t, 1, host.draw.removes)
		})
	}
}

func TestSession_passThrough(t *testing.T) {
	host := newFakeHost()
	s := StartSession(host, NewNopLogger(), 80)

	cases := []struct {
		name string
		ev   Event
	}{
		{"scroll", Event{Kind: EventScroll}},
		{"middle press", Event{Kind: EventPointerPress, Button: PointerMiddle}},
		{"middle release", Event{Kind: EventPointerRelease, Button: PointerMiddle}},
		{"alt move", Event{Kind: EventPointerMove, Alt: true}},
	}
	for _, tc := range cases {
		assert.Equal(t, StatusPassThrough, s.Handle(tc.ev), tc.name)
	}

	// session still alive afterwards
	assert.Equal(t, 0, host.timer.cancels)
	assert.Equal(t, StatusRunning, s.Handle(Event{Kind: EventPointerMove, X: 1, Y: 1}))
}

func TestSession_timerRefreshTracksTransform(t *testing.T) {
	host := newFakeHost()
	s := StartSession(host, NewNopLogger(), 80)
	before := s.Arrows()[0].Tip

	host.transform.Position = mgl32.Vec3{2, 0, 0}
	host.timerFn()

	after := s.Arrows()[0].Tip
	assert.NotEqual(t, before, after, "timer tick must reproject the arrows")
}

func TestSession_everyEventRequestsRedraw(t *testing.T) {
	host := newFakeHost()
	s := StartSession(host, NewNopLogger(), 80)
	base := host.redraws

	s.Handle(Event{Kind: EventPointerMove, X: 3, Y: 3})
	s.Handle(Event{Kind: EventScroll})
	s.Handle(Event{Kind: EventTimer})

	assert.GreaterOrEqual(t, host.redraws-base, 3)
}
