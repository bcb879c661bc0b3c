package smartsym

import (
	"time"
)

type Time struct {
	Time time.Time
	Dt   time.Duration
}

// Timers hands out cancellable fixed-interval timers, fired from the
// frame loop. Everything stays on the app's single thread: callbacks
// run inside the timer system, never concurrently.
type Timers struct {
	active []*IntervalTimer
}

type IntervalTimer struct {
	interval  time.Duration
	next      time.Time
	fn        func()
	cancelled bool
}

// Cancel stops the timer; it never fires again after Cancel returns.
func (it *IntervalTimer) Cancel() {
	it.cancelled = true
}

func (t *Timers) Add(interval time.Duration, fn func()) *IntervalTimer {
	it := &IntervalTimer{
		interval: interval,
		next:     time.Now().Add(interval),
		fn:       fn,
	}
	t.active = append(t.active, it)
	return it
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(
		&Time{
			Time: time.Now(),
			Dt:   0,
		},
		&Timers{},
	)
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
	app.UseSystem(
		System(timersSystem).
			InStage(PreUpdate),
	)
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
}

func timersSystem(timers *Timers, timeResource *Time) {
	kept := timers.active[:0]
	for _, it := range timers.active {
		if it.cancelled {
			continue
		}
		kept = append(kept, it)
		for !it.cancelled && !timeResource.Time.Before(it.next) {
			it.next = it.next.Add(it.interval)
			it.fn()
		}
	}
	timers.active = kept
}
