package nav

import (
	"sync"
	"time"
)

const (
	// ViewDuration is the length of a view transition.
	ViewDuration = 340 * time.Millisecond

	// RemovalDelay is how long an outgoing view stays mounted.
	RemovalDelay = ViewDuration + 40*time.Millisecond
)

// ViewID identifies a mounted view.
type ViewID int

// Surface is where views live (the DOM in the browser).
type Surface interface {
	// Mount appends a view. It must start inert and positioned for dir.
	Mount(id ViewID, markup string, dir Direction)
	// Enter starts the entering transition and makes the view interactive.
	Enter(id ViewID)
	// Leave starts the leaving transition and makes the view inert.
	Leave(id ViewID)
	// Remove detaches the view.
	Remove(id ViewID)
}

// Scheduler abstracts the two clocks a transition needs.
type Scheduler interface {
	// After runs f once after d and returns a function that cancels it.
	After(d time.Duration, f func()) (cancel func())
	// NextFrame runs f before the next paint.
	NextFrame(f func())
}

// TimerScheduler uses time.AfterFunc and runs frames immediately.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

func (TimerScheduler) NextFrame(f func()) { f() }

// Outlet keeps exactly one current view. Each Show retires the current view
// and schedules its removal with a timer scoped to that view; a view still
// waiting for removal when the next Show arrives is removed at once and its
// timer cancelled.
type Outlet struct {
	surface Surface
	sched   Scheduler
	delay   time.Duration

	mu       sync.Mutex
	next     ViewID
	current  ViewID
	entered  bool
	outgoing map[ViewID]func()
}

func NewOutlet(surface Surface, sched Scheduler, delay time.Duration) *Outlet {
	if sched == nil {
		sched = TimerScheduler{}
	}
	if delay <= 0 {
		delay = RemovalDelay
	}
	return &Outlet{
		surface:  surface,
		sched:    sched,
		delay:    delay,
		outgoing: make(map[ViewID]func()),
	}
}

// Show replaces the current view with markup, animated for dir.
func (o *Outlet) Show(markup string, dir Direction) ViewID {
	o.mu.Lock()
	for id, cancel := range o.outgoing {
		cancel()
		delete(o.outgoing, id)
		o.surface.Remove(id)
	}

	o.next++
	id := o.next
	o.surface.Mount(id, markup, dir)

	if prev := o.current; prev != 0 {
		o.surface.Leave(prev)
		o.outgoing[prev] = o.sched.After(o.delay, func() { o.expire(prev) })
	}
	o.current = id
	o.entered = false
	o.mu.Unlock()

	o.sched.NextFrame(func() { o.enter(id) })
	return id
}

// enter activates id unless a later Show superseded it first.
func (o *Outlet) enter(id ViewID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if id != o.current || o.entered {
		return
	}
	o.entered = true
	o.surface.Enter(id)
}

func (o *Outlet) expire(id ViewID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.outgoing[id]; !ok {
		return
	}
	delete(o.outgoing, id)
	o.surface.Remove(id)
}

// Current returns the id of the current view, 0 before the first Show.
func (o *Outlet) Current() ViewID {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Pending is the number of outgoing views awaiting removal.
func (o *Outlet) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.outgoing)
}

// Close cancels all timers and removes every outgoing view. The current
// view stays mounted.
func (o *Outlet) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	for id, cancel := range o.outgoing {
		cancel()
		delete(o.outgoing, id)
		o.surface.Remove(id)
	}
}
