package core

import (
	"runtime/debug"
)

// Routine is the resumable computation driven by a Coroutine.
//
// The routine body runs on its own goroutine, but in strict lockstep with the
// tick thread: it only executes between a resume and its next suspension, and
// the tick thread blocks for exactly that window. At any point in time only
// one of the two goroutines is running, so routine bodies may touch host
// state without locks.
//
// Suspend by calling the Flow methods (Yield, Frames, Seconds, Until, While,
// WaitFor). The returned value becomes the coroutine's completion value.
type Routine func(flow *Flow) any

// VoidRoutine adapts a routine without a meaningful result.
func VoidRoutine(f func(flow *Flow)) Routine {
	return func(flow *Flow) any {
		f(flow)
		return nil
	}
}

// routineKilled is the sentinel panic used to unwind a killed routine's
// goroutine. It must never escape this package.
type routineKilled struct{}

// faultInfo captures a panic raised inside a routine body.
type faultInfo struct {
	value any
	stack []byte
}

// stepOutcome is the result of resuming a routine one step: exactly one of
// yielded, done or fault is set.
type stepOutcome struct {
	yield   Yield
	yielded bool

	result any
	done   bool

	fault *faultInfo
}

// routineDriver owns the channel pair that keeps the routine goroutine in
// lockstep with the tick thread.
type routineDriver struct {
	resume chan struct{}
	out    chan stepOutcome
	dead   bool
}

// Flow is handed to a routine body; its methods are the routine's only
// suspension points.
type Flow struct {
	d *routineDriver
}

func newRoutineDriver(fn Routine) *routineDriver {
	d := &routineDriver{
		resume: make(chan struct{}),
		out:    make(chan stepOutcome),
	}
	flow := &Flow{d: d}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				if _, killed := r.(routineKilled); killed {
					// Kill unwinds the stack so deferred cleanup in the
					// routine body still runs; nobody is waiting on out.
					return
				}
				d.out <- stepOutcome{fault: &faultInfo{value: r, stack: debug.Stack()}}
			}
		}()

		flow.park()
		d.out <- stepOutcome{result: fn(flow), done: true}
	}()

	return d
}

// step resumes the routine once and reports how it suspended or finished.
// Must not be called after an outcome with done/fault set, nor after kill.
func (d *routineDriver) step() stepOutcome {
	d.resume <- struct{}{}
	out := <-d.out
	if out.done || out.fault != nil {
		d.dead = true
	}
	return out
}

// kill permanently stops the routine. The routine goroutine is parked at a
// suspension point; closing resume makes it unwind via the kill sentinel.
func (d *routineDriver) kill() {
	if d.dead {
		return
	}
	d.dead = true
	close(d.resume)
}

// park blocks the routine goroutine until the next resume.
func (f *Flow) park() {
	if _, ok := <-f.d.resume; !ok {
		panic(routineKilled{})
	}
}

// Yield suspends the routine with the given request. It returns when the
// request has been resolved and the coroutine is resumed.
func (f *Flow) Yield(y Yield) {
	f.d.out <- stepOutcome{yield: y, yielded: true}
	f.park()
}

// Frames suspends for n ticks.
func (f *Flow) Frames(n int64) { f.Yield(Frames(n)) }

// Seconds suspends for s seconds of engine time.
func (f *Flow) Seconds(s float64) { f.Yield(Seconds(s)) }

// Until suspends until cond returns true.
func (f *Flow) Until(cond func() bool) { f.Yield(WaitUntil(cond)) }

// While suspends as long as cond returns true.
func (f *Flow) While(cond func() bool) { f.Yield(WaitWhile(cond)) }

// WaitFor suspends until the other coroutine reaches a terminal state.
func (f *Flow) WaitFor(other *Coroutine) { f.Yield(other.WaitUntilFinished()) }
