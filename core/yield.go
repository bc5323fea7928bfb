package core

import "fmt"

// =============================================================================
// Yield: the reason a coroutine stays suspended
// =============================================================================

type yieldKind int

const (
	yieldFrames yieldKind = iota
	yieldSeconds
	yieldDyn
)

func (k yieldKind) String() string {
	switch k {
	case yieldFrames:
		return "frames"
	case yieldSeconds:
		return "seconds"
	case yieldDyn:
		return "dyn"
	default:
		return fmt.Sprintf("yieldKind(%d)", int(k))
	}
}

// KeepWaiting is a stateful condition polled once per tick while a coroutine
// is suspended on a Dyn yield. The coroutine stays suspended as long as it
// returns true. It receives the tick's delta-time.
type KeepWaiting interface {
	KeepWaiting(deltaTime float64) bool
}

// KeepWaitingFunc adapts a plain closure to KeepWaiting, ignoring delta-time.
type KeepWaitingFunc func() bool

func (f KeepWaitingFunc) KeepWaiting(_ float64) bool { return f() }

// Yield describes why, and for how long, a coroutine should remain suspended.
// A coroutine holds at most one Yield at a time.
//
// Use the constructors Frames, Seconds, Dyn, WaitWhile or WaitUntil.
type Yield struct {
	kind    yieldKind
	frames  int64
	seconds float64
	cond    KeepWaiting
}

// Frames suspends for n ticks of the coroutine's poll channel.
//
// Frames(0) resolves within the same tick it was produced; it never stalls
// the coroutine for a full tick.
func Frames(n int64) Yield {
	if n < 0 {
		n = 0
	}
	return Yield{kind: yieldFrames, frames: n}
}

// Seconds suspends until the cumulative delta-time of subsequent ticks
// reaches s. Any remainder inside the resolving tick carries into the next
// resolution step of the same tick.
//
// The counter only advances while the coroutine is being polled; it is engine
// time, not wall-clock time.
func Seconds(s float64) Yield {
	if s < 0 {
		s = 0
	}
	return Yield{kind: yieldSeconds, seconds: s}
}

// Dyn suspends as long as cond.KeepWaiting reports true. cond is invoked at
// most once per tick while suspended.
func Dyn(cond KeepWaiting) Yield {
	if cond == nil {
		panic("core: Dyn requires a non-nil condition")
	}
	return Yield{kind: yieldDyn, cond: cond}
}

// WaitWhile suspends as long as f returns true.
func WaitWhile(f func() bool) Yield {
	return Dyn(KeepWaitingFunc(f))
}

// WaitUntil suspends until f returns true.
func WaitUntil(f func() bool) Yield {
	return Dyn(KeepWaitingFunc(func() bool { return !f() }))
}

func (y Yield) String() string {
	switch y.kind {
	case yieldFrames:
		return fmt.Sprintf("Frames(%d)", y.frames)
	case yieldSeconds:
		return fmt.Sprintf("Seconds(%g)", y.seconds)
	default:
		return "Dyn"
	}
}
