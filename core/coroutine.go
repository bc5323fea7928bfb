package core

import (
	"fmt"
	"time"
)

// =============================================================================
// PollMode / ProcessMode / State
// =============================================================================

// PollMode selects which of the host's two tick channels a coroutine listens
// to. A coroutine listens to exactly one channel.
type PollMode int

const (
	// PollProcess polls the coroutine on the render/update tick channel.
	PollProcess PollMode = iota
	// PollPhysics polls the coroutine on the fixed-step tick channel.
	PollPhysics
)

func (m PollMode) String() string {
	switch m {
	case PollProcess:
		return "process"
	case PollPhysics:
		return "physics"
	default:
		return fmt.Sprintf("PollMode(%d)", int(m))
	}
}

// ProcessMode controls how a coroutine reacts to the host pausing the
// scheduler, mirroring the host engine's process-pause semantics.
type ProcessMode int

const (
	// ProcessInherit follows the scheduler default (pausable).
	ProcessInherit ProcessMode = iota
	// ProcessPausable ticks only while the scheduler is not paused.
	ProcessPausable
	// ProcessWhenPaused ticks only while the scheduler is paused.
	ProcessWhenPaused
	// ProcessAlways ticks regardless of the scheduler's pause state.
	ProcessAlways
	// ProcessDisabled never ticks until the mode is changed.
	ProcessDisabled
)

func (m ProcessMode) String() string {
	switch m {
	case ProcessInherit:
		return "inherit"
	case ProcessPausable:
		return "pausable"
	case ProcessWhenPaused:
		return "when-paused"
	case ProcessAlways:
		return "always"
	case ProcessDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("ProcessMode(%d)", int(m))
	}
}

// State is a coroutine's lifecycle state. Every state except StateRunning is
// terminal: the coroutine has detached from its scheduler and all lifecycle
// operations on it are no-ops.
type State int

const (
	StateRunning State = iota
	StateCompleted
	StateKilled
	StateFaulted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateKilled:
		return "killed"
	case StateFaulted:
		return "faulted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether the state is final.
func (s State) Terminal() bool { return s != StateRunning }

// runToCompletionCap bounds RunToCompletion so a routine that never finishes
// cannot hang the calling tick.
const runToCompletionCap = 4096

// =============================================================================
// Coroutine
// =============================================================================

// Coroutine owns a resumable routine together with its suspension state and
// lifecycle. Coroutines are created through a Builder and live attached to
// exactly one Scheduler until they terminate.
//
// All methods must be called from the goroutine that drives the scheduler's
// ticks; a coroutine's own state is never mutated concurrently. The single
// cross-goroutine boundary in the engine is the async bridge's finished flag
// (see AsyncRoutine).
type Coroutine struct {
	id        CoroutineID
	name      string
	scheduler *Scheduler
	driver    *routineDriver

	pollMode    PollMode
	processMode ProcessMode

	lastYield *Yield
	paused    bool
	state     State

	listeners []FinishListener
	finished  chan any

	spawnedAt time.Time
	ticks     uint64
}

// ID returns the coroutine's diagnostic identity.
func (c *Coroutine) ID() CoroutineID { return c.id }

// Name returns the configured or derived routine name.
func (c *Coroutine) Name() string { return c.name }

// State returns the coroutine's lifecycle state.
func (c *Coroutine) State() State { return c.state }

// PollMode returns the tick channel the coroutine listens to.
func (c *Coroutine) PollMode() PollMode { return c.pollMode }

// ProcessMode returns the coroutine's pause semantics.
func (c *Coroutine) ProcessMode() ProcessMode { return c.processMode }

// IsRunning reports whether the coroutine is still alive. It is false
// immediately after natural completion, Kill or FinishWith.
func (c *Coroutine) IsRunning() bool { return c.state == StateRunning }

// IsFinished reports whether the coroutine reached a terminal state.
func (c *Coroutine) IsFinished() bool { return !c.IsRunning() }

// IsPaused reports whether the coroutine is individually paused.
func (c *Coroutine) IsPaused() bool { return c.paused }

// Pause suspends ticking of the coroutine. Idempotent; a no-op on a terminal
// coroutine.
func (c *Coroutine) Pause() {
	if c.state.Terminal() {
		return
	}
	c.paused = true
}

// Resume clears the paused flag. Resuming does not itself advance the
// routine; the next matching tick does. Idempotent; a no-op on a terminal
// coroutine.
func (c *Coroutine) Resume() {
	if c.state.Terminal() {
		return
	}
	c.paused = false
}

// Finished returns the coroutine's completion notification channel. On a
// real (push-path) completion the completion value is sent exactly once,
// then the channel is closed; on Kill, fault, or the RunToCompletion pull
// path the channel is closed without a value.
func (c *Coroutine) Finished() <-chan any { return c.finished }

// WaitUntilFinished returns a Yield another coroutine can suspend on; it
// resolves in the same tick this coroutine reaches a terminal state. The
// returned Yield holds only a liveness query, never execution control.
func (c *Coroutine) WaitUntilFinished() Yield {
	return Dyn(coroutineAlive{c: c})
}

type coroutineAlive struct {
	c *Coroutine
}

func (w coroutineAlive) KeepWaiting(_ float64) bool { return w.c.IsRunning() }

// runTick advances the coroutine by one tick of its channel. The scheduler
// has already applied the paused / poll-mode / process-mode filters.
func (c *Coroutine) runTick(deltaTime float64) {
	c.ticks++
	if result, ok := c.poll(deltaTime); ok {
		c.FinishWith(result)
	}
}

// poll resolves the current suspension and, once clear, resumes the routine,
// repeating until the routine suspends again or completes. Chained
// resolutions all happen within the one tick: leftover delta-time from a
// Seconds yield carries into the next step, and a freshly produced
// zero-length yield resolves immediately.
//
// The chain is deliberately uncapped; only RunToCompletion imposes a cap.
func (c *Coroutine) poll(deltaTime float64) (any, bool) {
	// The routine body may have terminated its own coroutine mid-chain; the
	// driver is dead then and must not be stepped again.
	if c.state.Terminal() {
		return nil, false
	}

	y := c.lastYield
	if y == nil {
		out := c.driver.step()
		switch {
		case out.fault != nil:
			c.handleFault(out.fault)
			return nil, false
		case out.done:
			return out.result, true
		default:
			next := out.yield
			c.lastYield = &next
			return c.poll(deltaTime)
		}
	}

	switch y.kind {
	case yieldFrames:
		if y.frames > 0 {
			y.frames--
			return nil, false
		}
		c.lastYield = nil
		return c.poll(deltaTime)

	case yieldSeconds:
		if y.seconds > deltaTime {
			y.seconds -= deltaTime
			return nil, false
		}
		remainder := deltaTime - y.seconds
		c.lastYield = nil
		return c.poll(remainder)

	default: // yieldDyn
		if y.cond.KeepWaiting(deltaTime) {
			return nil, false
		}
		c.lastYield = nil
		return c.poll(deltaTime)
	}
}

// FinishWith administratively completes the coroutine with the given value:
// every finish listener is invoked exactly once with result, the finished
// notification fires, and the coroutine detaches. The natural-completion
// path goes through here as well. A no-op on a terminal coroutine, so
// finishing twice cannot re-invoke listeners.
//
// The state turns terminal before listener dispatch, so a listener calling
// Kill or FinishWith back on the coroutine being dispatched is a no-op.
func (c *Coroutine) FinishWith(result any) {
	if c.state.Terminal() {
		return
	}
	c.state = StateCompleted
	c.dispatchFinish(result)
	c.finalize(result, true)
}

// Kill detaches and releases the coroutine immediately. Finish listeners are
// not invoked and the pending suspension is discarded. A no-op on a terminal
// coroutine.
func (c *Coroutine) Kill() {
	if c.state.Terminal() {
		return
	}
	c.terminate(StateKilled, nil, false)
}

// RunToCompletion synchronously resumes the routine to its end, treating
// every suspension as immediately resolved. The completion value is returned
// directly to the caller; finish listeners and the finished notification are
// NOT triggered (pull-style result, not push-style).
//
// If the routine does not finish within the iteration cap it is
// force-terminated and ErrIterationCap is returned; a routine panic is
// contained as usual and reported as an error.
func (c *Coroutine) RunToCompletion() (any, error) {
	if c.state.Terminal() {
		return nil, ErrNotRunning
	}

	c.lastYield = nil
	for i := 0; i < runToCompletionCap; i++ {
		// The routine may have terminated its own coroutine on the previous
		// step; stop before stepping the dead driver.
		if c.state.Terminal() {
			return nil, ErrNotRunning
		}
		out := c.driver.step()
		switch {
		case out.fault != nil:
			c.handleFault(out.fault)
			return nil, fmt.Errorf("core: routine panicked during run to completion: %v", out.fault.value)
		case out.done:
			c.terminate(StateCompleted, out.result, false)
			return out.result, nil
		}
	}

	c.scheduler.logger.Error("coroutine exceeded the run-to-completion iteration cap, force stopping",
		F("coroutine", c.id.String()),
		F("name", c.name),
		F("cap", runToCompletionCap),
	)
	c.terminate(StateKilled, nil, false)
	return nil, ErrIterationCap
}

// dispatchFinish drains the listener list in registration order. A listener
// failure (returned error or panic) is logged and never blocks the others.
func (c *Coroutine) dispatchFinish(result any) {
	listeners := c.listeners
	c.listeners = nil

	for _, l := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.scheduler.logger.Error("finish listener panicked",
						F("coroutine", c.id.String()),
						F("name", c.name),
						F("panic", r),
					)
				}
			}()
			if err := l.Deliver(result); err != nil {
				c.scheduler.logger.Error("finish listener rejected completion value",
					F("coroutine", c.id.String()),
					F("name", c.name),
					F("error", err),
				)
			}
		}()
	}
}

// handleFault contains a routine panic: the fault is reported to the
// scheduler's fault handler and the coroutine is killed without listener
// dispatch. The routine goroutine has already unwound.
func (c *Coroutine) handleFault(f *faultInfo) {
	c.scheduler.faultHandler.HandleFault(c.id, c.name, f.value, f.stack)
	c.terminate(StateFaulted, nil, false)
}

// terminate moves the coroutine into a terminal state and finalizes it. A
// guarded no-op when the coroutine is already terminal, so reentrant
// lifecycle calls cannot double-close the notification channel.
func (c *Coroutine) terminate(outcome State, result any, notify bool) {
	if c.state.Terminal() {
		return
	}
	c.state = outcome
	c.finalize(result, notify)
}

// finalize releases the routine goroutine, fires the finished notification
// and detaches from the scheduler. The state is already terminal. notify
// selects whether the completion value is delivered on the Finished channel.
func (c *Coroutine) finalize(result any, notify bool) {
	c.lastYield = nil
	c.driver.kill()

	if notify {
		c.finished <- result
	}
	close(c.finished)

	c.scheduler.onTerminated(c, c.state, result)
}
