// Package coroutines provides a cooperative, tick-driven coroutine engine
// for Go, modeled after game-engine coroutine systems.
//
// Routines are long-running computations that suspend at explicit points
// (for a number of ticks, for a duration of engine time, until a predicate
// holds, or until another coroutine finishes) and resume transparently on a
// later tick. The host drives the engine by calling Process and
// PhysicsProcess on a Scheduler once per frame; the engine never owns time,
// it is handed delta-time per tick.
//
// # Quick Start
//
// Create a scheduler and spawn a coroutine:
//
//	sched := coroutines.NewScheduler("game", nil)
//
//	c := coroutines.NewCoroutine(sched, func(flow *coroutines.Flow) any {
//		flow.Seconds(1.5)  // suspend for 1.5s of engine time
//		flow.Frames(2)     // then two more ticks
//		return "done"
//	}).OnFinish(func(result any) {
//		fmt.Println(result)
//	}).Spawn()
//
//	// host update loop
//	sched.Process(deltaTime)
//
// # Key Concepts
//
// Coroutine: a managed, resumable unit of work with its own lifecycle
// (Pause/Resume, Kill, FinishWith, RunToCompletion). Coroutines detach and
// become inert when they finish.
//
// Yield: the reason a coroutine is suspended: Frames(n), Seconds(s), or a
// Dyn predicate. Zero-length suspensions resolve within the tick that
// produced them, and leftover delta-time from a resolved Seconds yield
// carries into the next suspension in the same tick.
//
// Scheduler: the owner container; dispatches each tick to the attached
// coroutines listening on that channel and collects completion history.
//
// GoroutineExecutor: worker pool running background tasks that AsyncRoutine
// bridges back into the tick world by polling a finished flag.
//
// # Fault Isolation
//
// A panic inside a routine is contained to that coroutine: it is reported
// through the scheduler's FaultHandler and the coroutine is killed, without
// affecting sibling coroutines or the host's tick loop.
//
// # Threading
//
// The engine is single-threaded and cooperative: all coroutine mutation
// happens on the goroutine driving the ticks. Routine bodies run on their
// own goroutines but in strict lockstep with the driver, so they may touch
// host state without locks. Background work posted to an Executor is the
// only code that runs concurrently.
//
// For hosts without an update loop of their own, Runtime drives a scheduler
// from wall-clock tickers configured via Config (optionally loaded from
// YAML with LoadConfig).
package coroutines
