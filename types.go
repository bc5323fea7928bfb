package coroutines

import "github.com/spiretick/go-coroutines/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the coroutines package for most use cases.

// Routine is the resumable computation driven by a Coroutine
type Routine = core.Routine

// Flow is handed to a routine body; its methods are the suspension points
type Flow = core.Flow

// Coroutine is a managed, resumable, suspendable unit of work
type Coroutine = core.Coroutine

// Builder configures and spawns a Coroutine
type Builder = core.Builder

// Scheduler is the owner container driven by the host's tick loop
type Scheduler = core.Scheduler

// SchedulerConfig configures a Scheduler
type SchedulerConfig = core.SchedulerConfig

// Yield describes why a coroutine stays suspended
type Yield = core.Yield

// KeepWaiting is the stateful condition behind Dyn yields
type KeepWaiting = core.KeepWaiting

// FinishListener receives a coroutine's completion value
type FinishListener = core.FinishListener

// Callable is an opaque external callable listener target
type Callable = core.Callable

// Executor runs background work for async-bridged coroutines
type Executor = core.Executor

// PollMode selects a coroutine's tick channel
type PollMode = core.PollMode

// ProcessMode controls a coroutine's pause semantics
type ProcessMode = core.ProcessMode

// State is a coroutine's lifecycle state
type State = core.State

// Poll mode constants
const (
	PollProcess PollMode = core.PollProcess
	PollPhysics PollMode = core.PollPhysics
)

// Process mode constants
const (
	ProcessInherit    ProcessMode = core.ProcessInherit
	ProcessPausable   ProcessMode = core.ProcessPausable
	ProcessWhenPaused ProcessMode = core.ProcessWhenPaused
	ProcessAlways     ProcessMode = core.ProcessAlways
	ProcessDisabled   ProcessMode = core.ProcessDisabled
)

// Lifecycle state constants
const (
	StateRunning   State = core.StateRunning
	StateCompleted State = core.StateCompleted
	StateKilled    State = core.StateKilled
	StateFaulted   State = core.StateFaulted
)

// Yield constructors
var (
	Frames    = core.Frames
	Seconds   = core.Seconds
	Dyn       = core.Dyn
	WaitWhile = core.WaitWhile
	WaitUntil = core.WaitUntil
)

// Listener constructors
var (
	ListenerFunc     = core.ListenerFunc
	ListenerCallable = core.ListenerCallable
)

// NewScheduler creates a standalone scheduler for hosts that drive their own
// tick loop. config may be nil for defaults.
func NewScheduler(name string, config *core.SchedulerConfig) *core.Scheduler {
	return core.NewScheduler(name, config)
}

// NewCoroutine returns a builder for a coroutine owned by sched.
func NewCoroutine(sched *core.Scheduler, routine core.Routine) *core.Builder {
	return core.NewBuilder(sched, routine)
}

// Start spawns a coroutine with default settings on sched.
func Start(sched *core.Scheduler, routine core.Routine) *core.Coroutine {
	return core.NewBuilder(sched, routine).Spawn()
}

// StartAsync spawns a coroutine bridging fn, which runs on the global
// executor, into sched. InitGlobalExecutor must have been called.
func StartAsync(sched *core.Scheduler, fn func() any) *core.Coroutine {
	return core.NewBuilder(sched, core.AsyncRoutine(GetGlobalExecutor(), fn)).Spawn()
}
