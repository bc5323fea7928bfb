package core

import "time"

// Builder configures and spawns a Coroutine. Options chain; the routine is
// fixed at construction. The zero Builder is not usable, call NewBuilder.
//
//	c := core.NewBuilder(sched, routine).
//		PollMode(core.PollPhysics).
//		AutoStart(false).
//		OnFinish(func(result any) { ... }).
//		Spawn()
type Builder struct {
	owner   *Scheduler
	routine Routine

	name        string
	pollMode    PollMode
	processMode ProcessMode
	autoStart   bool

	listeners []FinishListener
}

// NewBuilder creates a builder with default settings: auto-start on, process
// poll mode, inherited process mode, no listeners.
// Panics if owner or routine is nil (configuration error).
func NewBuilder(owner *Scheduler, routine Routine) *Builder {
	if owner == nil {
		panic("core: NewBuilder requires a non-nil owner scheduler")
	}
	if routine == nil {
		panic("core: NewBuilder requires a non-nil routine")
	}
	return &Builder{
		owner:     owner,
		routine:   routine,
		autoStart: true,
	}
}

// Name sets an explicit name for diagnostics and history. When unset, the
// name is derived from the routine's function symbol.
func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

// AutoStart controls whether the coroutine starts ticking immediately after
// Spawn. If false, the coroutine spawns paused; call Resume to start it.
func (b *Builder) AutoStart(autoStart bool) *Builder {
	b.autoStart = autoStart
	return b
}

// PollMode selects the tick channel the coroutine listens to.
func (b *Builder) PollMode(mode PollMode) *Builder {
	b.pollMode = mode
	return b
}

// ProcessMode sets the coroutine's pause semantics.
func (b *Builder) ProcessMode(mode ProcessMode) *Builder {
	b.processMode = mode
	return b
}

// OnFinish appends a closure invoked with the completion value when the
// coroutine finishes. May be called repeatedly; listeners run in
// registration order.
func (b *Builder) OnFinish(f func(result any)) *Builder {
	return b.OnFinishListener(ListenerFunc(f))
}

// OnFinishCallable appends an external callable invoked with the completion
// value when the coroutine finishes.
func (b *Builder) OnFinishCallable(c Callable) *Builder {
	return b.OnFinishListener(ListenerCallable(c))
}

// OnFinishListener appends a listener invoked when the coroutine finishes.
func (b *Builder) OnFinishListener(l FinishListener) *Builder {
	if l == nil {
		panic("core: OnFinishListener requires a non-nil listener")
	}
	b.listeners = append(b.listeners, l)
	return b
}

// OnFinishAs appends a typed closure; the completion value is converted to T
// before delivery, and a conversion failure is logged without blocking other
// listeners. A free function because Go methods cannot take type parameters.
func OnFinishAs[T any](b *Builder, f func(T)) *Builder {
	return b.OnFinishListener(ListenerAs(f))
}

// Spawn completes the builder: the coroutine is allocated, attached under
// the owner scheduler and registered for tick dispatch. The routine body
// does not run until the first matching tick.
func (b *Builder) Spawn() *Coroutine {
	c := &Coroutine{
		id:          GenerateCoroutineID(),
		name:        resolveRoutineName(b.routine, b.name),
		scheduler:   b.owner,
		driver:      newRoutineDriver(b.routine),
		pollMode:    b.pollMode,
		processMode: b.processMode,
		paused:      !b.autoStart,
		listeners:   b.listeners,
		finished:    make(chan any, 1),
		spawnedAt:   time.Now(),
	}

	b.owner.attach(c)
	return c
}
