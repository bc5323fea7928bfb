package core

import (
	"fmt"
	"sync/atomic"
)

// Executor runs background work outside the cooperative scheduler, e.g. a
// worker pool. The engine never blocks on it; it only polls completion.
type Executor interface {
	Post(task func())
}

// ExecutorFunc adapts a closure to Executor.
type ExecutorFunc func(task func())

func (f ExecutorFunc) Post(task func()) { f(task) }

// asyncTask is the single shared-mutable boundary of the engine: the
// background worker publishes the result and then the finished flag; the
// tick thread observes the flag before reading the result, so the atomic
// store/load pair establishes the happens-before edge.
type asyncTask struct {
	finished   atomic.Bool
	result     any
	panicValue any
	panicked   bool
}

// AsyncRoutine bridges a background computation into a Routine: fn is posted
// to exec once, and the routine yields Frames(1) until the work has
// finished, then returns the already-computed result without ever blocking.
// Such a coroutine therefore always spends at least one tick polling, even
// when the background work finishes instantly.
//
// A panic inside fn is captured on the worker and re-raised on the tick
// thread, where the usual fault isolation contains it.
func AsyncRoutine(exec Executor, fn func() any) Routine {
	if exec == nil {
		panic("core: AsyncRoutine requires a non-nil executor")
	}
	if fn == nil {
		panic("core: AsyncRoutine requires a non-nil task")
	}

	return func(flow *Flow) any {
		task := &asyncTask{}
		exec.Post(func() {
			defer func() {
				if r := recover(); r != nil {
					task.panicValue = r
					task.panicked = true
				}
				task.finished.Store(true)
			}()
			task.result = fn()
		})

		for !task.finished.Load() {
			flow.Frames(1)
		}

		if task.panicked {
			panic(fmt.Sprintf("async task panicked: %v", task.panicValue))
		}
		return task.result
	}
}

// AsyncRoutineOf is the typed variant of AsyncRoutine.
func AsyncRoutineOf[T any](exec Executor, fn func() T) Routine {
	if fn == nil {
		panic("core: AsyncRoutineOf requires a non-nil task")
	}
	return AsyncRoutine(exec, func() any { return fn() })
}
