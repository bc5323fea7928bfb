package core

import "fmt"

// =============================================================================
// Finish listeners
// =============================================================================

// Callable is an opaque external callable, typically a reference across a
// scripting or FFI boundary. The engine only ever invokes it with the
// coroutine's completion value as the single argument.
type Callable interface {
	Call(args ...any) error
}

// CallableFunc adapts a closure to Callable.
type CallableFunc func(args ...any) error

func (f CallableFunc) Call(args ...any) error { return f(args...) }

// FinishListener receives a coroutine's completion value. Each listener is
// invoked at most once. A returned error is logged by the dispatcher and
// never stops the remaining listeners.
type FinishListener interface {
	Deliver(result any) error
}

type closureListener struct {
	f func(result any)
}

func (l closureListener) Deliver(result any) error {
	l.f(result)
	return nil
}

// ListenerFunc wraps a plain closure as a FinishListener.
func ListenerFunc(f func(result any)) FinishListener {
	if f == nil {
		panic("core: ListenerFunc requires a non-nil closure")
	}
	return closureListener{f: f}
}

type callableListener struct {
	c Callable
}

func (l callableListener) Deliver(result any) error {
	return l.c.Call(result)
}

// ListenerCallable wraps an external Callable as a FinishListener.
func ListenerCallable(c Callable) FinishListener {
	if c == nil {
		panic("core: ListenerCallable requires a non-nil callable")
	}
	return callableListener{c: c}
}

type typedListener[T any] struct {
	f func(T)
}

func (l typedListener[T]) Deliver(result any) error {
	v, ok := result.(T)
	if !ok {
		var want T
		return fmt.Errorf("core: completion value %T cannot be delivered as %T", result, want)
	}
	l.f(v)
	return nil
}

// ListenerAs wraps a typed closure as a FinishListener. The completion value
// is converted to T before delivery; a conversion failure is reported to the
// dispatcher as an error and the closure is not invoked.
func ListenerAs[T any](f func(T)) FinishListener {
	if f == nil {
		panic("core: ListenerAs requires a non-nil closure")
	}
	return typedListener[T]{f: f}
}
