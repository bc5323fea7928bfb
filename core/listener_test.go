package core

import (
	"errors"
	"testing"
)

// TestTypedListenerConversionFailure verifies fallible conversion delivery
// Given: A typed int listener, a failing callable and a plain listener on
// one coroutine completing with a string
// When: The coroutine finishes
// Then: The mismatch and the callable error are logged, the plain listener
// still receives the value, and nothing propagates
func TestTypedListenerConversionFailure(t *testing.T) {
	// Arrange
	logger := &recordingLogger{}
	sched := NewScheduler("test", &SchedulerConfig{Logger: logger})
	var typedGot []int
	var plainGot []any
	b := NewBuilder(sched, func(flow *Flow) any { return "not-an-int" })
	OnFinishAs(b, func(v int) { typedGot = append(typedGot, v) })
	b.OnFinishCallable(CallableFunc(func(args ...any) error {
		return errors.New("callable rejected the value")
	}))
	b.OnFinish(func(result any) { plainGot = append(plainGot, result) })
	b.Spawn()

	// Act
	sched.Process(0)

	// Assert
	if len(typedGot) != 0 {
		t.Fatal("typed listener must not be invoked on conversion failure")
	}
	if len(plainGot) != 1 || plainGot[0] != "not-an-int" {
		t.Fatalf("plain listener received %v, want the completion value", plainGot)
	}
	if logger.ErrorCount() != 2 {
		t.Fatalf("logged %d errors, want 2 (conversion + callable)", logger.ErrorCount())
	}
}

// TestTypedListenerDelivery verifies typed delivery on a matching value
// Given: A typed int listener on a coroutine returning 7
// When: The coroutine finishes
// Then: The listener receives 7
func TestTypedListenerDelivery(t *testing.T) {
	// Arrange
	sched, _ := newTestScheduler()
	var got []int
	b := NewBuilder(sched, func(flow *Flow) any { return 7 })
	OnFinishAs(b, func(v int) { got = append(got, v) })
	b.Spawn()

	// Act
	sched.Process(0)

	// Assert
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("typed listener received %v, want exactly one 7", got)
	}
}

// TestPanickingListenerDoesNotBlockOthers verifies dispatcher containment
// Given: A panicking listener registered before a healthy one
// When: The coroutine finishes
// Then: The panic is logged and the healthy listener still runs
func TestPanickingListenerDoesNotBlockOthers(t *testing.T) {
	// Arrange
	logger := &recordingLogger{}
	sched := NewScheduler("test", &SchedulerConfig{Logger: logger})
	invoked := 0
	NewBuilder(sched, func(flow *Flow) any { return nil }).
		OnFinish(func(any) { panic("bad listener") }).
		OnFinish(func(any) { invoked++ }).
		Spawn()

	// Act
	sched.Process(0)

	// Assert
	if invoked != 1 {
		t.Fatal("a panicking listener must not block the listeners after it")
	}
	if logger.ErrorCount() != 1 {
		t.Fatalf("logged %d errors, want 1", logger.ErrorCount())
	}
}

// TestCallableListenerReceivesValue verifies the external-callable path
// Given: A callable listener
// When: The coroutine finishes with a value
// Then: The callable is invoked once with that value as its only argument
func TestCallableListenerReceivesValue(t *testing.T) {
	// Arrange
	sched, _ := newTestScheduler()
	var calls [][]any
	NewBuilder(sched, func(flow *Flow) any { return 3.5 }).
		OnFinishCallable(CallableFunc(func(args ...any) error {
			calls = append(calls, args)
			return nil
		})).
		Spawn()

	// Act
	sched.Process(0)

	// Assert
	if len(calls) != 1 || len(calls[0]) != 1 || calls[0][0] != 3.5 {
		t.Fatalf("callable invoked with %v, want one call with [3.5]", calls)
	}
}
