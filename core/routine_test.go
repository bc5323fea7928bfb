package core

import (
	"sync/atomic"
	"testing"
	"time"
)

// TestKill_RunsDeferredCleanup verifies routine unwinding on kill
// Given: A routine holding a deferred cleanup
// When: The coroutine is killed mid-suspension
// Then: The routine goroutine unwinds and the deferred cleanup runs
func TestKill_RunsDeferredCleanup(t *testing.T) {
	// Arrange
	sched, _ := newTestScheduler()
	var cleaned atomic.Bool
	c := NewBuilder(sched, func(flow *Flow) any {
		defer cleaned.Store(true)
		flow.Frames(1000)
		return nil
	}).Spawn()
	sched.Process(0)

	// Act
	c.Kill()

	// Assert - the unwind happens on the routine goroutine
	if !waitForCondition(time.Second, cleaned.Load) {
		t.Fatal("deferred cleanup should run when the coroutine is killed")
	}
}

// TestKill_BeforeFirstResume verifies killing an unstarted routine
// Given: A spawned coroutine that was never ticked
// When: Kill is called
// Then: The routine body never runs
func TestKill_BeforeFirstResume(t *testing.T) {
	// Arrange
	sched, _ := newTestScheduler()
	var ran atomic.Bool
	c := NewBuilder(sched, func(flow *Flow) any {
		ran.Store(true)
		return nil
	}).Spawn()

	// Act
	c.Kill()
	sched.Process(0)

	// Assert
	if ran.Load() {
		t.Fatal("a killed coroutine's routine body must not run")
	}
	if c.State() != StateKilled {
		t.Fatalf("state = %v, want killed", c.State())
	}
}

// TestRoutineLockstep verifies the routine only runs between resume points
// Given: A routine that records progress markers around its suspensions
// When: Ticks are driven one at a time
// Then: Each tick observes exactly the progress that tick unlocked
func TestRoutineLockstep(t *testing.T) {
	// Arrange
	sched, _ := newTestScheduler()
	var stage int
	NewBuilder(sched, func(flow *Flow) any {
		stage = 1
		flow.Frames(1)
		stage = 2
		flow.Frames(1)
		stage = 3
		return nil
	}).Spawn()

	// Act and Assert - the driver blocks until the routine parks, so stage
	// is stable between ticks without synchronization
	if stage != 0 {
		t.Fatalf("stage before first tick = %d, want 0", stage)
	}
	sched.Process(0)
	if stage != 1 {
		t.Fatalf("stage after tick 1 = %d, want 1", stage)
	}
	sched.Process(0)
	if stage != 2 {
		t.Fatalf("stage after tick 2 = %d, want 2", stage)
	}
	sched.Process(0)
	if stage != 3 {
		t.Fatalf("stage after tick 3 = %d, want 3", stage)
	}
}
