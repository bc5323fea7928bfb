package core

import "time"

// CompletionRecord captures the termination of a single coroutine.
type CompletionRecord struct {
	ID       CoroutineID
	Name     string
	PollMode PollMode
	Outcome  State
	Result   any

	StartedAt  time.Time
	FinishedAt time.Time
	Ticks      uint64
}

// SchedulerStats represents runtime observability state for a scheduler.
type SchedulerStats struct {
	Name       string
	Attached   int
	Paused     int
	HostPaused bool

	Completed uint64
	Killed    uint64
	Faulted   uint64
}
