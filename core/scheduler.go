package core

import (
	"sync"
	"time"
)

// =============================================================================
// SchedulerConfig
// =============================================================================

// SchedulerConfig holds configuration options for a Scheduler.
// All fields are optional; zero values select the defaults.
type SchedulerConfig struct {
	// Logger receives diagnostics (listener failures, cap reports).
	// Defaults to DefaultLogger.
	Logger Logger

	// FaultHandler is called when a routine panics during a resume step.
	// Defaults to a DefaultFaultHandler reporting through Logger.
	FaultHandler FaultHandler

	// HistoryCapacity sizes the completion-history ring buffer.
	// Defaults to 100.
	HistoryCapacity int
}

// DefaultSchedulerConfig returns a config with default handlers.
func DefaultSchedulerConfig() *SchedulerConfig {
	logger := NewDefaultLogger()
	return &SchedulerConfig{
		Logger:          logger,
		FaultHandler:    NewDefaultFaultHandler(logger),
		HistoryCapacity: defaultHistoryCapacity,
	}
}

// =============================================================================
// Scheduler
// =============================================================================

// Scheduler is the owner container coroutines attach to, and the entry point
// the host's tick loop drives. The host calls Process and PhysicsProcess
// once per frame each, from a single goroutine; the scheduler dispatches the
// tick to every attached coroutine listening on that channel, in attach
// order.
//
// The scheduler makes no assumption about the ordering of the two channels
// relative to each other.
type Scheduler struct {
	name         string
	logger       Logger
	faultHandler FaultHandler

	mu         sync.Mutex
	coroutines []*Coroutine
	hostPaused bool

	completed uint64
	killed    uint64
	faulted   uint64

	history *completionHistory
}

// NewScheduler creates a scheduler. config may be nil for defaults.
func NewScheduler(name string, config *SchedulerConfig) *Scheduler {
	defaults := DefaultSchedulerConfig()
	if config == nil {
		config = defaults
	}

	logger := config.Logger
	if logger == nil {
		logger = defaults.Logger
	}
	faultHandler := config.FaultHandler
	if faultHandler == nil {
		faultHandler = NewDefaultFaultHandler(logger)
	}
	capacity := config.HistoryCapacity
	if capacity <= 0 {
		capacity = defaultHistoryCapacity
	}

	return &Scheduler{
		name:         name,
		logger:       logger,
		faultHandler: faultHandler,
		history:      newCompletionHistory(capacity),
	}
}

// Name returns the scheduler's name.
func (s *Scheduler) Name() string { return s.name }

// Logger returns the scheduler's diagnostic sink.
func (s *Scheduler) Logger() Logger { return s.logger }

// Process ticks every attached coroutine listening on the process channel.
// deltaTime is the elapsed time the host attributes to this tick, in seconds.
func (s *Scheduler) Process(deltaTime float64) {
	s.tick(PollProcess, deltaTime)
}

// PhysicsProcess ticks every attached coroutine listening on the physics
// (fixed-step) channel.
func (s *Scheduler) PhysicsProcess(deltaTime float64) {
	s.tick(PollPhysics, deltaTime)
}

func (s *Scheduler) tick(channel PollMode, deltaTime float64) {
	// Snapshot so listeners may spawn or kill coroutines mid-tick without
	// invalidating the iteration. Newly attached coroutines start on the
	// next matching tick.
	s.mu.Lock()
	batch := make([]*Coroutine, len(s.coroutines))
	copy(batch, s.coroutines)
	hostPaused := s.hostPaused
	s.mu.Unlock()

	for _, c := range batch {
		if c.pollMode != channel || c.paused || !c.IsRunning() {
			continue
		}
		if !processAllowed(c.processMode, hostPaused) {
			continue
		}
		c.runTick(deltaTime)
	}
}

func processAllowed(mode ProcessMode, hostPaused bool) bool {
	switch mode {
	case ProcessAlways:
		return true
	case ProcessDisabled:
		return false
	case ProcessWhenPaused:
		return hostPaused
	default: // ProcessInherit, ProcessPausable
		return !hostPaused
	}
}

// SetPaused sets the host-level pause flag. Coroutines react according to
// their ProcessMode.
func (s *Scheduler) SetPaused(paused bool) {
	s.mu.Lock()
	s.hostPaused = paused
	s.mu.Unlock()
}

// IsPaused reports the host-level pause flag.
func (s *Scheduler) IsPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hostPaused
}

// AttachedCount returns the number of live coroutines.
func (s *Scheduler) AttachedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.coroutines)
}

// Shutdown kills every attached coroutine. Finish listeners are not invoked.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	batch := make([]*Coroutine, len(s.coroutines))
	copy(batch, s.coroutines)
	s.mu.Unlock()

	for _, c := range batch {
		c.Kill()
	}
}

// Stats returns a snapshot of the scheduler's observable state.
func (s *Scheduler) Stats() SchedulerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	paused := 0
	for _, c := range s.coroutines {
		if c.paused {
			paused++
		}
	}

	return SchedulerStats{
		Name:       s.name,
		Attached:   len(s.coroutines),
		Paused:     paused,
		HostPaused: s.hostPaused,
		Completed:  s.completed,
		Killed:     s.killed,
		Faulted:    s.faulted,
	}
}

// History returns up to limit of the most recent completion records, newest
// first. limit <= 0 returns all retained records.
func (s *Scheduler) History(limit int) []CompletionRecord {
	return s.history.Recent(limit)
}

// LastCompletion returns the most recent completion record, if any.
func (s *Scheduler) LastCompletion() (CompletionRecord, bool) {
	return s.history.Last()
}

// attach registers a freshly spawned coroutine for tick dispatch.
func (s *Scheduler) attach(c *Coroutine) {
	s.mu.Lock()
	s.coroutines = append(s.coroutines, c)
	s.mu.Unlock()
}

// onTerminated records the outcome and detaches the coroutine.
func (s *Scheduler) onTerminated(c *Coroutine, outcome State, result any) {
	s.mu.Lock()
	for i, attached := range s.coroutines {
		if attached == c {
			s.coroutines = append(s.coroutines[:i], s.coroutines[i+1:]...)
			break
		}
	}
	switch outcome {
	case StateCompleted:
		s.completed++
	case StateKilled:
		s.killed++
	case StateFaulted:
		s.faulted++
	}
	s.mu.Unlock()

	s.history.Add(CompletionRecord{
		ID:         c.id,
		Name:       c.name,
		PollMode:   c.pollMode,
		Outcome:    outcome,
		Result:     result,
		StartedAt:  c.spawnedAt,
		FinishedAt: time.Now(),
		Ticks:      c.ticks,
	})
}
