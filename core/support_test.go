package core

import (
	"sync"
	"time"
)

// newTestScheduler returns a quiet scheduler with a recording fault handler.
func newTestScheduler() (*Scheduler, *recordingFaultHandler) {
	faults := &recordingFaultHandler{}
	return NewScheduler("test", &SchedulerConfig{
		Logger:       NewNoOpLogger(),
		FaultHandler: faults,
	}), faults
}

type recordedFault struct {
	id         CoroutineID
	name       string
	panicValue any
}

type recordingFaultHandler struct {
	mu     sync.Mutex
	faults []recordedFault
}

func (h *recordingFaultHandler) HandleFault(id CoroutineID, name string, panicValue any, _ []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.faults = append(h.faults, recordedFault{id: id, name: name, panicValue: panicValue})
}

func (h *recordingFaultHandler) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.faults)
}

func (h *recordingFaultHandler) Last() (recordedFault, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.faults) == 0 {
		return recordedFault{}, false
	}
	return h.faults[len(h.faults)-1], true
}

// recordingLogger captures error messages for assertions.
type recordingLogger struct {
	NoOpLogger
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Error(msg string, _ ...Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) ErrorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

// waitForCondition polls cond until it holds or the deadline passes.
// Used only where a routine goroutine or executor worker needs time to act.
func waitForCondition(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}
