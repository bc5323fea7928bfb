package coroutines

import (
	"context"
	"sync"
	"time"

	"github.com/spiretick/go-coroutines/core"
)

// Runtime is an optional self-driving host for schedulers embedded in
// programs without their own tick loop: it feeds Process and PhysicsProcess
// with wall-clock delta-time at the configured rates, from a single
// goroutine, and owns a background executor for async coroutines.
//
// Hosts that already have an update loop should drive a core.Scheduler
// directly and ignore Runtime.
//
// Once Start has been called, interact with the scheduler's coroutines only
// from inside routines and finish listeners (which run on the tick
// goroutine) or through channel-based APIs such as Coroutine.Finished;
// spawning is safe from any goroutine.
type Runtime struct {
	config    Config
	scheduler *core.Scheduler
	executor  *GoroutineExecutor

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewRuntime creates a runtime from config (zero fields take defaults).
func NewRuntime(config Config) *Runtime {
	config = config.withDefaults()

	schedConfig := core.DefaultSchedulerConfig()
	schedConfig.HistoryCapacity = config.HistoryCapacity

	return &Runtime{
		config:    config,
		scheduler: core.NewScheduler(config.Name, schedConfig),
		executor:  NewGoroutineExecutor(config.Name+"-executor", config.Workers, schedConfig.Logger),
	}
}

// Scheduler returns the runtime's scheduler.
func (r *Runtime) Scheduler() *core.Scheduler { return r.scheduler }

// Executor returns the runtime's background executor.
func (r *Runtime) Executor() *GoroutineExecutor { return r.executor }

// Start launches the executor and the tick loop.
func (r *Runtime) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}
	r.running = true
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	r.executor.Start(context.Background())
	go r.loop(r.stop, r.done)
}

// Stop halts the tick loop, kills all remaining coroutines and stops the
// executor.
func (r *Runtime) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	stop, done := r.stop, r.done
	r.mu.Unlock()

	close(stop)
	<-done

	r.scheduler.Shutdown()
	r.executor.Stop()
}

// loop drives both tick channels from one goroutine so all coroutine
// mutation stays single-threaded. The channels are intentionally not
// ordered relative to each other.
func (r *Runtime) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	processTicker := time.NewTicker(hzInterval(r.config.ProcessHz))
	defer processTicker.Stop()
	physicsTicker := time.NewTicker(hzInterval(r.config.PhysicsHz))
	defer physicsTicker.Stop()

	lastProcess := time.Now()
	lastPhysics := lastProcess

	for {
		select {
		case <-stop:
			return
		case now := <-processTicker.C:
			r.scheduler.Process(now.Sub(lastProcess).Seconds())
			lastProcess = now
		case now := <-physicsTicker.C:
			r.scheduler.PhysicsProcess(now.Sub(lastPhysics).Seconds())
			lastPhysics = now
		}
	}
}

func hzInterval(hz float64) time.Duration {
	return time.Duration(float64(time.Second) / hz)
}
