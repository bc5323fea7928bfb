package coroutines

import (
	"context"
	"sync"

	"github.com/spiretick/go-coroutines/core"
)

// GoroutineExecutor manages a set of worker goroutines draining a task
// queue. It is the default core.Executor behind async-bridged coroutines:
// the coroutine engine itself never blocks on it, it only polls the bridged
// task's finished flag once per tick.
type GoroutineExecutor struct {
	id        string
	workers   int
	tasks     chan func()
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	running   bool
	runningMu sync.RWMutex
	logger    core.Logger
}

const defaultExecutorQueueSize = 256

// NewGoroutineExecutor creates an executor with the given worker count.
// logger may be nil for the default logger.
func NewGoroutineExecutor(id string, workers int, logger core.Logger) *GoroutineExecutor {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = core.NewDefaultLogger()
	}
	return &GoroutineExecutor{
		id:      id,
		workers: workers,
		tasks:   make(chan func(), defaultExecutorQueueSize),
		logger:  logger,
	}
}

// Start starts all worker goroutines.
func (e *GoroutineExecutor) Start(ctx context.Context) {
	e.runningMu.Lock()
	defer e.runningMu.Unlock()

	if e.running {
		return // Already running
	}

	e.ctx, e.cancel = context.WithCancel(ctx)
	e.running = true

	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.workerLoop(i, e.ctx)
	}
}

// Stop stops the executor. Queued tasks that have not started are dropped.
func (e *GoroutineExecutor) Stop() {
	e.runningMu.Lock()
	if !e.running {
		e.runningMu.Unlock()
		return
	}
	e.running = false
	e.runningMu.Unlock()

	e.cancel()
	e.wg.Wait()
}

// ID returns the ID of the executor.
func (e *GoroutineExecutor) ID() string {
	return e.id
}

// IsRunning returns whether the executor is running.
func (e *GoroutineExecutor) IsRunning() bool {
	e.runningMu.RLock()
	defer e.runningMu.RUnlock()
	return e.running
}

// WorkerCount returns the number of workers.
func (e *GoroutineExecutor) WorkerCount() int {
	return e.workers
}

// QueuedTaskCount returns the number of tasks waiting for a worker.
func (e *GoroutineExecutor) QueuedTaskCount() int {
	return len(e.tasks)
}

// Post enqueues a task for background execution. Posting to a stopped
// executor drops the task with a warning; an async-bridged coroutine whose
// task was dropped must be killed by the host, it will never finish.
func (e *GoroutineExecutor) Post(task func()) {
	e.runningMu.RLock()
	running := e.running
	ctx := e.ctx
	e.runningMu.RUnlock()

	if !running {
		e.logger.Warn("task posted to stopped executor, dropping", core.F("executor", e.id))
		return
	}

	select {
	case e.tasks <- task:
	case <-ctx.Done():
		e.logger.Warn("executor stopped while enqueueing, dropping task", core.F("executor", e.id))
	}
}

// workerLoop is the main loop for each worker.
func (e *GoroutineExecutor) workerLoop(id int, ctx context.Context) {
	defer e.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task := <-e.tasks:
			// Execute task and capture panic so one bad task cannot take
			// the worker down. Async-bridged tasks carry their own panic
			// capture; this guard covers tasks posted directly.
			func() {
				defer func() {
					if r := recover(); r != nil {
						e.logger.Error("executor task panicked",
							core.F("executor", e.id),
							core.F("worker", id),
							core.F("panic", r),
						)
					}
				}()
				task()
			}()
		}
	}
}

// =============================================================================
// Global Executor Helper (Singleton)
// =============================================================================

var (
	globalExecutor *GoroutineExecutor
	globalMu       sync.Mutex
)

// InitGlobalExecutor initializes the global executor with the specified
// number of workers and starts it immediately.
func InitGlobalExecutor(workers int) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalExecutor != nil {
		return // Already initialized
	}

	globalExecutor = NewGoroutineExecutor("global-executor", workers, nil)
	globalExecutor.Start(context.Background())
}

// GetGlobalExecutor returns the global executor instance.
// It panics if InitGlobalExecutor has not been called.
func GetGlobalExecutor() *GoroutineExecutor {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalExecutor == nil {
		panic("global executor not initialized. Call InitGlobalExecutor() first.")
	}
	return globalExecutor
}

// ShutdownGlobalExecutor stops the global executor.
func ShutdownGlobalExecutor() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalExecutor != nil {
		globalExecutor.Stop()
		globalExecutor = nil
	}
}
