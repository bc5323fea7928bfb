package core

import "errors"

var (
	// ErrIterationCap is returned by RunToCompletion when the routine did not
	// finish within the iteration cap. The coroutine is force-terminated.
	ErrIterationCap = errors.New("core: run to completion exceeded the iteration cap")

	// ErrNotRunning is returned by RunToCompletion on a terminal coroutine.
	ErrNotRunning = errors.New("core: coroutine is not running")
)
