package core

// =============================================================================
// FaultHandler: containment reporting for routine panics
// =============================================================================

// FaultHandler is called when a routine panics during a resume step.
//
// The panic never propagates past the coroutine that raised it: the faulted
// coroutine is killed (its finish listeners are not invoked) and every other
// coroutine scheduled in the same tick advances normally. The handler exists
// so the host can surface the fault on its diagnostic channel.
type FaultHandler interface {
	// HandleFault is called with the identity of the faulted coroutine, the
	// recovered panic value and the stack trace of the routine goroutine.
	HandleFault(id CoroutineID, name string, panicValue any, stackTrace []byte)
}

// DefaultFaultHandler reports faults through a Logger.
type DefaultFaultHandler struct {
	Logger Logger
}

// NewDefaultFaultHandler creates a fault handler reporting to the given
// logger, or to a DefaultLogger when logger is nil.
func NewDefaultFaultHandler(logger Logger) *DefaultFaultHandler {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &DefaultFaultHandler{Logger: logger}
}

func (h *DefaultFaultHandler) HandleFault(id CoroutineID, name string, panicValue any, stackTrace []byte) {
	h.Logger.Error("coroutine routine panicked",
		F("coroutine", id.String()),
		F("name", name),
		F("panic", panicValue),
		F("stack", string(stackTrace)),
	)
}

// FaultHandlerFunc adapts a closure to FaultHandler.
type FaultHandlerFunc func(id CoroutineID, name string, panicValue any, stackTrace []byte)

func (f FaultHandlerFunc) HandleFault(id CoroutineID, name string, panicValue any, stackTrace []byte) {
	f(id, name, panicValue, stackTrace)
}
