package core

import (
	"reflect"
	"runtime"
	"sync"
)

const defaultHistoryCapacity = 100

// completionHistory is a fixed-capacity ring of CompletionRecords, newest
// first on read.
type completionHistory struct {
	mu    sync.Mutex
	items []CompletionRecord
	head  int
	count int
}

func newCompletionHistory(capacity int) *completionHistory {
	if capacity < 1 {
		capacity = defaultHistoryCapacity
	}
	return &completionHistory{items: make([]CompletionRecord, capacity)}
}

func (h *completionHistory) Add(record CompletionRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return
	}

	h.items[h.head] = record
	h.head = (h.head + 1) % len(h.items)
	if h.count < len(h.items) {
		h.count++
	}
}

func (h *completionHistory) Recent(limit int) []CompletionRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 {
		return nil
	}

	if limit <= 0 || limit > h.count {
		limit = h.count
	}

	out := make([]CompletionRecord, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (h.head - 1 - i + len(h.items)) % len(h.items)
		out = append(out, h.items[idx])
	}
	return out
}

func (h *completionHistory) Last() (CompletionRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 {
		return CompletionRecord{}, false
	}

	idx := (h.head - 1 + len(h.items)) % len(h.items)
	return h.items[idx], true
}

// resolveRoutineName derives a display name for history and fault reports
// from the routine's function symbol, unless an explicit name was configured.
func resolveRoutineName(fn Routine, explicit string) string {
	if explicit != "" {
		return explicit
	}

	if fn == nil {
		return "anonymous"
	}

	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return "anonymous"
	}

	pc := v.Pointer()
	if pc == 0 {
		return "anonymous"
	}

	f := runtime.FuncForPC(pc)
	if f == nil || f.Name() == "" {
		return "anonymous"
	}
	return f.Name()
}
