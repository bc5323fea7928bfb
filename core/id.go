package core

import "github.com/google/uuid"

// CoroutineID identifies a coroutine in diagnostics and completion history.
// Coroutine handles compare by pointer identity; the ID exists so that logs
// and history records stay meaningful after the handle is gone.
type CoroutineID struct {
	value uuid.UUID
}

// GenerateCoroutineID returns a new unique CoroutineID.
func GenerateCoroutineID() CoroutineID {
	return CoroutineID{value: uuid.New()}
}

// IsZero reports whether the ID is the zero value.
func (id CoroutineID) IsZero() bool {
	return id.value == uuid.Nil
}

func (id CoroutineID) String() string {
	return id.value.String()
}
