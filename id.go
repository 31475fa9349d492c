package siemesh

import "sync/atomic"

// ID identifies a mesh entity. Ids are unique across every entity kind and
// every mesh instance in the process, so an id never means different things
// in two tables.
type ID int64

// NoID marks an unset reference (no twin yet, no owning face, ...).
const NoID ID = 0

var idCounter atomic.Int64

// GenerateID returns the next process-wide id. Ids start at 1 so the zero
// value stays free for NoID.
func GenerateID() ID {
	return ID(idCounter.Add(1))
}

// ResetIDs rewinds the generator. Only for tests that assert exact ids.
func ResetIDs() {
	idCounter.Store(0)
}
