// Package storage defines the Storage interface, the Record List contract
// that any backend must satisfy to hold a component's accepted students.
//
// WHY AN INTERFACE?
// ─────────────────
// The component should not know or care where its records live. By
// depending only on this interface:
//
//   - the slice backend (storage/memory) and the sqlite backend
//     (storage/sqlite) are interchangeable from config;
//
//   - tests can exercise the component against either one.
//
// Records are addressed by POSITION, not by id: position 0 is the oldest
// record still in the list. Removing a record shifts every later record
// down by one.
package storage

import (
	"errors"

	"github.com/hudairyounas/student-app/internal/types"
)

// ErrIndexOutOfRange is returned when a position does not exist.
var ErrIndexOutOfRange = errors.New("record index out of range")

// Storage is one component's ordered Record List.
// Implementations are not required to be safe for concurrent use; the
// component serialises every call.
type Storage interface {
	// Append adds rec at the end of the list.
	Append(rec types.StudentRecord) error

	// ReplaceAt overwrites the record at index, keeping its position.
	ReplaceAt(index int, rec types.StudentRecord) error

	// RemoveAt deletes the record at index and closes the gap.
	RemoveAt(index int) error

	// At returns a copy of the record at index.
	At(index int) (types.StudentRecord, error)

	// List returns every record in order.
	// Returns an empty slice (not nil) if there are no records.
	List() ([]types.StudentRecord, error)

	// Close releases the list; its records are discarded.
	Close() error
}

// Factory opens a fresh, empty Record List for the component identified
// by owner.
type Factory func(owner string) (Storage, error)
