// Package form holds the form's state: the draft being typed, the record
// position being edited (if any) and the errors from the last submit.
//
// State is a plain value. Every function here takes a State and returns the
// next State without touching the old one, reducer style:
//
//	s := form.New()
//	s = form.SetField(s, types.PathEmail, "ana@x.com")
//	s = form.LoadForEdit(s, rec, 2)
//	s = form.Reset(s)
package form

import "github.com/hudairyounas/student-app/internal/types"

// Mode is derived from the edit index and drives the submit label.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// State is the Form State Holder.
type State struct {
	Draft  types.StudentRecord
	Errors types.ErrorMap

	editIndex int
	editing   bool
}

// New returns the all-empty state a component mounts with.
func New() State {
	return State{}
}

// EditIndex returns the remembered record position and whether the form
// is in edit mode.
func (s State) EditIndex() (int, bool) {
	return s.editIndex, s.editing
}

// Mode reports create vs edit.
func (s State) Mode() Mode {
	if s.editing {
		return ModeEdit
	}
	return ModeCreate
}

// SetField replaces exactly one field of the draft.
func SetField(s State, path types.FieldPath, value string) State {
	s.Draft = s.Draft.With(path, value)
	return s
}

// LoadForEdit puts a copy of rec into the draft and remembers index as the
// target of the next successful submit. Errors left over from a previous
// draft are dropped.
func LoadForEdit(s State, rec types.StudentRecord, index int) State {
	s.Draft = rec
	s.Errors = nil
	s.editIndex = index
	s.editing = true
	return s
}

// Reset restores the empty draft and leaves edit mode.
func Reset(s State) State {
	s.Draft = types.StudentRecord{}
	s.editIndex = 0
	s.editing = false
	return s
}

// ClearErrors drops the ErrorMap; done at the start of every submit.
func ClearErrors(s State) State {
	s.Errors = nil
	return s
}

// WithErrors stores the ErrorMap from a failed submit.
func WithErrors(s State, errs types.ErrorMap) State {
	s.Errors = errs
	return s
}

// RecordRemoved keeps the edit target pointing at the same record after
// the record at index was deleted from the list. Deleting the record being
// edited leaves edit mode and clears the draft.
func RecordRemoved(s State, index int) State {
	if !s.editing {
		return s
	}
	switch {
	case index == s.editIndex:
		return Reset(s)
	case index < s.editIndex:
		s.editIndex--
	}
	return s
}
