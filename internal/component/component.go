// Package component wires the form state, the validator and a Record List
// into one student-management component instance.
//
// EVENT MODEL
// ───────────
// A component handles one event at a time: every exported method takes the
// component's mutex for its whole duration, including the wait on
// validation during Submit. Two browser tabs sharing a session therefore
// see their events applied in some serial order, never interleaved.
//
// Submit only touches the Record List after validation has resolved. If the
// caller's context ends first, Submit returns ctx.Err() and nothing in the
// list or draft changes; only the ErrorMap is cleared, as it is at the
// start of every submit attempt.
package component

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hudairyounas/student-app/internal/form"
	"github.com/hudairyounas/student-app/internal/metrics"
	"github.com/hudairyounas/student-app/internal/storage"
	"github.com/hudairyounas/student-app/internal/types"
	"github.com/hudairyounas/student-app/internal/validation"
	"github.com/hudairyounas/student-app/internal/view"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("component closed")

// Outcome describes what a Submit did.
type Outcome struct {
	// Accepted is true when the draft passed validation and was stored.
	Accepted bool

	// Mode is the mode the submit ran in.
	Mode form.Mode

	// Index is the position the record was stored at (Accepted only).
	Index int

	// Errors holds every failing field (not Accepted only).
	Errors types.ErrorMap
}

// Component is one student-management form with its list.
type Component struct {
	mu sync.Mutex

	id        string
	state     form.State
	validator *validation.Validator
	records   storage.Storage
	log       *slog.Logger
	closed    bool
}

// New returns a mounted component with an empty draft. records must be
// empty and is owned by the component from now on.
func New(id string, records storage.Storage, v *validation.Validator, log *slog.Logger) *Component {
	if log == nil {
		log = slog.Default()
	}
	return &Component{
		id:        id,
		state:     form.New(),
		validator: v,
		records:   records,
		log:       log.With(slog.String("component", id)),
	}
}

// ID returns the id the component was created with.
func (c *Component) ID() string { return c.id }

// State returns a snapshot of the form state.
func (c *Component) State() form.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetField applies one input change to the draft.
func (c *Component) SetField(path types.FieldPath, value string) error {
	if !path.Valid() {
		return fmt.Errorf("SetField: %w: %s", types.ErrUnknownField, path)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	c.state = form.SetField(c.state, path, value)
	return nil
}

// Submit validates the draft and, if it passes, appends it (create mode)
// or writes it over the record being edited (edit mode), then resets the
// form. A failed validation is reported through Outcome, not the error.
func (c *Component) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return Outcome{}, ErrClosed
	}

	c.state = form.ClearErrors(c.state)
	draft := c.state.Draft
	mode := c.state.Mode()

	err := c.validator.Validate(ctx, draft)

	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		errs := verrs.ErrorMap()
		c.state = form.WithErrors(c.state, errs)

		for _, p := range errs.Paths() {
			metrics.ObserveFieldError(p.String())
		}
		metrics.ObserveSubmit(mode.String(), false)
		c.log.Info("submission rejected",
			slog.String("mode", mode.String()),
			slog.Int("errors", len(errs)))

		return Outcome{Mode: mode, Errors: errs.Clone()}, nil

	case err != nil:
		c.log.Info("submission abandoned", slog.String("error", err.Error()))
		return Outcome{}, err
	}

	index, err := c.store(draft)
	if err != nil {
		c.log.Error("failed to store student", slog.String("error", err.Error()))
		return Outcome{}, fmt.Errorf("Submit: %w", err)
	}

	c.state = form.Reset(c.state)

	metrics.ObserveSubmit(mode.String(), true)
	c.log.Info("student stored",
		slog.String("mode", mode.String()),
		slog.Int("index", index))

	return Outcome{Accepted: true, Mode: mode, Index: index}, nil
}

func (c *Component) store(rec types.StudentRecord) (int, error) {
	if index, ok := c.state.EditIndex(); ok {
		if err := c.records.ReplaceAt(index, rec); err != nil {
			return 0, err
		}
		return index, nil
	}

	if err := c.records.Append(rec); err != nil {
		return 0, err
	}
	list, err := c.records.List()
	if err != nil {
		return 0, err
	}
	return len(list) - 1, nil
}

// Edit loads the record at index into the draft and enters edit mode.
func (c *Component) Edit(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	rec, err := c.records.At(index)
	if err != nil {
		return fmt.Errorf("Edit: %w", err)
	}

	c.state = form.LoadForEdit(c.state, rec, index)
	c.log.Debug("editing student", slog.Int("index", index))
	return nil
}

// Delete removes the record at index. If that record was being edited the
// form leaves edit mode; if an earlier one was removed the edit target
// follows its record down one position.
func (c *Component) Delete(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	if err := c.records.RemoveAt(index); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	c.state = form.RecordRemoved(c.state, index)
	c.log.Info("student deleted", slog.Int("index", index))
	return nil
}

// Reset empties the draft and leaves edit mode without touching the list.
func (c *Component) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	c.state = form.Reset(c.state)
	return nil
}

// Records returns the accepted records in order.
func (c *Component) Records() ([]types.StudentRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}

	return c.records.List()
}

// View renders the current page.
func (c *Component) View() (view.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return view.Page{}, ErrClosed
	}

	records, err := c.records.List()
	if err != nil {
		return view.Page{}, fmt.Errorf("View: %w", err)
	}
	return view.Render(c.state, records), nil
}

// Close tears the component down and discards its records. A Submit
// waiting on the mutex when Close runs returns ErrClosed.
func (c *Component) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}

	c.closed = true
	return c.records.Close()
}
