// Package memory is the slice-backed storage.Storage implementation.
package memory

import (
	"fmt"

	"github.com/hudairyounas/student-app/internal/storage"
	"github.com/hudairyounas/student-app/internal/types"
)

// Memory keeps records in a Go slice.
type Memory struct {
	records []types.StudentRecord
}

// New returns an empty list.
func New() *Memory {
	return &Memory{records: make([]types.StudentRecord, 0)}
}

// Factory satisfies storage.Factory; owner is not needed since every
// Memory is already private to its component.
func Factory(string) (storage.Storage, error) {
	return New(), nil
}

func (m *Memory) Append(rec types.StudentRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *Memory) ReplaceAt(index int, rec types.StudentRecord) error {
	if err := m.check(index); err != nil {
		return fmt.Errorf("ReplaceAt: %w", err)
	}
	m.records[index] = rec
	return nil
}

func (m *Memory) RemoveAt(index int) error {
	if err := m.check(index); err != nil {
		return fmt.Errorf("RemoveAt: %w", err)
	}
	m.records = append(m.records[:index], m.records[index+1:]...)
	return nil
}

func (m *Memory) At(index int) (types.StudentRecord, error) {
	if err := m.check(index); err != nil {
		return types.StudentRecord{}, fmt.Errorf("At: %w", err)
	}
	return m.records[index], nil
}

// List returns a copy so callers cannot reach into the backing array.
func (m *Memory) List() ([]types.StudentRecord, error) {
	out := make([]types.StudentRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *Memory) Close() error {
	m.records = nil
	return nil
}

func (m *Memory) check(index int) error {
	if index < 0 || index >= len(m.records) {
		return fmt.Errorf("%w: %d (len %d)", storage.ErrIndexOutOfRange, index, len(m.records))
	}
	return nil
}
