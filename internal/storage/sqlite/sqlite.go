// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// LAYOUT
// ──────
// One table holds the records of every live component. Each row carries
// the owning component's id and the record itself as a JSON blob:
//
//	id    - integer primary key, auto-incremented; gives insertion order
//	owner - id of the component the record belongs to
//	data  - the StudentRecord encoded as JSON
//
// A record's position in its component's list is its rank among that
// owner's rows ordered by id. Replacing a record updates the row in place,
// so its id (and therefore its position) never changes.
//
// The default DSN is ":memory:", so nothing survives a restart. The table
// is also emptied on startup in case a file DSN is configured.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hudairyounas/student-app/internal/config"
	"github.com/hudairyounas/student-app/internal/storage"
	"github.com/hudairyounas/student-app/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite owns the database handle shared by every component's List.
type SQLite struct {
	Db *sql.DB
}

// New opens the database at cfg.Storage.DSN and prepares an empty
// student_records table.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Every new connection to ":memory:" is a brand-new empty database,
	// so the pool is pinned to a single connection.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS student_records (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			owner TEXT    NOT NULL,
			data  TEXT    NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_student_records_owner ON student_records (owner, id)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create index: %w", err)
	}

	if _, err := db.Exec(`DELETE FROM student_records`); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: clear table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Open returns the Record List of the component identified by owner.
// It has the storage.Factory signature.
func (s *SQLite) Open(owner string) (storage.Storage, error) {
	if _, err := s.Db.Exec("DELETE FROM student_records WHERE owner = ?", owner); err != nil {
		return nil, fmt.Errorf("Open: clear owner: %w", err)
	}
	return &List{db: s.Db, owner: owner}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// List is one component's slice of the student_records table.
type List struct {
	db    *sql.DB
	owner string
}

// Append inserts a new row; the new id sorts after every existing row.
func (l *List) Append(rec types.StudentRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("Append: marshal: %w", err)
	}

	stmt, err := l.db.Prepare("INSERT INTO student_records (owner, data) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("Append: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(l.owner, string(data)); err != nil {
		return fmt.Errorf("Append: exec: %w", err)
	}
	return nil
}

// ReplaceAt rewrites the blob of the row at index; the row id stays.
func (l *List) ReplaceAt(index int, rec types.StudentRecord) error {
	id, err := l.rowID(index)
	if err != nil {
		return fmt.Errorf("ReplaceAt: %w", err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("ReplaceAt: marshal: %w", err)
	}

	if _, err := l.db.Exec("UPDATE student_records SET data = ? WHERE id = ?", string(data), id); err != nil {
		return fmt.Errorf("ReplaceAt: exec: %w", err)
	}
	return nil
}

// RemoveAt deletes the row at index. Later rows keep their ids, so their
// rank (position) drops by one.
func (l *List) RemoveAt(index int) error {
	id, err := l.rowID(index)
	if err != nil {
		return fmt.Errorf("RemoveAt: %w", err)
	}

	if _, err := l.db.Exec("DELETE FROM student_records WHERE id = ?", id); err != nil {
		return fmt.Errorf("RemoveAt: exec: %w", err)
	}
	return nil
}

func (l *List) At(index int) (types.StudentRecord, error) {
	if index < 0 {
		return types.StudentRecord{}, fmt.Errorf("At: %w: %d", storage.ErrIndexOutOfRange, index)
	}

	var data string
	err := l.db.QueryRow(
		"SELECT data FROM student_records WHERE owner = ? ORDER BY id LIMIT 1 OFFSET ?",
		l.owner, index,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return types.StudentRecord{}, fmt.Errorf("At: %w: %d", storage.ErrIndexOutOfRange, index)
	}
	if err != nil {
		return types.StudentRecord{}, fmt.Errorf("At: scan: %w", err)
	}

	var rec types.StudentRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return types.StudentRecord{}, fmt.Errorf("At: unmarshal: %w", err)
	}
	return rec, nil
}

// List returns the owner's records ordered by id.
func (l *List) List() ([]types.StudentRecord, error) {
	stmt, err := l.db.Prepare("SELECT data FROM student_records WHERE owner = ? ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("List: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(l.owner)
	if err != nil {
		return nil, fmt.Errorf("List: query: %w", err)
	}
	defer rows.Close()

	records := make([]types.StudentRecord, 0)

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("List: scan row: %w", err)
		}

		var rec types.StudentRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("List: unmarshal: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows iteration: %w", err)
	}

	return records, nil
}

// Close drops every row belonging to this component.
func (l *List) Close() error {
	if _, err := l.db.Exec("DELETE FROM student_records WHERE owner = ?", l.owner); err != nil {
		return fmt.Errorf("Close: exec: %w", err)
	}
	return nil
}

// rowID maps a position to the primary key of the row holding it.
func (l *List) rowID(index int) (int64, error) {
	if index < 0 {
		return 0, fmt.Errorf("%w: %d", storage.ErrIndexOutOfRange, index)
	}

	var id int64
	err := l.db.QueryRow(
		"SELECT id FROM student_records WHERE owner = ? ORDER BY id LIMIT 1 OFFSET ?",
		l.owner, index,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %d", storage.ErrIndexOutOfRange, index)
	}
	if err != nil {
		return 0, fmt.Errorf("row id: %w", err)
	}
	return id, nil
}
