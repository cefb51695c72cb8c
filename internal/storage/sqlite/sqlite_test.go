package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hudairyounas/student-app/internal/config"
	"github.com/hudairyounas/student-app/internal/storage/storagetest"
	"github.com/hudairyounas/student-app/internal/types"
)

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := New(&config.Config{Storage: config.Storage{Driver: config.DriverSQLite, DSN: ":memory:"}})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLite(t *testing.T) {
	storagetest.Run(t, newTestDB(t).Open)
}

func TestRecordRoundTripsThroughBlob(t *testing.T) {
	list, err := newTestDB(t).Open("owner")
	require.NoError(t, err)

	rec := types.StudentRecord{
		FirstName: "Ana",
		LastName:  "Lee",
		Gender:    types.GenderFemale,
		Email:     "ana@x.com",
		Phone:     "555-1000",
		Address:   types.Address{City: "Metro", Province: "Central", Zip: "00001"},
		Password:  "secret1",
		About:     "line one\nline \"two\"",
	}
	require.NoError(t, list.Append(rec))

	got, err := list.At(0)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestOpenStartsEmpty(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Db.Exec("INSERT INTO student_records (owner, data) VALUES ('stale', '{}')")
	require.NoError(t, err)

	list, err := db.Open("stale")
	require.NoError(t, err)
	records, err := list.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}
