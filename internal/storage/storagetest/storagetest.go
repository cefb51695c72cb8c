// Package storagetest holds the behaviour every storage.Storage backend
// must share. Backend packages call Run from their own tests.
package storagetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hudairyounas/student-app/internal/storage"
	"github.com/hudairyounas/student-app/internal/types"
)

func student(first string) types.StudentRecord {
	return types.StudentRecord{
		FirstName: first,
		LastName:  "Lee",
		Gender:    types.GenderOther,
		Email:     first + "@x.com",
		Phone:     "555-1000",
		Address:   types.Address{City: "Metro", Province: "Central", Zip: "00001"},
		Password:  "secret1",
	}
}

func names(t *testing.T, s storage.Storage) []string {
	t.Helper()
	list, err := s.List()
	require.NoError(t, err)
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.FirstName)
	}
	return out
}

// Run exercises a backend. open must return a fresh empty list per call.
func Run(t *testing.T, open storage.Factory) {
	t.Run("EmptyListIsNotNil", func(t *testing.T) {
		s, err := open("empty")
		require.NoError(t, err)
		defer s.Close()

		list, err := s.List()
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("AppendKeepsOrder", func(t *testing.T) {
		s, err := open("append")
		require.NoError(t, err)
		defer s.Close()

		for _, n := range []string{"a", "b", "c"} {
			require.NoError(t, s.Append(student(n)))
		}
		assert.Equal(t, []string{"a", "b", "c"}, names(t, s))

		got, err := s.At(1)
		require.NoError(t, err)
		if diff := cmp.Diff(student("b"), got); diff != "" {
			t.Errorf("At(1) mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("DuplicatesAllowed", func(t *testing.T) {
		s, err := open("dups")
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.Append(student("a")))
		require.NoError(t, s.Append(student("a")))
		assert.Equal(t, []string{"a", "a"}, names(t, s))
	})

	t.Run("ReplaceAtKeepsPosition", func(t *testing.T) {
		s, err := open("replace")
		require.NoError(t, err)
		defer s.Close()

		for _, n := range []string{"a", "b", "c"} {
			require.NoError(t, s.Append(student(n)))
		}
		require.NoError(t, s.ReplaceAt(1, student("B")))
		assert.Equal(t, []string{"a", "B", "c"}, names(t, s))

		require.NoError(t, s.ReplaceAt(0, student("A")))
		require.NoError(t, s.Append(student("d")))
		assert.Equal(t, []string{"A", "B", "c", "d"}, names(t, s))
	})

	t.Run("RemoveAtClosesGap", func(t *testing.T) {
		s, err := open("remove")
		require.NoError(t, err)
		defer s.Close()

		for _, n := range []string{"a", "b", "c", "d"} {
			require.NoError(t, s.Append(student(n)))
		}
		require.NoError(t, s.RemoveAt(1))
		assert.Equal(t, []string{"a", "c", "d"}, names(t, s))

		require.NoError(t, s.RemoveAt(2))
		assert.Equal(t, []string{"a", "c"}, names(t, s))

		require.NoError(t, s.RemoveAt(0))
		assert.Equal(t, []string{"c"}, names(t, s))
	})

	t.Run("OutOfRange", func(t *testing.T) {
		s, err := open("range")
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.Append(student("a")))

		for _, idx := range []int{-1, 1, 5} {
			assert.ErrorIs(t, s.ReplaceAt(idx, student("x")), storage.ErrIndexOutOfRange)
			assert.ErrorIs(t, s.RemoveAt(idx), storage.ErrIndexOutOfRange)
			_, err := s.At(idx)
			assert.ErrorIs(t, err, storage.ErrIndexOutOfRange)
		}
		assert.Equal(t, []string{"a"}, names(t, s))
	})

	t.Run("ListsAreIndependent", func(t *testing.T) {
		one, err := open("one")
		require.NoError(t, err)
		defer one.Close()
		two, err := open("two")
		require.NoError(t, err)
		defer two.Close()

		require.NoError(t, one.Append(student("a")))
		require.NoError(t, two.Append(student("b")))
		require.NoError(t, one.Append(student("c")))

		assert.Equal(t, []string{"a", "c"}, names(t, one))
		assert.Equal(t, []string{"b"}, names(t, two))

		require.NoError(t, two.RemoveAt(0))
		assert.Equal(t, []string{"a", "c"}, names(t, one))
	})

	t.Run("CloseDiscardsRecords", func(t *testing.T) {
		s, err := open("close")
		require.NoError(t, err)
		require.NoError(t, s.Append(student("a")))
		require.NoError(t, s.Close())

		reopened, err := open("close")
		require.NoError(t, err)
		defer reopened.Close()
		assert.Empty(t, names(t, reopened))
	})
}
