package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hudairyounas/student-app/internal/storage/storagetest"
	"github.com/hudairyounas/student-app/internal/types"
)

func TestMemory(t *testing.T) {
	storagetest.Run(t, Factory)
}

func TestListReturnsCopy(t *testing.T) {
	m := New()
	require.NoError(t, m.Append(types.StudentRecord{FirstName: "Ana"}))

	list, err := m.List()
	require.NoError(t, err)
	list[0].FirstName = "changed"

	got, err := m.At(0)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FirstName)
}
