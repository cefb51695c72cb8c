package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldPath(t *testing.T) {
	for _, p := range FieldPaths {
		got, err := ParseFieldPath(p.String())
		require.NoError(t, err, p.String())
		assert.Equal(t, p, got)
	}

	assert.Equal(t, "address.city", PathCity.String())
	assert.Equal(t, "firstName", PathFirstName.String())

	for _, bad := range []string{"", "address", "address.street", "firstName.city", "nickname", "city"} {
		_, err := ParseFieldPath(bad)
		assert.True(t, errors.Is(err, ErrUnknownField), bad)
	}
}

func TestFieldPathValid(t *testing.T) {
	assert.False(t, FieldPath{}.Valid())
	assert.False(t, TopLevel(FieldAddress).Valid())
	assert.True(t, AddressPath(AddressZip).Valid())
	assert.True(t, PathAbout.Valid())
}

func TestWithReplacesOneField(t *testing.T) {
	orig := StudentRecord{FirstName: "Ana", Address: Address{City: "Metro"}}

	next := orig.With(PathProvince, "Central")

	assert.Equal(t, "Central", next.Address.Province)
	assert.Equal(t, "Metro", next.Address.City)
	assert.Equal(t, "Ana", next.FirstName)
	assert.Empty(t, orig.Address.Province, "original draft must not change")

	for _, p := range FieldPaths {
		updated := StudentRecord{}.With(p, "x")
		assert.Equal(t, "x", updated.Get(p), p.String())
		for _, other := range FieldPaths {
			if other != p {
				assert.Empty(t, updated.Get(other), "%s touched %s", p, other)
			}
		}
	}
}

func TestErrorMapJSONUsesDottedKeys(t *testing.T) {
	m := ErrorMap{PathEmail: "Invalid email", PathZip: "Zip code is required"}

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"Invalid email","address.zip":"Zip code is required"}`, string(b))

	var back ErrorMap
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, m, back)
}

func TestErrorMapLookupAbsent(t *testing.T) {
	var m ErrorMap
	msg, ok := m.Lookup(PathCity)
	assert.False(t, ok)
	assert.Empty(t, msg)

	m = ErrorMap{PathPassword: "p", PathFirstName: "f"}
	assert.Equal(t, []FieldPath{PathFirstName, PathPassword}, m.Paths())
}
