package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hudairyounas/student-app/internal/form"
	"github.com/hudairyounas/student-app/internal/types"
)

var ana = types.StudentRecord{
	FirstName: "Ana",
	LastName:  "Lee",
	Gender:    types.GenderFemale,
	Email:     "ana@x.com",
	Phone:     "555-1000",
	Address:   types.Address{City: "Metro", Province: "Central", Zip: "00001"},
	Password:  "secret1",
}

func TestRenderCreateMode(t *testing.T) {
	p := Render(form.New(), nil)

	assert.Equal(t, Title, p.Title)
	assert.Equal(t, LabelAdd, p.SubmitLabel)
	assert.False(t, p.Editing)
	assert.Nil(t, p.EditIndex)
	assert.NotNil(t, p.Rows)
	assert.Empty(t, p.Rows)
	require.Len(t, p.Fields, len(types.FieldPaths))

	for i, f := range p.Fields {
		assert.Equal(t, types.FieldPaths[i], f.Path)
		assert.False(t, f.Invalid)
		assert.Empty(t, f.Value)
	}

	gender, ok := p.Field(types.PathGender)
	require.True(t, ok)
	assert.Equal(t, InputSelect, gender.Kind)
	assert.Equal(t, []string{"Male", "Female", "Other"}, gender.Options)

	city, ok := p.Field(types.PathCity)
	require.True(t, ok)
	assert.Equal(t, "city", city.ID)
	assert.Equal(t, "address.city", city.Path.String())
}

func TestRenderEditModeAndRows(t *testing.T) {
	s := form.LoadForEdit(form.New(), ana, 1)
	p := Render(s, []types.StudentRecord{ana, ana})

	assert.Equal(t, LabelUpdate, p.SubmitLabel)
	assert.True(t, p.Editing)
	require.NotNil(t, p.EditIndex)
	assert.Equal(t, 1, *p.EditIndex)

	want := []Row{
		{Index: 0, Summary: "Ana Lee (Female, 555-1000)"},
		{Index: 1, Summary: "Ana Lee (Female, 555-1000)"},
	}
	if diff := cmp.Diff(want, p.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	email, _ := p.Field(types.PathEmail)
	assert.Equal(t, "ana@x.com", email.Value)
}

func TestRenderFlagsErroredFields(t *testing.T) {
	s := form.WithErrors(form.New(), types.ErrorMap{
		types.PathEmail: "Invalid email",
		types.PathZip:   "Zip code is required",
	})
	p := Render(s, nil)

	for _, f := range p.Fields {
		switch f.Path {
		case types.PathEmail:
			assert.True(t, f.Invalid)
			assert.Equal(t, "Invalid email", f.Message)
		case types.PathZip:
			assert.True(t, f.Invalid)
			assert.Equal(t, "Zip code is required", f.Message)
		default:
			assert.False(t, f.Invalid, f.Path.String())
			assert.Empty(t, f.Message, f.Path.String())
		}
	}
}

func TestRenderIsPure(t *testing.T) {
	errs := types.ErrorMap{types.PathEmail: "Invalid email"}
	s := form.WithErrors(form.New(), errs)
	records := []types.StudentRecord{ana}

	first := Render(s, records)
	second := Render(s, records)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("render not deterministic (-first +second):\n%s", diff)
	}

	first.Errors[types.PathPhone] = "x"
	assert.Len(t, errs, 1, "page errors must not alias state errors")
}
