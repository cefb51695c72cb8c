package component

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hudairyounas/student-app/internal/form"
	"github.com/hudairyounas/student-app/internal/storage"
	"github.com/hudairyounas/student-app/internal/storage/memory"
	"github.com/hudairyounas/student-app/internal/types"
	"github.com/hudairyounas/student-app/internal/validation"
	"github.com/hudairyounas/student-app/internal/view"
)

var ana = types.StudentRecord{
	FirstName: "Ana",
	LastName:  "Lee",
	Gender:    types.GenderFemale,
	Email:     "ana@x.com",
	Phone:     "555-1000",
	Address:   types.Address{City: "Metro", Province: "Central", Zip: "00001"},
	Password:  "secret1",
	About:     "",
}

func newComponent(t *testing.T) *Component {
	t.Helper()
	c := New("test", memory.New(), validation.New(), nil)
	t.Cleanup(func() { c.Close() })
	return c
}

func fill(t *testing.T, c *Component, rec types.StudentRecord) {
	t.Helper()
	for _, p := range types.FieldPaths {
		require.NoError(t, c.SetField(p, rec.Get(p)))
	}
}

func submit(t *testing.T, c *Component) Outcome {
	t.Helper()
	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	return out
}

func records(t *testing.T, c *Component) []types.StudentRecord {
	t.Helper()
	list, err := c.Records()
	require.NoError(t, err)
	return list
}

func person(first string) types.StudentRecord {
	r := ana
	r.FirstName = first
	return r
}

func TestSubmitValidDraftAppends(t *testing.T) {
	c := newComponent(t)
	fill(t, c, ana)

	out := submit(t, c)

	assert.True(t, out.Accepted)
	assert.Equal(t, form.ModeCreate, out.Mode)
	assert.Equal(t, 0, out.Index)
	assert.Empty(t, out.Errors)

	if diff := cmp.Diff([]types.StudentRecord{ana}, records(t, c)); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	s := c.State()
	assert.Equal(t, types.StudentRecord{}, s.Draft, "draft resets after success")
	assert.Empty(t, s.Errors)
}

func TestSubmitInvalidDraftLeavesListAlone(t *testing.T) {
	c := newComponent(t)
	bad := ana
	bad.Email = "not-an-email"
	bad.Password = "abc"
	fill(t, c, bad)

	out := submit(t, c)

	assert.False(t, out.Accepted)
	assert.NotEmpty(t, out.Errors[types.PathEmail])
	assert.NotEmpty(t, out.Errors[types.PathPassword])
	assert.Len(t, out.Errors, 2)
	assert.Empty(t, records(t, c))

	s := c.State()
	assert.Equal(t, bad, s.Draft, "draft is kept for correction")
	assert.Equal(t, out.Errors, s.Errors)
}

func TestSubmitMissingFieldsReportsEach(t *testing.T) {
	c := newComponent(t)
	require.NoError(t, c.SetField(types.PathFirstName, "Ana"))
	require.NoError(t, c.SetField(types.PathCity, "Metro"))

	out := submit(t, c)

	assert.False(t, out.Accepted)
	for _, p := range []types.FieldPath{
		types.PathLastName, types.PathGender, types.PathEmail, types.PathPhone,
		types.PathProvince, types.PathZip, types.PathPassword,
	} {
		assert.Contains(t, out.Errors, p, p.String())
	}
	assert.NotContains(t, out.Errors, types.PathFirstName)
	assert.NotContains(t, out.Errors, types.PathCity)
	assert.Empty(t, records(t, c))
}

func TestErrorsClearedOnNextSubmit(t *testing.T) {
	c := newComponent(t)
	submit(t, c)
	require.NotEmpty(t, c.State().Errors)

	fill(t, c, ana)
	out := submit(t, c)
	assert.True(t, out.Accepted)
	assert.Empty(t, c.State().Errors)
}

func TestEditReplacesInPlace(t *testing.T) {
	c := newComponent(t)
	for _, n := range []string{"a", "b", "c"} {
		fill(t, c, person(n))
		submit(t, c)
	}

	require.NoError(t, c.Edit(1))
	assert.Equal(t, person("b"), c.State().Draft)

	require.NoError(t, c.SetField(types.PathFirstName, "B"))
	out := submit(t, c)

	assert.True(t, out.Accepted)
	assert.Equal(t, form.ModeEdit, out.Mode)
	assert.Equal(t, 1, out.Index)

	want := []types.StudentRecord{person("a"), person("B"), person("c")}
	if diff := cmp.Diff(want, records(t, c)); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	_, editing := c.State().EditIndex()
	assert.False(t, editing, "edit index cleared after success")
}

func TestEditRoundTripIsIdentity(t *testing.T) {
	c := newComponent(t)
	for _, n := range []string{"a", "b"} {
		fill(t, c, person(n))
		submit(t, c)
	}
	before := records(t, c)

	require.NoError(t, c.Edit(0))
	out := submit(t, c)
	require.True(t, out.Accepted)

	if diff := cmp.Diff(before, records(t, c)); diff != "" {
		t.Errorf("round trip changed list (-before +after):\n%s", diff)
	}
}

func TestInvalidEditKeepsEditMode(t *testing.T) {
	c := newComponent(t)
	fill(t, c, ana)
	submit(t, c)

	require.NoError(t, c.Edit(0))
	require.NoError(t, c.SetField(types.PathZip, ""))
	out := submit(t, c)

	assert.False(t, out.Accepted)
	assert.Equal(t, form.ModeEdit, out.Mode)
	idx, editing := c.State().EditIndex()
	assert.True(t, editing)
	assert.Equal(t, 0, idx)
	assert.Equal(t, []types.StudentRecord{ana}, records(t, c))
}

func TestDeletePreservesOrder(t *testing.T) {
	c := newComponent(t)
	for _, n := range []string{"a", "b", "c", "d"} {
		fill(t, c, person(n))
		submit(t, c)
	}

	require.NoError(t, c.Delete(2))

	want := []types.StudentRecord{person("a"), person("b"), person("d")}
	if diff := cmp.Diff(want, records(t, c)); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	assert.ErrorIs(t, c.Delete(3), storage.ErrIndexOutOfRange)
	assert.Len(t, records(t, c), 3)
}

func TestDeleteWhileEditingFollowsRecord(t *testing.T) {
	c := newComponent(t)
	for _, n := range []string{"a", "b", "c"} {
		fill(t, c, person(n))
		submit(t, c)
	}

	require.NoError(t, c.Edit(2))
	require.NoError(t, c.Delete(0))

	idx, editing := c.State().EditIndex()
	require.True(t, editing)
	assert.Equal(t, 1, idx)

	require.NoError(t, c.SetField(types.PathFirstName, "C"))
	submit(t, c)
	assert.Equal(t, []types.StudentRecord{person("b"), person("C")}, records(t, c))

	require.NoError(t, c.Edit(0))
	require.NoError(t, c.Delete(0))
	_, editing = c.State().EditIndex()
	assert.False(t, editing)
	assert.Equal(t, types.StudentRecord{}, c.State().Draft)
}

func TestEditOutOfRange(t *testing.T) {
	c := newComponent(t)
	assert.ErrorIs(t, c.Edit(0), storage.ErrIndexOutOfRange)
	assert.Equal(t, form.ModeCreate, c.State().Mode())
}

func TestSetFieldRejectsInvalidPath(t *testing.T) {
	c := newComponent(t)
	assert.ErrorIs(t, c.SetField(types.FieldPath{}, "x"), types.ErrUnknownField)
}

func TestCancelledSubmitMutatesNothing(t *testing.T) {
	c := newComponent(t)
	fill(t, c, ana)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Submit(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, records(t, c))
	assert.Equal(t, ana, c.State().Draft)
}

func TestViewReflectsMode(t *testing.T) {
	c := newComponent(t)
	fill(t, c, ana)
	submit(t, c)

	page, err := c.View()
	require.NoError(t, err)
	assert.Equal(t, view.LabelAdd, page.SubmitLabel)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Ana Lee (Female, 555-1000)", page.Rows[0].Summary)

	require.NoError(t, c.Edit(0))
	page, err = c.View()
	require.NoError(t, err)
	assert.Equal(t, view.LabelUpdate, page.SubmitLabel)

	require.NoError(t, c.Reset())
	page, err = c.View()
	require.NoError(t, err)
	assert.Equal(t, view.LabelAdd, page.SubmitLabel)
}

func TestClosedComponent(t *testing.T) {
	c := New("closed", memory.New(), validation.New(), nil)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, c.SetField(types.PathEmail, "x"), ErrClosed)
	assert.ErrorIs(t, c.Edit(0), ErrClosed)
	assert.ErrorIs(t, c.Delete(0), ErrClosed)
	_, err = c.View()
	assert.ErrorIs(t, err, ErrClosed)
}
