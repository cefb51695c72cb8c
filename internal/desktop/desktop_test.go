package desktop

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hudairyounas/student-app/internal/component"
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
}

func newUI(t *testing.T) (*UI, *component.Component) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	comp := component.New("desktop", memory.New(), validation.New(), nil)
	t.Cleanup(func() { comp.Close() })

	return New(a.NewWindow(view.Title), comp), comp
}

func typeRecord(ui *UI, rec types.StudentRecord) {
	for _, p := range types.FieldPaths {
		ui.inputs[p].set(rec.Get(p))
	}
}

func TestSubmitThroughWidgets(t *testing.T) {
	ui, comp := newUI(t)
	typeRecord(ui, ana)

	assert.Equal(t, ana, comp.State().Draft)

	test.Tap(ui.submit)

	records, err := comp.Records()
	require.NoError(t, err)
	assert.Equal(t, []types.StudentRecord{ana}, records)
	assert.Len(t, ui.rows.Objects, 1)

	first := ui.inputs[types.PathFirstName].object.(*widget.Entry)
	assert.Empty(t, first.Text, "form cleared after success")
}

func TestRejectedSubmitShowsMessages(t *testing.T) {
	ui, comp := newUI(t)
	bad := ana
	bad.Email = "not-an-email"
	typeRecord(ui, bad)

	test.Tap(ui.submit)

	msg := ui.messages[types.PathEmail]
	assert.True(t, msg.Visible())
	assert.Equal(t, "Invalid email", msg.Text)
	assert.False(t, ui.messages[types.PathFirstName].Visible())

	records, err := comp.Records()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestEditSwitchesSubmitLabel(t *testing.T) {
	ui, _ := newUI(t)
	typeRecord(ui, ana)
	test.Tap(ui.submit)
	assert.Equal(t, view.LabelAdd, ui.submit.Text)

	ui.onEdit(0)
	assert.Equal(t, view.LabelUpdate, ui.submit.Text)
	email := ui.inputs[types.PathEmail].object.(*widget.Entry)
	assert.Equal(t, "ana@x.com", email.Text)
	gender := ui.inputs[types.PathGender].object.(*widget.Select)
	assert.Equal(t, types.GenderFemale, gender.Selected)

	ui.onDelete(0)
	assert.Equal(t, view.LabelAdd, ui.submit.Text)
	assert.Empty(t, ui.rows.Objects)
}
