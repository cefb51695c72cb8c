// Package view projects component state into what a screen shows.
//
// Render is a pure function: the same (form state, records) always yields
// the same Page, and it keeps no state of its own. The HTML handlers, the
// JSON API and the desktop window all draw from a Page.
package view

import (
	"fmt"

	"github.com/hudairyounas/student-app/internal/form"
	"github.com/hudairyounas/student-app/internal/types"
)

const (
	Title     = "Student Management"
	ListTitle = "Student List"

	LabelAdd    = "Add Student"
	LabelUpdate = "Update Student"
)

// InputKind is the kind of control a field is drawn with.
type InputKind string

const (
	InputText     InputKind = "text"
	InputEmail    InputKind = "email"
	InputTel      InputKind = "tel"
	InputPassword InputKind = "password"
	InputSelect   InputKind = "select"
	InputTextarea InputKind = "textarea"
)

// GenderPlaceholder is the label of the empty gender option.
const GenderPlaceholder = "Select gender"

type fieldDef struct {
	path  types.FieldPath
	id    string
	label string
	kind  InputKind
}

var fieldDefs = []fieldDef{
	{types.PathFirstName, "firstName", "First Name:", InputText},
	{types.PathLastName, "lastName", "Last Name:", InputText},
	{types.PathGender, "gender", "Gender:", InputSelect},
	{types.PathEmail, "email", "Email:", InputEmail},
	{types.PathPhone, "phone", "Phone No:", InputTel},
	{types.PathCity, "city", "City:", InputText},
	{types.PathProvince, "province", "Province:", InputText},
	{types.PathZip, "zip", "Zip Code:", InputText},
	{types.PathPassword, "password", "Password:", InputPassword},
	{types.PathAbout, "about", "About:", InputTextarea},
}

// Field is one labelled input.
type Field struct {
	Path    types.FieldPath `json:"path"`
	ID      string          `json:"id"`
	Label   string          `json:"label"`
	Kind    InputKind       `json:"kind"`
	Value   string          `json:"value"`
	Options []string        `json:"options,omitempty"`

	// Invalid flags the input red; Message is shown under it.
	Invalid bool   `json:"invalid"`
	Message string `json:"message,omitempty"`
}

// Row is one student in the list. Index is what Edit and Delete act on.
type Row struct {
	Index   int    `json:"index"`
	Summary string `json:"summary"`
}

// Page is everything on screen.
type Page struct {
	Title       string         `json:"title"`
	Fields      []Field        `json:"fields"`
	Errors      types.ErrorMap `json:"errors"`
	Editing     bool           `json:"editing"`
	EditIndex   *int           `json:"editIndex"`
	SubmitLabel string         `json:"submitLabel"`
	ListTitle   string         `json:"listTitle"`
	Rows        []Row          `json:"rows"`
}

// Summary is the fixed one-line description of a record in the list.
func Summary(r types.StudentRecord) string {
	return fmt.Sprintf("%s (%s, %s)", r.FullName(), r.Gender, r.Phone)
}

// SubmitLabel returns the submit button text for mode m.
func SubmitLabel(m form.Mode) string {
	if m == form.ModeEdit {
		return LabelUpdate
	}
	return LabelAdd
}

// Render builds the Page for s and records.
func Render(s form.State, records []types.StudentRecord) Page {
	p := Page{
		Title:       Title,
		Fields:      make([]Field, 0, len(fieldDefs)),
		Errors:      s.Errors.Clone(),
		SubmitLabel: SubmitLabel(s.Mode()),
		ListTitle:   ListTitle,
		Rows:        make([]Row, 0, len(records)),
	}

	if idx, ok := s.EditIndex(); ok {
		p.Editing = true
		p.EditIndex = &idx
	}

	for _, def := range fieldDefs {
		f := Field{
			Path:  def.path,
			ID:    def.id,
			Label: def.label,
			Kind:  def.kind,
			Value: s.Draft.Get(def.path),
		}
		if def.kind == InputSelect {
			f.Options = types.Genders
		}
		if msg, ok := s.Errors.Lookup(def.path); ok {
			f.Invalid = true
			f.Message = msg
		}
		p.Fields = append(p.Fields, f)
	}

	for i, r := range records {
		p.Rows = append(p.Rows, Row{Index: i, Summary: Summary(r)})
	}

	return p
}

// Field returns the field at path.
func (p Page) Field(path types.FieldPath) (Field, bool) {
	for _, f := range p.Fields {
		if f.Path == path {
			return f, true
		}
	}
	return Field{}, false
}
