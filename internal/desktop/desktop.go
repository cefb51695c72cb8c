// Package desktop draws a student form component in a fyne window.
//
// Every input writes straight through to the component with SetField.
// Submit, Edit and Delete act on the component and then redraw the whole
// window from a fresh view.Page, so the widgets never hold state of their
// own beyond what the user is currently typing.
package desktop

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/hudairyounas/student-app/internal/component"
	"github.com/hudairyounas/student-app/internal/types"
	"github.com/hudairyounas/student-app/internal/view"
)

// input is the part of a fyne control the window needs.
type input struct {
	object fyne.CanvasObject
	set    func(string)
}

// UI is the window content for one component.
type UI struct {
	comp *component.Component
	win  fyne.Window

	inputs   map[types.FieldPath]input
	messages map[types.FieldPath]*widget.Label
	submit   *widget.Button
	rows     *fyne.Container
}

// New builds the widgets for comp and sets them as win's content.
func New(win fyne.Window, comp *component.Component) *UI {
	ui := &UI{
		comp:     comp,
		win:      win,
		inputs:   make(map[types.FieldPath]input),
		messages: make(map[types.FieldPath]*widget.Label),
		rows:     container.NewVBox(),
	}

	page, err := comp.View()
	if err != nil {
		slog.Error("failed to render component", slog.String("error", err.Error()))
	}

	grid := container.NewGridWithColumns(2)
	for _, f := range page.Fields {
		in := ui.newInput(f)
		ui.inputs[f.Path] = in

		msg := widget.NewLabel("")
		msg.Importance = widget.DangerImportance
		msg.Hide()
		ui.messages[f.Path] = msg

		grid.Add(container.NewVBox(widget.NewLabel(f.Label), in.object, msg))
	}

	ui.submit = widget.NewButton(view.LabelAdd, ui.onSubmit)
	ui.submit.Importance = widget.HighImportance

	formBox := container.NewVBox(grid, ui.submit)
	list := container.NewVScroll(ui.rows)
	list.SetMinSize(fyne.NewSize(600, 200))

	win.SetContent(container.NewBorder(
		container.NewVBox(widget.NewLabelWithStyle(view.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}), formBox),
		nil, nil, nil,
		container.NewBorder(widget.NewLabelWithStyle(view.ListTitle, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), nil, nil, nil, list),
	))

	ui.refresh()
	return ui
}

func (ui *UI) newInput(f view.Field) input {
	onChange := func(value string) {
		if err := ui.comp.SetField(f.Path, value); err != nil {
			slog.Error("failed to set field",
				slog.String("field", f.Path.String()),
				slog.String("error", err.Error()))
		}
	}

	switch f.Kind {
	case view.InputSelect:
		sel := widget.NewSelect(f.Options, onChange)
		sel.PlaceHolder = view.GenderPlaceholder
		return input{object: sel, set: func(v string) {
			if v == "" {
				sel.ClearSelected()
				return
			}
			sel.SetSelected(v)
		}}

	case view.InputPassword:
		e := widget.NewPasswordEntry()
		e.OnChanged = onChange
		return input{object: e, set: setIfChanged(e)}

	case view.InputTextarea:
		e := widget.NewMultiLineEntry()
		e.SetMinRowsVisible(4)
		e.OnChanged = onChange
		return input{object: e, set: setIfChanged(e)}

	default:
		e := widget.NewEntry()
		e.OnChanged = onChange
		return input{object: e, set: setIfChanged(e)}
	}
}

func setIfChanged(e *widget.Entry) func(string) {
	return func(v string) {
		if e.Text != v {
			e.SetText(v)
		}
	}
}

func (ui *UI) onSubmit() {
	out, err := ui.comp.Submit(context.Background())
	if err != nil {
		dialog.ShowError(err, ui.win)
		return
	}
	if !out.Accepted {
		slog.Debug("submission rejected", slog.Int("errors", len(out.Errors)))
	}
	ui.refresh()
}

func (ui *UI) onEdit(index int) {
	if err := ui.comp.Edit(index); err != nil {
		dialog.ShowError(err, ui.win)
		return
	}
	ui.refresh()
}

func (ui *UI) onDelete(index int) {
	if err := ui.comp.Delete(index); err != nil {
		dialog.ShowError(err, ui.win)
		return
	}
	ui.refresh()
}

// refresh redraws every widget from the component's current page.
func (ui *UI) refresh() {
	page, err := ui.comp.View()
	if err != nil {
		dialog.ShowError(err, ui.win)
		return
	}

	for _, f := range page.Fields {
		ui.inputs[f.Path].set(f.Value)

		msg := ui.messages[f.Path]
		if f.Invalid {
			msg.SetText(f.Message)
			msg.Show()
		} else {
			msg.SetText("")
			msg.Hide()
		}
	}

	ui.submit.SetText(page.SubmitLabel)

	ui.rows.Objects = nil
	for _, row := range page.Rows {
		index := row.Index
		actions := container.NewHBox(
			widget.NewButton("Edit", func() { ui.onEdit(index) }),
			widget.NewButton("Delete", func() { ui.onDelete(index) }),
		)
		ui.rows.Add(container.NewBorder(nil, nil, nil, actions, widget.NewLabel(row.Summary)))
	}
	ui.rows.Refresh()
}
