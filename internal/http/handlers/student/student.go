// Package student contains the HTTP handlers that drive a student form
// component: the HTML page for browsers and the JSON API.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Each exported function receives its dependencies once at startup and
// returns the http.HandlerFunc the router calls on every request:
//
//	router.HandleFunc("/", student.Page(sessions)).Methods(http.MethodGet)
//
// Every handler first resolves the caller's component through Sessions,
// then translates the request into component events.
package student

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hudairyounas/student-app/internal/component"
	"github.com/hudairyounas/student-app/internal/storage"
	"github.com/hudairyounas/student-app/internal/types"
	"github.com/hudairyounas/student-app/internal/utils/response"
	"github.com/hudairyounas/student-app/internal/view"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Sessions resolves the component behind a request.
type Sessions interface {
	Component(w http.ResponseWriter, r *http.Request) (*component.Component, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// HTML
// ─────────────────────────────────────────────────────────────────────────────

// Page handles GET /: renders the form and the list.
func Page(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comp, err := sessions.Component(w, r)
		if err != nil {
			serverError(w, err)
			return
		}
		renderPage(w, comp, http.StatusOK)
	}
}

// SubmitForm handles POST /: the browser posts every input; each posted
// value is applied with SetField before the submit runs.
//
//	accepted → 303 See Other back to GET /
//	rejected → 422 with the page re-rendered, inputs flagged
func SubmitForm(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comp, err := sessions.Component(w, r)
		if err != nil {
			serverError(w, err)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		for _, p := range types.FieldPaths {
			if values, ok := r.PostForm[p.String()]; ok && len(values) > 0 {
				if err := comp.SetField(p, values[0]); err != nil {
					serverError(w, err)
					return
				}
			}
		}

		out, err := comp.Submit(r.Context())
		if err != nil {
			if isCancelled(err) {
				return
			}
			serverError(w, err)
			return
		}

		if !out.Accepted {
			renderPage(w, comp, http.StatusUnprocessableEntity)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// EditForm handles POST /students/{index}/edit.
func EditForm(sessions Sessions) http.HandlerFunc {
	return rowAction(sessions, (*component.Component).Edit)
}

// DeleteForm handles POST /students/{index}/delete.
func DeleteForm(sessions Sessions) http.HandlerFunc {
	return rowAction(sessions, (*component.Component).Delete)
}

func rowAction(sessions Sessions, action func(*component.Component, int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comp, err := sessions.Component(w, r)
		if err != nil {
			serverError(w, err)
			return
		}

		index, err := pathIndex(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := action(comp, index); err != nil {
			if errors.Is(err, storage.ErrIndexOutOfRange) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			serverError(w, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// ResetForm handles POST /reset: leaves edit mode with an empty draft.
func ResetForm(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comp, err := sessions.Component(w, r)
		if err != nil {
			serverError(w, err)
			return
		}
		if err := comp.Reset(); err != nil {
			serverError(w, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func renderPage(w http.ResponseWriter, comp *component.Component, status int) {
	page, err := comp.View()
	if err != nil {
		serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, page); err != nil {
		slog.Error("failed to render page", slog.String("error", err.Error()))
	}
}

func serverError(w http.ResponseWriter, err error) {
	slog.Error("request failed", slog.String("error", err.Error()))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// ─────────────────────────────────────────────────────────────────────────────
// JSON API
// ─────────────────────────────────────────────────────────────────────────────

// GetForm handles GET /api/form: the current page as JSON.
func GetForm(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comp, ok := apiComponent(sessions, w, r)
		if !ok {
			return
		}
		writePage(w, comp, http.StatusOK)
	}
}

// FieldChange is the body of PATCH /api/form/fields.
//
//	{ "path": "address.city", "value": "Metro" }
type FieldChange struct {
	Path  types.FieldPath `json:"path"`
	Value *string         `json:"value"`
}

// SetField handles PATCH /api/form/fields: one input change.
func SetField(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comp, ok := apiComponent(sessions, w, r)
		if !ok {
			return
		}

		var change FieldChange
		err := json.NewDecoder(r.Body).Decode(&change)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		if !change.Path.Valid() || change.Value == nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("path and value are required")))
			return
		}

		if err := comp.SetField(change.Path, *change.Value); err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		writePage(w, comp, http.StatusOK)
	}
}

// SubmitResult is the body of an accepted submit.
type SubmitResult struct {
	Status string    `json:"status"`
	Mode   string    `json:"mode"`
	Index  int       `json:"index"`
	Page   view.Page `json:"page"`
}

// Submit handles POST /api/form/submit.
//
// With an empty body the current draft is submitted. With a StudentRecord
// body every field of it is applied with SetField first:
//
//	{ "firstName": "Ana", "lastName": "Lee", "gender": "Female", ...,
//	  "address": { "city": "Metro", "province": "Central", "zip": "00001" } }
//
// Responses:
//
//	200 OK                    - SubmitResult
//	422 Unprocessable Entity  - response.ValidationError with the ErrorMap
func Submit(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comp, ok := apiComponent(sessions, w, r)
		if !ok {
			return
		}

		var draft types.StudentRecord
		err := json.NewDecoder(r.Body).Decode(&draft)
		switch {
		case errors.Is(err, io.EOF):
		case err != nil:
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		default:
			for _, p := range types.FieldPaths {
				if err := comp.SetField(p, draft.Get(p)); err != nil {
					response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
					return
				}
			}
		}

		out, err := comp.Submit(r.Context())
		if err != nil {
			if isCancelled(err) {
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		if !out.Accepted {
			response.WriteJSON(w, http.StatusUnprocessableEntity, response.ValidationError(out.Errors))
			return
		}

		page, err := comp.View()
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, SubmitResult{
			Status: response.StatusOK,
			Mode:   out.Mode.String(),
			Index:  out.Index,
			Page:   page,
		})
	}
}

// Reset handles POST /api/form/reset.
func Reset(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comp, ok := apiComponent(sessions, w, r)
		if !ok {
			return
		}
		if err := comp.Reset(); err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}
		writePage(w, comp, http.StatusOK)
	}
}

// GetList handles GET /api/students: every accepted record in order.
// Returns [] (not null) when the list is empty.
func GetList(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comp, ok := apiComponent(sessions, w, r)
		if !ok {
			return
		}

		records, err := comp.Records()
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}
		response.WriteJSON(w, http.StatusOK, records)
	}
}

// Edit handles POST /api/students/{index}/edit: loads the record into the
// draft; responds with the page.
func Edit(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comp, ok := apiComponent(sessions, w, r)
		if !ok {
			return
		}

		index, err := pathIndex(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := comp.Edit(index); err != nil {
			writeIndexError(w, err)
			return
		}
		writePage(w, comp, http.StatusOK)
	}
}

// Delete handles DELETE /api/students/{index}.
//
//	200 OK        - { "status": "deleted" }
//	404 Not Found - no record at index
func Delete(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comp, ok := apiComponent(sessions, w, r)
		if !ok {
			return
		}

		index, err := pathIndex(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := comp.Delete(index); err != nil {
			writeIndexError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func apiComponent(sessions Sessions, w http.ResponseWriter, r *http.Request) (*component.Component, bool) {
	comp, err := sessions.Component(w, r)
	if err != nil {
		slog.Error("failed to resolve component", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
		return nil, false
	}
	return comp, true
}

func writePage(w http.ResponseWriter, comp *component.Component, status int) {
	page, err := comp.View()
	if err != nil {
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
		return
	}
	response.WriteJSON(w, status, page)
}

func writeIndexError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrIndexOutOfRange) {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
		return
	}
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}

// pathIndex reads the {index} route variable.
func pathIndex(r *http.Request) (int, error) {
	raw := mux.Vars(r)["index"]
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: must be an integer", raw)
	}
	return index, nil
}

// isCancelled reports a submit abandoned because the client went away;
// there is nobody left to answer.
func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
