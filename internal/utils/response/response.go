// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every JSON API handler sends its body through WriteJSON, and every error
// body has the same Response shape.
package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hudairyounas/student-app/internal/types"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a page, a list...).
// Error responses always look like:
//
//	{ "status": "error", "error": "..." }
//
// Validation failures add the per-field messages keyed by dotted path:
//
//	{ "status": "error", "error": "validation failed",
//	  "errors": { "email": "Invalid email", "address.zip": "Zip code is required" } }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string         `json:"status"`
	Error  string         `json:"error"`
	Errors types.ErrorMap `json:"errors,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data JSON-encoded with the given HTTP status code.
// Header() → WriteHeader() → body, in that order.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts a failed submit's ErrorMap into a Response.
// Error joins the messages in form order so a client that only reads the
// "error" string still sees every problem:
//
//	"Invalid email, Password must be at least 6 characters"
func ValidationError(errs types.ErrorMap) Response {
	msgs := make([]string, 0, len(errs))
	for _, p := range errs.Paths() {
		msgs = append(msgs, errs[p])
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(msgs, ", "),
		Errors: errs,
	}
}
