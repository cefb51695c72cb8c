// Package router assembles the HTTP route table.
//
// Route table:
//
//	GET    /                          → page (form + list)
//	POST   /                          → submit the posted form
//	POST   /students/{index}/edit     → load a row into the form
//	POST   /students/{index}/delete   → delete a row
//	POST   /reset                     → leave edit mode
//
//	GET    /api/form                  → page as JSON
//	PATCH  /api/form/fields           → set one field of the draft
//	POST   /api/form/submit           → submit the draft
//	POST   /api/form/reset            → reset the draft
//	GET    /api/students              → list records
//	POST   /api/students/{index}/edit → load a row into the form
//	DELETE /api/students/{index}      → delete a row
//
//	GET    /healthz                   → liveness
//	GET    /metrics                   → Prometheus
package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hudairyounas/student-app/internal/http/handlers/student"
	"github.com/hudairyounas/student-app/internal/http/middleware"
	"github.com/hudairyounas/student-app/internal/metrics"
	"github.com/hudairyounas/student-app/internal/utils/response"
)

// New returns the router. Middleware order: metrics → rate limit → logging.
func New(sessions student.Sessions, limiter *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()

	r.Use(metrics.Middleware)
	if limiter != nil {
		r.Use(limiter.Middleware)
	}
	r.Use(middleware.Logging)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": response.StatusOK})
	}).Methods(http.MethodGet)

	r.HandleFunc("/", student.Page(sessions)).Methods(http.MethodGet)
	r.HandleFunc("/", student.SubmitForm(sessions)).Methods(http.MethodPost)
	r.HandleFunc("/students/{index}/edit", student.EditForm(sessions)).Methods(http.MethodPost)
	r.HandleFunc("/students/{index}/delete", student.DeleteForm(sessions)).Methods(http.MethodPost)
	r.HandleFunc("/reset", student.ResetForm(sessions)).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/form", student.GetForm(sessions)).Methods(http.MethodGet)
	api.HandleFunc("/form/fields", student.SetField(sessions)).Methods(http.MethodPatch)
	api.HandleFunc("/form/submit", student.Submit(sessions)).Methods(http.MethodPost)
	api.HandleFunc("/form/reset", student.Reset(sessions)).Methods(http.MethodPost)
	api.HandleFunc("/students", student.GetList(sessions)).Methods(http.MethodGet)
	api.HandleFunc("/students/{index}/edit", student.Edit(sessions)).Methods(http.MethodPost)
	api.HandleFunc("/students/{index}", student.Delete(sessions)).Methods(http.MethodDelete)

	return r
}
