// Package session gives every browser its own component instance.
//
// The browser is identified by a random uuid stored in a cookie. The first
// request without a (known) cookie mounts a fresh component; later requests
// with the cookie reach the same component. Components idle for longer
// than the TTL are torn down by Sweep, which discards their records.
package session

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hudairyounas/student-app/internal/component"
	"github.com/hudairyounas/student-app/internal/metrics"
	"github.com/hudairyounas/student-app/internal/storage"
	"github.com/hudairyounas/student-app/internal/validation"
)

// CookieName is the cookie carrying the session id.
const CookieName = "student_app_session"

type entry struct {
	comp     *component.Component
	lastSeen time.Time
}

// Registry maps session ids to components.
type Registry struct {
	mu sync.Mutex

	open      storage.Factory
	validator *validation.Validator
	ttl       time.Duration
	log       *slog.Logger
	now       func() time.Time

	sessions map[string]*entry
}

// NewRegistry returns an empty registry. open provides each new component
// with its Record List.
func NewRegistry(open storage.Factory, v *validation.Validator, ttl time.Duration, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		open:      open,
		validator: v,
		ttl:       ttl,
		log:       log,
		now:       time.Now,
		sessions:  make(map[string]*entry),
	}
}

// Component returns the component for the request's session, mounting a
// new one (and setting the cookie on w) if there is none.
func (r *Registry) Component(w http.ResponseWriter, req *http.Request) (*component.Component, error) {
	if c, err := req.Cookie(CookieName); err == nil {
		if comp, ok := r.Get(c.Value); ok {
			return comp, nil
		}
	}

	comp, err := r.Mount()
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    comp.ID(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return comp, nil
}

// Get returns the live component with id and marks it as used.
func (r *Registry) Get(id string) (*component.Component, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.comp, true
}

// Mount creates a component under a new session id.
func (r *Registry) Mount() (*component.Component, error) {
	id := uuid.New().String()

	records, err := r.open(id)
	if err != nil {
		return nil, fmt.Errorf("session.Mount: open storage: %w", err)
	}

	comp := component.New(id, records, r.validator, r.log)

	r.mu.Lock()
	r.sessions[id] = &entry{comp: comp, lastSeen: r.now()}
	count := len(r.sessions)
	r.mu.Unlock()

	metrics.SetActiveComponents(count)
	r.log.Info("component mounted", slog.String("session", id))
	return comp, nil
}

// Sweep tears down every component idle for longer than the TTL and
// returns how many were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var stale []*component.Component
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.comp)
			delete(r.sessions, id)
		}
	}
	count := len(r.sessions)
	r.mu.Unlock()

	for _, comp := range stale {
		if err := comp.Close(); err != nil {
			r.log.Error("failed to close component",
				slog.String("session", comp.ID()),
				slog.String("error", err.Error()))
		}
	}

	if len(stale) > 0 {
		metrics.SetActiveComponents(count)
		r.log.Info("idle components unmounted", slog.Int("count", len(stale)))
	}
	return len(stale)
}

// Len returns the number of live components.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close tears down every component.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range sessions {
		e.comp.Close()
	}
	metrics.SetActiveComponents(0)
}
