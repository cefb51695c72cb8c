package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TotalRequests counts total HTTP requests
	TotalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration measures request latency
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	// RateLimitHits counts requests refused by the rate limiter
	RateLimitHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
	)

	// Submissions counts submit attempts by mode and outcome
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "student_form_submissions_total",
			Help: "Student form submissions by mode (create/edit) and outcome (accepted/rejected)",
		},
		[]string{"mode", "outcome"},
	)

	// FieldErrors counts validation failures per field path
	FieldErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "student_form_field_errors_total",
			Help: "Validation failures by field path",
		},
		[]string{"field"},
	)

	// ActiveComponents tracks live form components (one per browser session)
	ActiveComponents = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "student_form_components_active",
			Help: "Number of live student form components",
		},
	)
)

func init() {
	prometheus.MustRegister(TotalRequests)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RateLimitHits)
	prometheus.MustRegister(Submissions)
	prometheus.MustRegister(FieldErrors)
	prometheus.MustRegister(ActiveComponents)
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency labelled by route template.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := newResponseWriter(w)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}

		next.ServeHTTP(wrapped, r)

		TotalRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		RequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveSubmit counts one submit attempt.
func ObserveSubmit(mode string, accepted bool) {
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	Submissions.WithLabelValues(mode, outcome).Inc()
}

// ObserveFieldError counts one failing field from a rejected submit.
func ObserveFieldError(field string) {
	FieldErrors.WithLabelValues(field).Inc()
}

// IncrementRateLimitHits increments the rate limit hit counter
func IncrementRateLimitHits() {
	RateLimitHits.Inc()
}

// SetActiveComponents sets the live component gauge
func SetActiveComponents(count int) {
	ActiveComponents.Set(float64(count))
}
