package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vasool",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vasool",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vasool",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Accounting provider metrics
	booksFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vasool",
			Subsystem: "books",
			Name:      "fetch_total",
			Help:      "Total number of accounting data fetches by resource and outcome",
		},
		[]string{"resource", "outcome"},
	)

	booksFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vasool",
			Subsystem: "books",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of accounting data fetches in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"resource"},
	)

	tokenRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vasool",
			Subsystem: "books",
			Name:      "token_refresh_total",
			Help:      "Total number of OAuth access token refresh attempts",
		},
		[]string{"outcome"},
	)

	fallbackServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vasool",
			Subsystem: "books",
			Name:      "fallback_served_total",
			Help:      "Responses composed from non-live data by provenance",
		},
		[]string{"provenance"},
	)

	// Chat metrics
	chatMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vasool",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Total number of chat messages processed by intent",
		},
		[]string{"intent"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordBooksFetch records an accounting data fetch attempt
func RecordBooksFetch(resource, outcome string, duration time.Duration) {
	booksFetchTotal.WithLabelValues(resource, outcome).Inc()
	booksFetchDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

// RecordTokenRefresh records an OAuth token refresh attempt
func RecordTokenRefresh(outcome string) {
	tokenRefreshTotal.WithLabelValues(outcome).Inc()
}

// RecordFallback records a response served from demo or mock data
func RecordFallback(provenance string) {
	fallbackServedTotal.WithLabelValues(provenance).Inc()
}

// RecordChatMessage records a processed chat message
func RecordChatMessage(intent string) {
	chatMessagesTotal.WithLabelValues(intent).Inc()
}
