package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Metrics in-process request counters.
type Metrics struct {
	mutex            sync.RWMutex
	TotalRequests    int64
	ActiveRequests   int64
	StatusCodeCounts map[int]int64
	EndpointCounts   map[string]int64
	SlowRequests     int64
}

// MetricsMiddleware tracks request counts and slow requests.
type MetricsMiddleware struct {
	metrics              *Metrics
	slowRequestThreshold time.Duration
}

// NewMetricsMiddleware creates the metrics middleware.
func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: &Metrics{
			StatusCodeCounts: make(map[int]int64),
			EndpointCounts:   make(map[string]int64),
		},
		slowRequestThreshold: 2 * time.Second,
	}
}

// Handler returns the middleware handler.
func (mm *MetricsMiddleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			mm.metrics.mutex.Lock()
			mm.metrics.TotalRequests++
			mm.metrics.ActiveRequests++
			mm.metrics.EndpointCounts[r.Method+" "+r.URL.Path]++
			mm.metrics.mutex.Unlock()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			mm.metrics.mutex.Lock()
			mm.metrics.ActiveRequests--
			mm.metrics.StatusCodeCounts[wrapped.statusCode]++
			if duration > mm.slowRequestThreshold {
				mm.metrics.SlowRequests++
				log.Warn().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Dur("duration", duration).
					Msg("🐌 Slow request")
			}
			mm.metrics.mutex.Unlock()
		})
	}
}

// SnapshotHandler serves the current counters as JSON.
func (mm *MetricsMiddleware) SnapshotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mm.metrics.mutex.RLock()
		snapshot := map[string]interface{}{
			"total_requests":     mm.metrics.TotalRequests,
			"active_requests":    mm.metrics.ActiveRequests,
			"status_code_counts": mm.metrics.StatusCodeCounts,
			"endpoint_counts":    mm.metrics.EndpointCounts,
			"slow_requests":      mm.metrics.SlowRequests,
		}
		mm.metrics.mutex.RUnlock()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}
