package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/utils"
)

// responseWriter wraps http.ResponseWriter to capture status and size.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	responseSize int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.responseSize += int64(size)
	return size, err
}

// LoggingConfig logging middleware settings.
type LoggingConfig struct {
	SkipPaths []string // paths excluded from request logging
}

// DefaultLoggingConfig default logging settings.
func DefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		SkipPaths: []string{
			"/health",
			"/metrics",
			"/favicon.ico",
		},
	}
}

// RequestLoggingMiddleware logs every HTTP request with a generated request ID.
func RequestLoggingMiddleware(config *LoggingConfig) func(http.Handler) http.Handler {
	if config == nil {
		config = DefaultLoggingConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkipLogging(r.URL.Path, config.SkipPaths) {
				next.ServeHTTP(w, r)
				return
			}

			startTime := time.Now()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			requestID := uuid.New().String()
			wrapped.Header().Set("X-Request-ID", requestID)

			log.Info().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("client_ip", utils.GetClientIP(r)).
				Str("user_agent", r.Header.Get("User-Agent")).
				Msg("Request started")

			next.ServeHTTP(wrapped, r)

			duration := time.Since(startTime)

			logEvent := log.Info()
			switch {
			case wrapped.statusCode >= 500:
				logEvent = log.Error()
			case wrapped.statusCode >= 400:
				logEvent = log.Warn()
			}

			logEvent.
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status_code", wrapped.statusCode).
				Int64("response_size", wrapped.responseSize).
				Dur("duration", duration).
				Msg("Request completed")
		})
	}
}

// shouldSkipLogging reports whether the path is excluded from logging.
func shouldSkipLogging(path string, skipPaths []string) bool {
	for _, skipPath := range skipPaths {
		if path == skipPath {
			return true
		}
		if strings.HasSuffix(skipPath, "*") && strings.HasPrefix(path, strings.TrimSuffix(skipPath, "*")) {
			return true
		}
	}
	return false
}
