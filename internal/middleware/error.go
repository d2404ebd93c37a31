package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/middleware/errors"
)

// ErrorHandlingMiddleware centralized error handling and panic recovery.
// Typed APIErrors panicked by downstream middleware are converted to JSON
// responses with their status; anything else becomes a logged 500.
func ErrorHandlingMiddleware(config *errors.ErrorConfig) func(http.Handler) http.Handler {
	if config == nil {
		config = errors.DefaultErrorConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					var statusCode = 500
					var errorMessage string
					var isAPIError bool

					switch err := recovered.(type) {
					case errors.APIError:
						statusCode = err.Status()
						errorMessage = err.Error()
						isAPIError = true
						logAPIError(err, r, fmt.Sprintf("%T", err))

					case error:
						errorMessage = err.Error()

					default:
						errorMessage = fmt.Sprintf("Server panic: %v", recovered)
					}

					var stack string
					if !isAPIError {
						panicInfo := &errors.PanicInfo{
							Value:     recovered,
							Stack:     string(debug.Stack()),
							RequestID: w.Header().Get("X-Request-ID"),
							Method:    r.Method,
							Path:      r.URL.Path,
							UserAgent: r.Header.Get("User-Agent"),
							ClientIP:  getClientIP(r),
							Timestamp: time.Now(),
						}
						logPanic(panicInfo, config)
						stack = panicInfo.Stack
					}

					sendErrorResponse(w, r, statusCode, errorMessage, config, stack)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// sendErrorResponse writes the standardized JSON error body.
func sendErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string, config *errors.ErrorConfig, stack string) {
	response := errors.ErrorResponse{
		Success:   false,
		Error:     truncateString(message, config.MaxErrorLength),
		Code:      statusCode,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: w.Header().Get("X-Request-ID"),
	}

	if config.ShowStackTrace && stack != "" {
		response.Stack = stack
	}

	response.Details = map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().
			Err(err).
			Str("request_id", response.RequestID).
			Msg("Error response JSON encoding failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logError(r, statusCode, message, response.RequestID)
}

// ErrorHandlingMiddlewareForDevelopment convenience wrapper.
func ErrorHandlingMiddlewareForDevelopment() func(http.Handler) http.Handler {
	return ErrorHandlingMiddleware(errors.DevelopmentErrorConfig())
}

// ErrorHandlingMiddlewareForProduction convenience wrapper.
func ErrorHandlingMiddlewareForProduction() func(http.Handler) http.Handler {
	return ErrorHandlingMiddleware(errors.ProductionErrorConfig())
}
