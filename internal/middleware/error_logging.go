package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/middleware/errors"
)

// logAPIError logs typed API errors with category context.
func logAPIError(err errors.APIError, r *http.Request, errorType string) {
	logEvent := log.Warn().
		Str("error_type", errorType).
		Str("error_message", err.Error()).
		Int("status_code", err.Status()).
		Str("path", r.URL.Path).
		Str("method", r.Method).
		Str("client_ip", getClientIP(r))

	switch e := err.(type) {
	case *errors.AuthError:
		logEvent.Str("category", "authentication").Msg("Authentication failed")

	case *errors.RBACError:
		logEvent.Str("category", "authorization").
			Str("resource", e.Resource).
			Str("action", e.Action).
			Msg("Authorization failed")

	case *errors.ValidationError:
		logEvent.Str("category", "validation").
			Str("field", e.Field).
			Interface("value", e.Value).
			Msg("Validation failed")

	default:
		logEvent.Str("category", "api_error").Msg("API error occurred")
	}
}

// logPanic logs a recovered panic with full request context.
func logPanic(panicInfo *errors.PanicInfo, config *errors.ErrorConfig) {
	logEvent := log.Error().
		Str("type", "panic").
		Str("request_id", panicInfo.RequestID).
		Str("method", panicInfo.Method).
		Str("path", panicInfo.Path).
		Str("client_ip", panicInfo.ClientIP).
		Str("user_agent", panicInfo.UserAgent).
		Time("timestamp", panicInfo.Timestamp).
		Interface("panic_value", panicInfo.Value)

	if config.EnablePanicLogs {
		logEvent.Str("stack_trace", panicInfo.Stack)
	}

	logEvent.Msg("Panic recovered")
}

// logError logs an error response at a level matching its status.
func logError(r *http.Request, statusCode int, message, requestID string) {
	logEvent := log.Warn()
	if statusCode >= 500 {
		logEvent = log.Error()
	}

	logEvent.
		Str("request_id", requestID).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status_code", statusCode).
		Str("error", message).
		Msg("Request failed")
}
