package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/middleware/errors"
)

// NotFoundJSONHandler returns a JSON 404 handler for unmatched routes.
func NotFoundJSONHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := errors.ErrorResponse{
			Success:   false,
			Error:     "Endpoint not found. Check the API documentation.",
			Code:      http.StatusNotFound,
			Timestamp: time.Now().Format(time.RFC3339),
			RequestID: w.Header().Get("X-Request-ID"),
			Details: map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)

		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Error().Err(err).Msg("NotFound JSON encoding failed")
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}

		log.Warn().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client_ip", getClientIP(r)).
			Msg("404 Not Found")
	})
}
