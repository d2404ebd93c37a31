package errors

// ErrorConfig error handling middleware settings.
type ErrorConfig struct {
	ShowStackTrace  bool           // include stack traces in responses (development only)
	CustomErrorMap  map[int]string // per-status custom messages
	IncludeHeaders  []string       // headers preserved on error responses
	EnablePanicLogs bool
	MaxErrorLength  int
}

// DefaultErrorConfig default error handling settings.
func DefaultErrorConfig() *ErrorConfig {
	return &ErrorConfig{
		ShowStackTrace: false,
		CustomErrorMap: map[int]string{
			400: "Invalid request. Check your parameters.",
			401: "Authentication required.",
			403: "You are not allowed to perform this action.",
			404: "The requested resource was not found.",
			409: "Conflict. The operation cannot be completed right now.",
			429: "Too many requests. Try again later.",
			500: "Server error. The team has been notified.",
		},
		IncludeHeaders:  []string{"X-Request-ID", "X-RateLimit-Remaining"},
		EnablePanicLogs: true,
		MaxErrorLength:  500,
	}
}

// DevelopmentErrorConfig settings for local development.
func DevelopmentErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.ShowStackTrace = true
	config.MaxErrorLength = 2000
	return config
}

// ProductionErrorConfig hardened settings for production.
func ProductionErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.ShowStackTrace = false
	config.MaxErrorLength = 200
	return config
}
