package errors

// APIError is implemented by error types that carry an HTTP status.
type APIError interface {
	error
	Status() int
}

// AuthError authentication failure.
type AuthError struct {
	Message    string
	StatusCode int
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Status() int   { return e.StatusCode }

// RBACError authorization failure.
type RBACError struct {
	Message    string
	StatusCode int
	Resource   string
	Action     string
}

func (e *RBACError) Error() string { return e.Message }
func (e *RBACError) Status() int   { return e.StatusCode }

// ValidationError malformed input.
type ValidationError struct {
	Message    string
	StatusCode int
	Field      string
	Value      interface{}
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Status() int   { return e.StatusCode }
