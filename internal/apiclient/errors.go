package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestCancelled is returned when a request hits the client
	// timeout or its context is cancelled.
	ErrRequestCancelled = errors.New("La solicitud fue cancelada. Intenta nuevamente.")
	// ErrNotAuthenticated is returned on a 401 response, after the stored
	// token has been cleared and the unauthorized callback has run.
	ErrNotAuthenticated = errors.New("Not authenticated")
)

// HTTPError is any non-2xx response other than 401.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d, message: %s", e.StatusCode, e.Body)
}

func IsCancelled(err error) bool {
	return errors.Is(err, ErrRequestCancelled)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}

// StatusCode extracts the HTTP status from err, or 0 when err is not an
// HTTP error. Unauthorized errors report 401.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	if IsUnauthorized(err) {
		return 401
	}
	return 0
}
