package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is matched by any error caused by a 401 response. The
// caller is expected to drop its credentials.
var ErrUnauthorized = errors.New("remote: unauthorized")

// NetworkError indicates the request never produced a response.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("remote: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError indicates the server answered with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote: %s %s returned %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("remote: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Is makes errors.Is(err, ErrUnauthorized) true for 401 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
