package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnavailable     = errors.New("server unavailable")
)

// ErrNoToken is returned, without any network traffic, when a protected
// endpoint is called with no session token.
var ErrNoToken = &APIError{Op: "API Error", Status: http.StatusUnauthorized, Body: `{"error":"No token"}`}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	op := e.Op
	if op == "" {
		op = "API Error"
	}
	if e.Body == "" {
		return fmt.Sprintf("%s: %d", op, e.Status)
	}
	return fmt.Sprintf("%s: %d - %s", op, e.Status, e.Body)
}

// Is makes every 401 match ErrUnauthenticated.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthenticated && e.Status == http.StatusUnauthorized
}
