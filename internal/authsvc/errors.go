package authsvc

import (
	"errors"
	"net/http"
)

var (
	ErrSessionNotFound = errors.New("Session not found")
	ErrAuthentication  = errors.New("Authentication failed")
	ErrRefresh         = errors.New("Failed to refresh token")
	ErrRefreshSession  = errors.New("Failed to refresh session")
)

// HTTPError is an error with the status code the handler answers with.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func unauthorized(message string, err error) *HTTPError {
	return &HTTPError{Status: http.StatusUnauthorized, Message: message, Err: err}
}
