package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx answer from the API.
type Error struct {
	StatusCode int
	Path       string
	// Message is the server's human-readable "message" field, if it sent one.
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: POST %s: %d %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend: POST %s: %d %s", e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Message returns the server-supplied message carried by err, or fallback.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusCode returns the upstream status carried by err, or 0 when the request never got an answer.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
