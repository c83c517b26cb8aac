package api

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestError is returned when the server answers with a non-2xx status.
type RequestError struct {
	Method string
	Path   string
	Status int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// TransportError is returned when the server could not be reached at all.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsStatus reports whether err is a RequestError carrying the given status.
func IsStatus(err error, status int) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == status
}

// IsUnreachable reports whether err means the API could not be contacted.
func IsUnreachable(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
