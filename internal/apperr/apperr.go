// Package apperr holds the error taxonomy shared by the gateway, the services
// and the HTTP controllers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError reports malformed input. It is returned before any state is mutated.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Details, "; "))
}

func Validation(message string, details ...string) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}

// InvalidStateError reports a transition attempted out of order.
type InvalidStateError struct {
	Op    string
	State string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s an attempt in state %s", e.Op, e.State)
}

func InvalidState(op, state string) *InvalidStateError {
	return &InvalidStateError{Op: op, State: state}
}

// RemoteError is a network or backend failure. Message is passed through from the backend.
type RemoteError struct {
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		if e.Status != 0 {
			return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
		}
		return "backend error: " + e.Message
	}
	if e.Err != nil {
		return "backend unreachable: " + e.Err.Error()
	}
	return fmt.Sprintf("backend error (%d)", e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func Remote(status int, message string, err error) *RemoteError {
	return &RemoteError{Status: status, Message: message, Err: err}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsInvalidState(err error) bool {
	var s *InvalidStateError
	return errors.As(err, &s)
}

func IsRemote(err error) bool {
	var r *RemoteError
	return errors.As(err, &r)
}

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool {
	var r *RemoteError
	return errors.As(err, &r) && r.Status == http.StatusNotFound
}

// HTTPStatus maps an error to the status the dashboard should see.
func HTTPStatus(err error) int {
	var (
		v *ValidationError
		s *InvalidStateError
		r *RemoteError
	)
	switch {
	case errors.As(err, &v):
		return http.StatusBadRequest
	case errors.As(err, &s):
		return http.StatusConflict
	case errors.As(err, &r):
		if r.Status >= 400 && r.Status < 500 {
			return r.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Details returns the detail lines carried by err, if any.
func Details(err error) []string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Details
	}
	return nil
}
