package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError covers malformed or empty input, e.g. submitting an
// empty cart or a negative quantity.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidStateError covers an operation attempted against the wrong
// lifecycle state, e.g. editing a paid order.
type InvalidStateError struct {
	Msg string
}

func (e *InvalidStateError) Error() string { return e.Msg }

func InvalidStatef(format string, args ...interface{}) error {
	return &InvalidStateError{Msg: fmt.Sprintf(format, args...)}
}

// AuthError covers bad credentials and expired sessions. Forbidden marks
// a valid session that lacks the role for the operation.
type AuthError struct {
	Msg       string
	Forbidden bool
}

func (e *AuthError) Error() string { return e.Msg }

func Authf(format string, args ...interface{}) error {
	return &AuthError{Msg: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...interface{}) error {
	return &AuthError{Msg: fmt.Sprintf(format, args...), Forbidden: true}
}

// NotFoundError covers a referenced order, menu item or user being absent.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func NotFoundf(format string, args ...interface{}) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// TransportError covers network failures talking to the API. Always
// recoverable: the caller retries on the next poll or manual refresh.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

func Transport(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var t *ValidationError
	return errors.As(err, &t)
}

func IsInvalidState(err error) bool {
	var t *InvalidStateError
	return errors.As(err, &t)
}

func IsAuth(err error) bool {
	var t *AuthError
	return errors.As(err, &t)
}

func IsNotFound(err error) bool {
	var t *NotFoundError
	return errors.As(err, &t)
}

func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// HTTPStatus maps the taxonomy onto response codes. InvalidState rides on
// 409 so clients can tell a stale lifecycle guard from bad input.
func HTTPStatus(err error) int {
	var authErr *AuthError
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsInvalidState(err):
		return http.StatusConflict
	case errors.As(err, &authErr):
		if authErr.Forbidden {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus reverses HTTPStatus for API clients decoding an error body.
func FromStatus(status int, msg string) error {
	switch status {
	case http.StatusBadRequest:
		return &ValidationError{Msg: msg}
	case http.StatusConflict:
		return &InvalidStateError{Msg: msg}
	case http.StatusUnauthorized:
		return &AuthError{Msg: msg}
	case http.StatusForbidden:
		return &AuthError{Msg: msg, Forbidden: true}
	case http.StatusNotFound:
		return &NotFoundError{Msg: msg}
	default:
		return fmt.Errorf("unexpected status %d: %s", status, msg)
	}
}
