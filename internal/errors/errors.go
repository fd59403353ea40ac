package errors

import (
	"errors"
	"net/http"
)

// Kind classifies domain errors independently of the transport.
type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindNotFound   Kind = "NOT_FOUND"
)

// Error is a classified domain error. Message is safe to show to API clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches errors of the same kind and message, so errors.Is works with the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// NewValidationError creates an error for missing or malformed input.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewNotFoundError creates an error for an absent entity.
func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

var (
	// ErrUserNotFound is returned when a user id is not in the store.
	ErrUserNotFound = NewNotFoundError("User not found")
	// ErrTaskNotFound is returned when a task id is not in the store.
	ErrTaskNotFound = NewNotFoundError("Task not found")
	// ErrReportNotFound is returned when a report id is not in the store.
	ErrReportNotFound = NewNotFoundError("Report not found")
)

// IsValidation reports whether err carries KindValidation.
func IsValidation(err error) bool {
	return hasKind(err, KindValidation)
}

// IsNotFound reports whether err carries KindNotFound.
func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

func hasKind(err error, kind Kind) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Kind == kind
	}
	return false
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors on the read path to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case IsValidation(err):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case IsNotFound(err):
		return NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// MapWriteErrorToHTTP maps errors raised by create, update and delete.
// A missing entity on this path is reported as 400, not 404.
func MapWriteErrorToHTTP(err error) *HTTPError {
	if IsNotFound(err) || IsValidation(err) {
		return NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return NewHTTPError(http.StatusInternalServerError, err.Error())
}
