package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "taskops/internal/errors"
)

// TimestampLayout renders envelope timestamps in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Response is the envelope returned by every API endpoint.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Timestamp returns the current time formatted for responses.
func Timestamp() string {
	return time.Now().UTC().Format(TimestampLayout)
}

func respond(c echo.Context, status int, data interface{}, message string) error {
	return c.JSON(status, Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: Timestamp(),
	})
}

// fail builds an error the router's error handler renders as a failure envelope.
func fail(status int, message string) *echo.HTTPError {
	return echo.NewHTTPError(status, Response{
		Success:   false,
		Error:     message,
		Timestamp: Timestamp(),
	})
}

func badRequest(message string) *echo.HTTPError {
	return fail(http.StatusBadRequest, message)
}

func notFound(message string) *echo.HTTPError {
	return fail(http.StatusNotFound, message)
}

// readError maps an error from a read operation. Unclassified errors are
// returned as-is and rendered as internal server errors.
func readError(err error) error {
	return mapped(apperrors.MapErrorToHTTP(err), err)
}

// writeError maps an error from create, update or delete.
func writeError(err error) error {
	return mapped(apperrors.MapWriteErrorToHTTP(err), err)
}

func mapped(httpErr *apperrors.HTTPError, err error) error {
	if httpErr.StatusCode >= http.StatusInternalServerError {
		return err
	}
	return fail(httpErr.StatusCode, httpErr.Message)
}

// isoLocalLayout is an ISO timestamp without a zone, read as UTC.
const isoLocalLayout = "2006-01-02T15:04:05.999999999"

// parseDate accepts RFC 3339 timestamps, zone-less ISO timestamps and
// YYYY-MM-DD dates. Values without a zone are taken as UTC.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(isoLocalLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, value)
}
