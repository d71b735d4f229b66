package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error kinds surfaced in the "error" field of 4xx responses.
const (
	KindUnauthorized    = "UNAUTHORIZED"
	KindForbidden       = "FORBIDDEN"
	KindNotFound        = "NOT_FOUND"
	KindInvalidState    = "INVALID_STATE"
	KindDuplicateSerial = "DUPLICATE_SERIAL"
	KindNoValidDevices  = "NO_VALID_DEVICES"
	KindTooManyAttempts = "TOO_MANY_ATTEMPTS"
	KindValidation      = "VALIDATION_ERROR"
	KindConflict        = "CONFLICT"
	KindBadRequest      = "BAD_REQUEST"
	KindServerError     = "SERVER_ERROR"
)

var (
	// JWT and tokens
	ErrInvalidSigningMethod = errors.New("unexpected token signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")

	// Authorization
	ErrEmptyAuthHeader    = errors.New("authorization header is missing")
	ErrInvalidAuthHeader  = errors.New("malformed authorization header")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Context
	ErrClaimsNotFoundInContext = errors.New("session claims not found in request context")

	// Common
	ErrNotFound   = errors.New("record not found")
	ErrBadRequest = errors.New("bad request")
)

// HttpError carries everything the request boundary needs to render a
// structured error response: the HTTP status, a machine-readable kind, a
// human-readable message, optional response details, and the wrapped cause
// (logged server-side, never sent to the client).
type HttpError struct {
	Code    int
	Kind    string
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, kind, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Kind: kind, Message: message, Err: err, Details: details}
}

func Unauthorized(message string, err error) *HttpError {
	return NewHttpError(http.StatusUnauthorized, KindUnauthorized, message, err, nil)
}

func Forbidden(message string) *HttpError {
	return NewHttpError(http.StatusForbidden, KindForbidden, message, nil, nil)
}

func NotFound(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, KindNotFound, message, nil, nil)
}

// InvalidState names the offending current/target status pair.
func InvalidState(current, target string) *HttpError {
	return NewHttpError(
		http.StatusBadRequest,
		KindInvalidState,
		fmt.Sprintf("illegal status transition from %q to %q", current, target),
		nil,
		map[string]string{"current": current, "target": target},
	)
}

// DuplicateSerial reports every colliding serial number, not just the first,
// so the caller can correct the whole batch at once.
func DuplicateSerial(serials []string) *HttpError {
	return NewHttpError(
		http.StatusConflict,
		KindDuplicateSerial,
		"serial numbers already registered in another batch",
		nil,
		map[string]interface{}{"duplicates": serials},
	)
}

func NoValidDevices() *HttpError {
	return NewHttpError(
		http.StatusBadRequest,
		KindNoValidDevices,
		"none of the selected devices belong to the chosen batch",
		nil,
		nil,
	)
}

func TooManyAttempts(retryAfterSeconds int) *HttpError {
	return NewHttpError(
		http.StatusTooManyRequests,
		KindTooManyAttempts,
		"too many login attempts, try again later",
		nil,
		map[string]int{"retryAfter": retryAfterSeconds},
	)
}

// Validation enumerates all offending fields, not just the first.
func Validation(fields map[string]string) *HttpError {
	return NewHttpError(
		http.StatusBadRequest,
		KindValidation,
		"request validation failed",
		nil,
		map[string]interface{}{"fields": fields},
	)
}
