package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrMissingField     = fmt.Errorf("%w: missing field", ErrValidation)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid email", ErrValidation)
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrNotifier         = errors.New("notifier failure")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInternal         = errors.New("internal server error")
)

// AppError carries a base sentinel (used for errors.Is and status mapping),
// a message that is safe to show to callers, and the underlying cause.
type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

// Cause returns the wrapped low-level error, if any.
func (e *AppError) Cause() error {
	return e.Err
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewMissingField(details string) *AppError {
	return NewAppError(ErrMissingField, "Name, email, and mobile are required", details, nil)
}

func NewInvalidEmail(details string) *AppError {
	return NewAppError(ErrInvalidEmail, "Please provide a valid email address", details, nil)
}

func NewNotFound(resource string) *AppError {
	return NewAppError(ErrNotFound, fmt.Sprintf("%s not found", resource), "", nil)
}

func NewStoreUnavailable(details string, err error) *AppError {
	return NewAppError(ErrStoreUnavailable, "Database not connected", details, err)
}

func NewNotifier(channel string, err error) *AppError {
	return NewAppError(ErrNotifier, "Notification failed", channel, err)
}

// NewUnauthorized reports a rejected credential; msg is shown to the caller.
func NewUnauthorized(msg string, err error) *AppError {
	return NewAppError(ErrUnauthorized, msg, "", err)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "Something went wrong. Please try again later.", details, err)
}

// Message returns the caller-facing message for err. Errors that are not
// AppErrors are never described to callers.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong. Please try again later."
}

func ToHTTPStatus(err error) int {
	if errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
