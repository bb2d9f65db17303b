package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid username or password"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// Ledger error taxonomy. ErrConfigMissing fails fast before any I/O is
// attempted; store and feed failures map to 502 because the upstream
// spreadsheet or price API is the party that failed, not the client.
var (
	ErrConfigMissing    = &AppError{Code: http.StatusUnprocessableEntity, Message: "Required store or feed reference is not configured"}
	ErrStoreUnavailable = &AppError{Code: http.StatusBadGateway, Message: "Ledger store is unreachable"}
	ErrFeedUnavailable  = &AppError{Code: http.StatusBadGateway, Message: "Price feed is unreachable"}
	ErrNoValidLines     = &AppError{Code: http.StatusBadRequest, Message: "Order has no valid lines"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// Wrap attaches detail text to one of the sentinel errors while keeping it
// matchable with errors.Is.
func Wrap(sentinel *AppError, detail string) error {
	return &wrappedError{sentinel: sentinel, detail: detail}
}

type wrappedError struct {
	sentinel *AppError
	detail   string
}

func (w *wrappedError) Error() string {
	return w.sentinel.Message + ": " + w.detail
}

func (w *wrappedError) Is(target error) bool {
	return target == w.sentinel
}

func (w *wrappedError) Unwrap() error {
	return w.sentinel
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if w := (*wrappedError)(nil); errors.As(err, &w) {
			return &AppError{Code: appErr.Code, Message: w.Error()}
		}
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
