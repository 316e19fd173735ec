package errors

import (
	"fmt"
	"net/http"

	"exposure/internal/errors"

	"github.com/google/uuid"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches errors carrying the same business code, so a copy made by
// WithDetails still matches the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Subscription errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"subscription request is invalid",
		"",
	)

	ErrSubscriptionNotFound = NewBaseError(
		http.StatusNotFound,
		"SUBSCRIPTION_NOT_FOUND",
		"subscription not found",
		"",
	)

	// Authentication errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"incorrect username or password",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"invalid or expired token",
		"",
	)

	// Publishing errors
	ErrSchedulerStopped = NewBaseError(
		http.StatusServiceUnavailable,
		"SCHEDULER_STOPPED",
		"publish scheduler is not running",
		"",
	)

	ErrSnapshotUnavailable = NewBaseError(
		http.StatusBadGateway,
		"SNAPSHOT_UNAVAILABLE",
		"mobile network state is unavailable",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// DeliveryError is a webhook delivery that failed, possibly after retries.
type DeliveryError struct {
	SubscriptionID uuid.UUID
	EventID        uuid.UUID
	Endpoint       string
	Attempts       int
	StatusCode     int
	Err            error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("delivery of event %s to %s failed after %d attempts: status %d",
			e.EventID, e.Endpoint, e.Attempts, e.StatusCode)
	}

	return fmt.Sprintf("delivery of event %s to %s failed after %d attempts: %v",
		e.EventID, e.Endpoint, e.Attempts, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// SnapshotUnavailableError aborts a single evaluation cycle.
type SnapshotUnavailableError struct {
	Err error
}

// NewSnapshotUnavailableError wraps the provider failure.
func NewSnapshotUnavailableError(err error) *SnapshotUnavailableError {
	return &SnapshotUnavailableError{Err: err}
}

func (e *SnapshotUnavailableError) Error() string {
	return "snapshot unavailable: " + e.Err.Error()
}

func (e *SnapshotUnavailableError) Unwrap() error {
	return e.Err
}

// HTTPCode returns the HTTP status code
func (e *SnapshotUnavailableError) HTTPCode() int {
	return ErrSnapshotUnavailable.HTTPCode()
}

// ErrorCode returns the business error code
func (e *SnapshotUnavailableError) ErrorCode() string {
	return ErrSnapshotUnavailable.ErrorCode()
}

// Message returns the user-friendly error message
func (e *SnapshotUnavailableError) Message() string {
	return ErrSnapshotUnavailable.Message()
}

// Details returns detailed error information
func (e *SnapshotUnavailableError) Details() string {
	return e.Err.Error()
}
