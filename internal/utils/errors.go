package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
)

// Custom error types for the application
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInternalServer = errors.New("internal server error")
	ErrValidation     = errors.New("validation error")
	ErrDatabase       = errors.New("database error")
	ErrRateLimited    = errors.New("rate limit exceeded")
)

// AppError represents an application error with additional context
type AppError struct {
	Err        error  // The underlying error
	StatusCode int    // HTTP status code
	Message    string // Message sent to the client
	DevInfo    string // Additional information for developers, only logged
	Field      string // Field related to the error (for validation errors)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the given error and status code
func New(err error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewValidationError creates a new validation error for a specific field
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Field:      field,
	}
}

// NewNotFoundError creates a 404 error whose message is the exact response body.
// cause may be nil.
func NewNotFoundError(message string, cause error) *AppError {
	err := ErrNotFound
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrNotFound, cause)
	}
	return &AppError{
		Err:        err,
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

// NewDatabaseError wraps a failed query. The driver message becomes the client message.
func NewDatabaseError(err error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %w", ErrDatabase, err),
		StatusCode: http.StatusInternalServerError,
		Message:    err.Error(),
		DevInfo:    driverInfo(err),
	}
}

// NewInternalServerError creates a new internal server error
func NewInternalServerError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrInternalServer,
		StatusCode: http.StatusInternalServerError,
		Message:    constants.MsgInternalServerError,
		DevInfo:    devInfo,
	}
}

// NewRateLimitError creates the error returned to a client that exhausted its quota.
func NewRateLimitError() *AppError {
	return New(ErrRateLimited, http.StatusTooManyRequests, constants.MsgRateLimited)
}

// ParseError attempts to parse various types of errors into an AppError
func ParseError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, ErrNotFound) {
		return NewNotFoundError(constants.MsgPlayerNotFound, err)
	}

	if driverInfo(err) != "" {
		return NewDatabaseError(err)
	}

	return NewInternalServerError(err)
}

// driverInfo describes MySQL and PostgreSQL driver errors by their codes.
func driverInfo(err error) string {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case constants.MySQLErrNoSuchTable:
			return fmt.Sprintf("mysql %d: table vanished after discovery", myErr.Number)
		case constants.MySQLErrBadField:
			return fmt.Sprintf("mysql %d: column vanished after discovery", myErr.Number)
		}
		return fmt.Sprintf("mysql %d (%s)", myErr.Number, string(myErr.SQLState[:]))
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constants.PGErrUndefinedTable:
			return fmt.Sprintf("postgres %s: table vanished after discovery", pqErr.Code)
		case constants.PGErrUndefinedColumn:
			return fmt.Sprintf("postgres %s: column vanished after discovery", pqErr.Code)
		}
		return fmt.Sprintf("postgres %s (%s)", pqErr.Code, pqErr.Code.Name())
	}

	return ""
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, ErrNotFound)
}
