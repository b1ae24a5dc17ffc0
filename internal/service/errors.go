package service

import (
	"errors"
	"fmt"

	"github.com/abramin/Victus-sub005/internal/repository"
)

// ErrorCode classifies a service failure for API/CLI presentation.
type ErrorCode string

const (
	CodeValidation  ErrorCode = "VALIDATION"
	CodeNotFound    ErrorCode = "NOT_FOUND"
	CodeConflict    ErrorCode = "CONFLICT"
	CodeUnavailable ErrorCode = "UNAVAILABLE"
)

// ServiceError is the typed error every use case returns on failure.
// Insufficient data is never a ServiceError: analyses that cannot project or
// estimate return tagged result states instead.
type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validationf builds a VALIDATION error.
func Validationf(format string, args ...any) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a NOT_FOUND error.
func NotFoundf(format string, args ...any) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf builds a CONFLICT error.
func Conflictf(format string, args ...any) *ServiceError {
	return &ServiceError{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// Unavailablef builds an UNAVAILABLE error.
func Unavailablef(format string, args ...any) *ServiceError {
	return &ServiceError{Code: CodeUnavailable, Message: fmt.Sprintf(format, args...)}
}

// AsServiceError extracts a *ServiceError from an error chain, translating
// the repository sentinel so storage misses surface as NOT_FOUND.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	if errors.Is(err, repository.ErrNotFound) {
		return &ServiceError{Code: CodeNotFound, Message: err.Error()}, true
	}
	return nil, false
}
