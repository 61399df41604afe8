package entities

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable code attached to domain errors.
type ErrorCode string

const (
	// ErrorInvalidEstate indicates a non-positive estate value.
	ErrorInvalidEstate ErrorCode = "INVALID_ESTATE"
	// ErrorUnknownCategory indicates a category id the directory does not know.
	ErrorUnknownCategory ErrorCode = "UNKNOWN_CATEGORY"
	// ErrorInvalidQuantity indicates a quantity outside the range allowed for the category.
	ErrorInvalidQuantity ErrorCode = "INVALID_QUANTITY"
	// ErrorDuplicateCategory indicates the same category appears on two request lines.
	ErrorDuplicateCategory ErrorCode = "DUPLICATE_CATEGORY"
	// ErrorConflictingSpouse indicates both husband and wife were supplied.
	ErrorConflictingSpouse ErrorCode = "CONFLICTING_SPOUSE"
	// ErrorEmptyRequest indicates a request without any heir line.
	ErrorEmptyRequest ErrorCode = "EMPTY_REQUEST"
	// ErrorInternalInconsistency indicates the pipeline produced a result that breaks its own invariants.
	ErrorInternalInconsistency ErrorCode = "INTERNAL_INCONSISTENCY"
)

var (
	// ErrInvalidInput matches every domain error caused by the request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternalInconsistency matches errors raised when a pipeline invariant is violated.
	ErrInternalInconsistency = errors.New("internal inconsistency")
)

// DomainError represents a structured error raised by the inheritance engine.
type DomainError struct {
	Code    ErrorCode
	Field   string
	Message string
}

// Error returns the formatted domain error string.
func (e DomainError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}

	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// Is lets errors.Is match the ErrInvalidInput and ErrInternalInconsistency sentinels.
func (e DomainError) Is(target error) bool {
	switch target {
	case ErrInternalInconsistency:
		return e.Code == ErrorInternalInconsistency
	case ErrInvalidInput:
		return e.Code != ErrorInternalInconsistency
	}
	return false
}

// NewDomainError creates a domain error with code, field, and message.
func NewDomainError(code ErrorCode, field, message string) error {
	return DomainError{Code: code, Field: field, Message: message}
}

// NewInconsistencyError reports a violated pipeline invariant.
func NewInconsistencyError(format string, args ...any) error {
	return DomainError{Code: ErrorInternalInconsistency, Message: fmt.Sprintf(format, args...)}
}
