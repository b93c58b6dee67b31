package models

import (
	"errors"
	"fmt"
)

var (
	ErrConflictData = errors.New("data conflicts with existing data")
	ErrDataNotFound = errors.New("data not found")
)

// DomainError is a non-retryable business rule violation.
// Reason is human-readable and travels as a failure message
// on compensable events.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string {
	return e.Reason
}

// NewDomainError creates domain error with formatted reason
func NewDomainError(format string, args ...any) *DomainError {
	return &DomainError{Reason: fmt.Sprintf(format, args...)}
}

// IsDomainError reports whether err is a business rule violation
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
