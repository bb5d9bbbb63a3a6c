// Package businessflow contains the core business logic for analytics ingestion.
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Export errors
	ErrUnknownLeadKind = errors.New("unknown lead kind")
	ErrNoLeadsToExport = errors.New("no leads to export")
)

func IsUnknownLeadKind(err error) bool {
	return errors.Is(err, ErrUnknownLeadKind)
}

func IsNoLeadsToExport(err error) bool {
	return errors.Is(err, ErrNoLeadsToExport)
}

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
