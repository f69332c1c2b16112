package person

import (
	"errors"
	"fmt"

	"github.com/finapp2p/backend/internal/domain/shared"
)

// Person errors
var (
	ErrNotFound          = shared.NewDomainError(shared.CodeNotFound, "Person not found")
	ErrDuplicateDocument = shared.NewDomainError(shared.CodeDuplicateDocument, "This CPF/CNPJ is already registered")
)

// NewValidationError reports a missing or invalid input field
func NewValidationError(field, message string) *shared.DomainError {
	return shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("%s: %s", field, message))
}

// NewTransportError reports a network or storage failure during op
func NewTransportError(op string, cause error) *shared.DomainError {
	return shared.WrapDomainError(shared.CodeTransport, "failed to "+op, cause)
}

// IsDuplicateDocument reports whether err is a document uniqueness conflict
func IsDuplicateDocument(err error) bool {
	return errors.Is(err, shared.ErrDuplicateDocument)
}

// IsNotFound reports whether err targets a nonexistent person
func IsNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}

// IsValidation reports whether err is an input validation failure
func IsValidation(err error) bool {
	return errors.Is(err, shared.ErrValidation)
}

// IsTransport reports whether err is a network or storage failure
func IsTransport(err error) bool {
	return errors.Is(err, shared.ErrTransport)
}

// DecodeError is returned when a wire payload cannot be parsed into a Row
type DecodeError struct {
	Field  string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return "decode person row: " + e.Reason
	}
	return fmt.Sprintf("decode person row: field %q: %s", e.Field, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is matches shared.ErrDecode
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*shared.DomainError)
	return ok && t.Code == shared.CodeDecode
}
