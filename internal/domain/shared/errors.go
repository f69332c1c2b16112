package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a DomainError with the same code.
// This lets errors.Is match sentinels against errors built at runtime.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error carrying an underlying cause
func WrapDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error codes
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeDuplicateDocument = "DUPLICATE_DOCUMENT"
	CodeNotFound          = "NOT_FOUND"
	CodeTransport         = "TRANSPORT_ERROR"
	CodeDecode            = "DECODE_ERROR"
)

// Common domain errors
var (
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrDuplicateDocument = NewDomainError(CodeDuplicateDocument, "Document is already registered")
	ErrValidation        = NewDomainError(CodeValidation, "Invalid input provided")
	ErrTransport         = NewDomainError(CodeTransport, "Remote service unavailable, try again")
	ErrDecode            = NewDomainError(CodeDecode, "Malformed payload")
)
