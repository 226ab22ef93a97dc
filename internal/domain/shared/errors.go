package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError("OPTIMISTIC_LOCK_ERROR", "Resource was modified by another process")
	ErrOverPayment         = NewDomainError("OVERPAYMENT", "Payment exceeds outstanding amount")
	ErrInsufficientFunds   = NewDomainError("INSUFFICIENT_FUNDS", "Insufficient account balance")
	ErrInactiveAccount     = NewDomainError("INACTIVE_ACCOUNT", "Account is not active")
)

// IsDomainErrorCode reports whether err is a DomainError with the given code
func IsDomainErrorCode(err error, code string) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}
