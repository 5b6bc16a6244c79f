package types

import "fmt"

// Error types carried in the response envelope.
const (
	ErrorTypeValidation    = "validation"
	ErrorTypeConflict      = "conflict"
	ErrorTypeAuthorization = "authorization"
	ErrorTypeNotFound      = "not_found"
	ErrorTypeInternal      = "internal"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

func NewError(code int, errorType, format string, args ...any) *CustomError {
	return &CustomError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Type:    errorType,
	}
}
