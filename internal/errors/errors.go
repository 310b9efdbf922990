package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InvalidInput       ErrorCode = "invalid_input"
	ValidationFailed   ErrorCode = "validation_failed"
	MethodUnsupported  ErrorCode = "method_unsupported"
	RefundNotSupported ErrorCode = "refund_not_supported"
	TransactionMissing ErrorCode = "tx_not_found"
	MethodMismatch     ErrorCode = "method_mismatch"
	InvalidTransition  ErrorCode = "invalid_transition"
	CurrencyMismatch   ErrorCode = "currency_mismatch"
	PayerNotFound      ErrorCode = "payer_not_found"
	InternalError      ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// HTTPStatus maps error codes to HTTP status codes for the API surface.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case InvalidInput, ValidationFailed, MethodMismatch, InvalidTransition, CurrencyMismatch:
		return http.StatusBadRequest
	case MethodUnsupported, RefundNotSupported:
		return http.StatusUnprocessableEntity
	case TransactionMissing, PayerNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors for common cases
var (
	ErrTransactionNotFound = NewAppError(TransactionMissing, "tx not found")
	ErrPayerNotFound       = NewAppError(PayerNotFound, "payer not found")
)
