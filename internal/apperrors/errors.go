package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a non-positive or otherwise unusable amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInsufficientFunds indicates a debit larger than the account balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAccountInactive indicates a debit or credit against a deactivated account.
var ErrAccountInactive = errors.New("account is inactive")

// ErrMalformedTransaction indicates a transaction with neither source nor destination.
var ErrMalformedTransaction = errors.New("malformed transaction")

// ErrInvalidState indicates an illegal transaction status transition attempt.
var ErrInvalidState = errors.New("invalid transaction state")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrConflict indicates a lost concurrent compare-and-set race.
// Callers should retry with fresh state rather than assume failure.
var ErrConflict = errors.New("concurrent update conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
