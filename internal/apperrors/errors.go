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

// Trading and wallet failures. Every one of these is rejected before any side
// effect unless stated otherwise.
var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInsufficientFunds    = errors.New("insufficient balance")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrUnknownSymbol        = errors.New("unknown symbol")
	ErrStaleQuote           = errors.New("price unavailable: quote is stale")
	ErrQuoteTimeout         = errors.New("price unavailable: quote request timed out")

	// ErrCompensationFailure means a second-step mutation failed after the first
	// succeeded and the automatic rollback failed too. Needs manual reconciliation.
	ErrCompensationFailure = errors.New("compensation failed, manual reconciliation required")

	// ErrStorageUnavailable is fatal for the operation; nothing is assumed committed.
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrOperationInProgress = errors.New("operation with this idempotency key is still in progress")
	ErrIdempotencyConflict = errors.New("idempotency key already used for a different operation")
)

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

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError wraps ErrValidation with a message.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// NewStorageError wraps ErrStorageUnavailable so callers can match it with errors.Is.
func NewStorageError(message string, err error) error {
	return NewAppError(503, message, fmt.Errorf("%w: %v", ErrStorageUnavailable, err))
}

var codes = []struct {
	err  error
	code string
}{
	// order matters: compensation failures wrap the original cause
	{ErrCompensationFailure, "COMPENSATION_FAILURE"},
	{ErrInvalidAmount, "INVALID_AMOUNT"},
	{ErrInsufficientFunds, "INSUFFICIENT_FUNDS"},
	{ErrInsufficientHoldings, "INSUFFICIENT_HOLDINGS"},
	{ErrUnknownSymbol, "UNKNOWN_SYMBOL"},
	{ErrStaleQuote, "STALE_QUOTE"},
	{ErrQuoteTimeout, "QUOTE_TIMEOUT"},
	{ErrStorageUnavailable, "STORAGE_UNAVAILABLE"},
	{ErrOperationInProgress, "OPERATION_IN_PROGRESS"},
	{ErrIdempotencyConflict, "IDEMPOTENCY_CONFLICT"},
	{ErrNotFound, "NOT_FOUND"},
	{ErrValidation, "VALIDATION_ERROR"},
	{ErrDuplicate, "DUPLICATE"},
}

// Code returns the stable machine-readable code for err, or "INTERNAL".
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "INTERNAL"
}

// FromCode is the inverse of Code. Unknown codes map to nil.
func FromCode(code string) error {
	for _, c := range codes {
		if c.code == code {
			return c.err
		}
	}
	return nil
}

// IsRetryable reports whether a client may safely resubmit the same request.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrCompensationFailure) {
		return false
	}
	return errors.Is(err, ErrQuoteTimeout) ||
		errors.Is(err, ErrStaleQuote) ||
		errors.Is(err, ErrStorageUnavailable) ||
		errors.Is(err, ErrOperationInProgress)
}
