package apperror

import (
	"errors"
	"fmt"
)

// Class says how a failure may be recovered.
type Class string

const (
	// ClassValidation is bad input. Never retried.
	ClassValidation Class = "validation"
	// ClassRetriable recovers through queue redelivery or the next poll.
	ClassRetriable Class = "retriable"
	// ClassPermanent is a terminal rejection by a provider.
	ClassPermanent Class = "permanent"
)

// AppError is a structured error carrying its failure class.
type AppError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Class   Class  `json:"class"`
	Err     error  `json:"-"` // Wrapped internal error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, class Class) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Class:   class,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, class Class, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Class:   class,
		Err:     err,
	}
}

// ClassOf returns the class of the first AppError in err's chain.
// Unclassified errors are treated as retriable.
func ClassOf(err error) Class {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Class
	}
	return ClassRetriable
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// ---- Validation (VAL) ----

func ErrInvalidAmount() *AppError {
	return New("VAL_001", "Amount must be positive", ClassValidation)
}

func ErrUnsupportedAsset(chain, asset string) *AppError {
	return New("VAL_002", fmt.Sprintf("Asset %s is not supported on %s", asset, chain), ClassValidation)
}

func ErrUnsupportedChain(chain string) *AppError {
	return New("VAL_003", fmt.Sprintf("Chain %s is not supported", chain), ClassValidation)
}

func ErrInvalidAddress(address string) *AppError {
	return New("VAL_004", fmt.Sprintf("Invalid address %q", address), ClassValidation)
}

func ErrMemoUnsupported(chain string) *AppError {
	return New("VAL_005", fmt.Sprintf("Memo is not supported on %s", chain), ClassValidation)
}

func ErrMalformedMessage(err error) *AppError {
	return Wrap("VAL_006", "Malformed message", ClassValidation, err)
}

// Validation returns a generic validation error.
func Validation(message string) *AppError {
	return New("VAL_000", message, ClassValidation)
}

// ---- Ledger (LED) ----

func ErrLedgerTimeout(err error) *AppError {
	return Wrap("LED_001", "Ledger did not confirm the submission", ClassRetriable, err)
}

func ErrLedgerRejected(err error) *AppError {
	return Wrap("LED_002", "Ledger rejected the transaction", ClassPermanent, err)
}

func ErrTransactionNotFound(txID string) *AppError {
	return New("LED_003", fmt.Sprintf("Transaction %s not found", txID), ClassRetriable)
}

func ErrLedgerUnavailable(err error) *AppError {
	return Wrap("LED_004", "Ledger unavailable", ClassRetriable, err)
}

// ---- Lock (LCK) ----

func ErrLockUnavailable(err error) *AppError {
	return Wrap("LCK_001", "Lock acquisition failed", ClassRetriable, err)
}

func ErrLockLost(err error) *AppError {
	return Wrap("LCK_002", "Lock lost while held", ClassRetriable, err)
}

// ---- Exchange (EXC) ----

func ErrExchangeUnavailable(err error) *AppError {
	return Wrap("EXC_001", "Exchange unavailable", ClassRetriable, err)
}

func ErrExchangeRejected(err error) *AppError {
	return Wrap("EXC_002", "Exchange rejected the request", ClassPermanent, err)
}

func ErrExchangeBudgetExhausted() *AppError {
	return New("EXC_003", "Exchange request budget exhausted", ClassRetriable)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", ClassRetriable, err)
}

// InternalError wraps an unexpected failure.
func InternalError(err error) *AppError {
	return Wrap("SYS_002", "Internal error", ClassRetriable, err)
}
