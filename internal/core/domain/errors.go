package domain

import (
	"errors"
	"fmt"
)

// AmountTolerance is the single tolerance applied wherever split totals are
// reconciled against a target sum. Read-side filtering (dashboard counterparty
// omission) intentionally uses exact == 0 instead; see BalanceService.
const AmountTolerance = 0.01

var ErrNotAuthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrExpenseNotFound = errors.New("expense not found")
var ErrSettlementNotFound = errors.New("settlement not found")
var ErrGroupNotFound = errors.New("group not found")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError describes malformed or non-reconciling input on a single
// operation. For numeric reconciliation failures Expected and Actual carry
// the target and computed sums.
type ValidationError struct {
	Reason   string
	Expected float64
	Actual   float64
}

func (e *ValidationError) Error() string {
	if e.Expected != 0 || e.Actual != 0 {
		return fmt.Sprintf("%s (expected %.2f, got %.2f)", e.Reason, e.Expected, e.Actual)
	}
	return e.Reason
}

// NewValidationError builds a ValidationError without numeric context.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// NewReconciliationError builds a ValidationError naming the expected vs.
// actual sum.
func NewReconciliationError(reason string, expected, actual float64) *ValidationError {
	return &ValidationError{Reason: reason, Expected: expected, Actual: actual}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
