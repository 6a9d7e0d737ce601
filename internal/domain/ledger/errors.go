package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidEntry represents validation errors for ledger entries
type ErrInvalidEntry struct {
	Field  string
	Reason string
}

func (e *ErrInvalidEntry) Error() string {
	return fmt.Sprintf("invalid ledger entry: %s - %s", e.Field, e.Reason)
}

// ErrBalanceInvariantViolation represents errors when balance calculations don't match
type ErrBalanceInvariantViolation struct {
	BalanceBefore decimal.Decimal
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	Expected      decimal.Decimal
}

func (e *ErrBalanceInvariantViolation) Error() string {
	return fmt.Sprintf("balance invariant violated: balance_before=%s + amount=%s should equal %s, but got %s",
		e.BalanceBefore, e.Amount, e.Expected, e.BalanceAfter)
}

// ErrEntryNotFound represents errors when a persisted entry cannot be found
type ErrEntryNotFound struct {
	ID string
}

func (e *ErrEntryNotFound) Error() string {
	return fmt.Sprintf("ledger entry not found: id=%s", e.ID)
}
