package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one immutable line of the plant's financial ledger.
// Amount is positive for income and negative for payments.
type Entry struct {
	id            EntryID
	timestamp     time.Time
	kind          EntryKind
	category      Category
	amount        decimal.Decimal
	balanceBefore decimal.Decimal
	balanceAfter  decimal.Decimal
	reference     string
}

// NewEntry creates a new entry with validation
func NewEntry(
	timestamp time.Time,
	kind EntryKind,
	amount decimal.Decimal,
	balanceBefore decimal.Decimal,
	reference string,
) (*Entry, error) {
	if !kind.IsValid() {
		return nil, &ErrInvalidEntry{
			Field:  "kind",
			Reason: fmt.Sprintf("invalid entry kind: %s", kind),
		}
	}

	category, err := kind.ToCategory()
	if err != nil {
		return nil, &ErrInvalidEntry{Field: "category", Reason: err.Error()}
	}

	e := &Entry{
		id:            NewEntryID(),
		timestamp:     timestamp,
		kind:          kind,
		category:      category,
		amount:        amount,
		balanceBefore: balanceBefore,
		balanceAfter:  balanceBefore.Add(amount),
		reference:     reference,
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// ReconstructEntry rebuilds an entry from persistence without generating a new ID
func ReconstructEntry(
	id EntryID,
	timestamp time.Time,
	kind EntryKind,
	category Category,
	amount decimal.Decimal,
	balanceBefore decimal.Decimal,
	balanceAfter decimal.Decimal,
	reference string,
) *Entry {
	return &Entry{
		id:            id,
		timestamp:     timestamp,
		kind:          kind,
		category:      category,
		amount:        amount,
		balanceBefore: balanceBefore,
		balanceAfter:  balanceAfter,
		reference:     reference,
	}
}

// Validate checks that the entry satisfies all invariants
func (e *Entry) Validate() error {
	if e.reference == "" && e.kind != EntryKindOpeningBalance {
		return &ErrInvalidEntry{Field: "reference", Reason: "reference is required"}
	}

	expected := e.balanceBefore.Add(e.amount)
	if !e.balanceAfter.Equal(expected) {
		return &ErrBalanceInvariantViolation{
			BalanceBefore: e.balanceBefore,
			Amount:        e.amount,
			BalanceAfter:  e.balanceAfter,
			Expected:      expected,
		}
	}
	return nil
}

// Getters (all fields are immutable)

func (e *Entry) ID() EntryID                    { return e.id }
func (e *Entry) Timestamp() time.Time           { return e.timestamp }
func (e *Entry) Kind() EntryKind                { return e.kind }
func (e *Entry) Category() Category             { return e.category }
func (e *Entry) Amount() decimal.Decimal        { return e.amount }
func (e *Entry) BalanceBefore() decimal.Decimal { return e.balanceBefore }
func (e *Entry) BalanceAfter() decimal.Decimal  { return e.balanceAfter }
func (e *Entry) Reference() string              { return e.reference }
