package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is an append-only sequence of entries. Its balance is always the
// sum of every appended amount.
type Ledger struct {
	entries []*Entry
	balance decimal.Decimal
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{balance: decimal.Zero}
}

// Append records a new entry and moves the balance
func (l *Ledger) Append(at time.Time, kind EntryKind, amount decimal.Decimal, reference string) (*Entry, error) {
	entry, err := NewEntry(at, kind, amount, l.balance, reference)
	if err != nil {
		return nil, err
	}
	l.entries = append(l.entries, entry)
	l.balance = entry.BalanceAfter()
	return entry, nil
}

// Balance returns the running total
func (l *Ledger) Balance() decimal.Decimal {
	return l.balance
}

// Entries returns the entries in append order. The slice is a copy; entries are immutable.
func (l *Ledger) Entries() []*Entry {
	return append([]*Entry(nil), l.entries...)
}

// Len returns the number of entries
func (l *Ledger) Len() int {
	return len(l.entries)
}
