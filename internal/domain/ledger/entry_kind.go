package ledger

import "fmt"

// EntryKind represents what caused a ledger entry
type EntryKind string

const (
	// EntryKindOpeningBalance is the plant's starting cash
	EntryKindOpeningBalance EntryKind = "OPENING_BALANCE"

	// EntryKindPurchaseOrder is a payment for received raw parts
	EntryKindPurchaseOrder EntryKind = "PURCHASE_ORDER"

	// EntryKindSalesOrder is a customer payment for shipped goods
	EntryKindSalesOrder EntryKind = "SALES_ORDER"
)

// AllEntryKinds returns all valid entry kinds
func AllEntryKinds() []EntryKind {
	return []EntryKind{
		EntryKindOpeningBalance,
		EntryKindPurchaseOrder,
		EntryKindSalesOrder,
	}
}

// String returns the string representation of the EntryKind
func (k EntryKind) String() string {
	return string(k)
}

// IsValid checks if the entry kind is valid
func (k EntryKind) IsValid() bool {
	switch k {
	case EntryKindOpeningBalance, EntryKindPurchaseOrder, EntryKindSalesOrder:
		return true
	default:
		return false
	}
}

// ToCategory maps the entry kind to its cash flow category
func (k EntryKind) ToCategory() (Category, error) {
	category, ok := KindToCategoryMap[k]
	if !ok {
		return "", fmt.Errorf("no category mapping for entry kind: %s", k)
	}
	return category, nil
}

// ParseEntryKind parses a string into an EntryKind
func ParseEntryKind(s string) (EntryKind, error) {
	k := EntryKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid entry kind: %s", s)
	}
	return k, nil
}
