package ledger

import "fmt"

// Category represents the cash flow category for financial reporting
type Category string

const (
	// CategoryCapital represents cash the plant started with
	CategoryCapital Category = "CAPITAL"

	// CategoryMaterialCosts represents payments for raw parts
	CategoryMaterialCosts Category = "MATERIAL_COSTS"

	// CategorySalesRevenue represents income from invoiced sales orders
	CategorySalesRevenue Category = "SALES_REVENUE"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryCapital,
		CategoryMaterialCosts,
		CategorySalesRevenue,
	}
}

// KindToCategoryMap maps entry kinds to their categories
var KindToCategoryMap = map[EntryKind]Category{
	EntryKindOpeningBalance: CategoryCapital,
	EntryKindPurchaseOrder:  CategoryMaterialCosts,
	EntryKindSalesOrder:     CategorySalesRevenue,
}

// String returns the string representation of the Category
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryCapital, CategoryMaterialCosts, CategorySalesRevenue:
		return true
	default:
		return false
	}
}

// IsIncome returns true if the category represents income
func (c Category) IsIncome() bool {
	return c == CategorySalesRevenue
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
