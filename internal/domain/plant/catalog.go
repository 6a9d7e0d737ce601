package plant

import (
	"github.com/shopspring/decimal"
)

// BOMLine is one ingredient of a bill of materials: units of a raw part per finished unit
type BOMLine struct {
	PartNumber string
	Quantity   int
}

// FinishedGood is a product the plant sells
type FinishedGood struct {
	PartNumber string
	Name       string
	BOM        []BOMLine
	UnitPrice  decimal.Decimal
}

// Ratio returns how many units of the raw part one finished unit needs
func (g FinishedGood) Ratio(partNumber string) (int, bool) {
	for _, line := range g.BOM {
		if line.PartNumber == partNumber {
			return line.Quantity, true
		}
	}
	return 0, false
}

func (g FinishedGood) clone() FinishedGood {
	g.BOM = append([]BOMLine(nil), g.BOM...)
	return g
}

// RawPart is a purchasable raw material
type RawPart struct {
	PartNumber string
	UnitPrice  decimal.Decimal
}

// PriceQuote is the price a supplier offers for one unit of a raw part
type PriceQuote struct {
	PartNumber string
	UnitPrice  decimal.Decimal
}

// BestPriceQuote returns the cheapest known quote. Prices are static, so this is the base price.
func (p RawPart) BestPriceQuote() PriceQuote {
	return PriceQuote{PartNumber: p.PartNumber, UnitPrice: p.UnitPrice}
}

// ProductCatalog is an ordered, read-only list of finished goods
type ProductCatalog []FinishedGood

// Find looks up a finished good by part number
func (c ProductCatalog) Find(partNumber string) (FinishedGood, error) {
	for _, g := range c {
		if g.PartNumber == partNumber {
			return g, nil
		}
	}
	return FinishedGood{}, NewCatalogError("product", partNumber)
}

// Clone returns a deep copy
func (c ProductCatalog) Clone() ProductCatalog {
	out := make(ProductCatalog, 0, len(c))
	for _, g := range c {
		out = append(out, g.clone())
	}
	return out
}

// PartsCatalog is an ordered, read-only list of raw parts
type PartsCatalog []RawPart

// Find looks up a raw part by part number
func (c PartsCatalog) Find(partNumber string) (RawPart, error) {
	for _, p := range c {
		if p.PartNumber == partNumber {
			return p, nil
		}
	}
	return RawPart{}, NewCatalogError("parts", partNumber)
}

// Clone returns a copy
func (c PartsCatalog) Clone() PartsCatalog {
	return append(PartsCatalog(nil), c...)
}
