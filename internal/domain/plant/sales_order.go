package plant

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SalesOrder is a customer order for a finished good
type SalesOrder struct {
	number     string
	partNumber string
	quantity   int
	unitPrice  decimal.Decimal
}

// NewSalesOrder creates an unnumbered sales order
func NewSalesOrder(partNumber string, quantity int, unitPrice decimal.Decimal) *SalesOrder {
	return &SalesOrder{
		partNumber: partNumber,
		quantity:   quantity,
		unitPrice:  unitPrice,
	}
}

func (o SalesOrder) Number() string             { return o.number }
func (o SalesOrder) PartNumber() string         { return o.partNumber }
func (o SalesOrder) Quantity() int              { return o.quantity }
func (o SalesOrder) UnitPrice() decimal.Decimal { return o.unitPrice }

// TotalPrice is quantity × unit price
func (o SalesOrder) TotalPrice() decimal.Decimal {
	return o.unitPrice.Mul(decimal.NewFromInt(int64(o.quantity)))
}

// AssignNumber sets the order number. A number can be assigned only once.
func (o *SalesOrder) AssignNumber(number string) error {
	if o.number != "" {
		return NewNumberAlreadyAssignedError(KindSalesOrder, o.number, number)
	}
	o.number = number
	return nil
}

// GenerateProductionOrder creates the production order that fulfils this sales order
func (o *SalesOrder) GenerateProductionOrder() (*ProductionOrder, error) {
	po := NewProductionOrder(o.number, o.partNumber, o.quantity)
	if err := po.AssignNumber(o.number + "-production"); err != nil {
		return nil, err
	}
	return po, nil
}

func (o SalesOrder) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SalesOrderNumber string          `json:"salesOrderNumber"`
		PartNumber       string          `json:"partNumber"`
		Quantity         int             `json:"quantity"`
		UnitPrice        decimal.Decimal `json:"unitPrice"`
	}{o.number, o.partNumber, o.quantity, o.unitPrice})
}
