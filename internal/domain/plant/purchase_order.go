package plant

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PurchaseOrder buys raw parts from a supplier. The total price is locked at creation.
type PurchaseOrder struct {
	number     string
	partNumber string
	quantity   int
	unitPrice  decimal.Decimal
	totalPrice decimal.Decimal
}

// NewPurchaseOrder creates an unnumbered purchase order
func NewPurchaseOrder(partNumber string, quantity int, unitPrice decimal.Decimal) *PurchaseOrder {
	return &PurchaseOrder{
		partNumber: partNumber,
		quantity:   quantity,
		unitPrice:  unitPrice,
		totalPrice: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

func (o PurchaseOrder) Number() string              { return o.number }
func (o PurchaseOrder) PartNumber() string          { return o.partNumber }
func (o PurchaseOrder) Quantity() int               { return o.quantity }
func (o PurchaseOrder) UnitPrice() decimal.Decimal  { return o.unitPrice }
func (o PurchaseOrder) TotalPrice() decimal.Decimal { return o.totalPrice }

// AssignNumber sets the order number. A number can be assigned only once.
func (o *PurchaseOrder) AssignNumber(number string) error {
	if o.number != "" {
		return NewNumberAlreadyAssignedError(KindPurchaseOrder, o.number, number)
	}
	o.number = number
	return nil
}

func (o PurchaseOrder) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PurchaseOrderNumber string          `json:"purchaseOrderNumber"`
		PartNumber          string          `json:"partNumber"`
		Quantity            int             `json:"quantity"`
		UnitPrice           decimal.Decimal `json:"unitPrice"`
		TotalPrice          decimal.Decimal `json:"totalPrice"`
	}{o.number, o.partNumber, o.quantity, o.unitPrice, o.totalPrice})
}
