package plant

import (
	"encoding/json"
	"fmt"

	"github.com/tarwn/consuming-logs/internal/domain/shared"
)

// ProductionOrder tracks manufacturing progress against a sales order.
//
// Invariants:
// - completedQuantity only increases
// - completedQuantity never exceeds orderQuantity
type ProductionOrder struct {
	number            string
	salesOrderNumber  string
	partNumber        string
	orderQuantity     int
	completedQuantity int
}

// NewProductionOrder creates an unnumbered production order with nothing completed
func NewProductionOrder(salesOrderNumber, partNumber string, orderQuantity int) *ProductionOrder {
	return &ProductionOrder{
		salesOrderNumber: salesOrderNumber,
		partNumber:       partNumber,
		orderQuantity:    orderQuantity,
	}
}

func (o ProductionOrder) Number() string           { return o.number }
func (o ProductionOrder) SalesOrderNumber() string { return o.salesOrderNumber }
func (o ProductionOrder) PartNumber() string       { return o.partNumber }
func (o ProductionOrder) OrderQuantity() int       { return o.orderQuantity }
func (o ProductionOrder) CompletedQuantity() int   { return o.completedQuantity }

// RemainingQuantity is the amount still to be produced
func (o ProductionOrder) RemainingQuantity() int {
	return o.orderQuantity - o.completedQuantity
}

// IsComplete reports whether the full order quantity has been produced
func (o ProductionOrder) IsComplete() bool {
	return o.completedQuantity == o.orderQuantity
}

// AssignNumber sets the order number. A number can be assigned only once.
func (o *ProductionOrder) AssignNumber(number string) error {
	if o.number != "" {
		return NewNumberAlreadyAssignedError(KindProductionOrder, o.number, number)
	}
	o.number = number
	return nil
}

// IncreaseCompletedQuantity records produced units
func (o *ProductionOrder) IncreaseCompletedQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewValidationError("quantity", fmt.Sprintf("cannot decrease completed quantity by %d", -quantity))
	}
	if o.completedQuantity+quantity > o.orderQuantity {
		return shared.NewValidationError("quantity", fmt.Sprintf(
			"production order %s would complete %d of %d", o.number, o.completedQuantity+quantity, o.orderQuantity))
	}
	o.completedQuantity += quantity
	return nil
}

func (o ProductionOrder) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ProductionOrderNumber string `json:"productionOrderNumber"`
		SalesOrderNumber      string `json:"salesOrderNumber"`
		PartNumber            string `json:"partNumber"`
		OrderQuantity         int    `json:"orderQuantity"`
		CompletedQuantity     int    `json:"completedQuantity"`
	}{o.number, o.salesOrderNumber, o.partNumber, o.orderQuantity, o.completedQuantity})
}
