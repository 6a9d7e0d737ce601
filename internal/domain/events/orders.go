package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarwn/consuming-logs/internal/domain/plant"
)

type SalesOrderPlaced struct {
	Envelope
	SalesOrder plant.SalesOrder `json:"salesOrder"`
}

func NewSalesOrderPlaced(at time.Time, order plant.SalesOrder) SalesOrderPlaced {
	return SalesOrderPlaced{Envelope: newEnvelope(TypeSalesOrderPlaced, at), SalesOrder: order}
}

func (SalesOrderPlaced) isEvent() {}

type ProductionOrderPlanned struct {
	Envelope
	ProductionOrder plant.ProductionOrder `json:"productionOrder"`
}

func NewProductionOrderPlanned(at time.Time, order plant.ProductionOrder) ProductionOrderPlanned {
	return ProductionOrderPlanned{Envelope: newEnvelope(TypeProductionOrderPlanned, at), ProductionOrder: order}
}

func (ProductionOrderPlanned) isEvent() {}

// PurchaseOrderPlaced carries the inbound shipment tracked for the order
type PurchaseOrderPlaced struct {
	Envelope
	PurchaseOrder plant.PurchaseOrder `json:"purchaseOrder"`
	Shipment      plant.Shipment      `json:"shipment"`
}

func NewPurchaseOrderPlaced(at time.Time, order plant.PurchaseOrder, shipment plant.Shipment) PurchaseOrderPlaced {
	return PurchaseOrderPlaced{
		Envelope:      newEnvelope(TypePurchaseOrderPlaced, at),
		PurchaseOrder: order,
		Shipment:      shipment,
	}
}

func (PurchaseOrderPlaced) isEvent() {}

type PurchaseOrderReceived struct {
	Envelope
	PurchaseOrder plant.PurchaseOrder `json:"purchaseOrder"`
}

func NewPurchaseOrderReceived(at time.Time, order plant.PurchaseOrder) PurchaseOrderReceived {
	return PurchaseOrderReceived{Envelope: newEnvelope(TypePurchaseOrderReceived, at), PurchaseOrder: order}
}

func (PurchaseOrderReceived) isEvent() {}

type ProductionOrderCompleted struct {
	Envelope
	ProductionOrder plant.ProductionOrder `json:"productionOrder"`
}

func NewProductionOrderCompleted(at time.Time, order plant.ProductionOrder) ProductionOrderCompleted {
	return ProductionOrderCompleted{Envelope: newEnvelope(TypeProductionOrderCompleted, at), ProductionOrder: order}
}

func (ProductionOrderCompleted) isEvent() {}

type SalesOrderShipped struct {
	Envelope
	Shipment   plant.Shipment   `json:"shipment"`
	SalesOrder plant.SalesOrder `json:"salesOrder"`
}

func NewSalesOrderShipped(at time.Time, shipment plant.Shipment, order plant.SalesOrder) SalesOrderShipped {
	return SalesOrderShipped{
		Envelope:   newEnvelope(TypeSalesOrderShipped, at),
		Shipment:   shipment,
		SalesOrder: order,
	}
}

func (SalesOrderShipped) isEvent() {}

type PurchaseOrderPaid struct {
	Envelope
	PurchaseOrder   plant.PurchaseOrder `json:"purchaseOrder"`
	TotalAmountPaid decimal.Decimal     `json:"totalAmountPaid"`
}

func NewPurchaseOrderPaid(at time.Time, order plant.PurchaseOrder, paid decimal.Decimal) PurchaseOrderPaid {
	return PurchaseOrderPaid{
		Envelope:        newEnvelope(TypePurchaseOrderPaid, at),
		PurchaseOrder:   order,
		TotalAmountPaid: paid,
	}
}

func (PurchaseOrderPaid) isEvent() {}

type SalesOrderInvoiced struct {
	Envelope
	SalesOrder     plant.SalesOrder `json:"salesOrder"`
	TotalAmountDue decimal.Decimal  `json:"totalAmountDue"`
}

func NewSalesOrderInvoiced(at time.Time, order plant.SalesOrder, due decimal.Decimal) SalesOrderInvoiced {
	return SalesOrderInvoiced{
		Envelope:       newEnvelope(TypeSalesOrderInvoiced, at),
		SalesOrder:     order,
		TotalAmountDue: due,
	}
}

func (SalesOrderInvoiced) isEvent() {}

type SalesOrderInvoicePaid struct {
	Envelope
	SalesOrder          plant.SalesOrder `json:"salesOrder"`
	TotalAmountReceived decimal.Decimal  `json:"totalAmountReceived"`
}

func NewSalesOrderInvoicePaid(at time.Time, order plant.SalesOrder, received decimal.Decimal) SalesOrderInvoicePaid {
	return SalesOrderInvoicePaid{
		Envelope:            newEnvelope(TypeSalesOrderInvoicePaid, at),
		SalesOrder:          order,
		TotalAmountReceived: received,
	}
}

func (SalesOrderInvoicePaid) isEvent() {}
