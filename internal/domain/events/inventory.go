package events

import (
	"time"

	"github.com/tarwn/consuming-logs/internal/domain/plant"
)

type PartsInventoryIncreased struct {
	Envelope
	PartNumber    string `json:"partNumber"`
	NewQuantity   int    `json:"newQuantity"`
	TotalQuantity int    `json:"totalQuantity"`
}

func NewPartsInventoryIncreased(at time.Time, partNumber string, added, total int) PartsInventoryIncreased {
	return PartsInventoryIncreased{
		Envelope:      newEnvelope(TypePartsInventoryIncreased, at),
		PartNumber:    partNumber,
		NewQuantity:   added,
		TotalQuantity: total,
	}
}

func (PartsInventoryIncreased) isEvent() {}

type PartsInventoryConsumed struct {
	Envelope
	PartNumber      string                `json:"partNumber"`
	Quantity        int                   `json:"quantity"`
	TotalRemaining  int                   `json:"totalRemaining"`
	ProductionOrder plant.ProductionOrder `json:"productionOrder"`
}

func NewPartsInventoryConsumed(at time.Time, partNumber string, quantity, remaining int, order plant.ProductionOrder) PartsInventoryConsumed {
	return PartsInventoryConsumed{
		Envelope:        newEnvelope(TypePartsInventoryConsumed, at),
		PartNumber:      partNumber,
		Quantity:        quantity,
		TotalRemaining:  remaining,
		ProductionOrder: order,
	}
}

func (PartsInventoryConsumed) isEvent() {}

type FinishedGoodsProduced struct {
	Envelope
	PartNumber            string `json:"partNumber"`
	QuantityProduced      int    `json:"quantityProduced"`
	ProductionOrderNumber string `json:"productionOrderNumber"`
}

func NewFinishedGoodsProduced(at time.Time, partNumber string, produced int, orderNumber string) FinishedGoodsProduced {
	return FinishedGoodsProduced{
		Envelope:              newEnvelope(TypeFinishedGoodsProduced, at),
		PartNumber:            partNumber,
		QuantityProduced:      produced,
		ProductionOrderNumber: orderNumber,
	}
}

func (FinishedGoodsProduced) isEvent() {}

type FinishedGoodsScrapped struct {
	Envelope
	PartNumber            string `json:"partNumber"`
	QuantityScrapped      int    `json:"quantityScrapped"`
	ProductionOrderNumber string `json:"productionOrderNumber"`
}

func NewFinishedGoodsScrapped(at time.Time, partNumber string, scrapped int, orderNumber string) FinishedGoodsScrapped {
	return FinishedGoodsScrapped{
		Envelope:              newEnvelope(TypeFinishedGoodsScrapped, at),
		PartNumber:            partNumber,
		QuantityScrapped:      scrapped,
		ProductionOrderNumber: orderNumber,
	}
}

func (FinishedGoodsScrapped) isEvent() {}

// FinishedGoodsInventoryUpdated reports the finished stock after a production run.
// OrderTotal is the order's completed quantity so far.
type FinishedGoodsInventoryUpdated struct {
	Envelope
	PartNumber            string `json:"partNumber"`
	QuantityProduced      int    `json:"quantityProduced"`
	InventoryTotal        int    `json:"inventoryTotal"`
	ProductionOrderNumber string `json:"productionOrderNumber"`
	OrderTotal            int    `json:"orderTotal"`
}

func NewFinishedGoodsInventoryUpdated(at time.Time, partNumber string, produced, inventoryTotal int, orderNumber string, orderTotal int) FinishedGoodsInventoryUpdated {
	return FinishedGoodsInventoryUpdated{
		Envelope:              newEnvelope(TypeFinishedGoodsInventoryUpdated, at),
		PartNumber:            partNumber,
		QuantityProduced:      produced,
		InventoryTotal:        inventoryTotal,
		ProductionOrderNumber: orderNumber,
		OrderTotal:            orderTotal,
	}
}

func (FinishedGoodsInventoryUpdated) isEvent() {}

type ProductionIdle struct {
	Envelope
	ProductionOrderNumber string `json:"productionOrderNumber"`
}

func NewProductionIdle(at time.Time, orderNumber string) ProductionIdle {
	return ProductionIdle{Envelope: newEnvelope(TypeProductionIdle, at), ProductionOrderNumber: orderNumber}
}

func (ProductionIdle) isEvent() {}
