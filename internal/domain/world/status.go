package world

import (
	"github.com/shopspring/decimal"
)

// Status summarizes the store for operators: partition sizes, cash and stock
type Status struct {
	Cash              decimal.Decimal `json:"cash"`
	Version           string          `json:"version"`
	AvailableCapacity int             `json:"availableCapacity"`

	OpenSalesOrders    int `json:"openSalesOrders"`
	ShippedSalesOrders int `json:"shippedSalesOrders"`
	ClosedSalesOrders  int `json:"closedSalesOrders"`

	OpenPurchaseOrders     int `json:"openPurchaseOrders"`
	UnbilledPurchaseOrders int `json:"unbilledPurchaseOrders"`
	ClosedPurchaseOrders   int `json:"closedPurchaseOrders"`

	UnscheduledProductionOrders int `json:"unscheduledProductionOrders"`
	ScheduledProductionOrders   int `json:"scheduledProductionOrders"`
	ClosedProductionOrders      int `json:"closedProductionOrders"`

	TrackedShipments int `json:"trackedShipments"`
	ShippingHistory  int `json:"shippingHistory"`

	PartsInventory    map[string]int `json:"partsInventory"`
	FinishedInventory map[string]int `json:"finishedInventory"`
	ScrappedInventory map[string]int `json:"scrappedInventory"`
}

// Status reports the current partition counts and inventories
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		Cash:              s.ledger.Balance(),
		Version:           s.version,
		AvailableCapacity: s.availableCapacity(),

		OpenSalesOrders:    s.openSalesOrders.len(),
		ShippedSalesOrders: s.shippedSalesOrders.len(),
		ClosedSalesOrders:  s.closedSalesOrders.len(),

		OpenPurchaseOrders:     s.openPurchaseOrders.len(),
		UnbilledPurchaseOrders: s.unbilledPurchaseOrders.len(),
		ClosedPurchaseOrders:   s.closedPurchaseOrders.len(),

		UnscheduledProductionOrders: s.unscheduledProductionOrders.len(),
		ScheduledProductionOrders:   s.scheduledProductionOrders.len(),
		ClosedProductionOrders:      s.closedProductionOrders.len(),

		TrackedShipments: s.trackedShipments.len(),
		ShippingHistory:  s.shippingHistory.len(),

		PartsInventory:    copyInventory(s.partsInventory),
		FinishedInventory: copyInventory(s.finishedInventory),
		ScrappedInventory: copyInventory(s.scrappedInventory),
	}
}
