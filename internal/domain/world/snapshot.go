package world

import (
	"github.com/shopspring/decimal"

	"github.com/tarwn/consuming-logs/internal/domain/plant"
)

// Snapshot is a deep copy of the state departments decide from. Changing it
// never affects the store. Closed orders and shipping history are left out;
// no decision reads them.
type Snapshot struct {
	Cash              decimal.Decimal
	AvailableCapacity int
	Version           string

	PartsInventory    map[string]int
	FinishedInventory map[string]int
	ScrappedInventory map[string]int

	OpenSalesOrders    []plant.SalesOrder
	ShippedSalesOrders []plant.SalesOrder

	OpenPurchaseOrders     []plant.PurchaseOrder
	UnbilledPurchaseOrders []plant.PurchaseOrder

	UnscheduledProductionOrders []plant.ProductionOrder
	ScheduledProductionOrders   []plant.ProductionOrder

	TrackedShipments []plant.Shipment

	ProductCatalog plant.ProductCatalog
	PartsCatalog   plant.PartsCatalog
}

// Snapshot copies the current state under the read lock
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Cash:              s.ledger.Balance(),
		AvailableCapacity: s.availableCapacity(),
		Version:           s.version,

		PartsInventory:    copyInventory(s.partsInventory),
		FinishedInventory: copyInventory(s.finishedInventory),
		ScrappedInventory: copyInventory(s.scrappedInventory),

		OpenSalesOrders:    s.openSalesOrders.values(),
		ShippedSalesOrders: s.shippedSalesOrders.values(),

		OpenPurchaseOrders:     s.openPurchaseOrders.values(),
		UnbilledPurchaseOrders: s.unbilledPurchaseOrders.values(),

		UnscheduledProductionOrders: s.unscheduledProductionOrders.values(),
		ScheduledProductionOrders:   s.scheduledProductionOrders.values(),

		TrackedShipments: s.trackedShipments.values(),

		ProductCatalog: s.productCatalog.Clone(),
		PartsCatalog:   s.partsCatalog.Clone(),
	}
}

// FindOpenSalesOrder looks up an open sales order by number
func (s Snapshot) FindOpenSalesOrder(number string) (plant.SalesOrder, bool) {
	for _, o := range s.OpenSalesOrders {
		if o.Number() == number {
			return o, true
		}
	}
	return plant.SalesOrder{}, false
}
