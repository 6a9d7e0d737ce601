package departments

import (
	"context"
	"sort"

	"github.com/tarwn/consuming-logs/internal/application/decision"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/internal/domain/world"
)

// PurchasingDepartment buys the raw parts scheduled production still needs
type PurchasingDepartment struct{}

func NewPurchasingDepartment() *PurchasingDepartment {
	return &PurchasingDepartment{}
}

// OrderPartsForPlannedOrders places one purchase order per raw part whose
// requirement exceeds what is on hand plus what is already on order.
func (d *PurchasingDepartment) OrderPartsForPlannedOrders(view world.Snapshot) (*decision.Decision, error) {
	deficits, err := PartDeficits(view)
	if err != nil {
		return nil, err
	}

	parts := make([]string, 0, len(deficits))
	for part := range deficits {
		parts = append(parts, part)
	}
	sort.Strings(parts)

	var actions []decision.Action
	for _, part := range parts {
		deficit := deficits[part]
		if deficit <= 0 {
			continue
		}
		raw, err := view.PartsCatalog.Find(part)
		if err != nil {
			return nil, err
		}
		quote := raw.BestPriceQuote()
		actions = append(actions, placePurchaseOrder(plant.NewPurchaseOrder(part, deficit, quote.UnitPrice)))
	}
	return decide(StepPurchasing, actions), nil
}

// PartDeficits computes, per raw part, the remaining scheduled requirement
// minus open purchase order quantities minus on-hand inventory.
// Values may be zero or negative when a part is covered.
func PartDeficits(view world.Snapshot) (map[string]int, error) {
	deficits := make(map[string]int)
	for _, order := range view.ScheduledProductionOrders {
		product, err := view.ProductCatalog.Find(order.PartNumber())
		if err != nil {
			return nil, err
		}
		for _, line := range product.BOM {
			deficits[line.PartNumber] += order.RemainingQuantity() * line.Quantity
		}
	}

	for _, po := range view.OpenPurchaseOrders {
		if _, needed := deficits[po.PartNumber()]; needed {
			deficits[po.PartNumber()] -= po.Quantity()
		}
	}

	for part := range deficits {
		deficits[part] -= view.PartsInventory[part]
	}
	return deficits, nil
}

func placePurchaseOrder(order *plant.PurchaseOrder) decision.Action {
	return func(ctx context.Context, store *world.Store, publisher events.Publisher) error {
		placed, err := store.PlacePurchaseOrder(order)
		if err != nil {
			return err
		}
		inbound := plant.NewShipment(plant.OrderTypePurchaseOrder, placed.Number(), placed.PartNumber(), placed.Quantity())
		shipment, err := store.TrackPurchaseOrderShipment(inbound)
		if err != nil {
			return err
		}
		return decision.Publish(ctx, publisher, events.NewPurchaseOrderPlaced(store.Now(), placed, shipment))
	}
}
