package departments

import (
	"context"

	"github.com/tarwn/consuming-logs/internal/application/decision"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/internal/domain/world"
)

// SalesDepartment books customer orders while the plant has schedule capacity
type SalesDepartment struct {
	config *plant.Config
}

func NewSalesDepartment(cfg *plant.Config) *SalesDepartment {
	return &SalesDepartment{config: cfg}
}

// GenerateOrdersIfCapacityIsAvailable creates minimum-size orders for the first
// catalog product until the remaining capacity cannot fit another one.
func (d *SalesDepartment) GenerateOrdersIfCapacityIsAvailable(view world.Snapshot) (*decision.Decision, error) {
	if len(view.ProductCatalog) == 0 {
		return decision.NoAction(StepSales), nil
	}
	product := view.ProductCatalog[0]
	orderSize := d.config.MinimumOrderSize()

	var actions []decision.Action
	for remaining := view.AvailableCapacity; remaining >= orderSize; remaining -= orderSize {
		order := plant.NewSalesOrder(product.PartNumber, orderSize, product.UnitPrice)
		actions = append(actions, placeSalesOrder(order))
	}
	return decide(StepSales, actions), nil
}

func placeSalesOrder(order *plant.SalesOrder) decision.Action {
	return func(ctx context.Context, store *world.Store, publisher events.Publisher) error {
		placed, _, err := store.PlaceSalesOrder(order)
		if err != nil {
			return err
		}
		return decision.Publish(ctx, publisher, events.NewSalesOrderPlaced(store.Now(), placed))
	}
}
