package departments

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tarwn/consuming-logs/internal/application/decision"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/internal/domain/world"
	"github.com/tarwn/consuming-logs/pkg/utils"
)

// ProductionDepartment advances one scheduled order per production line each tick
type ProductionDepartment struct {
	config *plant.Config
}

func NewProductionDepartment(cfg *plant.Config) *ProductionDepartment {
	return &ProductionDepartment{config: cfg}
}

// productionRun is the work one line was assigned at decide time
type productionRun struct {
	order     plant.ProductionOrder
	bom       []plant.BOMLine
	toProduce int
	scrapped  int
}

// RunPlannedProductionOrders assigns the first unfinished scheduled orders to
// the production lines. Each line builds as much as its remaining quantity,
// the per-line capacity and the raw parts on hand allow. Parts promised to an
// earlier line in the same tick are not offered to later lines.
func (d *ProductionDepartment) RunPlannedProductionOrders(view world.Snapshot) (*decision.Decision, error) {
	onHand := make(map[string]int, len(view.PartsInventory))
	for part, qty := range view.PartsInventory {
		onHand[part] = qty
	}

	var actions []decision.Action
	lines := d.config.ProductionLines()
	for _, order := range view.ScheduledProductionOrders {
		if lines == 0 {
			break
		}
		if order.IsComplete() {
			continue
		}
		lines--

		product, err := view.ProductCatalog.Find(order.PartNumber())
		if err != nil {
			return nil, err
		}

		toProduce := utils.Min(order.RemainingQuantity(), d.config.CapacityPerInterval())
		for _, line := range product.BOM {
			toProduce = utils.Min(toProduce, onHand[line.PartNumber]/line.Quantity)
		}

		if toProduce <= 0 {
			actions = append(actions, reportIdle(order.Number()))
			continue
		}

		for _, line := range product.BOM {
			onHand[line.PartNumber] -= line.Quantity * toProduce
		}
		actions = append(actions, runProduction(productionRun{
			order:     order,
			bom:       append([]plant.BOMLine(nil), product.BOM...),
			toProduce: toProduce,
			scrapped:  ScrapQuantity(toProduce, d.config.ScrapFraction()),
		}))
	}
	return decide(StepProduction, actions), nil
}

// ScrapQuantity rounds quantity × fraction half up
func ScrapQuantity(quantity int, fraction decimal.Decimal) int {
	return int(decimal.NewFromInt(int64(quantity)).Mul(fraction).Round(0).IntPart())
}

func reportIdle(orderNumber string) decision.Action {
	return func(ctx context.Context, store *world.Store, publisher events.Publisher) error {
		return decision.Publish(ctx, publisher, events.NewProductionIdle(store.Now(), orderNumber))
	}
}

func runProduction(run productionRun) decision.Action {
	return func(ctx context.Context, store *world.Store, publisher events.Publisher) error {
		now := store.Now()
		number := run.order.Number()
		part := run.order.PartNumber()
		var evts []events.Event

		for _, line := range run.bom {
			consumed := line.Quantity * run.toProduce
			remaining, err := store.ConsumeParts(line.PartNumber, consumed)
			if err != nil {
				return err
			}
			evts = append(evts, events.NewPartsInventoryConsumed(now, line.PartNumber, consumed, remaining, run.order))
		}

		if produced := run.toProduce - run.scrapped; produced > 0 {
			result, err := store.ProduceFinishedGoods(number, part, produced)
			if err != nil {
				return err
			}
			evts = append(evts,
				events.NewFinishedGoodsProduced(now, part, produced, number),
				events.NewFinishedGoodsInventoryUpdated(now, part, produced, result.InventoryTotal, number, result.Order.CompletedQuantity()),
			)
			if result.Order.IsComplete() {
				evts = append(evts, events.NewProductionOrderCompleted(now, result.Order))
			}
		}

		if run.scrapped > 0 {
			if _, err := store.ScrapFinishedGoods(part, run.scrapped); err != nil {
				return err
			}
			evts = append(evts, events.NewFinishedGoodsScrapped(now, part, run.scrapped, number))
		}

		return decision.Publish(ctx, publisher, evts...)
	}
}
