package departments

import (
	"context"

	"github.com/tarwn/consuming-logs/internal/application/decision"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/world"
)

// PlanningDepartment schedules production orders. Capacity was already
// enforced when Sales booked the orders, so nothing is re-checked here.
type PlanningDepartment struct{}

func NewPlanningDepartment() *PlanningDepartment {
	return &PlanningDepartment{}
}

// PlanUnscheduledProductionOrders schedules every unscheduled production order
func (d *PlanningDepartment) PlanUnscheduledProductionOrders(view world.Snapshot) (*decision.Decision, error) {
	actions := make([]decision.Action, 0, len(view.UnscheduledProductionOrders))
	for _, order := range view.UnscheduledProductionOrders {
		actions = append(actions, planProductionOrder(order.Number()))
	}
	return decide(StepPlanning, actions), nil
}

func planProductionOrder(number string) decision.Action {
	return func(ctx context.Context, store *world.Store, publisher events.Publisher) error {
		planned, err := store.PlanProductionOrder(number)
		if err != nil {
			return err
		}
		return decision.Publish(ctx, publisher, events.NewProductionOrderPlanned(store.Now(), planned))
	}
}
