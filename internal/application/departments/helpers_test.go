package departments_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tarwn/consuming-logs/internal/application/decision"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/internal/domain/world"
	"github.com/tarwn/consuming-logs/test/helpers"
)

// scheduleOrder books a sales order outside the Sales department and schedules its production
func scheduleOrder(t *testing.T, store *world.Store, partNumber string, quantity int) plant.ProductionOrder {
	t.Helper()
	_, production, err := store.PlaceSalesOrder(plant.NewSalesOrder(partNumber, quantity, decimal.NewFromInt(10)))
	require.NoError(t, err)
	scheduled, err := store.PlanProductionOrder(production.Number())
	require.NoError(t, err)
	return scheduled
}

// execute decides against a fresh snapshot and runs the decision
func execute(t *testing.T, store *world.Store, decide func(world.Snapshot) (*decision.Decision, error)) *helpers.RecordingPublisher {
	t.Helper()
	d, err := decide(store.Snapshot())
	require.NoError(t, err)
	publisher := helpers.NewRecordingPublisher()
	require.NoError(t, d.ExecuteAll(context.Background(), store, publisher))
	return publisher
}
