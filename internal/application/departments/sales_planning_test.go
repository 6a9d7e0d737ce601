package departments_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarwn/consuming-logs/internal/application/departments"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/test/helpers"
)

func TestSales_FillsAvailableCapacity(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	dept := departments.NewSalesDepartment(helpers.NewPlantConfig(t, params))
	store, _ := helpers.NewTestStore(t, params)

	// Act
	publisher := execute(t, store, dept.GenerateOrdersIfCapacityIsAvailable)

	// Assert
	placed := publisher.OfType(events.TypeSalesOrderPlaced)
	require.Len(t, placed, 2)
	first := placed[0].(events.SalesOrderPlaced).SalesOrder
	assert.Equal(t, "so-test-0", first.Number())
	assert.Equal(t, "widget", first.PartNumber())
	assert.Equal(t, 5, first.Quantity())
	assert.True(t, first.UnitPrice().Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 0, store.AvailableProductionScheduleCapacity())
	assert.Equal(t, 2, store.Status().UnscheduledProductionOrders)
}

func TestSales_RespectsReservedCapacity(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	dept := departments.NewSalesDepartment(helpers.NewPlantConfig(t, params))
	store, _ := helpers.NewTestStore(t, params)
	_, _, err := store.PlaceSalesOrder(plant.NewSalesOrder("widget", 6, decimal.NewFromInt(10)))
	require.NoError(t, err)

	// Act
	d, err := dept.GenerateOrdersIfCapacityIsAvailable(store.Snapshot())

	// Assert
	require.NoError(t, err)
	assert.True(t, d.IsNoAction(), "4 units left cannot fit a minimum order of 5")
}

func TestSales_NeverOverbooksCapacity(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	params.CapacityPerInterval = 7
	params.MinimumOrderSize = 3
	dept := departments.NewSalesDepartment(helpers.NewPlantConfig(t, params))
	store, _ := helpers.NewTestStore(t, params)

	// Act
	execute(t, store, dept.GenerateOrdersIfCapacityIsAvailable)
	execute(t, store, dept.GenerateOrdersIfCapacityIsAvailable)

	// Assert
	assert.Equal(t, 2, store.Status().OpenSalesOrders)
	assert.Equal(t, 1, store.AvailableProductionScheduleCapacity())
}

func TestPlanning_SchedulesEveryUnscheduledOrder(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	dept := departments.NewPlanningDepartment()
	store, _ := helpers.NewTestStore(t, params)
	for i := 0; i < 2; i++ {
		_, _, err := store.PlaceSalesOrder(plant.NewSalesOrder("widget", 5, decimal.NewFromInt(10)))
		require.NoError(t, err)
	}
	capacityBefore := store.AvailableProductionScheduleCapacity()

	// Act
	publisher := execute(t, store, dept.PlanUnscheduledProductionOrders)

	// Assert
	assert.Equal(t, []events.Type{events.TypeProductionOrderPlanned, events.TypeProductionOrderPlanned}, publisher.Types())
	status := store.Status()
	assert.Equal(t, 0, status.UnscheduledProductionOrders)
	assert.Equal(t, 2, status.ScheduledProductionOrders)
	assert.Equal(t, capacityBefore, store.AvailableProductionScheduleCapacity())
}

func TestPlanning_NothingToPlan(t *testing.T) {
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())

	d, err := departments.NewPlanningDepartment().PlanUnscheduledProductionOrders(store.Snapshot())

	require.NoError(t, err)
	assert.True(t, d.IsNoAction())
}
