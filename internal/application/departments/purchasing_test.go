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

func TestPurchasing_OrdersTheShortfall(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	params.OpeningInventory = map[string]int{"raw-1": 3}
	store, _ := helpers.NewTestStore(t, params)
	scheduleOrder(t, store, "widget", 10)
	_, err := store.PlacePurchaseOrder(plant.NewPurchaseOrder("raw-1", 2, decimal.RequireFromString("1.50")))
	require.NoError(t, err)

	// Act
	publisher := execute(t, store, departments.NewPurchasingDepartment().OrderPartsForPlannedOrders)

	// Assert
	require.Equal(t, []events.Type{events.TypePurchaseOrderPlaced}, publisher.Types())
	placed := publisher.Events()[0].(events.PurchaseOrderPlaced)
	assert.Equal(t, "raw-1", placed.PurchaseOrder.PartNumber())
	assert.Equal(t, 5, placed.PurchaseOrder.Quantity())
	assert.True(t, placed.PurchaseOrder.TotalPrice().Equal(decimal.RequireFromString("7.50")))
	assert.Equal(t, placed.PurchaseOrder.Number(), placed.Shipment.OrderNumber())
	assert.Equal(t, plant.OrderTypePurchaseOrder, placed.Shipment.OrderType())
	assert.Equal(t, plant.DefaultShippingLeadTime, placed.Shipment.RemainingShipTime())
	assert.Equal(t, 2, store.Status().OpenPurchaseOrders)
	assert.Equal(t, 1, store.Status().TrackedShipments)
}

func TestPurchasing_CoveredPartsAreNotReordered(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	params.OpeningInventory = map[string]int{"raw-1": 10}
	store, _ := helpers.NewTestStore(t, params)
	scheduleOrder(t, store, "widget", 10)

	// Act
	d, err := departments.NewPurchasingDepartment().OrderPartsForPlannedOrders(store.Snapshot())

	// Assert
	require.NoError(t, err)
	assert.True(t, d.IsNoAction())
}

func TestPurchasing_SecondTickDoesNotDuplicateOrders(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	scheduleOrder(t, store, "widget", 10)
	dept := departments.NewPurchasingDepartment()
	execute(t, store, dept.OrderPartsForPlannedOrders)

	// Act
	d, err := dept.OrderPartsForPlannedOrders(store.Snapshot())

	// Assert
	require.NoError(t, err)
	assert.True(t, d.IsNoAction())
}

func TestPartDeficits_ScaleByBOMRatio(t *testing.T) {
	// Arrange
	params := helpers.GadgetParams()
	params.OpeningInventory = map[string]int{"plate": 4}
	store, _ := helpers.NewTestStore(t, params)
	order := scheduleOrder(t, store, "gadget", 10)
	_, err := store.ProduceFinishedGoods(order.Number(), "gadget", 2)
	require.NoError(t, err)

	// Act
	deficits, err := departments.PartDeficits(store.Snapshot())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"bolt": 16, "plate": 4}, deficits)
}

func TestPurchasing_OrdersPartsInPartNumberOrder(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.GadgetParams())
	scheduleOrder(t, store, "gadget", 10)

	// Act
	publisher := execute(t, store, departments.NewPurchasingDepartment().OrderPartsForPlannedOrders)

	// Assert
	placed := publisher.OfType(events.TypePurchaseOrderPlaced)
	require.Len(t, placed, 2)
	assert.Equal(t, "bolt", placed[0].(events.PurchaseOrderPlaced).PurchaseOrder.PartNumber())
	assert.Equal(t, 20, placed[0].(events.PurchaseOrderPlaced).PurchaseOrder.Quantity())
	assert.Equal(t, "plate", placed[1].(events.PurchaseOrderPlaced).PurchaseOrder.PartNumber())
}
