package departments_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarwn/consuming-logs/internal/application/departments"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/internal/domain/world"
	"github.com/tarwn/consuming-logs/test/helpers"
)

// placeInbound places a purchase order and tracks its inbound shipment
func placeInbound(t *testing.T, store *world.Store, quantity int) (plant.PurchaseOrder, plant.Shipment) {
	t.Helper()
	po, err := store.PlacePurchaseOrder(plant.NewPurchaseOrder("raw-1", quantity, decimal.RequireFromString("1.50")))
	require.NoError(t, err)
	shipment, err := store.TrackPurchaseOrderShipment(plant.NewShipment(plant.OrderTypePurchaseOrder, po.Number(), "raw-1", quantity))
	require.NoError(t, err)
	return po, shipment
}

func arrive(t *testing.T, store *world.Store, shipmentNumber string) {
	t.Helper()
	for i := 0; i < plant.DefaultShippingLeadTime; i++ {
		_, err := store.UpdateTrackedShipment(shipmentNumber)
		require.NoError(t, err)
	}
}

func TestWarehouse_ReceivesArrivedPurchaseOrders(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	params.OpeningInventory = map[string]int{"raw-1": 4}
	store, _ := helpers.NewTestStore(t, params)
	po, shipment := placeInbound(t, store, 10)
	placeInbound(t, store, 7)
	arrive(t, store, shipment.Number())

	// Act
	publisher := execute(t, store, departments.NewWarehouseDepartment().ReceivePurchasedParts)

	// Assert
	assert.Equal(t, []events.Type{
		events.TypePurchaseOrderReceived,
		events.TypePartsInventoryIncreased,
		events.TypeShipmentArrived,
	}, publisher.Types())
	increased := publisher.Events()[1].(events.PartsInventoryIncreased)
	assert.Equal(t, 10, increased.NewQuantity)
	assert.Equal(t, 14, increased.TotalQuantity)
	assert.Equal(t, 14, store.PartsOnHand("raw-1"))

	status := store.Status()
	assert.Equal(t, 1, status.OpenPurchaseOrders)
	assert.Equal(t, 1, status.UnbilledPurchaseOrders)
	assert.Equal(t, 1, status.TrackedShipments)
	assert.Equal(t, 1, status.ShippingHistory)
	assert.Equal(t, po.Number(), store.Snapshot().UnbilledPurchaseOrders[0].Number())
}

func TestWarehouse_ShipsCompletedSalesOrders(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	order := scheduleOrder(t, store, "widget", 5)
	scheduleOrder(t, store, "widget", 5)
	_, err := store.ProduceFinishedGoods(order.Number(), "widget", 5)
	require.NoError(t, err)

	// Act
	publisher := execute(t, store, departments.NewWarehouseDepartment().ShipCompletedSalesOrders)

	// Assert
	require.Equal(t, []events.Type{events.TypeSalesOrderShipped}, publisher.Types())
	shipped := publisher.Events()[0].(events.SalesOrderShipped)
	assert.Equal(t, order.SalesOrderNumber(), shipped.SalesOrder.Number())
	assert.Equal(t, plant.OrderTypeSalesOrder, shipped.Shipment.OrderType())
	assert.Equal(t, 5, shipped.Shipment.Quantity())

	status := store.Status()
	assert.Equal(t, 1, status.ShippedSalesOrders)
	assert.Equal(t, 1, status.OpenSalesOrders)
	assert.Equal(t, 1, status.ClosedProductionOrders)
	assert.Equal(t, 1, status.ScheduledProductionOrders)
	assert.Equal(t, 1, status.TrackedShipments)
	assert.Equal(t, 5, store.FinishedOnHand("widget"), "shipping leaves finished inventory untouched")
}

func TestWarehouse_ShippingWithoutOpenSalesOrderIsNotFound(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	order := scheduleOrder(t, store, "widget", 5)
	_, err := store.ProduceFinishedGoods(order.Number(), "widget", 5)
	require.NoError(t, err)
	_, err = store.IndicateSalesOrderHasShipped(order.SalesOrderNumber())
	require.NoError(t, err)

	// Act
	_, err = departments.NewWarehouseDepartment().ShipCompletedSalesOrders(store.Snapshot())

	// Assert
	var notFound *plant.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, order.SalesOrderNumber(), notFound.ID)
}

func TestWarehouse_StopsTrackingDeliveredSalesOrders(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	delivered, err := store.ShipShipment(plant.NewShipment(plant.OrderTypeSalesOrder, "so-test-8", "widget", 5))
	require.NoError(t, err)
	_, err = store.ShipShipment(plant.NewShipment(plant.OrderTypeSalesOrder, "so-test-9", "widget", 5))
	require.NoError(t, err)
	_, inbound := placeInbound(t, store, 5)
	arrive(t, store, delivered.Number())
	arrive(t, store, inbound.Number())

	// Act
	publisher := execute(t, store, departments.NewWarehouseDepartment().StopTrackingDeliveredSalesOrders)

	// Assert
	require.Equal(t, []events.Type{events.TypeShipmentArrived}, publisher.Types())
	assert.Equal(t, delivered.Number(), publisher.Events()[0].(events.ShipmentArrived).Shipment.Number())
	assert.Equal(t, 2, store.Status().TrackedShipments, "purchase order shipments wait for receiving")
}

func TestWarehouse_UpdatesOnlyShipmentsInTransit(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	_, moving := placeInbound(t, store, 5)
	_, landed := placeInbound(t, store, 5)
	arrive(t, store, landed.Number())

	// Act
	publisher := execute(t, store, departments.NewWarehouseDepartment().UpdateTrackingForInTransitShipments)

	// Assert
	require.Equal(t, []events.Type{events.TypeShipmentTrackingUpdated}, publisher.Types())
	updated := publisher.Events()[0].(events.ShipmentTrackingUpdated).Shipment
	assert.Equal(t, moving.Number(), updated.Number())
	assert.Equal(t, plant.DefaultShippingLeadTime-1, updated.RemainingShipTime())
}

func TestFinance_PaysUnbilledPurchaseOrders(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	po, err := store.PlacePurchaseOrder(plant.NewPurchaseOrder("raw-1", 100, decimal.RequireFromString("1.50")))
	require.NoError(t, err)
	_, _, err = store.ReceivePurchaseOrder(po.Number())
	require.NoError(t, err)

	// Act
	publisher := execute(t, store, departments.NewFinanceDepartment().PayForReceivedPurchaseOrders)

	// Assert
	assert.True(t, store.Cash().Equal(decimal.NewFromInt(-150)))
	require.Equal(t, []events.Type{events.TypePurchaseOrderPaid}, publisher.Types())
	paid := publisher.Events()[0].(events.PurchaseOrderPaid)
	assert.True(t, paid.TotalAmountPaid.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 0, store.Status().UnbilledPurchaseOrders)
}

func TestFinance_BillsShippedSalesOrders(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	params.InitialCash = decimal.NewFromInt(100)
	store, _ := helpers.NewTestStore(t, params)
	sale, _, err := store.PlaceSalesOrder(plant.NewSalesOrder("widget", 5, decimal.NewFromInt(10)))
	require.NoError(t, err)
	_, err = store.IndicateSalesOrderHasShipped(sale.Number())
	require.NoError(t, err)

	// Act
	publisher := execute(t, store, departments.NewFinanceDepartment().BillForShippedSalesOrders)

	// Assert
	assert.Equal(t, []events.Type{events.TypeSalesOrderInvoiced, events.TypeSalesOrderInvoicePaid}, publisher.Types())
	invoiced := publisher.Events()[0].(events.SalesOrderInvoiced)
	assert.True(t, invoiced.TotalAmountDue.Equal(decimal.NewFromInt(50)))
	assert.True(t, store.Cash().Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 1, store.Status().ClosedSalesOrders)
	assert.Equal(t, 0, store.Status().ShippedSalesOrders)
}

func TestDepartments_DecideNeverMutatesStore(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	params.OpeningInventory = map[string]int{"raw-1": 3}
	cfg := helpers.NewPlantConfig(t, params)
	store, _ := helpers.NewTestStore(t, params)
	scheduleOrder(t, store, "widget", 10)
	_, _, err := store.PlaceSalesOrder(plant.NewSalesOrder("widget", 5, decimal.NewFromInt(10)))
	require.NoError(t, err)
	_, inbound := placeInbound(t, store, 4)
	arrive(t, store, inbound.Number())
	before := store.Status()

	// Act
	for _, step := range departments.New(cfg).Steps() {
		_, err := step.Decide(store.Snapshot())
		require.NoError(t, err, step.Name)
	}

	// Assert
	assert.Equal(t, before, store.Status())
}

func TestDepartments_StepOrder(t *testing.T) {
	cfg := helpers.NewPlantConfig(t, helpers.WidgetParams())

	var names []string
	for _, step := range departments.New(cfg).Steps() {
		names = append(names, step.Name)
	}

	assert.Equal(t, []string{
		"sales", "planning", "purchasing", "warehouse-receive", "finance-pay",
		"production", "warehouse-ship", "finance-bill", "warehouse-stop-tracking",
		"warehouse-update-tracking",
	}, names)
}
