package world_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarwn/consuming-logs/internal/domain/ledger"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/internal/domain/world"
	"github.com/tarwn/consuming-logs/test/helpers"
)

func TestNewStore_RecordsOpeningBalanceAndInventory(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	params.InitialCash = decimal.NewFromInt(1000)
	params.OpeningInventory = map[string]int{"raw-1": 25}

	// Act
	store, _ := helpers.NewTestStore(t, params)

	// Assert
	assert.True(t, store.Cash().Equal(decimal.NewFromInt(1000)))
	require.Len(t, store.LedgerEntries(), 1)
	assert.Equal(t, ledger.EntryKindOpeningBalance, store.LedgerEntries()[0].Kind())
	assert.Equal(t, helpers.TestStart, store.LedgerEntries()[0].Timestamp())
	assert.Equal(t, 25, store.PartsOnHand("raw-1"))
	assert.Equal(t, 0, store.FinishedOnHand("widget"))
}

func TestNewStore_ZeroCashHasEmptyLedger(t *testing.T) {
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())

	assert.Empty(t, store.LedgerEntries())
	assert.True(t, store.Cash().IsZero())
}

func TestNewStore_RequiresConfig(t *testing.T) {
	_, err := world.NewStore(nil)

	assert.Error(t, err)
}

func TestStore_NumbersShareOneCounter(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())

	// Act
	sale, production, err := store.PlaceSalesOrder(plant.NewSalesOrder("widget", 5, decimal.NewFromInt(10)))
	require.NoError(t, err)
	purchase, err := store.PlacePurchaseOrder(plant.NewPurchaseOrder("raw-1", 5, decimal.RequireFromString("1.50")))
	require.NoError(t, err)
	inbound, err := store.TrackPurchaseOrderShipment(
		plant.NewShipment(plant.OrderTypePurchaseOrder, purchase.Number(), "raw-1", 5))
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "so-test-0", sale.Number())
	assert.Equal(t, "so-test-0-production", production.Number())
	assert.Equal(t, "purch-test-1", purchase.Number())
	assert.Equal(t, "ship-test-2", inbound.Number())
	assert.Equal(t, plant.DefaultShippingLeadTime, inbound.ShipTime())
}

func TestStore_ConcurrentPlacementMintsUniqueNumbers(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	params.CapacityPerInterval = 1000
	store, _ := helpers.NewTestStore(t, params)

	// Act
	var wg sync.WaitGroup
	numbers := make(chan string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sale, _, err := store.PlaceSalesOrder(plant.NewSalesOrder("widget", 5, decimal.NewFromInt(10)))
			if err == nil {
				numbers <- sale.Number()
			}
		}()
	}
	wg.Wait()
	close(numbers)

	// Assert
	seen := make(map[string]bool)
	for n := range numbers {
		assert.False(t, seen[n], "duplicate number %s", n)
		seen[n] = true
	}
	assert.Len(t, seen, 50)
	assert.Equal(t, 50, store.Status().OpenSalesOrders)
}

func TestStore_PlacedOrderCannotBeRenumbered(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	order := plant.NewSalesOrder("widget", 5, decimal.NewFromInt(10))
	_, _, err := store.PlaceSalesOrder(order)
	require.NoError(t, err)

	// Act
	_, _, err = store.PlaceSalesOrder(order)

	// Assert
	var assigned *plant.NumberAlreadyAssignedError
	assert.True(t, errors.As(err, &assigned))
	assert.Equal(t, 1, store.Status().OpenSalesOrders)
}

func TestStore_AvailableCapacityCountsRemainingQuantity(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	params.OpeningInventory = map[string]int{"raw-1": 100}
	store, _ := helpers.NewTestStore(t, params)

	_, first, err := store.PlaceSalesOrder(plant.NewSalesOrder("widget", 5, decimal.NewFromInt(10)))
	require.NoError(t, err)
	_, _, err = store.PlaceSalesOrder(plant.NewSalesOrder("widget", 3, decimal.NewFromInt(10)))
	require.NoError(t, err)
	_, err = store.PlanProductionOrder(first.Number())
	require.NoError(t, err)

	// Act
	before := store.AvailableProductionScheduleCapacity()
	_, err = store.ProduceFinishedGoods(first.Number(), "widget", 4)
	require.NoError(t, err)
	after := store.AvailableProductionScheduleCapacity()

	// Assert
	assert.Equal(t, 10-5-3, before)
	assert.Equal(t, 10-1-3, after)
}

func TestStore_MutatorsReportWrongPartition(t *testing.T) {
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())

	tests := []struct {
		name      string
		call      func() error
		kind      string
		partition plant.Partition
	}{
		{
			name:      "ship unknown sales order",
			call:      func() error { _, err := store.IndicateSalesOrderHasShipped("so-test-99"); return err },
			kind:      plant.KindSalesOrder,
			partition: plant.PartitionOpen,
		},
		{
			name:      "invoice unshipped sales order",
			call:      func() error { _, err := store.InvoiceForSalesOrder("so-test-99"); return err },
			kind:      plant.KindSalesOrder,
			partition: plant.PartitionShipped,
		},
		{
			name: "payment before invoice",
			call: func() error {
				_, err := store.ReceivePaymentForSalesOrder("so-test-99", decimal.NewFromInt(1))
				return err
			},
			kind:      plant.KindSalesOrder,
			partition: plant.PartitionClosed,
		},
		{
			name:      "receive unknown purchase order",
			call:      func() error { _, _, err := store.ReceivePurchaseOrder("purch-test-99"); return err },
			kind:      plant.KindPurchaseOrder,
			partition: plant.PartitionOpen,
		},
		{
			name:      "pay unreceived purchase order",
			call:      func() error { _, _, err := store.PayPurchaseOrder("purch-test-99"); return err },
			kind:      plant.KindPurchaseOrder,
			partition: plant.PartitionUnbilled,
		},
		{
			name:      "plan unknown production order",
			call:      func() error { _, err := store.PlanProductionOrder("so-test-99-production"); return err },
			kind:      plant.KindProductionOrder,
			partition: plant.PartitionUnscheduled,
		},
		{
			name: "produce against unscheduled order",
			call: func() error {
				_, err := store.ProduceFinishedGoods("so-test-99-production", "widget", 1)
				return err
			},
			kind:      plant.KindProductionOrder,
			partition: plant.PartitionScheduled,
		},
		{
			name:      "stop tracking unknown shipment",
			call:      func() error { _, err := store.StopTrackingShipment("ship-test-99"); return err },
			kind:      plant.KindShipment,
			partition: plant.PartitionTracked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			err := tt.call()

			// Assert
			var notFound *plant.NotFoundError
			require.True(t, errors.As(err, &notFound), "got %v", err)
			assert.Equal(t, tt.kind, notFound.Kind)
			assert.Equal(t, tt.partition, notFound.Partition)
		})
	}
}

func TestStore_ConsumePartsNeverGoesNegative(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	params.OpeningInventory = map[string]int{"raw-1": 3}
	store, _ := helpers.NewTestStore(t, params)

	// Act
	_, err := store.ConsumeParts("raw-1", 4)

	// Assert
	var insufficient *plant.InsufficientInventoryError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.OnHand)
	assert.Equal(t, 4, insufficient.Requested)
	assert.Equal(t, 3, store.PartsOnHand("raw-1"))

	remaining, err := store.ConsumeParts("raw-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestStore_PurchaseOrderLifecycle(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	placed, err := store.PlacePurchaseOrder(plant.NewPurchaseOrder("raw-1", 100, decimal.RequireFromString("1.50")))
	require.NoError(t, err)

	// Act
	_, total, err := store.ReceivePurchaseOrder(placed.Number())
	require.NoError(t, err)
	status := store.Status()

	// Assert - received orders are closed and waiting for payment
	assert.Equal(t, 100, total)
	assert.Equal(t, 0, status.OpenPurchaseOrders)
	assert.Equal(t, 1, status.ClosedPurchaseOrders)
	assert.Equal(t, 1, status.UnbilledPurchaseOrders)

	// Act
	_, paid, err := store.PayPurchaseOrder(placed.Number())
	require.NoError(t, err)

	// Assert
	assert.True(t, paid.Equal(decimal.NewFromInt(150)))
	assert.True(t, store.Cash().Equal(decimal.NewFromInt(-150)))
	assert.Equal(t, 0, store.Status().UnbilledPurchaseOrders)
	assert.Equal(t, 1, store.Status().ClosedPurchaseOrders)

	_, _, err = store.PayPurchaseOrder(placed.Number())
	assert.Error(t, err, "an order is paid once")
}

func TestStore_SalesOrderLifecycle(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	sale, _, err := store.PlaceSalesOrder(plant.NewSalesOrder("widget", 5, decimal.NewFromInt(10)))
	require.NoError(t, err)

	// Act
	_, err = store.IndicateSalesOrderHasShipped(sale.Number())
	require.NoError(t, err)
	invoiced, err := store.InvoiceForSalesOrder(sale.Number())
	require.NoError(t, err)
	entry, err := store.ReceivePaymentForSalesOrder(sale.Number(), invoiced.TotalPrice())
	require.NoError(t, err)

	// Assert
	assert.Equal(t, sale.Number(), entry.Reference())
	assert.True(t, store.Cash().Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 1, store.Status().ClosedSalesOrders)
}

func TestStore_ShipmentTracking(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	shipment, err := store.ShipShipment(plant.NewShipment(plant.OrderTypeSalesOrder, "so-test-5", "widget", 5))
	require.NoError(t, err)

	// Act
	for i := 0; i < plant.DefaultShippingLeadTime; i++ {
		shipment, err = store.UpdateTrackedShipment(shipment.Number())
		require.NoError(t, err)
	}
	_, err = store.StopTrackingShipment(shipment.Number())
	require.NoError(t, err)

	// Assert
	assert.True(t, shipment.HasArrived())
	assert.Equal(t, 0, store.Status().TrackedShipments)
	assert.Equal(t, 1, store.Status().ShippingHistory)
}

func TestStore_ShipmentTypeIsChecked(t *testing.T) {
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())

	_, shipErr := store.ShipShipment(plant.NewShipment(plant.OrderTypePurchaseOrder, "purch-test-0", "raw-1", 5))
	_, trackErr := store.TrackPurchaseOrderShipment(plant.NewShipment(plant.OrderTypeSalesOrder, "so-test-0", "widget", 5))

	assert.Error(t, shipErr)
	assert.Error(t, trackErr)
}

func TestStore_CashMatchesLedger(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	params.InitialCash = decimal.NewFromInt(500)
	store, _ := helpers.NewTestStore(t, params)

	// Act
	for i := 0; i < 3; i++ {
		po, err := store.PlacePurchaseOrder(plant.NewPurchaseOrder("raw-1", 10*(i+1), decimal.RequireFromString("1.50")))
		require.NoError(t, err)
		_, _, err = store.ReceivePurchaseOrder(po.Number())
		require.NoError(t, err)
		_, _, err = store.PayPurchaseOrder(po.Number())
		require.NoError(t, err)
	}

	// Assert
	sum := decimal.Zero
	for _, e := range store.LedgerEntries() {
		sum = sum.Add(e.Amount())
	}
	assert.True(t, sum.Equal(store.Cash()), fmt.Sprintf("ledger %s vs cash %s", sum, store.Cash()))
	assert.True(t, store.Cash().Equal(decimal.NewFromInt(500-90)))
}

func TestStore_SetVersion(t *testing.T) {
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())

	store.SetVersion("evt-1")

	assert.Equal(t, "evt-1", store.Version())
	assert.Equal(t, "evt-1", store.Snapshot().Version)
}
