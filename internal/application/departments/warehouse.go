package departments

import (
	"context"

	"github.com/tarwn/consuming-logs/internal/application/decision"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/internal/domain/world"
)

// WarehouseDepartment receives parts, ships finished orders and tracks shipments
type WarehouseDepartment struct{}

func NewWarehouseDepartment() *WarehouseDepartment {
	return &WarehouseDepartment{}
}

// ReceivePurchasedParts stocks the parts of every arrived purchase order shipment
func (d *WarehouseDepartment) ReceivePurchasedParts(view world.Snapshot) (*decision.Decision, error) {
	var actions []decision.Action
	for _, shipment := range view.TrackedShipments {
		if shipment.OrderType() == plant.OrderTypePurchaseOrder && shipment.HasArrived() {
			actions = append(actions, receivePurchaseOrder(shipment.Number(), shipment.OrderNumber()))
		}
	}
	return decide(StepWarehouseReceive, actions), nil
}

func receivePurchaseOrder(shipmentNumber, orderNumber string) decision.Action {
	return func(ctx context.Context, store *world.Store, publisher events.Publisher) error {
		order, total, err := store.ReceivePurchaseOrder(orderNumber)
		if err != nil {
			return err
		}
		shipment, err := store.StopTrackingShipment(shipmentNumber)
		if err != nil {
			return err
		}
		now := store.Now()
		return decision.Publish(ctx, publisher,
			events.NewPurchaseOrderReceived(now, order),
			events.NewPartsInventoryIncreased(now, order.PartNumber(), order.Quantity(), total),
			events.NewShipmentArrived(now, shipment),
		)
	}
}

// ShipCompletedSalesOrders ships the sales order behind every completed production order
func (d *WarehouseDepartment) ShipCompletedSalesOrders(view world.Snapshot) (*decision.Decision, error) {
	var actions []decision.Action
	for _, order := range view.ScheduledProductionOrders {
		if !order.IsComplete() {
			continue
		}
		sale, ok := view.FindOpenSalesOrder(order.SalesOrderNumber())
		if !ok {
			return nil, plant.NewNotFoundError(plant.KindSalesOrder, order.SalesOrderNumber(), plant.PartitionOpen)
		}
		actions = append(actions, shipSalesOrder(order.Number(), sale))
	}
	return decide(StepWarehouseShip, actions), nil
}

func shipSalesOrder(productionOrderNumber string, sale plant.SalesOrder) decision.Action {
	return func(ctx context.Context, store *world.Store, publisher events.Publisher) error {
		if _, err := store.StageProductionOrderToShip(productionOrderNumber); err != nil {
			return err
		}
		outbound := plant.NewShipment(plant.OrderTypeSalesOrder, sale.Number(), sale.PartNumber(), sale.Quantity())
		shipment, err := store.ShipShipment(outbound)
		if err != nil {
			return err
		}
		shipped, err := store.IndicateSalesOrderHasShipped(sale.Number())
		if err != nil {
			return err
		}
		return decision.Publish(ctx, publisher, events.NewSalesOrderShipped(store.Now(), shipment, shipped))
	}
}

// StopTrackingDeliveredSalesOrders files every arrived sales order shipment into history
func (d *WarehouseDepartment) StopTrackingDeliveredSalesOrders(view world.Snapshot) (*decision.Decision, error) {
	var actions []decision.Action
	for _, shipment := range view.TrackedShipments {
		if shipment.OrderType() == plant.OrderTypeSalesOrder && shipment.HasArrived() {
			actions = append(actions, stopTracking(shipment.Number()))
		}
	}
	return decide(StepWarehouseStopTracking, actions), nil
}

func stopTracking(shipmentNumber string) decision.Action {
	return func(ctx context.Context, store *world.Store, publisher events.Publisher) error {
		shipment, err := store.StopTrackingShipment(shipmentNumber)
		if err != nil {
			return err
		}
		return decision.Publish(ctx, publisher, events.NewShipmentArrived(store.Now(), shipment))
	}
}

// UpdateTrackingForInTransitShipments counts down every shipment still in transit
func (d *WarehouseDepartment) UpdateTrackingForInTransitShipments(view world.Snapshot) (*decision.Decision, error) {
	var actions []decision.Action
	for _, shipment := range view.TrackedShipments {
		if !shipment.HasArrived() {
			actions = append(actions, updateTracking(shipment.Number()))
		}
	}
	return decide(StepWarehouseUpdateTracking, actions), nil
}

func updateTracking(shipmentNumber string) decision.Action {
	return func(ctx context.Context, store *world.Store, publisher events.Publisher) error {
		shipment, err := store.UpdateTrackedShipment(shipmentNumber)
		if err != nil {
			return err
		}
		return decision.Publish(ctx, publisher, events.NewShipmentTrackingUpdated(store.Now(), shipment))
	}
}
