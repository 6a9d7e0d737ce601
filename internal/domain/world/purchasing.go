package world

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tarwn/consuming-logs/internal/domain/ledger"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
)

// PlacePurchaseOrder numbers the order and files it as open
func (s *Store) PlacePurchaseOrder(order *plant.PurchaseOrder) (plant.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := order.AssignNumber(s.mintNumber("purch")); err != nil {
		return plant.PurchaseOrder{}, err
	}
	s.openPurchaseOrders.add(order.Number(), order)
	return *order, nil
}

// TrackPurchaseOrderShipment starts tracking the inbound shipment of an open purchase order
func (s *Store) TrackPurchaseOrderShipment(shipment *plant.Shipment) (plant.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if shipment.OrderType() != plant.OrderTypePurchaseOrder {
		return plant.Shipment{}, fmt.Errorf("shipment for %s is a %s shipment, expected %s",
			shipment.OrderNumber(), shipment.OrderType(), plant.OrderTypePurchaseOrder)
	}
	if _, err := s.openPurchaseOrders.get(shipment.OrderNumber()); err != nil {
		return plant.Shipment{}, err
	}
	return s.track(shipment)
}

// ReceivePurchaseOrder closes an open purchase order, marks it unbilled and
// stocks its parts. Returns the new on-hand total for the part.
func (s *Store) ReceivePurchaseOrder(number string) (plant.PurchaseOrder, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.openPurchaseOrders.take(number)
	if err != nil {
		return plant.PurchaseOrder{}, 0, err
	}
	s.closedPurchaseOrders.add(number, order)
	s.unbilledPurchaseOrders.add(number, order)

	s.partsInventory[order.PartNumber()] += order.Quantity()
	return *order, s.partsInventory[order.PartNumber()], nil
}

// PayPurchaseOrder removes an order from unbilled and debits its total price
func (s *Store) PayPurchaseOrder(number string) (plant.PurchaseOrder, decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.unbilledPurchaseOrders.get(number)
	if err != nil {
		return plant.PurchaseOrder{}, decimal.Zero, err
	}
	if _, err := s.ledger.Append(s.clock.Now(), ledger.EntryKindPurchaseOrder, order.TotalPrice().Neg(), number); err != nil {
		return plant.PurchaseOrder{}, decimal.Zero, err
	}
	if _, err := s.unbilledPurchaseOrders.take(number); err != nil {
		return plant.PurchaseOrder{}, decimal.Zero, err
	}
	return *order, order.TotalPrice(), nil
}
