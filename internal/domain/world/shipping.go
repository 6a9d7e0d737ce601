package world

import (
	"fmt"

	"github.com/tarwn/consuming-logs/internal/domain/plant"
)

// ShipShipment numbers an outbound sales order shipment, sends it with the
// configured lead time and starts tracking it.
func (s *Store) ShipShipment(shipment *plant.Shipment) (plant.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if shipment.OrderType() != plant.OrderTypeSalesOrder {
		return plant.Shipment{}, fmt.Errorf("shipment for %s is a %s shipment, expected %s",
			shipment.OrderNumber(), shipment.OrderType(), plant.OrderTypeSalesOrder)
	}
	return s.track(shipment)
}

// track must be called with the write lock held
func (s *Store) track(shipment *plant.Shipment) (plant.Shipment, error) {
	if err := shipment.AssignNumber(s.mintNumber("ship")); err != nil {
		return plant.Shipment{}, err
	}
	shipment.AssignShippingTime(s.config.ShippingLeadTime())
	s.trackedShipments.add(shipment.Number(), shipment)
	return *shipment, nil
}

// UpdateTrackedShipment counts down one interval of transit for a tracked shipment
func (s *Store) UpdateTrackedShipment(number string) (plant.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shipment, err := s.trackedShipments.get(number)
	if err != nil {
		return plant.Shipment{}, err
	}
	shipment.DecrementShipTime()
	return *shipment, nil
}

// StopTrackingShipment moves a tracked shipment to the shipping history
func (s *Store) StopTrackingShipment(number string) (plant.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shipment, err := s.trackedShipments.take(number)
	if err != nil {
		return plant.Shipment{}, err
	}
	s.shippingHistory.add(number, shipment)
	return *shipment, nil
}
