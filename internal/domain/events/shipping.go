package events

import (
	"time"

	"github.com/tarwn/consuming-logs/internal/domain/plant"
)

type ShipmentArrived struct {
	Envelope
	Shipment plant.Shipment `json:"shipment"`
}

func NewShipmentArrived(at time.Time, shipment plant.Shipment) ShipmentArrived {
	return ShipmentArrived{Envelope: newEnvelope(TypeShipmentArrived, at), Shipment: shipment}
}

func (ShipmentArrived) isEvent() {}

type ShipmentTrackingUpdated struct {
	Envelope
	Shipment plant.Shipment `json:"shipment"`
}

func NewShipmentTrackingUpdated(at time.Time, shipment plant.Shipment) ShipmentTrackingUpdated {
	return ShipmentTrackingUpdated{Envelope: newEnvelope(TypeShipmentTrackingUpdated, at), Shipment: shipment}
}

func (ShipmentTrackingUpdated) isEvent() {}
