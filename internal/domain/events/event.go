// Package events defines every event the plant publishes. The set is closed:
// only types declared here satisfy Event.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type is the discriminator carried by every event
type Type string

const (
	TypeSalesOrderPlaced              Type = "SalesOrderPlaced"
	TypeProductionOrderPlanned        Type = "ProductionOrderPlanned"
	TypePurchaseOrderPlaced           Type = "PurchaseOrderPlaced"
	TypePurchaseOrderReceived         Type = "PurchaseOrderReceived"
	TypePartsInventoryIncreased       Type = "PartsInventoryIncreased"
	TypePartsInventoryConsumed        Type = "PartsInventoryConsumed"
	TypeFinishedGoodsProduced         Type = "FinishedGoodsProduced"
	TypeFinishedGoodsScrapped         Type = "FinishedGoodsScrapped"
	TypeFinishedGoodsInventoryUpdated Type = "FinishedGoodsInventoryUpdated"
	TypeProductionIdle                Type = "ProductionIdle"
	TypeProductionOrderCompleted      Type = "ProductionOrderCompleted"
	TypeShipmentArrived               Type = "ShipmentArrived"
	TypeShipmentTrackingUpdated       Type = "ShipmentTrackingUpdated"
	TypeSalesOrderShipped             Type = "SalesOrderShipped"
	TypePurchaseOrderPaid             Type = "PurchaseOrderPaid"
	TypeSalesOrderInvoiced            Type = "SalesOrderInvoiced"
	TypeSalesOrderInvoicePaid         Type = "SalesOrderInvoicePaid"
	TypeHeartbeat                     Type = "Heartbeat"
	TypeSystem                        Type = "System"
)

// AllTypes returns every event type
func AllTypes() []Type {
	return []Type{
		TypeSalesOrderPlaced,
		TypeProductionOrderPlanned,
		TypePurchaseOrderPlaced,
		TypePurchaseOrderReceived,
		TypePartsInventoryIncreased,
		TypePartsInventoryConsumed,
		TypeFinishedGoodsProduced,
		TypeFinishedGoodsScrapped,
		TypeFinishedGoodsInventoryUpdated,
		TypeProductionIdle,
		TypeProductionOrderCompleted,
		TypeShipmentArrived,
		TypeShipmentTrackingUpdated,
		TypeSalesOrderShipped,
		TypePurchaseOrderPaid,
		TypeSalesOrderInvoiced,
		TypeSalesOrderInvoicePaid,
		TypeHeartbeat,
		TypeSystem,
	}
}

// String returns the string representation of the Type
func (t Type) String() string {
	return string(t)
}

// Event is implemented by every concrete event in this package
type Event interface {
	EventID() string
	EventType() Type
	OccurredAt() time.Time
	isEvent()
}

// Envelope holds the fields common to every event
type Envelope struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func newEnvelope(t Type, at time.Time) Envelope {
	return Envelope{ID: uuid.New().String(), Type: t, Timestamp: at.UTC()}
}

func (e Envelope) EventID() string       { return e.ID }
func (e Envelope) EventType() Type       { return e.Type }
func (e Envelope) OccurredAt() time.Time { return e.Timestamp }

// Marshal encodes an event as JSON with its type discriminator
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(e)
}

// Types returns the discriminators of evts in order
func Types(evts []Event) []Type {
	out := make([]Type, 0, len(evts))
	for _, e := range evts {
		out = append(out, e.EventType())
	}
	return out
}
