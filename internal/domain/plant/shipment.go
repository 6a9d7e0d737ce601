package plant

import (
	"encoding/json"
	"fmt"
)

// OrderType identifies which kind of order a shipment moves goods for
type OrderType string

const (
	OrderTypePurchaseOrder OrderType = "PurchaseOrder"
	OrderTypeSalesOrder    OrderType = "SalesOrder"
)

// IsValid checks if the order type is valid
func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypePurchaseOrder, OrderTypeSalesOrder:
		return true
	default:
		return false
	}
}

// ParseOrderType parses a string into an OrderType
func ParseOrderType(s string) (OrderType, error) {
	t := OrderType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid order type: %s", s)
	}
	return t, nil
}

const notShipped = -1

// Shipment is goods in transit. Ship time stays -1 until a lead time is assigned.
type Shipment struct {
	number            string
	orderType         OrderType
	orderNumber       string
	partNumber        string
	quantity          int
	shipTime          int
	remainingShipTime int
}

// NewShipment creates an unnumbered shipment that has not been sent
func NewShipment(orderType OrderType, orderNumber, partNumber string, quantity int) *Shipment {
	return &Shipment{
		orderType:         orderType,
		orderNumber:       orderNumber,
		partNumber:        partNumber,
		quantity:          quantity,
		shipTime:          notShipped,
		remainingShipTime: notShipped,
	}
}

func (s Shipment) Number() string         { return s.number }
func (s Shipment) OrderType() OrderType   { return s.orderType }
func (s Shipment) OrderNumber() string    { return s.orderNumber }
func (s Shipment) PartNumber() string     { return s.partNumber }
func (s Shipment) Quantity() int          { return s.quantity }
func (s Shipment) ShipTime() int          { return s.shipTime }
func (s Shipment) RemainingShipTime() int { return s.remainingShipTime }

// HasArrived reports whether a sent shipment has counted down its lead time
func (s Shipment) HasArrived() bool {
	return s.shipTime > notShipped && s.remainingShipTime <= 0
}

// AssignNumber sets the shipment number. A number can be assigned only once.
func (s *Shipment) AssignNumber(number string) error {
	if s.number != "" {
		return NewNumberAlreadyAssignedError(KindShipment, s.number, number)
	}
	s.number = number
	return nil
}

// AssignShippingTime sends the shipment with the given lead time in intervals
func (s *Shipment) AssignShippingTime(leadTime int) {
	s.shipTime = leadTime
	s.remainingShipTime = leadTime
}

// DecrementShipTime counts down one interval of transit
func (s *Shipment) DecrementShipTime() {
	s.remainingShipTime--
}

func (s Shipment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ShipmentNumber    string    `json:"shipmentNumber"`
		OrderType         OrderType `json:"orderType"`
		OrderNumber       string    `json:"orderNumber"`
		PartNumber        string    `json:"partNumber"`
		Quantity          int       `json:"quantity"`
		ShipTime          int       `json:"shipTime"`
		RemainingShipTime int       `json:"remainingShipTime"`
	}{s.number, s.orderType, s.orderNumber, s.partNumber, s.quantity, s.shipTime, s.remainingShipTime})
}
