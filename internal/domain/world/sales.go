package world

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tarwn/consuming-logs/internal/domain/ledger"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
)

// PlaceSalesOrder numbers the order, files it as open and spawns its
// unscheduled production order.
func (s *Store) PlaceSalesOrder(order *plant.SalesOrder) (plant.SalesOrder, plant.ProductionOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := order.AssignNumber(s.mintNumber("so")); err != nil {
		return plant.SalesOrder{}, plant.ProductionOrder{}, err
	}
	production, err := order.GenerateProductionOrder()
	if err != nil {
		return plant.SalesOrder{}, plant.ProductionOrder{}, err
	}

	s.openSalesOrders.add(order.Number(), order)
	s.unscheduledProductionOrders.add(production.Number(), production)
	return *order, *production, nil
}

// IndicateSalesOrderHasShipped moves an open sales order to shipped
func (s *Store) IndicateSalesOrderHasShipped(number string) (plant.SalesOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.openSalesOrders.take(number)
	if err != nil {
		return plant.SalesOrder{}, err
	}
	s.shippedSalesOrders.add(number, order)
	return *order, nil
}

// InvoiceForSalesOrder moves a shipped sales order to closed
func (s *Store) InvoiceForSalesOrder(number string) (plant.SalesOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.shippedSalesOrders.take(number)
	if err != nil {
		return plant.SalesOrder{}, err
	}
	s.closedSalesOrders.add(number, order)
	return *order, nil
}

// ReceivePaymentForSalesOrder credits the ledger for an invoiced sales order
func (s *Store) ReceivePaymentForSalesOrder(number string, amount decimal.Decimal) (*ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.closedSalesOrders.get(number); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("payment for sales order %s cannot be negative: %s", number, amount)
	}
	return s.ledger.Append(s.clock.Now(), ledger.EntryKindSalesOrder, amount, number)
}
