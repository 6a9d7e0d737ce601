package world

import (
	"fmt"

	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/internal/domain/shared"
)

// ProductionResult describes the state after finished goods were produced
type ProductionResult struct {
	Order          plant.ProductionOrder
	InventoryTotal int
}

// PlanProductionOrder moves an unscheduled production order to scheduled
func (s *Store) PlanProductionOrder(number string) (plant.ProductionOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.unscheduledProductionOrders.take(number)
	if err != nil {
		return plant.ProductionOrder{}, err
	}
	s.scheduledProductionOrders.add(number, order)
	return *order, nil
}

// ConsumeParts takes raw parts out of inventory. Returns the remaining quantity.
func (s *Store) ConsumeParts(partNumber string, quantity int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 0 {
		return 0, shared.NewValidationError("quantity", fmt.Sprintf("cannot consume %d of %s", quantity, partNumber))
	}
	onHand := s.partsInventory[partNumber]
	if quantity > onHand {
		return 0, plant.NewInsufficientInventoryError(partNumber, onHand, quantity)
	}
	s.partsInventory[partNumber] = onHand - quantity
	return s.partsInventory[partNumber], nil
}

// ProduceFinishedGoods records produced units against a scheduled order and stocks them
func (s *Store) ProduceFinishedGoods(orderNumber, partNumber string, quantity int) (ProductionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.scheduledProductionOrders.get(orderNumber)
	if err != nil {
		return ProductionResult{}, err
	}
	if order.PartNumber() != partNumber {
		return ProductionResult{}, fmt.Errorf("production order %s builds %s, not %s",
			orderNumber, order.PartNumber(), partNumber)
	}
	if err := order.IncreaseCompletedQuantity(quantity); err != nil {
		return ProductionResult{}, err
	}

	s.finishedInventory[partNumber] += quantity
	return ProductionResult{Order: *order, InventoryTotal: s.finishedInventory[partNumber]}, nil
}

// ScrapFinishedGoods adds units to the scrapped inventory. Returns the scrapped total.
func (s *Store) ScrapFinishedGoods(partNumber string, quantity int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 0 {
		return 0, shared.NewValidationError("quantity", fmt.Sprintf("cannot scrap %d of %s", quantity, partNumber))
	}
	s.scrappedInventory[partNumber] += quantity
	return s.scrappedInventory[partNumber], nil
}

// StageProductionOrderToShip closes a scheduled production order
func (s *Store) StageProductionOrderToShip(number string) (plant.ProductionOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.scheduledProductionOrders.take(number)
	if err != nil {
		return plant.ProductionOrder{}, err
	}
	s.closedProductionOrders.add(number, order)
	return *order, nil
}
