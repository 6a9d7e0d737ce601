// Package departments holds the rule-evaluating business areas of the plant.
// Every decide operation is a pure function of a world.Snapshot.
package departments

import (
	"github.com/tarwn/consuming-logs/internal/application/decision"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/internal/domain/world"
)

// Decision names, also used as metric and log labels
const (
	StepSales                   = "sales"
	StepPlanning                = "planning"
	StepPurchasing              = "purchasing"
	StepWarehouseReceive        = "warehouse-receive"
	StepFinancePay              = "finance-pay"
	StepProduction              = "production"
	StepWarehouseShip           = "warehouse-ship"
	StepFinanceBill             = "finance-bill"
	StepWarehouseStopTracking   = "warehouse-stop-tracking"
	StepWarehouseUpdateTracking = "warehouse-update-tracking"
)

// DecideFunc reads a snapshot and returns an uncommitted decision
type DecideFunc func(view world.Snapshot) (*decision.Decision, error)

// Step is one decide operation in the tick order
type Step struct {
	Name   string
	Decide DecideFunc
}

// Departments groups the six departments of one plant
type Departments struct {
	Sales      *SalesDepartment
	Planning   *PlanningDepartment
	Purchasing *PurchasingDepartment
	Production *ProductionDepartment
	Warehouse  *WarehouseDepartment
	Finance    *FinanceDepartment
}

// New creates every department for the given configuration
func New(cfg *plant.Config) *Departments {
	return &Departments{
		Sales:      NewSalesDepartment(cfg),
		Planning:   NewPlanningDepartment(),
		Purchasing: NewPurchasingDepartment(),
		Production: NewProductionDepartment(cfg),
		Warehouse:  NewWarehouseDepartment(),
		Finance:    NewFinanceDepartment(),
	}
}

// Steps returns the decide operations in the order a tick runs them
func (d *Departments) Steps() []Step {
	return []Step{
		{Name: StepSales, Decide: d.Sales.GenerateOrdersIfCapacityIsAvailable},
		{Name: StepPlanning, Decide: d.Planning.PlanUnscheduledProductionOrders},
		{Name: StepPurchasing, Decide: d.Purchasing.OrderPartsForPlannedOrders},
		{Name: StepWarehouseReceive, Decide: d.Warehouse.ReceivePurchasedParts},
		{Name: StepFinancePay, Decide: d.Finance.PayForReceivedPurchaseOrders},
		{Name: StepProduction, Decide: d.Production.RunPlannedProductionOrders},
		{Name: StepWarehouseShip, Decide: d.Warehouse.ShipCompletedSalesOrders},
		{Name: StepFinanceBill, Decide: d.Finance.BillForShippedSalesOrders},
		{Name: StepWarehouseStopTracking, Decide: d.Warehouse.StopTrackingDeliveredSalesOrders},
		{Name: StepWarehouseUpdateTracking, Decide: d.Warehouse.UpdateTrackingForInTransitShipments},
	}
}

func decide(name string, actions []decision.Action) *decision.Decision {
	if len(actions) == 0 {
		return decision.NoAction(name)
	}
	return decision.New(name, actions...)
}
