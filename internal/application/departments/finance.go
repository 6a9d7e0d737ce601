package departments

import (
	"context"

	"github.com/tarwn/consuming-logs/internal/application/decision"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/world"
)

// FinanceDepartment pays suppliers and bills customers
type FinanceDepartment struct{}

func NewFinanceDepartment() *FinanceDepartment {
	return &FinanceDepartment{}
}

// PayForReceivedPurchaseOrders pays every unbilled purchase order
func (d *FinanceDepartment) PayForReceivedPurchaseOrders(view world.Snapshot) (*decision.Decision, error) {
	actions := make([]decision.Action, 0, len(view.UnbilledPurchaseOrders))
	for _, order := range view.UnbilledPurchaseOrders {
		actions = append(actions, payPurchaseOrder(order.Number()))
	}
	return decide(StepFinancePay, actions), nil
}

func payPurchaseOrder(number string) decision.Action {
	return func(ctx context.Context, store *world.Store, publisher events.Publisher) error {
		order, paid, err := store.PayPurchaseOrder(number)
		if err != nil {
			return err
		}
		return decision.Publish(ctx, publisher, events.NewPurchaseOrderPaid(store.Now(), order, paid))
	}
}

// BillForShippedSalesOrders invoices every shipped sales order and books the payment
func (d *FinanceDepartment) BillForShippedSalesOrders(view world.Snapshot) (*decision.Decision, error) {
	actions := make([]decision.Action, 0, len(view.ShippedSalesOrders))
	for _, order := range view.ShippedSalesOrders {
		actions = append(actions, billSalesOrder(order.Number()))
	}
	return decide(StepFinanceBill, actions), nil
}

func billSalesOrder(number string) decision.Action {
	return func(ctx context.Context, store *world.Store, publisher events.Publisher) error {
		order, err := store.InvoiceForSalesOrder(number)
		if err != nil {
			return err
		}
		amount := order.TotalPrice()
		if _, err := store.ReceivePaymentForSalesOrder(number, amount); err != nil {
			return err
		}
		now := store.Now()
		return decision.Publish(ctx, publisher,
			events.NewSalesOrderInvoiced(now, order, amount),
			events.NewSalesOrderInvoicePaid(now, order, amount),
		)
	}
}
