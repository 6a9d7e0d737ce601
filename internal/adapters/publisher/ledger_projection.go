package publisher

import (
	"context"
	"fmt"

	"github.com/tarwn/consuming-logs/internal/application/common"
	ledgerCommands "github.com/tarwn/consuming-logs/internal/application/ledger/commands"
	"github.com/tarwn/consuming-logs/internal/domain/events"
)

// LedgerProjection mirrors the store's ledger into the database whenever a
// published event moved cash
type LedgerProjection struct {
	mediator common.Mediator
}

// NewLedgerProjection creates a projection that syncs through the mediator
func NewLedgerProjection(mediator common.Mediator) *LedgerProjection {
	return &LedgerProjection{mediator: mediator}
}

// Publish implements events.Publisher
func (p *LedgerProjection) Publish(ctx context.Context, evts ...events.Event) error {
	if !movesCash(evts) {
		return nil
	}
	return p.Sync(ctx)
}

// Sync records every ledger entry not yet persisted
func (p *LedgerProjection) Sync(ctx context.Context) error {
	if _, err := p.mediator.Send(ctx, &ledgerCommands.SyncLedgerCommand{}); err != nil {
		return fmt.Errorf("failed to sync ledger: %w", err)
	}
	return nil
}

func movesCash(evts []events.Event) bool {
	for _, e := range evts {
		switch e.EventType() {
		case events.TypePurchaseOrderPaid, events.TypeSalesOrderInvoicePaid:
			return true
		}
	}
	return false
}
