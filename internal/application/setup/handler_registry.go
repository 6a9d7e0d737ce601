package setup

import (
	"fmt"

	"github.com/tarwn/consuming-logs/internal/application/common"
	eventQueries "github.com/tarwn/consuming-logs/internal/application/events/queries"
	ledgerCommands "github.com/tarwn/consuming-logs/internal/application/ledger/commands"
	ledgerQueries "github.com/tarwn/consuming-logs/internal/application/ledger/queries"
	"github.com/tarwn/consuming-logs/internal/application/simulation"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/ledger"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	simulator *simulation.Simulator
	entryRepo ledger.EntryRepository
	eventRepo events.RecordRepository
}

// NewHandlerRegistry creates a new handler registry. The repositories may be
// nil when the database sink is disabled; their handlers are then skipped.
func NewHandlerRegistry(
	simulator *simulation.Simulator,
	entryRepo ledger.EntryRepository,
	eventRepo events.RecordRepository,
) *HandlerRegistry {
	return &HandlerRegistry{
		simulator: simulator,
		entryRepo: entryRepo,
		eventRepo: eventRepo,
	}
}

// RegisterAll registers every handler the daemon serves
func (r *HandlerRegistry) RegisterAll(m common.Mediator) error {
	if err := simulation.RegisterHandlers(m, r.simulator); err != nil {
		return err
	}
	if err := r.RegisterLedgerHandlers(m); err != nil {
		return err
	}
	return r.RegisterEventHandlers(m)
}

// RegisterLedgerHandlers registers:
//   - SyncLedgerCommand → SyncLedgerHandler (mirrors the store ledger into the database)
//   - GetCashFlowQuery → GetCashFlowHandler
//   - GetEntriesQuery → GetEntriesHandler
func (r *HandlerRegistry) RegisterLedgerHandlers(m common.Mediator) error {
	if r.entryRepo == nil {
		return nil
	}

	syncHandler := ledgerCommands.NewSyncLedgerHandler(r.simulator.Store(), r.entryRepo)
	if err := common.RegisterHandler[*ledgerCommands.SyncLedgerCommand](m, syncHandler); err != nil {
		return fmt.Errorf("failed to register SyncLedgerCommand handler: %w", err)
	}

	cashFlowHandler := ledgerQueries.NewGetCashFlowHandler(r.entryRepo)
	if err := common.RegisterHandler[*ledgerQueries.GetCashFlowQuery](m, cashFlowHandler); err != nil {
		return fmt.Errorf("failed to register GetCashFlowQuery handler: %w", err)
	}

	entriesHandler := ledgerQueries.NewGetEntriesHandler(r.entryRepo)
	if err := common.RegisterHandler[*ledgerQueries.GetEntriesQuery](m, entriesHandler); err != nil {
		return fmt.Errorf("failed to register GetEntriesQuery handler: %w", err)
	}

	return nil
}

// RegisterEventHandlers registers ListEventsQuery → ListEventsHandler
func (r *HandlerRegistry) RegisterEventHandlers(m common.Mediator) error {
	if r.eventRepo == nil {
		return nil
	}

	if err := common.RegisterHandler[*eventQueries.ListEventsQuery](m, eventQueries.NewListEventsHandler(r.eventRepo)); err != nil {
		return fmt.Errorf("failed to register ListEventsQuery handler: %w", err)
	}
	return nil
}
