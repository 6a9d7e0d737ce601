package publisher_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarwn/consuming-logs/internal/adapters/publisher"
	"github.com/tarwn/consuming-logs/internal/application/common"
	ledgerCommands "github.com/tarwn/consuming-logs/internal/application/ledger/commands"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/test/helpers"
)

func TestLedgerProjection_SyncsOnlyWhenCashMoves(t *testing.T) {
	// Arrange
	med := helpers.NewMockMediator()
	med.SetSendFunc(func(ctx context.Context, request common.Request) (common.Response, error) {
		return &ledgerCommands.SyncLedgerResponse{}, nil
	})
	projection := publisher.NewLedgerProjection(med)
	order := plant.NewPurchaseOrder("raw-1", 10, decimal.RequireFromString("1.50"))
	ctx := context.Background()

	// Act
	require.NoError(t, projection.Publish(ctx, events.NewHeartbeat(helpers.TestStart, 10)))
	require.NoError(t, projection.Publish(ctx,
		events.NewPurchaseOrderReceived(helpers.TestStart, *order),
		events.NewPurchaseOrderPaid(helpers.TestStart, *order, order.TotalPrice()),
	))

	// Assert
	requests := med.Requests()
	require.Len(t, requests, 1)
	assert.IsType(t, &ledgerCommands.SyncLedgerCommand{}, requests[0])
}

func TestLedgerProjection_ReportsSyncFailure(t *testing.T) {
	// Arrange
	med := helpers.NewMockMediator()
	med.SetSendFunc(func(ctx context.Context, request common.Request) (common.Response, error) {
		return nil, errors.New("database is locked")
	})
	projection := publisher.NewLedgerProjection(med)

	// Act
	err := projection.Sync(context.Background())

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
}
