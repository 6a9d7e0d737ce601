package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarwn/consuming-logs/internal/adapters/persistence"
	"github.com/tarwn/consuming-logs/internal/application/ledger/queries"
	"github.com/tarwn/consuming-logs/internal/domain/ledger"
	"github.com/tarwn/consuming-logs/test/helpers"
)

// seedLedger stores: opening +1000, two payments of -15, one sale of +50
func seedLedger(t *testing.T) *persistence.GormLedgerEntryRepository {
	t.Helper()
	repo := persistence.NewGormLedgerEntryRepository(helpers.NewTestDB(t))
	l := ledger.NewLedger()
	steps := []struct {
		kind   ledger.EntryKind
		amount int64
		ref    string
	}{
		{ledger.EntryKindOpeningBalance, 1000, ""},
		{ledger.EntryKindPurchaseOrder, -15, "purch-test-1"},
		{ledger.EntryKindPurchaseOrder, -15, "purch-test-3"},
		{ledger.EntryKindSalesOrder, 50, "so-test-0"},
	}
	for i, s := range steps {
		entry, err := l.Append(helpers.TestStart.Add(time.Duration(i)*time.Hour), s.kind, decimal.NewFromInt(s.amount), s.ref)
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), entry))
	}
	return repo
}

func TestGetCashFlow_GroupsByCategory(t *testing.T) {
	// Arrange
	handler := queries.NewGetCashFlowHandler(seedLedger(t))

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetCashFlowQuery{})

	// Assert
	require.NoError(t, err)
	flow := resp.(*queries.GetCashFlowResponse)
	assert.Equal(t, "beginning to now", flow.Period)
	assert.Equal(t, 4, flow.Entries)
	assert.True(t, decimal.NewFromInt(1020).Equal(flow.NetFlow))

	require.Len(t, flow.Categories, 3)
	assert.Equal(t, "CAPITAL", flow.Categories[0].Category)
	assert.Equal(t, "MATERIAL_COSTS", flow.Categories[1].Category)
	assert.True(t, decimal.NewFromInt(30).Equal(flow.Categories[1].TotalOutflow))
	assert.True(t, decimal.NewFromInt(-30).Equal(flow.Categories[1].NetFlow))
	assert.Equal(t, 2, flow.Categories[1].Entries)
	assert.Equal(t, "SALES_REVENUE", flow.Categories[2].Category)
	assert.True(t, decimal.NewFromInt(50).Equal(flow.Categories[2].TotalInflow))
}

func TestGetCashFlow_RespectsPeriod(t *testing.T) {
	// Arrange
	handler := queries.NewGetCashFlowHandler(seedLedger(t))
	start := helpers.TestStart.Add(30 * time.Minute)
	end := helpers.TestStart.Add(150 * time.Minute)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetCashFlowQuery{StartDate: &start, EndDate: &end})

	// Assert
	require.NoError(t, err)
	flow := resp.(*queries.GetCashFlowResponse)
	assert.Equal(t, "2026-01-05 to 2026-01-05", flow.Period)
	require.Len(t, flow.Categories, 1)
	assert.Equal(t, "MATERIAL_COSTS", flow.Categories[0].Category)
	assert.True(t, decimal.NewFromInt(-30).Equal(flow.NetFlow))
}

func TestGetEntries_FiltersByKindAndLimits(t *testing.T) {
	// Arrange
	handler := queries.NewGetEntriesHandler(seedLedger(t))
	kind := "PURCHASE_ORDER"

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetEntriesQuery{Kind: &kind, Limit: 1})

	// Assert
	require.NoError(t, err)
	entries := resp.(*queries.GetEntriesResponse).Entries
	require.Len(t, entries, 1)
	assert.Equal(t, "purch-test-3", entries[0].Reference)
	assert.Equal(t, "MATERIAL_COSTS", entries[0].Category)
	assert.True(t, decimal.NewFromInt(-15).Equal(entries[0].Amount))
}

func TestGetEntries_RejectsBadFilters(t *testing.T) {
	handler := queries.NewGetEntriesHandler(seedLedger(t))
	bad := "BRIBES"

	tests := []struct {
		name  string
		query *queries.GetEntriesQuery
	}{
		{name: "category", query: &queries.GetEntriesQuery{Category: &bad}},
		{name: "kind", query: &queries.GetEntriesQuery{Kind: &bad}},
		{name: "order", query: &queries.GetEntriesQuery{OrderBy: "amount; DROP TABLE ledger_entries"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tt.query)
			assert.Error(t, err)
		})
	}
}
