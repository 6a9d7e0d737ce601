package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarwn/consuming-logs/internal/application/common"
	"github.com/tarwn/consuming-logs/internal/domain/ledger"
)

// GetCashFlowQuery represents a query for the cash flow statement.
// Nil dates leave that side of the period open.
type GetCashFlowQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// GetCashFlowResponse represents the cash flow statement result
type GetCashFlowResponse struct {
	Period     string
	Categories []*CategoryCashFlow
	NetFlow    decimal.Decimal
	Entries    int
}

// CategoryCashFlow represents cash flow for a specific category
type CategoryCashFlow struct {
	Category     string
	TotalInflow  decimal.Decimal
	TotalOutflow decimal.Decimal
	NetFlow      decimal.Decimal
	Entries      int
}

// GetCashFlowHandler handles the GetCashFlow query
type GetCashFlowHandler struct {
	entryRepo ledger.EntryRepository
}

// NewGetCashFlowHandler creates a new GetCashFlowHandler
func NewGetCashFlowHandler(entryRepo ledger.EntryRepository) *GetCashFlowHandler {
	return &GetCashFlowHandler{entryRepo: entryRepo}
}

// Handle executes the GetCashFlow query
func (h *GetCashFlowHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetCashFlowQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCashFlowQuery")
	}

	entries, err := h.entryRepo.Find(ctx, ledger.QueryOptions{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		OrderBy:   "timestamp ASC",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}

	return calculateCashFlow(query, entries), nil
}

func calculateCashFlow(query *GetCashFlowQuery, entries []*ledger.Entry) *GetCashFlowResponse {
	byCategory := make(map[ledger.Category]*CategoryCashFlow)
	net := decimal.Zero

	for _, entry := range entries {
		flow, ok := byCategory[entry.Category()]
		if !ok {
			flow = &CategoryCashFlow{Category: entry.Category().String()}
			byCategory[entry.Category()] = flow
		}
		flow.Entries++

		amount := entry.Amount()
		if amount.IsPositive() {
			flow.TotalInflow = flow.TotalInflow.Add(amount)
		} else {
			flow.TotalOutflow = flow.TotalOutflow.Add(amount.Neg())
		}
		flow.NetFlow = flow.TotalInflow.Sub(flow.TotalOutflow)
		net = net.Add(amount)
	}

	// report categories in a stable order, skipping empty ones
	categories := make([]*CategoryCashFlow, 0, len(byCategory))
	for _, cat := range ledger.AllCategories() {
		if flow, ok := byCategory[cat]; ok {
			categories = append(categories, flow)
		}
	}

	return &GetCashFlowResponse{
		Period:     formatPeriod(query.StartDate, query.EndDate),
		Categories: categories,
		NetFlow:    net,
		Entries:    len(entries),
	}
}

func formatPeriod(start, end *time.Time) string {
	from, to := "beginning", "now"
	if start != nil {
		from = start.Format("2006-01-02")
	}
	if end != nil {
		to = end.Format("2006-01-02")
	}
	return fmt.Sprintf("%s to %s", from, to)
}
