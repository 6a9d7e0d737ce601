package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarwn/consuming-logs/internal/application/common"
	"github.com/tarwn/consuming-logs/internal/domain/ledger"
)

// GetEntriesQuery represents a query to list persisted ledger entries
type GetEntriesQuery struct {
	Category *string
	Kind     *string
	Limit    int
	Offset   int
	OrderBy  string
}

// GetEntriesResponse represents the result of the query
type GetEntriesResponse struct {
	Entries []*EntryDTO
}

// EntryDTO represents a ledger entry data transfer object
type EntryDTO struct {
	ID            string
	Timestamp     time.Time
	Kind          string
	Category      string
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Reference     string
}

// GetEntriesHandler handles the GetEntries query
type GetEntriesHandler struct {
	entryRepo ledger.EntryRepository
}

// NewGetEntriesHandler creates a new GetEntriesHandler
func NewGetEntriesHandler(entryRepo ledger.EntryRepository) *GetEntriesHandler {
	return &GetEntriesHandler{entryRepo: entryRepo}
}

// Handle executes the GetEntries query
func (h *GetEntriesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetEntriesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetEntriesQuery")
	}

	opts := ledger.DefaultQueryOptions()
	if query.Limit > 0 {
		opts.Limit = query.Limit
	}
	opts.Offset = query.Offset
	if query.OrderBy != "" {
		if query.OrderBy != "timestamp ASC" && query.OrderBy != "timestamp DESC" {
			return nil, fmt.Errorf("invalid order: %s", query.OrderBy)
		}
		opts.OrderBy = query.OrderBy
	}

	if query.Category != nil {
		category, err := ledger.ParseCategory(*query.Category)
		if err != nil {
			return nil, err
		}
		opts.Category = &category
	}
	if query.Kind != nil {
		kind, err := ledger.ParseEntryKind(*query.Kind)
		if err != nil {
			return nil, err
		}
		opts.Kind = &kind
	}

	entries, err := h.entryRepo.Find(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}

	dtos := make([]*EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = &EntryDTO{
			ID:            e.ID().String(),
			Timestamp:     e.Timestamp(),
			Kind:          e.Kind().String(),
			Category:      e.Category().String(),
			Amount:        e.Amount(),
			BalanceBefore: e.BalanceBefore(),
			BalanceAfter:  e.BalanceAfter(),
			Reference:     e.Reference(),
		}
	}
	return &GetEntriesResponse{Entries: dtos}, nil
}
