package commands

import (
	"context"
	"fmt"
	"sync"

	"github.com/tarwn/consuming-logs/internal/application/common"
	"github.com/tarwn/consuming-logs/internal/domain/ledger"
)

// EntrySource exposes the in-memory ledger in append order
type EntrySource interface {
	LedgerEntries() []*ledger.Entry
}

// SyncLedgerCommand copies ledger entries not yet persisted into the repository
type SyncLedgerCommand struct{}

// SyncLedgerResponse reports how many entries were written
type SyncLedgerResponse struct {
	Recorded int
	Total    int
}

// SyncLedgerHandler handles the SyncLedger command. The in-memory ledger is
// append-only, so a cursor over its length is enough to find new entries.
type SyncLedgerHandler struct {
	source EntrySource
	repo   ledger.EntryRepository

	mu     sync.Mutex
	synced int
}

// NewSyncLedgerHandler creates a new SyncLedgerHandler
func NewSyncLedgerHandler(source EntrySource, repo ledger.EntryRepository) *SyncLedgerHandler {
	return &SyncLedgerHandler{source: source, repo: repo}
}

// Handle executes the SyncLedger command
func (h *SyncLedgerHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*SyncLedgerCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *SyncLedgerCommand")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.source.LedgerEntries()
	recorded := 0
	for _, entry := range entries[h.synced:] {
		if err := h.repo.Create(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to record ledger entry %s: %w", entry.ID(), err)
		}
		h.synced++
		recorded++
	}

	if recorded > 0 {
		common.LoggerFromContext(ctx).Log("DEBUG", fmt.Sprintf("[Ledger] Recorded %d entries", recorded), map[string]interface{}{
			"recorded": recorded,
			"total":    len(entries),
		})
	}

	return &SyncLedgerResponse{Recorded: recorded, Total: len(entries)}, nil
}
