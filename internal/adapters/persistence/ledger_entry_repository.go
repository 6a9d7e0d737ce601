package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tarwn/consuming-logs/internal/domain/ledger"
)

// GormLedgerEntryRepository implements ledger.EntryRepository using GORM
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GORM ledger entry repository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// Create persists a new entry
func (r *GormLedgerEntryRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	result := r.db.WithContext(ctx).Create(entryToModel(entry))
	if result.Error != nil {
		return fmt.Errorf("failed to create ledger entry: %w", result.Error)
	}
	return nil
}

// FindByID retrieves an entry by its ID
func (r *GormLedgerEntryRepository) FindByID(ctx context.Context, id ledger.EntryID) (*ledger.Entry, error) {
	var model LedgerEntryModel
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &ledger.ErrEntryNotFound{ID: id.String()}
		}
		return nil, fmt.Errorf("failed to find ledger entry: %w", result.Error)
	}
	return modelToEntry(&model)
}

// Find retrieves entries with optional filtering
func (r *GormLedgerEntryRepository) Find(ctx context.Context, opts ledger.QueryOptions) ([]*ledger.Entry, error) {
	query := r.applyFilters(r.db.WithContext(ctx), opts)

	orderBy := "timestamp DESC"
	if opts.OrderBy != "" {
		orderBy = opts.OrderBy
	}
	query = query.Order(orderBy)

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []LedgerEntryModel
	if result := query.Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to find ledger entries: %w", result.Error)
	}

	entries := make([]*ledger.Entry, len(models))
	for i := range models {
		entry, err := modelToEntry(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert ledger entry model: %w", err)
		}
		entries[i] = entry
	}
	return entries, nil
}

func (r *GormLedgerEntryRepository) applyFilters(query *gorm.DB, opts ledger.QueryOptions) *gorm.DB {
	if opts.StartDate != nil {
		query = query.Where("timestamp >= ?", *opts.StartDate)
	}
	if opts.EndDate != nil {
		query = query.Where("timestamp <= ?", *opts.EndDate)
	}
	if opts.Category != nil {
		query = query.Where("category = ?", opts.Category.String())
	}
	if opts.Kind != nil {
		query = query.Where("kind = ?", opts.Kind.String())
	}
	return query
}

func modelToEntry(model *LedgerEntryModel) (*ledger.Entry, error) {
	id, err := ledger.NewEntryIDFromString(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid entry ID in database: %w", err)
	}
	kind, err := ledger.ParseEntryKind(model.Kind)
	if err != nil {
		return nil, fmt.Errorf("invalid entry kind in database: %w", err)
	}
	category, err := ledger.ParseCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid category in database: %w", err)
	}

	amounts := make([]decimal.Decimal, 3)
	for i, raw := range []string{model.Amount, model.BalanceBefore, model.BalanceAfter} {
		amounts[i], err = decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in database for entry %s: %w", model.ID, err)
		}
	}

	return ledger.ReconstructEntry(
		id,
		model.Timestamp.UTC(),
		kind,
		category,
		amounts[0],
		amounts[1],
		amounts[2],
		model.Reference,
	), nil
}

func entryToModel(entry *ledger.Entry) *LedgerEntryModel {
	return &LedgerEntryModel{
		ID:            entry.ID().String(),
		Timestamp:     entry.Timestamp(),
		Kind:          entry.Kind().String(),
		Category:      entry.Category().String(),
		Amount:        entry.Amount().String(),
		BalanceBefore: entry.BalanceBefore().String(),
		BalanceAfter:  entry.BalanceAfter().String(),
		Reference:     entry.Reference(),
	}
}
