package ledger

import (
	"context"
	"time"
)

// EntryRepository defines persistence operations for ledger entries
type EntryRepository interface {
	// Create persists a new entry
	Create(ctx context.Context, entry *Entry) error

	// FindByID retrieves an entry by its ID
	FindByID(ctx context.Context, id EntryID) (*Entry, error)

	// Find retrieves entries with optional filtering
	Find(ctx context.Context, opts QueryOptions) ([]*Entry, error)
}

// QueryOptions defines filtering and pagination options for entry queries
type QueryOptions struct {
	StartDate *time.Time
	EndDate   *time.Time

	Category *Category
	Kind     *EntryKind

	Limit  int
	Offset int

	// "timestamp ASC" or "timestamp DESC" (default DESC)
	OrderBy string
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Limit:   50,
		Offset:  0,
		OrderBy: "timestamp DESC",
	}
}
