package events

import (
	"context"
	"fmt"
	"time"
)

// Record is an event in its stored form: the envelope fields plus the JSON body
type Record struct {
	ID         string
	Type       Type
	OccurredAt time.Time
	Payload    []byte
}

// NewRecord encodes an event for storage
func NewRecord(e Event) (Record, error) {
	payload, err := Marshal(e)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode %s event %s: %w", e.EventType(), e.EventID(), err)
	}
	return Record{
		ID:         e.EventID(),
		Type:       e.EventType(),
		OccurredAt: e.OccurredAt(),
		Payload:    payload,
	}, nil
}

// RecordRepository defines persistence operations for published events
type RecordRepository interface {
	// Append stores records in the order given
	Append(ctx context.Context, records ...Record) error

	// Find returns stored records, newest first
	Find(ctx context.Context, query RecordQuery) ([]Record, error)
}

// RecordQuery filters stored events
type RecordQuery struct {
	Type  *Type
	Limit int
}

// ParseType parses a string into a Type
func ParseType(s string) (Type, error) {
	for _, t := range AllTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid event type: %s", s)
}
