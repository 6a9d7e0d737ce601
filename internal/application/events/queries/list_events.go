package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tarwn/consuming-logs/internal/application/common"
	"github.com/tarwn/consuming-logs/internal/domain/events"
)

// DefaultLimit is how many events ListEventsQuery returns when no limit is given
const DefaultLimit = 20

// ListEventsQuery represents a query for recently published events
type ListEventsQuery struct {
	Type  *string
	Limit int
}

// ListEventsResponse holds events newest first
type ListEventsResponse struct {
	Events []*EventDTO
}

// EventDTO represents a stored event
type EventDTO struct {
	ID         string
	Type       string
	OccurredAt time.Time
	Payload    json.RawMessage
}

// ListEventsHandler handles the ListEvents query
type ListEventsHandler struct {
	repo events.RecordRepository
}

// NewListEventsHandler creates a new ListEventsHandler
func NewListEventsHandler(repo events.RecordRepository) *ListEventsHandler {
	return &ListEventsHandler{repo: repo}
}

// Handle executes the ListEvents query
func (h *ListEventsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListEventsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListEventsQuery")
	}

	rq := events.RecordQuery{Limit: query.Limit}
	if rq.Limit <= 0 {
		rq.Limit = DefaultLimit
	}
	if query.Type != nil {
		t, err := events.ParseType(*query.Type)
		if err != nil {
			return nil, err
		}
		rq.Type = &t
	}

	records, err := h.repo.Find(ctx, rq)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}

	dtos := make([]*EventDTO, len(records))
	for i, r := range records {
		dtos[i] = &EventDTO{
			ID:         r.ID,
			Type:       r.Type.String(),
			OccurredAt: r.OccurredAt,
			Payload:    json.RawMessage(r.Payload),
		}
	}
	return &ListEventsResponse{Events: dtos}, nil
}
