package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tarwn/consuming-logs/internal/domain/events"
)

// GormEventRepository implements events.RecordRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM event repository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Append persists records in one transaction
func (r *GormEventRepository) Append(ctx context.Context, records ...events.Record) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]*EventModel, 0, len(records))
	for _, rec := range records {
		models = append(models, recordToModel(rec))
	}

	result := r.db.WithContext(ctx).Create(&models)
	if result.Error != nil {
		return fmt.Errorf("failed to append events: %w", result.Error)
	}
	return nil
}

// Find retrieves records newest first
func (r *GormEventRepository) Find(ctx context.Context, query events.RecordQuery) ([]events.Record, error) {
	q := r.db.WithContext(ctx)
	if query.Type != nil {
		q = q.Where("type = ?", query.Type.String())
	}
	q = q.Order("seq DESC")
	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}

	var models []EventModel
	if result := q.Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to find events: %w", result.Error)
	}

	records := make([]events.Record, 0, len(models))
	for i := range models {
		rec, err := modelToRecord(&models[i])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Publish stores every event, making the repository an event sink
func (r *GormEventRepository) Publish(ctx context.Context, evts ...events.Event) error {
	records := make([]events.Record, 0, len(evts))
	for _, e := range evts {
		rec, err := events.NewRecord(e)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	return r.Append(ctx, records...)
}

func recordToModel(rec events.Record) *EventModel {
	return &EventModel{
		EventID:    rec.ID,
		Type:       rec.Type.String(),
		OccurredAt: rec.OccurredAt,
		Payload:    string(rec.Payload),
	}
}

func modelToRecord(model *EventModel) (events.Record, error) {
	t, err := events.ParseType(model.Type)
	if err != nil {
		return events.Record{}, fmt.Errorf("invalid event type in database: %w", err)
	}
	return events.Record{
		ID:         model.EventID,
		Type:       t,
		OccurredAt: model.OccurredAt.UTC(),
		Payload:    []byte(model.Payload),
	}, nil
}
