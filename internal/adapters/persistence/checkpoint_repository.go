package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tarwn/consuming-logs/internal/domain/shared"
	"github.com/tarwn/consuming-logs/internal/domain/world"
)

// ErrNoCheckpoint is returned when nothing has been checkpointed yet
var ErrNoCheckpoint = errors.New("no checkpoint saved")

// GormCheckpointRepository stores heartbeat checkpoints using GORM
type GormCheckpointRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormCheckpointRepository creates a new GORM checkpoint repository.
// A nil clock uses the real clock.
func NewGormCheckpointRepository(db *gorm.DB, clock shared.Clock) *GormCheckpointRepository {
	return &GormCheckpointRepository{db: db, clock: shared.OrRealClock(clock)}
}

// SaveCheckpoint persists the status reached at an interval
func (r *GormCheckpointRepository) SaveCheckpoint(ctx context.Context, interval int, status world.Status) error {
	body, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint status: %w", err)
	}

	model := &CheckpointModel{
		Interval:  interval,
		Version:   status.Version,
		Cash:      status.Cash.String(),
		Status:    string(body),
		CreatedAt: r.clock.Now(),
	}
	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return fmt.Errorf("failed to save checkpoint: %w", result.Error)
	}
	return nil
}

// Latest returns the most recent checkpoint
func (r *GormCheckpointRepository) Latest(ctx context.Context) (*world.Checkpoint, error) {
	var model CheckpointModel
	result := r.db.WithContext(ctx).Order("id DESC").First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNoCheckpoint
		}
		return nil, fmt.Errorf("failed to find checkpoint: %w", result.Error)
	}

	var status world.Status
	if err := json.Unmarshal([]byte(model.Status), &status); err != nil {
		return nil, fmt.Errorf("invalid checkpoint status in database: %w", err)
	}

	return &world.Checkpoint{
		Interval: model.Interval,
		Status:   status,
		SavedAt:  model.CreatedAt.UTC(),
	}, nil
}
