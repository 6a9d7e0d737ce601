package persistence

import (
	"time"
)

// EventModel represents the events table. Seq preserves publish order.
type EventModel struct {
	Seq        int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	EventID    string    `gorm:"column:event_id;uniqueIndex;not null"`
	Type       string    `gorm:"column:type;index;not null"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null"`
	Payload    string    `gorm:"column:payload;type:text;not null"` // event JSON
}

func (EventModel) TableName() string {
	return "events"
}

// LedgerEntryModel represents the ledger_entries table.
// Money columns hold decimal text so no precision is lost on either driver.
type LedgerEntryModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	Timestamp     time.Time `gorm:"column:timestamp;index;not null"`
	Kind          string    `gorm:"column:kind;not null"`
	Category      string    `gorm:"column:category;index;not null"`
	Amount        string    `gorm:"column:amount;type:text;not null"`
	BalanceBefore string    `gorm:"column:balance_before;type:text;not null"`
	BalanceAfter  string    `gorm:"column:balance_after;type:text;not null"`
	Reference     string    `gorm:"column:reference"`
}

func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// CheckpointModel represents the checkpoints table
type CheckpointModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	Interval  int       `gorm:"column:tick_interval;index;not null"`
	Version   string    `gorm:"column:version"`
	Cash      string    `gorm:"column:cash;type:text;not null"`
	Status    string    `gorm:"column:status;type:text;not null"` // world.Status JSON
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (CheckpointModel) TableName() string {
	return "checkpoints"
}
