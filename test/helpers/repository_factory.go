package helpers

import (
	"gorm.io/gorm"

	"github.com/tarwn/consuming-logs/internal/adapters/persistence"
	"github.com/tarwn/consuming-logs/internal/domain/shared"
)

// TestRepositories holds real repository instances over one test database
type TestRepositories struct {
	DB          *gorm.DB
	Events      *persistence.GormEventRepository
	Ledger      *persistence.GormLedgerEntryRepository
	Checkpoints *persistence.GormCheckpointRepository
}

// NewTestRepositories wires every repository to db
func NewTestRepositories(db *gorm.DB, clock shared.Clock) *TestRepositories {
	return &TestRepositories{
		DB:          db,
		Events:      persistence.NewGormEventRepository(db),
		Ledger:      persistence.NewGormLedgerEntryRepository(db),
		Checkpoints: persistence.NewGormCheckpointRepository(db, clock),
	}
}
