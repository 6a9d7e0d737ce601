// Package world holds the plant's single mutable aggregate. Departments read it
// through Snapshot; only committed actions call its mutators.
package world

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarwn/consuming-logs/internal/domain/ledger"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/internal/domain/shared"
	"github.com/tarwn/consuming-logs/pkg/utils"
)

// Store is the authoritative plant state.
//
// Invariants:
// - every inventory quantity is >= 0
// - each entity is filed under exactly one lifecycle partition
// - cash equals the sum of ledger amounts
// - minted numbers are unique for the store's lifetime
//
// Every mutator holds the write lock for its whole body, so readers never
// observe a half-applied change.
type Store struct {
	mu sync.RWMutex

	config *plant.Config
	clock  shared.Clock

	seed    string
	counter int
	version string

	ledger            *ledger.Ledger
	partsInventory    map[string]int
	finishedInventory map[string]int
	scrappedInventory map[string]int

	openSalesOrders    *partition[plant.SalesOrder]
	shippedSalesOrders *partition[plant.SalesOrder]
	closedSalesOrders  *partition[plant.SalesOrder]

	openPurchaseOrders   *partition[plant.PurchaseOrder]
	closedPurchaseOrders *partition[plant.PurchaseOrder]
	// unbilled indexes closed purchase orders that have not been paid
	unbilledPurchaseOrders *partition[plant.PurchaseOrder]

	unscheduledProductionOrders *partition[plant.ProductionOrder]
	scheduledProductionOrders   *partition[plant.ProductionOrder]
	closedProductionOrders      *partition[plant.ProductionOrder]

	trackedShipments *partition[plant.Shipment]
	shippingHistory  *partition[plant.Shipment]

	productCatalog plant.ProductCatalog
	partsCatalog   plant.PartsCatalog
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used for ledger and event timestamps
func WithClock(clock shared.Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithSeed fixes the seed embedded in minted numbers
func WithSeed(seed string) Option {
	return func(s *Store) {
		s.seed = seed
	}
}

// NewStore creates a store from a validated configuration, stocked with the
// configured opening inventory and initial cash.
func NewStore(cfg *plant.Config, opts ...Option) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("plant config is required")
	}

	s := &Store{
		config:            cfg,
		ledger:            ledger.NewLedger(),
		partsInventory:    cfg.OpeningInventory(),
		finishedInventory: make(map[string]int),
		scrappedInventory: make(map[string]int),

		openSalesOrders:    newPartition[plant.SalesOrder](plant.KindSalesOrder, plant.PartitionOpen),
		shippedSalesOrders: newPartition[plant.SalesOrder](plant.KindSalesOrder, plant.PartitionShipped),
		closedSalesOrders:  newPartition[plant.SalesOrder](plant.KindSalesOrder, plant.PartitionClosed),

		openPurchaseOrders:     newPartition[plant.PurchaseOrder](plant.KindPurchaseOrder, plant.PartitionOpen),
		closedPurchaseOrders:   newPartition[plant.PurchaseOrder](plant.KindPurchaseOrder, plant.PartitionClosed),
		unbilledPurchaseOrders: newPartition[plant.PurchaseOrder](plant.KindPurchaseOrder, plant.PartitionUnbilled),

		unscheduledProductionOrders: newPartition[plant.ProductionOrder](plant.KindProductionOrder, plant.PartitionUnscheduled),
		scheduledProductionOrders:   newPartition[plant.ProductionOrder](plant.KindProductionOrder, plant.PartitionScheduled),
		closedProductionOrders:      newPartition[plant.ProductionOrder](plant.KindProductionOrder, plant.PartitionClosed),

		trackedShipments: newPartition[plant.Shipment](plant.KindShipment, plant.PartitionTracked),
		shippingHistory:  newPartition[plant.Shipment](plant.KindShipment, plant.PartitionHistory),

		productCatalog: cfg.ProductCatalog(),
		partsCatalog:   cfg.PartsCatalog(),
	}

	for _, opt := range opts {
		opt(s)
	}
	s.clock = shared.OrRealClock(s.clock)
	if s.seed == "" {
		s.seed = utils.ShortID()
	}

	if !cfg.InitialCash().IsZero() {
		if _, err := s.ledger.Append(s.clock.Now(), ledger.EntryKindOpeningBalance, cfg.InitialCash(), ""); err != nil {
			return nil, fmt.Errorf("failed to record opening balance: %w", err)
		}
	}

	return s, nil
}

// Config returns the configuration the store was built from
func (s *Store) Config() *plant.Config {
	return s.config
}

// Now returns the store clock's current time
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// mintNumber must be called with the write lock held
func (s *Store) mintNumber(prefix string) string {
	n := s.counter
	s.counter++
	return fmt.Sprintf("%s-%s-%d", prefix, s.seed, n)
}

// SetVersion records the id of the last event published for the store's state
func (s *Store) SetVersion(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = version
}

// Version returns the last recorded version
func (s *Store) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Cash returns the running ledger balance
func (s *Store) Cash() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Balance()
}

// LedgerEntries returns the ledger in append order
func (s *Store) LedgerEntries() []*ledger.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Entries()
}

// PartsOnHand returns the raw part quantity in stock
func (s *Store) PartsOnHand(partNumber string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.partsInventory[partNumber]
}

// FinishedOnHand returns the finished good quantity in stock
func (s *Store) FinishedOnHand(partNumber string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finishedInventory[partNumber]
}

// ScrappedOnHand returns the scrapped quantity of a finished good
func (s *Store) ScrappedOnHand(partNumber string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scrappedInventory[partNumber]
}

// AvailableProductionScheduleCapacity is the maximum production capacity minus
// the remaining quantity of every scheduled and unscheduled production order.
func (s *Store) AvailableProductionScheduleCapacity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.availableCapacity()
}

func (s *Store) availableCapacity() int {
	used := 0
	remaining := func(o *plant.ProductionOrder) {
		used += o.RemainingQuantity()
	}
	s.scheduledProductionOrders.each(remaining)
	s.unscheduledProductionOrders.each(remaining)
	return s.config.MaximumProductionCapacity() - used
}

func copyInventory(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
