package helpers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/internal/domain/shared"
	"github.com/tarwn/consuming-logs/internal/domain/world"
)

// TestSeed is the number seed used by NewTestStore
const TestSeed = "test"

// TestStart is the mock clock's starting time in NewTestStore
var TestStart = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

// WidgetParams is a one-product plant: "widget" needs one "raw-1" per unit.
// Capacity 10 per interval on one line, minimum order 5, no scrap, no cash,
// nothing on hand.
func WidgetParams() plant.ConfigParams {
	return plant.ConfigParams{
		ProductionLines:     1,
		CapacityPerInterval: 10,
		MinimumOrderSize:    5,
		ScrapFraction:       decimal.Zero,
		ProductCatalog: plant.ProductCatalog{
			{
				PartNumber: "widget",
				Name:       "Widget",
				BOM:        []plant.BOMLine{{PartNumber: "raw-1", Quantity: 1}},
				UnitPrice:  decimal.NewFromInt(10),
			},
		},
		PartsCatalog: plant.PartsCatalog{
			{PartNumber: "raw-1", UnitPrice: decimal.RequireFromString("1.50")},
		},
	}
}

// GadgetParams is a two-ingredient plant: "gadget" needs 2 "bolt" and 1 "plate"
func GadgetParams() plant.ConfigParams {
	return plant.ConfigParams{
		ProductionLines:     1,
		CapacityPerInterval: 10,
		MinimumOrderSize:    10,
		ScrapFraction:       decimal.Zero,
		ProductCatalog: plant.ProductCatalog{
			{
				PartNumber: "gadget",
				Name:       "Gadget",
				BOM: []plant.BOMLine{
					{PartNumber: "bolt", Quantity: 2},
					{PartNumber: "plate", Quantity: 1},
				},
				UnitPrice: decimal.NewFromInt(40),
			},
		},
		PartsCatalog: plant.PartsCatalog{
			{PartNumber: "bolt", UnitPrice: decimal.RequireFromString("0.25")},
			{PartNumber: "plate", UnitPrice: decimal.NewFromInt(3)},
		},
	}
}

// NewPlantConfig validates params and fails the test on error
func NewPlantConfig(t testing.TB, params plant.ConfigParams) *plant.Config {
	t.Helper()
	cfg, err := plant.NewConfig(params)
	if err != nil {
		t.Fatalf("invalid plant config: %v", err)
	}
	return cfg
}

// NewTestStore builds a store with TestSeed and a mock clock at TestStart
func NewTestStore(t testing.TB, params plant.ConfigParams) (*world.Store, *shared.MockClock) {
	t.Helper()
	clock := shared.NewMockClock(TestStart)
	store, err := world.NewStore(NewPlantConfig(t, params), world.WithSeed(TestSeed), world.WithClock(clock))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store, clock
}
