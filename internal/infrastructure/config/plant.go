package config

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tarwn/consuming-logs/internal/domain/plant"
)

// PlantConfig is the plant section as written in the config file.
// Money is kept as text until ToPlantConfig parses it into decimals.
type PlantConfig struct {
	ProductionLines     int    `mapstructure:"production_lines" yaml:"production_lines" validate:"min=0"`
	CapacityPerInterval int    `mapstructure:"capacity_per_interval" yaml:"capacity_per_interval" validate:"required,min=1"`
	SchedulingHorizon   int    `mapstructure:"scheduling_horizon" yaml:"scheduling_horizon" validate:"min=0"`
	ScrapFraction       string `mapstructure:"scrap_fraction" yaml:"scrap_fraction"`
	MinimumOrderSize    int    `mapstructure:"minimum_order_size" yaml:"minimum_order_size" validate:"min=0"`
	ShippingLeadTime    int    `mapstructure:"shipping_lead_time" yaml:"shipping_lead_time" validate:"min=0"`
	InitialCash         string `mapstructure:"initial_cash" yaml:"initial_cash"`

	OpeningInventory []StockConfig   `mapstructure:"opening_inventory" yaml:"opening_inventory" validate:"dive"`
	Products         []ProductConfig `mapstructure:"products" yaml:"products" validate:"required,min=1,dive"`
	Parts            []PartConfig    `mapstructure:"parts" yaml:"parts" validate:"required,min=1,dive"`
}

// StockConfig is a quantity of one part number
type StockConfig struct {
	PartNumber string `mapstructure:"part_number" yaml:"part_number" validate:"required"`
	Quantity   int    `mapstructure:"quantity" yaml:"quantity" validate:"min=0"`
}

// ProductConfig is one finished good in the product catalog
type ProductConfig struct {
	PartNumber string        `mapstructure:"part_number" yaml:"part_number" validate:"required"`
	Name       string        `mapstructure:"name" yaml:"name,omitempty"`
	UnitPrice  string        `mapstructure:"unit_price" yaml:"unit_price" validate:"required"`
	BOM        []StockConfig `mapstructure:"bom" yaml:"bom" validate:"dive"`
}

// PartConfig is one raw part in the parts catalog
type PartConfig struct {
	PartNumber string `mapstructure:"part_number" yaml:"part_number" validate:"required"`
	UnitPrice  string `mapstructure:"unit_price" yaml:"unit_price" validate:"required"`
}

// ToPlantConfig parses money fields and builds a validated plant.Config.
// Domain rule violations come back as *plant.ConfigurationError.
func (p PlantConfig) ToPlantConfig() (*plant.Config, error) {
	scrap, err := parseDecimal("plant.scrap_fraction", p.ScrapFraction)
	if err != nil {
		return nil, err
	}
	cash, err := parseDecimal("plant.initial_cash", p.InitialCash)
	if err != nil {
		return nil, err
	}

	opening := make(map[string]int, len(p.OpeningInventory))
	for _, s := range p.OpeningInventory {
		opening[s.PartNumber] += s.Quantity
	}

	products := make(plant.ProductCatalog, 0, len(p.Products))
	for i, good := range p.Products {
		price, err := parseDecimal(fmt.Sprintf("plant.products[%d].unit_price", i), good.UnitPrice)
		if err != nil {
			return nil, err
		}
		bom := make([]plant.BOMLine, 0, len(good.BOM))
		for _, line := range good.BOM {
			bom = append(bom, plant.BOMLine{PartNumber: line.PartNumber, Quantity: line.Quantity})
		}
		products = append(products, plant.FinishedGood{
			PartNumber: good.PartNumber,
			Name:       good.Name,
			UnitPrice:  price,
			BOM:        bom,
		})
	}

	parts := make(plant.PartsCatalog, 0, len(p.Parts))
	for i, part := range p.Parts {
		price, err := parseDecimal(fmt.Sprintf("plant.parts[%d].unit_price", i), part.UnitPrice)
		if err != nil {
			return nil, err
		}
		parts = append(parts, plant.RawPart{PartNumber: part.PartNumber, UnitPrice: price})
	}

	return plant.NewConfig(plant.ConfigParams{
		ProductionLines:     p.ProductionLines,
		CapacityPerInterval: p.CapacityPerInterval,
		SchedulingHorizon:   p.SchedulingHorizon,
		ScrapFraction:       scrap,
		MinimumOrderSize:    p.MinimumOrderSize,
		ShippingLeadTime:    p.ShippingLeadTime,
		InitialCash:         cash,
		OpeningInventory:    opening,
		ProductCatalog:      products,
		PartsCatalog:        parts,
	})
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("field '%s' is not a decimal: %q", field, value)
	}
	return d, nil
}
