package plant

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tarwn/consuming-logs/internal/domain/shared"
)

const (
	DefaultProductionLines   = 1
	DefaultMinimumOrderSize  = 1
	DefaultSchedulingHorizon = 1
	DefaultShippingLeadTime  = 3
)

// ConfigParams is the raw input for a plant configuration.
// Zero values for lines, minimum order size, horizon and lead time fall back to defaults.
type ConfigParams struct {
	ProductionLines     int
	CapacityPerInterval int
	SchedulingHorizon   int
	ScrapFraction       decimal.Decimal
	MinimumOrderSize    int
	ShippingLeadTime    int
	InitialCash         decimal.Decimal
	OpeningInventory    map[string]int
	ProductCatalog      ProductCatalog
	PartsCatalog        PartsCatalog
}

// Config is an immutable, validated plant configuration
type Config struct {
	productionLines     int
	capacityPerInterval int
	schedulingHorizon   int
	scrapFraction       decimal.Decimal
	minimumOrderSize    int
	shippingLeadTime    int
	initialCash         decimal.Decimal
	openingInventory    map[string]int
	productCatalog      ProductCatalog
	partsCatalog        PartsCatalog
}

// NewConfig validates params and builds a Config.
// Returns *ConfigurationError listing every invalid field.
func NewConfig(p ConfigParams) (*Config, error) {
	if p.ProductionLines == 0 {
		p.ProductionLines = DefaultProductionLines
	}
	if p.MinimumOrderSize == 0 {
		p.MinimumOrderSize = DefaultMinimumOrderSize
	}
	if p.SchedulingHorizon == 0 {
		p.SchedulingHorizon = DefaultSchedulingHorizon
	}
	if p.ShippingLeadTime == 0 {
		p.ShippingLeadTime = DefaultShippingLeadTime
	}

	var problems shared.ValidationErrors

	if p.ProductionLines < 0 {
		problems.Add("productionLines", "must be at least 1, got %d", p.ProductionLines)
	}
	if p.CapacityPerInterval <= 0 {
		problems.Add("capacityPerInterval", "is required and must be at least 1, got %d", p.CapacityPerInterval)
	}
	if p.SchedulingHorizon < 0 {
		problems.Add("schedulingHorizon", "must be at least 1, got %d", p.SchedulingHorizon)
	}
	if p.ScrapFraction.IsNegative() || p.ScrapFraction.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		problems.Add("scrapFraction", "must be in [0,1), got %s", p.ScrapFraction)
	}
	if p.MinimumOrderSize < 0 {
		problems.Add("minimumOrderSize", "must be at least 1, got %d", p.MinimumOrderSize)
	}
	if p.ShippingLeadTime < 0 {
		problems.Add("shippingLeadTime", "must be at least 1, got %d", p.ShippingLeadTime)
	}

	if len(p.PartsCatalog) == 0 {
		problems.Add("partsCatalog", "is required and must not be empty")
	}
	parts := make(map[string]bool, len(p.PartsCatalog))
	for i, part := range p.PartsCatalog {
		field := fieldIndex("partsCatalog", i)
		if part.PartNumber == "" {
			problems.Add(field+".partNumber", "is required")
		} else if parts[part.PartNumber] {
			problems.Add(field+".partNumber", "duplicate part number %s", part.PartNumber)
		}
		parts[part.PartNumber] = true
		if part.UnitPrice.IsNegative() {
			problems.Add(field+".unitPrice", "must not be negative, got %s", part.UnitPrice)
		}
	}

	if len(p.ProductCatalog) == 0 {
		problems.Add("productCatalog", "is required and must not be empty")
	}
	products := make(map[string]bool, len(p.ProductCatalog))
	for i, good := range p.ProductCatalog {
		field := fieldIndex("productCatalog", i)
		if good.PartNumber == "" {
			problems.Add(field+".partNumber", "is required")
		} else if products[good.PartNumber] {
			problems.Add(field+".partNumber", "duplicate part number %s", good.PartNumber)
		}
		products[good.PartNumber] = true
		if good.UnitPrice.IsNegative() {
			problems.Add(field+".unitPrice", "must not be negative, got %s", good.UnitPrice)
		}
		for j, line := range good.BOM {
			lineField := fieldIndex(field+".bom", j)
			if line.Quantity <= 0 {
				problems.Add(lineField+".quantity", "must be at least 1, got %d", line.Quantity)
			}
			if !parts[line.PartNumber] {
				problems.Add(lineField+".partNumber", "part %s is not in the parts catalog", line.PartNumber)
			}
		}
	}

	for part, qty := range p.OpeningInventory {
		if qty < 0 {
			problems.Add("openingInventory."+part, "must not be negative, got %d", qty)
		}
	}

	if !problems.Empty() {
		return nil, NewConfigurationError(problems)
	}

	opening := make(map[string]int, len(p.OpeningInventory))
	for part, qty := range p.OpeningInventory {
		opening[part] = qty
	}

	return &Config{
		productionLines:     p.ProductionLines,
		capacityPerInterval: p.CapacityPerInterval,
		schedulingHorizon:   p.SchedulingHorizon,
		scrapFraction:       p.ScrapFraction,
		minimumOrderSize:    p.MinimumOrderSize,
		shippingLeadTime:    p.ShippingLeadTime,
		initialCash:         p.InitialCash,
		openingInventory:    opening,
		productCatalog:      p.ProductCatalog.Clone(),
		partsCatalog:        p.PartsCatalog.Clone(),
	}, nil
}

func fieldIndex(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// Getters

func (c *Config) ProductionLines() int { return c.productionLines }
func (c *Config) CapacityPerInterval() int { return c.capacityPerInterval }
func (c *Config) SchedulingHorizon() int { return c.schedulingHorizon }
func (c *Config) ScrapFraction() decimal.Decimal { return c.scrapFraction }
func (c *Config) MinimumOrderSize() int { return c.minimumOrderSize }
func (c *Config) ShippingLeadTime() int { return c.shippingLeadTime }
func (c *Config) InitialCash() decimal.Decimal { return c.initialCash }
func (c *Config) ProductCatalog() ProductCatalog { return c.productCatalog.Clone() }
func (c *Config) PartsCatalog() PartsCatalog { return c.partsCatalog.Clone() }

// OpeningInventory returns a copy of the parts on hand at construction
func (c *Config) OpeningInventory() map[string]int {
	out := make(map[string]int, len(c.openingInventory))
	for part, qty := range c.openingInventory {
		out[part] = qty
	}
	return out
}

// MaximumProductionCapacity is lines × capacity per line × scheduling horizon
func (c *Config) MaximumProductionCapacity() int {
	return c.productionLines * c.capacityPerInterval * c.schedulingHorizon
}
