package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tarwn/consuming-logs/internal/domain/world"
)

// SimulationMetricsCollector handles tick, decision, event and plant state metrics
type SimulationMetricsCollector struct {
	// Tick metrics
	ticksTotal   *prometheus.CounterVec
	tickDuration prometheus.Histogram

	// Decision and event metrics
	decisionActionsTotal *prometheus.CounterVec
	eventsPublishedTotal *prometheus.CounterVec

	// Plant state gauges
	cash            prometheus.Gauge
	capacity        prometheus.Gauge
	inventory       *prometheus.GaugeVec
	partitionOrders *prometheus.GaugeVec
}

// NewSimulationMetricsCollector creates a new simulation metrics collector
func NewSimulationMetricsCollector() *SimulationMetricsCollector {
	return &SimulationMetricsCollector{
		ticksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ticks_total",
				Help:      "Total number of tick requests by outcome (completed, failed, dropped)",
			},
			[]string{"outcome"},
		),

		tickDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "tick_duration_seconds",
				Help:      "Wall time spent deciding and executing one tick",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 5.0},
			},
		),

		decisionActionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "decision_actions_total",
				Help:      "Total number of actions decided by step",
			},
			[]string{"step"},
		),

		eventsPublishedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_published_total",
				Help:      "Total number of events published by type",
			},
			[]string{"type"},
		),

		cash: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "plant",
				Name:      "cash",
				Help:      "Current ledger balance",
			},
		),

		capacity: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "plant",
				Name:      "available_capacity",
				Help:      "Unreserved production schedule capacity",
			},
		),

		inventory: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "plant",
				Name:      "inventory_units",
				Help:      "Units on hand by inventory kind (parts, finished, scrapped) and part number",
			},
			[]string{"kind", "part"},
		),

		partitionOrders: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "plant",
				Name:      "partition_size",
				Help:      "Entities held per lifecycle partition",
			},
			[]string{"entity", "partition"},
		),
	}
}

// Register registers all simulation metrics with the Prometheus registry
func (c *SimulationMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.ticksTotal,
		c.tickDuration,
		c.decisionActionsTotal,
		c.eventsPublishedTotal,
		c.cash,
		c.capacity,
		c.inventory,
		c.partitionOrders,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordTickCompleted records a tick that ran to completion
func (c *SimulationMetricsCollector) RecordTickCompleted(durationSeconds float64) {
	c.ticksTotal.WithLabelValues("completed").Inc()
	c.tickDuration.Observe(durationSeconds)
}

// RecordTickFailed records a tick aborted by an action error
func (c *SimulationMetricsCollector) RecordTickFailed(durationSeconds float64) {
	c.ticksTotal.WithLabelValues("failed").Inc()
	c.tickDuration.Observe(durationSeconds)
}

// RecordTickDropped records a tick request rejected while another was running
func (c *SimulationMetricsCollector) RecordTickDropped() {
	c.ticksTotal.WithLabelValues("dropped").Inc()
}

// RecordDecision records the number of actions a decide step produced
func (c *SimulationMetricsCollector) RecordDecision(step string, actions int) {
	c.decisionActionsTotal.WithLabelValues(step).Add(float64(actions))
}

// RecordEventPublished records one published event
func (c *SimulationMetricsCollector) RecordEventPublished(eventType string) {
	c.eventsPublishedTotal.WithLabelValues(eventType).Inc()
}

// RecordPlantStatus refreshes every plant gauge from a status report
func (c *SimulationMetricsCollector) RecordPlantStatus(status world.Status) {
	cash, _ := status.Cash.Float64()
	c.cash.Set(cash)
	c.capacity.Set(float64(status.AvailableCapacity))

	setInventory := func(kind string, stock map[string]int) {
		for part, qty := range stock {
			c.inventory.WithLabelValues(kind, part).Set(float64(qty))
		}
	}
	setInventory("parts", status.PartsInventory)
	setInventory("finished", status.FinishedInventory)
	setInventory("scrapped", status.ScrappedInventory)

	partitions := []struct {
		entity    string
		partition string
		size      int
	}{
		{"sales_order", "open", status.OpenSalesOrders},
		{"sales_order", "shipped", status.ShippedSalesOrders},
		{"sales_order", "closed", status.ClosedSalesOrders},
		{"purchase_order", "open", status.OpenPurchaseOrders},
		{"purchase_order", "unbilled", status.UnbilledPurchaseOrders},
		{"purchase_order", "closed", status.ClosedPurchaseOrders},
		{"production_order", "unscheduled", status.UnscheduledProductionOrders},
		{"production_order", "scheduled", status.ScheduledProductionOrders},
		{"production_order", "closed", status.ClosedProductionOrders},
		{"shipment", "tracked", status.TrackedShipments},
		{"shipment", "history", status.ShippingHistory},
	}
	for _, p := range partitions {
		c.partitionOrders.WithLabelValues(p.entity, p.partition).Set(float64(p.size))
	}
}
