package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tarwn/consuming-logs/internal/adapters/persistence"
	"github.com/tarwn/consuming-logs/internal/adapters/publisher"
	"github.com/tarwn/consuming-logs/internal/application/common"
	"github.com/tarwn/consuming-logs/internal/application/decision"
	"github.com/tarwn/consuming-logs/internal/application/departments"
	"github.com/tarwn/consuming-logs/internal/application/setup"
	"github.com/tarwn/consuming-logs/internal/application/simulation"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/ledger"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/internal/domain/shared"
	"github.com/tarwn/consuming-logs/internal/domain/world"
	"github.com/tarwn/consuming-logs/test/helpers"
)

type plantContext struct {
	params    plant.ConfigParams
	store     *world.Store
	published *helpers.RecordingPublisher
	order     plant.ProductionOrder

	db         *gorm.DB
	violations []string
}

func (pc *plantContext) reset() {
	pc.params = plant.ConfigParams{}
	pc.store = nil
	pc.published = helpers.NewRecordingPublisher()
	pc.order = plant.ProductionOrder{}
	pc.db = nil
	pc.violations = nil
}

// ensureStore builds the store from the parameters given so far
func (pc *plantContext) ensureStore() error {
	if pc.store != nil {
		return nil
	}
	cfg, err := plant.NewConfig(pc.params)
	if err != nil {
		return fmt.Errorf("invalid plant: %w", err)
	}
	clock := shared.NewMockClock(helpers.TestStart)
	pc.store, err = world.NewStore(cfg, world.WithSeed("bdd"), world.WithClock(clock))
	return err
}

// Given steps

func (pc *plantContext) aWidgetPlantWithCapacity(capacity int) error {
	pc.params = helpers.WidgetParams()
	pc.params.CapacityPerInterval = capacity
	return nil
}

func (pc *plantContext) partsOnHand(quantity int, partNumber string) error {
	if pc.params.OpeningInventory == nil {
		pc.params.OpeningInventory = map[string]int{}
	}
	pc.params.OpeningInventory[partNumber] = quantity
	return nil
}

func (pc *plantContext) aScrapFractionOf(fraction string) error {
	d, err := decimal.NewFromString(fraction)
	if err != nil {
		return err
	}
	pc.params.ScrapFraction = d
	return nil
}

func (pc *plantContext) initialCashOf(amount int) error {
	pc.params.InitialCash = decimal.NewFromInt(int64(amount))
	return nil
}

func (pc *plantContext) aScheduledProductionOrder(quantity int, partNumber string) error {
	if err := pc.ensureStore(); err != nil {
		return err
	}
	_, production, err := pc.store.PlaceSalesOrder(plant.NewSalesOrder(partNumber, quantity, decimal.NewFromInt(10)))
	if err != nil {
		return err
	}
	pc.order, err = pc.store.PlanProductionOrder(production.Number())
	return err
}

func (pc *plantContext) alreadyProduced(quantity int) error {
	_, err := pc.store.ProduceFinishedGoods(pc.order.Number(), pc.order.PartNumber(), quantity)
	return err
}

func (pc *plantContext) aReceivedPurchaseOrder(quantity int, partNumber, unitPrice string) error {
	if err := pc.ensureStore(); err != nil {
		return err
	}
	price, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return err
	}
	po, err := pc.store.PlacePurchaseOrder(plant.NewPurchaseOrder(partNumber, quantity, price))
	if err != nil {
		return err
	}
	_, _, err = pc.store.ReceivePurchaseOrder(po.Number())
	return err
}

func (pc *plantContext) aShippedSalesOrder(quantity int, partNumber string, unitPrice int) error {
	if err := pc.ensureStore(); err != nil {
		return err
	}
	sale, _, err := pc.store.PlaceSalesOrder(plant.NewSalesOrder(partNumber, quantity, decimal.NewFromInt(int64(unitPrice))))
	if err != nil {
		return err
	}
	_, err = pc.store.IndicateSalesOrderHasShipped(sale.Number())
	return err
}

func (pc *plantContext) eventsAreRecordedInTheDatabase() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	pc.db = helpers.SharedTestDB
	return nil
}

// When steps

func (pc *plantContext) decideAndExecute(decide func(world.Snapshot) (*decision.Decision, error)) error {
	if err := pc.ensureStore(); err != nil {
		return err
	}
	d, err := decide(pc.store.Snapshot())
	if err != nil {
		return err
	}
	return d.ExecuteAll(context.Background(), pc.store, pc.published)
}

func (pc *plantContext) productionRuns() error {
	if err := pc.ensureStore(); err != nil {
		return err
	}
	return pc.decideAndExecute(departments.NewProductionDepartment(pc.store.Config()).RunPlannedProductionOrders)
}

func (pc *plantContext) financePaysForReceivedPurchaseOrders() error {
	return pc.decideAndExecute(departments.NewFinanceDepartment().PayForReceivedPurchaseOrders)
}

func (pc *plantContext) financeBillsShippedSalesOrders() error {
	return pc.decideAndExecute(departments.NewFinanceDepartment().BillForShippedSalesOrders)
}

func (pc *plantContext) thePlantRunsIntervals(n int) error {
	if err := pc.ensureStore(); err != nil {
		return err
	}

	fanout := publisher.NewFanoutPublisher().Add("recording", pc.published)
	var repos *helpers.TestRepositories
	if pc.db != nil {
		repos = helpers.NewTestRepositories(pc.db, shared.NewMockClock(helpers.TestStart))
		fanout.Add("database", repos.Events)
	}

	sim := simulation.NewSimulator(pc.store, departments.New(pc.store.Config()).Steps(), fanout,
		simulation.Config{HeartbeatEvery: 10})

	if pc.db != nil {
		med := common.NewMediator()
		if err := setup.NewHandlerRegistry(sim, repos.Ledger, repos.Events).RegisterAll(med); err != nil {
			return err
		}
		fanout.Add("ledger", publisher.NewLedgerProjection(med))
	}

	for i := 1; i <= n; i++ {
		if _, err := sim.RunInterval(context.Background()); err != nil {
			return fmt.Errorf("interval %d: %w", i, err)
		}
		pc.checkInvariants(i)
	}
	return nil
}

func (pc *plantContext) checkInvariants(interval int) {
	status := pc.store.Status()
	if status.AvailableCapacity < 0 {
		pc.violations = append(pc.violations, fmt.Sprintf("interval %d: capacity %d", interval, status.AvailableCapacity))
	}
	for _, inv := range []map[string]int{status.PartsInventory, status.FinishedInventory, status.ScrappedInventory} {
		for part, qty := range inv {
			if qty < 0 {
				pc.violations = append(pc.violations, fmt.Sprintf("interval %d: %s at %d", interval, part, qty))
			}
		}
	}
	if !ledgerSum(pc.store).Equal(pc.store.Cash()) {
		pc.violations = append(pc.violations, fmt.Sprintf("interval %d: cash %s differs from ledger", interval, pc.store.Cash()))
	}
}

// Then steps

func (pc *plantContext) theProductionOrderHasCompleted(quantity int) error {
	for _, o := range pc.store.Snapshot().ScheduledProductionOrders {
		if o.Number() == pc.order.Number() {
			if o.CompletedQuantity() != quantity {
				return fmt.Errorf("expected %d completed, got %d", quantity, o.CompletedQuantity())
			}
			return nil
		}
	}
	return fmt.Errorf("production order %s is not scheduled", pc.order.Number())
}

func (pc *plantContext) finishedOnHand(quantity int, partNumber string) error {
	if got := pc.store.FinishedOnHand(partNumber); got != quantity {
		return fmt.Errorf("expected %d finished %s, got %d", quantity, partNumber, got)
	}
	return nil
}

func (pc *plantContext) scrappedOnHand(quantity int, partNumber string) error {
	if got := pc.store.ScrappedOnHand(partNumber); got != quantity {
		return fmt.Errorf("expected %d scrapped %s, got %d", quantity, partNumber, got)
	}
	return nil
}

func (pc *plantContext) partsAreOnHand(quantity int, partNumber string) error {
	if got := pc.store.PartsOnHand(partNumber); got != quantity {
		return fmt.Errorf("expected %d %s on hand, got %d", quantity, partNumber, got)
	}
	return nil
}

func (pc *plantContext) thePublishedEventsAre(table *messages.PickleTable) error {
	var expected []events.Type
	for _, row := range table.Rows[1:] {
		expected = append(expected, events.Type(row.Cells[0].Value))
	}
	got := pc.published.Types()
	if fmt.Sprint(expected) != fmt.Sprint(got) {
		return fmt.Errorf("expected events %v, got %v", expected, got)
	}
	return nil
}

func (pc *plantContext) thePublishedEventsInclude(eventType string) error {
	if len(pc.published.OfType(events.Type(eventType))) == 0 {
		return fmt.Errorf("no %s event in %v", eventType, pc.published.Types())
	}
	return nil
}

func (pc *plantContext) cashIs(amount string) error {
	want, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	if !pc.store.Cash().Equal(want) {
		return fmt.Errorf("expected cash %s, got %s", want, pc.store.Cash())
	}
	return nil
}

func (pc *plantContext) cashIsAbove(amount int) error {
	if !pc.store.Cash().GreaterThan(decimal.NewFromInt(int64(amount))) {
		return fmt.Errorf("expected cash above %d, got %s", amount, pc.store.Cash())
	}
	return nil
}

func (pc *plantContext) purchaseOrdersAreUnbilled(count int) error {
	if got := pc.store.Status().UnbilledPurchaseOrders; got != count {
		return fmt.Errorf("expected %d unbilled purchase orders, got %d", count, got)
	}
	return nil
}

func (pc *plantContext) atLeastOneEventIsPublished(eventType string) error {
	return pc.thePublishedEventsInclude(eventType)
}

func (pc *plantContext) exactlyEventsArePublished(count int, eventType string) error {
	if got := len(pc.published.OfType(events.Type(eventType))); got != count {
		return fmt.Errorf("expected %d %s events, got %d", count, eventType, got)
	}
	return nil
}

func (pc *plantContext) cashEqualsTheSumOfTheLedger() error {
	if sum := ledgerSum(pc.store); !sum.Equal(pc.store.Cash()) {
		return fmt.Errorf("ledger sums to %s but cash is %s", sum, pc.store.Cash())
	}
	return nil
}

func (pc *plantContext) theInvariantsHeld() error {
	if len(pc.violations) > 0 {
		return fmt.Errorf("invariants broken: %v", pc.violations)
	}
	return nil
}

func (pc *plantContext) theDatabaseHoldsEveryPublishedEvent() error {
	records, err := persistence.NewGormEventRepository(pc.db).Find(context.Background(), events.RecordQuery{})
	if err != nil {
		return err
	}
	if len(records) != len(pc.published.Events()) {
		return fmt.Errorf("expected %d stored events, got %d", len(pc.published.Events()), len(records))
	}
	return nil
}

func (pc *plantContext) theDatabaseLedgerMatchesThePlantLedger() error {
	entries, err := persistence.NewGormLedgerEntryRepository(pc.db).Find(context.Background(), ledger.QueryOptions{})
	if err != nil {
		return err
	}
	if len(entries) != len(pc.store.LedgerEntries()) {
		return fmt.Errorf("expected %d ledger entries in the database, got %d", len(pc.store.LedgerEntries()), len(entries))
	}
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount())
	}
	if !sum.Equal(pc.store.Cash()) {
		return fmt.Errorf("database ledger sums to %s but cash is %s", sum, pc.store.Cash())
	}
	return nil
}

func ledgerSum(store *world.Store) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range store.LedgerEntries() {
		sum = sum.Add(e.Amount())
	}
	return sum
}

// InitializePlantScenario registers the plant step definitions
func InitializePlantScenario(sc *godog.ScenarioContext) {
	pc := &plantContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	// Given
	sc.Step(`^a widget plant with capacity (\d+) per interval$`, pc.aWidgetPlantWithCapacity)
	sc.Step(`^(\d+) "([^"]*)" on hand$`, pc.partsOnHand)
	sc.Step(`^a scrap fraction of ([0-9.]+)$`, pc.aScrapFractionOf)
	sc.Step(`^initial cash of (\d+)$`, pc.initialCashOf)
	sc.Step(`^a scheduled production order for (\d+) "([^"]*)"$`, pc.aScheduledProductionOrder)
	sc.Step(`^(\d+) of the order already produced$`, pc.alreadyProduced)
	sc.Step(`^a received purchase order for (\d+) "([^"]*)" at ([0-9.]+)$`, pc.aReceivedPurchaseOrder)
	sc.Step(`^a shipped sales order for (\d+) "([^"]*)" at (\d+)$`, pc.aShippedSalesOrder)
	sc.Step(`^events are recorded in the database$`, pc.eventsAreRecordedInTheDatabase)

	// When
	sc.Step(`^production runs$`, pc.productionRuns)
	sc.Step(`^finance pays for received purchase orders$`, pc.financePaysForReceivedPurchaseOrders)
	sc.Step(`^finance bills shipped sales orders$`, pc.financeBillsShippedSalesOrders)
	sc.Step(`^the plant runs (\d+) intervals$`, pc.thePlantRunsIntervals)

	// Then
	sc.Step(`^the production order has completed (\d+)$`, pc.theProductionOrderHasCompleted)
	sc.Step(`^(\d+) "([^"]*)" are finished$`, pc.finishedOnHand)
	sc.Step(`^(\d+) "([^"]*)" are scrapped$`, pc.scrappedOnHand)
	sc.Step(`^(\d+) "([^"]*)" are on hand$`, pc.partsAreOnHand)
	sc.Step(`^the published events are:$`, pc.thePublishedEventsAre)
	sc.Step(`^the published events include "([^"]*)"$`, pc.thePublishedEventsInclude)
	sc.Step(`^cash is (-?[0-9.]+)$`, pc.cashIs)
	sc.Step(`^cash is above (\d+)$`, pc.cashIsAbove)
	sc.Step(`^(\d+) purchase orders are unbilled$`, pc.purchaseOrdersAreUnbilled)
	sc.Step(`^at least one "([^"]*)" event is published$`, pc.atLeastOneEventIsPublished)
	sc.Step(`^exactly (\d+) "([^"]*)" event is published$`, pc.exactlyEventsArePublished)
	sc.Step(`^cash equals the sum of the ledger$`, pc.cashEqualsTheSumOfTheLedger)
	sc.Step(`^the plant invariants held after every interval$`, pc.theInvariantsHeld)
	sc.Step(`^the database holds every published event$`, pc.theDatabaseHoldsEveryPublishedEvent)
	sc.Step(`^the database ledger matches the plant ledger$`, pc.theDatabaseLedgerMatchesThePlantLedger)
}
