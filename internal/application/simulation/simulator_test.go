package simulation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarwn/consuming-logs/internal/application/decision"
	"github.com/tarwn/consuming-logs/internal/application/departments"
	"github.com/tarwn/consuming-logs/internal/application/simulation"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/plant"
	"github.com/tarwn/consuming-logs/internal/domain/world"
	"github.com/tarwn/consuming-logs/test/helpers"
)

func newPlant(t *testing.T, params plant.ConfigParams, cfg simulation.Config, opts ...simulation.Option) (*simulation.Simulator, *world.Store, *helpers.RecordingPublisher) {
	t.Helper()
	store, _ := helpers.NewTestStore(t, params)
	publisher := helpers.NewRecordingPublisher()
	steps := departments.New(store.Config()).Steps()
	return simulation.NewSimulator(store, steps, publisher, cfg, opts...), store, publisher
}

func TestSimulator_RunsStepsInOrderAgainstOneSnapshot(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	var mu sync.Mutex
	var executed []string
	var versions []string
	step := func(name string) departments.Step {
		return departments.Step{
			Name: name,
			Decide: func(view world.Snapshot) (*decision.Decision, error) {
				mu.Lock()
				versions = append(versions, view.Version)
				mu.Unlock()
				return decision.New(name, func(ctx context.Context, s *world.Store, p events.Publisher) error {
					executed = append(executed, name)
					return decision.Publish(ctx, p, events.NewHeartbeat(s.Now(), 0))
				}), nil
			},
		}
	}
	sim := simulation.NewSimulator(store,
		[]departments.Step{step("a"), step("b"), step("c")},
		helpers.NewRecordingPublisher(), simulation.Config{})

	// Act
	result, err := sim.RunInterval(context.Background())

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Ran)
	assert.Equal(t, 1, result.Interval)
	assert.Equal(t, []string{"a", "b", "c"}, executed)
	assert.Equal(t, []string{"", "", ""}, versions, "every step decides before any executes")
	assert.Equal(t, 3, result.Actions())
	assert.Equal(t, 3, result.Events)
}

func TestSimulator_DropsOverlappingTick(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	entered := make(chan struct{})
	release := make(chan struct{})
	blocking := departments.Step{
		Name: "slow",
		Decide: func(world.Snapshot) (*decision.Decision, error) {
			return decision.New("slow", func(context.Context, *world.Store, events.Publisher) error {
				close(entered)
				<-release
				return nil
			}), nil
		},
	}
	sim := simulation.NewSimulator(store, []departments.Step{blocking}, helpers.NewRecordingPublisher(), simulation.Config{})

	done := make(chan simulation.TickResult)
	go func() {
		result, _ := sim.RunInterval(context.Background())
		done <- result
	}()
	<-entered

	// Act
	dropped, err := sim.RunInterval(context.Background())
	close(release)
	first := <-done

	// Assert
	require.NoError(t, err)
	assert.False(t, dropped.Ran)
	assert.True(t, first.Ran)
	assert.Equal(t, 1, sim.Interval(), "a dropped tick does not advance the interval")
	assert.False(t, sim.IsRunning())
}

func TestSimulator_FirstErrorAbortsTick(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	boom := errors.New("boom")
	var executed []string
	step := func(name string, err error) departments.Step {
		return departments.Step{
			Name: name,
			Decide: func(world.Snapshot) (*decision.Decision, error) {
				return decision.New(name, func(context.Context, *world.Store, events.Publisher) error {
					executed = append(executed, name)
					return err
				}), nil
			},
		}
	}
	sim := simulation.NewSimulator(store,
		[]departments.Step{step("a", nil), step("b", boom), step("c", nil)},
		helpers.NewRecordingPublisher(), simulation.Config{})

	// Act
	result, err := sim.RunInterval(context.Background())

	// Assert
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "interval 1 b")
	assert.Equal(t, []string{"a", "b"}, executed)
	assert.Len(t, result.Decisions, 1)
	assert.False(t, sim.IsRunning())
}

func TestSimulator_DecideErrorExecutesNothing(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	sim, store, publisher := newPlant(t, params, simulation.Config{})
	_, _, err := store.PlaceSalesOrder(plant.NewSalesOrder("sprocket", 5, decimal.NewFromInt(1)))
	require.NoError(t, err)
	_, err = store.PlanProductionOrder("so-test-0-production")
	require.NoError(t, err)

	// Act
	_, err = sim.RunInterval(context.Background())

	// Assert
	var catalogErr *plant.CatalogError
	assert.True(t, errors.As(err, &catalogErr))
	assert.Empty(t, publisher.Events())
}

func TestSimulator_PublishFailureKeepsMutation(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	steps := departments.New(store.Config()).Steps()
	sim := simulation.NewSimulator(store, steps, &helpers.FailingPublisher{}, simulation.Config{})

	// Act
	_, err := sim.RunInterval(context.Background())

	// Assert
	var publishErr *events.PublishError
	require.True(t, errors.As(err, &publishErr))
	assert.Equal(t, 1, store.Status().OpenSalesOrders, "the first sales order stays placed")
}

func TestSimulator_HeartbeatEveryNthInterval(t *testing.T) {
	// Arrange
	sim, _, publisher := newPlant(t, helpers.WidgetParams(), simulation.Config{HeartbeatEvery: 3})

	// Act
	for i := 0; i < 7; i++ {
		_, err := sim.RunInterval(context.Background())
		require.NoError(t, err)
	}

	// Assert
	heartbeats := publisher.OfType(events.TypeHeartbeat)
	require.Len(t, heartbeats, 2)
	assert.Equal(t, 3, heartbeats[0].(events.Heartbeat).Interval)
	assert.Equal(t, 6, heartbeats[1].(events.Heartbeat).Interval)
}

func TestSimulator_StampsVersionWithLastEvent(t *testing.T) {
	// Arrange
	sim, store, publisher := newPlant(t, helpers.WidgetParams(), simulation.Config{})

	// Act
	_, err := sim.RunInterval(context.Background())

	// Assert
	require.NoError(t, err)
	evts := publisher.Events()
	require.NotEmpty(t, evts)
	assert.Equal(t, evts[len(evts)-1].EventID(), store.Version())
}

func TestSimulator_IgnoresCancellationOnceStarted(t *testing.T) {
	// Arrange
	sim, store, _ := newPlant(t, helpers.WidgetParams(), simulation.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	result, err := sim.RunInterval(ctx)

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Ran)
	assert.Equal(t, 2, store.Status().OpenSalesOrders)
}

func TestSimulator_EndToEndReachesInvoicedOrders(t *testing.T) {
	// Arrange
	params := helpers.WidgetParams()
	params.InitialCash = decimal.NewFromInt(1000)
	sim, store, publisher := newPlant(t, params, simulation.Config{HeartbeatEvery: 10})

	// Act
	for i := 0; i < 12; i++ {
		_, err := sim.RunInterval(context.Background())
		require.NoError(t, err, "interval %d", i+1)

		status := store.Status()
		assert.GreaterOrEqual(t, status.AvailableCapacity, 0)
		for part, qty := range status.PartsInventory {
			assert.GreaterOrEqual(t, qty, 0, part)
		}
	}

	// Assert
	assert.NotEmpty(t, publisher.OfType(events.TypeSalesOrderInvoicePaid))
	assert.NotEmpty(t, publisher.OfType(events.TypePurchaseOrderPaid))
	assert.Len(t, publisher.OfType(events.TypeHeartbeat), 1)

	sum := decimal.Zero
	for _, e := range store.LedgerEntries() {
		sum = sum.Add(e.Amount())
	}
	assert.True(t, sum.Equal(store.Cash()))
	assert.True(t, store.Cash().GreaterThan(decimal.NewFromInt(1000)), "revenue %s exceeds material cost", store.Cash())
}

type recordingSink struct {
	mu        sync.Mutex
	intervals []int
}

func (s *recordingSink) SaveCheckpoint(_ context.Context, interval int, _ world.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intervals = append(s.intervals, interval)
	return nil
}

func TestSimulator_CheckpointsOnHeartbeat(t *testing.T) {
	// Arrange
	sink := &recordingSink{}
	sim, _, _ := newPlant(t, helpers.WidgetParams(), simulation.Config{HeartbeatEvery: 2}, simulation.WithCheckpointSink(sink))

	// Act
	for i := 0; i < 5; i++ {
		_, err := sim.RunInterval(context.Background())
		require.NoError(t, err)
	}

	// Assert
	assert.Equal(t, []int{2, 4}, sink.intervals)
}

func TestSimulator_RunStopsAtMaxIntervals(t *testing.T) {
	// Arrange
	sim, _, _ := newPlant(t, helpers.WidgetParams(), simulation.Config{
		Interval:     time.Millisecond,
		MaxIntervals: 3,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Act
	err := sim.Run(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, sim.Interval())
}

func TestSimulator_RunStopsOnCancel(t *testing.T) {
	// Arrange
	sim, _, _ := newPlant(t, helpers.WidgetParams(), simulation.Config{Interval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())

	// Act
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := sim.Run(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, sim.Interval())
}

func TestSimulator_RunReturnsTickError(t *testing.T) {
	// Arrange
	store, _ := helpers.NewTestStore(t, helpers.WidgetParams())
	steps := departments.New(store.Config()).Steps()
	sim := simulation.NewSimulator(store, steps, &helpers.FailingPublisher{}, simulation.Config{Interval: time.Millisecond})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Act
	err := sim.Run(ctx)

	// Assert
	var publishErr *events.PublishError
	assert.True(t, errors.As(err, &publishErr))
}
