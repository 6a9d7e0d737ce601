// Package simulation drives the plant one interval at a time: decide every
// department against a single snapshot, then execute the decisions in order.
package simulation

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/tarwn/consuming-logs/internal/adapters/metrics"
	"github.com/tarwn/consuming-logs/internal/application/common"
	"github.com/tarwn/consuming-logs/internal/application/decision"
	"github.com/tarwn/consuming-logs/internal/application/departments"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/world"
)

const tracerName = "github.com/tarwn/consuming-logs/internal/application/simulation"

// Config controls the tick cadence
type Config struct {
	// Interval is the wall-clock time between ticks in Run
	Interval time.Duration
	// HeartbeatEvery publishes a Heartbeat on every Nth interval; 0 disables it
	HeartbeatEvery int
	// MaxIntervals stops Run after that many accepted intervals; 0 runs until cancelled
	MaxIntervals int
}

// DefaultConfig returns one tick per second with a heartbeat every 10 intervals
func DefaultConfig() Config {
	return Config{
		Interval:       time.Second,
		HeartbeatEvery: 10,
	}
}

// CheckpointSink stores a status snapshot, called after each heartbeat
type CheckpointSink interface {
	SaveCheckpoint(ctx context.Context, interval int, status world.Status) error
}

// TickResult describes one tick request
type TickResult struct {
	Interval int
	// Ran is false when the request was dropped because another tick was running
	Ran       bool
	Decisions []StepResult
	Events    int
	Duration  time.Duration
}

// StepResult is the outcome of one department decision
type StepResult struct {
	Step    string
	Actions int
}

// Actions totals the actions executed across every step
func (r TickResult) Actions() int {
	total := 0
	for _, d := range r.Decisions {
		total += d.Actions
	}
	return total
}

// Simulator owns the tick loop for one world store.
//
// Only one tick runs at a time. A tick requested while another is running is
// dropped, never queued.
type Simulator struct {
	store      *world.Store
	steps      []departments.Step
	publisher  events.Publisher
	checkpoint CheckpointSink
	cfg        Config
	tracer     trace.Tracer

	running  atomic.Bool
	mu       sync.Mutex
	interval int
}

// Option configures a Simulator
type Option func(*Simulator)

// WithCheckpointSink saves a status checkpoint after every heartbeat
func WithCheckpointSink(sink CheckpointSink) Option {
	return func(s *Simulator) {
		s.checkpoint = sink
	}
}

// WithTracer replaces the tracer taken from the global provider
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Simulator) {
		s.tracer = tracer
	}
}

// NewSimulator creates a simulator that runs steps against store in the given order
func NewSimulator(store *world.Store, steps []departments.Step, publisher events.Publisher, cfg Config, opts ...Option) *Simulator {
	s := &Simulator{
		store:     store,
		steps:     steps,
		publisher: publisher,
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	if s.cfg.Interval <= 0 {
		s.cfg.Interval = DefaultConfig().Interval
	}
	return s
}

// Store returns the world the simulator drives
func (s *Simulator) Store() *world.Store {
	return s.store
}

// Interval returns the number of accepted ticks so far
func (s *Simulator) Interval() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// IsRunning reports whether a tick is in progress
func (s *Simulator) IsRunning() bool {
	return s.running.Load()
}

// RunInterval runs one tick. If a tick is already running the request is
// dropped and the result has Ran == false. Once accepted, the tick ignores
// cancellation of ctx and runs to completion or to its first error.
func (s *Simulator) RunInterval(ctx context.Context) (TickResult, error) {
	logger := common.LoggerFromContext(ctx)

	if !s.running.CompareAndSwap(false, true) {
		logger.Log("WARNING", "[Simulator] Tick requested while another tick is running, dropping", map[string]interface{}{
			"interval": s.Interval(),
		})
		metrics.RecordTickDropped()
		return TickResult{Interval: s.Interval()}, nil
	}
	defer s.running.Store(false)

	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	s.interval++
	interval := s.interval
	s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "simulation.tick", trace.WithAttributes(
		attribute.Int("plant.interval", interval),
	))
	defer span.End()

	start := time.Now()
	result, err := s.tick(ctx, interval)
	result.Duration = time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RecordTickFailed(result.Duration.Seconds())
		logger.Log("ERROR", fmt.Sprintf("[Simulator] Interval %d aborted: %v", interval, err), map[string]interface{}{
			"interval": interval,
			"actions":  result.Actions(),
			"events":   result.Events,
		})
		return result, err
	}

	span.SetAttributes(
		attribute.Int("plant.actions", result.Actions()),
		attribute.Int("plant.events", result.Events),
	)
	metrics.RecordTickCompleted(result.Duration.Seconds())
	metrics.RecordPlantStatus(s.store.Status())
	logger.Log("DEBUG", fmt.Sprintf("[Simulator] Interval %d completed", interval), map[string]interface{}{
		"interval":    interval,
		"actions":     result.Actions(),
		"events":      result.Events,
		"duration_ms": result.Duration.Milliseconds(),
	})
	return result, nil
}

func (s *Simulator) tick(ctx context.Context, interval int) (TickResult, error) {
	result := TickResult{Interval: interval, Ran: true}

	decisions, err := s.decideAll(ctx, s.store.Snapshot())
	if err != nil {
		return result, err
	}

	tracker := newVersionTracker(s.publisher)
	for i, d := range decisions {
		stepName := s.steps[i].Name
		if err := s.execute(ctx, stepName, d, tracker); err != nil {
			result.Events = tracker.count()
			return result, fmt.Errorf("interval %d %s: %w", interval, stepName, err)
		}
		result.Decisions = append(result.Decisions, StepResult{Step: stepName, Actions: d.ActionCount()})
	}

	if s.cfg.HeartbeatEvery > 0 && interval%s.cfg.HeartbeatEvery == 0 {
		if err := decision.Publish(ctx, tracker, events.NewHeartbeat(s.store.Now(), interval)); err != nil {
			result.Events = tracker.count()
			return result, fmt.Errorf("interval %d heartbeat: %w", interval, err)
		}
		s.stampVersion(tracker)
		s.saveCheckpoint(ctx, interval)
	}

	result.Events = tracker.count()
	return result, nil
}

// decideAll runs every decide step against the same snapshot. The calls run
// concurrently; the returned decisions keep the step order.
func (s *Simulator) decideAll(ctx context.Context, view world.Snapshot) ([]*decision.Decision, error) {
	_, span := s.tracer.Start(ctx, "simulation.decide")
	defer span.End()

	decisions := make([]*decision.Decision, len(s.steps))
	var g errgroup.Group
	for i, step := range s.steps {
		g.Go(func() error {
			d, err := step.Decide(view)
			if err != nil {
				return fmt.Errorf("%s decide: %w", step.Name, err)
			}
			decisions[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return decisions, nil
}

func (s *Simulator) execute(ctx context.Context, stepName string, d *decision.Decision, tracker *versionTracker) error {
	metrics.RecordDecision(stepName, d.ActionCount())
	if d.IsNoAction() {
		return nil
	}

	ctx, span := s.tracer.Start(ctx, "simulation.execute", trace.WithAttributes(
		attribute.String("plant.step", stepName),
		attribute.Int("plant.actions", d.ActionCount()),
	))
	defer span.End()

	err := d.ExecuteAll(ctx, s.store, tracker)
	// Applied mutations stay applied even when a later action fails.
	s.stampVersion(tracker)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (s *Simulator) stampVersion(tracker *versionTracker) {
	if id := tracker.lastID(); id != "" {
		s.store.SetVersion(id)
	}
}

func (s *Simulator) saveCheckpoint(ctx context.Context, interval int) {
	if s.checkpoint == nil {
		return
	}
	if err := s.checkpoint.SaveCheckpoint(ctx, interval, s.store.Status()); err != nil {
		common.LoggerFromContext(ctx).Log("WARNING", fmt.Sprintf("[Simulator] Failed to save checkpoint: %v", err), map[string]interface{}{
			"interval": interval,
		})
	}
}

// Run ticks on every cfg.Interval until ctx is cancelled, an interval fails,
// or cfg.MaxIntervals intervals have run. Ticks that fire while an interval is
// still executing are skipped by the ticker.
func (s *Simulator) Run(ctx context.Context) error {
	logger := common.LoggerFromContext(ctx)
	logger.Log("INFO", "[Simulator] Starting tick loop", map[string]interface{}{
		"interval":        s.cfg.Interval.String(),
		"heartbeat_every": s.cfg.HeartbeatEvery,
		"max_intervals":   s.cfg.MaxIntervals,
	})

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log("INFO", "[Simulator] Tick loop stopped", map[string]interface{}{
				"interval": s.Interval(),
			})
			return nil
		case <-ticker.C:
			if _, err := s.RunInterval(ctx); err != nil {
				return err
			}
			if s.cfg.MaxIntervals > 0 && s.Interval() >= s.cfg.MaxIntervals {
				logger.Log("INFO", "[Simulator] Reached maximum intervals", map[string]interface{}{
					"max_intervals": s.cfg.MaxIntervals,
				})
				return nil
			}
		}
	}
}
