package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	daemongrpc "github.com/tarwn/consuming-logs/internal/adapters/grpc"
	"github.com/tarwn/consuming-logs/internal/adapters/metrics"
	"github.com/tarwn/consuming-logs/internal/adapters/persistence"
	"github.com/tarwn/consuming-logs/internal/application/common"
	"github.com/tarwn/consuming-logs/internal/application/departments"
	"github.com/tarwn/consuming-logs/internal/application/setup"
	"github.com/tarwn/consuming-logs/internal/application/simulation"
	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/ledger"
	"github.com/tarwn/consuming-logs/internal/domain/world"
	"github.com/tarwn/consuming-logs/internal/infrastructure/config"
	"github.com/tarwn/consuming-logs/internal/infrastructure/database"
	"github.com/tarwn/consuming-logs/internal/infrastructure/logging"
	"github.com/tarwn/consuming-logs/internal/infrastructure/pidfile"
	"github.com/tarwn/consuming-logs/internal/infrastructure/tracing"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file (searches ./, ./configs, /etc/plantsim when empty)")
	forceFlag := flag.Bool("force", false, "Take over the PID file even if another daemon holds it")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(*forceFlag); err != nil {
		var running *pidfile.ErrAlreadyRunning
		if errors.As(err, &running) {
			log.Fatalf("%v\nUse --force to take over the PID file", err)
		}
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}

	code := 0
	if err := run(cfg, logger); err != nil {
		logger.Log("ERROR", fmt.Sprintf("[Daemon] Fatal error: %v", err), nil)
		code = 1
	}

	if err := pf.Release(); err != nil {
		logger.Log("WARNING", fmt.Sprintf("[Daemon] Failed to release PID file: %v", err), nil)
	}
	_ = logger.Close()
	os.Exit(code)
}

func run(cfg *config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = common.WithLogger(ctx, logger)

	// 1. Tracing
	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer shutdownWithTimeout(cfg, "tracing", logger, shutdownTracing)

	// 2. Database
	var db *gorm.DB
	if cfg.Publishing.Database.Enabled {
		db, err = database.NewConnection(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close(db)

		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Log("INFO", fmt.Sprintf("[Daemon] Connected to %s database", cfg.Database.Type), nil)
	}

	// 3. Metrics
	med := common.NewMediator()
	if cfg.Metrics.Enabled {
		metricsServer, err := setupMetrics(cfg, med)
		if err != nil {
			return err
		}
		metricsServer.Start()
		defer shutdownWithTimeout(cfg, "metrics server", logger, metricsServer.Shutdown)
		logger.Log("INFO", "[Daemon] Metrics served on "+metricsServer.Addr()+cfg.Metrics.Path, nil)
	}

	// 4. Publishers
	sinks, err := buildPublishers(ctx, cfg, db, logger)
	if err != nil {
		return err
	}
	defer sinks.close(cfg, logger)

	// 5. World store and simulator
	plantCfg, err := cfg.Plant.ToPlantConfig()
	if err != nil {
		return err
	}
	var storeOpts []world.Option
	if cfg.Simulation.Seed != "" {
		storeOpts = append(storeOpts, world.WithSeed(cfg.Simulation.Seed))
	}
	store, err := world.NewStore(plantCfg, storeOpts...)
	if err != nil {
		return fmt.Errorf("failed to create world store: %w", err)
	}

	var simOpts []simulation.Option
	var entryRepo ledger.EntryRepository
	var eventRepo events.RecordRepository
	if db != nil {
		simOpts = append(simOpts, simulation.WithCheckpointSink(persistence.NewGormCheckpointRepository(db, nil)))
		entryRepo = persistence.NewGormLedgerEntryRepository(db)
		eventRepo = persistence.NewGormEventRepository(db)
	}

	simulator := simulation.NewSimulator(store, departments.New(plantCfg).Steps(), sinks.fanout, simulation.Config{
		Interval:       cfg.Simulation.Interval,
		HeartbeatEvery: cfg.Simulation.HeartbeatEvery,
		MaxIntervals:   cfg.Simulation.MaxIntervals,
	}, simOpts...)

	// 6. Handlers
	if err := setup.NewHandlerRegistry(simulator, entryRepo, eventRepo).RegisterAll(med); err != nil {
		return err
	}
	if db != nil {
		sinks.addLedgerProjection(med)
	}

	// 7. Control socket
	server, err := daemongrpc.NewDaemonServer(med, cfg.Daemon.SocketPath,
		daemongrpc.WithLogger(logger),
		daemongrpc.WithTickLimit(cfg.Simulation.ManualTickRate, cfg.Simulation.ManualTickBurst),
	)
	if err != nil {
		return err
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve() }()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
		defer cancel()
		server.Stop(stopCtx)
		_ = os.Remove(cfg.Daemon.SocketPath)
	}()

	// 8. Tick loop
	if err := sinks.fanout.Publish(ctx, events.NewSystem(store.Now(), events.SystemStarting)); err != nil {
		logger.Log("WARNING", fmt.Sprintf("[Daemon] Failed to publish starting event: %v", err), nil)
	}

	loopErr := make(chan error, 1)
	go func() { loopErr <- simulator.Run(ctx) }()

	var runErr error
	select {
	case runErr = <-loopErr:
	case err := <-serveErr:
		runErr = err
		stop()
		<-loopErr
	case <-ctx.Done():
		logger.Log("INFO", "[Daemon] Shutdown signal received, stopping tick loop", nil)
		runErr = <-loopErr
	}

	// publish the exit even though ctx may be cancelled
	exitCtx := context.WithoutCancel(ctx)
	if err := sinks.fanout.Publish(exitCtx, events.NewSystem(store.Now(), events.SystemExiting)); err != nil {
		logger.Log("WARNING", fmt.Sprintf("[Daemon] Failed to publish exiting event: %v", err), nil)
	}
	logger.Log("INFO", fmt.Sprintf("[Daemon] Stopped after %d intervals", simulator.Interval()), map[string]interface{}{
		"cash": store.Cash().StringFixed(2),
	})
	return runErr
}

func setupMetrics(cfg *config.Config, med common.Mediator) (*metrics.Server, error) {
	metrics.InitRegistry()

	simCollector := metrics.NewSimulationMetricsCollector()
	if err := simCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register simulation metrics: %w", err)
	}
	metrics.SetGlobalSimulationCollector(simCollector)

	cmdCollector := metrics.NewCommandMetricsCollector()
	if err := cmdCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	med.RegisterMiddleware(metrics.PrometheusMiddleware(cmdCollector))

	server, err := metrics.NewServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics server: %w", err)
	}
	return server, nil
}

func shutdownWithTimeout(cfg *config.Config, name string, logger common.Logger, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		logger.Log("WARNING", fmt.Sprintf("[Daemon] Failed to shut down %s: %v", name, err), nil)
	}
}
