package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/moniyo/financequest/docs"
	"github.com/moniyo/financequest/internal/bootstrap"
	"github.com/moniyo/financequest/internal/config"
	"github.com/moniyo/financequest/internal/dailycap"
	"github.com/moniyo/financequest/internal/eventlog"
	"github.com/moniyo/financequest/internal/gamification"
	"github.com/moniyo/financequest/internal/progress"
	"github.com/moniyo/financequest/internal/scheduler"
	"github.com/moniyo/financequest/internal/server"
	"github.com/moniyo/financequest/internal/worker"
)

const shutdownTimeout = 30 * time.Second

// @title       FinanceQuest Progression API
// @version     1.0
// @description Levels, XP, badges and savings milestones for FinanceQuest users.
// @BasePath    /
// @securityDefinitions.apikey ApiKeyAuth
// @in   header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	bootstrap.SetupLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}

	closers := []bootstrap.NamedCloser{{Name: "store", Close: store.Close}}
	fail := func(err error) error {
		bootstrap.CloseAll(closers)
		return err
	}

	ledger, err := bootstrap.NewLedger(ctx, cfg)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, bootstrap.NamedCloser{Name: "ledger", Close: ledger.Close})

	catalog, err := bootstrap.LoadQuestCatalog(cfg.QuestCatalogPath)
	if err != nil {
		return fail(err)
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return fail(err)
	}

	sink, err := bootstrap.NewAnalyticsSink(cfg)
	if err != nil {
		_ = publisher.Shutdown(ctx)
		return fail(err)
	}

	eventLogService := eventlog.NewService(store)
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: eventLogService,
		Analytics:       sink,
	}); err != nil {
		_ = publisher.Shutdown(ctx)
		return fail(err)
	}

	engine := gamification.Default()
	limiter := dailycap.NewLimiter(ledger, dailycap.WithLocation(cfg.Location()))
	progressService := progress.NewService(store, catalog, limiter, publisher,
		progress.WithEngine(engine),
		progress.WithCache(cfg.ProgressCacheSize, cfg.ProgressCacheTTL),
	)

	pool := worker.NewPool(bootstrap.WorkerPoolSize, bootstrap.WorkerPoolQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule("event_log_cleanup", cfg.EventLogCleanupEvery, true,
		eventlog.NewCleanupJob(eventLogService, cfg.EventLogRetentionDays))

	resetWorker := worker.NewDailyResetWorker(ledger.Pruner, publisher, limiter.Location())
	resetWorker.Start()

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	}, server.Deps{
		Store:      store,
		Progress:   progressService,
		EventLog:   eventLogService,
		Quests:     catalog,
		Engine:     engine,
		DailyXPCap: gamification.DailyXPCap,
		Storage:    cfg.StorageBackend,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		DailyResetWorker:   resetWorker,
		ResilientPublisher: publisher,
		Analytics:          sink,
		Closers:            closers,
	})
	return runErr
}
