package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quizdojo/reward-engine/internal/bootstrap"
	"github.com/quizdojo/reward-engine/internal/config"
	"github.com/quizdojo/reward-engine/internal/database"
	"github.com/quizdojo/reward-engine/internal/eventlog"
	"github.com/quizdojo/reward-engine/internal/gacha"
	"github.com/quizdojo/reward-engine/internal/gift"
	"github.com/quizdojo/reward-engine/internal/handler"
	"github.com/quizdojo/reward-engine/internal/logger"
	"github.com/quizdojo/reward-engine/internal/market"
	"github.com/quizdojo/reward-engine/internal/scheduler"
	"github.com/quizdojo/reward-engine/internal/server"
	"github.com/quizdojo/reward-engine/internal/trade"
	"github.com/quizdojo/reward-engine/internal/user"
	"github.com/quizdojo/reward-engine/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		false,
	))

	dbPool, err := database.NewPool(cfg.GetDBConnString(), database.DefaultMaxConnections, 30*time.Minute, time.Hour)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}

	eventBus, err := bootstrap.InitializeEventSystem()
	if err != nil {
		slog.Error("Event system initialization failed", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	auditService := eventlog.NewService(repos.EventLog)
	if err := auditService.Subscribe(eventBus); err != nil {
		slog.Error("Audit log subscription failed", "error", err)
		os.Exit(1)
	}

	workerPool := worker.NewPool(2, 16)
	workerPool.Start()
	sched := scheduler.New(workerPool)
	sched.Schedule(24*time.Hour, eventlog.NewCleanupJob(auditService, eventlog.DefaultRetentionDays))

	userService := user.NewService(repos.User, repos.Inventory)
	gachaService := gacha.NewService(repos.Gacha, repos.Catalog, eventBus)
	giftService := gift.NewService(repos.Gift, userService, eventBus)
	tradeService := trade.NewService(repos.Trade, eventBus, 0)
	marketService := market.NewService(repos.Market, eventBus, cfg.MaxActiveListings)

	handler.InitValidator()

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, dbPool, userService, gachaService, giftService, tradeService, marketService)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
		dbPool.Close()
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:     srv,
		Scheduler:  sched,
		WorkerPool: workerPool,
		DBPool:     dbPool,
	})
}
