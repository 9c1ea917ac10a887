package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-coastal-alerts/internal/api"
	"github.com/mr1hm/go-coastal-alerts/internal/config"
	"github.com/mr1hm/go-coastal-alerts/internal/dashboard"
	"github.com/mr1hm/go-coastal-alerts/internal/dataset"
	"github.com/mr1hm/go-coastal-alerts/internal/logging"
	"github.com/mr1hm/go-coastal-alerts/internal/notify"
	"github.com/mr1hm/go-coastal-alerts/internal/observability"
	"github.com/mr1hm/go-coastal-alerts/internal/repository"
	"github.com/mr1hm/go-coastal-alerts/internal/scheduler"
	"github.com/mr1hm/go-coastal-alerts/internal/session"
	"github.com/mr1hm/go-coastal-alerts/internal/simulator"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	logger := slog.Default()

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	if cfg.DB.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0o755); err != nil {
			logging.Fatalf("Failed to create database directory: %v", err)
		}
	}
	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ds, err := dataset.Load(cfg.Simulation.DatasetPath)
	if err != nil {
		logging.Fatalf("Failed to load dataset: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()

	// Toasts fan out to stream subscribers; push goes to Kafka when configured
	broadcaster := notify.NewBroadcaster()
	var push notify.PushSink = notify.NewLogSink(logger)
	if len(cfg.Notifications.KafkaBrokers) > 0 {
		kafkaSink := notify.NewKafkaSink(cfg.Notifications.KafkaBrokers, cfg.Notifications.KafkaTopic)
		defer kafkaSink.Close()
		push = kafkaSink
		slog.Info("push notifications via kafka", "brokers", cfg.Notifications.KafkaBrokers, "topic", cfg.Notifications.KafkaTopic)
	}
	dispatcher := notify.NewDispatcher(notify.Options{
		ToastDuration: cfg.Notifications.ToastDuration,
		Workers:       cfg.Notifications.Workers,
		BufferSize:    cfg.Notifications.BufferSize,
	}, broadcaster, push, clock, metrics, logger)
	dispatcher.Start(ctx)

	engine := dashboard.NewEngine(ds, dashboard.Options{
		Source:    simulator.NewSource(cfg.Simulation.Seed),
		Clock:     clock,
		Notifier:  dispatcher,
		Archive:   db,
		Metrics:   metrics,
		Logger:    logger,
		MaxAlerts: cfg.Alerts.MaxRetained,
	})

	view := session.NewView()
	sched := scheduler.New(engine, scheduler.Options{
		SimulationInterval:  cfg.Simulation.Interval,
		ThreatCheckInterval: cfg.Simulation.ThreatCheckInterval,
		ChartsVisible:       view.ChartsVisible,
		ThreatGate:          view.Active,
	}, clock, metrics)

	sessions := session.NewManager(ctx, db, sched, view, clock)
	if !sessions.Restore(ctx) {
		slog.Info("no saved session, waiting for sign in")
	}

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimitRPS))

	handler := api.NewHandler(engine, sessions, dispatcher, broadcaster, clock)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	// The session record stays in the database so the next start resumes it
	sched.Stop()
	broadcaster.Close() // Close all streams gracefully

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	cancel()
	dispatcher.Stop()

	slog.Info("shutdown complete")
}
