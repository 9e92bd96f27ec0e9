package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/troopdesk/troopdesk-backend/internal/attendance"
	"github.com/troopdesk/troopdesk-backend/internal/config"
	"github.com/troopdesk/troopdesk-backend/internal/database"
	"github.com/troopdesk/troopdesk-backend/internal/handler"
	"github.com/troopdesk/troopdesk-backend/internal/logger"
	"github.com/troopdesk/troopdesk-backend/internal/queue"
	"github.com/troopdesk/troopdesk-backend/internal/repository"
	"github.com/troopdesk/troopdesk-backend/internal/router"
	"github.com/troopdesk/troopdesk-backend/internal/service"
	"github.com/troopdesk/troopdesk-backend/internal/validator"
	"github.com/troopdesk/troopdesk-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting TroopDesk Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	store := repository.NewGateway(
		repository.NewMemberRepository(pool),
		repository.NewActivityRepository(pool),
		repository.NewAttendanceRepository(pool),
	)

	// ─── Initialize Services ──────────────────────────────────────────
	reportService := service.NewReportService(store, service.NewRedisCache(rdb), cfg.ReportCacheTTL, log)
	refreshQueue := worker.NewReportQueue(rdb)
	events := queue.NewPublisher(cfg.RabbitMQURL, log)
	persister := attendance.NewPersister(store, cfg.CommitConcurrency, log)
	attendanceService := service.NewAttendanceService(store, persister, reportService, refreshQueue, events, log)
	rosterService := service.NewRosterService(store)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Health:     handler.NewHealthHandler(database.NewChecker(pool, rdb)),
		Roster:     handler.NewRosterHandler(rosterService),
		Attendance: handler.NewAttendanceHandler(attendanceService, log),
		Report:     handler.NewReportHandler(reportService, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	reportWorker := worker.NewReportWorker(rdb, reportService, log)
	workers.Go(func() { reportWorker.Start(workerCtx) })

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	if _, err := reportService.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("Report cache prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests. In-flight commits finish first.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
