package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/engivid/engivid-backend/internal/config"
	"github.com/engivid/engivid-backend/internal/database"
	"github.com/engivid/engivid-backend/internal/handler"
	"github.com/engivid/engivid-backend/internal/logger"
	"github.com/engivid/engivid-backend/internal/repository"
	"github.com/engivid/engivid-backend/internal/router"
	"github.com/engivid/engivid-backend/internal/service"
	"github.com/engivid/engivid-backend/internal/validator"
	"github.com/engivid/engivid-backend/internal/worker"
	"github.com/rs/zerolog"
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
		Msg("Starting EngiVid Backend")

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
	branchRepo := repository.NewBranchRepository(pool)
	semesterRepo := repository.NewSemesterRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	lecturerRepo := repository.NewLecturerRepository(pool)
	videoRepo := repository.NewVideoRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	events := service.NewCatalogEvents(rdb, log)
	authService := service.NewAuthService(cfg, rdb)
	accountService := service.NewAccountService(userRepo, log)
	catalogService := service.NewCatalogService(branchRepo, semesterRepo, subjectRepo, events, log)
	videoService := service.NewVideoService(videoRepo, lecturerRepo, subjectRepo, events, rdb, log)
	lecturerService := service.NewLecturerService(lecturerRepo, events, log)
	mediaService := service.NewMediaService(cfg)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, accountService),
		Branch:   handler.NewBranchHandler(catalogService),
		Subject:  handler.NewSubjectHandler(catalogService),
		Video:    handler.NewVideoHandler(videoService, catalogService),
		Lecturer: handler.NewLecturerHandler(lecturerService, mediaService),
		WS:       handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	viewCountWorker := worker.NewViewCountWorker(videoRepo, rdb, log)
	go viewCountWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
