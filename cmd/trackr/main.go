package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/api"
	"github.com/sksingtn/trackr-backend/internal/app"
	"github.com/sksingtn/trackr-backend/internal/config"
	"github.com/sksingtn/trackr-backend/internal/notify"
	"github.com/sksingtn/trackr-backend/internal/repository"
	"github.com/sksingtn/trackr-backend/internal/schedule"
	"github.com/sksingtn/trackr-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Database is unreachable", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	_ = migrator.Close()

	adminRepo := repository.NewAdminRepository(pool)
	batchRepo := repository.NewBatchRepository(pool, logger)
	facultyRepo := repository.NewFacultyRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	tokenRepo := repository.NewInviteTokenRepository(pool)
	broadcastRepo := repository.NewBroadcastRepository(pool, logger)

	clock := schedule.SystemClock{}
	mailer := notify.NewLogMailer(logger)
	notifier := notify.NewLogNotifier(logger)

	slotService := service.NewSlotService(slotRepo, batchRepo, facultyRepo, logger)
	batchService := service.NewBatchService(batchRepo, slotRepo, studentRepo, facultyRepo, logger)
	facultyService := service.NewFacultyService(facultyRepo, slotRepo, tokenRepo, mailer, clock, logger)
	studentService := service.NewStudentService(studentRepo, batchRepo, logger)
	broadcastService := service.NewBroadcastService(broadcastRepo, batchRepo, facultyRepo, studentRepo, notifier, logger)
	timetableService := service.NewTimetableService(slotRepo, clock, logger)

	handler := api.NewHandler(slotService, batchService, facultyService,
		studentService, broadcastService, timetableService, clock, logger)
	identity := api.NewBearerIdentity(adminRepo)
	router := api.NewRouter(handler, identity, strings.Split(cfg.CORSOrigins, ","), logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("environment", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
