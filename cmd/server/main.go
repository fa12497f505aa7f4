package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sandesh/prepquiz/internal/api"
	"github.com/sandesh/prepquiz/internal/auth"
	"github.com/sandesh/prepquiz/internal/config"
	"github.com/sandesh/prepquiz/internal/db"
	"github.com/sandesh/prepquiz/internal/event"
	"github.com/sandesh/prepquiz/internal/gate"
	"github.com/sandesh/prepquiz/internal/logger"
	"github.com/sandesh/prepquiz/internal/progress"
	"github.com/sandesh/prepquiz/internal/quiz"
	"github.com/sandesh/prepquiz/internal/repository/sqlite"
	"github.com/sandesh/prepquiz/internal/store"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("PrepQuiz Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("free_question_limit=%d", cfg.FreeQuestionLimit)
	log.Debug("default_time_limit_minutes=%d", cfg.DefaultTimeLimitMinutes)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	bus := event.NewBus()
	appStore := store.NewSQLiteStore(database.DB)
	questionRepo := sqlite.NewQuestionRepository(database.DB)
	usageGate := gate.New(appStore, cfg.FreeQuestionLimit, bus)
	quizManager := quiz.NewManager(usageGate, bus)
	tracker := progress.NewTracker(appStore)
	authService := auth.NewService(appStore, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	srv := &api.Server{
		AuthService:      authService,
		Gate:             usageGate,
		Quiz:             quizManager,
		Progress:         tracker,
		Questions:        questionRepo,
		Bus:              bus,
		DefaultTimeLimit: cfg.DefaultTimeLimitMinutes,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop any running countdown before the process exits.
	if quizManager.Snapshot() != nil {
		_ = quizManager.Finish(context.Background())
	}

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("PrepQuiz Server Stopped")
	log.Info("===========================================")
}
