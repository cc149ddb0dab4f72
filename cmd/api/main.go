package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/ambient-finance/internal/agent"
	"github.com/Dan9191/ambient-finance/internal/ambient"
	"github.com/Dan9191/ambient-finance/internal/app"
	"github.com/Dan9191/ambient-finance/internal/config"
	"github.com/Dan9191/ambient-finance/internal/handler"
	"github.com/Dan9191/ambient-finance/internal/notify"
)

func main() {
	// Initialize logger
	logger := app.NewLogger(os.Getenv("LOG_LEVEL"))

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize layers
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize: %v", err)
	}
	defer a.Close()

	// Fail fast on unreadable data, it is static configuration
	if _, err := a.Service.Overview(ctx, ""); err != nil {
		logger.Fatalf("Failed to load financial data: %v", err)
	}

	// Ambient monitor
	var notifier ambient.Notifier
	if cfg.SMTPEnabled() {
		notifier = notify.NewSender(cfg, logger)
	}
	monitor := ambient.NewMonitor(a.Service, notifier, cfg.AlertEmail, logger)
	if cfg.AmbientSchedule != "" {
		if err := monitor.Start(cfg.AmbientSchedule); err != nil {
			logger.Fatalf("Failed to start ambient monitor: %v", err)
		}
		defer monitor.Stop()
	}

	h := handler.NewHandler(a.Service, agent.NewSessions(), a.Rates, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h, cfg),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Shutdown failed: %v", err)
		}
	}()

	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}
