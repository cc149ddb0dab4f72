// Package app wires configuration, storage, the model backend and the
// service together for the binaries under cmd/.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/ambient-finance/internal/agent"
	"github.com/Dan9191/ambient-finance/internal/config"
	"github.com/Dan9191/ambient-finance/internal/integrations/cbr"
	"github.com/Dan9191/ambient-finance/internal/llm"
	"github.com/Dan9191/ambient-finance/internal/repository"
	"github.com/Dan9191/ambient-finance/internal/service"
)

// App holds the wired components
type App struct {
	Config  *config.Config
	Log     *logrus.Logger
	Service *service.Service
	Rates   *cbr.CBRClient

	db *sql.DB
}

// NewLogger creates the JSON logger used by every binary
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// New builds every component from cfg
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	a := &App{Config: cfg, Log: logger, Rates: cbr.NewCBRClient(cfg, logger)}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}

	gen, err := llm.New(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize model backend: %w", err)
	}
	logger.Infof("Using %s model backend", cfg.LLMProvider)

	var rates agent.RateSource
	if cfg.KeyRateInPrompt {
		rates = a.Rates
	}
	advisor := agent.NewAdvisor(gen, rates, logger)
	a.Service = service.NewService(store, advisor, logger, cfg)
	return a, nil
}

func (a *App) openStore(ctx context.Context) (repository.Store, error) {
	switch a.Config.DataSource {
	case config.DataSourcePostgres:
		db, err := sql.Open("postgres", a.Config.DBConn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		a.db = db
		return repository.NewPostgresStore(db), nil
	default:
		return repository.NewFileStore(a.Config.TransactionsPath, a.Config.ProfilePath), nil
	}
}

// Close releases the database connection, if any
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
