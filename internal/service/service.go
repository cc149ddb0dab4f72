package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/ambient-finance/internal/agent"
	"github.com/Dan9191/ambient-finance/internal/config"
	"github.com/Dan9191/ambient-finance/internal/metrics"
	"github.com/Dan9191/ambient-finance/internal/models"
	"github.com/Dan9191/ambient-finance/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login on any credential mismatch
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = 24 * time.Hour

// Service handles business logic
type Service struct {
	store   repository.Store
	advisor *agent.Advisor
	log     *logrus.Logger
	config  *config.Config
}

// NewService initializes a new service
func NewService(store repository.Store, advisor *agent.Advisor, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, advisor: advisor, log: log, config: cfg}
}

func (s *Service) load(ctx context.Context) ([]models.Transaction, models.Profile, error) {
	txs, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, models.Profile{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	profile, err := s.store.Profile(ctx)
	if err != nil {
		return nil, models.Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return txs, profile, nil
}

// Overview recomputes every pipeline output from the store
func (s *Service) Overview(ctx context.Context, mode string) (models.Snapshot, error) {
	txs, profile, err := s.load(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	snap := metrics.Analyze(txs, profile, metrics.ParseRiskMode(mode))
	s.log.Debugf("Computed metrics over %d transactions: savings rate %.2f, flags %v",
		len(txs), snap.Metrics.SavingsRate, snap.Flags)
	return snap, nil
}

// SimulateLargeExpense projects savings after a one-off expense
func (s *Service) SimulateLargeExpense(ctx context.Context, amount float64) (models.Scenario, error) {
	txs, _, err := s.load(ctx)
	if err != nil {
		return models.Scenario{}, err
	}
	return metrics.SimulateLargeExpense(metrics.CalculateFinancialMetrics(txs), amount), nil
}

// SimulateSavingsIncrease projects savings after saving an extra percent of income
func (s *Service) SimulateSavingsIncrease(ctx context.Context, percent float64) (models.Scenario, error) {
	txs, _, err := s.load(ctx)
	if err != nil {
		return models.Scenario{}, err
	}
	return metrics.SimulateSavingsIncrease(metrics.CalculateFinancialMetrics(txs), percent), nil
}

// Decide answers a free-text question in the context of freshly computed metrics
func (s *Service) Decide(ctx context.Context, session *agent.Session, question, mode string) (models.Decision, error) {
	snap, err := s.Overview(ctx, mode)
	if err != nil {
		return models.Decision{}, err
	}
	return s.advisor.Decide(ctx, session, snap, question)
}

// Login authenticates the configured operator and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	if s.config.AdminEmail == "" || s.config.AdminPasswordHash == "" || email != s.config.AdminEmail {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", email)
	return tokenString, nil
}
