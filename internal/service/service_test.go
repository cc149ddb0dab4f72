package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dan9191/ambient-finance/internal/agent"
	"github.com/Dan9191/ambient-finance/internal/config"
	"github.com/Dan9191/ambient-finance/internal/models"
)

type memoryStore struct {
	txs     []models.Transaction
	profile models.Profile
	err     error
}

func (m *memoryStore) Transactions(context.Context) ([]models.Transaction, error) { return m.txs, m.err }
func (m *memoryStore) Profile(context.Context) (models.Profile, error)            { return m.profile, nil }

type staticGenerator struct{ reply string }

func (g staticGenerator) Generate(context.Context, []models.Message) (string, error) {
	return g.reply, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestService(t *testing.T, store *memoryStore, cfg *config.Config) *Service {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{JWTSecret: "test-secret"}
	}
	log := quietLogger()
	advisor := agent.NewAdvisor(staticGenerator{reply: "not json"}, nil, log)
	return NewService(store, advisor, log, cfg)
}

func storeWithIncome() *memoryStore {
	return &memoryStore{
		txs: []models.Transaction{
			{Amount: 5000, Type: models.TypeCredit, Category: "salary"},
			{Amount: 4000, Type: models.TypeDebit, Category: "rent"},
		},
		profile: models.Profile{Goal: "Save for travel"},
	}
}

func TestOverview(t *testing.T) {
	svc := newTestService(t, storeWithIncome(), nil)

	snap, err := svc.Overview(context.Background(), "Conservative")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if snap.Metrics.Savings != 1000 || snap.Spending.RiskScore != "Moderate Risk" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.RiskProfile.Profile != models.RiskConservative {
		t.Fatalf("expected Conservative, got %q", snap.RiskProfile.Profile)
	}
	if snap.Profile.Goal != "Save for travel" {
		t.Fatalf("profile not loaded: %+v", snap.Profile)
	}
}

func TestOverviewRecomputesEachCall(t *testing.T) {
	store := storeWithIncome()
	svc := newTestService(t, store, nil)
	ctx := context.Background()

	first, _ := svc.Overview(ctx, "")
	store.txs = append(store.txs, models.Transaction{Amount: 1000, Type: models.TypeCredit})
	second, _ := svc.Overview(ctx, "")

	if first.Metrics.Income == second.Metrics.Income {
		t.Fatal("expected metrics to reflect the updated store")
	}
}

func TestStoreErrorsPropagate(t *testing.T) {
	boom := errors.New("disk gone")
	svc := newTestService(t, &memoryStore{err: boom}, nil)
	ctx := context.Background()

	if _, err := svc.Overview(ctx, ""); !errors.Is(err, boom) {
		t.Fatalf("Overview: expected store error, got %v", err)
	}
	if _, err := svc.SimulateLargeExpense(ctx, 100); !errors.Is(err, boom) {
		t.Fatalf("SimulateLargeExpense: expected store error, got %v", err)
	}
	if _, err := svc.Decide(ctx, agent.NewSession(), "q", ""); !errors.Is(err, boom) {
		t.Fatalf("Decide: expected store error, got %v", err)
	}
}

func TestSimulations(t *testing.T) {
	svc := newTestService(t, storeWithIncome(), nil)
	ctx := context.Background()

	expense, err := svc.SimulateLargeExpense(ctx, 3000)
	if err != nil || expense.NewSavings != -2000 {
		t.Fatalf("SimulateLargeExpense = %+v, %v", expense, err)
	}
	uplift, err := svc.SimulateSavingsIncrease(ctx, 10)
	if err != nil || uplift.NewSavings != 1500 {
		t.Fatalf("SimulateSavingsIncrease = %+v, %v", uplift, err)
	}
}

func TestDecide(t *testing.T) {
	svc := newTestService(t, storeWithIncome(), nil)
	session := agent.NewSession()

	decision, err := svc.Decide(context.Background(), session, "Can I travel?", "Balanced")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.Error != agent.InvalidJSONError || decision.RawResponse != "not json" {
		t.Fatalf("unexpected decision: %+v", decision)
	}
	if session.Len() != 2 {
		t.Fatalf("expected 2 history entries, got %d", session.Len())
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cfg := &config.Config{JWTSecret: "test-secret", AdminEmail: "me@example.com", AdminPasswordHash: string(hash)}
	svc := newTestService(t, storeWithIncome(), cfg)

	token, err := svc.Login("me@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}); err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Subject != "me@example.com" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}

	for _, tc := range []struct{ email, password string }{
		{"me@example.com", "wrong"},
		{"other@example.com", "hunter2"},
	} {
		if _, err := svc.Login(tc.email, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q): expected ErrInvalidCredentials, got %v", tc.email, tc.password, err)
		}
	}

	unconfigured := newTestService(t, storeWithIncome(), nil)
	if _, err := unconfigured.Login("", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials without configured operator, got %v", err)
	}
}
