package metrics

import (
	"math"
	"testing"

	"github.com/Dan9191/ambient-finance/internal/models"
)

func TestSimulateLargeExpense(t *testing.T) {
	m := models.FinancialMetrics{Income: 5000, Expenses: 4000, Savings: 1000, SavingsRate: 20}
	s := SimulateLargeExpense(m, 3000)

	if s.Scenario != "large_expense" || s.Amount != 3000 {
		t.Fatalf("unexpected scenario header: %+v", s)
	}
	if !approx(s.NewSavings, -2000) {
		t.Fatalf("expected new savings -2000, got %v", s.NewSavings)
	}
	if !approx(s.NewSavingsRate, -40) {
		t.Fatalf("expected new savings rate -40, got %v", s.NewSavingsRate)
	}
}

func TestSimulateSavingsIncrease(t *testing.T) {
	m := models.FinancialMetrics{Income: 5000, Expenses: 4000, Savings: 1000, SavingsRate: 20}
	s := SimulateSavingsIncrease(m, 10)

	if !approx(s.NewSavings, 1500) {
		t.Fatalf("expected new savings 1500, got %v", s.NewSavings)
	}
	if !approx(s.NewSavingsRate, 30) {
		t.Fatalf("expected new savings rate 30, got %v", s.NewSavingsRate)
	}
}

func TestSimulationsReadOriginalMetrics(t *testing.T) {
	m := CalculateFinancialMetrics(sampleTransactions())
	before := m

	expense := SimulateLargeExpense(m, 500)
	uplift := SimulateSavingsIncrease(m, 10)
	expenseAgain := SimulateLargeExpense(m, 500)

	if m != before {
		t.Fatalf("simulations mutated metrics: %+v -> %+v", before, m)
	}
	if expense != expenseAgain {
		t.Fatalf("expense scenario changed after uplift: %+v vs %+v", expense, expenseAgain)
	}
	if !approx(uplift.NewSavings, m.Savings+500) {
		t.Fatalf("uplift should start from original savings, got %v", uplift.NewSavings)
	}
}

func TestSimulateWithoutIncome(t *testing.T) {
	s := SimulateLargeExpense(models.FinancialMetrics{Expenses: 100, Savings: -100}, 50)
	if s.NewSavingsRate != 0 || math.IsNaN(s.NewSavingsRate) {
		t.Fatalf("expected guarded rate 0, got %v", s.NewSavingsRate)
	}
	if !approx(s.NewSavings, -150) {
		t.Fatalf("expected new savings -150, got %v", s.NewSavings)
	}
}

func TestAnalyze(t *testing.T) {
	profile := models.Profile{Goal: "Buy a home", SavingsGoal: 20000}
	snap := Analyze(sampleTransactions(), profile, "Aggressive")

	if snap.Profile.Goal != "Buy a home" {
		t.Fatalf("profile not carried through: %+v", snap.Profile)
	}
	if snap.RiskProfile.Profile != models.RiskAggressive {
		t.Fatalf("expected Aggressive profile, got %q", snap.RiskProfile.Profile)
	}
	if snap.Confidence != models.MediumConfidence {
		t.Fatalf("expected Medium Confidence, got %q", snap.Confidence)
	}
	if snap.Scenario.Amount != 3000 {
		t.Fatalf("expected fixed 3000 scenario, got %v", snap.Scenario.Amount)
	}
	if len(snap.Flags) != 1 || snap.Flags[0] != models.FlagLowRunway {
		t.Fatalf("expected LOW_RUNWAY only, got %v", snap.Flags)
	}
	if snap.Metrics != snap.Spending.FinancialMetrics {
		t.Fatal("metrics and spending totals diverged")
	}
}
