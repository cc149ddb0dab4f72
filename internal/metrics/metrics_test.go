package metrics

import (
	"math"
	"reflect"
	"testing"

	"github.com/Dan9191/ambient-finance/internal/models"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{Date: "2024-05-01", Amount: 5000, Type: models.TypeCredit, Category: "salary"},
		{Date: "2024-05-02", Amount: 2500, Type: models.TypeDebit, Category: "rent"},
		{Date: "2024-05-05", Amount: 900.5, Type: models.TypeDebit, Category: "groceries"},
		{Date: "2024-05-09", Amount: 599.5, Type: models.TypeDebit, Category: "groceries"},
	}
}

func TestCalculateFinancialMetrics(t *testing.T) {
	m := CalculateFinancialMetrics(sampleTransactions())

	if !approx(m.Income, 5000) || !approx(m.Expenses, 4000) {
		t.Fatalf("unexpected totals: income=%v expenses=%v", m.Income, m.Expenses)
	}
	if !approx(m.Savings, 1000) {
		t.Fatalf("expected savings 1000, got %v", m.Savings)
	}
	if !approx(m.SavingsRate, 20) {
		t.Fatalf("expected savings rate 20, got %v", m.SavingsRate)
	}
	if math.Abs(m.RunwayDays-7.5) > 1e-6 {
		t.Fatalf("expected runway 7.5 days, got %v", m.RunwayDays)
	}
	if !approx(m.EmergencyTarget, 24000) {
		t.Fatalf("expected emergency target 24000, got %v", m.EmergencyTarget)
	}
}

func TestZeroIncomeGuards(t *testing.T) {
	sets := map[string][]models.Transaction{
		"empty":         nil,
		"expenses only": {{Amount: 120, Type: models.TypeDebit, Category: "food"}},
		"unknown type":  {{Amount: 50, Type: "refund"}},
	}

	for name, txs := range sets {
		t.Run(name, func(t *testing.T) {
			m := CalculateFinancialMetrics(txs)
			d := DashboardMetricsFor(m)
			for label, v := range map[string]float64{
				"savings_rate":    m.SavingsRate,
				"runway_days":     m.RunwayDays,
				"burn_rate_daily": d.BurnRateDaily,
				"runway_months":   d.RunwayMonths,
			} {
				if v != 0 || math.IsNaN(v) || math.IsInf(v, 0) {
					t.Errorf("%s: expected 0, got %v", label, v)
				}
			}
		})
	}
}

func TestZeroExpensesGuards(t *testing.T) {
	m := CalculateFinancialMetrics([]models.Transaction{{Amount: 1000, Type: models.TypeCredit}})
	if m.RunwayDays != 0 {
		t.Fatalf("expected runway 0 with no expenses, got %v", m.RunwayDays)
	}
	if !approx(m.SavingsRate, 100) {
		t.Fatalf("expected savings rate 100, got %v", m.SavingsRate)
	}
	if d := DashboardMetricsFor(m); d.RunwayMonths != 0 || d.BurnRateDaily != 0 {
		t.Fatalf("expected zero dashboard ratios, got %+v", d)
	}
}

func TestCalculateMonthlySpending(t *testing.T) {
	txs := append(sampleTransactions(), models.Transaction{Amount: 0, Type: models.TypeDebit})
	s := CalculateMonthlySpending(txs)

	want := map[string]float64{"rent": 2500, "groceries": 1500, "uncategorized": 0}
	if !reflect.DeepEqual(s.CategoryBreakdown, want) {
		t.Fatalf("unexpected breakdown: %v", s.CategoryBreakdown)
	}
	if !approx(s.ExpenseRatio, 80) {
		t.Fatalf("expected expense ratio 80, got %v", s.ExpenseRatio)
	}
	// savings rate is 20, but the expense ratio band wins
	if s.RiskScore != "Moderate Risk" {
		t.Fatalf("expected Moderate Risk, got %q", s.RiskScore)
	}
}

func TestRiskScore(t *testing.T) {
	tests := []struct {
		expenseRatio, savingsRate float64
		want                      string
	}{
		{95, 5, "High Risk"},
		{90, 10, "Moderate Risk"},
		{71, 29, "Moderate Risk"},
		{70, 5, "Low Stability"},
		{50, 50, "Financially Stable"},
		{0, 0, "Low Stability"},
	}
	for _, tt := range tests {
		if got := RiskScore(tt.expenseRatio, tt.savingsRate); got != tt.want {
			t.Errorf("RiskScore(%v, %v) = %q, want %q", tt.expenseRatio, tt.savingsRate, got, tt.want)
		}
	}
}

func TestDashboardMetricsFor(t *testing.T) {
	d := DashboardMetricsFor(models.FinancialMetrics{Income: 5000, Expenses: 3000, Savings: 2000, SavingsRate: 40})
	if !approx(d.BurnRateDaily, 100) {
		t.Fatalf("expected burn rate 100, got %v", d.BurnRateDaily)
	}
	if math.Abs(d.RunwayMonths-2.0/3.0) > 1e-9 {
		t.Fatalf("expected runway 0.667 months, got %v", d.RunwayMonths)
	}
	if d.SavingsRate != 40 {
		t.Fatalf("expected savings rate passthrough, got %v", d.SavingsRate)
	}
}
