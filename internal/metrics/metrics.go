// Package metrics derives aggregate figures, rule flags and what-if
// projections from a set of transactions. Every function is pure: results are
// recomputed from the inputs on each call and nothing is cached.
package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/Dan9191/ambient-finance/internal/models"
)

const (
	daysPerMonth          = 30
	emergencyFundMonths   = 6
	uncategorized         = "uncategorized"
	largeExpenseScenario  = 3000.0
	scenarioLargeExpense  = "large_expense"
	scenarioSavingsUplift = "savings_increase"
)

var hundred = decimal.NewFromInt(100)

type totals struct {
	income     decimal.Decimal
	expenses   decimal.Decimal
	categories map[string]decimal.Decimal
}

func sum(txs []models.Transaction) totals {
	t := totals{categories: make(map[string]decimal.Decimal)}
	for _, tx := range txs {
		amount := decimal.NewFromFloat(tx.Amount)
		switch tx.Type {
		case models.TypeCredit:
			t.income = t.income.Add(amount)
		case models.TypeDebit:
			t.expenses = t.expenses.Add(amount)
			category := tx.Category
			if category == "" {
				category = uncategorized
			}
			t.categories[category] = t.categories[category].Add(amount)
		}
	}
	return t
}

// ratio returns num/den, or zero when there is no income or den is zero.
func ratio(income, num, den decimal.Decimal) float64 {
	if income.IsZero() || den.IsZero() {
		return 0
	}
	return num.Div(den).InexactFloat64()
}

func fromTotals(t totals) models.FinancialMetrics {
	savings := t.income.Sub(t.expenses)
	return models.FinancialMetrics{
		Income:          t.income.InexactFloat64(),
		Expenses:        t.expenses.InexactFloat64(),
		Savings:         savings.InexactFloat64(),
		SavingsRate:     ratio(t.income, savings.Mul(hundred), t.income),
		RunwayDays:      ratio(t.income, savings, t.expenses.Div(decimal.NewFromInt(daysPerMonth))),
		EmergencyTarget: t.expenses.Mul(decimal.NewFromInt(emergencyFundMonths)).InexactFloat64(),
	}
}

// CalculateFinancialMetrics sums income and expenses and derives savings, savings rate and runway.
func CalculateFinancialMetrics(txs []models.Transaction) models.FinancialMetrics {
	return fromTotals(sum(txs))
}

// CalculateMonthlySpending adds the per-category expense breakdown and the risk label.
func CalculateMonthlySpending(txs []models.Transaction) models.MonthlySpending {
	t := sum(txs)
	m := fromTotals(t)

	breakdown := make(map[string]float64, len(t.categories))
	for category, amount := range t.categories {
		breakdown[category] = amount.InexactFloat64()
	}

	expenseRatio := ratio(t.income, t.expenses.Mul(hundred), t.income)
	return models.MonthlySpending{
		FinancialMetrics:  m,
		ExpenseRatio:      expenseRatio,
		CategoryBreakdown: breakdown,
		RiskScore:         RiskScore(expenseRatio, m.SavingsRate),
	}
}

// RiskScore labels spending. Expense ratio bands take priority over the savings rate.
func RiskScore(expenseRatio, savingsRate float64) string {
	switch {
	case expenseRatio > 90:
		return "High Risk"
	case expenseRatio > 70:
		return "Moderate Risk"
	case savingsRate < 10:
		return "Low Stability"
	default:
		return "Financially Stable"
	}
}

// DashboardMetricsFor computes the daily burn rate and runway in months.
func DashboardMetricsFor(m models.FinancialMetrics) models.DashboardMetrics {
	income := decimal.NewFromFloat(m.Income)
	expenses := decimal.NewFromFloat(m.Expenses)
	savings := decimal.NewFromFloat(m.Savings)
	return models.DashboardMetrics{
		SavingsRate:   m.SavingsRate,
		BurnRateDaily: ratio(income, expenses, decimal.NewFromInt(daysPerMonth)),
		RunwayMonths:  ratio(income, savings, expenses),
	}
}
