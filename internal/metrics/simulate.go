package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/Dan9191/ambient-finance/internal/models"
)

// SimulateLargeExpense projects savings after a one-off expense.
func SimulateLargeExpense(m models.FinancialMetrics, amount float64) models.Scenario {
	delta := decimal.NewFromFloat(amount).Neg()
	s := project(m, delta)
	s.Scenario = scenarioLargeExpense
	s.Amount = amount
	return s
}

// SimulateSavingsIncrease projects savings after putting aside an extra percent of income.
func SimulateSavingsIncrease(m models.FinancialMetrics, percent float64) models.Scenario {
	income := decimal.NewFromFloat(m.Income)
	delta := income.Mul(decimal.NewFromFloat(percent)).Div(hundred)
	s := project(m, delta)
	s.Scenario = scenarioSavingsUplift
	s.Percent = percent
	return s
}

func project(m models.FinancialMetrics, delta decimal.Decimal) models.Scenario {
	income := decimal.NewFromFloat(m.Income)
	newSavings := decimal.NewFromFloat(m.Savings).Add(delta)
	return models.Scenario{
		NewSavings:     newSavings.InexactFloat64(),
		NewSavingsRate: ratio(income, newSavings.Mul(hundred), income),
	}
}

// Analyze runs the full pipeline for one request.
func Analyze(txs []models.Transaction, profile models.Profile, mode models.RiskMode) models.Snapshot {
	spending := CalculateMonthlySpending(txs)
	m := spending.FinancialMetrics
	return models.Snapshot{
		Profile:     profile,
		Spending:    spending,
		Metrics:     m,
		Flags:       RuleEngine(m),
		RiskProfile: RiskProfileFor(m, mode),
		Confidence:  DecisionConfidence(m),
		Dashboard:   DashboardMetricsFor(m),
		Scenario:    SimulateLargeExpense(m, largeExpenseScenario),
	}
}
