package models

// FinancialMetrics holds aggregate figures derived from the full transaction set
type FinancialMetrics struct {
	Income          float64 `json:"income"`
	Expenses        float64 `json:"expenses"`
	Savings         float64 `json:"savings"`
	SavingsRate     float64 `json:"savings_rate"`
	RunwayDays      float64 `json:"runway_days"`
	EmergencyTarget float64 `json:"emergency_target"`
}

// MonthlySpending extends FinancialMetrics with a category breakdown and a qualitative risk label
type MonthlySpending struct {
	FinancialMetrics
	ExpenseRatio      float64            `json:"expense_ratio"`
	CategoryBreakdown map[string]float64 `json:"category_breakdown"`
	RiskScore         string             `json:"risk_score"`
}

// DashboardMetrics holds the headline ratios shown on summary cards
type DashboardMetrics struct {
	SavingsRate   float64 `json:"savings_rate"`
	BurnRateDaily float64 `json:"burn_rate_daily"`
	RunwayMonths  float64 `json:"runway_months"`
}

// Scenario is a what-if projection over current savings
type Scenario struct {
	Scenario       string  `json:"scenario"`
	Amount         float64 `json:"amount,omitempty"`
	Percent        float64 `json:"percent,omitempty"`
	NewSavings     float64 `json:"new_savings"`
	NewSavingsRate float64 `json:"new_savings_rate"`
}

// Snapshot bundles every pipeline output for one request
type Snapshot struct {
	Profile     Profile          `json:"profile"`
	Spending    MonthlySpending  `json:"spending"`
	Metrics     FinancialMetrics `json:"metrics"`
	Flags       []Flag           `json:"flags"`
	RiskProfile RiskProfile      `json:"risk_profile"`
	Confidence  Confidence       `json:"confidence"`
	Dashboard   DashboardMetrics `json:"dashboard"`
	Scenario    Scenario         `json:"scenario"`
}
