package agent

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"

	"github.com/Dan9191/ambient-finance/internal/models"
)

const systemPrompt = `You are an AI-powered personal finance assistant.

Rules:
- Provide practical and data-driven financial advice.
- Be structured and concise.
- Do not guarantee investment returns.
- Highlight risks clearly.
- Use previous conversation context when relevant.
- Never exceed the maximum recommendation score allowed by the risk profile.

Respond ONLY in valid JSON format:

{
  "financial_assessment": "...",
  "risk_level": "...",
  "recommendation": "Yes / No / Cautious Yes",
  "recommendation_score": 0-100,
  "confidence_level": "Low / Medium / High",
  "reasoning": ["point1", "point2", "point3"]
}

Do not include explanations outside the JSON.`

// promptInput is everything the user turn is built from
type promptInput struct {
	Snapshot models.Snapshot
	Question string
	KeyRate  *float64
}

func buildUserPrompt(in promptInput) string {
	snap := in.Snapshot
	currency := snap.Profile.CurrencyOrDefault()

	goal := snap.Profile.Goal
	if goal == "" {
		goal = "Not specified"
	}

	var b strings.Builder
	section := func(title, body string) {
		fmt.Fprintf(&b, "%s:\n%s\n\n", title, body)
	}

	section("User Financial Goal", goal)
	if snap.Profile.SavingsGoal > 0 {
		section("Savings Goal", formatAmount(snap.Profile.SavingsGoal, currency))
	}
	section("Monthly Financial Overview", spendingOverview(snap.Spending, currency))
	section("Financial Metrics", toJSON(snap.Metrics))
	section("Rule Engine Flags", flagList(snap.Flags))
	section("Risk Profile", fmt.Sprintf("Mode: %s\nTone Guidance: %s\nMax Recommendation Score Allowed: %d",
		snap.RiskProfile.Profile, snap.RiskProfile.Tone, snap.RiskProfile.MaxRecommendationScore))
	section("Confidence Level", string(snap.Confidence))
	section("Dashboard Metrics", toJSON(snap.Dashboard))
	if in.KeyRate != nil {
		section("Benchmark Key Rate (Bank of Russia, RUB)", fmt.Sprintf("%.2f%%", *in.KeyRate))
	}
	section("User Question", in.Question)
	section("Scenario Simulation", toJSON(snap.Scenario))

	return strings.TrimRight(b.String(), "\n")
}

func spendingOverview(s models.MonthlySpending, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Income: %s\n", formatAmount(s.Income, currency))
	fmt.Fprintf(&b, "Expenses: %s\n", formatAmount(s.Expenses, currency))
	fmt.Fprintf(&b, "Savings: %s\n", formatAmount(s.Savings, currency))
	fmt.Fprintf(&b, "Expense Ratio: %.1f%%\n", s.ExpenseRatio)
	fmt.Fprintf(&b, "Risk Score: %s\n", s.RiskScore)
	if len(s.CategoryBreakdown) > 0 {
		b.WriteString("Spending by Category:")
		for _, category := range sortedCategories(s.CategoryBreakdown) {
			fmt.Fprintf(&b, "\n- %s: %s", category, formatAmount(s.CategoryBreakdown[category], currency))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// sortedCategories orders categories by amount, largest first, then by name.
func sortedCategories(breakdown map[string]float64) []string {
	keys := make([]string, 0, len(breakdown))
	for k := range breakdown {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if breakdown[keys[i]] != breakdown[keys[j]] {
			return breakdown[keys[i]] > breakdown[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// formatAmount renders amount in major units, scaled by the currency's own fraction digits
func formatAmount(amount float64, currency string) string {
	return money.NewFromFloat(amount, currency).Display()
}

func flagList(flags []models.Flag) string {
	if len(flags) == 0 {
		return "None"
	}
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func toJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
