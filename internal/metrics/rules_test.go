package metrics

import (
	"reflect"
	"testing"

	"github.com/Dan9191/ambient-finance/internal/models"
)

func TestRuleEngine(t *testing.T) {
	tests := []struct {
		name string
		m    models.FinancialMetrics
		want []models.Flag
	}{
		{
			name: "low savings only",
			m:    models.FinancialMetrics{SavingsRate: 5, RunwayDays: 40, Expenses: 100, Income: 200},
			want: []models.Flag{models.FlagCriticalLowSavings},
		},
		{
			name: "healthy",
			m:    models.FinancialMetrics{SavingsRate: 25, RunwayDays: 90, Expenses: 100, Income: 200},
			want: []models.Flag{},
		},
		{
			name: "low runway only",
			m:    models.FinancialMetrics{SavingsRate: 20, RunwayDays: 7.5, Expenses: 4000, Income: 5000},
			want: []models.Flag{models.FlagLowRunway},
		},
		{
			name: "all flags in order",
			m:    models.FinancialMetrics{SavingsRate: -10, RunwayDays: -5, Expenses: 1100, Income: 1000},
			want: []models.Flag{models.FlagCriticalLowSavings, models.FlagLowRunway, models.FlagNegativeCashflow},
		},
		{
			name: "thresholds are strict",
			m:    models.FinancialMetrics{SavingsRate: 10, RunwayDays: 30, Expenses: 100, Income: 100},
			want: []models.Flag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RuleEngine(tt.m); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("RuleEngine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecisionConfidence(t *testing.T) {
	tests := []struct {
		rate float64
		want models.Confidence
	}{
		{31, models.HighConfidence},
		{30, models.MediumConfidence},
		{16, models.MediumConfidence},
		{15, models.LowConfidence},
		{-20, models.LowConfidence},
	}
	for _, tt := range tests {
		if got := DecisionConfidence(models.FinancialMetrics{SavingsRate: tt.rate}); got != tt.want {
			t.Errorf("DecisionConfidence(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestRiskProfileFor(t *testing.T) {
	m := models.FinancialMetrics{}

	if got, want := RiskProfileFor(m, "Unknown"), RiskProfileFor(m, models.RiskBalanced); got != want {
		t.Fatalf("unknown mode = %+v, want Balanced %+v", got, want)
	}
	if got := RiskProfileFor(m, ""); got.Profile != models.RiskBalanced {
		t.Fatalf("empty mode should resolve to Balanced, got %q", got.Profile)
	}

	conservative := RiskProfileFor(m, models.RiskConservative)
	aggressive := RiskProfileFor(m, models.RiskAggressive)
	if conservative.MaxRecommendationScore >= aggressive.MaxRecommendationScore {
		t.Fatalf("conservative ceiling %d should be below aggressive %d",
			conservative.MaxRecommendationScore, aggressive.MaxRecommendationScore)
	}
	if conservative.Tone == "" || aggressive.Tone == "" {
		t.Fatal("expected tone guidance for every profile")
	}
}
