package metrics

import "github.com/Dan9191/ambient-finance/internal/models"

const (
	criticalSavingsRate = 10
	minRunwayDays       = 30
)

type rule struct {
	flag  models.Flag
	holds func(m models.FinancialMetrics) bool
}

// Evaluated in order; each predicate is independent of the others.
var rules = []rule{
	{models.FlagCriticalLowSavings, func(m models.FinancialMetrics) bool { return m.SavingsRate < criticalSavingsRate }},
	{models.FlagLowRunway, func(m models.FinancialMetrics) bool { return m.RunwayDays < minRunwayDays }},
	{models.FlagNegativeCashflow, func(m models.FinancialMetrics) bool { return m.Expenses > m.Income }},
}

// RuleEngine returns the flags whose predicates hold, in a fixed order.
func RuleEngine(m models.FinancialMetrics) []models.Flag {
	flags := []models.Flag{}
	for _, r := range rules {
		if r.holds(m) {
			flags = append(flags, r.flag)
		}
	}
	return flags
}

// DecisionConfidence maps the savings rate to a confidence label.
func DecisionConfidence(m models.FinancialMetrics) models.Confidence {
	switch {
	case m.SavingsRate > 30:
		return models.HighConfidence
	case m.SavingsRate > 15:
		return models.MediumConfidence
	default:
		return models.LowConfidence
	}
}

var riskProfiles = map[models.RiskMode]models.RiskProfile{
	models.RiskConservative: {
		Profile:                models.RiskConservative,
		Tone:                   "Prioritise capital preservation. Be cautious and call out downside risks first.",
		MaxRecommendationScore: 60,
	},
	models.RiskBalanced: {
		Profile:                models.RiskBalanced,
		Tone:                   "Weigh opportunity and risk evenly. Be pragmatic.",
		MaxRecommendationScore: 80,
	},
	models.RiskAggressive: {
		Profile:                models.RiskAggressive,
		Tone:                   "Favour growth opportunities while still naming the key risks.",
		MaxRecommendationScore: 95,
	},
}

// ParseRiskMode resolves a mode name; unknown or empty names become Balanced.
func ParseRiskMode(name string) models.RiskMode {
	mode := models.RiskMode(name)
	if _, ok := riskProfiles[mode]; ok {
		return mode
	}
	return models.RiskBalanced
}

// RiskProfileFor looks up the static profile for a mode.
func RiskProfileFor(_ models.FinancialMetrics, mode models.RiskMode) models.RiskProfile {
	return riskProfiles[ParseRiskMode(string(mode))]
}
