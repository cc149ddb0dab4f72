package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Flag is a rule-engine finding
type Flag string

const (
	FlagCriticalLowSavings Flag = "CRITICAL_LOW_SAVINGS"
	FlagLowRunway          Flag = "LOW_RUNWAY"
	FlagNegativeCashflow   Flag = "NEGATIVE_CASHFLOW"
)

// RiskMode selects a risk profile
type RiskMode string

const (
	RiskConservative RiskMode = "Conservative"
	RiskBalanced     RiskMode = "Balanced"
	RiskAggressive   RiskMode = "Aggressive"
)

// RiskProfile carries tone guidance and the score ceiling for a mode
type RiskProfile struct {
	Profile                RiskMode `json:"profile"`
	Tone                   string   `json:"tone"`
	MaxRecommendationScore int      `json:"max_recommendation_score"`
}

// Confidence is a qualitative label derived from the savings rate
type Confidence string

const (
	HighConfidence   Confidence = "High Confidence"
	MediumConfidence Confidence = "Medium Confidence"
	LowConfidence    Confidence = "Low Confidence"
)

// Assessment is the six-field record the model is asked to produce
type Assessment struct {
	FinancialAssessment string    `json:"financial_assessment"`
	RiskLevel           string    `json:"risk_level"`
	Recommendation      string    `json:"recommendation"`
	RecommendationScore Score     `json:"recommendation_score"`
	ConfidenceLevel     string    `json:"confidence_level"`
	Reasoning           Reasoning `json:"reasoning"`
}

// Score is a 0-100 recommendation score. Models often quote it, so a numeric
// string is accepted too; anything else decodes as 0.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Score(n)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		text = strings.TrimSuffix(strings.TrimSpace(text), "%")
		if n, err := strconv.ParseFloat(text, 64); err == nil {
			*s = Score(n)
			return nil
		}
	}
	*s = 0
	return nil
}

// Reasoning accepts either a list of points or a single string. Other
// shapes decode as no reasoning.
type Reasoning []string

func (r *Reasoning) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*r = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = Reasoning{single}
		return nil
	}
	*r = nil
	return nil
}

// Decision is the result of a decision request: either an assessment or an error record
type Decision struct {
	Assessment  *Assessment
	Error       string
	RawResponse string
}

// Failed reports whether the model output could not be decoded
func (d Decision) Failed() bool {
	return d.Assessment == nil
}

// MarshalJSON emits exactly one of the two response shapes
func (d Decision) MarshalJSON() ([]byte, error) {
	if d.Assessment != nil {
		return json.Marshal(d.Assessment)
	}
	return json.Marshal(struct {
		Error       string `json:"error"`
		RawResponse string `json:"raw_response"`
	}{d.Error, d.RawResponse})
}
