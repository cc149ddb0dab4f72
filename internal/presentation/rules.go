// Package presentation holds the small display rules shared by the HTTP API
// and the terminal client.
package presentation

import "github.com/Dan9191/ambient-finance/internal/models"

// Gauge bands for a 0-100 recommendation score
const (
	BandRed    = "red"
	BandYellow = "yellow"
	BandGreen  = "green"
)

// Decision heat labels
const (
	HeatHigh     = "HIGH DECISION MOMENT"
	HeatModerate = "Moderate Opportunity"
	HeatLow      = "Low Urgency"
)

// GaugeBand maps a score to red below 40, yellow below 70, green otherwise.
func GaugeBand(score float64) string {
	switch {
	case score < 40:
		return BandRed
	case score < 70:
		return BandYellow
	default:
		return BandGreen
	}
}

// DecisionHeat labels how urgent a recommendation is.
func DecisionHeat(score float64, confidence string) string {
	switch {
	case score > 75 && confidence == "High":
		return HeatHigh
	case score > 50:
		return HeatModerate
	default:
		return HeatLow
	}
}

// DecisionView is a decision annotated with its gauge band and heat label
type DecisionView struct {
	SessionID string          `json:"session_id,omitempty"`
	Decision  models.Decision `json:"decision"`
	Heat      string          `json:"heat,omitempty"`
	Gauge     string          `json:"gauge,omitempty"`
}

// NewDecisionView annotates successful decisions; error decisions carry no heat or gauge.
func NewDecisionView(sessionID string, d models.Decision) DecisionView {
	v := DecisionView{SessionID: sessionID, Decision: d}
	if a := d.Assessment; a != nil {
		v.Heat = DecisionHeat(float64(a.RecommendationScore), a.ConfidenceLevel)
		v.Gauge = GaugeBand(float64(a.RecommendationScore))
	}
	return v
}
