package presentation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dan9191/ambient-finance/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1).
			Width(26)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	flagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	bandColors = map[string]lipgloss.Color{
		BandRed:    lipgloss.Color("#EF4444"),
		BandYellow: lipgloss.Color("#F59E0B"),
		BandGreen:  lipgloss.Color("#10B981"),
	}
)

func card(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + value)
}

// RenderSnapshot draws the summary cards, dashboard ratios and flags.
func RenderSnapshot(snap models.Snapshot) string {
	m := snap.Metrics
	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Income", fmt.Sprintf("%.2f", m.Income)),
		card("Expenses", fmt.Sprintf("%.2f", m.Expenses)),
		card("Savings", fmt.Sprintf("%.2f", m.Savings)),
	)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Savings rate", fmt.Sprintf("%.1f%%", snap.Dashboard.SavingsRate)),
		card("Daily burn", fmt.Sprintf("%.2f", snap.Dashboard.BurnRateDaily)),
		card("Runway", fmt.Sprintf("%.1f months", snap.Dashboard.RunwayMonths)),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Financial overview") + "\n")
	b.WriteString(row1 + "\n" + row2 + "\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Risk score:"), snap.Spending.RiskScore)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Confidence:"), snap.Confidence)
	fmt.Fprintf(&b, "%s %s (max score %d)\n", labelStyle.Render("Risk profile:"),
		snap.RiskProfile.Profile, snap.RiskProfile.MaxRecommendationScore)
	if len(snap.Flags) == 0 {
		fmt.Fprintf(&b, "%s none\n", labelStyle.Render("Flags:"))
	} else {
		for _, f := range snap.Flags {
			b.WriteString(flagStyle.Render("! "+string(f)) + "\n")
		}
	}
	return b.String()
}

// RenderScenario draws one what-if projection.
func RenderScenario(s models.Scenario) string {
	return fmt.Sprintf("%s %s\n%s %.2f\n%s %.1f%%\n",
		labelStyle.Render("Scenario:"), s.Scenario,
		labelStyle.Render("New savings:"), s.NewSavings,
		labelStyle.Render("New savings rate:"), s.NewSavingsRate)
}

// RenderGauge draws a 20-cell bar colored by band.
func RenderGauge(score float64) string {
	clamped := score
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 100 {
		clamped = 100
	}
	filled := int(clamped / 5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
	return lipgloss.NewStyle().Foreground(bandColors[GaugeBand(score)]).Render(bar) + fmt.Sprintf(" %.0f/100", score)
}

// RenderDecision draws an assessment, or the raw model output when it was not valid JSON.
func RenderDecision(d models.Decision) string {
	if d.Failed() {
		return errorStyle.Render(d.Error) + "\n" + d.RawResponse + "\n"
	}
	a := d.Assessment
	var b strings.Builder
	b.WriteString(titleStyle.Render(DecisionHeat(float64(a.RecommendationScore), a.ConfidenceLevel)) + "\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Recommendation:"), a.Recommendation)
	fmt.Fprintf(&b, "%s\n", RenderGauge(float64(a.RecommendationScore)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Risk level:"), a.RiskLevel)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Confidence:"), a.ConfidenceLevel)
	fmt.Fprintf(&b, "\n%s\n", a.FinancialAssessment)
	for _, r := range a.Reasoning {
		fmt.Fprintf(&b, "  • %s\n", r)
	}
	return b.String()
}
