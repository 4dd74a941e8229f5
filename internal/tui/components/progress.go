package components

import (
	"fmt"

	"github.com/niraj8/startup-runway-estimator/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForRunway returns red/orange/yellow/green as runway approaches its goal.
func ColorForRunway(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 1:
		return t.Green
	case pct >= 0.66:
		return t.Yellow
	case pct >= 0.33:
		return t.Orange
	default:
		return t.Red
	}
}

func clampPct(pct float64) float64 {
	if pct < 0 || pct != pct {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

func solidBar(color lipgloss.Color, width int) progress.Model {
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(theme.Active.TextDim)
	return bar
}

// RunwayGauge renders runway length against a goal, e.g. 23 of 18 months.
func RunwayGauge(months, goal, barWidth int) string {
	t := theme.Active
	if barWidth < 4 {
		barWidth = 4
	}

	pct := 0.0
	if goal > 0 {
		pct = float64(months) / float64(goal)
	}
	color := ColorForRunway(pct)
	pct = clampPct(pct)

	valueStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return solidBar(color, barWidth).ViewAs(pct) +
		spaceStyle.Render(" ") +
		valueStyle.Render(fmt.Sprintf("%d", months)) +
		labelStyle.Render(fmt.Sprintf(" / %d mo goal", goal))
}

// ShareBar renders a labeled bar for one part of a whole.
func ShareBar(label string, share float64, color lipgloss.Color, labelW, barWidth int) string {
	t := theme.Active
	share = clampPct(share)
	if barWidth < 4 {
		barWidth = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		solidBar(color, barWidth).ViewAs(share) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", share*100))
}
