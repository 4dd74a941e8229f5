package tui

import (
	"fmt"
	"strings"

	"github.com/niraj8/startup-runway-estimator/internal/cli"
	"github.com/niraj8/startup-runway-estimator/internal/model"
	"github.com/niraj8/startup-runway-estimator/internal/runway"
	"github.com/niraj8/startup-runway-estimator/internal/tui/components"
	"github.com/niraj8/startup-runway-estimator/internal/tui/theme"
)

// runwayGoalMonths is the reference length drawn on the runway gauge.
const runwayGoalMonths = 18

func runwayText(p model.Projection) string {
	if p.Truncated {
		return fmt.Sprintf("%d+ months", p.RunwayMonths())
	}
	return cli.FormatMonths(p.RunwayMonths())
}

func depletionText(p model.Projection) string {
	if d, ok := p.DepletionDate(); ok {
		return d.Format("Jan 2006")
	}
	return "beyond horizon"
}

func (a App) renderRunwayTab(cw int) string {
	t := theme.Active
	p := a.proj
	var b strings.Builder

	runwayColor := components.ColorForRunway(float64(p.RunwayMonths()) / runwayGoalMonths)
	cards := []components.Metric{
		{Label: "Runway", Value: runwayText(p), Note: "from " + p.Start.Format("Jan 2006"), Color: runwayColor},
		{Label: "Funds out", Value: depletionText(p)},
		{Label: "Starting funds", Value: cli.FormatMoney(p.InitialFunds), Note: "funding - acquisitions + credits", Color: t.Funds},
		{Label: "Month-0 burn", Value: cli.FormatDecimal(p.Burn.Total()), Note: fmt.Sprintf("grows %.0f%% monthly", (runway.GrowthRate-1)*100), Color: t.Burn},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	gaugeW := max(10, components.CardInnerWidth(cw)-24)
	b.WriteString(components.ContentCard("Runway vs goal", components.RunwayGauge(p.RunwayMonths(), runwayGoalMonths, gaugeW), cw))
	b.WriteString("\n")

	funds, burn, labels := p.Series()
	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}

	fundsTitle := "Remaining funds"
	if p.Truncated {
		fundsTitle += fmt.Sprintf(" (first %d months)", len(p.Points))
	}

	if a.isCompactLayout() {
		inner := components.CardInnerWidth(cw)
		b.WriteString(components.ContentCard(fundsTitle,
			components.BarChart(funds, labels, t.Funds, inner, chartH, cli.FormatCompact), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Monthly burn",
			components.BarChart(burn, labels, t.Burn, inner, chartH, cli.FormatCompact), cw))
		return b.String()
	}

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard(fundsTitle,
			components.BarChart(funds, labels, t.Funds, components.CardInnerWidth(halves[0]), chartH, cli.FormatCompact), halves[0]),
		components.ContentCard("Monthly burn",
			components.BarChart(burn, labels, t.Burn, components.CardInnerWidth(halves[1]), chartH, cli.FormatCompact), halves[1]),
	}))
	return b.String()
}
