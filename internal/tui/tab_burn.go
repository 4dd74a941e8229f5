package tui

import (
	"fmt"
	"strings"

	"github.com/niraj8/startup-runway-estimator/internal/cli"
	"github.com/niraj8/startup-runway-estimator/internal/model"
	"github.com/niraj8/startup-runway-estimator/internal/tui/components"
	"github.com/niraj8/startup-runway-estimator/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

type burnGroup struct {
	name   string
	amount decimal.Decimal
	color  lipgloss.Color
}

func burnGroups(b model.BurnBreakdown) []burnGroup {
	t := theme.Active
	return []burnGroup{
		{model.GroupEngineering, b.Engineering, t.Funds},
		{model.GroupSaaS, b.SaaS, t.AccentBright},
		{model.GroupMarketing, b.Marketing, t.Yellow},
		{model.GroupOffice, b.Office, t.Orange},
		{model.GroupCloud, b.Cloud, t.Green},
	}
}

// share is part/total, or 0 when nothing is burned.
func share(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).InexactFloat64()
}

func (a App) renderBurnTab(cw int) string {
	t := theme.Active
	bd := a.proj.Burn
	total := bd.Total()

	innerW := components.CardInnerWidth(cw)
	labelW := 12
	barW := max(10, innerW-labelW-9)

	var shares strings.Builder
	for i, g := range burnGroups(bd) {
		shares.WriteString(components.ShareBar(g.name, share(g.amount, total), g.color, labelW, barW))
		if i < 4 {
			shares.WriteString("\n")
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	groupStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	costStyle := lipgloss.NewStyle().Foreground(t.Burn).Background(t.Surface)
	totalStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	ruleStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)

	amountW, shareW, groupW := 12, 7, 12
	nameW := max(12, innerW-amountW-shareW-groupW-3)

	var table strings.Builder
	table.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %-*s %*s %*s", groupW, "Group", nameW, "Item", amountW, "Monthly", shareW, "Share")))
	table.WriteString("\n")
	table.WriteString(ruleStyle.Render(strings.Repeat("─", innerW)))
	table.WriteString("\n")
	for _, l := range bd.Lines {
		table.WriteString(groupStyle.Render(fmt.Sprintf("%-*s ", groupW, l.Group)))
		table.WriteString(rowStyle.Render(fmt.Sprintf("%-*s ", nameW, truncStr(l.Name, nameW))))
		table.WriteString(costStyle.Render(fmt.Sprintf("%*s ", amountW, cli.FormatDecimal(l.Amount))))
		table.WriteString(groupStyle.Render(fmt.Sprintf("%*s", shareW, cli.FormatPercent(share(l.Amount, total)))))
		table.WriteString("\n")
	}
	table.WriteString(ruleStyle.Render(strings.Repeat("─", innerW)))
	table.WriteString("\n")
	table.WriteString(totalStyle.Render(fmt.Sprintf("%-*s %*s", groupW+nameW+1, "Total month-0 burn", amountW, cli.FormatDecimal(total))))

	return components.ContentCard("Where the money goes", shares.String(), cw) + "\n" +
		components.ContentCard(fmt.Sprintf("Line items (%d engineers)", bd.Headcount), table.String(), cw)
}
