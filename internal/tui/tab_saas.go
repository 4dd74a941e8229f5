package tui

import (
	"fmt"
	"strings"

	"github.com/niraj8/startup-runway-estimator/internal/cli"
	"github.com/niraj8/startup-runway-estimator/internal/config"
	"github.com/niraj8/startup-runway-estimator/internal/tui/components"
	"github.com/niraj8/startup-runway-estimator/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// saasState tracks the SaaS tab cursor.
type saasState struct {
	cursor int
}

// saasOrder lists products grouped by category, categories in catalog order.
func saasOrder(products []config.Product) []config.Product {
	out := make([]config.Product, 0, len(products))
	for _, cat := range config.Categories(products) {
		for _, p := range products {
			if p.Category == cat {
				out = append(out, p)
			}
		}
	}
	return out
}

func (a App) updateSaaSNav(key string) (App, bool) {
	products := saasOrder(a.scenario.Products())
	switch key {
	case "j", "down":
		if a.saas.cursor < len(products)-1 {
			a.saas.cursor++
		}
	case "k", "up":
		if a.saas.cursor > 0 {
			a.saas.cursor--
		}
	case " ", "enter":
		if a.saas.cursor < len(products) {
			a.scenario.Toggle(products[a.saas.cursor].Name)
			a.edited()
		}
	default:
		return a, false
	}
	return a, true
}

func (a App) renderSaaSTab(cw int) string {
	t := theme.Active

	catStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	offStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	onStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	costStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	cursorStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	products := saasOrder(a.scenario.Products())
	headcount := a.proj.Burn.Headcount
	innerW := components.CardInnerWidth(cw)

	var body strings.Builder
	category := ""
	for i, p := range products {
		if p.Category != category {
			if category != "" {
				body.WriteString("\n")
			}
			category = p.Category
			body.WriteString(catStyle.Render(category))
			body.WriteString("\n")
		}

		selected := a.scenario.IsSelected(p.Name)
		mark := offStyle.Render("[ ]")
		name := offStyle.Render(fmt.Sprintf(" %-18s", p.Name))
		if selected {
			mark = onStyle.Render("[x]")
			name = nameStyle.Render(fmt.Sprintf(" %-18s", p.Name))
		}
		cost := fmt.Sprintf("%s/seat  %s/mo", cli.FormatMoney(p.SeatCost), cli.FormatMoney(p.SeatCost*float64(headcount)))

		if i == a.saas.cursor {
			row := cursorStyle.Render(fmt.Sprintf("▸ %s %-18s %s", markText(selected), p.Name, cost))
			if pad := innerW - lipgloss.Width(row); pad > 0 {
				row += cursorStyle.Render(strings.Repeat(" ", pad))
			}
			body.WriteString(row)
		} else {
			body.WriteString(space.Render("  ") + mark + name + space.Render(" ") + costStyle.Render(cost))
		}
		body.WriteString("\n")
	}

	if len(a.unknown) > 0 {
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		body.WriteString("\n")
		body.WriteString(warn.Render("Not in catalog, ignored: " + strings.Join(a.unknown, ", ")))
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(hintStyle.Render(fmt.Sprintf("[j/k] navigate  [Space] toggle  charged per engineer (%d)", headcount)))

	title := fmt.Sprintf("SaaS (%s / month)", cli.FormatDecimal(a.proj.Burn.SaaS))
	return components.ContentCard(title, body.String(), cw)
}

func markText(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
