package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/niraj8/startup-runway-estimator/internal/cli"
	"github.com/niraj8/startup-runway-estimator/internal/config"
	"github.com/niraj8/startup-runway-estimator/internal/model"
	"github.com/niraj8/startup-runway-estimator/internal/tui/components"
	"github.com/niraj8/startup-runway-estimator/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fieldKind int

const (
	fieldMoney fieldKind = iota
	fieldCount
)

// inputField is one editable number in the Inputs tab.
type inputField struct {
	section string
	label   string
	kind    fieldKind
	money   func(*config.Scenario) *float64
	count   func(*config.Scenario) *int
}

func (f inputField) display(sc *config.Scenario) string {
	if f.kind == fieldCount {
		return strconv.Itoa(*f.count(sc))
	}
	return cli.FormatMoney(*f.money(sc))
}

func (f inputField) raw(sc *config.Scenario) string {
	if f.kind == fieldCount {
		return strconv.Itoa(*f.count(sc))
	}
	return strconv.FormatFloat(*f.money(sc), 'f', -1, 64)
}

// set parses s and stores it. Negative values are rejected; acquisitions
// larger than funding are allowed and give a zero runway.
func (f inputField) set(sc *config.Scenario, s string) error {
	if f.kind == fieldCount {
		n, err := parseCount(s)
		if err != nil {
			return err
		}
		*f.count(sc) = n
		return nil
	}
	v, err := cli.ParseMoney(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	*f.money(sc) = v
	return nil
}

// step nudges a count field by delta, stopping at zero.
func (f inputField) step(sc *config.Scenario, delta int) bool {
	if f.kind != fieldCount {
		return false
	}
	p := f.count(sc)
	*p = max(0, *p+delta)
	return true
}

func buildInputFields() []inputField {
	fields := []inputField{
		{section: "Funding", label: "Total funding", money: func(s *config.Scenario) *float64 { return &s.Funding.Total }},
		{section: "Funding", label: "Cloud credits", money: func(s *config.Scenario) *float64 { return &s.Funding.CloudCredits }},
		{section: "Funding", label: "Acquisitions", money: func(s *config.Scenario) *float64 { return &s.Funding.Acquisitions }},
	}
	for _, role := range model.Roles {
		fields = append(fields,
			inputField{
				section: "Engineering",
				label:   role.Label() + " count",
				kind:    fieldCount,
				count:   func(s *config.Scenario) *int { return &s.Roster.Role(role).Count },
			},
			inputField{
				section: "Engineering",
				label:   role.Label() + " salary",
				money:   func(s *config.Scenario) *float64 { return &s.Roster.Role(role).Salary },
			},
		)
	}
	return append(fields,
		inputField{section: "Expenses", label: "Marketing / month", money: func(s *config.Scenario) *float64 { return &s.Expenses.MarketingMonthly }},
		inputField{section: "Expenses", label: "Cloud / month", money: func(s *config.Scenario) *float64 { return &s.Expenses.CloudMonthly }},
		inputField{section: "Expenses", label: "In-office employees", kind: fieldCount, count: func(s *config.Scenario) *int { return &s.Expenses.InOfficeEmployees }},
	)
}

var inputFields = buildInputFields()

// inputsState tracks the Inputs tab.
type inputsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	err     error
}

func newFieldInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 20
	ti.Width = 20
	return ti
}

func (a App) inputsStartEdit() (tea.Model, tea.Cmd) {
	f := inputFields[a.inputs.cursor]
	ti := newFieldInput()
	ti.SetValue(f.raw(&a.scenario))
	if f.kind == fieldCount {
		ti.Placeholder = "0"
	} else {
		ti.Placeholder = "amount in USD"
	}
	ti.Focus()

	a.inputs.editing = true
	a.inputs.err = nil
	a.inputs.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateInputsEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		f := inputFields[a.inputs.cursor]
		if err := f.set(&a.scenario, a.inputs.input.Value()); err != nil {
			a.inputs.err = fmt.Errorf("%s: %w", f.label, err)
			return a, nil
		}
		a.inputs.editing = false
		a.inputs.err = nil
		a.edited()
		return a, nil
	case "esc":
		a.inputs.editing = false
		a.inputs.err = nil
		return a, nil
	}

	var cmd tea.Cmd
	a.inputs.input, cmd = a.inputs.input.Update(msg)
	return a, cmd
}

func (a App) updateInputsNav(key string) (App, bool) {
	switch key {
	case "j", "down":
		if a.inputs.cursor < len(inputFields)-1 {
			a.inputs.cursor++
		}
	case "k", "up":
		if a.inputs.cursor > 0 {
			a.inputs.cursor--
		}
	case "+", "=":
		if inputFields[a.inputs.cursor].step(&a.scenario, 1) {
			a.edited()
		}
	case "-":
		if inputFields[a.inputs.cursor].step(&a.scenario, -1) {
			a.edited()
		}
	default:
		return a, false
	}
	return a, true
}

func (a App) renderInputsTab(cw int) string {
	t := theme.Active

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	labelW := 24

	var body strings.Builder
	section := ""
	for i, f := range inputFields {
		if f.section != section {
			if section != "" {
				body.WriteString("\n")
			}
			section = f.section
			body.WriteString(sectionStyle.Render(section))
			body.WriteString("\n")
		}

		label := fmt.Sprintf("%-*s ", labelW, f.label)
		switch {
		case a.inputs.editing && i == a.inputs.cursor:
			body.WriteString(markerStyle.Render("▸ "))
			body.WriteString(selectedLabelStyle.Render(label))
			body.WriteString(a.inputs.input.View())
		case i == a.inputs.cursor:
			row := markerStyle.Render("▸ ") + selectedLabelStyle.Render(label) + selectedStyle.Render(f.display(&a.scenario))
			if pad := innerW - lipgloss.Width(row); pad > 0 {
				row += selectedStyle.Render(strings.Repeat(" ", pad))
			}
			body.WriteString(row)
		default:
			body.WriteString(space.Render("  "))
			body.WriteString(labelStyle.Render(label))
			body.WriteString(valueStyle.Render(f.display(&a.scenario)))
		}
		body.WriteString("\n")
	}

	if a.inputs.err != nil {
		body.WriteString("\n")
		body.WriteString(warnStyle.Render(a.inputs.err.Error()))
		body.WriteString("\n")
	}
	body.WriteString("\n")
	body.WriteString(hintStyle.Render("[j/k] navigate  [Enter] edit  [+/-] headcount  [Esc] cancel  [w] write config"))

	// Live summary next to the form on wide terminals, below it otherwise.
	summary := a.renderInputsSummary()
	if a.isCompactLayout() {
		return components.ContentCard("Inputs", body.String(), cw) + "\n" +
			components.ContentCard("Projection", summary, cw)
	}
	halves := components.LayoutRow(cw, 2)
	return components.CardRow([]string{
		components.ContentCard("Inputs", body.String(), halves[0]),
		components.ContentCard("Projection", summary, halves[1]),
	})
}

func (a App) renderInputsSummary() string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	cost, _ := a.scenario.CostConfiguration()
	rows := []struct{ label, value string }{
		{"Starting funds", cli.FormatMoney(a.proj.InitialFunds)},
		{"Engineers", strconv.Itoa(cost.Headcount())},
		{"Month-0 burn", cli.FormatDecimal(a.proj.Burn.Total())},
		{"Runway", runwayText(a.proj)},
	}

	var b strings.Builder
	for i, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", r.label)))
		b.WriteString(valueStyle.Render(r.value))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
