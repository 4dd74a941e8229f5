// Package tui provides the interactive Bubble Tea runway estimator.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/niraj8/startup-runway-estimator/internal/config"
	"github.com/niraj8/startup-runway-estimator/internal/model"
	"github.com/niraj8/startup-runway-estimator/internal/runway"
	"github.com/niraj8/startup-runway-estimator/internal/tui/components"
	"github.com/niraj8/startup-runway-estimator/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Options configures a new App.
type Options struct {
	// ConfigPath is where `w` writes the scenario.
	ConfigPath string
	Config     config.Config
	// Start and HorizonMonths are passed to every projection.
	Start         time.Time
	HorizonMonths int
	// NeedSetup shows the first-run form before the estimator.
	NeedSetup bool
}

// App is the root Bubble Tea model.
type App struct {
	cfg        config.Config
	configPath string

	// scenario is the working copy edited in the Inputs and SaaS tabs.
	scenario config.Scenario
	start    time.Time
	horizon  int

	proj    model.Projection
	unknown []string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	inputs inputsState
	saas   saasState

	dirty     bool
	status    string
	statusErr bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

const (
	tabRunway = iota
	tabInputs
	tabSaaS
	tabBurn
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	a := App{
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		scenario:   opts.Config.Scenario.Clone(),
		start:      runway.MonthStart(opts.Start),
		horizon:    opts.HorizonMonths,
		needSetup:  opts.NeedSetup,
		inputs:     inputsState{input: newFieldInput()},
	}
	if opts.Start.IsZero() {
		a.start = runway.MonthStart(time.Now())
	}
	if a.configPath == "" {
		a.configPath = config.Path()
	}
	if a.needSetup {
		vals := NewSetupValues(a.cfg)
		a.setupVals = &vals
		a.setupForm = NewSetupForm(a.setupVals, a.configPath)
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// recompute reprojects the working scenario. It runs after every edit.
func (a *App) recompute() {
	cost, unknown := a.scenario.CostConfiguration()
	a.proj = runway.Project(cost, runway.Options{Start: a.start, HorizonMonths: a.horizon})
	a.unknown = unknown

	if n := len(saasOrder(a.scenario.Products())); a.saas.cursor >= n {
		a.saas.cursor = max(0, n-1)
	}
}

// edited marks the scenario as changed and reprojects it.
func (a *App) edited() {
	a.recompute()
	a.dirty = true
	a.status = ""
	a.statusErr = false
}

// save writes the working scenario to the config file.
func (a *App) save() {
	a.cfg.Scenario = a.scenario.Clone()
	if err := config.SaveFile(a.configPath, a.cfg); err != nil {
		a.status = "Save failed: " + err.Error()
		a.statusErr = true
		return
	}
	a.dirty = false
	a.status = "Saved to " + a.configPath
	a.statusErr = false
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil {
			return a, nil
		}
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		case tea.MouseButtonWheelUp:
			a, _ = a.updateTabNav("k")
		case tea.MouseButtonWheelDown:
			a, _ = a.updateTabNav("j")
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup form intercepts all keys
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.activeTab == tabInputs && a.inputs.editing {
			return a.updateInputsEdit(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if next, handled := a.updateTabNav(key); handled {
			return next, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "w":
			a.save()
			return a, nil
		case "enter":
			if a.activeTab == tabInputs {
				return a.inputsStartEdit()
			}
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(msg.Runes) == 1 {
				if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.inputs.editing {
		var cmd tea.Cmd
		a.inputs.input, cmd = a.inputs.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// updateTabNav routes list keys to the active tab.
func (a App) updateTabNav(key string) (App, bool) {
	switch a.activeTab {
	case tabInputs:
		return a.updateInputsNav(key)
	case tabSaaS:
		return a.updateSaaSNav(key)
	}
	return a, false
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.finishSetup()
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a *App) finishSetup() {
	a.needSetup = false
	a.setupForm = nil

	if err := a.setupVals.Apply(&a.cfg); err != nil {
		a.status = "Setup: " + err.Error()
		a.statusErr = true
		return
	}
	theme.SetActive(a.cfg.Appearance.Theme)
	a.scenario = a.cfg.Scenario.Clone()
	a.recompute()

	if a.setupVals.Save {
		a.save()
	} else {
		a.dirty = true
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  runway needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"r i s b", "Jump to tab"},
			{"← → Tab", "Previous / Next tab"},
			{"j k", "Move through inputs and products"},
		}},
		{"Editing", []struct{ key, desc string }{
			{"Enter", "Edit the selected input"},
			{"+ -", "Change a headcount by one"},
			{"Space", "Toggle the selected product"},
			{"Esc", "Cancel an edit"},
		}},
		{"General", []struct{ key, desc string }{
			{"w", "Write inputs to " + a.configPath},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + scenario line
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	dirtyStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	info := pillStyle.Render(" from ") + accentStyle.Render(a.start.Format("Jan 2006"))
	if a.horizon > 0 {
		info += pillStyle.Render(" │ horizon ") + accentStyle.Render(fmt.Sprintf("%d mo", a.horizon))
	}
	if a.dirty {
		info += pillStyle.Render(" │ ") + dirtyStyle.Render("● unsaved")
	}
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(info)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.status, a.statusErr)

	// 3. Content zone height
	contentH := max(minContentHeight, h-lipgloss.Height(header)-lipgloss.Height(statusBar))

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabRunway:
		content = a.renderRunwayTab(cw)
	case tabInputs:
		content = a.renderInputsTab(cw)
	case tabSaaS:
		content = a.renderSaaSTab(cw)
	case tabBurn:
		content = a.renderBurnTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes use the same widths as RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}
