package tui

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/niraj8/startup-runway-estimator/internal/config"
	"github.com/niraj8/startup-runway-estimator/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

var testStart = time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) App {
	t.Helper()
	a := NewApp(Options{
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Config:     config.DefaultConfig(),
		Start:      testStart,
	})
	return send(a, tea.WindowSizeMsg{Width: 140, Height: 50})
}

func send(a App, msgs ...tea.Msg) App {
	for _, msg := range msgs {
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func burn(a App) float64 {
	return a.proj.Burn.Total().InexactFloat64()
}

func TestNewAppProjectsDefaultScenario(t *testing.T) {
	a := newTestApp(t)

	if got := a.proj.RunwayMonths(); got != 23 {
		t.Fatalf("RunwayMonths = %d, want 23", got)
	}
	if math.Abs(burn(a)-52_581.33) > 0.01 {
		t.Fatalf("month-0 burn = %.2f, want 52581.33", burn(a))
	}
	if a.dirty {
		t.Fatal("fresh app should not be dirty")
	}
}

func TestEditFundingRecomputes(t *testing.T) {
	a := newTestApp(t)
	a = send(a, runes("i"), enter)
	if !a.inputs.editing {
		t.Fatal("enter on the Inputs tab should start editing")
	}

	a.inputs.input.SetValue("$1,000,000")
	a = send(a, enter)

	if a.inputs.editing {
		t.Fatal("valid input should end editing")
	}
	if a.scenario.Funding.Total != 1_000_000 {
		t.Fatalf("funding = %v, want 1000000", a.scenario.Funding.Total)
	}
	if a.proj.InitialFunds != 1_050_000 {
		t.Fatalf("starting funds = %v, want 1050000", a.proj.InitialFunds)
	}
	if a.proj.RunwayMonths() >= 23 {
		t.Fatalf("runway %d did not shrink", a.proj.RunwayMonths())
	}
	if !a.dirty {
		t.Fatal("edit should mark the scenario dirty")
	}
}

func TestInvalidInputKeepsEditing(t *testing.T) {
	a := newTestApp(t)
	a = send(a, runes("i"), enter)
	a.inputs.input.SetValue("lots")
	a = send(a, enter)

	if !a.inputs.editing {
		t.Fatal("invalid input should keep the field open")
	}
	if a.inputs.err == nil {
		t.Fatal("invalid input should set an error")
	}
	if a.scenario.Funding.Total != 4_000_000 {
		t.Fatalf("funding changed to %v", a.scenario.Funding.Total)
	}

	a = send(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.inputs.editing || a.inputs.err != nil {
		t.Fatal("esc should cancel the edit and clear the error")
	}
}

func TestNegativeAmountRejected(t *testing.T) {
	a := newTestApp(t)
	a = send(a, runes("i"), enter)
	a.inputs.input.SetValue("-5")
	a = send(a, enter)

	if a.inputs.err == nil || !strings.Contains(a.inputs.err.Error(), "negative") {
		t.Fatalf("err = %v, want a negative-amount error", a.inputs.err)
	}
}

func TestHeadcountStep(t *testing.T) {
	a := newTestApp(t)
	a = send(a, runes("i"), runes("j"), runes("j"), runes("j"))
	if got := inputFields[a.inputs.cursor].label; got != "Junior Onshore count" {
		t.Fatalf("cursor on %q, want Junior Onshore count", got)
	}

	a = send(a, runes("+"))
	if a.scenario.Roster.JuniorOnshore.Count != 2 {
		t.Fatalf("junior onshore = %d, want 2", a.scenario.Roster.JuniorOnshore.Count)
	}
	// One more engineer adds a salary and a seat of every product.
	if math.Abs(burn(a)-57_612.33) > 0.01 {
		t.Fatalf("burn = %.2f, want 57612.33", burn(a))
	}

	a = send(a, runes("-"), runes("-"), runes("-"))
	if a.scenario.Roster.JuniorOnshore.Count != 0 {
		t.Fatalf("headcount went below zero: %d", a.scenario.Roster.JuniorOnshore.Count)
	}
}

func TestSaaSToggle(t *testing.T) {
	a := newTestApp(t)
	before := a.proj.Burn.SaaS.InexactFloat64()

	a = send(a, runes("s"), tea.KeyMsg{Type: tea.KeySpace})
	if a.scenario.IsSelected("Slack") {
		t.Fatal("space should deselect Slack")
	}
	if got := a.proj.Burn.SaaS.InexactFloat64(); before-got != 64 {
		t.Fatalf("SaaS burn %v -> %v, want a drop of 64", before, got)
	}

	a = send(a, tea.KeyMsg{Type: tea.KeySpace})
	if !a.scenario.IsSelected("Slack") {
		t.Fatal("second toggle should reselect Slack")
	}
}

func TestWriteSavesScenario(t *testing.T) {
	a := newTestApp(t)
	a = send(a, runes("i"), runes("j"), runes("j"), runes("j"), runes("+"))
	if !a.dirty {
		t.Fatal("headcount change should mark the scenario dirty")
	}
	a = send(a, runes("w"))

	if a.dirty || a.statusErr {
		t.Fatalf("save left dirty=%v statusErr=%v (%s)", a.dirty, a.statusErr, a.status)
	}

	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Scenario.Roster.JuniorOnshore.Count != 2 {
		t.Fatalf("saved junior onshore = %d, want 2", cfg.Scenario.Roster.JuniorOnshore.Count)
	}
}

func TestTabKeys(t *testing.T) {
	a := newTestApp(t)
	for i, tab := range components.Tabs {
		a = send(a, runes(string(tab.Key)))
		if a.activeTab != i {
			t.Fatalf("key %q -> tab %d, want %d", tab.Key, a.activeTab, i)
		}
	}
	a = send(a, tea.KeyMsg{Type: tea.KeyRight})
	if a.activeTab != tabRunway {
		t.Fatalf("right from last tab -> %d, want wrap to 0", a.activeTab)
	}
}

func TestHelpOverlay(t *testing.T) {
	a := newTestApp(t)
	a = send(a, runes("?"))
	if !a.showHelp || !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Fatal("? should show help")
	}
	a = send(a, runes("x"))
	if a.showHelp {
		t.Fatal("any key should dismiss help")
	}
}

func TestViewRendersEachTab(t *testing.T) {
	a := newTestApp(t)

	want := map[int]string{
		tabRunway: "23 months",
		tabInputs: "Total funding",
		tabSaaS:   "Google Workspace",
		tabBurn:   "Total month-0 burn",
	}
	for tab, text := range want {
		a.activeTab = tab
		view := a.View()
		if !strings.Contains(view, text) {
			t.Errorf("tab %d view missing %q", tab, text)
		}
		if got := lipgloss.Height(view); got != a.height {
			t.Errorf("tab %d view is %d lines, want %d", tab, got, a.height)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := send(newTestApp(t), tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(a.View(), "too narrow") {
		t.Fatal("narrow terminal should show a warning")
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("x past the last tab -> %d, want -1", got)
		}
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	vals := NewSetupValues(cfg)
	if vals.Funding != "4,000,000" || vals.Engineers != "8" {
		t.Fatalf("prefill = %+v", vals)
	}

	vals.Funding = "2,500,000"
	vals.Engineers = "3"
	vals.InOffice = "2"
	vals.Theme = "terminal"
	if err := vals.Apply(&cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	sc := cfg.Scenario
	if sc.Funding.Total != 2_500_000 {
		t.Fatalf("funding = %v", sc.Funding.Total)
	}
	if sc.Roster.Headcount() != 3 || sc.Roster.JuniorOnshore.Count != 3 {
		t.Fatalf("roster = %+v", sc.Roster)
	}
	if sc.Roster.SeniorOnshore.Salary != 170_000 {
		t.Fatal("salaries should be kept when headcount changes")
	}
	if sc.Expenses.InOfficeEmployees != 2 || cfg.Appearance.Theme != "terminal" {
		t.Fatalf("expenses = %+v theme = %q", sc.Expenses, cfg.Appearance.Theme)
	}
}

func TestSetupValuesApplyKeepsRosterWhenUnchanged(t *testing.T) {
	cfg := config.DefaultConfig()
	vals := NewSetupValues(cfg)
	if err := vals.Apply(&cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.Scenario.Roster != config.DefaultScenario().Roster {
		t.Fatalf("roster changed: %+v", cfg.Scenario.Roster)
	}
}
