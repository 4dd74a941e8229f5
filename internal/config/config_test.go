package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/niraj8/startup-runway-estimator/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.General.HorizonMonths = 120
	cfg.General.StartMonth = "2027-03"
	cfg.Scenario.Funding.Acquisitions = 250_000
	cfg.Scenario.SaaS.Custom = []Product{{Name: "Figma", Category: "Design", SeatCost: 12}}
	cfg.Scenario.Toggle("Figma")

	require.NoError(t, SaveFile(path, cfg))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[scenario.funding]\ntotal = 1000000\n\n[scenario.expenses]\nin_office_employees = 4\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1_000_000.0, cfg.Scenario.Funding.Total)
	assert.Equal(t, 50_000.0, cfg.Scenario.Funding.CloudCredits)
	assert.Equal(t, 4, cfg.Scenario.Expenses.InOfficeEmployees)
	assert.Equal(t, 500.0, cfg.Scenario.Expenses.CloudMonthly)
	assert.Equal(t, "sunset", cfg.Appearance.Theme)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scenario\ntotal = "), 0o600))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestLoadFile_NonFiniteAmounts(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"nan funding", "[scenario.funding]\ntotal = nan\n", "funding.total is not a finite number"},
		{"inf cloud", "[scenario.expenses]\ncloud_monthly = inf\n", "expenses.cloud_monthly is not a finite number"},
		{"negative inf salary", "[scenario.roster.senior_offshore]\nsalary = -inf\n", "roster.senior_offshore.salary is not a finite number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o600))

			var err error
			assert.NotPanics(t, func() { _, err = LoadFile(path) })
			assert.ErrorContains(t, err, "parsing config")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestScenario_Validate(t *testing.T) {
	assert.NoError(t, DefaultScenario().Validate())

	s := DefaultScenario()
	s.SaaS.Custom = []Product{{Name: "Figma", Category: "Design", SeatCost: math.Inf(1)}}
	assert.ErrorContains(t, s.Validate(), "saas.custom.Figma.seat_cost")
}

func TestScenario_CostConfigurationNonFinite(t *testing.T) {
	s := DefaultScenario()
	s.Funding.Total = math.NaN()
	s.Expenses.MarketingMonthly = math.Inf(1)
	s.Roster.JuniorOnshore.Salary = math.Inf(-1)

	var cfg model.CostConfiguration
	require.NotPanics(t, func() { cfg, _ = s.CostConfiguration() })
	assert.True(t, cfg.TotalFunding.IsZero())
	assert.True(t, cfg.MarketingMonthly.IsZero())
	assert.Equal(t, 50_000.0, cfg.StartingFunds().InexactFloat64())

	junior := cfg.Roster[model.Role{Seniority: model.Junior, Location: model.Onshore}]
	assert.True(t, junior.AnnualSalary.IsZero())
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv("RUNWAY_CONFIG", "/tmp/elsewhere.toml")
	assert.Equal(t, "/tmp/elsewhere.toml", Path())

	t.Setenv("RUNWAY_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "runway", "config.toml"), Path())
}

func TestScenario_CostConfiguration(t *testing.T) {
	s := DefaultScenario()
	s.SaaS.Selected = append(s.SaaS.Selected, "slack", "Fax Machine")

	cfg, unknown := s.CostConfiguration()

	assert.Equal(t, []string{"Fax Machine"}, unknown)
	assert.Equal(t, 8, cfg.Headcount())
	require.Len(t, cfg.Subscriptions, 4, "duplicate Slack is charged once")
	assert.Equal(t, "Google Workspace", cfg.Subscriptions[3].Name)
	assert.Equal(t, 4_050_000.0, cfg.StartingFunds().InexactFloat64())

	senior := cfg.Roster[model.Role{Seniority: model.Senior, Location: model.Onshore}]
	assert.Equal(t, 2, senior.Headcount)
	assert.Equal(t, 170_000.0, senior.AnnualSalary.InexactFloat64())
}

func TestScenario_Toggle(t *testing.T) {
	s := DefaultScenario()
	orig := s.Clone()

	s.Toggle("Zoom")
	assert.True(t, s.IsSelected("zoom"))

	s.Toggle("Slack")
	assert.False(t, s.IsSelected("Slack"))
	assert.True(t, orig.IsSelected("Slack"), "clone must not share the selection slice")
}

func TestCatalog(t *testing.T) {
	products := Catalog([]Product{
		{Name: "slack", Category: "Messaging", SeatCost: 9},
		{Name: "Figma", Category: "Design", SeatCost: 12},
	})

	assert.Len(t, products, len(DefaultProducts)+1)

	p, ok := LookupProduct(products, " SLACK ")
	require.True(t, ok)
	assert.Equal(t, 9.0, p.SeatCost)

	_, ok = LookupProduct(products, "Notion")
	assert.False(t, ok)

	cats := Categories(DefaultProducts)
	assert.Equal(t, "Messaging", cats[0])
	assert.Len(t, cats, 8)
	assert.Equal(t, "Design", Categories(products)[8])
}

func TestParseStartMonth(t *testing.T) {
	got, err := ParseStartMonth("2027-03")
	require.NoError(t, err)
	assert.Equal(t, 2027, got.Year())
	assert.Equal(t, 3, int(got.Month()))

	zero, err := ParseStartMonth("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = ParseStartMonth("March")
	assert.Error(t, err)
}
