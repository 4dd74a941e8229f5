package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"path/filepath"
	"testing"

	"github.com/niraj8/startup-runway-estimator/internal/config"
	"github.com/niraj8/startup-runway-estimator/internal/model"
	"github.com/niraj8/startup-runway-estimator/internal/runway"
	"github.com/niraj8/startup-runway-estimator/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func overrideFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addOverrideFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func pinnedProjection(t *testing.T) (model.Projection, []string) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.General.StartMonth = "2026-10"
	proj, unknown, err := projectConfig(cfg)
	require.NoError(t, err)
	return proj, unknown
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := overrideFlags(t, "--funding", "1000000", "--in-office", "3", "--start", "2027-01", "--horizon", "12")

	require.NoError(t, applyOverrides(fs, &cfg))
	assert.Equal(t, 1_000_000.0, cfg.Scenario.Funding.Total)
	assert.Equal(t, 3, cfg.Scenario.Expenses.InOfficeEmployees)
	assert.Equal(t, "2027-01", cfg.General.StartMonth)
	assert.Equal(t, 12, cfg.General.HorizonMonths)

	// Unset flags leave the file's values alone, even though their zero
	// defaults differ.
	assert.Equal(t, 50_000.0, cfg.Scenario.Funding.CloudCredits)
	assert.Equal(t, 1000.0, cfg.Scenario.Expenses.MarketingMonthly)
}

func TestApplyOverrides_ZeroIsAValue(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, applyOverrides(overrideFlags(t, "--credits", "0"), &cfg))
	assert.Zero(t, cfg.Scenario.Funding.CloudCredits)
}

func TestApplyOverrides_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative funding", []string{"--funding", "-1"}},
		{"nan funding", []string{"--funding", "NaN"}},
		{"infinite cloud", []string{"--cloud", "Inf"}},
		{"negative infinite credits", []string{"--credits", "-Inf"}},
		{"negative office", []string{"--in-office", "-2"}},
		{"negative horizon", []string{"--horizon", "-5"}},
		{"bad start", []string{"--start", "October"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			assert.Error(t, applyOverrides(overrideFlags(t, tt.args...), &cfg))
			assert.Equal(t, config.DefaultConfig(), cfg)
		})
	}
}

func TestOverrideFlags_UsageNamesBounds(t *testing.T) {
	fs := overrideFlags(t)
	for _, name := range []string{"funding", "credits", "acquisitions", "marketing", "cloud"} {
		assert.Contains(t, fs.Lookup(name).Usage, "finite, >= 0", name)
	}
	assert.Contains(t, fs.Lookup("in-office").Usage, ">= 0")
}

func TestWriteProjection_JSON(t *testing.T) {
	proj, unknown := pinnedProjection(t)

	var buf bytes.Buffer
	require.NoError(t, writeProjection(&buf, "json", proj, unknown))

	var report runway.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "2026-10", report.Start)
	assert.Equal(t, 23, report.RunwayMonths)
	assert.Equal(t, "2028-09", report.DepletesOn)
	assert.False(t, report.Truncated)
	assert.Equal(t, 4_050_000.0, report.StartingFunds)
	assert.InDelta(t, 52_581.33, report.InitialBurn, 0.01)
	assert.Len(t, report.Points, 24)
	assert.Zero(t, report.Points[23].RemainingFunds)
	assert.NotEmpty(t, report.Burn)
}

func TestWriteProjection_CSV(t *testing.T) {
	proj, _ := pinnedProjection(t)

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, proj))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 25)
	assert.Equal(t, []string{"month", "label", "remaining_funds", "monthly_burn"}, records[0])
	assert.Equal(t, []string{"0", "Oct 2026", "4050000.00", "52581.33"}, records[1])
	assert.Equal(t, "Sep 2028", records[24][1])
	assert.Equal(t, "0.00", records[24][2])
}

func TestWriteProjection_YAML(t *testing.T) {
	proj, unknown := pinnedProjection(t)

	var buf bytes.Buffer
	require.NoError(t, writeProjection(&buf, "yaml", proj, unknown))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 23, doc["runway_months"])
	assert.Equal(t, "2028-09", doc["depletes_on"])
	points, ok := doc["points"].([]any)
	require.True(t, ok)
	assert.Len(t, points, 24)
}

func TestWriteProjection_UnknownFormat(t *testing.T) {
	proj, _ := pinnedProjection(t)
	err := writeProjection(&bytes.Buffer{}, "xml", proj, nil)
	assert.ErrorContains(t, err, "unknown format")
}

func TestRunwayLabels(t *testing.T) {
	proj, _ := pinnedProjection(t)
	assert.Equal(t, "23 months", runwayLabel(proj))
	assert.Equal(t, "Sep 2028", depletionLabel(proj))

	cfg := config.DefaultConfig()
	cfg.General.StartMonth = "2026-10"
	cfg.General.HorizonMonths = 6
	short, _, err := projectConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "6+ months", runwayLabel(short))
	assert.Equal(t, "beyond horizon", depletionLabel(short))
}

func TestMonthBurn(t *testing.T) {
	proj, _ := pinnedProjection(t)
	want := 52_581.33 * math.Pow(runway.GrowthRate, 12)
	assert.InDelta(t, want, monthBurn(proj, 12), 1)

	// Past the last point the growth is extrapolated.
	cfg := config.DefaultConfig()
	cfg.General.StartMonth = "2026-10"
	cfg.General.HorizonMonths = 3
	short, _, err := projectConfig(cfg)
	require.NoError(t, err)
	assert.InDelta(t, want, monthBurn(short, 12), 1)
}

func TestSample(t *testing.T) {
	values := make([]float64, 600)
	for i := range values {
		values[i] = float64(i)
	}
	got := sample(values, 60)
	require.Len(t, got, 60)
	assert.Equal(t, 0.0, got[0])
	assert.Equal(t, 599.0, got[59])

	short := []float64{3, 2, 1}
	assert.Equal(t, short, sample(short, 60))
}

func TestShareText(t *testing.T) {
	assert.Equal(t, "25.0%", shareText(decimal.NewFromInt(1), decimal.NewFromInt(4)))
	assert.Empty(t, shareText(decimal.NewFromInt(1), decimal.Zero))
}

func TestWriteScenarioList(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "scenarios.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	var buf bytes.Buffer
	require.NoError(t, writeScenarioList(&buf, st))
	assert.Contains(t, buf.String(), "No saved scenarios")

	proj, _ := pinnedProjection(t)
	_, err = st.Save("base", config.DefaultScenario(), proj)
	require.NoError(t, err)
	_, err = st.Save("lean", config.DefaultScenario(), proj)
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, writeScenarioList(&buf, st))
	out := buf.String()
	assert.Contains(t, out, "base")
	assert.Contains(t, out, "lean")
	assert.Contains(t, out, "23 months")
	assert.Contains(t, out, "2 scenarios saved")
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"serve", "--detach", "--addr", ":9000", "--detach=true"})
	assert.Equal(t, []string{"serve", "--addr", ":9000"}, got)
}

func TestPIDRoundTrip(t *testing.T) {
	path := t.TempDir() + "/runwayd.pid"
	require.NoError(t, writePID(path, 4242))

	pid, err := readPID(path)
	require.NoError(t, err)
	assert.Equal(t, 4242, pid)

	_, err = readPID(t.TempDir() + "/missing.pid")
	assert.Error(t, err)
	assert.NoError(t, ensureServeNotRunning(t.TempDir()+"/missing.pid"))
}
