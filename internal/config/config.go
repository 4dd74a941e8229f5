// Package config loads and saves the runway configuration file and converts
// it into projection inputs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// StartMonthLayout is the format of general.start_month and --start.
const StartMonthLayout = "2006-01"

// Config holds all runway configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Scenario   Scenario         `toml:"scenario"`
}

// GeneralConfig holds projection preferences.
type GeneralConfig struct {
	HorizonMonths int    `toml:"horizon_months,omitempty"`
	StartMonth    string `toml:"start_month,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// Scenario is the editable set of projection inputs.
type Scenario struct {
	Funding  FundingConfig  `toml:"funding" yaml:"funding" json:"funding"`
	Roster   RosterConfig   `toml:"roster" yaml:"roster" json:"roster"`
	SaaS     SaaSConfig     `toml:"saas" yaml:"saas" json:"saas"`
	Expenses ExpensesConfig `toml:"expenses" yaml:"expenses" json:"expenses"`
}

// FundingConfig holds the one-off money in and out.
type FundingConfig struct {
	Total        float64 `toml:"total" yaml:"total" json:"total"`
	CloudCredits float64 `toml:"cloud_credits" yaml:"cloud_credits" json:"cloud_credits"`
	Acquisitions float64 `toml:"acquisitions" yaml:"acquisitions" json:"acquisitions"`
}

// RoleConfig is the headcount and annual salary for one roster category.
type RoleConfig struct {
	Count  int     `toml:"count" yaml:"count" json:"count"`
	Salary float64 `toml:"salary" yaml:"salary" json:"salary"`
}

// RosterConfig holds the four engineering categories.
type RosterConfig struct {
	JuniorOnshore  RoleConfig `toml:"junior_onshore" yaml:"junior_onshore" json:"junior_onshore"`
	SeniorOnshore  RoleConfig `toml:"senior_onshore" yaml:"senior_onshore" json:"senior_onshore"`
	JuniorOffshore RoleConfig `toml:"junior_offshore" yaml:"junior_offshore" json:"junior_offshore"`
	SeniorOffshore RoleConfig `toml:"senior_offshore" yaml:"senior_offshore" json:"senior_offshore"`
}

// SaaSConfig holds the enabled products and any custom catalog entries.
type SaaSConfig struct {
	Selected []string  `toml:"selected" yaml:"selected" json:"selected"`
	Custom   []Product `toml:"custom,omitempty" yaml:"custom,omitempty" json:"custom,omitempty"`
}

// ExpensesConfig holds the flat monthly expenses.
type ExpensesConfig struct {
	MarketingMonthly  float64 `toml:"marketing_monthly" yaml:"marketing_monthly" json:"marketing_monthly"`
	CloudMonthly      float64 `toml:"cloud_monthly" yaml:"cloud_monthly" json:"cloud_monthly"`
	InOfficeEmployees int     `toml:"in_office_employees" yaml:"in_office_employees" json:"in_office_employees"`
}

// DefaultScenario returns the starter plan shown on first launch.
func DefaultScenario() Scenario {
	selected := make([]string, len(DefaultSelected))
	copy(selected, DefaultSelected)

	return Scenario{
		Funding: FundingConfig{
			Total:        4_000_000,
			CloudCredits: 50_000,
		},
		Roster: RosterConfig{
			JuniorOnshore:  RoleConfig{Count: 1, Salary: 60_000},
			SeniorOnshore:  RoleConfig{Count: 2, Salary: 170_000},
			JuniorOffshore: RoleConfig{Count: 3, Salary: 30_000},
			SeniorOffshore: RoleConfig{Count: 2, Salary: 60_000},
		},
		SaaS: SaaSConfig{Selected: selected},
		Expenses: ExpensesConfig{
			MarketingMonthly: 1000,
			CloudMonthly:     500,
		},
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Appearance: AppearanceConfig{
			Theme: "sunset",
		},
		Scenario: DefaultScenario(),
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "runway")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "runway")
}

// Path returns the config file path. RUNWAY_CONFIG takes precedence over the
// XDG location.
func Path() string {
	if p := os.Getenv("RUNWAY_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// LoadFile reads the config file at path, returning defaults if it doesn't
// exist. Sections missing from the file keep their defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the local user
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Scenario.Validate(); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveFile writes the config to path, creating parent directories.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is chosen by the local user
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ParseStartMonth parses a "YYYY-MM" month. An empty string returns the zero
// time, which the projection treats as the current month.
func ParseStartMonth(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(StartMonthLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start month %q (want YYYY-MM): %w", s, err)
	}
	return t, nil
}
