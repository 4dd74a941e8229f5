// Package cmd implements the runway CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/niraj8/startup-runway-estimator/internal/cli"
	"github.com/niraj8/startup-runway-estimator/internal/config"
	"github.com/niraj8/startup-runway-estimator/internal/model"
	"github.com/niraj8/startup-runway-estimator/internal/runway"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	flagConfig string
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "runway",
	Short: "Startup runway estimator",
	Long: "Estimate how many months a startup's funding lasts given its team, SaaS\n" +
		"subscriptions and monthly expenses, with costs compounding 10% a month.",
	SilenceUsage: true,
	RunE:         runProject,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default $RUNWAY_CONFIG or ~/.config/runway/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	addOverrideFlags(rootCmd.PersistentFlags())
}

// addOverrideFlags registers the per-run input overrides. They are read back
// by name in applyOverrides and only take effect when set.
func addOverrideFlags(fs *pflag.FlagSet) {
	fs.Int("horizon", 0, "Stop the projection after this many months (0 = 600)")
	fs.String("start", "", "First projected month, YYYY-MM (default current month)")
	fs.Float64("funding", 0, "Override total funding (finite, >= 0)")
	fs.Float64("credits", 0, "Override cloud credits (finite, >= 0)")
	fs.Float64("acquisitions", 0, "Override up-front acquisitions (finite, >= 0)")
	fs.Float64("marketing", 0, "Override monthly marketing spend (finite, >= 0)")
	fs.Float64("cloud", 0, "Override monthly cloud spend (finite, >= 0)")
	fs.Int("in-office", 0, "Override the number of in-office employees (>= 0)")
}

// applyOverrides copies every override flag that was set on the command line
// into cfg.
func applyOverrides(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("start") {
		start, _ := fs.GetString("start")
		if _, err := config.ParseStartMonth(start); err != nil {
			return err
		}
		cfg.General.StartMonth = start
	}
	if fs.Changed("horizon") {
		h, _ := fs.GetInt("horizon")
		if h < 0 {
			return errors.New("--horizon must not be negative")
		}
		cfg.General.HorizonMonths = h
	}

	sc := &cfg.Scenario
	money := []struct {
		name string
		dst  *float64
	}{
		{"funding", &sc.Funding.Total},
		{"credits", &sc.Funding.CloudCredits},
		{"acquisitions", &sc.Funding.Acquisitions},
		{"marketing", &sc.Expenses.MarketingMonthly},
		{"cloud", &sc.Expenses.CloudMonthly},
	}
	for _, m := range money {
		if !fs.Changed(m.name) {
			continue
		}
		v, _ := fs.GetFloat64(m.name)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("--%s must be a finite amount", m.name)
		}
		if v < 0 {
			return fmt.Errorf("--%s must not be negative", m.name)
		}
		*m.dst = v
	}

	if fs.Changed("in-office") {
		n, _ := fs.GetInt("in-office")
		if n < 0 {
			return errors.New("--in-office must not be negative")
		}
		sc.Expenses.InOfficeEmployees = n
	}
	return nil
}

// configPath is the file every command reads and `w`/setup write.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

func configExists() bool {
	_, err := os.Stat(configPath())
	return err == nil
}

// readConfig loads the config file as stored, without command-line overrides.
func readConfig() (config.Config, error) {
	path := configPath()
	cfg, err := config.LoadFile(path)
	if err != nil {
		return cfg, err
	}
	if !flagQuiet && !configExists() {
		fmt.Fprintf(os.Stderr, "  No config at %s, using the default scenario\n", path)
	}
	return cfg, nil
}

// loadConfig is the shared input path used by all commands: the config file
// plus any override flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := readConfig()
	if err != nil {
		return cfg, err
	}
	if err := applyOverrides(cmd.Flags(), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// projectConfig runs the projection for cfg. The second result lists
// selected products missing from the catalog.
func projectConfig(cfg config.Config) (model.Projection, []string, error) {
	start, err := config.ParseStartMonth(cfg.General.StartMonth)
	if err != nil {
		return model.Projection{}, nil, err
	}
	cost, unknown := cfg.Scenario.CostConfiguration()
	proj := runway.Project(cost, runway.Options{Start: start, HorizonMonths: cfg.General.HorizonMonths})
	return proj, unknown, nil
}

// warnUnknown reports selected products that are not in the catalog.
func warnUnknown(unknown []string) {
	for _, name := range unknown {
		fmt.Fprintf(os.Stderr, "  %s\n", cli.RenderWarning(fmt.Sprintf("SaaS product %q is not in the catalog and was ignored", name)))
	}
}
