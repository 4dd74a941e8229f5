package cmd

import (
	"fmt"
	"strings"

	"github.com/niraj8/startup-runway-estimator/internal/cli"
	"github.com/niraj8/startup-runway-estimator/internal/model"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", configPath())
	if configExists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.StartMonth != "" {
		fmt.Printf("    Start month:   %s\n", cfg.General.StartMonth)
	} else {
		fmt.Println("    Start month:   current month")
	}
	if cfg.General.HorizonMonths > 0 {
		fmt.Printf("    Horizon:       %d months\n", cfg.General.HorizonMonths)
	} else {
		fmt.Println("    Horizon:       600 months")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	sc := cfg.Scenario
	fmt.Println("  [Funding]")
	fmt.Printf("    Total:         %s\n", cli.FormatMoney(sc.Funding.Total))
	fmt.Printf("    Cloud credits: %s\n", cli.FormatMoney(sc.Funding.CloudCredits))
	fmt.Printf("    Acquisitions:  %s\n", cli.FormatMoney(sc.Funding.Acquisitions))
	fmt.Println()

	fmt.Println("  [Roster]")
	for _, role := range model.Roles {
		rc := sc.Roster.Role(role)
		fmt.Printf("    %-16s %3d x %s\n", role.Label()+":", rc.Count, cli.FormatMoney(rc.Salary))
	}
	fmt.Println()

	fmt.Println("  [SaaS]")
	fmt.Printf("    Selected: %s\n", strings.Join(sc.SaaS.Selected, ", "))
	if len(sc.SaaS.Custom) > 0 {
		fmt.Printf("    Custom products: %d\n", len(sc.SaaS.Custom))
	}
	fmt.Println()

	fmt.Println("  [Expenses]")
	fmt.Printf("    Marketing:     %s / month\n", cli.FormatMoney(sc.Expenses.MarketingMonthly))
	fmt.Printf("    Cloud:         %s / month\n", cli.FormatMoney(sc.Expenses.CloudMonthly))
	fmt.Printf("    In office:     %d\n", sc.Expenses.InOfficeEmployees)
	fmt.Println()

	fmt.Println("  Run `runway setup` to reconfigure.")
	return nil
}
