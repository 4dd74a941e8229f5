package cmd

import (
	"fmt"

	"github.com/niraj8/startup-runway-estimator/internal/cli"
	"github.com/niraj8/startup-runway-estimator/internal/config"

	"github.com/spf13/cobra"
)

var saasCmd = &cobra.Command{
	Use:   "saas",
	Short: "SaaS catalog with the products this scenario pays for",
	RunE:  runSaaS,
}

var saasToggleCmd = &cobra.Command{
	Use:   "toggle PRODUCT...",
	Short: "Enable or disable products and save the config",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSaaSToggle,
}

func init() {
	saasCmd.AddCommand(saasToggleCmd)
	rootCmd.AddCommand(saasCmd)
}

func runSaaS(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc := cfg.Scenario
	headcount := sc.Roster.Headcount()
	products := sc.Products()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SAAS  charged per engineer (%d)", headcount)))
	fmt.Println()

	total := 0.0
	for _, category := range config.Categories(products) {
		rows := [][]string{}
		for _, p := range products {
			if p.Category != category {
				continue
			}
			mark, monthly := "[ ]", ""
			if sc.IsSelected(p.Name) {
				cost := p.SeatCost * float64(headcount)
				mark, monthly = "[x]", cli.FormatMoney(cost)
				total += cost
			}
			rows = append(rows, []string{mark, p.Name, cli.FormatMoney(p.SeatCost), monthly})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   category,
			Headers: []string{"", "Product", "Per seat", "Monthly"},
			Rows:    rows,
		}))
	}

	_, unknown := sc.CostConfiguration()
	warnUnknown(unknown)

	fmt.Printf("  SaaS total: %s / month\n", cli.FormatMoney(total))
	fmt.Printf("  %s\n\n", cli.RenderMuted("Run `runway saas toggle NAME` to change the selection."))
	return nil
}

func runSaaSToggle(_ *cobra.Command, args []string) error {
	cfg, err := readConfig()
	if err != nil {
		return err
	}
	products := cfg.Scenario.Products()

	for _, name := range args {
		p, ok := config.LookupProduct(products, name)
		if !ok {
			return fmt.Errorf("unknown product %q", name)
		}
		cfg.Scenario.Toggle(p.Name)
		state := "disabled"
		if cfg.Scenario.IsSelected(p.Name) {
			state = "enabled"
		}
		fmt.Printf("  %s %s\n", p.Name, state)
	}

	if err := config.SaveFile(configPath(), cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("  Saved to %s\n", configPath())
	return nil
}
