package cmd

import (
	"fmt"

	"github.com/niraj8/startup-runway-estimator/internal/cli"
	"github.com/niraj8/startup-runway-estimator/internal/model"
	"github.com/niraj8/startup-runway-estimator/internal/runway"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var burnCmd = &cobra.Command{
	Use:   "burn",
	Short: "Month-0 burn broken down by line item",
	RunE:  runBurn,
}

func init() {
	rootCmd.AddCommand(burnCmd)
}

func runBurn(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	proj, unknown, err := projectConfig(cfg)
	if err != nil {
		return err
	}
	warnUnknown(unknown)

	bd := proj.Burn
	total := bd.Total()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MONTH-0 BURN  %d engineers", bd.Headcount)))
	fmt.Println()

	rows := make([][]string, 0, len(bd.Lines)+2)
	for _, l := range bd.Lines {
		rows = append(rows, []string{l.Group, l.Name, cli.FormatDecimal(l.Amount), shareText(l.Amount, total)})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", "", cli.FormatDecimal(total), ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Line Item",
		Headers: []string{"Group", "Item", "Monthly", "Share"},
		Rows:    rows,
	}))

	groups := []struct {
		name   string
		amount decimal.Decimal
	}{
		{model.GroupEngineering, bd.Engineering},
		{model.GroupSaaS, bd.SaaS},
		{model.GroupMarketing, bd.Marketing},
		{model.GroupOffice, bd.Office},
		{model.GroupCloud, bd.Cloud},
	}
	peak := 0.0
	for _, g := range groups {
		peak = max(peak, g.amount.InexactFloat64())
	}

	fmt.Printf("  By Group\n")
	for _, g := range groups {
		fmt.Printf("  %-12s %12s  %s\n",
			g.name,
			cli.FormatDecimal(g.amount),
			cli.RenderHorizontalBar(g.amount.InexactFloat64(), peak, 30))
	}
	fmt.Println()

	fmt.Printf("  Burn grows %.0f%% a month: %s in month 12.\n\n",
		(runway.GrowthRate-1)*100, cli.FormatMoney(monthBurn(proj, 12)))
	return nil
}

// monthBurn returns the projected burn for month n, extrapolating past the
// last point.
func monthBurn(proj model.Projection, n int) float64 {
	for _, p := range proj.Points {
		if p.Month == n {
			return p.MonthlyBurn
		}
	}
	b := proj.Burn.Total().InexactFloat64()
	for range n {
		b *= runway.GrowthRate
	}
	return b
}

func shareText(part, total decimal.Decimal) string {
	if total.IsZero() {
		return ""
	}
	return cli.FormatPercent(part.Div(total).InexactFloat64())
}
