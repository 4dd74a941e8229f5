package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/niraj8/startup-runway-estimator/internal/cli"
	"github.com/niraj8/startup-runway-estimator/internal/model"
	"github.com/niraj8/startup-runway-estimator/internal/runway"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagFormat string
	flagRows   int
)

// sparkWidth is the widest sparkline printed under the month table.
const sparkWidth = 60

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Month-by-month projection of remaining funds",
	RunE:  runProject,
}

func init() {
	// Registered on root too, so a bare `runway --format json` works.
	for _, c := range []*cobra.Command{rootCmd, projectCmd} {
		c.Flags().StringVarP(&flagFormat, "format", "f", "table", "Output format: table, json, csv or yaml")
		c.Flags().IntVar(&flagRows, "rows", 0, "Limit the month table to the first N rows (0 = all)")
	}
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	proj, unknown, err := projectConfig(cfg)
	if err != nil {
		return err
	}

	if flagFormat == "table" {
		warnUnknown(unknown)
		printProjection(proj, flagRows)
		return nil
	}
	return writeProjection(cmd.OutOrStdout(), flagFormat, proj, unknown)
}

// writeProjection encodes proj in one of the machine-readable formats.
func writeProjection(w io.Writer, format string, proj model.Projection, unknown []string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runway.NewReport(proj, unknown))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(runway.NewReport(proj, unknown)); err != nil {
			return err
		}
		return enc.Close()
	case "csv":
		return writeCSV(w, proj)
	default:
		return fmt.Errorf("unknown format %q (want table, json, csv or yaml)", format)
	}
}

func writeCSV(w io.Writer, proj model.Projection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "label", "remaining_funds", "monthly_burn"}); err != nil {
		return err
	}
	for _, p := range proj.Points {
		err := cw.Write([]string{
			strconv.Itoa(p.Month),
			p.Label,
			strconv.FormatFloat(p.RemainingFunds, 'f', 2, 64),
			strconv.FormatFloat(p.MonthlyBurn, 'f', 2, 64),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func runwayLabel(proj model.Projection) string {
	if proj.Truncated {
		return fmt.Sprintf("%d+ months", proj.RunwayMonths())
	}
	return cli.FormatMonths(proj.RunwayMonths())
}

func depletionLabel(proj model.Projection) string {
	if d, ok := proj.DepletionDate(); ok {
		return d.Format(runway.MonthLabelLayout)
	}
	return "beyond horizon"
}

func printProjection(proj model.Projection, rows int) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RUNWAY  from %s", proj.Start.Format(runway.MonthLabelLayout))))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Starting funds", cli.FormatMoney(proj.InitialFunds)},
			{"Engineers", cli.FormatNumber(int64(proj.Burn.Headcount))},
			{"Month-0 burn", cli.FormatDecimal(proj.Burn.Total())},
			{"---"},
			{"Runway", runwayLabel(proj)},
			{"Funds out", depletionLabel(proj)},
		},
	}))

	points := proj.Points
	if rows > 0 && len(points) > rows {
		points = points[:rows]
	}
	tableRows := make([][]string, 0, len(points))
	for _, p := range points {
		tableRows = append(tableRows, []string{
			strconv.Itoa(p.Month),
			p.Label,
			cli.FormatMoney(p.RemainingFunds),
			cli.FormatMoney(p.MonthlyBurn),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Month",
		Headers: []string{"#", "Month", "Remaining", "Burn"},
		Rows:    tableRows,
	}))
	if hidden := len(proj.Points) - len(points); hidden > 0 {
		fmt.Printf("  %s\n\n", cli.RenderMuted(fmt.Sprintf("%d more months, use --rows 0 to show all", hidden)))
	}

	funds, burn, _ := proj.Series()
	fmt.Printf("  Funds  %s\n", cli.RenderFundsSparkline(sample(funds, sparkWidth)))
	fmt.Printf("  Burn   %s\n", cli.RenderBurnSparkline(sample(burn, sparkWidth)))
	fmt.Println()

	if proj.Truncated {
		fmt.Printf("  %s\n\n", cli.RenderWarning(fmt.Sprintf("Funds outlast the %d-month horizon.", len(proj.Points))))
	}
}

// sample picks at most n evenly spaced values, always keeping the last.
func sample(values []float64, n int) []float64 {
	if len(values) <= n || n < 2 {
		return values
	}
	out := make([]float64, n)
	last := len(values) - 1
	for i := range out {
		out[i] = values[i*last/(n-1)]
	}
	return out
}
