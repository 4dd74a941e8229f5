package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/niraj8/startup-runway-estimator/internal/cli"
	"github.com/niraj8/startup-runway-estimator/internal/config"
	"github.com/niraj8/startup-runway-estimator/internal/runway"
	"github.com/niraj8/startup-runway-estimator/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagScenarioDB string

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Save and compare named scenarios",
}

var scenarioSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save the current inputs (with any overrides) under NAME",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioSave,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios",
	Args:  cobra.NoArgs,
	RunE:  runScenarioList,
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a saved scenario and its projection",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioShow,
}

var scenarioDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioDelete,
}

var scenarioExportCmd = &cobra.Command{
	Use:   "export NAME",
	Short: "Print a saved scenario's inputs as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioExport,
}

var scenarioUseCmd = &cobra.Command{
	Use:   "use NAME",
	Short: "Replace the config file's inputs with a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioUse,
}

func init() {
	scenarioCmd.PersistentFlags().StringVar(&flagScenarioDB, "db", store.DefaultPath(), "Scenario database path")
	scenarioCmd.AddCommand(scenarioSaveCmd, scenarioListCmd, scenarioShowCmd,
		scenarioDeleteCmd, scenarioExportCmd, scenarioUseCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func openStore() (*store.Store, error) {
	st, err := store.Open(flagScenarioDB)
	if err != nil {
		return nil, fmt.Errorf("opening scenario store: %w", err)
	}
	return st, nil
}

func runScenarioSave(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	proj, unknown, err := projectConfig(cfg)
	if err != nil {
		return err
	}
	warnUnknown(unknown)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	rec, err := st.Save(args[0], cfg.Scenario, proj)
	if err != nil {
		return fmt.Errorf("saving scenario: %w", err)
	}
	fmt.Printf("  Saved scenario %q: %s of runway from %s\n",
		rec.Name, runwayLabel(proj), proj.Start.Format(runway.MonthLabelLayout))
	return nil
}

func runScenarioList(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	return writeScenarioList(cmd.OutOrStdout(), st)
}

func writeScenarioList(w io.Writer, st *store.Store) error {
	n, err := st.Count()
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(w, "\n  No saved scenarios. Use `runway scenario save NAME`.")
		return nil
	}

	recs, err := st.List()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.Name,
			recordRunway(r),
			cli.FormatMoney(r.StartingFunds),
			cli.FormatMoney(r.InitialBurn),
			recordDepletion(r),
			humanize.Time(r.UpdatedAt),
		})
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   "Saved Scenarios",
		Headers: []string{"Name", "Runway", "Starting funds", "Month-0 burn", "Funds out", "Updated"},
		Rows:    rows,
	}))
	fmt.Fprintf(w, "  %s saved\n", english.Plural(n, "scenario", ""))
	return nil
}

func runScenarioShow(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	rec, err := st.Get(args[0])
	if err != nil {
		return err
	}

	sc := rec.Scenario
	fmt.Println()
	fmt.Println(cli.RenderTitle("SCENARIO  " + strings.ToUpper(rec.Name)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Funding", cli.FormatMoney(sc.Funding.Total)},
			{"Cloud credits", cli.FormatMoney(sc.Funding.CloudCredits)},
			{"Acquisitions", cli.FormatMoney(sc.Funding.Acquisitions)},
			{"Engineers", cli.FormatNumber(int64(sc.Roster.Headcount()))},
			{"SaaS", strings.Join(sc.SaaS.Selected, ", ")},
			{"---"},
			{"Starting funds", cli.FormatMoney(rec.StartingFunds)},
			{"Month-0 burn", cli.FormatMoney(rec.InitialBurn)},
			{"Runway", recordRunway(rec)},
			{"Funds out", recordDepletion(rec)},
			{"---"},
			{"Saved", rec.UpdatedAt.Local().Format("2006-01-02 15:04")},
		},
	}))

	funds := make([]float64, len(rec.Points))
	burn := make([]float64, len(rec.Points))
	for i, p := range rec.Points {
		funds[i] = p.RemainingFunds
		burn[i] = p.MonthlyBurn
	}
	fmt.Printf("  Funds  %s\n", cli.RenderFundsSparkline(sample(funds, sparkWidth)))
	fmt.Printf("  Burn   %s\n\n", cli.RenderBurnSparkline(sample(burn, sparkWidth)))
	return nil
}

func runScenarioDelete(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("  Deleted scenario %q\n", args[0])
	return nil
}

func runScenarioExport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	rec, err := st.Get(args[0])
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(rec.Scenario); err != nil {
		return err
	}
	return enc.Close()
}

func runScenarioUse(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	rec, err := st.Get(args[0])
	if err != nil {
		return err
	}

	cfg, err := readConfig()
	if err != nil {
		return err
	}
	cfg.Scenario = rec.Scenario
	if err := config.SaveFile(configPath(), cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loaded %q into %s\n", rec.Name, configPath())
	}
	return nil
}

func recordRunway(r store.Record) string {
	if r.Truncated {
		return fmt.Sprintf("%d+ months", r.RunwayMonths)
	}
	return cli.FormatMonths(r.RunwayMonths)
}

func recordDepletion(r store.Record) string {
	if r.DepletesOn.IsZero() {
		return "beyond horizon"
	}
	return r.DepletesOn.Format(runway.MonthLabelLayout)
}
