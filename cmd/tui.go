package cmd

import (
	"fmt"

	"github.com/niraj8/startup-runway-estimator/internal/config"
	"github.com/niraj8/startup-runway-estimator/internal/tui"
	"github.com/niraj8/startup-runway-estimator/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive estimator",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	firstRun := !configExists()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	start, err := config.ParseStartMonth(cfg.General.StartMonth)
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(tui.Options{
		ConfigPath:    configPath(),
		Config:        cfg,
		Start:         start,
		HorizonMonths: cfg.General.HorizonMonths,
		NeedSetup:     firstRun,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
