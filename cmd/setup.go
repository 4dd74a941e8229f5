package cmd

import (
	"errors"
	"fmt"

	"github.com/niraj8/startup-runway-estimator/internal/config"
	"github.com/niraj8/startup-runway-estimator/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, err := readConfig()
	if err != nil {
		return err
	}
	path := configPath()

	vals := tui.NewSetupValues(cfg)
	if err := tui.NewSetupForm(&vals, path).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	if err := vals.Apply(&cfg); err != nil {
		return err
	}
	if !vals.Save {
		fmt.Println("  Not saved.")
		return nil
	}

	if err := config.SaveFile(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", path)
	fmt.Println("  Run `runway setup` anytime to reconfigure, or `runway tui` to fine-tune.")
	fmt.Println()
	return nil
}
