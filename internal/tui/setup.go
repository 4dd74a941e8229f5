package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/niraj8/startup-runway-estimator/internal/cli"
	"github.com/niraj8/startup-runway-estimator/internal/config"
	"github.com/niraj8/startup-runway-estimator/internal/model"
	"github.com/niraj8/startup-runway-estimator/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the raw answers of the setup form. Amounts are kept as
// typed so the form can show them back verbatim.
type SetupValues struct {
	Funding      string
	CloudCredits string
	Acquisitions string
	Engineers    string
	Marketing    string
	Cloud        string
	InOffice     string
	Theme        string
	Save         bool
}

// NewSetupValues pre-fills the form from an existing config.
func NewSetupValues(cfg config.Config) SetupValues {
	sc := cfg.Scenario
	return SetupValues{
		Funding:      formatInput(sc.Funding.Total),
		CloudCredits: formatInput(sc.Funding.CloudCredits),
		Acquisitions: formatInput(sc.Funding.Acquisitions),
		Engineers:    strconv.Itoa(sc.Roster.Headcount()),
		Marketing:    formatInput(sc.Expenses.MarketingMonthly),
		Cloud:        formatInput(sc.Expenses.CloudMonthly),
		InOffice:     strconv.Itoa(sc.Expenses.InOfficeEmployees),
		Theme:        theme.ByName(cfg.Appearance.Theme).Name,
		Save:         true,
	}
}

func validateMoney(s string) error {
	v, err := cli.ParseMoney(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func validateCount(s string) error {
	_, err := parseCount(s)
	return err
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("enter a whole number")
	}
	if n < 0 {
		return 0, errors.New("must not be negative")
	}
	return n, nil
}

// NewSetupForm builds the first-run form. Answers are written into vals;
// path is shown in the save prompt.
func NewSetupForm(vals *SetupValues, path string) *huh.Form {
	themeOpts := huh.NewOptions(theme.Names()...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to runway").
				Description("A few numbers to get a first projection.\nEverything can be changed later in the Inputs tab."),
			huh.NewInput().
				Title("Total funding raised").
				Placeholder("4,000,000").
				Value(&vals.Funding).
				Validate(validateMoney),
			huh.NewInput().
				Title("Cloud credits").
				Value(&vals.CloudCredits).
				Validate(validateMoney),
			huh.NewInput().
				Title("Up-front acquisitions").
				Description("One-off spend taken out of funding before month one.").
				Value(&vals.Acquisitions).
				Validate(validateMoney),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Engineering headcount").
				Description("Split across roles in the Inputs tab; the default split is kept when unchanged.").
				Value(&vals.Engineers).
				Validate(validateCount),
			huh.NewInput().
				Title("Marketing per month").
				Value(&vals.Marketing).
				Validate(validateMoney),
			huh.NewInput().
				Title("Cloud hosting per month").
				Value(&vals.Cloud).
				Validate(validateMoney),
			huh.NewInput().
				Title("In-office employees").
				Value(&vals.InOffice).
				Validate(validateCount),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewConfirm().
				Title("Save to " + path + "?").
				Affirmative("Save").
				Negative("Don't save").
				Value(&vals.Save),
		),
	)
}

// Apply writes the answers into cfg. A changed headcount moves everyone to
// junior onshore; salaries are kept.
func (v SetupValues) Apply(cfg *config.Config) error {
	sc := &cfg.Scenario

	money := []struct {
		in  string
		dst *float64
	}{
		{v.Funding, &sc.Funding.Total},
		{v.CloudCredits, &sc.Funding.CloudCredits},
		{v.Acquisitions, &sc.Funding.Acquisitions},
		{v.Marketing, &sc.Expenses.MarketingMonthly},
		{v.Cloud, &sc.Expenses.CloudMonthly},
	}
	for _, m := range money {
		amount, err := cli.ParseMoney(m.in)
		if err != nil {
			return err
		}
		*m.dst = amount
	}

	inOffice, err := parseCount(v.InOffice)
	if err != nil {
		return err
	}
	sc.Expenses.InOfficeEmployees = inOffice

	engineers, err := parseCount(v.Engineers)
	if err != nil {
		return err
	}
	if engineers != sc.Roster.Headcount() {
		for _, role := range model.Roles {
			sc.Roster.Role(role).Count = 0
		}
		sc.Roster.JuniorOnshore.Count = engineers
	}

	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
	return nil
}

func formatInput(v float64) string {
	if v == 0 {
		return "0"
	}
	return strings.TrimPrefix(cli.FormatMoney(v), "$")
}
