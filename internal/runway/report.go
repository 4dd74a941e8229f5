package runway

import (
	"github.com/niraj8/startup-runway-estimator/internal/model"
)

// ReportMonthLayout formats Report.Start and Summary.DepletesOn.
const ReportMonthLayout = "2006-01"

// Summary is the headline of a projection.
type Summary struct {
	StartingFunds float64 `json:"starting_funds" yaml:"starting_funds"`
	InitialBurn   float64 `json:"initial_burn" yaml:"initial_burn"`
	RunwayMonths  int     `json:"runway_months" yaml:"runway_months"`
	DepletesOn    string  `json:"depletes_on,omitempty" yaml:"depletes_on,omitempty"`
	Truncated     bool    `json:"truncated" yaml:"truncated"`
}

// ReportLine is a BurnLine in float form for encoding.
type ReportLine struct {
	Group  string  `json:"group" yaml:"group"`
	Name   string  `json:"name" yaml:"name"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// Report is the serialisable form of a projection, shared by the CLI's
// machine-readable formats and the HTTP service.
type Report struct {
	Start           string                  `json:"start" yaml:"start"`
	Summary         `yaml:",inline"`
	UnknownProducts []string                `json:"unknown_products,omitempty" yaml:"unknown_products,omitempty"`
	Burn            []ReportLine            `json:"burn" yaml:"burn"`
	Points          []model.ProjectionPoint `json:"points" yaml:"points"`
}

// Summarize extracts the headline numbers of a projection.
func Summarize(proj model.Projection) Summary {
	s := Summary{
		StartingFunds: proj.InitialFunds,
		InitialBurn:   proj.Burn.Total().InexactFloat64(),
		RunwayMonths:  proj.RunwayMonths(),
		Truncated:     proj.Truncated,
	}
	if d, ok := proj.DepletionDate(); ok {
		s.DepletesOn = d.Format(ReportMonthLayout)
	}
	return s
}

// NewReport builds the serialisable form of proj. unknown lists selected
// products that matched nothing in the catalog.
func NewReport(proj model.Projection, unknown []string) Report {
	r := Report{
		Start:           proj.Start.Format(ReportMonthLayout),
		Summary:         Summarize(proj),
		UnknownProducts: unknown,
		Burn:            make([]ReportLine, 0, len(proj.Burn.Lines)),
		Points:          proj.Points,
	}
	for _, l := range proj.Burn.Lines {
		r.Burn = append(r.Burn, ReportLine{Group: l.Group, Name: l.Name, Amount: l.Amount.InexactFloat64()})
	}
	return r
}
