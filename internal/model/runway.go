// Package model defines the cost inputs and projection outputs shared by the
// runway calculator, the CLI, the TUI, and the HTTP service.
package model

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Seniority is the experience band of an engineering role.
type Seniority string

// Location is where an engineering role is based.
type Location string

const (
	Junior Seniority = "junior"
	Senior Seniority = "senior"

	Onshore  Location = "onshore"
	Offshore Location = "offshore"
)

// Role is one (seniority x location) category of the engineering roster.
type Role struct {
	Seniority Seniority
	Location  Location
}

// Roles lists every roster category in display order.
var Roles = []Role{
	{Junior, Onshore},
	{Senior, Onshore},
	{Junior, Offshore},
	{Senior, Offshore},
}

var titleCaser = cases.Title(language.English)

// Key returns the camel-cased identifier, e.g. "juniorOnshore".
func (r Role) Key() string {
	return string(r.Seniority) + titleCaser.String(string(r.Location))
}

// Label returns a human-readable name, e.g. "Junior Onshore".
func (r Role) Label() string {
	return titleCaser.String(string(r.Seniority) + " " + string(r.Location))
}

// Allocation is the headcount and per-person annual salary for a role.
type Allocation struct {
	Headcount    int
	AnnualSalary decimal.Decimal
}

// Subscription is an enabled SaaS product, charged per seat per month.
type Subscription struct {
	Name     string
	Category string
	SeatCost decimal.Decimal
}

// CostConfiguration is an immutable snapshot of every projection input.
type CostConfiguration struct {
	TotalFunding     decimal.Decimal
	CloudCredits     decimal.Decimal
	AcquisitionsCost decimal.Decimal

	Roster        map[Role]Allocation
	Subscriptions []Subscription

	MarketingMonthly  decimal.Decimal
	CloudMonthly      decimal.Decimal
	InOfficeEmployees int
}

// Headcount returns the total engineering headcount across all roles.
func (c CostConfiguration) Headcount() int {
	n := 0
	for _, a := range c.Roster {
		n += a.Headcount
	}
	return n
}

// StartingFunds is funding minus up-front acquisitions plus cloud credits.
func (c CostConfiguration) StartingFunds() decimal.Decimal {
	return c.TotalFunding.Sub(c.AcquisitionsCost).Add(c.CloudCredits)
}

// Burn groups for BurnLine.Group.
const (
	GroupEngineering = "Engineering"
	GroupSaaS        = "SaaS"
	GroupMarketing   = "Marketing"
	GroupOffice      = "Office"
	GroupCloud       = "Cloud"
)

// BurnLine is a single itemised contribution to the month-0 burn.
type BurnLine struct {
	Group  string
	Name   string
	Amount decimal.Decimal
}

// BurnBreakdown itemises the month-0 burn.
type BurnBreakdown struct {
	Engineering decimal.Decimal
	SaaS        decimal.Decimal
	Marketing   decimal.Decimal
	Office      decimal.Decimal
	Cloud       decimal.Decimal
	Headcount   int
	Lines       []BurnLine
}

// Total is the month-0 burn.
func (b BurnBreakdown) Total() decimal.Decimal {
	return b.Engineering.Add(b.SaaS).Add(b.Marketing).Add(b.Office).Add(b.Cloud)
}

// ProjectionPoint is one simulated month.
type ProjectionPoint struct {
	Month          int       `json:"month" yaml:"month"`
	Date           time.Time `json:"date" yaml:"date"`
	Label          string    `json:"label" yaml:"label"`
	RemainingFunds float64   `json:"remaining_funds" yaml:"remaining_funds"`
	MonthlyBurn    float64   `json:"monthly_burn" yaml:"monthly_burn"`
}

// Projection is the full result of a runway calculation.
type Projection struct {
	Start        time.Time
	InitialFunds float64
	Burn         BurnBreakdown
	Points       []ProjectionPoint
	// Truncated is set when the horizon cap stopped the simulation before
	// funds reached zero.
	Truncated bool
}

// RunwayMonths counts the months that start with funds left.
func (p Projection) RunwayMonths() int {
	n := 0
	for _, pt := range p.Points {
		if pt.RemainingFunds > 0 {
			n++
		}
	}
	return n
}

// DepletionDate returns the month funds run out, if they do within the horizon.
func (p Projection) DepletionDate() (time.Time, bool) {
	if p.Truncated || len(p.Points) == 0 {
		return time.Time{}, false
	}
	return p.Points[len(p.Points)-1].Date, true
}

// Series returns the remaining-funds and monthly-burn columns for charting.
func (p Projection) Series() (funds, burn []float64, labels []string) {
	funds = make([]float64, len(p.Points))
	burn = make([]float64, len(p.Points))
	labels = make([]string, len(p.Points))
	for i, pt := range p.Points {
		funds[i] = pt.RemainingFunds
		burn[i] = pt.MonthlyBurn
		labels[i] = pt.Label
	}
	return funds, burn, labels
}
