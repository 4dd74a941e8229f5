package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/niraj8/startup-runway-estimator/internal/model"

	"github.com/shopspring/decimal"
)

// Role returns the roster entry for a model role, or nil for an unknown role.
func (r *RosterConfig) Role(role model.Role) *RoleConfig {
	switch role {
	case model.Role{Seniority: model.Junior, Location: model.Onshore}:
		return &r.JuniorOnshore
	case model.Role{Seniority: model.Senior, Location: model.Onshore}:
		return &r.SeniorOnshore
	case model.Role{Seniority: model.Junior, Location: model.Offshore}:
		return &r.JuniorOffshore
	case model.Role{Seniority: model.Senior, Location: model.Offshore}:
		return &r.SeniorOffshore
	}
	return nil
}

// Headcount is the total engineering headcount.
func (r RosterConfig) Headcount() int {
	return r.JuniorOnshore.Count + r.SeniorOnshore.Count + r.JuniorOffshore.Count + r.SeniorOffshore.Count
}

// Products returns the catalog available to this scenario.
func (s Scenario) Products() []Product {
	return Catalog(s.SaaS.Custom)
}

// IsSelected reports whether the named product is enabled.
func (s Scenario) IsSelected(name string) bool {
	for _, sel := range s.SaaS.Selected {
		if strings.EqualFold(strings.TrimSpace(sel), name) {
			return true
		}
	}
	return false
}

// Toggle enables or disables a product by name.
func (s *Scenario) Toggle(name string) {
	if !s.IsSelected(name) {
		s.SaaS.Selected = append(s.SaaS.Selected, name)
		return
	}
	kept := s.SaaS.Selected[:0:0]
	for _, sel := range s.SaaS.Selected {
		if !strings.EqualFold(strings.TrimSpace(sel), name) {
			kept = append(kept, sel)
		}
	}
	s.SaaS.Selected = kept
}

// Clone returns a deep copy so edits don't leak into the original.
func (s Scenario) Clone() Scenario {
	out := s
	out.SaaS.Selected = append([]string(nil), s.SaaS.Selected...)
	out.SaaS.Custom = append([]Product(nil), s.SaaS.Custom...)
	return out
}

// Validate reports the first money field that is not a finite number. TOML
// and JSON both accept nan and inf, which have no decimal representation.
func (s Scenario) Validate() error {
	type amount struct {
		name string
		v    float64
	}
	fields := []amount{
		{"funding.total", s.Funding.Total},
		{"funding.cloud_credits", s.Funding.CloudCredits},
		{"funding.acquisitions", s.Funding.Acquisitions},
		{"expenses.marketing_monthly", s.Expenses.MarketingMonthly},
		{"expenses.cloud_monthly", s.Expenses.CloudMonthly},
	}
	for _, role := range model.Roles {
		fields = append(fields, amount{"roster." + string(role.Seniority) + "_" + string(role.Location) + ".salary", s.Roster.Role(role).Salary})
	}
	for _, p := range s.SaaS.Custom {
		fields = append(fields, amount{"saas.custom." + p.Name + ".seat_cost", p.SeatCost})
	}

	for _, f := range fields {
		if !finite(f.v) {
			return fmt.Errorf("scenario %s is not a finite number (%v)", f.name, f.v)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// money converts a config amount. Non-finite values, which Validate
// rejects, become zero.
func money(v float64) decimal.Decimal {
	if !finite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// CostConfiguration converts the scenario into projection inputs. Selected
// names that match no catalog product are returned as unknown and skipped.
// A product selected twice is charged once. Callers are expected to have
// run Validate; non-finite amounts are treated as zero.
func (s Scenario) CostConfiguration() (model.CostConfiguration, []string) {
	cfg := model.CostConfiguration{
		TotalFunding:      money(s.Funding.Total),
		CloudCredits:      money(s.Funding.CloudCredits),
		AcquisitionsCost:  money(s.Funding.Acquisitions),
		Roster:            make(map[model.Role]model.Allocation, len(model.Roles)),
		MarketingMonthly:  money(s.Expenses.MarketingMonthly),
		CloudMonthly:      money(s.Expenses.CloudMonthly),
		InOfficeEmployees: s.Expenses.InOfficeEmployees,
	}

	roster := s.Roster
	for _, role := range model.Roles {
		rc := roster.Role(role)
		cfg.Roster[role] = model.Allocation{
			Headcount:    rc.Count,
			AnnualSalary: money(rc.Salary),
		}
	}

	products := s.Products()
	var unknown []string
	seen := make(map[string]bool)
	for _, name := range s.SaaS.Selected {
		p, ok := LookupProduct(products, name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		cfg.Subscriptions = append(cfg.Subscriptions, model.Subscription{
			Name:     p.Name,
			Category: p.Category,
			SeatCost: money(p.SeatCost),
		})
	}

	return cfg, unknown
}
