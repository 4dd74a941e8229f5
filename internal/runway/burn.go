// Package runway projects how long a startup's funds last under a
// compounding monthly burn.
package runway

import (
	"fmt"
	"sort"

	"github.com/niraj8/startup-runway-estimator/internal/model"

	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(MonthsPerYear)

// ComputeBurn itemises the month-0 burn for a configuration.
func ComputeBurn(cfg model.CostConfiguration) model.BurnBreakdown {
	var b model.BurnBreakdown

	for _, role := range rosterOrder(cfg.Roster) {
		alloc := cfg.Roster[role]
		b.Headcount += alloc.Headcount
		if alloc.Headcount == 0 {
			continue
		}
		monthly := alloc.AnnualSalary.Mul(decimal.NewFromInt(int64(alloc.Headcount))).Div(monthsPerYear)
		b.Engineering = b.Engineering.Add(monthly)
		b.Lines = append(b.Lines, model.BurnLine{
			Group:  model.GroupEngineering,
			Name:   fmt.Sprintf("%s x%d", role.Label(), alloc.Headcount),
			Amount: monthly,
		})
	}

	// Every enabled product is charged once per engineer.
	seats := decimal.NewFromInt(int64(b.Headcount))
	for _, sub := range cfg.Subscriptions {
		cost := sub.SeatCost.Mul(seats)
		b.SaaS = b.SaaS.Add(cost)
		b.Lines = append(b.Lines, model.BurnLine{Group: model.GroupSaaS, Name: sub.Name, Amount: cost})
	}

	b.Marketing = cfg.MarketingMonthly
	b.Office = OfficeCostPerEmployee().Mul(decimal.NewFromInt(int64(cfg.InOfficeEmployees)))
	b.Cloud = cfg.CloudMonthly

	b.Lines = append(b.Lines,
		model.BurnLine{Group: model.GroupMarketing, Name: "Marketing", Amount: b.Marketing},
		model.BurnLine{Group: model.GroupOffice, Name: fmt.Sprintf("Office x%d", cfg.InOfficeEmployees), Amount: b.Office},
		model.BurnLine{Group: model.GroupCloud, Name: "Cloud", Amount: b.Cloud},
	)

	return b
}

// rosterOrder returns the roster's roles with the standard categories first,
// then any others sorted by key, so itemisation is stable.
func rosterOrder(roster map[model.Role]model.Allocation) []model.Role {
	out := make([]model.Role, 0, len(roster))
	known := make(map[model.Role]bool, len(model.Roles))
	for _, r := range model.Roles {
		known[r] = true
		if _, ok := roster[r]; ok {
			out = append(out, r)
		}
	}
	var extra []model.Role
	for r := range roster {
		if !known[r] {
			extra = append(extra, r)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Key() < extra[j].Key() })
	return append(out, extra...)
}
