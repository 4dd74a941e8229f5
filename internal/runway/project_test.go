package runway

import (
	"math"
	"testing"
	"time"

	"github.com/niraj8/startup-runway-estimator/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func exampleConfig() model.CostConfiguration {
	return model.CostConfiguration{
		TotalFunding: d(4_000_000),
		CloudCredits: d(50_000),
		Roster: map[model.Role]model.Allocation{
			{Seniority: model.Junior, Location: model.Onshore}:  {Headcount: 1, AnnualSalary: d(60_000)},
			{Seniority: model.Senior, Location: model.Onshore}:  {Headcount: 2, AnnualSalary: d(170_000)},
			{Seniority: model.Junior, Location: model.Offshore}: {Headcount: 3, AnnualSalary: d(30_000)},
			{Seniority: model.Senior, Location: model.Offshore}: {Headcount: 2, AnnualSalary: d(60_000)},
		},
		Subscriptions: []model.Subscription{
			{Name: "Slack", SeatCost: d(8)},
			{Name: "GitHub", SeatCost: d(7)},
			{Name: "Asana", SeatCost: d(10)},
			{Name: "Google Workspace", SeatCost: d(6)},
		},
		MarketingMonthly: d(1000),
		CloudMonthly:     d(500),
	}
}

var fixedStart = time.Date(2026, time.October, 18, 15, 4, 5, 0, time.UTC)

func TestComputeBurn_Example(t *testing.T) {
	b := ComputeBurn(exampleConfig())

	assert.Equal(t, 8, b.Headcount)
	assert.InDelta(t, 610_000.0/12, b.Engineering.InexactFloat64(), 1e-6)
	assert.True(t, b.SaaS.Equal(d(248)), "saas = %s", b.SaaS)
	assert.True(t, b.Office.IsZero())
	assert.InDelta(t, 52_581.33, b.Total().InexactFloat64(), 0.01)

	// 4 roles + 4 products + marketing, office, cloud
	assert.Len(t, b.Lines, 11)
	assert.Equal(t, "Junior Onshore x1", b.Lines[0].Name)
}

func TestComputeBurn_OfficeScalesWithEmployees(t *testing.T) {
	cfg := model.CostConfiguration{InOfficeEmployees: 3}
	b := ComputeBurn(cfg)

	assert.True(t, OfficeCostPerEmployee().Equal(d(1500)))
	assert.True(t, b.Office.Equal(d(4500)), "office = %s", b.Office)
	assert.True(t, b.SaaS.IsZero())
}

func TestComputeBurn_SaaSChargedPerEngineer(t *testing.T) {
	cfg := model.CostConfiguration{
		Roster: map[model.Role]model.Allocation{
			{Seniority: model.Senior, Location: model.Onshore}: {Headcount: 5},
		},
		Subscriptions: []model.Subscription{{Name: "Zoom", SeatCost: d(15)}},
	}
	b := ComputeBurn(cfg)
	assert.True(t, b.SaaS.Equal(d(75)))
	assert.True(t, b.Engineering.IsZero())
}

func TestProject_Example(t *testing.T) {
	p := Project(exampleConfig(), Options{Start: fixedStart})

	require.NotEmpty(t, p.Points)
	assert.False(t, p.Truncated)
	assert.Equal(t, 4_050_000.0, p.InitialFunds)

	first := p.Points[0]
	assert.Equal(t, 4_050_000.0, first.RemainingFunds)
	assert.InDelta(t, 52_581.33, first.MonthlyBurn, 0.01)
	assert.Equal(t, "Oct 2026", first.Label)
	assert.Equal(t, "Nov 2026", p.Points[1].Label)

	assert.Equal(t, 23, p.RunwayMonths())
	assert.Len(t, p.Points, 24)
	assert.Equal(t, 0.0, p.Points[len(p.Points)-1].RemainingFunds)

	date, ok := p.DepletionDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(2028, time.September, 1, 0, 0, 0, 0, time.UTC), date)
}

func TestProject_Properties(t *testing.T) {
	p := Project(exampleConfig(), Options{Start: fixedStart})
	burn0 := p.Points[0].MonthlyBurn

	for i, pt := range p.Points {
		assert.Equal(t, i, pt.Month)
		assert.InEpsilon(t, burn0*math.Pow(GrowthRate, float64(i)), pt.MonthlyBurn, 1e-9, "month %d", i)
		if i > 0 {
			assert.LessOrEqual(t, pt.RemainingFunds, p.Points[i-1].RemainingFunds, "month %d", i)
			assert.True(t, pt.Date.After(p.Points[i-1].Date))
		}
	}
}

func TestProject_Idempotent(t *testing.T) {
	cfg := exampleConfig()
	a := Project(cfg, Options{Start: fixedStart})
	b := Project(cfg, Options{Start: fixedStart})

	assert.Equal(t, a.Points, b.Points)
	assert.True(t, a.Burn.Total().Equal(b.Burn.Total()))
	assert.Equal(t, a.Truncated, b.Truncated)
}

func TestProject_ZeroFundingYieldsSinglePoint(t *testing.T) {
	cfg := model.CostConfiguration{MarketingMonthly: d(1)}
	p := Project(cfg, Options{Start: fixedStart})

	require.Len(t, p.Points, 1)
	assert.Equal(t, 0.0, p.Points[0].RemainingFunds)
	assert.Equal(t, 1.0, p.Points[0].MonthlyBurn)
	assert.Equal(t, 0, p.RunwayMonths())
}

func TestProject_NegativeStartingFunds(t *testing.T) {
	cfg := exampleConfig()
	cfg.AcquisitionsCost = d(5_000_000)
	p := Project(cfg, Options{Start: fixedStart})

	assert.Equal(t, -950_000.0, p.InitialFunds)
	require.Len(t, p.Points, 1)
	assert.Equal(t, 0.0, p.Points[0].RemainingFunds)
	assert.Equal(t, 0, p.RunwayMonths())
	assert.False(t, p.Truncated)
}

func TestProject_ZeroBurnHitsHorizon(t *testing.T) {
	cfg := model.CostConfiguration{TotalFunding: d(1000)}

	p := Project(cfg, Options{Start: fixedStart})
	assert.True(t, p.Truncated)
	assert.Len(t, p.Points, MaxHorizonMonths)
	_, ok := p.DepletionDate()
	assert.False(t, ok)

	short := Project(cfg, Options{Start: fixedStart, HorizonMonths: 24})
	assert.True(t, short.Truncated)
	assert.Len(t, short.Points, 24)
}

func TestProject_MonthEndStartDoesNotSkipMonths(t *testing.T) {
	cfg := model.CostConfiguration{TotalFunding: d(100), MarketingMonthly: d(40)}
	p := Project(cfg, Options{Start: time.Date(2027, time.January, 31, 0, 0, 0, 0, time.UTC)})

	require.GreaterOrEqual(t, len(p.Points), 2)
	assert.Equal(t, "Jan 2027", p.Points[0].Label)
	assert.Equal(t, "Feb 2027", p.Points[1].Label)
}

func TestClampFunds(t *testing.T) {
	assert.Equal(t, 0.0, clampFunds(math.NaN()))
	assert.Equal(t, 0.0, clampFunds(-5))
	assert.Equal(t, 5.0, clampFunds(5))
}
