package runway

import (
	"math"
	"time"

	"github.com/niraj8/startup-runway-estimator/internal/model"
)

// MonthLabelLayout formats ProjectionPoint.Label, e.g. "Mar 2026".
const MonthLabelLayout = "Jan 2006"

// Options controls where the projection starts and how far it may run.
type Options struct {
	// Start is any time within the first projected month. Zero means now.
	Start time.Time
	// HorizonMonths caps the number of emitted points. Zero or values above
	// MaxHorizonMonths mean MaxHorizonMonths.
	HorizonMonths int
}

func (o Options) horizon() int {
	if o.HorizonMonths <= 0 || o.HorizonMonths > MaxHorizonMonths {
		return MaxHorizonMonths
	}
	return o.HorizonMonths
}

// MonthStart truncates t to midnight on the first of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Project simulates month by month until funds are exhausted.
//
// A point is emitted for every month that starts with funds left, followed by
// one terminal point, clamped to zero, for the month the funds run out. A
// configuration that starts at or below zero therefore yields a single
// zero-runway point. The result is a pure function of cfg and opts.
func Project(cfg model.CostConfiguration, opts Options) model.Projection {
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}
	start = MonthStart(start)

	breakdown := ComputeBurn(cfg)
	remaining := cfg.StartingFunds().InexactFloat64()
	burn := breakdown.Total().InexactFloat64()

	proj := model.Projection{
		Start:        start,
		InitialFunds: remaining,
		Burn:         breakdown,
	}

	limit := opts.horizon()
	for month := 0; ; month++ {
		if month == limit {
			proj.Truncated = true
			break
		}

		date := start.AddDate(0, month, 0)
		proj.Points = append(proj.Points, model.ProjectionPoint{
			Month:          month,
			Date:           date,
			Label:          date.Format(MonthLabelLayout),
			RemainingFunds: clampFunds(remaining),
			MonthlyBurn:    burn,
		})

		// Written as a negation so NaN terminates too.
		if !(remaining > 0) {
			break
		}
		remaining -= burn
		burn *= GrowthRate
	}

	return proj
}

func clampFunds(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
