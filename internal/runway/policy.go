package runway

import "github.com/shopspring/decimal"

// GrowthRate is the month-over-month multiplier applied to the burn. Costs
// are assumed to rise 10% every month.
const GrowthRate = 1.1

// MaxHorizonMonths caps the simulation. A configuration whose burn never
// exhausts the funds (all burn inputs zero, or negative) stops here and is
// reported as truncated.
const MaxHorizonMonths = 600

// MonthsPerYear converts annual salaries into monthly payroll.
const MonthsPerYear = 12

// OfficeExpense is a fixed monthly cost charged per in-office employee.
type OfficeExpense struct {
	Name    string
	Monthly decimal.Decimal
}

// OfficeExpenses are the per-employee office line items.
var OfficeExpenses = []OfficeExpense{
	{"Rent", decimal.NewFromInt(1000)},
	{"Utilities", decimal.NewFromInt(200)},
	{"Internet", decimal.NewFromInt(100)},
	{"Phone", decimal.NewFromInt(50)},
	{"Maintenance", decimal.NewFromInt(150)},
}

// OfficeCostPerEmployee is the sum of OfficeExpenses.
func OfficeCostPerEmployee() decimal.Decimal {
	total := decimal.Zero
	for _, e := range OfficeExpenses {
		total = total.Add(e.Monthly)
	}
	return total
}
