package config

import "strings"

// Product is a SaaS product offered in the catalog.
type Product struct {
	Name     string  `toml:"name" yaml:"name" json:"name"`
	Category string  `toml:"category" yaml:"category" json:"category"`
	SeatCost float64 `toml:"seat_cost" yaml:"seat_cost" json:"seat_cost"`
}

// DefaultProducts is the built-in catalog, in display order.
var DefaultProducts = []Product{
	{Name: "Slack", Category: "Messaging", SeatCost: 8},
	{Name: "Teams", Category: "Messaging", SeatCost: 5},
	{Name: "GitHub", Category: "Version Control", SeatCost: 7},
	{Name: "GitLab", Category: "Version Control", SeatCost: 4},
	{Name: "Hubspot", Category: "CRM", SeatCost: 50},
	{Name: "Salesforce", Category: "CRM", SeatCost: 150},
	{Name: "Workday", Category: "HR", SeatCost: 100},
	{Name: "Jira", Category: "Project Management", SeatCost: 7},
	{Name: "Asana", Category: "Project Management", SeatCost: 10},
	{Name: "Linear", Category: "Project Management", SeatCost: 8},
	{Name: "Confluence", Category: "Documentation", SeatCost: 5},
	{Name: "Zoom", Category: "Communication", SeatCost: 15},
	{Name: "Google Workspace", Category: "Productivity", SeatCost: 6},
}

// DefaultSelected names the products enabled in a fresh scenario.
var DefaultSelected = []string{"Slack", "GitHub", "Asana", "Google Workspace"}

// Catalog returns the built-in products followed by custom ones. A custom
// product with a built-in name replaces it in place.
func Catalog(custom []Product) []Product {
	out := make([]Product, len(DefaultProducts), len(DefaultProducts)+len(custom))
	copy(out, DefaultProducts)
	for _, c := range custom {
		replaced := false
		for i := range out {
			if strings.EqualFold(out[i].Name, c.Name) {
				out[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, c)
		}
	}
	return out
}

// LookupProduct finds a product by name, ignoring case and surrounding space.
func LookupProduct(products []Product, name string) (Product, bool) {
	name = strings.TrimSpace(name)
	for _, p := range products {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Product{}, false
}

// Categories returns the distinct categories in first-seen order.
func Categories(products []Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
