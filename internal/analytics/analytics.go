// Package analytics provides the chart series and headline figures shown on
// the dashboard, analytics and reports pages.
package analytics

type Trend string

const (
	Up   Trend = "up"
	Down Trend = "down"
)

// StatCard is a headline figure with its change against the previous period.
type StatCard struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  Trend  `json:"trend"`
}

type RevenuePoint struct {
	Month    string `json:"month"`
	Revenue  int64  `json:"revenue"`
	Expenses int64  `json:"expenses"`
	Profit   int64  `json:"profit"`
}

type TrafficSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type SalesPoint struct {
	Month      string  `json:"month"`
	Sales      int64   `json:"sales"`
	Visitors   int64   `json:"visitors"`
	Conversion float64 `json:"conversion"`
}

type TargetPoint struct {
	Month  string `json:"month"`
	Sales  int64  `json:"sales"`
	Target int64  `json:"target"`
}

type TopPage struct {
	Path  string `json:"page"`
	Views string `json:"views"`
	Rate  string `json:"rate"`
}

type ReportCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

const (
	targetThreshold = 5000
	targetHigh      = 6000
	targetLow       = 5000
)

// SalesVsTarget pairs monthly revenue with its target: months above the
// threshold are measured against the higher target.
func SalesVsTarget(revenue []RevenuePoint) []TargetPoint {
	out := make([]TargetPoint, 0, len(revenue))
	for _, r := range revenue {
		target := int64(targetLow)
		if r.Revenue > targetThreshold {
			target = targetHigh
		}
		out = append(out, TargetPoint{Month: r.Month, Sales: r.Revenue, Target: target})
	}
	return out
}

func Revenue() []RevenuePoint {
	return []RevenuePoint{
		{Month: "Jan", Revenue: 4200, Expenses: 2400, Profit: 1800},
		{Month: "Feb", Revenue: 5300, Expenses: 2800, Profit: 2500},
		{Month: "Mar", Revenue: 4800, Expenses: 2600, Profit: 2200},
		{Month: "Apr", Revenue: 6100, Expenses: 3200, Profit: 2900},
		{Month: "May", Revenue: 7200, Expenses: 3600, Profit: 3600},
		{Month: "Jun", Revenue: 6800, Expenses: 3400, Profit: 3400},
	}
}

func Traffic() []TrafficSlice {
	return []TrafficSlice{
		{Name: "Desktop", Value: 45, Color: "#3b82f6"},
		{Name: "Mobile", Value: 35, Color: "#8b5cf6"},
		{Name: "Tablet", Value: 20, Color: "#ec4899"},
	}
}

func Sales() []SalesPoint {
	return []SalesPoint{
		{Month: "Jan", Sales: 4200, Visitors: 12400, Conversion: 3.4},
		{Month: "Feb", Sales: 5300, Visitors: 14200, Conversion: 3.7},
		{Month: "Mar", Sales: 4800, Visitors: 13100, Conversion: 3.7},
		{Month: "Apr", Sales: 6100, Visitors: 15800, Conversion: 3.9},
		{Month: "May", Sales: 7200, Visitors: 18200, Conversion: 4.0},
		{Month: "Jun", Sales: 6800, Visitors: 16900, Conversion: 4.0},
	}
}

func TopPages() []TopPage {
	return []TopPage{
		{Path: "/products", Views: "45.2K", Rate: "4.5%"},
		{Path: "/home", Views: "38.7K", Rate: "3.8%"},
		{Path: "/pricing", Views: "29.1K", Rate: "5.2%"},
		{Path: "/about", Views: "18.5K", Rate: "2.1%"},
	}
}

func DashboardStats() []StatCard {
	return []StatCard{
		{Title: "Revenue", Value: "$48.5K", Change: "+12.5%", Trend: Up},
		{Title: "Users", Value: "2.8K", Change: "+8.2%", Trend: Up},
		{Title: "Orders", Value: "1.2K", Change: "-3.1%", Trend: Down},
		{Title: "Rate", Value: "3.24%", Change: "+2.4%", Trend: Up},
	}
}

func AnalyticsStats() []StatCard {
	return []StatCard{
		{Title: "Views", Value: "125K", Change: "+15.3%", Trend: Up},
		{Title: "Visitors", Value: "45K", Change: "+8.7%", Trend: Up},
		{Title: "Session", Value: "4m 32s", Change: "+12.1%", Trend: Up},
		{Title: "Bounce", Value: "32.4%", Change: "-5.2%", Trend: Up},
	}
}

func ProductStats() []StatCard {
	return []StatCard{
		{Title: "Products", Value: "1.2K", Change: "+5.2%", Trend: Up},
		{Title: "Value", Value: "$124K", Change: "+8.7%", Trend: Up},
		{Title: "Best", Value: "892", Change: "+15.3%", Trend: Up},
		{Title: "Low Stock", Value: "12", Change: "-2.1%", Trend: Up},
	}
}

// OrderSummary is the four order counters shown above the order list.
func OrderSummary() []StatCard {
	return []StatCard{
		{Title: "Total", Value: "1.2K"},
		{Title: "Delivered", Value: "892"},
		{Title: "Processing", Value: "245"},
		{Title: "Cancelled", Value: "110"},
	}
}

func Reports() []ReportCard {
	return []ReportCard{
		{Title: "Sales Report", Description: "Monthly overview"},
		{Title: "Customer Report", Description: "Insights"},
		{Title: "Inventory", Description: "Stock levels"},
	}
}
