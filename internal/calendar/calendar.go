// Package calendar provides the month grid and upcoming events.
package calendar

type Event struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

type Month struct {
	Title       string   `json:"title"`
	Weekdays    []string `json:"weekdays"`
	Days        []int    `json:"days"`
	Highlighted int      `json:"highlighted"`
	Events      []Event  `json:"events"`
}

// January2024 is the month shown by the demo calendar.
func January2024() Month {
	days := make([]int, 31)
	for i := range days {
		days[i] = i + 1
	}
	return Month{
		Title:       "January 2024",
		Weekdays:    []string{"S", "M", "T", "W", "T", "F", "S"},
		Days:        days,
		Highlighted: 18,
		Events: []Event{
			{Title: "Team Meeting", Date: "2024-01-18", Time: "10:00 AM"},
			{Title: "Product Launch", Date: "2024-01-20", Time: "2:00 PM"},
			{Title: "Client Call", Date: "2024-01-22", Time: "11:30 AM"},
		},
	}
}
