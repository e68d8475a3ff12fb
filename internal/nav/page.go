// Package nav holds the page router and sidebar drawer state.
package nav

import (
	"encoding/json"
	"fmt"
	"strings"

	"DashboardPro/internal/apperr"
)

// Page is one of the nine fixed dashboard views.
type Page int

const (
	Dashboard Page = iota
	Analytics
	Customers
	Orders
	Products
	Reports
	Calendar
	Messages
	Settings
)

var pageIDs = [...]string{
	Dashboard: "dashboard",
	Analytics: "analytics",
	Customers: "customers",
	Orders:    "orders",
	Products:  "products",
	Reports:   "reports",
	Calendar:  "calendar",
	Messages:  "messages",
	Settings:  "settings",
}

var pageLabels = [...]string{
	Dashboard: "Dashboard",
	Analytics: "Analytics",
	Customers: "Customers",
	Orders:    "Orders",
	Products:  "Products",
	Reports:   "Reports",
	Calendar:  "Calendar",
	Messages:  "Messages",
	Settings:  "Settings",
}

// Pages returns every page in sidebar order.
func Pages() []Page {
	out := make([]Page, len(pageIDs))
	for i := range pageIDs {
		out[i] = Page(i)
	}
	return out
}

func (p Page) Valid() bool { return p >= Dashboard && p <= Settings }

func (p Page) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Page(%d)", int(p))
	}
	return pageIDs[p]
}

func (p Page) Label() string {
	if !p.Valid() {
		return ""
	}
	return pageLabels[p]
}

// ParsePage maps a page id such as "customers" to its Page. Matching ignores
// case and surrounding whitespace.
func ParsePage(id string) (Page, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for i, s := range pageIDs {
		if s == id {
			return Page(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", apperr.ErrUnknownPage, id)
}

func (p Page) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", apperr.ErrUnknownPage, int(p))
	}
	return []byte(p.String()), nil
}

func (p *Page) UnmarshalText(b []byte) error {
	v, err := ParsePage(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

var _ json.Marshaler = Item{}

// Item is a sidebar entry.
type Item struct {
	Page   Page
	Active bool
}

func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     string `json:"id"`
		Label  string `json:"label"`
		Active bool   `json:"active"`
	}{i.Page.String(), i.Page.Label(), i.Active})
}
