package dashboard

import (
	"context"
	"fmt"

	"DashboardPro/internal/analytics"
	"DashboardPro/internal/apperr"
	"DashboardPro/internal/calendar"
	"DashboardPro/internal/catalog"
	"DashboardPro/internal/customer"
	"DashboardPro/internal/inbox"
	"DashboardPro/internal/nav"
	"DashboardPro/internal/order"
	"DashboardPro/internal/release"
	"DashboardPro/internal/settings"
	"DashboardPro/internal/theme"
	"DashboardPro/internal/toast"
)

const recentOrders = 5

// Shell is everything rendered around the current page.
type Shell struct {
	Theme  theme.Theme   `json:"theme"`
	Nav    nav.State     `json:"nav"`
	Items  []nav.Item    `json:"items"`
	Toasts []toast.Toast `json:"toasts"`
	Update release.State `json:"update"`
	Unread int           `json:"unread_messages"`
	User   string        `json:"user"`
}

func (a *App) Shell(ctx context.Context) Shell {
	return Shell{
		Theme:  a.theme.Current(),
		Nav:    a.sidebar.State(),
		Items:  a.sidebar.Items(),
		Toasts: a.toasts.List(),
		Update: a.banner.State(),
		Unread: a.inbox.Unread(ctx),
		User:   a.settings.Get(ctx).Name,
	}
}

// OrderRow is an order with the badge variant for its status.
type OrderRow struct {
	order.Order
	Badge string `json:"badge"`
}

type DashboardPage struct {
	Stats        []analytics.StatCard     `json:"stats"`
	Revenue      []analytics.RevenuePoint `json:"revenue"`
	Traffic      []analytics.TrafficSlice `json:"traffic"`
	RecentOrders []OrderRow               `json:"recent_orders"`
}

type AnalyticsPage struct {
	Stats    []analytics.StatCard   `json:"stats"`
	Sales    []analytics.SalesPoint `json:"sales"`
	TopPages []analytics.TopPage    `json:"top_pages"`
}

type CustomersPage struct {
	Customers []customer.Customer `json:"customers"`
	Count     int                 `json:"count"`
}

type OrdersPage struct {
	Summary []analytics.StatCard `json:"summary"`
	Orders  []OrderRow           `json:"orders"`
}

type ProductsPage struct {
	Stats    []analytics.StatCard `json:"stats"`
	Products []catalog.Product    `json:"products"`
}

type ReportsPage struct {
	Reports       []analytics.ReportCard  `json:"reports"`
	SalesVsTarget []analytics.TargetPoint `json:"sales_vs_target"`
}

type CalendarPage struct {
	calendar.Month
}

type MessagesPage struct {
	Messages []inbox.Message `json:"messages"`
	Unread   int             `json:"unread"`
}

type SettingsPage struct {
	Profile settings.Profile `json:"profile"`
	Theme   theme.Theme      `json:"theme"`
}

// View builds the data object for page p.
func (a *App) View(ctx context.Context, p nav.Page) (any, error) {
	switch p {
	case nav.Dashboard:
		orders, err := a.orders.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(orders) > recentOrders {
			orders = orders[:recentOrders]
		}
		return DashboardPage{
			Stats:        analytics.DashboardStats(),
			Revenue:      analytics.Revenue(),
			Traffic:      analytics.Traffic(),
			RecentOrders: orderRows(orders),
		}, nil

	case nav.Analytics:
		return AnalyticsPage{
			Stats:    analytics.AnalyticsStats(),
			Sales:    analytics.Sales(),
			TopPages: analytics.TopPages(),
		}, nil

	case nav.Customers:
		cs, err := a.customers.List(ctx)
		if err != nil {
			return nil, err
		}
		return CustomersPage{Customers: cs, Count: len(cs)}, nil

	case nav.Orders:
		orders, err := a.orders.List(ctx)
		if err != nil {
			return nil, err
		}
		return OrdersPage{Summary: analytics.OrderSummary(), Orders: orderRows(orders)}, nil

	case nav.Products:
		ps, err := a.products.List(ctx)
		if err != nil {
			return nil, err
		}
		return ProductsPage{Stats: analytics.ProductStats(), Products: ps}, nil

	case nav.Reports:
		return ReportsPage{
			Reports:       analytics.Reports(),
			SalesVsTarget: analytics.SalesVsTarget(analytics.Revenue()),
		}, nil

	case nav.Calendar:
		return CalendarPage{Month: calendar.January2024()}, nil

	case nav.Messages:
		ms, err := a.inbox.List(ctx)
		if err != nil {
			return nil, err
		}
		return MessagesPage{Messages: ms, Unread: a.inbox.Unread(ctx)}, nil

	case nav.Settings:
		return SettingsPage{Profile: a.settings.Get(ctx), Theme: a.theme.Current()}, nil
	}

	return nil, fmt.Errorf("%w: %d", apperr.ErrUnknownPage, int(p))
}

func orderRows(orders []order.Order) []OrderRow {
	out := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderRow{Order: o, Badge: o.Status.Badge()})
	}
	return out
}
