package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DashboardPro/internal/apperr"
	"DashboardPro/internal/calendar"
	"DashboardPro/internal/catalog"
	"DashboardPro/internal/customer"
	"DashboardPro/internal/events"
	"DashboardPro/internal/nav"
	"DashboardPro/internal/order"
	"DashboardPro/internal/release"
	"DashboardPro/internal/settings"
	"DashboardPro/internal/theme"
	"DashboardPro/internal/toast"
)

type recordingPublisher struct {
	mu  sync.Mutex
	got []events.EntityEvent
	err error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.EntityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, e)
	return p.err
}

type failingThemeStore struct{ *theme.MemStore }

func (failingThemeStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store down")
}

func (failingThemeStore) Set(context.Context, string, string) error {
	return errors.New("store down")
}

func newTestApp(t *testing.T, d Deps) *App {
	t.Helper()
	if d.ToastTTL == 0 {
		d.ToastTTL = time.Minute
	}
	a := New(d)
	require.NoError(t, a.Start(context.Background()))
	t.Cleanup(a.Close)
	return a
}

func lastToast(t *testing.T, a *App) toast.Toast {
	t.Helper()
	ts := a.Toasts()
	require.NotEmpty(t, ts)
	return ts[len(ts)-1]
}

func TestAddCustomer_Jane(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	a := newTestApp(t, Deps{Publisher: pub})

	c, err := a.AddCustomer(ctx, customer.Form{Name: "Jane", Email: "jane@x.io", Phone: "+1"})
	require.NoError(t, err)

	assert.Equal(t, int64(5), c.ID)
	assert.Equal(t, customer.Active, c.Status)
	assert.Equal(t, 0, c.Orders)
	assert.Equal(t, "$0", c.Spent.String())

	all, err := a.Customers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, "Jane", all[4].Name)

	last := lastToast(t, a)
	assert.Equal(t, "Customer added successfully!", last.Message)
	assert.Equal(t, toast.Success, last.Severity)

	require.Len(t, pub.got, 1)
	assert.Equal(t, "customer.created", pub.got[0].RoutingKey())
	assert.Equal(t, int64(5), pub.got[0].ID)
}

func TestAddCustomer_Incomplete(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	a := newTestApp(t, Deps{Publisher: pub})

	_, err := a.AddCustomer(ctx, customer.Form{Name: "Jane", Email: "  "})
	require.ErrorIs(t, err, apperr.ErrValidation)

	fe, ok := apperr.Field(err)
	require.True(t, ok)
	assert.Equal(t, "email", fe.Field)

	all, _ := a.Customers(ctx)
	assert.Len(t, all, 4)

	last := lastToast(t, a)
	assert.Equal(t, "Please fill all fields", last.Message)
	assert.Equal(t, toast.Error, last.Severity)
	assert.Empty(t, pub.got)
}

func TestDeleteCustomer(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, Deps{})

	c, err := a.DeleteCustomer(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", c.Name)
	assert.Equal(t, "Bob Smith deleted successfully", lastToast(t, a).Message)

	_, err = a.DeleteCustomer(ctx, 2)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	added, err := a.AddCustomer(ctx, customer.Form{Name: "Zed", Email: "z@x.io", Phone: "1"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), added.ID, "ids are never reused")
}

func TestAddProduct(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, Deps{})

	p, err := a.AddProduct(ctx, catalog.Form{Name: "Mouse", Category: "Accessories", Price: "24.50", Stock: "10"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
	assert.Equal(t, "$24.50", p.Price.String())
	assert.Equal(t, "Product added successfully!", lastToast(t, a).Message)

	_, err = a.AddProduct(ctx, catalog.Form{Name: "Mouse", Category: "Accessories", Price: "abc", Stock: "10"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "Please enter a valid price", lastToast(t, a).Message)

	_, err = a.AddProduct(ctx, catalog.Form{Name: "Mouse"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "Please fill all fields", lastToast(t, a).Message)

	all, err := a.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5, "rejected forms add nothing")

	removed, err := a.DeleteProduct(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Laptop Stand deleted successfully", lastToast(t, a).Message)
	assert.Equal(t, "Laptop Stand", removed.Name)

	_, err = a.DeleteProduct(ctx, 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAddProduct_Rejected(t *testing.T) {
	valid := catalog.Form{Name: "Mouse", Category: "Accessories", Price: "24.50", Stock: "10"}

	cases := []struct {
		name  string
		edit  func(*catalog.Form)
		field string
		toast string
	}{
		{"blank name", func(f *catalog.Form) { f.Name = "" }, "name", "Please fill all fields"},
		{"blank category", func(f *catalog.Form) { f.Category = "  " }, "category", "Please fill all fields"},
		{"blank price", func(f *catalog.Form) { f.Price = "" }, "price", "Please fill all fields"},
		{"blank stock", func(f *catalog.Form) { f.Stock = "" }, "stock", "Please fill all fields"},
		{"price in exponent form", func(f *catalog.Form) { f.Price = "1e50000000" }, "price", "Please enter a valid price"},
		{"price too large", func(f *catalog.Form) { f.Price = "5,000,000,000,000" }, "price", "Please enter a valid price"},
		{"negative stock", func(f *catalog.Form) { f.Stock = "-1" }, "stock", "Please enter a valid stock"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			pub := &recordingPublisher{}
			a := newTestApp(t, Deps{Publisher: pub})

			f := valid
			tc.edit(&f)
			_, err := a.AddProduct(ctx, f)
			require.ErrorIs(t, err, apperr.ErrValidation)

			fe, ok := apperr.Field(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, fe.Field)

			all, err := a.Products(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 4)

			last := lastToast(t, a)
			assert.Equal(t, tc.toast, last.Message)
			assert.Equal(t, toast.Error, last.Severity)
			assert.Empty(t, pub.got)
		})
	}
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker gone")}
	a := newTestApp(t, Deps{Publisher: pub})

	_, err := a.AddCustomer(context.Background(), customer.Form{Name: "Jane", Email: "j@x.io", Phone: "1"})
	require.NoError(t, err)
	assert.Len(t, pub.got, 1)
}

func TestToggleTheme(t *testing.T) {
	ctx := context.Background()
	store := theme.NewMemStore()
	a := newTestApp(t, Deps{Theme: theme.NewService(store, theme.Light, nil)})

	got, err := a.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, got)
	assert.Equal(t, "Switched to dark mode", lastToast(t, a).Message)

	stored, ok, _ := store.Get(ctx, theme.PreferenceKey)
	require.True(t, ok)
	assert.Equal(t, "dark", stored)

	got, err = a.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Light, got)
	assert.Equal(t, "Switched to light mode", lastToast(t, a).Message)
}

func TestToggleTheme_StoreDown(t *testing.T) {
	svc := theme.NewService(failingThemeStore{theme.NewMemStore()}, theme.Dark, nil)
	a := newTestApp(t, Deps{Theme: svc})

	assert.Equal(t, theme.Dark, a.Theme(), "start falls back to the default")

	_, err := a.ToggleTheme(context.Background())
	require.Error(t, err)
	assert.Equal(t, theme.Dark, a.Theme())
	assert.Empty(t, a.Toasts())
}

func TestExportOrders(t *testing.T) {
	a := newTestApp(t, Deps{})

	doc, err := a.ExportOrders(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(doc)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "id,customer,date,amount,status,items", lines[0])
	assert.Equal(t, "#12345,Alice Johnson,2024-01-15,234.00,Delivered,3", lines[1])
	assert.Equal(t, "Export started", lastToast(t, a).Message)
}

type failingOrderStore struct{}

func (failingOrderStore) List(context.Context) ([]order.Order, error) {
	return nil, errors.New("orders unavailable")
}

func (failingOrderStore) Get(context.Context, string) (order.Order, bool, error) {
	return order.Order{}, false, errors.New("orders unavailable")
}

func TestExportOrders_Failure(t *testing.T) {
	a := newTestApp(t, Deps{Orders: failingOrderStore{}})

	doc, err := a.ExportOrders(context.Background())
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.Empty(t, a.Toasts(), "no toast for an export that never happened")
}

func TestMessages(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, Deps{})

	assert.Equal(t, 2, a.Shell(ctx).Unread)

	m, err := a.OpenMessage(ctx, 1)
	require.NoError(t, err)
	assert.False(t, m.Unread)
	assert.Equal(t, 1, a.Shell(ctx).Unread)

	_, err = a.ReplyToMessage(ctx, 1, "   ")
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "Message cannot be empty", lastToast(t, a).Message)
	assert.Equal(t, toast.Error, lastToast(t, a).Severity)

	r, err := a.ReplyToMessage(ctx, 1, " On its way ")
	require.NoError(t, err)
	assert.Equal(t, "On its way", r.Body)
	assert.Equal(t, "Message sent successfully!", lastToast(t, a).Message)

	n := len(a.Toasts())
	_, err = a.ReplyToMessage(ctx, 42, "hello")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Len(t, a.Toasts(), n)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, Deps{})

	p := a.Settings(ctx)
	p.Company = "Globex"
	saved, err := a.SaveSettings(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Globex", saved.Company)
	assert.Equal(t, "Settings saved successfully!", lastToast(t, a).Message)

	_, err = a.SaveSettings(ctx, settings.Profile{Email: "x@y.z"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "Globex", a.Settings(ctx).Company)
	assert.Equal(t, "Please fill all fields", lastToast(t, a).Message)

	got := a.ToggleNotifications(ctx)
	assert.False(t, got.Notifications)
	assert.Equal(t, "Notifications disabled", lastToast(t, a).Message)

	got = a.ToggleNotifications(ctx)
	assert.True(t, got.Notifications)
	assert.Equal(t, "Notifications enabled", lastToast(t, a).Message)
}

func TestNavigation(t *testing.T) {
	a := newTestApp(t, Deps{})

	assert.Equal(t, nav.Dashboard, a.Nav().Current)

	a.SetMobile(true)
	a.OpenDrawer()
	st, err := a.SelectPage(nav.Orders)
	require.NoError(t, err)
	assert.Equal(t, nav.Orders, st.Current)
	assert.False(t, st.Open, "selecting on mobile closes the drawer")

	assert.True(t, a.ToggleDrawer().Open)
	assert.False(t, a.CloseDrawer().Open)

	_, err = a.SelectPage(nav.Page(42))
	require.ErrorIs(t, err, apperr.ErrUnknownPage)
	assert.Equal(t, nav.Orders, a.Nav().Current)

	active := 0
	for _, it := range a.NavItems() {
		if it.Active {
			active++
			assert.Equal(t, nav.Orders, it.Page)
		}
	}
	assert.Equal(t, 1, active)
}

func TestUpdateBanner(t *testing.T) {
	ctx := context.Background()
	var applied string
	b := release.NewBanner("1.0.0", func(_ context.Context, v string) error {
		applied = v
		return nil
	})
	a := newTestApp(t, Deps{Banner: b})

	assert.False(t, a.Update().Visible)

	_, err := a.ApplyUpdate(ctx)
	require.ErrorIs(t, err, release.ErrNoUpdate)

	b.Offer("1.1.0")
	st := a.Update()
	assert.True(t, st.Visible)
	assert.Equal(t, "New update available! Update now?", st.Message)

	st, err = a.ApplyUpdate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", applied)
	assert.Equal(t, "1.1.0", st.CurrentVersion)
	assert.False(t, st.Visible)

	st = a.SignalUpdate(release.Signals{OfflineReady: true})
	assert.Equal(t, "App is ready to work offline.", st.Message)
	assert.False(t, a.DismissUpdate().Visible)
}

func TestView_EveryPage(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, Deps{})

	for _, p := range nav.Pages() {
		v, err := a.View(ctx, p)
		require.NoError(t, err, p.String())
		require.NotNil(t, v, p.String())
	}

	v, _ := a.View(ctx, nav.Dashboard)
	dash := v.(DashboardPage)
	assert.Len(t, dash.Stats, 4)
	assert.Len(t, dash.Traffic, 3)
	assert.Len(t, dash.RecentOrders, 5)
	assert.Equal(t, "success", dash.RecentOrders[0].Badge)

	v, _ = a.View(ctx, nav.Analytics)
	an := v.(AnalyticsPage)
	assert.Len(t, an.Stats, 4)
	assert.Len(t, an.TopPages, 4)

	v, _ = a.View(ctx, nav.Customers)
	assert.Equal(t, 4, v.(CustomersPage).Count)

	v, _ = a.View(ctx, nav.Orders)
	op := v.(OrdersPage)
	assert.Len(t, op.Summary, 4)
	assert.Equal(t, "danger", op.Orders[3].Badge)

	v, _ = a.View(ctx, nav.Products)
	assert.Len(t, v.(ProductsPage).Products, 4)

	v, _ = a.View(ctx, nav.Reports)
	rp := v.(ReportsPage)
	assert.Len(t, rp.Reports, 3)
	for _, pt := range rp.SalesVsTarget {
		if pt.Sales > 5000 {
			assert.Equal(t, int64(6000), pt.Target, pt.Month)
		} else {
			assert.Equal(t, int64(5000), pt.Target, pt.Month)
		}
	}

	v, _ = a.View(ctx, nav.Calendar)
	cal := v.(CalendarPage)
	assert.Equal(t, "January 2024", cal.Title)
	assert.Len(t, cal.Days, 31)
	assert.Equal(t, 18, cal.Highlighted)
	assert.Equal(t, calendar.January2024().Events, cal.Events)

	v, _ = a.View(ctx, nav.Messages)
	assert.Equal(t, 2, v.(MessagesPage).Unread)

	v, _ = a.View(ctx, nav.Settings)
	assert.Equal(t, "John Doe", v.(SettingsPage).Profile.Name)

	_, err := a.View(ctx, nav.Page(-1))
	assert.ErrorIs(t, err, apperr.ErrUnknownPage)
}

func TestShell(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, Deps{})

	a.Notify("hello", toast.Info)
	sh := a.Shell(ctx)
	assert.Equal(t, theme.Light, sh.Theme)
	assert.Len(t, sh.Items, 9)
	assert.Equal(t, "John Doe", sh.User)
	require.Len(t, sh.Toasts, 1)
	assert.Equal(t, "hello", sh.Toasts[0].Message)
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	a := newTestApp(t, Deps{Registry: reg})

	_, err := a.AddCustomer(ctx, customer.Form{Name: "Jane", Email: "j@x.io", Phone: "1"})
	require.NoError(t, err)
	_, _ = a.AddCustomer(ctx, customer.Form{})
	_, err = a.DeleteProduct(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.metrics.entityOps.WithLabelValues("customer", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.metrics.entityOps.WithLabelValues("product", "deleted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(a.metrics.toasts.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.metrics.toasts.WithLabelValues("error")))
}

func TestToastsExpire(t *testing.T) {
	a := newTestApp(t, Deps{ToastTTL: 50 * time.Millisecond})

	a.Notify("short lived", toast.Info)
	require.Len(t, a.Toasts(), 1)

	assert.Eventually(t, func() bool { return len(a.Toasts()) == 0 }, time.Second, 10*time.Millisecond)
}
