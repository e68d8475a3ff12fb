// Package dashboard is the application state object behind the dashboard
// shell. It owns the sidebar, the toast queue and the update banner, and
// turns user actions into store calls plus the notifications the shell shows.
package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"DashboardPro/internal/apperr"
	"DashboardPro/internal/catalog"
	"DashboardPro/internal/customer"
	"DashboardPro/internal/events"
	"DashboardPro/internal/inbox"
	"DashboardPro/internal/nav"
	"DashboardPro/internal/order"
	"DashboardPro/internal/release"
	"DashboardPro/internal/settings"
	"DashboardPro/internal/theme"
	"DashboardPro/internal/toast"
)

const (
	msgFillAllFields    = "Please fill all fields"
	msgCustomerAdded    = "Customer added successfully!"
	msgProductAdded     = "Product added successfully!"
	msgExportStarted    = "Export started"
	msgMessageSent      = "Message sent successfully!"
	msgEmptyMessage     = "Message cannot be empty"
	msgSettingsSaved    = "Settings saved successfully!"
	msgNotificationsOn  = "Notifications enabled"
	msgNotificationsOff = "Notifications disabled"

	publishTimeout = 2 * time.Second
)

type Deps struct {
	Log       *zap.Logger
	Theme     *theme.Service
	Customers customer.Store
	Products  catalog.Store
	Orders    order.Store
	Inbox     *inbox.Store
	Settings  *settings.Store
	Banner    *release.Banner
	Publisher events.Publisher
	Registry  prometheus.Registerer
	ToastTTL  time.Duration
}

type App struct {
	log       *zap.Logger
	theme     *theme.Service
	customers customer.Store
	products  catalog.Store
	orders    order.Store
	inbox     *inbox.Store
	settings  *settings.Store
	banner    *release.Banner
	publisher events.Publisher

	sidebar *nav.Sidebar
	toasts  *toast.Queue
	metrics *domainMetrics
	now     func() time.Time
}

// New wires the app. Missing collaborators fall back to the seeded
// in-memory implementations.
func New(d Deps) *App {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Theme == nil {
		d.Theme = theme.NewService(theme.NewMemStore(), theme.Light, d.Log)
	}
	if d.Customers == nil {
		d.Customers = customer.NewStore()
	}
	if d.Products == nil {
		d.Products = catalog.NewStore()
	}
	if d.Orders == nil {
		d.Orders = order.NewStore()
	}
	if d.Inbox == nil {
		d.Inbox = inbox.NewStore(inbox.Seed()...)
	}
	if d.Settings == nil {
		d.Settings = settings.NewStore(settings.Default())
	}
	if d.Banner == nil {
		d.Banner = release.NewBanner("dev", nil)
	}
	if d.Publisher == nil {
		d.Publisher = events.Nop{}
	}

	a := &App{
		log:       d.Log,
		theme:     d.Theme,
		customers: d.Customers,
		products:  d.Products,
		orders:    d.Orders,
		inbox:     d.Inbox,
		settings:  d.Settings,
		banner:    d.Banner,
		publisher: d.Publisher,
		sidebar:   nav.NewSidebar(),
		metrics:   newDomainMetrics(d.Registry),
		now:       time.Now,
	}
	a.toasts = toast.NewQueue(d.ToastTTL, toast.WithObserver(func(t toast.Toast) {
		a.metrics.toasts.WithLabelValues(string(t.Severity)).Inc()
	}))
	return a
}

// Start loads the persisted theme. A failing preference store is logged and
// the configured default stays in effect.
func (a *App) Start(ctx context.Context) error {
	if err := a.theme.Load(ctx); err != nil {
		a.log.Warn("theme preference unavailable, using default",
			zap.String("theme", string(a.theme.Current())),
			zap.Error(err),
		)
	}
	return nil
}

// Close cancels pending toast expiries.
func (a *App) Close() {
	a.toasts.Close()
}

// Ping checks the stores backing the app.
func (a *App) Ping(ctx context.Context) error {
	if err := a.theme.Ping(ctx); err != nil {
		return fmt.Errorf("theme store: %w", err)
	}
	if err := a.customers.Ping(ctx); err != nil {
		return fmt.Errorf("customer store: %w", err)
	}
	if err := a.products.Ping(ctx); err != nil {
		return fmt.Errorf("product store: %w", err)
	}
	return nil
}

func (a *App) Notify(message string, sev toast.Severity) toast.Toast {
	return a.toasts.Notify(message, sev)
}

func (a *App) Toasts() []toast.Toast { return a.toasts.List() }

func (a *App) Theme() theme.Theme { return a.theme.Current() }

func (a *App) ToggleTheme(ctx context.Context) (theme.Theme, error) {
	t, err := a.theme.Toggle(ctx)
	if err != nil {
		return t, err
	}
	a.toasts.Notify(fmt.Sprintf("Switched to %s mode", t), toast.Success)
	return t, nil
}

func (a *App) Customers(ctx context.Context) ([]customer.Customer, error) {
	return a.customers.List(ctx)
}

func (a *App) AddCustomer(ctx context.Context, f customer.Form) (customer.Customer, error) {
	c, err := f.Customer()
	if err != nil {
		a.rejectForm(err)
		return customer.Customer{}, err
	}

	c, err = a.customers.Create(ctx, c)
	if err != nil {
		return customer.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	a.toasts.Notify(msgCustomerAdded, toast.Success)
	a.recordEntity(ctx, "customer", events.Created, c.ID, c.Name)
	return c, nil
}

func (a *App) DeleteCustomer(ctx context.Context, id int64) (customer.Customer, error) {
	c, ok, err := a.customers.Delete(ctx, id)
	if err != nil {
		return customer.Customer{}, fmt.Errorf("delete customer: %w", err)
	}
	if !ok {
		return customer.Customer{}, apperr.NotFound("customer", id)
	}

	a.toasts.Notify(deletedMessage(c.Name), toast.Success)
	a.recordEntity(ctx, "customer", events.Deleted, c.ID, c.Name)
	return c, nil
}

func (a *App) Products(ctx context.Context) ([]catalog.Product, error) {
	return a.products.List(ctx)
}

func (a *App) AddProduct(ctx context.Context, f catalog.Form) (catalog.Product, error) {
	p, err := f.Product()
	if err != nil {
		a.rejectForm(err)
		return catalog.Product{}, err
	}

	p, err = a.products.Create(ctx, p)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("create product: %w", err)
	}

	a.toasts.Notify(msgProductAdded, toast.Success)
	a.recordEntity(ctx, "product", events.Created, p.ID, p.Name)
	return p, nil
}

func (a *App) DeleteProduct(ctx context.Context, id int64) (catalog.Product, error) {
	p, ok, err := a.products.Delete(ctx, id)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("delete product: %w", err)
	}
	if !ok {
		return catalog.Product{}, apperr.NotFound("product", id)
	}

	a.toasts.Notify(deletedMessage(p.Name), toast.Success)
	a.recordEntity(ctx, "product", events.Deleted, p.ID, p.Name)
	return p, nil
}

func (a *App) Orders(ctx context.Context) ([]order.Order, error) {
	return a.orders.List(ctx)
}

// ExportOrders renders the order history as CSV. The toast is queued only
// once the whole document is built.
func (a *App) ExportOrders(ctx context.Context) ([]byte, error) {
	orders, err := a.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	var buf bytes.Buffer
	if err := order.WriteCSV(&buf, orders); err != nil {
		return nil, fmt.Errorf("write orders csv: %w", err)
	}

	a.toasts.Notify(msgExportStarted, toast.Success)
	return buf.Bytes(), nil
}

func (a *App) Messages(ctx context.Context) ([]inbox.Message, error) {
	return a.inbox.List(ctx)
}

func (a *App) OpenMessage(ctx context.Context, id int64) (inbox.Message, error) {
	return a.inbox.Open(ctx, id)
}

func (a *App) ReplyToMessage(ctx context.Context, id int64, body string) (inbox.Reply, error) {
	r, err := a.inbox.Reply(ctx, id, body)
	switch {
	case errors.Is(err, apperr.ErrValidation):
		a.toasts.Notify(msgEmptyMessage, toast.Error)
		return inbox.Reply{}, err
	case err != nil:
		return inbox.Reply{}, err
	}
	a.toasts.Notify(msgMessageSent, toast.Success)
	return r, nil
}

func (a *App) Settings(ctx context.Context) settings.Profile {
	return a.settings.Get(ctx)
}

func (a *App) SaveSettings(ctx context.Context, p settings.Profile) (settings.Profile, error) {
	p, err := a.settings.Save(ctx, p)
	if err != nil {
		a.rejectForm(err)
		return settings.Profile{}, err
	}
	a.toasts.Notify(msgSettingsSaved, toast.Success)
	return p, nil
}

func (a *App) ToggleNotifications(ctx context.Context) settings.Profile {
	p := a.settings.ToggleNotifications(ctx)
	if p.Notifications {
		a.toasts.Notify(msgNotificationsOn, toast.Success)
	} else {
		a.toasts.Notify(msgNotificationsOff, toast.Success)
	}
	return p
}

func (a *App) Nav() nav.State { return a.sidebar.State() }

func (a *App) NavItems() []nav.Item { return a.sidebar.Items() }

func (a *App) SelectPage(p nav.Page) (nav.State, error) {
	if !p.Valid() {
		return a.sidebar.State(), fmt.Errorf("%w: %d", apperr.ErrUnknownPage, int(p))
	}
	return a.sidebar.Select(p), nil
}

func (a *App) OpenDrawer() nav.State   { return a.sidebar.Open() }
func (a *App) CloseDrawer() nav.State  { return a.sidebar.Close() }
func (a *App) ToggleDrawer() nav.State { return a.sidebar.Toggle() }

func (a *App) SetMobile(mobile bool) nav.State { return a.sidebar.SetMobile(mobile) }

func (a *App) Update() release.State { return a.banner.State() }

func (a *App) SignalUpdate(s release.Signals) release.State { return a.banner.Signal(s) }

func (a *App) ApplyUpdate(ctx context.Context) (release.State, error) {
	st, err := a.banner.Apply(ctx)
	if err != nil {
		return st, err
	}
	a.log.Info("update applied", zap.String("version", st.CurrentVersion))
	return st, nil
}

func (a *App) DismissUpdate() release.State { return a.banner.Dismiss() }

// rejectForm queues the error toast matching a validation failure.
func (a *App) rejectForm(err error) {
	fe, ok := apperr.Field(err)
	if ok && fe.Reason == apperr.ReasonInvalid {
		a.toasts.Notify(fmt.Sprintf("Please enter a valid %s", fe.Field), toast.Error)
		return
	}
	a.toasts.Notify(msgFillAllFields, toast.Error)
}

// recordEntity counts the mutation and publishes it. A failed publish is
// logged only.
func (a *App) recordEntity(ctx context.Context, kind string, action events.Action, id int64, name string) {
	a.metrics.entityOps.WithLabelValues(kind, string(action)).Inc()

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := events.EntityEvent{Kind: kind, Action: action, ID: id, Name: name, Timestamp: a.now().UTC()}
	if err := a.publisher.Publish(pctx, ev); err != nil {
		a.log.Warn("publish entity event failed",
			zap.String("routing_key", ev.RoutingKey()),
			zap.Int64("id", id),
			zap.Error(err),
		)
	}
}

func deletedMessage(name string) string {
	return name + " deleted successfully"
}
