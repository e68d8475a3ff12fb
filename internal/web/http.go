package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"DashboardPro/internal/apperr"
	"DashboardPro/internal/catalog"
	"DashboardPro/internal/customer"
	"DashboardPro/internal/dashboard"
	"DashboardPro/internal/nav"
	"DashboardPro/internal/release"
	"DashboardPro/internal/settings"
	"DashboardPro/internal/toast"
	"DashboardPro/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	App *dashboard.App
	Log *zap.Logger
}

func (s *Server) Routes(limiter *kit.IPRateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Get("/shell", s.handleShell)
	r.Get("/nav", s.handleNav)
	r.Get("/pages/{page}", s.handlePage)
	r.Get("/theme", s.handleTheme)
	r.Get("/toasts", s.handleToasts)
	r.Get("/customers", s.handleCustomers)
	r.Get("/products", s.handleProducts)
	r.Get("/orders", s.handleOrders)
	r.Get("/messages", s.handleMessages)
	r.Get("/settings", s.handleSettings)
	r.Get("/update", s.handleUpdate)

	r.Group(func(wr chi.Router) {
		if limiter != nil {
			wr.Use(limiter.Middleware)
		}

		wr.Post("/nav/select", s.handleSelectPage)
		wr.Post("/nav/drawer/{op}", s.handleDrawer)
		wr.Put("/nav/viewport", s.handleViewport)

		wr.Post("/theme/toggle", s.handleToggleTheme)
		wr.Post("/toasts", s.handleNotify)

		wr.Post("/customers", s.handleAddCustomer)
		wr.Delete("/customers/{id}", s.handleDeleteCustomer)
		wr.Post("/products", s.handleAddProduct)
		wr.Delete("/products/{id}", s.handleDeleteProduct)

		wr.Get("/orders/export", s.handleExportOrders)

		wr.Get("/messages/{id}", s.handleOpenMessage)
		wr.Post("/messages/{id}/replies", s.handleReply)

		wr.Put("/settings", s.handleSaveSettings)
		wr.Post("/settings/notifications/toggle", s.handleToggleNotifications)

		wr.Post("/update/signal", s.handleUpdateSignal)
		wr.Post("/update/apply", s.handleApplyUpdate)
		wr.Post("/update/dismiss", s.handleDismissUpdate)
	})

	return r
}

func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.App.Shell(r.Context()))
}

type navResp struct {
	nav.State
	Items []nav.Item `json:"items"`
}

func (s *Server) navResp(st nav.State) navResp {
	return navResp{State: st, Items: s.App.NavItems()}
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.navResp(s.App.Nav()))
}

type selectReq struct {
	Page string `json:"page"`
}

func (s *Server) handleSelectPage(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if !decode(w, r, &req) {
		return
	}
	p, err := nav.ParsePage(req.Page)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "unknown page", map[string]string{"page": req.Page})
		return
	}
	st, err := s.App.SelectPage(p)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.navResp(st))
}

func (s *Server) handleDrawer(w http.ResponseWriter, r *http.Request) {
	var st nav.State
	switch chi.URLParam(r, "op") {
	case "open":
		st = s.App.OpenDrawer()
	case "close":
		st = s.App.CloseDrawer()
	case "toggle":
		st = s.App.ToggleDrawer()
	default:
		kit.WriteError(w, r, http.StatusNotFound, "unknown drawer operation", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.navResp(st))
}

type viewportReq struct {
	Mobile bool `json:"mobile"`
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	var req viewportReq
	if !decode(w, r, &req) {
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.navResp(s.App.SetMobile(req.Mobile)))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	p, err := nav.ParsePage(chi.URLParam(r, "page"))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	v, err := s.App.View(r.Context(), p)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, v)
}

type themeResp struct {
	Theme string `json:"theme"`
	Dark  bool   `json:"dark"`
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	t := s.App.Theme()
	kit.WriteJSON(w, http.StatusOK, themeResp{Theme: string(t), Dark: t.IsDark()})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.App.ToggleTheme(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, themeResp{Theme: string(t), Dark: t.IsDark()})
}

func (s *Server) handleToasts(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.App.Toasts())
}

type notifyReq struct {
	Message  string         `json:"message"`
	Severity toast.Severity `json:"severity"`
}

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	var req notifyReq
	if !decode(w, r, &req) {
		return
	}
	if req.Message == "" {
		s.writeErr(w, r, apperr.Required("message"))
		return
	}
	switch req.Severity {
	case "", toast.Success, toast.Error, toast.Info:
	default:
		s.writeErr(w, r, apperr.Invalid("severity", "must be success, error or info"))
		return
	}
	kit.WriteJSON(w, http.StatusCreated, s.App.Notify(req.Message, req.Severity))
}

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	cs, err := s.App.Customers(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, cs)
}

func (s *Server) handleAddCustomer(w http.ResponseWriter, r *http.Request) {
	var f customer.Form
	if !decode(w, r, &f) {
		return
	}
	c, err := s.App.AddCustomer(r.Context(), f)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, c)
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if _, err := s.App.DeleteCustomer(r.Context(), id); err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.NoContent(w)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := s.App.Products(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, ps)
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var f catalog.Form
	if !decode(w, r, &f) {
		return
	}
	p, err := s.App.AddProduct(r.Context(), f)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if _, err := s.App.DeleteProduct(r.Context(), id); err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.NoContent(w)
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.App.Orders(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, orders)
}

func (s *Server) handleExportOrders(w http.ResponseWriter, r *http.Request) {
	doc, err := s.App.ExportOrders(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		s.Log.Warn("write orders csv", zap.Error(err))
	}
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	ms, err := s.App.Messages(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, ms)
}

func (s *Server) handleOpenMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	m, err := s.App.OpenMessage(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, m)
}

type replyReq struct {
	Body string `json:"body"`
}

func (s *Server) handleReply(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req replyReq
	if !decode(w, r, &req) {
		return
	}
	rep, err := s.App.ReplyToMessage(r.Context(), id, req.Body)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, rep)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.App.Settings(r.Context()))
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var p settings.Profile
	if !decode(w, r, &p) {
		return
	}
	saved, err := s.App.SaveSettings(r.Context(), p)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, saved)
}

func (s *Server) handleToggleNotifications(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.App.ToggleNotifications(r.Context()))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.App.Update())
}

func (s *Server) handleUpdateSignal(w http.ResponseWriter, r *http.Request) {
	var sig release.Signals
	if !decode(w, r, &sig) {
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.App.SignalUpdate(sig))
}

func (s *Server) handleApplyUpdate(w http.ResponseWriter, r *http.Request) {
	st, err := s.App.ApplyUpdate(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, st)
}

func (s *Server) handleDismissUpdate(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.App.DismissUpdate())
}

// writeErr maps domain errors onto status codes. Anything unrecognised is a
// 500 and gets logged.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		var details map[string]string
		if fe, ok := apperr.Field(err); ok {
			details = map[string]string{"field": fe.Field, "reason": fe.Reason}
		}
		kit.WriteError(w, r, http.StatusBadRequest, "validation failed", details)
	case errors.Is(err, apperr.ErrUnknownPage):
		kit.WriteError(w, r, http.StatusNotFound, "unknown page", nil)
	case errors.Is(err, apperr.ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "not found", nil)
	case errors.Is(err, release.ErrNoUpdate):
		kit.WriteError(w, r, http.StatusConflict, "no update pending", nil)
	default:
		s.Log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "internal error", nil)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid json", nil)
		return false
	}
	return true
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}
