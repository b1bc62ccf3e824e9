// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	httphandler "github.com/ericfisherdev/wizeportal/internal/adapter/driving/http"
	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/session"
	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/wizeportal/internal/application"
	"github.com/ericfisherdev/wizeportal/internal/domain/model"
	"github.com/ericfisherdev/wizeportal/internal/domain/port/driven"
)

// Deps are the collaborators of Handler. Drafts may be nil, which disables
// the invoice generator.
type Deps struct {
	Accounts     driven.AccountGateway
	CostCenters  driven.CostCenterGateway
	ExpenseTypes driven.ExpenseTypeGateway
	APIKeys      driven.APIKeyGateway
	Invoices     driven.InvoiceGateway
	Dashboard    driven.DashboardGateway

	Sessions *session.Store
	Flows    *session.FlowStore

	AuthFlow *application.AuthFlow
	Home     *application.HomeService
	Drafts   *application.DraftService

	SecureCookies bool
	Logger        *slog.Logger
}

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	accounts     driven.AccountGateway
	costCenters  driven.CostCenterGateway
	expenseTypes driven.ExpenseTypeGateway
	apiKeys      driven.APIKeyGateway
	invoices     driven.InvoiceGateway
	dashboard    driven.DashboardGateway

	sessions *session.Store
	flows    *session.FlowStore

	authFlow *application.AuthFlow
	home     *application.HomeService
	drafts   *application.DraftService

	secureCookies bool
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(d Deps) *Handler {
	return &Handler{
		accounts:      d.Accounts,
		costCenters:   d.CostCenters,
		expenseTypes:  d.ExpenseTypes,
		apiKeys:       d.APIKeys,
		invoices:      d.Invoices,
		dashboard:     d.Dashboard,
		sessions:      d.Sessions,
		flows:         d.Flows,
		authFlow:      d.AuthFlow,
		home:          d.Home,
		drafts:        d.Drafts,
		secureCookies: d.SecureCookies,
		logger:        d.Logger,
	}
}

// page builds the layout data shared by every page. It must run before the
// body is written because it may set the CSRF cookie.
func (h *Handler) page(w http.ResponseWriter, r *http.Request, title, active string, sess *model.Session) vm.Page {
	p := vm.Page{
		Title:     title,
		Active:    active,
		CSRFToken: h.csrfToken(w, r),
		Flash:     flashFrom(r),
	}
	if sess != nil {
		p.SignedIn = true
		p.UserName = sess.DisplayName()
	}
	return p
}

// render writes body inside the layout.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, p vm.Page, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Layout(p, body).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// renderFragment writes a component without the layout, for HTMX swaps.
func (h *Handler) renderFragment(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render fragment", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// currentSession returns the signed-in session. The guard only checks that
// the cookie exists, so an unreadable one is deleted here and the browser is
// sent to the login page.
func (h *Handler) currentSession(w http.ResponseWriter, r *http.Request) (*model.Session, bool) {
	sess := h.sessions.Get(r)
	if sess == nil {
		h.sessions.Delete(w)
		redirectWithError(w, r, httphandler.LoginPath, "Your session has ended. Please sign in again.")
		return nil, false
	}
	return sess, true
}

// postSession combines the CSRF check with currentSession for form posts.
func (h *Handler) postSession(w http.ResponseWriter, r *http.Request) (*model.Session, bool) {
	if !h.checkCSRF(w, r) {
		return nil, false
	}
	return h.currentSession(w, r)
}
