package web

import (
	"net/http"

	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
)

// Home renders the signed-in landing page. Its three sections load
// concurrently and fail independently.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	view := h.home.Load(r.Context(), sess)

	p := vm.HomePage{Page: h.page(w, r, "Home", "home", sess)}
	if stats, ok := view.Stats.Unwrap(); ok {
		p.Stats = toStatCards(stats.InvoiceStatistics)
	} else {
		p.StatsError = view.Stats.Message()
	}
	if invoices, ok := view.RecentInvoices.Unwrap(); ok {
		p.Invoices = toInvoiceRows(invoices)
	} else {
		p.InvoicesError = view.RecentInvoices.Message()
	}
	if centers, ok := view.CostCenters.Unwrap(); ok {
		p.CostCenters = toCostCenterOptions(centers, "")
	} else {
		p.CostCentersError = view.CostCenters.Message()
	}

	h.render(w, r, p.Page, pages.Home(p))
}

// Dashboard renders the statistics page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	res := h.dashboard.Dashboard(r.Context(), sess)

	var p vm.DashboardPage
	if stats, ok := res.Unwrap(); ok {
		p = toDashboardPage(stats)
	} else {
		p.Error = res.Message()
	}
	p.Page = h.page(w, r, "Dashboard", "dashboard", sess)

	h.render(w, r, p.Page, pages.Dashboard(p))
}
