package templates

import (
	"strconv"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
)

// AppName is shown in the title bar and the header.
const AppName = "Wize Portal"

type navEntry struct {
	key, path, label string
}

var navEntries = []navEntry{
	{"home", "/home", "Home"},
	{"dashboard", "/dashboard", "Dashboard"},
	{"invoices", "/invoices", "Invoices"},
	{"cost-center", "/cost-center", "Cost centers"},
	{"expense-type", "/expense-type", "Expense types"},
	{"api-key", "/api-key", "API keys"},
	{"invoice-generator", "/invoice-generator", "Invoice generator"},
}

// Layout wraps body in the full HTML document.
func Layout(p vm.Page, body templ.Component) templ.Component {
	return Component(func(h *HTML) {
		h.Raw("<!DOCTYPE html>")
		h.Open("html", "lang", "en")
		h.Open("head")
		h.Void("meta", "charset", "utf-8")
		h.Void("meta", "name", "viewport", "content", "width=device-width, initial-scale=1")
		h.Void("meta", "name", "csrf-token", "content", p.CSRFToken)
		if p.RefreshTo != "" {
			h.Void("meta", "http-equiv", "refresh", "content", strconv.Itoa(p.RefreshAfter)+";url="+p.RefreshTo)
		}
		title := AppName
		if p.Title != "" {
			title = p.Title + " | " + AppName
		}
		h.Elem("title", title)
		h.Void("link", "rel", "stylesheet", "href", "/static/app.css")
		h.Raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
		h.Raw(`<script src="/static/app.js" defer></script>`)
		h.Close("head")

		h.Open("body", "hx-boost", "true")
		header(h, p)
		h.Open("div", "id", "flash")
		h.Banner("success", p.Flash.Success)
		h.Banner("error", p.Flash.Error)
		h.Close("div")
		if p.RefreshTo != "" {
			// Boosted navigations do not run meta refresh; app.js picks this up.
			h.Elem("div", "", "hidden", "hidden", "data-redirect-to", p.RefreshTo, "data-redirect-after", strconv.Itoa(p.RefreshAfter*1000))
		}
		h.Open("main", "class", "container")
		h.Render(body)
		h.Close("main")
		h.Close("body")
		h.Close("html")
	})
}

func header(h *HTML, p vm.Page) {
	h.Open("header", "class", "topbar")
	h.Link("/", AppName, "class", "brand")
	if !p.SignedIn {
		h.Close("header")
		return
	}

	h.Open("nav")
	for _, e := range navEntries {
		class := "nav-link"
		if e.key == p.Active {
			class += " active"
		}
		h.Link(e.path, e.label, "class", class)
	}
	h.Close("nav")

	h.Open("div", "class", "user")
	h.Elem("span", p.UserName, "class", "user-name")
	h.PostButton("/logout", "Sign out", "btn btn-link", p.CSRFToken)
	h.Close("div")
	h.Close("header")
}
