package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
)

// Home is the signed-in landing page.
func Home(p vm.HomePage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Elem("h1", "Welcome, "+p.UserName)

		h.Open("section", "class", "stats")
		h.Inline(p.StatsError)
		statCards(h, p.Stats)
		h.Close("section")

		h.Open("div", "class", "grid-2")

		h.Open("section", "class", "card")
		h.Elem("h2", "Recent invoices")
		h.Inline(p.InvoicesError)
		if p.InvoicesError == "" {
			invoiceTable(h, p.Invoices)
		}
		h.Open("p")
		h.Link("/invoices", "All invoices")
		h.Close("p")
		h.Close("section")

		h.Open("section", "class", "card")
		h.Elem("h2", "Upload an invoice")
		uploadForm(h, p.CSRFToken, p.CostCenters, p.CostCentersError)
		h.Close("section")

		h.Close("div")
	})
}

// Dashboard is the statistics page.
func Dashboard(p vm.DashboardPage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Elem("h1", "Dashboard")
		if p.Error != "" {
			h.Inline(p.Error)
			return
		}
		if p.Period != "" {
			h.Elem("p", p.Period, "class", "muted")
		}

		h.Open("section", "class", "stats")
		statCards(h, p.Stats)
		h.Close("section")

		h.Open("section", "class", "card")
		h.Elem("h2", "Expense trend")
		if len(p.Trend) == 0 {
			h.Elem("p", "No expenses in this period.", "class", "muted")
		}
		h.Open("ul", "class", "bars")
		for _, t := range p.Trend {
			h.Open("li")
			h.Elem("span", t.Period, "class", "bar-label")
			h.Open("span", "class", "bar")
			h.Elem("span", "", "class", "bar-fill", "style", "width:"+strconv.Itoa(t.Percent)+"%")
			h.Close("span")
			h.Elem("span", t.Amount+" ("+strconv.Itoa(t.Transactions)+")", "class", "bar-value")
			h.Close("li")
		}
		h.Close("ul")
		h.Close("section")

		h.Open("div", "class", "grid-2")
		shareSection(h, "By cost center", p.Distribution)
		shareSection(h, "By expense type", p.ByExpenseType)
		h.Close("div")

		h.Open("section", "class", "card")
		h.Elem("h2", "Recent large expenses")
		if len(p.LargeExpenses) == 0 {
			h.Elem("p", "Nothing to show.", "class", "muted")
		} else {
			h.Open("table")
			h.Raw("<thead><tr><th>Date</th><th>Description</th><th>Cost center</th><th class=\"num\">Amount</th></tr></thead>")
			h.Open("tbody")
			for _, e := range p.LargeExpenses {
				h.Open("tr")
				h.Elem("td", e.Date)
				h.Elem("td", e.Description)
				h.Elem("td", e.CostCenter)
				h.Elem("td", e.Amount, "class", "num")
				h.Close("tr")
			}
			h.Close("tbody")
			h.Close("table")
		}
		h.Close("section")
	})
}

func statCards(h *templates.HTML, cards []vm.StatCard) {
	for _, c := range cards {
		h.Open("div", "class", "stat")
		h.Elem("span", c.Label, "class", "stat-label")
		h.Elem("strong", c.Value, "class", "stat-value")
		if c.Change != "" {
			class := "stat-change down"
			if c.Up {
				class = "stat-change up"
			}
			h.Elem("span", c.Change, "class", class)
		}
		h.Close("div")
	}
}

func shareSection(h *templates.HTML, title string, rows []vm.ShareRow) {
	h.Open("section", "class", "card")
	h.Elem("h2", title)
	if len(rows) == 0 {
		h.Elem("p", "No data.", "class", "muted")
	}
	h.Open("ul", "class", "bars")
	for _, r := range rows {
		h.Open("li")
		h.Elem("span", r.Label, "class", "bar-label")
		h.Open("span", "class", "bar")
		h.Elem("span", "", "class", "bar-fill", "style", "width:"+strconv.Itoa(r.Percent)+"%")
		h.Close("span")
		h.Elem("span", r.Amount, "class", "bar-value")
		h.Close("li")
	}
	h.Close("ul")
	h.Close("section")
}

func invoiceTable(h *templates.HTML, rows []vm.InvoiceRow) {
	if len(rows) == 0 {
		h.Elem("p", "No invoices yet.", "class", "muted")
		return
	}
	h.Open("table")
	h.Raw("<thead><tr><th>Number</th><th>Company</th><th>Date</th><th class=\"num\">Total</th></tr></thead>")
	h.Open("tbody")
	for _, inv := range rows {
		h.Open("tr")
		h.Open("td")
		h.Link(inv.DetailPath, inv.Number)
		h.Close("td")
		h.Elem("td", inv.Company)
		h.Elem("td", inv.Date)
		h.Elem("td", inv.Total, "class", "num")
		h.Close("tr")
	}
	h.Close("tbody")
	h.Close("table")
}

func uploadForm(h *templates.HTML, token string, costCenters []vm.Option, costCentersError string) {
	if costCentersError != "" {
		h.Inline(costCentersError)
		return
	}
	if len(costCenters) == 0 {
		h.Open("p", "class", "muted")
		h.Text("Create a cost center before uploading invoices. ")
		h.Link("/cost-center", "Manage cost centers")
		h.Close("p")
		return
	}

	h.Open("form", "method", "post", "action", "/invoices/upload", "enctype", "multipart/form-data")
	h.CSRF(token)
	h.Field("Invoice file", "file", "file", "", "required", "required", "accept", ".pdf,.png,.jpg,.jpeg")
	h.Select("Cost center", "costCenterId", "Choose a cost center", costCenters,
		"required", "required",
		"hx-get", "/invoices/expense-types",
		"hx-target", "#upload-expense-type",
		"hx-trigger", "change",
		"hx-swap", "innerHTML",
	)
	h.Open("label", "class", "field")
	h.Elem("span", "Expense type")
	h.Open("select", "name", "expenseTypeId", "id", "upload-expense-type", "required", "required")
	h.Elem("option", "Choose a cost center first", "value", "")
	h.Close("select")
	h.Close("label")
	h.Open("label", "class", "check")
	h.Void("input", "type", "checkbox", "name", "isPublic", "value", "true")
	h.Text(" Public")
	h.Close("label")
	h.Open("label", "class", "check")
	h.Void("input", "type", "checkbox", "name", "processImmediately", "value", "true", "checked", "checked")
	h.Text(" Process immediately")
	h.Close("label")
	h.Submit("Upload", "btn btn-primary")
	h.Close("form")
}

// ExpenseTypeOptions is the option list swapped into the upload form when a
// cost center is picked.
func ExpenseTypeOptions(options []vm.Option, errMsg string) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		switch {
		case errMsg != "":
			h.Elem("option", errMsg, "value", "")
		case len(options) == 0:
			h.Elem("option", "No expense types in this cost center", "value", "")
		default:
			h.Elem("option", "Choose an expense type", "value", "")
		}
		for _, o := range options {
			h.Elem("option", o.Label, "value", o.Value)
		}
	})
}
