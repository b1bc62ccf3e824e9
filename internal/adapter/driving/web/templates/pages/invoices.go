package pages

import (
	"github.com/a-h/templ"

	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
)

// Invoices lists uploaded files and parsed invoices.
func Invoices(p vm.InvoicesPage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Elem("h1", "Invoices")

		h.Open("div", "class", "grid-2")
		h.Open("section", "class", "card")
		h.Elem("h2", "Upload")
		uploadForm(h, p.CSRFToken, p.CostCenters, p.CostCentersError)
		h.Close("section")

		h.Open("section", "class", "card")
		h.Elem("h2", "Uploaded files")
		h.Inline(p.FilesError)
		if p.FilesError == "" {
			fileTable(h, p.Files)
		}
		h.Close("section")
		h.Close("div")

		h.Open("section", "class", "card")
		h.Elem("h2", "Parsed invoices")
		h.Inline(p.InvoicesError)
		if p.InvoicesError == "" {
			fullInvoiceTable(h, p.Invoices)
		}
		h.Close("section")
	})
}

func fileTable(h *templates.HTML, files []vm.FileRow) {
	if len(files) == 0 {
		h.Elem("p", "No files uploaded yet.", "class", "muted")
		return
	}
	h.Open("table")
	h.Raw("<thead><tr><th>File</th><th>Status</th><th>Uploaded</th></tr></thead>")
	h.Open("tbody")
	for _, f := range files {
		h.Open("tr")
		h.Elem("td", f.Name)
		h.Open("td")
		h.Elem("span", f.Status, "class", "badge "+f.StatusClass)
		h.Close("td")
		h.Elem("td", f.Uploaded)
		h.Close("tr")
	}
	h.Close("tbody")
	h.Close("table")
}

func fullInvoiceTable(h *templates.HTML, rows []vm.InvoiceRow) {
	if len(rows) == 0 {
		h.Elem("p", "No invoices have been parsed yet.", "class", "muted")
		return
	}
	h.Open("table")
	h.Raw("<thead><tr><th>Number</th><th>Company</th><th>Client</th><th>Date</th><th>Due</th><th class=\"num\">Total</th></tr></thead>")
	h.Open("tbody")
	for _, inv := range rows {
		h.Open("tr")
		h.Open("td")
		h.Link(inv.DetailPath, inv.Number)
		h.Close("td")
		h.Elem("td", inv.Company)
		h.Elem("td", inv.Client)
		h.Elem("td", inv.Date)
		h.Elem("td", inv.DueDate)
		h.Elem("td", inv.Total, "class", "num")
		h.Close("tr")
	}
	h.Close("tbody")
	h.Close("table")
}

// InvoiceDetail shows one parsed invoice.
func InvoiceDetail(p vm.InvoiceDetailPage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Open("p")
		h.Link("/invoices", "Back to invoices")
		h.Close("p")

		if p.Error != "" {
			h.Elem("h1", "Invoice")
			h.Inline(p.Error)
			return
		}

		inv := p.Invoice
		h.Elem("h1", "Invoice "+inv.Number)
		h.Open("section", "class", "card")
		h.Open("dl", "class", "facts")
		fact(h, "Company", inv.Company)
		fact(h, "Client", inv.Client)
		fact(h, "Date", inv.Date)
		fact(h, "Due", inv.DueDate)
		h.Close("dl")

		itemTable(h, p.Items)

		h.Open("dl", "class", "totals")
		fact(h, "Subtotal", p.Subtotal)
		fact(h, "Tax ("+p.TaxRate+")", p.Tax)
		fact(h, "Total", inv.Total)
		h.Close("dl")

		if p.Notes != "" {
			h.Elem("h2", "Notes")
			h.Elem("p", p.Notes, "class", "notes")
		}
		h.Close("section")

		if p.ExtraData != "" {
			h.Open("details", "class", "card")
			h.Elem("summary", "Extracted data")
			h.Elem("pre", p.ExtraData)
			h.Close("details")
		}
	})
}

func fact(h *templates.HTML, label, value string) {
	h.Elem("dt", label)
	h.Elem("dd", value)
}

func itemTable(h *templates.HTML, items []vm.ItemRow) {
	if len(items) == 0 {
		h.Elem("p", "No line items.", "class", "muted")
		return
	}
	h.Open("table", "class", "items")
	h.Raw("<thead><tr><th>Description</th><th class=\"num\">Qty</th><th class=\"num\">Price</th><th class=\"num\">Amount</th></tr></thead>")
	h.Open("tbody")
	for _, it := range items {
		h.Open("tr")
		h.Elem("td", it.Description)
		h.Elem("td", it.Quantity, "class", "num")
		h.Elem("td", it.Price, "class", "num")
		h.Elem("td", it.Amount, "class", "num")
		h.Close("tr")
	}
	h.Close("tbody")
	h.Close("table")
}
