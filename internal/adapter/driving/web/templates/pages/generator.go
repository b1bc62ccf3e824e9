package pages

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
)

// Generator lists the user's drafts.
func Generator(p vm.GeneratorPage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Elem("h1", "Invoice generator")

		if !p.Enabled {
			h.Open("section", "class", "card")
			h.Elem("p", "The invoice generator is not available on this server.", "class", "muted")
			h.Close("section")
			return
		}

		h.Open("p", "class", "toolbar")
		h.Link("/invoice-generator/new", "New invoice", "class", "btn btn-primary")
		h.Close("p")

		h.Open("section", "class", "card")
		h.Inline(p.Error)
		switch {
		case p.Error != "":
		case len(p.Drafts) == 0:
			h.Elem("p", "No saved invoices yet.", "class", "muted")
		default:
			h.Open("table")
			h.Raw("<thead><tr><th>Number</th><th>Client</th><th>Date</th><th class=\"num\">Total</th><th>Updated</th><th></th></tr></thead>")
			h.Open("tbody")
			for _, d := range p.Drafts {
				base := "/invoice-generator/" + url.PathEscape(d.ID)
				h.Open("tr")
				h.Open("td")
				h.Link(base, d.Number)
				h.Close("td")
				h.Elem("td", d.Client)
				h.Elem("td", d.Date)
				h.Elem("td", d.Total, "class", "num")
				h.Elem("td", d.Updated)
				h.Open("td", "class", "actions")
				h.Link(base+"/preview", "Preview", "class", "btn")
				h.PostButton(base+"/delete", "Delete", "btn btn-danger", p.CSRFToken)
				h.Close("td")
				h.Close("tr")
			}
			h.Close("tbody")
			h.Close("table")
		}
		h.Close("section")
	})
}

// DraftForm edits a draft.
func DraftForm(p vm.DraftFormPage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		action := "/invoice-generator"
		heading := "New invoice"
		if p.ID != "" {
			action += "/" + url.PathEscape(p.ID)
			heading = "Edit invoice"
		}

		h.Open("p")
		h.Link("/invoice-generator", "Back to invoices")
		h.Close("p")
		h.Elem("h1", heading)

		h.Open("form", "method", "post", "action", action, "class", "draft")
		h.CSRF(p.CSRFToken)

		h.Open("section", "class", "card grid-3")
		h.Field("Invoice number", "invoiceNumber", "text", p.InvoiceNumber, "maxlength", "50")
		h.Field("Invoice date", "invoiceDate", "date", p.InvoiceDate)
		h.Field("Due date", "dueDate", "date", p.DueDate)
		h.Close("section")

		h.Open("div", "class", "grid-2")
		partyFields(h, "From", "company", p.Company)
		partyFields(h, "Bill to", "client", p.Client)
		h.Close("div")

		h.Open("section", "class", "card")
		h.Elem("h2", "Items")
		h.Open("table", "class", "items", "id", "draft-items")
		h.Raw("<thead><tr><th>Description</th><th class=\"num\">Qty</th><th class=\"num\">Price</th></tr></thead>")
		h.Open("tbody")
		for _, item := range p.Items {
			h.Open("tr", "class", "item-row")
			h.Open("td")
			h.Void("input", "type", "text", "name", "itemDescription", "value", item.Description, "aria-label", "Description")
			h.Close("td")
			h.Open("td", "class", "num")
			h.Void("input", "type", "number", "name", "itemQuantity", "value", item.Quantity, "min", "0", "step", "any", "aria-label", "Quantity")
			h.Close("td")
			h.Open("td", "class", "num")
			h.Void("input", "type", "number", "name", "itemPrice", "value", item.Price, "min", "0", "step", "0.01", "aria-label", "Price")
			h.Close("td")
			h.Close("tr")
		}
		h.Close("tbody")
		h.Close("table")
		h.Elem("button", "Add row", "type", "button", "class", "btn", "data-add-row", "#draft-items")
		h.Close("section")

		h.Open("section", "class", "card grid-2")
		h.Field("Tax rate (%)", "taxRate", "number", p.TaxRate, "min", "0", "max", "100", "step", "0.01")
		h.TextArea("Notes (markdown)", "notes", p.Notes, 4)
		h.Close("section")

		if p.ID != "" {
			h.Open("dl", "class", "totals")
			fact(h, "Subtotal", p.Subtotal)
			fact(h, "Tax", p.Tax)
			fact(h, "Total", p.Total)
			h.Close("dl")
		}

		h.Open("p", "class", "actions")
		h.Submit("Save", "btn btn-primary")
		if p.ID != "" {
			h.Link("/invoice-generator/"+url.PathEscape(p.ID)+"/preview", "Preview", "class", "btn")
		}
		h.Close("p")
		h.Close("form")
	})
}

func partyFields(h *templates.HTML, title, prefix string, party vm.PartyForm) {
	h.Open("section", "class", "card")
	h.Elem("h2", title)
	h.Field("Name", prefix+"Name", "text", party.Name)
	h.Field("Address", prefix+"Address", "text", party.Address)
	h.Field("Email", prefix+"Email", "email", party.Email)
	h.Field("Phone", prefix+"Phone", "tel", party.Phone)
	h.Close("section")
}

// DraftPreview renders a draft as a printable invoice.
func DraftPreview(p vm.DraftPreviewPage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Open("p", "class", "toolbar no-print")
		h.Link("/invoice-generator/"+url.PathEscape(p.ID), "Edit", "class", "btn")
		h.Elem("button", "Print", "type", "button", "class", "btn btn-primary", "data-print", "true")
		h.Close("p")

		h.Open("article", "class", "invoice-sheet")
		h.Open("header", "class", "sheet-head")
		h.Elem("h1", "Invoice")
		h.Open("dl", "class", "facts")
		if p.InvoiceNumber != "" {
			fact(h, "Number", p.InvoiceNumber)
		}
		fact(h, "Date", p.InvoiceDate)
		if p.DueDate != "" {
			fact(h, "Due", p.DueDate)
		}
		h.Close("dl")
		h.Close("header")

		h.Open("div", "class", "grid-2")
		partyBlock(h, "From", p.Company)
		partyBlock(h, "Bill to", p.Client)
		h.Close("div")

		itemTable(h, p.Items)

		h.Open("dl", "class", "totals")
		fact(h, "Subtotal", p.Subtotal)
		fact(h, "Tax ("+p.TaxRate+")", p.Tax)
		fact(h, "Total", p.Total)
		h.Close("dl")

		if p.NotesHTML != "" {
			h.Open("section", "class", "notes")
			h.Raw(p.NotesHTML)
			h.Close("section")
		}
		h.Close("article")
	})
}

func partyBlock(h *templates.HTML, title string, party vm.PartyForm) {
	h.Open("address")
	h.Elem("strong", title)
	for _, line := range []string{party.Name, party.Address, party.Email, party.Phone} {
		if line == "" {
			continue
		}
		h.Raw("<br>")
		h.Text(line)
	}
	h.Close("address")
}
