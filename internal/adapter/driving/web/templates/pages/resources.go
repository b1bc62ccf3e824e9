package pages

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
)

// CostCenters manages the client's cost centers.
func CostCenters(p vm.CostCentersPage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Elem("h1", "Cost centers")

		h.Open("section", "class", "card")
		h.Open("form", "method", "post", "action", "/cost-center", "class", "row-form")
		h.CSRF(p.CSRFToken)
		h.Field("New cost center", "name", "text", "", "required", "required", "maxlength", "100")
		h.Submit("Create", "btn btn-primary")
		h.Close("form")
		h.Close("section")

		h.Open("section", "class", "card")
		showDeletedToggle(h, "/cost-center", p.ShowDeleted, nil)
		h.Inline(p.Error)
		if p.Error == "" {
			costCenterTable(h, p)
		}
		h.Close("section")
	})
}

func costCenterTable(h *templates.HTML, p vm.CostCentersPage) {
	if len(p.Rows) == 0 {
		h.Elem("p", emptyText(p.ShowDeleted, "No cost centers yet."), "class", "muted")
		return
	}
	h.Open("table")
	h.Raw("<thead><tr><th>Name</th><th>Status</th><th>Created</th><th></th></tr></thead>")
	h.Open("tbody")
	for _, row := range p.Rows {
		base := "/cost-center/" + url.PathEscape(row.ID)
		h.Open("tr", "class", rowClass(row.Deleted))
		h.Open("td")
		if row.Deleted {
			h.Text(row.Name)
		} else {
			renameForm(h, base+"/update", row.Name, p.CSRFToken)
		}
		h.Close("td")
		h.Open("td")
		switch {
		case row.Deleted:
			h.Elem("span", "Deleted", "class", "badge badge-muted")
		case row.Active:
			h.Elem("span", "Active", "class", "badge badge-ok")
		default:
			h.Elem("span", "Inactive", "class", "badge badge-warn")
		}
		h.Close("td")
		h.Elem("td", row.Created)
		h.Open("td", "class", "actions")
		if row.Deleted {
			h.PostButton(base+"/restore", "Restore", "btn", p.CSRFToken)
		} else {
			h.PostButton(base+"/delete", "Delete", "btn btn-danger", p.CSRFToken)
		}
		h.Close("td")
		h.Close("tr")
	}
	h.Close("tbody")
	h.Close("table")
}

// ExpenseTypes manages the expense types of one cost center.
func ExpenseTypes(p vm.ExpenseTypesPage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Elem("h1", "Expense types")

		h.Open("section", "class", "card")
		if p.CostCentersError != "" {
			h.Inline(p.CostCentersError)
			h.Close("section")
			return
		}
		if len(p.CostCenters) == 0 {
			h.Open("p", "class", "muted")
			h.Text("Expense types belong to a cost center. ")
			h.Link("/cost-center", "Create a cost center first")
			h.Close("p")
			h.Close("section")
			return
		}
		h.Open("form", "method", "get", "action", "/expense-type", "class", "row-form")
		h.Select("Cost center", "costCenter", "", p.CostCenters, "onchange", "this.form.requestSubmit()")
		if p.ShowDeleted {
			h.Hidden("showDeleted", "true")
		}
		h.Submit("Show", "btn")
		h.Close("form")
		h.Close("section")

		if p.CostCenterID == "" {
			return
		}

		h.Open("section", "class", "card")
		h.Open("form", "method", "post", "action", "/expense-type", "class", "row-form")
		h.CSRF(p.CSRFToken)
		h.Hidden("costCenterId", p.CostCenterID)
		h.Field("New expense type", "name", "text", "", "required", "required", "maxlength", "100")
		h.Submit("Create", "btn btn-primary")
		h.Close("form")
		h.Close("section")

		h.Open("section", "class", "card")
		showDeletedToggle(h, "/expense-type", p.ShowDeleted, url.Values{"costCenter": {p.CostCenterID}})
		h.Inline(p.Error)
		if p.Error == "" {
			expenseTypeTable(h, p)
		}
		h.Close("section")
	})
}

func expenseTypeTable(h *templates.HTML, p vm.ExpenseTypesPage) {
	if len(p.Rows) == 0 {
		h.Elem("p", emptyText(p.ShowDeleted, "No expense types in this cost center."), "class", "muted")
		return
	}
	h.Open("table")
	h.Raw("<thead><tr><th>Name</th><th>Created</th><th></th></tr></thead>")
	h.Open("tbody")
	for _, row := range p.Rows {
		base := "/expense-type/" + url.PathEscape(p.CostCenterID) + "/" + url.PathEscape(row.ID)
		h.Open("tr", "class", rowClass(row.Deleted))
		h.Open("td")
		if row.Deleted {
			h.Text(row.Name + " ")
			h.Elem("span", "Deleted", "class", "badge badge-muted")
		} else {
			renameForm(h, base+"/update", row.Name, p.CSRFToken)
		}
		h.Close("td")
		h.Elem("td", row.Created)
		h.Open("td", "class", "actions")
		if row.Deleted {
			h.PostButton(base+"/restore", "Restore", "btn", p.CSRFToken)
		} else {
			h.PostButton(base+"/delete", "Delete", "btn btn-danger", p.CSRFToken)
		}
		h.Close("td")
		h.Close("tr")
	}
	h.Close("tbody")
	h.Close("table")
}

// APIKeys manages the client's API keys.
func APIKeys(p vm.APIKeysPage) templ.Component {
	return templates.Component(func(h *templates.HTML) {
		h.Elem("h1", "API keys")

		h.Open("section", "class", "card")
		h.Open("form", "method", "post", "action", "/api-key", "class", "row-form")
		h.CSRF(p.CSRFToken)
		h.Field("New key", "key", "text", "", "required", "required", "maxlength", "200", "autocomplete", "off")
		h.Submit("Create key", "btn btn-primary")
		h.Close("form")
		h.Close("section")

		h.Open("section", "class", "card")
		showDeletedToggle(h, "/api-key", p.ShowDeleted, nil)
		h.Inline(p.Error)
		if p.Error == "" {
			apiKeyTable(h, p)
		}
		h.Close("section")
	})
}

func apiKeyTable(h *templates.HTML, p vm.APIKeysPage) {
	if len(p.Rows) == 0 {
		h.Elem("p", emptyText(p.ShowDeleted, "No API keys yet."), "class", "muted")
		return
	}
	h.Open("table")
	h.Raw("<thead><tr><th>Key</th><th>Status</th><th>Created</th><th></th></tr></thead>")
	h.Open("tbody")
	for _, row := range p.Rows {
		base := "/api-key/" + url.PathEscape(row.ID)
		h.Open("tr", "class", rowClass(row.Deleted))
		h.Open("td")
		h.Elem("code", row.Masked, "title", "Click to reveal", "data-reveal", row.Key)
		h.Close("td")
		h.Open("td")
		switch {
		case row.Deleted:
			h.Elem("span", "Deleted", "class", "badge badge-muted")
		case row.Revoked:
			h.Elem("span", "Revoked", "class", "badge badge-warn")
		default:
			h.Elem("span", "Active", "class", "badge badge-ok")
		}
		h.Close("td")
		h.Elem("td", row.Created)
		h.Open("td", "class", "actions")
		if row.Deleted {
			h.PostButton(base+"/restore", "Restore", "btn", p.CSRFToken)
		} else {
			if row.Revoked {
				h.PostButton(base+"/revoke", "Reinstate", "btn", p.CSRFToken, "key", row.Key, "revoked", "false")
			} else {
				h.PostButton(base+"/revoke", "Revoke", "btn btn-warn", p.CSRFToken, "key", row.Key, "revoked", "true")
			}
			h.PostButton(base+"/delete", "Delete", "btn btn-danger", p.CSRFToken)
		}
		h.Close("td")
		h.Close("tr")
	}
	h.Close("tbody")
	h.Close("table")
}

func renameForm(h *templates.HTML, action, name, token string) {
	h.Open("form", "method", "post", "action", action, "class", "inline rename")
	h.CSRF(token)
	h.Void("input", "type", "text", "name", "name", "value", name, "required", "required", "maxlength", "100", "aria-label", "Name")
	h.Submit("Save", "btn btn-small")
	h.Close("form")
}

func showDeletedToggle(h *templates.HTML, path string, showing bool, q url.Values) {
	if q == nil {
		q = url.Values{}
	}
	label := "Show deleted"
	if showing {
		label = "Hide deleted"
	} else {
		q.Set("showDeleted", "true")
	}
	href := path
	if enc := q.Encode(); enc != "" {
		href += "?" + enc
	}
	h.Open("p", "class", "toolbar")
	h.Link(href, label)
	h.Close("p")
}

func emptyText(showingDeleted bool, fallback string) string {
	if showingDeleted {
		return "Nothing has been deleted."
	}
	return fallback
}

func rowClass(deleted bool) string {
	if deleted {
		return "deleted"
	}
	return ""
}
