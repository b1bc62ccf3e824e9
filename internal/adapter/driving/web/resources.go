package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

const (
	costCentersPath  = "/cost-center"
	expenseTypesPath = "/expense-type"
	apiKeysPath      = "/api-key"

	missingNameMessage = "Enter a name."
	missingKeyMessage  = "Enter a key."
)

// showingDeleted reports whether the list should show deleted rows instead
// of live ones.
func showingDeleted(r *http.Request) bool {
	return r.URL.Query().Get("showDeleted") == "true"
}

// deletedView is path switched to the deleted rows. A failed restore
// returns there so the row stays in view.
func deletedView(path string) string {
	return withParam(path, "showDeleted", "true")
}

// CostCenters lists the client's cost centers.
func (h *Handler) CostCenters(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	p := vm.CostCentersPage{
		Page:        h.page(w, r, "Cost centers", "cost-center", sess),
		ShowDeleted: showingDeleted(r),
	}
	res := h.costCenters.ListCostCenters(r.Context(), sess, model.DefaultListQuery())
	if centers, ok := res.Unwrap(); ok {
		p.Rows = toCostCenterRows(centers, p.ShowDeleted)
	} else {
		p.Error = res.Message()
	}

	h.render(w, r, p.Page, pages.CostCenters(p))
}

// CreateCostCenter adds a cost center.
func (h *Handler) CreateCostCenter(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.postSession(w, r)
	if !ok {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		redirectWithError(w, r, costCentersPath, missingNameMessage)
		return
	}

	res := h.costCenters.CreateCostCenter(r.Context(), sess, name)
	redirectResult(w, r, costCentersPath, res, "Cost center "+name+" created.")
}

// UpdateCostCenter renames a cost center.
func (h *Handler) UpdateCostCenter(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.postSession(w, r)
	if !ok {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		redirectWithError(w, r, costCentersPath, missingNameMessage)
		return
	}

	res := h.costCenters.UpdateCostCenter(r.Context(), sess, r.PathValue("id"), name)
	redirectResult(w, r, costCentersPath, res, "Cost center updated.")
}

// DeleteCostCenter soft-deletes a cost center.
func (h *Handler) DeleteCostCenter(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.postSession(w, r)
	if !ok {
		return
	}

	res := h.costCenters.DeleteCostCenter(r.Context(), sess, r.PathValue("id"))
	redirectResult(w, r, costCentersPath, res, "Cost center deleted.")
}

// RestoreCostCenter brings back a deleted cost center.
func (h *Handler) RestoreCostCenter(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.postSession(w, r)
	if !ok {
		return
	}

	res := h.costCenters.RestoreCostCenter(r.Context(), sess, r.PathValue("id"))
	if !res.OK() {
		redirectWithError(w, r, deletedView(costCentersPath), res.Message())
		return
	}
	redirectSuccess(w, r, costCentersPath, messageOr(res, "Cost center restored."))
}

// ExpenseTypes lists the expense types of the chosen cost center. Without a
// choice the first active cost center is used.
func (h *Handler) ExpenseTypes(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	p := vm.ExpenseTypesPage{
		Page:         h.page(w, r, "Expense types", "expense-type", sess),
		ShowDeleted:  showingDeleted(r),
		CostCenterID: r.URL.Query().Get("costCenter"),
	}

	centersRes := h.costCenters.ListCostCenters(ctx, sess, model.DefaultListQuery())
	centers, ok := centersRes.Unwrap()
	if !ok {
		p.CostCentersError = centersRes.Message()
		h.render(w, r, p.Page, pages.ExpenseTypes(p))
		return
	}
	active := model.ActiveCostCenters(centers)
	if p.CostCenterID == "" && len(active) > 0 {
		p.CostCenterID = active[0].ID.String()
	}
	p.CostCenters = toCostCenterOptions(active, p.CostCenterID)

	if p.CostCenterID != "" {
		res := h.expenseTypes.ListExpenseTypes(ctx, sess, p.CostCenterID, model.DefaultListQuery())
		if types, ok := res.Unwrap(); ok {
			p.Rows = toExpenseTypeRows(types, p.ShowDeleted)
		} else {
			p.Error = res.Message()
		}
	}

	h.render(w, r, p.Page, pages.ExpenseTypes(p))
}

// expenseTypesPathFor is the list page of one cost center.
func expenseTypesPathFor(costCenterID string) string {
	if costCenterID == "" {
		return expenseTypesPath
	}
	return expenseTypesPath + "?" + url.Values{"costCenter": {costCenterID}}.Encode()
}

// CreateExpenseType adds an expense type to a cost center.
func (h *Handler) CreateExpenseType(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.postSession(w, r)
	if !ok {
		return
	}

	costCenterID := r.FormValue("costCenterId")
	back := expenseTypesPathFor(costCenterID)
	if costCenterID == "" {
		redirectWithError(w, r, back, "Choose a cost center.")
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		redirectWithError(w, r, back, missingNameMessage)
		return
	}

	res := h.expenseTypes.CreateExpenseType(r.Context(), sess, costCenterID, name)
	redirectResult(w, r, back, res, "Expense type "+name+" created.")
}

// UpdateExpenseType renames an expense type.
func (h *Handler) UpdateExpenseType(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.postSession(w, r)
	if !ok {
		return
	}

	costCenterID := r.PathValue("costCenter")
	back := expenseTypesPathFor(costCenterID)
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		redirectWithError(w, r, back, missingNameMessage)
		return
	}

	res := h.expenseTypes.UpdateExpenseType(r.Context(), sess, costCenterID, r.PathValue("id"), name)
	redirectResult(w, r, back, res, "Expense type updated.")
}

// DeleteExpenseType soft-deletes an expense type.
func (h *Handler) DeleteExpenseType(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.postSession(w, r)
	if !ok {
		return
	}

	costCenterID := r.PathValue("costCenter")
	res := h.expenseTypes.DeleteExpenseType(r.Context(), sess, costCenterID, r.PathValue("id"))
	redirectResult(w, r, expenseTypesPathFor(costCenterID), res, "Expense type deleted.")
}

// RestoreExpenseType brings back a deleted expense type.
func (h *Handler) RestoreExpenseType(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.postSession(w, r)
	if !ok {
		return
	}

	costCenterID := r.PathValue("costCenter")
	back := expenseTypesPathFor(costCenterID)
	res := h.expenseTypes.RestoreExpenseType(r.Context(), sess, costCenterID, r.PathValue("id"))
	if !res.OK() {
		redirectWithError(w, r, deletedView(back), res.Message())
		return
	}
	redirectSuccess(w, r, back, messageOr(res, "Expense type restored."))
}

// APIKeys lists the client's API keys.
func (h *Handler) APIKeys(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	p := vm.APIKeysPage{
		Page:        h.page(w, r, "API keys", "api-key", sess),
		ShowDeleted: showingDeleted(r),
	}
	res := h.apiKeys.ListAPIKeys(r.Context(), sess)
	if keys, ok := res.Unwrap(); ok {
		p.Rows = toAPIKeyRows(keys, p.ShowDeleted)
	} else {
		p.Error = res.Message()
	}

	h.render(w, r, p.Page, pages.APIKeys(p))
}

// CreateAPIKey registers a key entered by the user.
func (h *Handler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.postSession(w, r)
	if !ok {
		return
	}

	key := strings.TrimSpace(r.FormValue("key"))
	if key == "" {
		redirectWithError(w, r, apiKeysPath, missingKeyMessage)
		return
	}

	res := h.apiKeys.CreateAPIKey(r.Context(), sess, key)
	redirectResult(w, r, apiKeysPath, res, "API key created.")
}

// RevokeAPIKey sets or clears the revoked flag of a key.
func (h *Handler) RevokeAPIKey(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.postSession(w, r)
	if !ok {
		return
	}

	revoked := r.FormValue("revoked") == "true"
	res := h.apiKeys.UpdateAPIKey(r.Context(), sess, r.PathValue("id"), r.FormValue("key"), revoked)

	fallback := "API key reinstated."
	if revoked {
		fallback = "API key revoked."
	}
	redirectResult(w, r, apiKeysPath, res, fallback)
}

// DeleteAPIKey soft-deletes a key.
func (h *Handler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.postSession(w, r)
	if !ok {
		return
	}

	res := h.apiKeys.DeleteAPIKey(r.Context(), sess, r.PathValue("id"))
	redirectResult(w, r, apiKeysPath, res, "API key deleted.")
}

// RestoreAPIKey brings back a deleted key.
func (h *Handler) RestoreAPIKey(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.postSession(w, r)
	if !ok {
		return
	}

	res := h.apiKeys.RestoreAPIKey(r.Context(), sess, r.PathValue("id"))
	if !res.OK() {
		redirectWithError(w, r, deletedView(apiKeysPath), res.Message())
		return
	}
	redirectSuccess(w, r, apiKeysPath, messageOr(res, "API key restored."))
}
