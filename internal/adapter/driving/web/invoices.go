package web

import (
	"net/http"

	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

const (
	invoicesPath = "/invoices"

	// maxUploadSize bounds the whole multipart request.
	maxUploadSize = 25 << 20
	// uploadMemory is how much of a multipart body is kept in memory before
	// spilling to temporary files.
	uploadMemory = 8 << 20
)

// Invoices lists uploaded files and parsed invoices.
func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	p := vm.InvoicesPage{Page: h.page(w, r, "Invoices", "invoices", sess)}

	files := h.invoices.ListFiles(ctx, sess)
	if data, ok := files.Unwrap(); ok {
		p.Files = toFileRows(data)
	} else {
		p.FilesError = files.Message()
	}

	invoices := h.invoices.ListInvoices(ctx, sess)
	if data, ok := invoices.Unwrap(); ok {
		p.Invoices = toInvoiceRows(data)
	} else {
		p.InvoicesError = invoices.Message()
	}

	centers := h.costCenters.ListCostCenters(ctx, sess, model.DefaultListQuery())
	if data, ok := centers.Unwrap(); ok {
		p.CostCenters = toCostCenterOptions(data, "")
	} else {
		p.CostCentersError = centers.Message()
	}

	h.render(w, r, p.Page, pages.Invoices(p))
}

// InvoiceDetail shows one parsed invoice.
func (h *Handler) InvoiceDetail(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	res := h.invoices.GetInvoice(r.Context(), sess, r.PathValue("id"))

	var p vm.InvoiceDetailPage
	if inv, ok := res.Unwrap(); ok {
		p = toInvoiceDetail(inv)
	} else {
		p.Error = res.Message()
	}
	p.Page = h.page(w, r, "Invoice", "invoices", sess)

	h.render(w, r, p.Page, pages.InvoiceDetail(p))
}

// UploadExpenseTypes returns the expense-type options of the cost center
// picked in the upload form.
func (h *Handler) UploadExpenseTypes(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	costCenterID := r.URL.Query().Get("costCenterId")
	if costCenterID == "" {
		h.renderFragment(w, r, pages.ExpenseTypeOptions(nil, "Choose a cost center first"))
		return
	}

	res := h.expenseTypes.ListExpenseTypes(r.Context(), sess, costCenterID, model.DefaultListQuery())
	if types, ok := res.Unwrap(); ok {
		h.renderFragment(w, r, pages.ExpenseTypeOptions(toExpenseTypeOptions(types), ""))
		return
	}
	h.renderFragment(w, r, pages.ExpenseTypeOptions(nil, res.Message()))
}

// Upload relays an invoice file to the backend.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(uploadMemory); err != nil {
		h.logger.Info("rejected upload form", "error", err)
		redirectWithError(w, r, invoicesPath, "The upload could not be read. Files must be under 25 MB.")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	sess, ok := h.postSession(w, r)
	if !ok {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		redirectWithError(w, r, invoicesPath, "Choose a file to upload.")
		return
	}
	defer file.Close()

	costCenterID := r.FormValue("costCenterId")
	expenseTypeID := r.FormValue("expenseTypeId")
	if costCenterID == "" || expenseTypeID == "" {
		redirectWithError(w, r, invoicesPath, "Choose a cost center and an expense type.")
		return
	}

	res := h.invoices.Upload(r.Context(), sess, model.Upload{
		FileName:           header.Filename,
		File:               file,
		CostCenterID:       costCenterID,
		ExpenseTypeID:      expenseTypeID,
		IsPublic:           r.FormValue("isPublic") == "true",
		ProcessImmediately: r.FormValue("processImmediately") == "true",
	})
	if res.OK() {
		h.logger.Info("invoice uploaded", "file", header.Filename, "client_id", sess.ClientID)
	}
	redirectResult(w, r, invoicesPath, res, header.Filename+" uploaded.")
}
