package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/wizeportal/internal/application"
	"github.com/ericfisherdev/wizeportal/internal/domain/model"
	"github.com/ericfisherdev/wizeportal/internal/domain/port/driven"
)

const (
	generatorPath = "/invoice-generator"

	draftNotFoundMessage = "That invoice no longer exists."
	draftFailedMessage   = "The invoice could not be saved. Please try again."
)

func draftPath(id string) string {
	return generatorPath + "/" + url.PathEscape(id)
}

// generatorSession is currentSession for the generator pages, which also
// require the draft store. Without it the list page explains why.
func (h *Handler) generatorSession(w http.ResponseWriter, r *http.Request, post bool) (*model.Session, bool) {
	var (
		sess *model.Session
		ok   bool
	)
	if post {
		sess, ok = h.postSession(w, r)
	} else {
		sess, ok = h.currentSession(w, r)
	}
	if !ok {
		return nil, false
	}
	if h.drafts == nil {
		redirectWithError(w, r, generatorPath, "The invoice generator is not available on this server.")
		return nil, false
	}
	return sess, true
}

// Generator lists the user's drafts.
func (h *Handler) Generator(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	p := vm.GeneratorPage{
		Page:    h.page(w, r, "Invoice generator", "invoice-generator", sess),
		Enabled: h.drafts != nil,
	}
	if p.Enabled {
		drafts, err := h.drafts.List(r.Context(), application.DraftOwner(sess))
		if err != nil {
			h.logger.Error("failed to list drafts", "error", err)
			p.Error = "Your invoices could not be loaded."
		} else {
			p.Drafts = toDraftRows(drafts)
		}
	}

	h.render(w, r, p.Page, pages.Generator(p))
}

// NewDraft renders an empty draft form.
func (h *Handler) NewDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.generatorSession(w, r, false)
	if !ok {
		return
	}
	h.renderDraftForm(w, r, sess, h.drafts.New())
}

// CreateDraft saves a new draft.
func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.generatorSession(w, r, true)
	if !ok {
		return
	}
	h.saveDraft(w, r, sess, parseDraftForm(r, ""))
}

// EditDraft renders the form of a saved draft.
func (h *Handler) EditDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.generatorSession(w, r, false)
	if !ok {
		return
	}
	d, ok := h.loadDraft(w, r, sess)
	if !ok {
		return
	}
	h.renderDraftForm(w, r, sess, d)
}

// UpdateDraft saves changes to a draft.
func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.generatorSession(w, r, true)
	if !ok {
		return
	}
	h.saveDraft(w, r, sess, parseDraftForm(r, r.PathValue("id")))
}

// PreviewDraft renders a draft as a printable invoice.
func (h *Handler) PreviewDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.generatorSession(w, r, false)
	if !ok {
		return
	}
	d, ok := h.loadDraft(w, r, sess)
	if !ok {
		return
	}

	p := toDraftPreview(d)
	p.Page = h.page(w, r, "Invoice "+draftNumber(d), "invoice-generator", sess)
	h.render(w, r, p.Page, pages.DraftPreview(p))
}

// DeleteDraft removes a draft.
func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.generatorSession(w, r, true)
	if !ok {
		return
	}

	err := h.drafts.Delete(r.Context(), application.DraftOwner(sess), r.PathValue("id"))
	switch {
	case errors.Is(err, driven.ErrDraftNotFound):
		redirectWithError(w, r, generatorPath, draftNotFoundMessage)
	case err != nil:
		h.logger.Error("failed to delete draft", "error", err)
		redirectWithError(w, r, generatorPath, "The invoice could not be deleted.")
	default:
		redirectSuccess(w, r, generatorPath, "Invoice deleted.")
	}
}

func (h *Handler) loadDraft(w http.ResponseWriter, r *http.Request, sess *model.Session) (model.DraftInvoice, bool) {
	d, err := h.drafts.Get(r.Context(), application.DraftOwner(sess), r.PathValue("id"))
	if err == nil {
		return d, true
	}
	if errors.Is(err, driven.ErrDraftNotFound) {
		redirectWithError(w, r, generatorPath, draftNotFoundMessage)
		return model.DraftInvoice{}, false
	}
	h.logger.Error("failed to load draft", "error", err)
	redirectWithError(w, r, generatorPath, "The invoice could not be loaded.")
	return model.DraftInvoice{}, false
}

func (h *Handler) renderDraftForm(w http.ResponseWriter, r *http.Request, sess *model.Session, d model.DraftInvoice) {
	title := "New invoice"
	if d.ID != "" {
		title = "Invoice " + draftNumber(d)
	}
	p := toDraftForm(d)
	p.Page = h.page(w, r, title, "invoice-generator", sess)
	h.render(w, r, p.Page, pages.DraftForm(p))
}

// saveDraft stores d. A validation failure shows the form again with the
// entered values and the reason.
func (h *Handler) saveDraft(w http.ResponseWriter, r *http.Request, sess *model.Session, d model.DraftInvoice) {
	saved, err := h.drafts.Save(r.Context(), application.DraftOwner(sess), d)
	switch {
	case errors.Is(err, application.ErrInvalidDraft):
		p := toDraftForm(d)
		p.Page = h.page(w, r, "Invoice", "invoice-generator", sess)
		p.Flash = vm.Flash{Error: invalidDraftMessage(err)}
		h.render(w, r, p.Page, pages.DraftForm(p))
	case errors.Is(err, driven.ErrDraftNotFound):
		redirectWithError(w, r, generatorPath, draftNotFoundMessage)
	case err != nil:
		h.logger.Error("failed to save draft", "error", err)
		redirectWithError(w, r, generatorPath, draftFailedMessage)
	default:
		redirectSuccess(w, r, draftPath(saved.ID), "Invoice saved.")
	}
}

// invalidDraftMessage drops the sentinel prefix from a validation error.
func invalidDraftMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), application.ErrInvalidDraft.Error()+": ")
	if msg == "" {
		return draftFailedMessage
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// parseDraftForm reads the draft form. Item rows arrive as parallel lists of
// descriptions, quantities and prices.
func parseDraftForm(r *http.Request, id string) model.DraftInvoice {
	_ = r.ParseForm()
	f := r.PostForm

	d := model.DraftInvoice{
		ID:            id,
		InvoiceNumber: f.Get("invoiceNumber"),
		InvoiceDate:   f.Get("invoiceDate"),
		DueDate:       f.Get("dueDate"),
		Company:       parseParty(f, "company"),
		Client:        parseParty(f, "client"),
		TaxRate:       parseNumber(f.Get("taxRate")),
		Notes:         f.Get("notes"),
	}

	descriptions := f["itemDescription"]
	quantities := f["itemQuantity"]
	prices := f["itemPrice"]
	for i, desc := range descriptions {
		if strings.TrimSpace(desc) == "" {
			continue
		}
		item := model.LineItem{Description: desc}
		if i < len(quantities) {
			item.Quantity = parseNumber(quantities[i])
		}
		if i < len(prices) {
			item.Price = parseNumber(prices[i])
		}
		d.Items = append(d.Items, item)
	}
	return d
}

func parseParty(f url.Values, prefix string) model.Party {
	return model.Party{
		Name:    f.Get(prefix + "Name"),
		Address: f.Get(prefix + "Address"),
		Email:   f.Get(prefix + "Email"),
		Phone:   f.Get(prefix + "Phone"),
	}
}

// parseNumber reads a form number. Blank or malformed input is zero, which
// validation then reports where it matters. NaN and Inf come through as
// parsed and are rejected by DraftService.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
