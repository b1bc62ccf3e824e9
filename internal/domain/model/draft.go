package model

import (
	"math"
	"time"
)

// DraftInvoice is an invoice composed in the local generator. Drafts are
// stored by the portal, never sent to the backend, and visible only to the
// user whose key owns them.
type DraftInvoice struct {
	ID            string
	OwnerKey      string
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	Company       Party
	Client        Party
	Items         []LineItem
	TaxRate       float64
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Party is one side of an invoice.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// LineItem is a billable row on a draft.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// Amount is Quantity times Price.
func (li LineItem) Amount() float64 {
	return li.Quantity * li.Price
}

// DraftTotals are the computed money figures of a draft.
type DraftTotals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// Totals computes subtotal, tax at TaxRate percent, and total, each rounded
// to cents.
func (d DraftInvoice) Totals() DraftTotals {
	var subtotal float64
	for _, item := range d.Items {
		subtotal += item.Amount()
	}
	tax := subtotal * d.TaxRate / 100
	return DraftTotals{
		Subtotal: roundCents(subtotal),
		Tax:      roundCents(tax),
		Total:    roundCents(subtotal + tax),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
