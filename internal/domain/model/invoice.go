package model

import (
	"encoding/json"
	"io"
	"sort"
)

// Invoice is a parsed invoice as returned by the backend.
type Invoice struct {
	ID            ID              `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   Timestamp       `json:"invoiceDate"`
	DueDate       Timestamp       `json:"dueDate"`
	CompanyName   string          `json:"companyName"`
	ClientName    string          `json:"clientName"`
	Subtotal      float64         `json:"subtotal"`
	TotalTax      float64         `json:"totalTax"`
	TaxRate       float64         `json:"taxRate"`
	Total         float64         `json:"total"`
	Notes         string          `json:"notes"`
	CreatedDate   Timestamp       `json:"createdDate"`
	Items         []InvoiceItem   `json:"items"`
	ExtraData     json.RawMessage `json:"extraData,omitempty"`
}

// InvoiceItem is a line on a parsed invoice.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// InvoiceFile is an uploaded file awaiting or past parsing.
type InvoiceFile struct {
	ID          ID         `json:"id"`
	FileName    string     `json:"fileName"`
	Status      FileStatus `json:"status"`
	CreatedDate Timestamp  `json:"createdDate"`
}

// Upload is a file upload request. File is read once.
type Upload struct {
	FileName           string
	File               io.Reader
	CostCenterID       string
	ExpenseTypeID      string
	IsPublic           bool
	ProcessImmediately bool
}

// UploadReceipt is the backend acknowledgement of an upload. Raw keeps the
// payload for fields the portal does not model.
type UploadReceipt struct {
	ID       ID              `json:"id"`
	FileName string          `json:"fileName"`
	Raw      json.RawMessage `json:"-"`
}

// RecentInvoices returns up to n invoices ordered by CreatedDate, newest
// first. The input slice is not modified.
func RecentInvoices(invoices []Invoice, n int) []Invoice {
	sorted := make([]Invoice, len(invoices))
	copy(sorted, invoices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedDate.After(sorted[j].CreatedDate.Time)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
