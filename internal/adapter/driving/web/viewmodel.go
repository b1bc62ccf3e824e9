package web

import (
	"bytes"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	vm "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

const displayDateLayout = "Jan 2, 2006"

var numbers = message.NewPrinter(language.English)

func formatMoney(v float64) string {
	return numbers.Sprintf("$%.2f", v)
}

func formatCount(n int) string {
	return numbers.Sprintf("%d", n)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func formatChange(v float64) string {
	return numbers.Sprintf("%+.1f%%", v)
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDateLayout)
}

// toStatCards converts the headline statistics into cards.
func toStatCards(s model.InvoiceStatistics) []vm.StatCard {
	return []vm.StatCard{
		{
			Label:  "Total expenses",
			Value:  formatMoney(s.TotalExpenses),
			Change: formatChange(s.TotalExpensesChangePercent),
			Up:     s.TotalExpensesChangePercent >= 0,
		},
		{
			Label:  "Transactions",
			Value:  formatCount(s.TotalTransactions),
			Change: formatChange(s.TotalTransactionsChangePercent),
			Up:     s.TotalTransactionsChangePercent >= 0,
		},
		{
			Label:  "Active cost centers",
			Value:  formatCount(s.ActiveCostCenters),
			Change: formatChange(s.ActiveCostCentersChangePercent),
			Up:     s.ActiveCostCentersChangePercent >= 0,
		},
		{
			Label:  "Average per transaction",
			Value:  formatMoney(s.AveragePerTransaction),
			Change: formatChange(s.AvgPerTransactionChangePercent),
			Up:     s.AvgPerTransactionChangePercent >= 0,
		},
	}
}

func toInvoiceRow(inv model.Invoice) vm.InvoiceRow {
	number := inv.InvoiceNumber
	if number == "" {
		number = "#" + inv.ID.String()
	}
	return vm.InvoiceRow{
		ID:         inv.ID.String(),
		Number:     number,
		Company:    inv.CompanyName,
		Client:     inv.ClientName,
		Date:       formatDate(inv.InvoiceDate.Time),
		DueDate:    formatDate(inv.DueDate.Time),
		Total:      formatMoney(inv.Total),
		DetailPath: "/invoices/" + url.PathEscape(inv.ID.String()),
	}
}

func toInvoiceRows(invoices []model.Invoice) []vm.InvoiceRow {
	rows := make([]vm.InvoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, toInvoiceRow(inv))
	}
	return rows
}

// toInvoiceDetail converts a parsed invoice. Subtotal falls back to the sum
// of the items when the backend left it empty.
func toInvoiceDetail(inv model.Invoice) vm.InvoiceDetailPage {
	items := make([]vm.ItemRow, 0, len(inv.Items))
	var computed float64
	for _, it := range inv.Items {
		amount := it.Quantity * it.Price
		computed += amount
		items = append(items, vm.ItemRow{
			Description: it.Description,
			Quantity:    formatQuantity(it.Quantity),
			Price:       formatMoney(it.Price),
			Amount:      formatMoney(amount),
		})
	}
	subtotal := inv.Subtotal
	if subtotal == 0 {
		subtotal = computed
	}

	return vm.InvoiceDetailPage{
		Invoice:   toInvoiceRow(inv),
		Items:     items,
		Subtotal:  formatMoney(subtotal),
		Tax:       formatMoney(inv.TotalTax),
		TaxRate:   formatPercent(inv.TaxRate),
		Notes:     inv.Notes,
		ExtraData: prettyJSON(inv.ExtraData),
	}
}

func prettyJSON(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

// toCostCenterOptions lists live cost centers for a select, marking selected.
func toCostCenterOptions(centers []model.CostCenter, selected string) []vm.Option {
	opts := make([]vm.Option, 0, len(centers))
	for _, c := range model.ActiveCostCenters(centers) {
		opts = append(opts, vm.Option{
			Value:    c.ID.String(),
			Label:    c.Name,
			Selected: c.ID.String() == selected,
		})
	}
	return opts
}

func toExpenseTypeOptions(types []model.ExpenseType) []vm.Option {
	opts := make([]vm.Option, 0, len(types))
	for _, t := range types {
		if t.IsDeleted {
			continue
		}
		opts = append(opts, vm.Option{Value: t.ID.String(), Label: t.Name})
	}
	return opts
}

func fileStatusClass(s model.FileStatus) string {
	switch s {
	case model.FileStatusCompleted:
		return "badge-ok"
	case model.FileStatusFailed:
		return "badge-error"
	case model.FileStatusProcessing:
		return "badge-info"
	default:
		return "badge-muted"
	}
}

func toFileRows(files []model.InvoiceFile) []vm.FileRow {
	rows := make([]vm.FileRow, 0, len(files))
	for _, f := range files {
		rows = append(rows, vm.FileRow{
			ID:          f.ID.String(),
			Name:        f.FileName,
			Status:      f.Status.Label(),
			StatusClass: fileStatusClass(f.Status),
			Uploaded:    formatDate(f.CreatedDate.Time),
		})
	}
	return rows
}

// percentOf scales v against whole into 0..100 for bar widths.
func percentOf(v, whole float64) int {
	if whole <= 0 || v <= 0 {
		return 0
	}
	return int(math.Round(math.Min(v/whole, 1) * 100))
}

func toDashboardPage(stats model.DashboardStats) vm.DashboardPage {
	page := vm.DashboardPage{
		Period: stats.InvoiceStatistics.PeriodDescription,
		Stats:  toStatCards(stats.InvoiceStatistics),
	}

	var trendMax float64
	for _, t := range stats.ExpenseTrend {
		trendMax = math.Max(trendMax, t.TotalExpenses)
	}
	for _, t := range stats.ExpenseTrend {
		page.Trend = append(page.Trend, vm.TrendRow{
			Period:       t.PeriodLabel,
			Amount:       formatMoney(t.TotalExpenses),
			Transactions: t.TransactionCount,
			Percent:      percentOf(t.TotalExpenses, trendMax),
		})
	}

	var distTotal float64
	for _, c := range stats.CostCenterDistribution {
		distTotal += c.Value
	}
	for _, c := range stats.CostCenterDistribution {
		page.Distribution = append(page.Distribution, vm.ShareRow{
			Label:   c.Name,
			Amount:  formatMoney(c.Value),
			Percent: percentOf(c.Value, distTotal),
		})
	}

	var typeTotal float64
	for _, t := range stats.SpendingByExpenseType {
		typeTotal += t.Amount
	}
	for _, t := range stats.SpendingByExpenseType {
		page.ByExpenseType = append(page.ByExpenseType, vm.ShareRow{
			Label:   t.Type,
			Amount:  formatMoney(t.Amount),
			Percent: percentOf(t.Amount, typeTotal),
		})
	}

	for _, e := range stats.RecentLargeExpenses {
		page.LargeExpenses = append(page.LargeExpenses, vm.LargeExpenseRow{
			Date:        e.Date,
			Description: e.Description,
			CostCenter:  e.CostCenter,
			Amount:      formatMoney(e.Amount),
		})
	}
	return page
}

// toCostCenterRows keeps the deleted cost centers when showDeleted is set
// and the live ones otherwise.
func toCostCenterRows(centers []model.CostCenter, showDeleted bool) []vm.CostCenterRow {
	rows := make([]vm.CostCenterRow, 0, len(centers))
	for _, c := range centers {
		if c.IsDeleted != showDeleted {
			continue
		}
		rows = append(rows, vm.CostCenterRow{
			ID:       c.ID.String(),
			Name:     c.Name,
			Active:   c.IsActive,
			Deleted:  c.IsDeleted,
			Created:  formatDate(c.CreatedDate.Time),
			Modified: formatDate(c.ModifiedDate.Time),
		})
	}
	return rows
}

func toExpenseTypeRows(types []model.ExpenseType, showDeleted bool) []vm.ExpenseTypeRow {
	rows := make([]vm.ExpenseTypeRow, 0, len(types))
	for _, t := range types {
		if t.IsDeleted != showDeleted {
			continue
		}
		rows = append(rows, vm.ExpenseTypeRow{
			ID:       t.ID.String(),
			Name:     t.Name,
			Deleted:  t.IsDeleted,
			Created:  formatDate(t.CreatedDate.Time),
			Modified: formatDate(t.ModifiedDate.Time),
		})
	}
	return rows
}

const visibleKeyChars = 4

// maskKey hides all but the last visibleKeyChars characters.
func maskKey(key string) string {
	runes := []rune(key)
	if len(runes) <= visibleKeyChars {
		return key
	}
	masked := make([]rune, len(runes))
	for i := range runes {
		if i < len(runes)-visibleKeyChars {
			masked[i] = '•'
			continue
		}
		masked[i] = runes[i]
	}
	return string(masked)
}

func toAPIKeyRows(keys []model.APIKey, showDeleted bool) []vm.APIKeyRow {
	rows := make([]vm.APIKeyRow, 0, len(keys))
	for _, k := range keys {
		if k.IsDeleted != showDeleted {
			continue
		}
		rows = append(rows, vm.APIKeyRow{
			ID:      k.ID.String(),
			Key:     k.Key,
			Masked:  maskKey(k.Key),
			Revoked: k.IsRevoked,
			Deleted: k.IsDeleted,
			Created: formatDate(k.CreatedDate.Time),
		})
	}
	return rows
}

func draftNumber(d model.DraftInvoice) string {
	if d.InvoiceNumber != "" {
		return d.InvoiceNumber
	}
	return "Untitled"
}

func toDraftRows(drafts []model.DraftInvoice) []vm.DraftRow {
	rows := make([]vm.DraftRow, 0, len(drafts))
	for _, d := range drafts {
		rows = append(rows, vm.DraftRow{
			ID:      d.ID,
			Number:  draftNumber(d),
			Client:  d.Client.Name,
			Date:    d.InvoiceDate,
			Total:   formatMoney(d.Totals().Total),
			Updated: formatDate(d.UpdatedAt),
		})
	}
	return rows
}

func toPartyForm(p model.Party) vm.PartyForm {
	return vm.PartyForm{Name: p.Name, Address: p.Address, Email: p.Email, Phone: p.Phone}
}

// toDraftForm fills the edit form. One blank row is appended so a new item
// can be entered without script.
func toDraftForm(d model.DraftInvoice) vm.DraftFormPage {
	items := make([]vm.ItemForm, 0, len(d.Items)+1)
	for _, it := range d.Items {
		items = append(items, vm.ItemForm{
			Description: it.Description,
			Quantity:    formatQuantity(it.Quantity),
			Price:       strconv.FormatFloat(it.Price, 'f', 2, 64),
		})
	}
	items = append(items, vm.ItemForm{Quantity: "1"})

	totals := d.Totals()
	return vm.DraftFormPage{
		ID:            d.ID,
		InvoiceNumber: d.InvoiceNumber,
		InvoiceDate:   d.InvoiceDate,
		DueDate:       d.DueDate,
		Company:       toPartyForm(d.Company),
		Client:        toPartyForm(d.Client),
		Items:         items,
		TaxRate:       strconv.FormatFloat(d.TaxRate, 'f', -1, 64),
		Notes:         d.Notes,
		Subtotal:      formatMoney(totals.Subtotal),
		Tax:           formatMoney(totals.Tax),
		Total:         formatMoney(totals.Total),
	}
}

func toDraftPreview(d model.DraftInvoice) vm.DraftPreviewPage {
	items := make([]vm.ItemRow, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, vm.ItemRow{
			Description: it.Description,
			Quantity:    formatQuantity(it.Quantity),
			Price:       formatMoney(it.Price),
			Amount:      formatMoney(it.Amount()),
		})
	}

	totals := d.Totals()
	return vm.DraftPreviewPage{
		ID:            d.ID,
		InvoiceNumber: d.InvoiceNumber,
		InvoiceDate:   d.InvoiceDate,
		DueDate:       d.DueDate,
		Company:       toPartyForm(d.Company),
		Client:        toPartyForm(d.Client),
		Items:         items,
		TaxRate:       formatPercent(d.TaxRate),
		Subtotal:      formatMoney(totals.Subtotal),
		Tax:           formatMoney(totals.Tax),
		Total:         formatMoney(totals.Total),
		NotesHTML:     RenderNotes(d.Notes),
	}
}
