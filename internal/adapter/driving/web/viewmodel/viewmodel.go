// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// Page holds what every page's layout needs.
type Page struct {
	Title     string
	Active    string // nav key of the current page
	CSRFToken string
	Flash     Flash

	SignedIn bool
	UserName string

	// RefreshTo, when set, makes the page navigate there after RefreshAfter seconds.
	RefreshTo    string
	RefreshAfter int
}

// Flash is a one-shot banner read from the ?success= and ?error= parameters.
type Flash struct {
	Success string
	Error   string
}

// LoginPage holds the login form.
type LoginPage struct {
	Page
	Username string
	Next     string
}

// SignupPage holds the signup wizard at its current step.
type SignupPage struct {
	Page
	Step     string
	Email    string
	FullName string
	Phone    string
}

// ConfirmPage holds the email-confirmation step of the signup wizard.
// Pending is false when no signup is waiting for a code.
type ConfirmPage struct {
	Page
	Pending bool
	Email   string
}

// ResetPage holds the password-reset wizard at its current step.
type ResetPage struct {
	Page
	Step  string
	Email string
}

// NoticePage is a page with a single message and a way forward.
type NoticePage struct {
	Page
	Heading  string
	Message  string
	LinkText string
	LinkPath string
}

// StatCard is a headline figure with its change against the previous period.
type StatCard struct {
	Label  string
	Value  string
	Change string
	Up     bool
}

// Option is an entry of a select element.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// InvoiceRow is an invoice in a list.
type InvoiceRow struct {
	ID         string
	Number     string
	Company    string
	Client     string
	Date       string
	DueDate    string
	Total      string
	DetailPath string
}

// HomePage is the signed-in landing page. Each section fails on its own.
type HomePage struct {
	Page
	Stats            []StatCard
	StatsError       string
	Invoices         []InvoiceRow
	InvoicesError    string
	CostCenters      []Option
	CostCentersError string
}

// ShareRow is one entry of a distribution.
type ShareRow struct {
	Label   string
	Amount  string
	Percent int
}

// TrendRow is one period of the expense trend.
type TrendRow struct {
	Period       string
	Amount       string
	Transactions int
	Percent      int
}

// LargeExpenseRow is a notable expense.
type LargeExpenseRow struct {
	Date        string
	Description string
	CostCenter  string
	Amount      string
}

// DashboardPage holds the statistics view.
type DashboardPage struct {
	Page
	Error         string
	Period        string
	Stats         []StatCard
	Trend         []TrendRow
	Distribution  []ShareRow
	ByExpenseType []ShareRow
	LargeExpenses []LargeExpenseRow
}

// FileRow is an uploaded invoice file.
type FileRow struct {
	ID          string
	Name        string
	Status      string
	StatusClass string
	Uploaded    string
}

// InvoicesPage lists uploaded files and parsed invoices.
type InvoicesPage struct {
	Page
	Files            []FileRow
	FilesError       string
	Invoices         []InvoiceRow
	InvoicesError    string
	CostCenters      []Option
	CostCentersError string
}

// ItemRow is a line of an invoice or a draft preview.
type ItemRow struct {
	Description string
	Quantity    string
	Price       string
	Amount      string
}

// InvoiceDetailPage shows one parsed invoice.
type InvoiceDetailPage struct {
	Page
	Error     string
	Invoice   InvoiceRow
	Items     []ItemRow
	Subtotal  string
	Tax       string
	TaxRate   string
	Notes     string
	ExtraData string
}

// CostCenterRow is a cost center in the management table.
type CostCenterRow struct {
	ID       string
	Name     string
	Active   bool
	Deleted  bool
	Created  string
	Modified string
}

// CostCentersPage manages the client's cost centers. Rows holds either the
// deleted or the live cost centers, per ShowDeleted.
type CostCentersPage struct {
	Page
	Error       string
	ShowDeleted bool
	Rows        []CostCenterRow
}

// ExpenseTypeRow is an expense type in the management table.
type ExpenseTypeRow struct {
	ID       string
	Name     string
	Deleted  bool
	Created  string
	Modified string
}

// ExpenseTypesPage manages the expense types of one cost center.
type ExpenseTypesPage struct {
	Page
	CostCenters      []Option
	CostCentersError string
	CostCenterID     string
	ShowDeleted      bool
	Error            string
	Rows             []ExpenseTypeRow
}

// APIKeyRow is an API key in the management table. Masked hides all but the
// last characters of Key.
type APIKeyRow struct {
	ID      string
	Key     string
	Masked  string
	Revoked bool
	Deleted bool
	Created string
}

// APIKeysPage manages the client's API keys.
type APIKeysPage struct {
	Page
	Error       string
	ShowDeleted bool
	Rows        []APIKeyRow
}

// DraftRow is a saved draft in the generator list.
type DraftRow struct {
	ID      string
	Number  string
	Client  string
	Date    string
	Total   string
	Updated string
}

// GeneratorPage lists the user's drafts. Enabled is false when the portal
// runs without a database.
type GeneratorPage struct {
	Page
	Enabled bool
	Error   string
	Drafts  []DraftRow
}

// PartyForm is one side of a draft in the edit form.
type PartyForm struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

// ItemForm is an editable line of a draft.
type ItemForm struct {
	Description string
	Quantity    string
	Price       string
}

// DraftFormPage edits a draft. ID is empty for a new one.
type DraftFormPage struct {
	Page
	ID            string
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	Company       PartyForm
	Client        PartyForm
	Items         []ItemForm
	TaxRate       string
	Notes         string
	Subtotal      string
	Tax           string
	Total         string
}

// DraftPreviewPage renders a draft as a printable invoice.
type DraftPreviewPage struct {
	Page
	ID            string
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	Company       PartyForm
	Client        PartyForm
	Items         []ItemRow
	TaxRate       string
	Subtotal      string
	Tax           string
	Total         string
	NotesHTML     string
}
