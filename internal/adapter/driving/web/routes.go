package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Public pages.
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /google-callback", h.GoogleCallback)

	mux.HandleFunc("GET /signup", h.SignupPage)
	mux.HandleFunc("POST /signup", h.Signup)
	mux.HandleFunc("POST /signup/retry", h.SignupRetry)
	mux.HandleFunc("POST /signup/restart", h.SignupRestart)
	mux.HandleFunc("GET /confirm-account", h.ConfirmPage)
	mux.HandleFunc("POST /confirm-account", h.Confirm)
	mux.HandleFunc("POST /confirm-account/resend", h.ConfirmResend)

	mux.HandleFunc("GET /forgot-password", h.ResetPage)
	mux.HandleFunc("POST /forgot-password", h.ResetStart)
	mux.HandleFunc("POST /forgot-password/otp", h.ResetConfirm)
	mux.HandleFunc("POST /forgot-password/resend", h.ResetResend)
	mux.HandleFunc("POST /forgot-password/reset", h.ResetFinish)
	mux.HandleFunc("POST /forgot-password/restart", h.ResetRestart)

	// Protected pages.
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /home", h.Home)
	mux.HandleFunc("GET /dashboard", h.Dashboard)

	mux.HandleFunc("GET /invoices", h.Invoices)
	mux.HandleFunc("GET /invoices/expense-types", h.UploadExpenseTypes)
	mux.HandleFunc("POST /invoices/upload", h.Upload)
	mux.HandleFunc("GET /invoices/{id}", h.InvoiceDetail)

	mux.HandleFunc("GET /cost-center", h.CostCenters)
	mux.HandleFunc("POST /cost-center", h.CreateCostCenter)
	mux.HandleFunc("POST /cost-center/{id}/update", h.UpdateCostCenter)
	mux.HandleFunc("POST /cost-center/{id}/delete", h.DeleteCostCenter)
	mux.HandleFunc("POST /cost-center/{id}/restore", h.RestoreCostCenter)

	mux.HandleFunc("GET /expense-type", h.ExpenseTypes)
	mux.HandleFunc("POST /expense-type", h.CreateExpenseType)
	mux.HandleFunc("POST /expense-type/{costCenter}/{id}/update", h.UpdateExpenseType)
	mux.HandleFunc("POST /expense-type/{costCenter}/{id}/delete", h.DeleteExpenseType)
	mux.HandleFunc("POST /expense-type/{costCenter}/{id}/restore", h.RestoreExpenseType)

	mux.HandleFunc("GET /api-key", h.APIKeys)
	mux.HandleFunc("POST /api-key", h.CreateAPIKey)
	mux.HandleFunc("POST /api-key/{id}/revoke", h.RevokeAPIKey)
	mux.HandleFunc("POST /api-key/{id}/delete", h.DeleteAPIKey)
	mux.HandleFunc("POST /api-key/{id}/restore", h.RestoreAPIKey)

	mux.HandleFunc("GET /invoice-generator", h.Generator)
	mux.HandleFunc("GET /invoice-generator/new", h.NewDraft)
	mux.HandleFunc("POST /invoice-generator", h.CreateDraft)
	mux.HandleFunc("GET /invoice-generator/{id}", h.EditDraft)
	mux.HandleFunc("POST /invoice-generator/{id}", h.UpdateDraft)
	mux.HandleFunc("GET /invoice-generator/{id}/preview", h.PreviewDraft)
	mux.HandleFunc("POST /invoice-generator/{id}/delete", h.DeleteDraft)
}
