package driven

import (
	"context"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

// Every gateway method takes the caller's session. A nil or incomplete
// session yields a Failure without contacting the backend.

// CostCenterGateway relays cost-center operations for the session's client.
type CostCenterGateway interface {
	ListCostCenters(ctx context.Context, s *model.Session, q model.ListQuery) model.Result[[]model.CostCenter]
	GetCostCenter(ctx context.Context, s *model.Session, id string) model.Result[model.CostCenter]
	CreateCostCenter(ctx context.Context, s *model.Session, name string) model.Result[model.CostCenter]
	UpdateCostCenter(ctx context.Context, s *model.Session, id, name string) model.Result[model.CostCenter]
	DeleteCostCenter(ctx context.Context, s *model.Session, id string) model.Result[model.Empty]
	RestoreCostCenter(ctx context.Context, s *model.Session, id string) model.Result[model.Empty]
}

// ExpenseTypeGateway relays expense-type operations within a cost center.
type ExpenseTypeGateway interface {
	ListExpenseTypes(ctx context.Context, s *model.Session, costCenterID string, q model.ListQuery) model.Result[[]model.ExpenseType]
	GetExpenseType(ctx context.Context, s *model.Session, costCenterID, id string) model.Result[model.ExpenseType]
	CreateExpenseType(ctx context.Context, s *model.Session, costCenterID, name string) model.Result[model.ExpenseType]
	UpdateExpenseType(ctx context.Context, s *model.Session, costCenterID, id, name string) model.Result[model.ExpenseType]
	DeleteExpenseType(ctx context.Context, s *model.Session, costCenterID, id string) model.Result[model.Empty]
	RestoreExpenseType(ctx context.Context, s *model.Session, costCenterID, id string) model.Result[model.Empty]
}

// APIKeyGateway relays API-key operations for the session's client.
type APIKeyGateway interface {
	ListAPIKeys(ctx context.Context, s *model.Session) model.Result[[]model.APIKey]
	GetAPIKey(ctx context.Context, s *model.Session, id string) model.Result[model.APIKey]
	CreateAPIKey(ctx context.Context, s *model.Session, key string) model.Result[model.APIKey]
	UpdateAPIKey(ctx context.Context, s *model.Session, id, key string, revoked bool) model.Result[model.APIKey]
	DeleteAPIKey(ctx context.Context, s *model.Session, id string) model.Result[model.Empty]
	RestoreAPIKey(ctx context.Context, s *model.Session, id string) model.Result[model.Empty]
}

// InvoiceGateway relays invoice reads and file uploads.
type InvoiceGateway interface {
	ListInvoices(ctx context.Context, s *model.Session) model.Result[[]model.Invoice]
	GetInvoice(ctx context.Context, s *model.Session, id string) model.Result[model.Invoice]
	ListFiles(ctx context.Context, s *model.Session) model.Result[[]model.InvoiceFile]
	Upload(ctx context.Context, s *model.Session, u model.Upload) model.Result[model.UploadReceipt]
}

// DashboardGateway fetches the aggregate statistics.
type DashboardGateway interface {
	Dashboard(ctx context.Context, s *model.Session) model.Result[model.DashboardStats]
}
