package application_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock implementations ---

type mockCredentials struct {
	cred  model.ServiceCredential
	err   error
	calls int
}

func (m *mockCredentials) Get(_ context.Context) (model.ServiceCredential, error) {
	m.calls++
	return m.cred, m.err
}

type accountCall struct {
	Op    string
	Email string
	OTP   string
	Cred  model.ServiceCredential
}

// mockAccounts records every gateway call. Results default to Success.
type mockAccounts struct {
	mu    sync.Mutex
	calls []accountCall

	requestOTP    model.Result[model.Empty]
	validateOTP   model.Result[model.Empty]
	createAccount model.Result[model.Empty]
	requestReset  model.Result[model.Empty]
	validateReset model.Result[model.Empty]
	resetPassword model.Result[model.Empty]

	signups []model.SignupRequest
	resets  []model.ResetPasswordRequest
}

func newMockAccounts() *mockAccounts {
	ok := model.Success(model.Empty{}, "ok")
	return &mockAccounts{
		requestOTP:    ok,
		validateOTP:   ok,
		createAccount: ok,
		requestReset:  ok,
		validateReset: ok,
		resetPassword: ok,
	}
}

func (m *mockAccounts) record(c accountCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

func (m *mockAccounts) ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		out = append(out, c.Op)
	}
	return out
}

func (m *mockAccounts) Login(_ context.Context, _, _ string) model.Result[model.Session] {
	m.record(accountCall{Op: "Login"})
	return model.Failure[model.Session]("not used")
}

func (m *mockAccounts) RequestOTP(_ context.Context, cred model.ServiceCredential, email string) model.Result[model.Empty] {
	m.record(accountCall{Op: "RequestOTP", Email: email, Cred: cred})
	return m.requestOTP
}

func (m *mockAccounts) ValidateOTP(_ context.Context, cred model.ServiceCredential, email, otp string) model.Result[model.Empty] {
	m.record(accountCall{Op: "ValidateOTP", Email: email, OTP: otp, Cred: cred})
	return m.validateOTP
}

func (m *mockAccounts) CreateAccount(_ context.Context, cred model.ServiceCredential, req model.SignupRequest) model.Result[model.Empty] {
	m.record(accountCall{Op: "CreateAccount", Email: req.Email, Cred: cred})
	m.signups = append(m.signups, req)
	return m.createAccount
}

func (m *mockAccounts) RequestPasswordReset(_ context.Context, email string) model.Result[model.Empty] {
	m.record(accountCall{Op: "RequestPasswordReset", Email: email})
	return m.requestReset
}

func (m *mockAccounts) ValidatePasswordReset(_ context.Context, email, otp string) model.Result[model.Empty] {
	m.record(accountCall{Op: "ValidatePasswordReset", Email: email, OTP: otp})
	return m.validateReset
}

func (m *mockAccounts) ResetPassword(_ context.Context, cred model.ServiceCredential, req model.ResetPasswordRequest) model.Result[model.Empty] {
	m.record(accountCall{Op: "ResetPassword", Email: req.Username, Cred: cred})
	m.resets = append(m.resets, req)
	return m.resetPassword
}

type mockDashboard struct {
	result model.Result[model.DashboardStats]
	wait   <-chan struct{}
}

func (m *mockDashboard) Dashboard(ctx context.Context, _ *model.Session) model.Result[model.DashboardStats] {
	if m.wait != nil {
		select {
		case <-m.wait:
		case <-ctx.Done():
			return model.Failure[model.DashboardStats]("cancelled")
		}
	}
	return m.result
}

type mockInvoices struct {
	list model.Result[[]model.Invoice]
}

func (m *mockInvoices) ListInvoices(_ context.Context, _ *model.Session) model.Result[[]model.Invoice] {
	return m.list
}

func (m *mockInvoices) GetInvoice(_ context.Context, _ *model.Session, _ string) model.Result[model.Invoice] {
	return model.Failure[model.Invoice]("not used")
}

func (m *mockInvoices) ListFiles(_ context.Context, _ *model.Session) model.Result[[]model.InvoiceFile] {
	return model.Failure[[]model.InvoiceFile]("not used")
}

func (m *mockInvoices) Upload(_ context.Context, _ *model.Session, _ model.Upload) model.Result[model.UploadReceipt] {
	return model.Failure[model.UploadReceipt]("not used")
}

type mockCostCenters struct {
	list      model.Result[[]model.CostCenter]
	lastQuery model.ListQuery
}

func (m *mockCostCenters) ListCostCenters(_ context.Context, _ *model.Session, q model.ListQuery) model.Result[[]model.CostCenter] {
	m.lastQuery = q
	return m.list
}

func (m *mockCostCenters) GetCostCenter(_ context.Context, _ *model.Session, _ string) model.Result[model.CostCenter] {
	return model.Failure[model.CostCenter]("not used")
}

func (m *mockCostCenters) CreateCostCenter(_ context.Context, _ *model.Session, _ string) model.Result[model.CostCenter] {
	return model.Failure[model.CostCenter]("not used")
}

func (m *mockCostCenters) UpdateCostCenter(_ context.Context, _ *model.Session, _, _ string) model.Result[model.CostCenter] {
	return model.Failure[model.CostCenter]("not used")
}

func (m *mockCostCenters) DeleteCostCenter(_ context.Context, _ *model.Session, _ string) model.Result[model.Empty] {
	return model.Failure[model.Empty]("not used")
}

func (m *mockCostCenters) RestoreCostCenter(_ context.Context, _ *model.Session, _ string) model.Result[model.Empty] {
	return model.Failure[model.Empty]("not used")
}
