package web

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	httphandler "github.com/ericfisherdev/wizeportal/internal/adapter/driving/http"
	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/session"
	"github.com/ericfisherdev/wizeportal/internal/application"
	"github.com/ericfisherdev/wizeportal/internal/config"
	"github.com/ericfisherdev/wizeportal/internal/domain/model"
	"github.com/ericfisherdev/wizeportal/internal/domain/port/driven"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testCSRFToken = "csrf-test-token"

// --- Mock implementations ---

// mockBackend implements every gateway. Results default to Success and each
// call is recorded as "Method arg...".
type mockBackend struct {
	mu    sync.Mutex
	calls []string

	login        model.Result[model.Session]
	account      model.Result[model.Empty]
	costCenters  model.Result[[]model.CostCenter]
	costCenter   model.Result[model.CostCenter]
	expenseTypes model.Result[[]model.ExpenseType]
	expenseType  model.Result[model.ExpenseType]
	apiKeys      model.Result[[]model.APIKey]
	apiKey       model.Result[model.APIKey]
	invoices     model.Result[[]model.Invoice]
	invoice      model.Result[model.Invoice]
	files        model.Result[[]model.InvoiceFile]
	upload       model.Result[model.UploadReceipt]
	dashboard    model.Result[model.DashboardStats]
	empty        model.Result[model.Empty]

	uploaded     model.Upload
	uploadedBody string
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		login:        model.Success(*testSession(), "Signed in."),
		account:      model.Success(model.Empty{}, "ok"),
		costCenters:  model.Success([]model.CostCenter{}, "Cost centers loaded."),
		costCenter:   model.Success(model.CostCenter{}, "Cost center saved."),
		expenseTypes: model.Success([]model.ExpenseType{}, "Expense types loaded."),
		expenseType:  model.Success(model.ExpenseType{}, "Expense type saved."),
		apiKeys:      model.Success([]model.APIKey{}, "API keys loaded."),
		apiKey:       model.Success(model.APIKey{}, "API key saved."),
		invoices:     model.Success([]model.Invoice{}, "Invoices loaded."),
		invoice:      model.Success(model.Invoice{}, "Invoice loaded."),
		files:        model.Success([]model.InvoiceFile{}, "Files loaded."),
		upload:       model.Success(model.UploadReceipt{}, "File uploaded."),
		dashboard:    model.Success(model.DashboardStats{}, "Dashboard loaded."),
		empty:        model.Success(model.Empty{}, "Done."),
	}
}

func (m *mockBackend) record(parts ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, strings.Join(parts, " "))
}

func (m *mockBackend) recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	sort.Strings(out)
	return out
}

func (m *mockBackend) Login(_ context.Context, username, _ string) model.Result[model.Session] {
	m.record("Login", username)
	return m.login
}

func (m *mockBackend) RequestOTP(_ context.Context, _ model.ServiceCredential, email string) model.Result[model.Empty] {
	m.record("RequestOTP", email)
	return m.account
}

func (m *mockBackend) ValidateOTP(_ context.Context, _ model.ServiceCredential, email, otp string) model.Result[model.Empty] {
	m.record("ValidateOTP", email, otp)
	return m.account
}

func (m *mockBackend) CreateAccount(_ context.Context, _ model.ServiceCredential, req model.SignupRequest) model.Result[model.Empty] {
	m.record("CreateAccount", req.Email)
	return m.account
}

func (m *mockBackend) RequestPasswordReset(_ context.Context, email string) model.Result[model.Empty] {
	m.record("RequestPasswordReset", email)
	return m.account
}

func (m *mockBackend) ValidatePasswordReset(_ context.Context, email, otp string) model.Result[model.Empty] {
	m.record("ValidatePasswordReset", email, otp)
	return m.account
}

func (m *mockBackend) ResetPassword(_ context.Context, _ model.ServiceCredential, req model.ResetPasswordRequest) model.Result[model.Empty] {
	m.record("ResetPassword", req.Username)
	return m.account
}

func (m *mockBackend) ListCostCenters(_ context.Context, _ *model.Session, _ model.ListQuery) model.Result[[]model.CostCenter] {
	m.record("ListCostCenters")
	return m.costCenters
}

func (m *mockBackend) GetCostCenter(_ context.Context, _ *model.Session, id string) model.Result[model.CostCenter] {
	m.record("GetCostCenter", id)
	return m.costCenter
}

func (m *mockBackend) CreateCostCenter(_ context.Context, _ *model.Session, name string) model.Result[model.CostCenter] {
	m.record("CreateCostCenter", name)
	return m.costCenter
}

func (m *mockBackend) UpdateCostCenter(_ context.Context, _ *model.Session, id, name string) model.Result[model.CostCenter] {
	m.record("UpdateCostCenter", id, name)
	return m.costCenter
}

func (m *mockBackend) DeleteCostCenter(_ context.Context, _ *model.Session, id string) model.Result[model.Empty] {
	m.record("DeleteCostCenter", id)
	return m.empty
}

func (m *mockBackend) RestoreCostCenter(_ context.Context, _ *model.Session, id string) model.Result[model.Empty] {
	m.record("RestoreCostCenter", id)
	return m.empty
}

func (m *mockBackend) ListExpenseTypes(_ context.Context, _ *model.Session, costCenterID string, _ model.ListQuery) model.Result[[]model.ExpenseType] {
	m.record("ListExpenseTypes", costCenterID)
	return m.expenseTypes
}

func (m *mockBackend) GetExpenseType(_ context.Context, _ *model.Session, costCenterID, id string) model.Result[model.ExpenseType] {
	m.record("GetExpenseType", costCenterID, id)
	return m.expenseType
}

func (m *mockBackend) CreateExpenseType(_ context.Context, _ *model.Session, costCenterID, name string) model.Result[model.ExpenseType] {
	m.record("CreateExpenseType", costCenterID, name)
	return m.expenseType
}

func (m *mockBackend) UpdateExpenseType(_ context.Context, _ *model.Session, costCenterID, id, name string) model.Result[model.ExpenseType] {
	m.record("UpdateExpenseType", costCenterID, id, name)
	return m.expenseType
}

func (m *mockBackend) DeleteExpenseType(_ context.Context, _ *model.Session, costCenterID, id string) model.Result[model.Empty] {
	m.record("DeleteExpenseType", costCenterID, id)
	return m.empty
}

func (m *mockBackend) RestoreExpenseType(_ context.Context, _ *model.Session, costCenterID, id string) model.Result[model.Empty] {
	m.record("RestoreExpenseType", costCenterID, id)
	return m.empty
}

func (m *mockBackend) ListAPIKeys(_ context.Context, _ *model.Session) model.Result[[]model.APIKey] {
	m.record("ListAPIKeys")
	return m.apiKeys
}

func (m *mockBackend) GetAPIKey(_ context.Context, _ *model.Session, id string) model.Result[model.APIKey] {
	m.record("GetAPIKey", id)
	return m.apiKey
}

func (m *mockBackend) CreateAPIKey(_ context.Context, _ *model.Session, key string) model.Result[model.APIKey] {
	m.record("CreateAPIKey", key)
	return m.apiKey
}

func (m *mockBackend) UpdateAPIKey(_ context.Context, _ *model.Session, id, key string, revoked bool) model.Result[model.APIKey] {
	flag := "false"
	if revoked {
		flag = "true"
	}
	m.record("UpdateAPIKey", id, key, flag)
	return m.apiKey
}

func (m *mockBackend) DeleteAPIKey(_ context.Context, _ *model.Session, id string) model.Result[model.Empty] {
	m.record("DeleteAPIKey", id)
	return m.empty
}

func (m *mockBackend) RestoreAPIKey(_ context.Context, _ *model.Session, id string) model.Result[model.Empty] {
	m.record("RestoreAPIKey", id)
	return m.empty
}

func (m *mockBackend) ListInvoices(_ context.Context, _ *model.Session) model.Result[[]model.Invoice] {
	m.record("ListInvoices")
	return m.invoices
}

func (m *mockBackend) GetInvoice(_ context.Context, _ *model.Session, id string) model.Result[model.Invoice] {
	m.record("GetInvoice", id)
	return m.invoice
}

func (m *mockBackend) ListFiles(_ context.Context, _ *model.Session) model.Result[[]model.InvoiceFile] {
	m.record("ListFiles")
	return m.files
}

func (m *mockBackend) Upload(_ context.Context, _ *model.Session, u model.Upload) model.Result[model.UploadReceipt] {
	m.record("Upload", u.FileName)
	body, _ := io.ReadAll(u.File)
	m.mu.Lock()
	m.uploaded = u
	m.uploadedBody = string(body)
	m.mu.Unlock()
	return m.upload
}

func (m *mockBackend) Dashboard(_ context.Context, _ *model.Session) model.Result[model.DashboardStats] {
	m.record("Dashboard")
	return m.dashboard
}

type stubCredentials struct{}

func (stubCredentials) Get(_ context.Context) (model.ServiceCredential, error) {
	return model.ServiceCredential{UserKey: "svc", Credential: "c3ZjOnB3"}, nil
}

// memoryDrafts is an in-memory DraftStore.
type memoryDrafts struct {
	mu     sync.Mutex
	drafts map[string]model.DraftInvoice
}

func newMemoryDrafts() *memoryDrafts {
	return &memoryDrafts{drafts: map[string]model.DraftInvoice{}}
}

func (m *memoryDrafts) Save(_ context.Context, d model.DraftInvoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[d.OwnerKey+"/"+d.ID] = d
	return nil
}

func (m *memoryDrafts) Get(_ context.Context, owner, id string) (*model.DraftInvoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[owner+"/"+id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memoryDrafts) List(_ context.Context, owner string) ([]model.DraftInvoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.DraftInvoice
	for _, d := range m.drafts {
		if d.OwnerKey == owner {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memoryDrafts) Delete(_ context.Context, owner, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drafts[owner+"/"+id]; !ok {
		return driven.ErrDraftNotFound
	}
	delete(m.drafts, owner+"/"+id)
	return nil
}

// --- Harness ---

func testSession() *model.Session {
	return &model.Session{UserKey: "user-key-1", ClientKey: "client-key-1", ClientID: "42", FullName: "Jane Doe"}
}

func testKey() []byte {
	return bytes.Repeat([]byte{9}, session.KeySize)
}

type testEnv struct {
	backend  *mockBackend
	drafts   *memoryDrafts
	sessions *session.Store
	handler  *Handler
	mux      http.Handler
}

// newTestEnv wires a Handler to mockBackend and serves it through the real
// guard and middleware. withDrafts enables the invoice generator.
func newTestEnv(t *testing.T, withDrafts bool) *testEnv {
	t.Helper()
	logger := discardLogger()

	sessions, err := session.NewStore(testKey(), false, logger)
	require.NoError(t, err)
	flows, err := session.NewFlowStore(testKey(), false, logger)
	require.NoError(t, err)

	env := &testEnv{backend: newMockBackend(), sessions: sessions}
	deps := Deps{
		Accounts:     env.backend,
		CostCenters:  env.backend,
		ExpenseTypes: env.backend,
		APIKeys:      env.backend,
		Invoices:     env.backend,
		Dashboard:    env.backend,
		Sessions:     sessions,
		Flows:        flows,
		AuthFlow:     application.NewAuthFlow(env.backend, stubCredentials{}, logger),
		Home:         application.NewHomeService(env.backend, env.backend, env.backend),
		Logger:       logger,
	}
	if withDrafts {
		env.drafts = newMemoryDrafts()
		deps.Drafts = application.NewDraftService(env.drafts)
	}
	env.handler = NewHandler(deps)
	env.mux = httphandler.NewServeMux(httphandler.NewHandler(logger), env.handler, httphandler.Guard{
		Table:      httphandler.DefaultRouteTable(config.RootRouteRedirect),
		HasSession: sessions.Has,
	}, logger)
	return env
}

// signIn adds a valid session cookie to req.
func (e *testEnv) signIn(t *testing.T, req *http.Request) {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, e.sessions.Set(rec, testSession()))
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
}

func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

// get serves a signed-in GET.
func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	e.signIn(t, req)
	return e.serve(req)
}

// post serves a signed-in form POST carrying a valid CSRF token.
func (e *testEnv) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := csrfPost(target, form)
	e.signIn(t, req)
	return e.serve(req)
}

// csrfPost builds a form POST with matching CSRF cookie and field.
func csrfPost(target string, form url.Values) *http.Request {
	if form == nil {
		form = url.Values{}
	}
	form.Set(csrfFormField, testCSRFToken)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRFToken})
	return req
}

// redirectTarget parses the Location header of a 303 response.
func redirectTarget(t *testing.T, rec *httptest.ResponseRecorder) *url.URL {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	u, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	return u
}
