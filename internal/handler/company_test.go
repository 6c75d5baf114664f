package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/foxsrv/companyeconomy/internal/middleware"
	"github.com/foxsrv/companyeconomy/internal/model"
	"github.com/foxsrv/companyeconomy/internal/service"
	"github.com/foxsrv/companyeconomy/internal/testing/fixtures"
	"github.com/foxsrv/companyeconomy/internal/testing/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Test Environment
// ============================================================================

// recordingExecutor captures console commands instead of forwarding them
type recordingExecutor struct {
	mu       sync.Mutex
	commands []string
}

func (e *recordingExecutor) Execute(command string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commands = append(e.commands, command)
}

// testEnv wires the full request path: router, auth middleware, handlers,
// service, and in-memory backends.
type testEnv struct {
	router   http.Handler
	jwt      *helpers.JWTHelper
	docs     *fixtures.DocStore
	ledger   *fixtures.Ledger
	presence *service.PresenceRegistry
	executor *recordingExecutor
	svc      *service.CompanyService
}

func newTestEnv(t *testing.T, records ...model.CompanyRecord) *testEnv {
	t.Helper()

	docs := fixtures.NewDocStore(records...)
	ledger := fixtures.NewLedger()
	executor := &recordingExecutor{}
	presence := service.NewPresenceRegistry()
	hub := service.NewEventHub()
	t.Cleanup(hub.Close)

	store := service.NewCompanyStore(docs, executor)
	svc := service.NewCompanyService(service.CompanyServiceConfig{
		Store:    store,
		Ledger:   ledger,
		Presence: presence,
		Notifier: hub,
	})
	require.NoError(t, svc.Reload(context.Background()))

	jwtHelper := helpers.NewJWTHelper(t)
	auth := middleware.Auth(jwtHelper.Service())
	admin := middleware.AdminOnly(jwtHelper.Service())
	bridge := middleware.BridgeAuth(jwtHelper.Service(), "")

	companyHandler := NewCompanyHandler(svc)
	adminHandler := NewAdminHandler(svc)
	presenceHandler := NewPresenceHandler(presence)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", Health)
	mux.Handle("POST /v1/company/hire", auth(http.HandlerFunc(companyHandler.Hire)))
	mux.Handle("POST /v1/company/fire", auth(http.HandlerFunc(companyHandler.Fire)))
	mux.Handle("POST /v1/company/leave", auth(http.HandlerFunc(companyHandler.Leave)))
	mux.Handle("POST /v1/company/deposit", auth(http.HandlerFunc(companyHandler.Deposit)))
	mux.Handle("POST /v1/company/withdraw", auth(http.HandlerFunc(companyHandler.Withdraw)))
	mux.Handle("GET /v1/company/info", auth(http.HandlerFunc(companyHandler.Info)))
	mux.Handle("GET /v1/companies", auth(http.HandlerFunc(companyHandler.List)))
	mux.Handle("GET /v1/ledger", auth(http.HandlerFunc(companyHandler.Balance)))
	mux.Handle("POST /v1/presence/{playerId}/connect", bridge(http.HandlerFunc(presenceHandler.Connect)))
	mux.Handle("POST /v1/presence/{playerId}/disconnect", bridge(http.HandlerFunc(presenceHandler.Disconnect)))
	mux.Handle("GET /v1/presence/{playerId}", auth(http.HandlerFunc(presenceHandler.Status)))
	mux.Handle("POST /v1/admin/reload", admin(http.HandlerFunc(adminHandler.Reload)))
	mux.Handle("POST /v1/companies", admin(http.HandlerFunc(adminHandler.CreateCompany)))
	mux.Handle("DELETE /v1/companies/{name}", admin(http.HandlerFunc(adminHandler.DeleteCompany)))

	return &testEnv{
		router:   mux,
		jwt:      jwtHelper,
		docs:     docs,
		ledger:   ledger,
		presence: presence,
		executor: executor,
		svc:      svc,
	}
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

func acmeFixture() model.CompanyRecord {
	return fixtures.Company("Acme",
		fixtures.WithDisplayName("Acme Corp"),
		fixtures.WithBalance(1000),
		fixtures.WithEmployee("alice", 1),
		fixtures.WithEmployee("bob", 2),
		fixtures.WithGlobalCommands(model.EventFire, "say %player% has been fired!"),
	)
}

// ============================================================================
// Hire / Fire / Leave
// ============================================================================

func TestHire_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())

	req := helpers.NewRequest(t, http.MethodPost, "/v1/company/hire").
		WithBody(model.HireRequest{Player: "carol", Role: "Worker"}).
		WithToken(env.jwt.PlayerToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertStatus(t, resp, http.StatusOK)

	var body struct {
		Data model.CommandResult `json:"data"`
	}
	helpers.DecodeResponse(t, resp, &body)
	assert.True(t, body.Data.Success)

	doc, ok := env.docs.Document("Acme")
	require.True(t, ok)
	assert.Contains(t, doc.Data, "carol")
	assert.Equal(t, 2, doc.Data["carol"].Group)
}

func TestHire_MissingToken_Returns401(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())

	req := helpers.NewRequest(t, http.MethodPost, "/v1/company/hire").
		WithBody(model.HireRequest{Player: "carol", Role: "Worker"}).
		Build()
	resp := env.do(req)

	helpers.AssertProblemDetails(t, resp, http.StatusUnauthorized, model.ErrCodeUnauthorized)
}

func TestHire_ExpiredToken_Returns401(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())

	req := helpers.NewRequest(t, http.MethodPost, "/v1/company/hire").
		WithBody(model.HireRequest{Player: "carol", Role: "Worker"}).
		WithToken(env.jwt.ExpiredToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestHire_WithoutPermission_Returns403(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())

	// bob is a Worker with no can-hire
	req := helpers.NewRequest(t, http.MethodPost, "/v1/company/hire").
		WithBody(model.HireRequest{Player: "carol", Role: "Worker"}).
		WithToken(env.jwt.PlayerToken("bob")).
		Build()
	resp := env.do(req)

	helpers.AssertProblemDetails(t, resp, http.StatusForbidden, model.ErrCodeForbidden)
}

func TestHire_UnknownRole_Returns404(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())

	req := helpers.NewRequest(t, http.MethodPost, "/v1/company/hire").
		WithBody(model.HireRequest{Player: "carol", Role: "Janitor"}).
		WithToken(env.jwt.PlayerToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertProblemDetails(t, resp, http.StatusNotFound, model.ErrCodeNotFound)
}

func TestHire_MissingFields_Returns400(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())

	req := helpers.NewRequest(t, http.MethodPost, "/v1/company/hire").
		WithBody(model.HireRequest{Player: "carol"}).
		WithToken(env.jwt.PlayerToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertStatus(t, resp, http.StatusBadRequest)
}

func TestFire_Success_QueuesGlobalCommands(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())

	req := helpers.NewRequest(t, http.MethodPost, "/v1/company/fire").
		WithBody(model.FireRequest{Player: "bob"}).
		WithToken(env.jwt.PlayerToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertStatus(t, resp, http.StatusOK)

	doc, ok := env.docs.Document("Acme")
	require.True(t, ok)
	assert.NotContains(t, doc.Data, "bob")
	assert.Contains(t, env.executor.commands, "say bob has been fired!")
}

func TestLeave_NotAMember_Returns403(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())

	req := helpers.NewRequest(t, http.MethodPost, "/v1/company/leave").
		WithBody(model.LeaveRequest{Company: "Acme"}).
		WithToken(env.jwt.PlayerToken("stranger")).
		Build()
	resp := env.do(req)

	helpers.AssertProblemDetails(t, resp, http.StatusForbidden, model.ErrCodeForbidden)
}

// ============================================================================
// Deposit / Withdraw
// ============================================================================

func TestDeposit_Success_MovesFunds(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())
	env.ledger.SetBalance("alice", 500)

	req := helpers.NewRequest(t, http.MethodPost, "/v1/company/deposit").
		WithBody(model.MoneyRequest{Amount: 200}).
		WithToken(env.jwt.PlayerToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertStatus(t, resp, http.StatusOK)

	balance, err := env.ledger.Balance(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 300.0, balance)

	doc, ok := env.docs.Document("Acme")
	require.True(t, ok)
	assert.Equal(t, 1200.0, doc.Balance)
}

func TestDeposit_InsufficientPersonalFunds_Returns422(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())
	env.ledger.SetBalance("alice", 50)

	req := helpers.NewRequest(t, http.MethodPost, "/v1/company/deposit").
		WithBody(model.MoneyRequest{Amount: 200}).
		WithToken(env.jwt.PlayerToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertProblemDetails(t, resp, http.StatusUnprocessableEntity, model.ErrCodeInsufficientFunds)
}

func TestDeposit_NegativeAmount_Returns422(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())

	req := helpers.NewRequest(t, http.MethodPost, "/v1/company/deposit").
		WithBody(model.MoneyRequest{Amount: -5}).
		WithToken(env.jwt.PlayerToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertProblemDetails(t, resp, http.StatusUnprocessableEntity, model.ErrCodeValidation)
}

func TestWithdraw_Success_MovesFunds(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())

	req := helpers.NewRequest(t, http.MethodPost, "/v1/company/withdraw").
		WithBody(model.MoneyRequest{Amount: 400}).
		WithToken(env.jwt.PlayerToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertStatus(t, resp, http.StatusOK)

	balance, err := env.ledger.Balance(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 400.0, balance)

	doc, ok := env.docs.Document("Acme")
	require.True(t, ok)
	assert.Equal(t, 600.0, doc.Balance)
}

func TestWithdraw_InsufficientCompanyFunds_Returns422(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())

	req := helpers.NewRequest(t, http.MethodPost, "/v1/company/withdraw").
		WithBody(model.MoneyRequest{Amount: 5000}).
		WithToken(env.jwt.PlayerToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertProblemDetails(t, resp, http.StatusUnprocessableEntity, model.ErrCodeInsufficientFunds)
}

// ============================================================================
// Info / List / Balance
// ============================================================================

func TestInfo_ReturnsRoster(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())

	req := helpers.NewRequest(t, http.MethodGet, "/v1/company/info?company=Acme").
		WithToken(env.jwt.PlayerToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertStatus(t, resp, http.StatusOK)

	var body struct {
		Data model.CompanyInfo `json:"data"`
	}
	helpers.DecodeResponse(t, resp, &body)
	assert.Equal(t, "Acme Corp", body.Data.DisplayName)
	assert.Equal(t, 1000.0, body.Data.Balance)
	require.Len(t, body.Data.Members, 2)
	assert.Equal(t, "alice", body.Data.Members[0].Player)
	assert.Equal(t, "Owner", body.Data.Members[0].Role)
}

func TestInfo_UnknownCompany_Returns404(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())

	req := helpers.NewRequest(t, http.MethodGet, "/v1/company/info?company=Globex").
		WithToken(env.jwt.PlayerToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertProblemDetails(t, resp, http.StatusNotFound, model.ErrCodeNotFound)
}

func TestList_ReturnsNames(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t,
		fixtures.Company("Bravo"),
		fixtures.Company("Alpha"),
	)

	req := helpers.NewRequest(t, http.MethodGet, "/v1/companies").
		WithToken(env.jwt.PlayerToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertStatus(t, resp, http.StatusOK)

	var body struct {
		Data []string `json:"data"`
	}
	helpers.DecodeResponse(t, resp, &body)
	assert.Equal(t, []string{"Alpha", "Bravo"}, body.Data)
}

func TestBalance_ReturnsPersonalBalance(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, acmeFixture())
	env.ledger.SetBalance("alice", 123.45)

	req := helpers.NewRequest(t, http.MethodGet, "/v1/ledger").
		WithToken(env.jwt.PlayerToken("alice")).
		Build()
	resp := env.do(req)

	helpers.AssertStatus(t, resp, http.StatusOK)

	data := helpers.GetDataFromResponse(t, resp)
	assert.Equal(t, 123.45, data["balance"])
}
