package handler

import (
	"context"
	"net/http"

	"github.com/foxsrv/companyeconomy/internal/middleware"
	"github.com/foxsrv/companyeconomy/internal/model"
	"github.com/foxsrv/companyeconomy/internal/service"
)

// CompanyHandler handles company command HTTP requests
type CompanyHandler struct {
	svc *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(svc *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

// Hire handles POST /v1/company/hire
func (h *CompanyHandler) Hire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := middleware.GetPlayerID(ctx)
	if actor == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.HireRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.Player == "" || req.Role == "" {
		WriteError(w, model.NewBadRequestError("player and role are required"))
		return
	}

	result, err := h.svc.Hire(ctx, actor, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// Fire handles POST /v1/company/fire
func (h *CompanyHandler) Fire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := middleware.GetPlayerID(ctx)
	if actor == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.FireRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.Player == "" {
		WriteError(w, model.NewBadRequestError("player is required"))
		return
	}

	result, err := h.svc.Fire(ctx, actor, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// Leave handles POST /v1/company/leave
func (h *CompanyHandler) Leave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := middleware.GetPlayerID(ctx)
	if actor == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.LeaveRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.svc.Leave(ctx, actor, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// Deposit handles POST /v1/company/deposit
func (h *CompanyHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.money(w, r, h.svc.Deposit)
}

// Withdraw handles POST /v1/company/withdraw
func (h *CompanyHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.money(w, r, h.svc.Withdraw)
}

func (h *CompanyHandler) money(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, actor string, req model.MoneyRequest) (*model.CommandResult, error)) {

	ctx := r.Context()
	actor := middleware.GetPlayerID(ctx)
	if actor == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.MoneyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := op(ctx, actor, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// Info handles GET /v1/company/info?company=Name
func (h *CompanyHandler) Info(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Info(r.URL.Query().Get("company"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, info, nil)
}

// List handles GET /v1/companies
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, h.svc.CompanyNames(), nil)
}

// Balance handles GET /v1/ledger - the acting player's personal balance
func (h *CompanyHandler) Balance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := middleware.GetPlayerID(ctx)
	if actor == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	balance, err := h.svc.PersonalBalance(ctx, actor)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, map[string]float64{"balance": balance}, nil)
}
