package handler

import (
	"net/http"

	"github.com/foxsrv/companyeconomy/internal/model"
	"github.com/foxsrv/companyeconomy/internal/service"
)

// AdminHandler handles operational endpoints: reload, create and delete
// companies. All routes are gated by admin tokens in the router.
type AdminHandler struct {
	svc *service.CompanyService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(svc *service.CompanyService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Reload handles POST /v1/admin/reload - replace all in-memory company
// state from persistence
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reload(r.Context()); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"reloaded":  true,
		"companies": h.svc.CompanyNames(),
	}, nil)
}

// CreateCompany handles POST /v1/companies
func (h *AdminHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCompanyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	info, err := h.svc.CreateCompany(r.Context(), req.Name)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, info, nil)
}

// DeleteCompany handles DELETE /v1/companies/{name}
func (h *AdminHandler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		WriteError(w, model.NewBadRequestError("company name required"))
		return
	}

	if err := h.svc.DeleteCompany(r.Context(), name); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
