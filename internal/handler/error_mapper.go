package handler

import (
	"errors"

	"github.com/foxsrv/companyeconomy/internal/model"
	"github.com/foxsrv/companyeconomy/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring
// consistent HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Permission Errors → 403 =====
	case errors.Is(err, service.ErrNoPermission),
		errors.Is(err, service.ErrNotCompanyMember),
		errors.Is(err, service.ErrRoleTooSenior):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrCompanyNotFound):
		return model.NewNotFoundError("company")
	case errors.Is(err, service.ErrNotEmployee):
		return model.NewNotFoundError("employee")
	case errors.Is(err, service.ErrInvalidRole):
		return model.NewNotFoundError("role")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrCompanyExists),
		errors.Is(err, service.ErrAlreadyEmployed):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidName):
		return model.NewValidationError(err.Error())
	case errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrInsufficientCompanyFunds):
		return model.NewInsufficientFundsError(err.Error())

	// ===== Everything Else → 500 =====
	default:
		return model.NewInternalError("an unexpected error occurred")
	}
}
