package service

import "errors"

// Centralized service errors. Handlers map these onto problem responses
// in one place instead of matching strings.

// ===== Company Errors =====

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrCompanyExists   = errors.New("company already exists")
	ErrInvalidName     = errors.New("invalid company name")
)

// ===== Membership Errors =====

var (
	ErrNotEmployee      = errors.New("player is not an employee")
	ErrAlreadyEmployed  = errors.New("player is already employed")
	ErrNotCompanyMember = errors.New("acting player is not a member of the company")
	ErrInvalidRole      = errors.New("role does not exist in company")
	ErrRoleTooSenior    = errors.New("role is not junior to the acting player's role")
)

// ===== Permission Errors =====

var (
	ErrNoPermission = errors.New("no permission for this company operation")
)

// ===== Money Errors =====

var (
	ErrInvalidAmount            = errors.New("amount must be a positive finite number")
	ErrInsufficientFunds        = errors.New("insufficient personal funds")
	ErrInsufficientCompanyFunds = errors.New("insufficient company funds")
)
