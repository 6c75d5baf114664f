// Package handler provides HTTP request handlers for the company
// economy API.
//
// The handler package contains all HTTP endpoint implementations
// organized by feature area: company commands, admin operations,
// presence reporting, and SSE notice streams.
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts the service it serves
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details responses by
//     MapServiceError
//
// # Authentication
//
// Company command handlers require a player JWT; the auth middleware
// puts the acting player id in the request context, readable via
// middleware.GetPlayerID. Admin and presence routes are gated by
// role-checked variants of the same middleware.
//
// # Example Usage
//
//	companies := NewCompanyHandler(companyService)
//	mux.Handle("POST /v1/company/hire", auth(http.HandlerFunc(companies.Hire)))
package handler
