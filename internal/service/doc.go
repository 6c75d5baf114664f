// Package service implements the business logic of the company economy.
//
// The company state (balances, groups, rosters) lives in memory in a
// CompanyStore and writes through to persistence on every mutation.
// CompanyService is the actor-facing command surface; it validates fully
// before mutating, and serializes commands and payroll cycles on the
// store's single mutex.
//
// # Service Pattern
//
// Services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with dependencies
//   - Methods implement business operations with all validation up front
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation
//
// # Collaborator Interfaces
//
// The package defines its own interfaces for its collaborators (Ledger,
// Presence, CommandExecutor, Notifier, CompanyDocuments), allowing easy
// mocking for unit tests and decoupling from concrete implementations.
//
// # Example Usage
//
//	store := service.NewCompanyStore(companyRepo, executor)
//	svc := service.NewCompanyService(service.CompanyServiceConfig{
//	    Store:    store,
//	    Ledger:   ledgerRepo,
//	    Presence: presence,
//	    Notifier: hub,
//	})
//	result, err := svc.Hire(ctx, "alice", model.HireRequest{
//	    Player: "steve",
//	    Role:   "Clerk",
//	})
package service
