// Package fixtures provides test data factories for handler and service
// tests.
//
// Company builds company records with sensible defaults while allowing
// customization via option functions. DocStore and Ledger are in-memory
// backends that stand in for the persistence layer, so tests exercise the
// full command path without a database.
//
// Usage:
//
//	rec := fixtures.Company("Acme",
//		fixtures.WithBalance(5000),
//		fixtures.WithEmployee("alice", 1),
//	)
//	docs := fixtures.NewDocStore(rec)
package fixtures
