package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/foxsrv/companyeconomy/internal/model"
)

// CompanyStore holds every loaded company, keyed by lowercase name.
//
// The store carries the single mutex that serializes all company state.
// Its methods do not lock on their own; CompanyService brackets each
// operation (and the whole payroll cycle) with Lock/Unlock so that a
// command is one atomic sequence, not a series of individually locked
// calls.
type CompanyStore struct {
	mu        sync.Mutex
	docs      CompanyDocuments
	executor  CommandExecutor
	companies map[string]*Company
}

// NewCompanyStore creates an empty store over the given document
// repository. Call Load before serving.
func NewCompanyStore(docs CompanyDocuments, executor CommandExecutor) *CompanyStore {
	return &CompanyStore{
		docs:      docs,
		executor:  executor,
		companies: make(map[string]*Company),
	}
}

// Lock takes the store-wide mutex.
func (s *CompanyStore) Lock() { s.mu.Lock() }

// Unlock releases the store-wide mutex.
func (s *CompanyStore) Unlock() { s.mu.Unlock() }

// Load replaces the in-memory set with whatever is persisted. When the
// backing store holds no company records at all, a default company is
// seeded first. Malformed records are logged and skipped; they never
// abort the load. Company pointers handed out before a Load are stale
// afterwards.
func (s *CompanyStore) Load(ctx context.Context) error {
	records, malformed, err := s.docs.List(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 && len(malformed) == 0 {
		if err := s.seedDefault(ctx); err != nil {
			return err
		}
		records, malformed, err = s.docs.List(ctx)
		if err != nil {
			return err
		}
	}

	companies := make(map[string]*Company, len(records))
	for _, rec := range records {
		companies[strings.ToLower(rec.Name)] = newCompany(rec, s.docs, s.executor)
	}
	for _, decodeErr := range malformed {
		slog.Error("skipping malformed company document", "error", decodeErr)
	}

	s.companies = companies
	slog.Info("companies loaded", "count", len(companies), "skipped", len(malformed))
	return nil
}

// Get returns the company with the given name, case-insensitively, or
// nil when it does not exist.
func (s *CompanyStore) Get(name string) *Company {
	return s.companies[strings.ToLower(name)]
}

// Names returns every company name sorted ascending, case-insensitive.
func (s *CompanyStore) Names() []string {
	names := make([]string, 0, len(s.companies))
	for _, c := range s.companies {
		names = append(names, c.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// Companies returns every company sorted ascending by name.
func (s *CompanyStore) Companies() []*Company {
	out := make([]*Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name()) < strings.ToLower(out[j].Name())
	})
	return out
}

// Create registers a new company with a minimal document and persists
// it. Name collisions are case-insensitive.
func (s *CompanyStore) Create(ctx context.Context, name string) (*Company, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrInvalidName
	}
	if _, ok := s.companies[strings.ToLower(trimmed)]; ok {
		return nil, ErrCompanyExists
	}

	doc := &model.CompanyDocument{DisplayName: trimmed}
	if err := s.docs.Save(ctx, trimmed, doc); err != nil {
		return nil, err
	}

	c := newCompany(model.CompanyRecord{Name: trimmed, Document: *doc}, s.docs, s.executor)
	s.companies[strings.ToLower(trimmed)] = c
	return c, nil
}

// Delete removes the company from memory and from persistence. Returns
// false when no such company exists.
func (s *CompanyStore) Delete(ctx context.Context, name string) (bool, error) {
	key := strings.ToLower(name)
	c, ok := s.companies[key]
	if !ok {
		return false, nil
	}
	delete(s.companies, key)
	if err := s.docs.Delete(ctx, c.Name()); err != nil {
		return true, err
	}
	return true, nil
}

// ResolveForActor finds the company a command applies to. An explicit
// name resolves to that company only, and only when the actor holds the
// permission there; there is no fallback. Without a name, companies are
// scanned ascending by name and the first one granting the actor the
// permission wins, so resolution is deterministic.
func (s *CompanyStore) ResolveForActor(actor, name, permission string) *Company {
	if name != "" {
		c := s.Get(name)
		if c == nil || !c.HasPermission(actor, permission) {
			return nil
		}
		return c
	}
	for _, c := range s.Companies() {
		if c.HasPermission(actor, permission) {
			return c
		}
	}
	return nil
}

// seedDefault writes the starter company so a fresh install has
// something to operate on.
func (s *CompanyStore) seedDefault(ctx context.Context) error {
	doc := &model.CompanyDocument{
		DisplayName: "Default Company",
		Balance:     5000,
		Commands: map[string][]string{
			model.EventFire: {"say %player% has been fired!"},
		},
		Groups: map[int]model.GroupDefinition{
			1: {
				Tag:    "Owner",
				Salary: 300,
				Permissions: map[string]bool{
					model.PermissionHire:     true,
					model.PermissionFire:     true,
					model.PermissionDeposit:  true,
					model.PermissionWithdraw: true,
				},
				Commands: map[string][]string{
					model.EventHire: {"say %player% is now the owner!"},
				},
			},
		},
		Contract: &model.ContractTerms{
			Enabled:        true,
			AutoSendOnHire: true,
			Lines: []string{
				"&6Employment Contract - Default Company",
				"&7--------------------------------------",
				"&7You agree to follow company rules.",
				"&7Breaking rules may result in termination.",
				"&aSalary will be paid every 30 minutes.",
				"&7--------------------------------------",
			},
		},
		Data: map[string]model.EmployeeRecord{
			"steve": {Group: 1},
		},
	}

	if err := s.docs.Save(ctx, "defaultCompany", doc); err != nil {
		return err
	}
	slog.Info("seeded default company", "owner", "steve")
	return nil
}
