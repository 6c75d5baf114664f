package fixtures

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/foxsrv/companyeconomy/internal/model"
)

// CompanyOpts customizes company record creation
type CompanyOpts struct {
	DisplayName string
	Balance     float64
	Groups      map[int]model.GroupDefinition
	Employees   map[string]int
	Commands    map[string][]string
	Contract    *model.ContractTerms
}

// Company builds a company record with sensible defaults: a paid Owner
// group with every permission and an unpaid Worker group below it.
func Company(name string, opts ...func(*CompanyOpts)) model.CompanyRecord {
	o := &CompanyOpts{
		DisplayName: name,
		Balance:     1000,
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
			},
			2: {Tag: "Worker", Salary: 50},
		},
		Employees: map[string]int{},
		Commands:  map[string][]string{},
	}
	for _, fn := range opts {
		fn(o)
	}

	data := make(map[string]model.EmployeeRecord, len(o.Employees))
	for player, group := range o.Employees {
		data[strings.ToLower(player)] = model.EmployeeRecord{Group: group}
	}

	return model.CompanyRecord{
		Name: name,
		Document: model.CompanyDocument{
			DisplayName: o.DisplayName,
			Balance:     o.Balance,
			Groups:      o.Groups,
			Commands:    o.Commands,
			Contract:    o.Contract,
			Data:        data,
		},
	}
}

// WithBalance sets the starting company balance
func WithBalance(balance float64) func(*CompanyOpts) {
	return func(o *CompanyOpts) { o.Balance = balance }
}

// WithDisplayName sets the display name
func WithDisplayName(name string) func(*CompanyOpts) {
	return func(o *CompanyOpts) { o.DisplayName = name }
}

// WithEmployee places a player in a group
func WithEmployee(player string, group int) func(*CompanyOpts) {
	return func(o *CompanyOpts) { o.Employees[player] = group }
}

// WithGroup replaces one group definition
func WithGroup(id int, def model.GroupDefinition) func(*CompanyOpts) {
	return func(o *CompanyOpts) { o.Groups[id] = def }
}

// WithGlobalCommands sets the company-wide command templates for an event
func WithGlobalCommands(event string, commands ...string) func(*CompanyOpts) {
	return func(o *CompanyOpts) { o.Commands[event] = commands }
}

// WithContract attaches an auto-sent employment contract
func WithContract(lines ...string) func(*CompanyOpts) {
	return func(o *CompanyOpts) {
		o.Contract = &model.ContractTerms{
			Enabled:        true,
			AutoSendOnHire: true,
			Lines:          lines,
		}
	}
}

// DocStore is an in-memory company document backend. It satisfies the
// service layer's document interface so tests run without a database.
type DocStore struct {
	mu      sync.Mutex
	records map[string]model.CompanyDocument
	saves   int
	failing bool
}

// NewDocStore seeds a document store with the given records
func NewDocStore(records ...model.CompanyRecord) *DocStore {
	s := &DocStore{records: make(map[string]model.CompanyDocument)}
	for _, rec := range records {
		s.records[rec.Name] = rec.Document
	}
	return s
}

// List returns every stored record sorted by name
func (s *DocStore) List(_ context.Context) ([]model.CompanyRecord, []error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]model.CompanyRecord, 0, len(names))
	for _, name := range names {
		records = append(records, model.CompanyRecord{Name: name, Document: s.records[name]})
	}
	return records, nil, nil
}

// Save stores a full document under the given name
func (s *DocStore) Save(_ context.Context, name string, doc *model.CompanyDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saves++
	if s.failing {
		return fmt.Errorf("fixtures: document store failing")
	}
	s.records[name] = *doc
	return nil
}

// Delete removes a stored document
func (s *DocStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, name)
	return nil
}

// Saves reports how many saves were attempted
func (s *DocStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// FailSaves makes subsequent saves return an error
func (s *DocStore) FailSaves(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = fail
}

// Document returns the stored document for a name, if present
func (s *DocStore) Document(name string) (model.CompanyDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.records[name]
	return doc, ok
}

// Ledger is an in-memory personal balance backend
type Ledger struct {
	mu       sync.Mutex
	balances map[string]float64
}

// NewLedger creates an empty in-memory ledger
func NewLedger() *Ledger {
	return &Ledger{balances: make(map[string]float64)}
}

// SetBalance seeds a player's personal balance
func (l *Ledger) SetBalance(playerID string, amount float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[playerID] = amount
}

// Balance returns a player's personal balance
func (l *Ledger) Balance(_ context.Context, playerID string) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[playerID], nil
}

// Deposit credits a player's personal balance
func (l *Ledger) Deposit(_ context.Context, playerID string, amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[playerID] += amount
	return nil
}

// Withdraw debits a player's personal balance when it covers the amount
func (l *Ledger) Withdraw(_ context.Context, playerID string, amount float64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[playerID] < amount {
		return false, nil
	}
	l.balances[playerID] -= amount
	return true, nil
}
