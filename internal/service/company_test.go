package service

import (
	"context"
	"errors"
	"testing"

	"github.com/foxsrv/companyeconomy/internal/model"
)

// ============================================================================
// Mock Collaborators
// ============================================================================

type mockDocs struct {
	listFunc   func(ctx context.Context) ([]model.CompanyRecord, []error, error)
	saveFunc   func(ctx context.Context, name string, doc *model.CompanyDocument) error
	deleteFunc func(ctx context.Context, name string) error
}

func (m *mockDocs) List(ctx context.Context) ([]model.CompanyRecord, []error, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil, nil
}

func (m *mockDocs) Save(ctx context.Context, name string, doc *model.CompanyDocument) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, name, doc)
	}
	return nil
}

func (m *mockDocs) Delete(ctx context.Context, name string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, name)
	}
	return nil
}

type mockLedger struct {
	balanceFunc  func(ctx context.Context, playerID string) (float64, error)
	depositFunc  func(ctx context.Context, playerID string, amount float64) error
	withdrawFunc func(ctx context.Context, playerID string, amount float64) (bool, error)
}

func (m *mockLedger) Balance(ctx context.Context, playerID string) (float64, error) {
	if m.balanceFunc != nil {
		return m.balanceFunc(ctx, playerID)
	}
	return 0, nil
}

func (m *mockLedger) Deposit(ctx context.Context, playerID string, amount float64) error {
	if m.depositFunc != nil {
		return m.depositFunc(ctx, playerID, amount)
	}
	return nil
}

func (m *mockLedger) Withdraw(ctx context.Context, playerID string, amount float64) (bool, error) {
	if m.withdrawFunc != nil {
		return m.withdrawFunc(ctx, playerID, amount)
	}
	return true, nil
}

type mockPresence struct {
	online map[string]bool
}

func (m *mockPresence) IsOnline(playerID string) bool {
	return m.online[playerID]
}

func (m *mockPresence) Resolve(playerID string) *model.Session {
	if m.online[playerID] {
		return &model.Session{PlayerID: playerID}
	}
	return nil
}

type mockNotifier struct {
	notices map[string][]string
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{notices: make(map[string][]string)}
}

func (m *mockNotifier) NotifyPlayer(playerID, message string) {
	m.notices[playerID] = append(m.notices[playerID], message)
}

type mockExecutor struct {
	commands []string
}

func (m *mockExecutor) Execute(command string) {
	m.commands = append(m.commands, command)
}

// ============================================================================
// Fixtures
// ============================================================================

// acmeRecord is a two-group company: alice owns it (group 1, all four
// permissions, salary 300), bob clerks (group 2, salary 50, no
// permissions).
func acmeRecord() model.CompanyRecord {
	return model.CompanyRecord{
		Name: "Acme",
		Document: model.CompanyDocument{
			DisplayName: "Acme Corp",
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
					Commands: map[string][]string{
						model.EventHire: {"broadcast %player% joined the owners"},
					},
				},
				2: {Tag: "Clerk", Salary: 50},
			},
			Commands: map[string][]string{
				model.EventFire: {"say %player% has been fired!"},
			},
			Data: map[string]model.EmployeeRecord{
				"alice": {Group: 1},
				"bob":   {Group: 2},
			},
		},
	}
}

func newTestCompany(t *testing.T, docs CompanyDocuments, executor CommandExecutor) *Company {
	t.Helper()
	if docs == nil {
		docs = &mockDocs{}
	}
	return newCompany(acmeRecord(), docs, executor)
}

// ============================================================================
// Balance Tests
// ============================================================================

func TestCompany_DepositThenWithdraw_RestoresBalance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := newTestCompany(t, nil, nil)
	start := c.Balance()

	if err := c.Deposit(ctx, 250); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := c.Withdraw(ctx, 250); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if c.Balance() != start {
		t.Errorf("expected balance %v after deposit+withdraw, got %v", start, c.Balance())
	}
}

func TestCompany_PersistFailure_ChangeStands(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	docs := &mockDocs{
		saveFunc: func(ctx context.Context, name string, doc *model.CompanyDocument) error {
			return errors.New("connection reset")
		},
	}
	c := newTestCompany(t, docs, nil)

	if err := c.Deposit(ctx, 100); err == nil {
		t.Fatal("expected persist error")
	}
	if c.Balance() != 1100 {
		t.Errorf("expected in-memory balance 1100 after failed persist, got %v", c.Balance())
	}
}

// ============================================================================
// Permission Tests
// ============================================================================

func TestCompany_HasPermission_NonEmployee_False(t *testing.T) {
	t.Parallel()

	c := newTestCompany(t, nil, nil)
	if c.HasPermission("mallory", model.PermissionHire) {
		t.Error("expected no permission for non-employee")
	}
}

func TestCompany_HasPermission_MissingFlag_False(t *testing.T) {
	t.Parallel()

	c := newTestCompany(t, nil, nil)
	if c.HasPermission("bob", model.PermissionHire) {
		t.Error("expected no permission when the group does not grant it")
	}
}

func TestCompany_HasPermission_CaseInsensitivePlayer(t *testing.T) {
	t.Parallel()

	c := newTestCompany(t, nil, nil)
	if !c.HasPermission("ALICE", model.PermissionWithdraw) {
		t.Error("expected permission lookup to ignore player case")
	}
}

// ============================================================================
// Roster Tests
// ============================================================================

func TestCompany_AddEmployee_VisibleImmediately(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	saves := 0
	docs := &mockDocs{
		saveFunc: func(ctx context.Context, name string, doc *model.CompanyDocument) error {
			saves++
			return nil
		},
	}
	c := newTestCompany(t, docs, nil)

	if err := c.AddEmployee(ctx, "Carol", 2); err != nil {
		t.Fatalf("add employee: %v", err)
	}
	if !c.IsEmployee("carol") {
		t.Error("expected carol on the roster immediately")
	}
	if c.EmployeeGroup("CAROL") != 2 {
		t.Errorf("expected group 2, got %d", c.EmployeeGroup("CAROL"))
	}
	if saves != 1 {
		t.Errorf("expected 1 save, got %d", saves)
	}
}

func TestCompany_RemoveEmployee_AbsentStillPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	saves := 0
	docs := &mockDocs{
		saveFunc: func(ctx context.Context, name string, doc *model.CompanyDocument) error {
			saves++
			return nil
		},
	}
	c := newTestCompany(t, docs, nil)

	if err := c.RemoveEmployee(ctx, "nobody"); err != nil {
		t.Fatalf("remove employee: %v", err)
	}
	if saves != 1 {
		t.Errorf("expected the document rewritten even for an absent player, saves=%d", saves)
	}
}

func TestCompany_EmployeeGroup_NonEmployee_ReturnsNone(t *testing.T) {
	t.Parallel()

	c := newTestCompany(t, nil, nil)
	if got := c.EmployeeGroup("mallory"); got != model.GroupNone {
		t.Errorf("expected GroupNone, got %d", got)
	}
}

// ============================================================================
// Group Lookup Tests
// ============================================================================

func TestCompany_GroupIDByTag_CaseInsensitive(t *testing.T) {
	t.Parallel()

	c := newTestCompany(t, nil, nil)
	if got := c.GroupIDByTag("clerk"); got != 2 {
		t.Errorf("expected group 2 for tag clerk, got %d", got)
	}
	if got := c.GroupIDByTag("OWNER"); got != 1 {
		t.Errorf("expected group 1 for tag OWNER, got %d", got)
	}
}

func TestCompany_GroupIDByTag_Unknown_ReturnsNone(t *testing.T) {
	t.Parallel()

	c := newTestCompany(t, nil, nil)
	if got := c.GroupIDByTag("janitor"); got != model.GroupNone {
		t.Errorf("expected GroupNone for unknown tag, got %d", got)
	}
}

func TestCompany_SalaryFor_UnknownGroup_Zero(t *testing.T) {
	t.Parallel()

	c := newTestCompany(t, nil, nil)
	if got := c.SalaryFor(99); got != 0 {
		t.Errorf("expected salary 0 for unknown group, got %v", got)
	}
}

// ============================================================================
// Command Trigger Tests
// ============================================================================

func TestCompany_TriggerGroupCommands_SubstitutesPlayer(t *testing.T) {
	t.Parallel()

	exec := &mockExecutor{}
	c := newTestCompany(t, nil, exec)

	c.TriggerGroupCommands(model.EventHire, "carol", 1)

	if len(exec.commands) != 1 {
		t.Fatalf("expected 1 queued command, got %d", len(exec.commands))
	}
	if exec.commands[0] != "broadcast carol joined the owners" {
		t.Errorf("unexpected command: %q", exec.commands[0])
	}
}

func TestCompany_TriggerGlobalCommands_UnknownEvent_NoCommands(t *testing.T) {
	t.Parallel()

	exec := &mockExecutor{}
	c := newTestCompany(t, nil, exec)

	c.TriggerGlobalCommands("on-promote", "carol")

	if len(exec.commands) != 0 {
		t.Errorf("expected no commands for an unknown event, got %v", exec.commands)
	}
}
