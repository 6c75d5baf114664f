package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/foxsrv/companyeconomy/internal/model"
)

// Ledger is the personal-balance backend. Withdraw is conditional: it
// reports false, without error, when the player cannot cover the amount.
type Ledger interface {
	Balance(ctx context.Context, playerID string) (float64, error)
	Deposit(ctx context.Context, playerID string, amount float64) error
	Withdraw(ctx context.Context, playerID string, amount float64) (bool, error)
}

// Presence answers whether a player currently has a session.
type Presence interface {
	IsOnline(playerID string) bool
	Resolve(playerID string) *model.Session
}

// Notifier delivers a short notice to a single player. Delivery is best
// effort; offline players simply miss the notice.
type Notifier interface {
	NotifyPlayer(playerID, message string)
}

// CompanyService is the actor-facing command surface. Every operation
// validates fully before mutating anything, and every mutating operation
// runs under the store lock so commands and payroll cycles interleave as
// whole units.
type CompanyService struct {
	store    *CompanyStore
	ledger   Ledger
	presence Presence
	notifier Notifier
}

// CompanyServiceConfig holds the dependencies for CompanyService.
type CompanyServiceConfig struct {
	Store    *CompanyStore
	Ledger   Ledger
	Presence Presence
	Notifier Notifier
}

// NewCompanyService creates the command dispatch service.
func NewCompanyService(cfg CompanyServiceConfig) *CompanyService {
	return &CompanyService{
		store:    cfg.Store,
		ledger:   cfg.Ledger,
		presence: cfg.Presence,
		notifier: cfg.Notifier,
	}
}

// Hire adds req.Player to a company in the role req.Role. The acting
// player needs can-hire, the target must not already be employed there,
// and the target role must be junior to the actor's own group (higher
// group id). Group on-hire commands fire whether or not the target is
// online, and contract lines are sent when the company auto-sends them.
func (s *CompanyService) Hire(ctx context.Context, actor string, req model.HireRequest) (*model.CommandResult, error) {
	s.store.Lock()
	defer s.store.Unlock()

	company, err := s.resolve(actor, req.Company, model.PermissionHire)
	if err != nil {
		return nil, err
	}
	if company.IsEmployee(req.Player) {
		return nil, ErrAlreadyEmployed
	}
	targetGroup := company.GroupIDByTag(req.Role)
	if targetGroup == model.GroupNone {
		return nil, ErrInvalidRole
	}
	actorGroup := company.EmployeeGroup(actor)
	if actorGroup == model.GroupNone || actorGroup >= targetGroup {
		return nil, ErrRoleTooSenior
	}

	// A failed write is logged inside the company; the roster change
	// is live either way.
	_ = company.AddEmployee(ctx, req.Player, targetGroup)

	company.TriggerGroupCommands(model.EventHire, req.Player, targetGroup)
	s.sendContract(company, req.Player)
	s.notify(req.Player, fmt.Sprintf("You have been hired by %s as %s.",
		company.DisplayName(), company.GroupTag(targetGroup)))

	return &model.CommandResult{
		Success: true,
		Message: fmt.Sprintf("Hired %s as %s at %s.", req.Player, company.GroupTag(targetGroup), company.DisplayName()),
	}, nil
}

// Fire removes req.Player from a company. The acting player needs
// can-fire and the target must be on the roster. Global on-fire commands
// fire whether or not the target is online.
func (s *CompanyService) Fire(ctx context.Context, actor string, req model.FireRequest) (*model.CommandResult, error) {
	s.store.Lock()
	defer s.store.Unlock()

	company, err := s.resolve(actor, req.Company, model.PermissionFire)
	if err != nil {
		return nil, err
	}
	if !company.IsEmployee(req.Player) {
		return nil, ErrNotEmployee
	}

	_ = company.RemoveEmployee(ctx, req.Player)

	company.TriggerGlobalCommands(model.EventFire, req.Player)
	s.notify(req.Player, fmt.Sprintf("You have been fired from %s.", company.DisplayName()))

	return &model.CommandResult{
		Success: true,
		Message: fmt.Sprintf("Fired %s from %s.", req.Player, company.DisplayName()),
	}, nil
}

// Leave removes the acting player from a company of their own. No
// permission is needed, only membership. Leaving triggers the global
// on-fire commands, same as a firing.
func (s *CompanyService) Leave(ctx context.Context, actor string, req model.LeaveRequest) (*model.CommandResult, error) {
	s.store.Lock()
	defer s.store.Unlock()

	var company *Company
	if req.Company != "" {
		company = s.store.Get(req.Company)
		if company == nil {
			return nil, ErrCompanyNotFound
		}
		if !company.IsEmployee(actor) {
			return nil, ErrNotCompanyMember
		}
	} else {
		for _, c := range s.store.Companies() {
			if c.IsEmployee(actor) {
				company = c
				break
			}
		}
		if company == nil {
			return nil, ErrNotCompanyMember
		}
	}

	_ = company.RemoveEmployee(ctx, actor)

	company.TriggerGlobalCommands(model.EventFire, actor)

	return &model.CommandResult{
		Success: true,
		Message: fmt.Sprintf("You left %s.", company.DisplayName()),
	}, nil
}

// Deposit moves money from the acting player's personal balance into the
// company balance. Needs can-deposit and sufficient personal funds.
func (s *CompanyService) Deposit(ctx context.Context, actor string, req model.MoneyRequest) (*model.CommandResult, error) {
	if err := validAmount(req.Amount); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	company, err := s.resolve(actor, req.Company, model.PermissionDeposit)
	if err != nil {
		return nil, err
	}

	ok, err := s.ledger.Withdraw(ctx, actor, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("ledger withdraw: %w", err)
	}
	if !ok {
		return nil, ErrInsufficientFunds
	}

	_ = company.Deposit(ctx, req.Amount)

	return &model.CommandResult{
		Success: true,
		Message: fmt.Sprintf("Deposited %.2f into %s.", req.Amount, company.DisplayName()),
	}, nil
}

// Withdraw moves money from the company balance into the acting player's
// personal balance. Needs can-withdraw, and the company balance must
// cover the amount. This is the only place the company funds check is
// enforced.
func (s *CompanyService) Withdraw(ctx context.Context, actor string, req model.MoneyRequest) (*model.CommandResult, error) {
	if err := validAmount(req.Amount); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	company, err := s.resolve(actor, req.Company, model.PermissionWithdraw)
	if err != nil {
		return nil, err
	}
	if company.Balance() < req.Amount {
		return nil, ErrInsufficientCompanyFunds
	}

	// Credit the player first. If the ledger fails nothing has moved.
	if err := s.ledger.Deposit(ctx, actor, req.Amount); err != nil {
		return nil, fmt.Errorf("ledger deposit: %w", err)
	}
	_ = company.Withdraw(ctx, req.Amount)

	return &model.CommandResult{
		Success: true,
		Message: fmt.Sprintf("Withdrew %.2f from %s.", req.Amount, company.DisplayName()),
	}, nil
}

// Info renders a read-only view of a company. With no name, the
// alphabetically first company is shown.
func (s *CompanyService) Info(name string) (*model.CompanyInfo, error) {
	s.store.Lock()
	defer s.store.Unlock()

	var company *Company
	if name != "" {
		company = s.store.Get(name)
	} else if all := s.store.Companies(); len(all) > 0 {
		company = all[0]
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	employees := company.Employees()
	members := make([]model.MemberInfo, 0, len(employees))
	for player, group := range employees {
		members = append(members, model.MemberInfo{
			Player: player,
			Group:  group,
			Role:   company.GroupTag(group),
		})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Player < members[j].Player })

	return &model.CompanyInfo{
		Name:        company.Name(),
		DisplayName: company.DisplayName(),
		Balance:     company.Balance(),
		Members:     members,
	}, nil
}

// CompanyNames lists every company name, sorted ascending.
func (s *CompanyService) CompanyNames() []string {
	s.store.Lock()
	defer s.store.Unlock()
	return s.store.Names()
}

// PersonalBalance reads the acting player's ledger balance.
func (s *CompanyService) PersonalBalance(ctx context.Context, actor string) (float64, error) {
	return s.ledger.Balance(ctx, actor)
}

// Reload replaces all in-memory company state from persistence.
func (s *CompanyService) Reload(ctx context.Context) error {
	s.store.Lock()
	defer s.store.Unlock()
	return s.store.Load(ctx)
}

// CreateCompany registers a new company with an empty roster.
func (s *CompanyService) CreateCompany(ctx context.Context, name string) (*model.CompanyInfo, error) {
	s.store.Lock()
	defer s.store.Unlock()

	company, err := s.store.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &model.CompanyInfo{
		Name:        company.Name(),
		DisplayName: company.DisplayName(),
		Balance:     company.Balance(),
		Members:     []model.MemberInfo{},
	}, nil
}

// DeleteCompany removes a company entirely.
func (s *CompanyService) DeleteCompany(ctx context.Context, name string) error {
	s.store.Lock()
	defer s.store.Unlock()

	ok, err := s.store.Delete(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCompanyNotFound
	}
	return nil
}

// resolve picks the company an operation targets. With an explicit name
// the company must exist and grant the actor the permission, no
// fallback. Without one, the first company (ascending by name) granting
// the permission wins.
func (s *CompanyService) resolve(actor, name, permission string) (*Company, error) {
	if name != "" {
		company := s.store.Get(name)
		if company == nil {
			return nil, ErrCompanyNotFound
		}
		if !company.HasPermission(actor, permission) {
			return nil, ErrNoPermission
		}
		return company, nil
	}
	if company := s.store.ResolveForActor(actor, "", permission); company != nil {
		return company, nil
	}
	return nil, ErrNoPermission
}

func (s *CompanyService) sendContract(company *Company, player string) {
	contract := company.Contract()
	if contract == nil || !contract.Enabled || !contract.AutoSendOnHire {
		return
	}
	for _, line := range contract.Lines {
		s.notify(player, line)
	}
}

func (s *CompanyService) notify(player, message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyPlayer(player, message)
}

func validAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
