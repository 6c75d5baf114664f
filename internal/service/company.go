package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/foxsrv/companyeconomy/internal/model"
)

// CompanyDocuments is the persistence surface a company writes through.
// Implemented by repository.CompanyRepository.
type CompanyDocuments interface {
	List(ctx context.Context) (records []model.CompanyRecord, malformed []error, err error)
	Save(ctx context.Context, name string, doc *model.CompanyDocument) error
	Delete(ctx context.Context, name string) error
}

// CommandExecutor accepts console command lines for asynchronous
// dispatch. Execute never blocks the caller.
type CommandExecutor interface {
	Execute(command string)
}

// Company is the in-memory authority for one company. Mutators apply the
// change in memory first and then rewrite the whole persisted document;
// a failed write is logged and reported but the in-memory change stands.
//
// Company is not safe for concurrent use on its own. CompanyService
// serializes every mutating path, including payroll.
type Company struct {
	name        string
	displayName string
	balance     float64
	groups      map[int]model.GroupDefinition
	employees   map[string]int
	commands    map[string][]string
	contract    *model.ContractTerms

	docs     CompanyDocuments
	executor CommandExecutor
}

func newCompany(rec model.CompanyRecord, docs CompanyDocuments, executor CommandExecutor) *Company {
	c := &Company{
		name:        rec.Name,
		displayName: rec.Document.DisplayName,
		balance:     rec.Document.Balance,
		groups:      make(map[int]model.GroupDefinition),
		employees:   make(map[string]int),
		commands:    make(map[string][]string),
		contract:    rec.Document.Contract,
		docs:        docs,
		executor:    executor,
	}
	if c.displayName == "" {
		c.displayName = rec.Name
	}
	for id, group := range rec.Document.Groups {
		c.groups[id] = group
	}
	for event, templates := range rec.Document.Commands {
		c.commands[event] = append([]string(nil), templates...)
	}
	for player, record := range rec.Document.Data {
		c.employees[strings.ToLower(player)] = record.Group
	}
	return c
}

// Name returns the canonical (storage) name of the company.
func (c *Company) Name() string { return c.name }

// DisplayName returns the human-facing name.
func (c *Company) DisplayName() string { return c.displayName }

// Balance returns the shared company balance.
func (c *Company) Balance() float64 { return c.balance }

// Contract returns the employment contract terms, or nil when the
// company has none.
func (c *Company) Contract() *model.ContractTerms { return c.contract }

// Employees returns a copy of the roster: lowercase player id to group id.
func (c *Company) Employees() map[string]int {
	out := make(map[string]int, len(c.employees))
	for player, group := range c.employees {
		out[player] = group
	}
	return out
}

// IsEmployee reports whether the player is on the roster. Player ids are
// compared case-insensitively.
func (c *Company) IsEmployee(player string) bool {
	_, ok := c.employees[strings.ToLower(player)]
	return ok
}

// EmployeeGroup returns the player's group id, or model.GroupNone when
// the player is not employed.
func (c *Company) EmployeeGroup(player string) int {
	group, ok := c.employees[strings.ToLower(player)]
	if !ok {
		return model.GroupNone
	}
	return group
}

// GroupIDByTag resolves a role tag to its group id, case-insensitively.
// Returns model.GroupNone when no group carries the tag. When several
// groups share a tag an arbitrary one wins.
func (c *Company) GroupIDByTag(tag string) int {
	for id, group := range c.groups {
		if strings.EqualFold(group.Tag, tag) {
			return id
		}
	}
	return model.GroupNone
}

// GroupTag returns the display tag of a group, or "" for an unknown id.
func (c *Company) GroupTag(groupID int) string {
	return c.groups[groupID].Tag
}

// GroupTags returns every role tag defined by the company, in no
// particular order.
func (c *Company) GroupTags() []string {
	tags := make([]string, 0, len(c.groups))
	for _, group := range c.groups {
		tags = append(tags, group.Tag)
	}
	return tags
}

// SalaryFor returns the per-cycle salary of a group, 0 for unknown ids.
func (c *Company) SalaryFor(groupID int) float64 {
	return c.groups[groupID].Salary
}

// HasPermission reports whether the player's group explicitly grants the
// permission. Non-employees and groups without the flag get false.
func (c *Company) HasPermission(player, permission string) bool {
	groupID, ok := c.employees[strings.ToLower(player)]
	if !ok {
		return false
	}
	group, ok := c.groups[groupID]
	if !ok {
		return false
	}
	return group.Permissions[permission]
}

// AddEmployee puts the player into the given group and persists. An
// existing assignment is overwritten; callers gate on IsEmployee first.
func (c *Company) AddEmployee(ctx context.Context, player string, groupID int) error {
	c.employees[strings.ToLower(player)] = groupID
	return c.persist(ctx)
}

// RemoveEmployee drops the player from the roster and persists. The
// document is rewritten even when the player was not on it.
func (c *Company) RemoveEmployee(ctx context.Context, player string) error {
	delete(c.employees, strings.ToLower(player))
	return c.persist(ctx)
}

// Deposit adds to the company balance and persists.
func (c *Company) Deposit(ctx context.Context, amount float64) error {
	c.balance += amount
	return c.persist(ctx)
}

// Withdraw subtracts from the company balance and persists. The balance
// may go negative here; funds checks belong to the caller.
func (c *Company) Withdraw(ctx context.Context, amount float64) error {
	c.balance -= amount
	return c.persist(ctx)
}

// TriggerGroupCommands queues the group's command templates for the
// event, with the player substituted in. Fire and forget.
func (c *Company) TriggerGroupCommands(event, player string, groupID int) {
	group, ok := c.groups[groupID]
	if !ok {
		return
	}
	c.runTemplates(group.Commands[event], player)
}

// TriggerGlobalCommands queues the company-wide command templates for
// the event, with the player substituted in.
func (c *Company) TriggerGlobalCommands(event, player string) {
	c.runTemplates(c.commands[event], player)
}

func (c *Company) runTemplates(templates []string, player string) {
	if c.executor == nil {
		return
	}
	for _, template := range templates {
		command := strings.ReplaceAll(template, model.PlayerPlaceholder, player)
		if strings.TrimSpace(command) == "" {
			continue
		}
		c.executor.Execute(command)
	}
}

// document rebuilds the persisted form from the in-memory state.
func (c *Company) document() *model.CompanyDocument {
	doc := &model.CompanyDocument{
		DisplayName: c.displayName,
		Balance:     c.balance,
		Contract:    c.contract,
	}
	if len(c.groups) > 0 {
		doc.Groups = make(map[int]model.GroupDefinition, len(c.groups))
		for id, group := range c.groups {
			doc.Groups[id] = group
		}
	}
	if len(c.commands) > 0 {
		doc.Commands = make(map[string][]string, len(c.commands))
		for event, templates := range c.commands {
			doc.Commands[event] = append([]string(nil), templates...)
		}
	}
	if len(c.employees) > 0 {
		doc.Data = make(map[string]model.EmployeeRecord, len(c.employees))
		for player, group := range c.employees {
			doc.Data[player] = model.EmployeeRecord{Group: group}
		}
	}
	return doc
}

func (c *Company) persist(ctx context.Context) error {
	if err := c.docs.Save(ctx, c.name, c.document()); err != nil {
		slog.Error("failed to persist company document",
			"company", c.name,
			"error", err)
		return err
	}
	return nil
}
