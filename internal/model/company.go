package model

import "time"

// GroupNone is the sentinel for "no group": lookups that miss return it.
const GroupNone = -1

// Well-known company permission names. Lower group ids outrank higher ones:
// group 1 is senior to group 2, and an actor may only hire into groups
// strictly junior to their own.
const (
	PermissionHire     = "can-hire"
	PermissionFire     = "can-fire"
	PermissionDeposit  = "can-deposit"
	PermissionWithdraw = "can-withdraw"
)

// Command template event names.
const (
	EventHire = "on-hire"
	EventFire = "on-fire"
)

// PlayerPlaceholder is substituted with the player identifier in command
// templates before they are forwarded to the executor.
const PlayerPlaceholder = "%player%"

// CompanyDocument is the persisted form of a company. One record per
// company; every save rewrites the whole document, so fields not modeled
// here do not survive a save.
type CompanyDocument struct {
	DisplayName string                    `json:"displayName"`
	Balance     float64                   `json:"balance"`
	Groups      map[int]GroupDefinition   `json:"groups,omitempty"`
	Commands    map[string][]string       `json:"commands,omitempty"`
	Contract    *ContractTerms            `json:"contract,omitempty"`
	Data        map[string]EmployeeRecord `json:"data,omitempty"`
}

// CompanyRecord is one persisted company: its canonical name plus the
// decoded document body.
type CompanyRecord struct {
	Name     string
	Document CompanyDocument
}

// GroupDefinition is a role within a company: a display tag, a per-cycle
// salary (0 = unpaid), explicit boolean permissions, and event-triggered
// command templates scoped to the group.
type GroupDefinition struct {
	Tag         string              `json:"tag"`
	Salary      float64             `json:"salary"`
	Permissions map[string]bool     `json:"permissions,omitempty"`
	Commands    map[string][]string `json:"commands,omitempty"`
}

// EmployeeRecord maps a player to their single group within the company.
type EmployeeRecord struct {
	Group int `json:"group"`
}

// ContractTerms is the employment contract block of a company document.
// When enabled with auto-send, the lines are delivered to a player on hire.
type ContractTerms struct {
	Enabled        bool     `json:"enabled"`
	AutoSendOnHire bool     `json:"auto-send-on-hire"`
	Lines          []string `json:"lines,omitempty"`
}

// CommandResult is the actor-facing outcome of a company command.
type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Session describes a connected player as reported by the presence
// registry.
type Session struct {
	PlayerID    string    `json:"player_id"`
	ConnectedAt time.Time `json:"connected_at"`
}

// HireRequest asks to hire a player into a role. Company is optional; when
// empty the acting player's company is resolved by permission.
type HireRequest struct {
	Player  string `json:"player"`
	Role    string `json:"role"`
	Company string `json:"company,omitempty"`
}

// FireRequest asks to remove a player from a company.
type FireRequest struct {
	Player  string `json:"player"`
	Company string `json:"company,omitempty"`
}

// LeaveRequest asks to remove the acting player from a company.
type LeaveRequest struct {
	Company string `json:"company,omitempty"`
}

// MoneyRequest moves funds between the acting player's personal ledger and
// a company balance.
type MoneyRequest struct {
	Amount  float64 `json:"amount"`
	Company string  `json:"company,omitempty"`
}

// CreateCompanyRequest registers a new, empty company.
type CreateCompanyRequest struct {
	Name string `json:"name"`
}

// CompanyInfo is the read-only rendering of a company for the info command.
type CompanyInfo struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Balance     float64      `json:"balance"`
	Members     []MemberInfo `json:"members"`
}

// MemberInfo is one roster line of CompanyInfo.
type MemberInfo struct {
	Player string `json:"player"`
	Group  int    `json:"group"`
	Role   string `json:"role"`
}
