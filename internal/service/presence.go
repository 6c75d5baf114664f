package service

import (
	"strings"
	"sync"
	"time"

	"github.com/foxsrv/companyeconomy/internal/model"
)

// PresenceRegistry tracks which players currently have a session, as
// reported by the game server bridge. Purely in memory; a restart starts
// with everybody offline until the bridge reconnects them.
type PresenceRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

// NewPresenceRegistry creates an empty registry.
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{sessions: make(map[string]*model.Session)}
}

// Connect marks the player online. Reconnecting refreshes the session
// timestamp.
func (p *PresenceRegistry) Connect(playerID string) *model.Session {
	p.mu.Lock()
	defer p.mu.Unlock()

	session := &model.Session{
		PlayerID:    playerID,
		ConnectedAt: time.Now().UTC(),
	}
	p.sessions[strings.ToLower(playerID)] = session
	return session
}

// Disconnect marks the player offline. Returns false when the player had
// no session.
func (p *PresenceRegistry) Disconnect(playerID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := strings.ToLower(playerID)
	_, ok := p.sessions[key]
	delete(p.sessions, key)
	return ok
}

// IsOnline reports whether the player has a session.
func (p *PresenceRegistry) IsOnline(playerID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.sessions[strings.ToLower(playerID)]
	return ok
}

// Resolve returns the player's session, or nil when offline.
func (p *PresenceRegistry) Resolve(playerID string) *model.Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sessions[strings.ToLower(playerID)]
}

// Count returns the number of connected players.
func (p *PresenceRegistry) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.sessions)
}
