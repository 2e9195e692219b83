package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown session IDs
var ErrNotFound = errors.New("session not found")

// IDGenerator generates unique IDs for sessions
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates random UUIDs
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Tab is a session together with the panel it renders into
type Tab struct {
	Session *Session
	Panel   *Panel

	lastSeen time.Time
}

// Snapshot returns the visible state of the tab
func (t *Tab) Snapshot() Snapshot {
	snap := t.Panel.Snapshot()
	snap.ID = t.Session.ID()
	return snap
}

// Manager keeps the sessions of open pages in memory
type Manager struct {
	deps        Deps
	ttl         time.Duration
	idGenerator IDGenerator
	timeSource  TimeSource

	mu   sync.Mutex
	tabs map[string]*Tab
}

// NewManager creates a Manager. Sessions idle for longer than ttl are
// dropped; a ttl of zero keeps them forever.
func NewManager(deps Deps, ttl time.Duration) *Manager {
	return NewManagerWithDeps(deps, ttl, &defaultIDGenerator{}, &defaultTimeSource{})
}

// NewManagerWithDeps creates a Manager with custom dependencies for testing
func NewManagerWithDeps(deps Deps, ttl time.Duration, idGen IDGenerator, timeSrc TimeSource) *Manager {
	return &Manager{
		deps:        deps,
		ttl:         ttl,
		idGenerator: idGen,
		timeSource:  timeSrc,
		tabs:        make(map[string]*Tab),
	}
}

// Create opens a new session
func (m *Manager) Create() *Tab {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.timeSource.Now()
	m.sweep(now)

	panel := NewPanel()
	id := m.idGenerator.Generate()
	tab := &Tab{
		Session:  New(id, panel, m.deps),
		Panel:    panel,
		lastSeen: now,
	}
	m.tabs[id] = tab
	return tab
}

// Get returns the session with the given ID
func (m *Manager) Get(id string) (*Tab, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tab, ok := m.tabs[id]
	if !ok {
		return nil, ErrNotFound
	}
	tab.lastSeen = m.timeSource.Now()
	return tab, nil
}

// Len returns the number of open sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tabs)
}

// sweep drops idle sessions that are not recognizing anything.
// The caller must hold m.mu.
func (m *Manager) sweep(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for id, tab := range m.tabs {
		if now.Sub(tab.lastSeen) <= m.ttl || tab.Session.InFlight() {
			continue
		}
		delete(m.tabs, id)
		slog.Debug("Dropped idle session", "session", id)
	}
}
