package session

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/mcp-training/labyrinth/game/engine"
	"github.com/wricardo/mcp-training/labyrinth/game/service"
)

// SessionIDLength is the number of hex characters in a generated session ID
const SessionIDLength = 6

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// Manager keeps the live labyrinth sessions in memory, keyed by lower-cased
// ID. With a store attached, every change is written through and sessions
// missing from memory are looked up in the store.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*service.Session
	persistence SessionPersistence
}

// NewManager creates a memory-only session manager
func NewManager() *Manager {
	return NewManagerWithPersistence(nil)
}

// NewManagerWithPersistence creates a session manager backed by a store
func NewManagerWithPersistence(persistence SessionPersistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		persistence: persistence,
	}
}

func key(id string) string {
	return strings.ToLower(id)
}

// lookup returns the in-memory session. Callers hold m.mu.
func (m *Manager) lookup(id string) (*service.Session, bool) {
	s, ok := m.sessions[key(id)]
	return s, ok
}

// persist writes a session to the store, if any. A failed write is logged
// and never fails the caller.
func (m *Manager) persist(s *service.Session, after string) {
	if m.persistence == nil {
		return
	}
	if err := m.persistence.Save(s); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after %s: %v\n", s.ID, after, err)
	}
}

// Create starts a session on level. An empty ID gets a generated one.
func (m *Manager) Create(id string, level *engine.Level) (*service.Session, error) {
	if level == nil {
		return nil, fmt.Errorf("failed to create engine: level is nil")
	}
	if strings.ContainsAny(id, `/\ `) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = m.generateSessionID()
	}
	if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	eng, err := engine.NewEngine(level)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	now := time.Now()
	s := &service.Session{
		ID:             id,
		Engine:         eng,
		Level:          level,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[key(id)] = s
	m.persist(s, "create")

	return s, nil
}

// Get returns a session by ID, case-insensitively. Sessions only present in
// the store are loaded and cached.
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	s, ok := m.lookup(id)
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	if m.persistence == nil || !m.persistence.Exists(id) {
		return nil, ErrSessionNotFound
	}

	loaded, err := m.persistence.Load(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// another caller may have loaded it meanwhile
	if s, ok := m.lookup(id); ok {
		return s, nil
	}
	m.sessions[key(id)] = loaded
	return loaded, nil
}

// GetOrCreate gets an existing session or creates a new one
func (m *Manager) GetOrCreate(id string, level *engine.Level) (*service.Session, error) {
	s, err := m.Get(id)
	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, level)
	}
	return s, err
}

// List returns all in-memory sessions in no particular order
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*service.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Delete removes a session from memory and from the store
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, inMemory := m.lookup(id)
	delete(m.sessions, key(id))

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}
	if !inMemory {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteFromMemory drops a session from memory and leaves the store alone
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lookup(id); !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, key(id))
	return nil
}

// UpdateLastAccessed marks a session as used now
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.lookup(id)
	if !ok {
		return ErrSessionNotFound
	}
	s.LastAccessedAt = time.Now()
	m.persist(s, "access update")
	return nil
}

// Save writes one session to the store. Without a store it does nothing.
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	s, ok := m.lookup(id)
	m.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}
	return m.persistence.Save(s)
}

// CleanupExpiredSessions drops sessions idle for longer than maxAge from
// memory and returns how many went. Stored copies are kept.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for k, s := range m.sessions {
		if s.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, k)
			removed++
		}
	}
	return removed
}

// Count returns the number of in-memory sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID returns an unused ID made of the first hex characters of
// a random UUID. Callers hold m.mu.
func (m *Manager) generateSessionID() string {
	for {
		id := uuid.New().String()[:SessionIDLength]
		if !m.sessionExists(id) {
			return id
		}
	}
}

// sessionExists reports whether id is in memory. Callers hold m.mu.
func (m *Manager) sessionExists(id string) bool {
	_, ok := m.lookup(id)
	return ok
}

// LoadPersistedSessions pulls every stored session into memory. Sessions that
// fail to load are skipped with a warning.
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range ids {
		if m.sessionExists(id) {
			continue
		}
		s, err := m.persistence.Load(id)
		if err != nil {
			fmt.Printf("Warning: Failed to load persisted session %s: %v\n", id, err)
			continue
		}
		m.sessions[key(id)] = s
		loaded++
	}

	if loaded > 0 {
		log.Printf("Loaded %d persisted sessions from storage", loaded)
	}
	return nil
}

// SaveAllSessions writes every in-memory session to the store
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	failed := 0
	for _, s := range m.List() {
		if err := m.persistence.Save(s); err != nil {
			fmt.Printf("Warning: Failed to save session %s: %v\n", s.ID, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to save %d sessions", failed)
	}
	return nil
}
