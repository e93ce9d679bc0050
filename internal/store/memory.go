// internal/store/memory.go
//
// In-memory registry of hosted sessions for the session server.
// Nothing is persisted: a hosted session lives until it is deleted, goes
// idle long enough for Sweep to expire it, or the process exits.
//
// Characteristics:
//   - Stores *Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - ErrNotFound is returned for missing IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robalobadob/wordle/apps/go-session/internal/session"
)

// ErrNotFound is returned when no session has the requested ID.
var ErrNotFound = errors.New("store: session not found")

// Session is one running game hosted by the server.
type Session struct {
	ID        string
	Runner    *session.Runner
	Feed      *session.Feed
	Stop      context.CancelFunc // ends the runner
	CreatedAt time.Time

	lastSeen atomic.Int64 // unix nanos of the last client access
}

// Touch records client activity at t.
func (s *Session) Touch(t time.Time) { s.lastSeen.Store(t.UnixNano()) }

// LastSeen returns the last recorded activity, or CreatedAt if none.
func (s *Session) LastSeen() time.Time {
	if n := s.lastSeen.Load(); n != 0 {
		return time.Unix(0, n)
	}
	return s.CreatedAt
}

// Store defines the registry interface for hosted sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session and stops its runner.
	Delete(ctx context.Context, id string) error

	// Sweep removes and stops every session last seen before cutoff and
	// returns their IDs.
	Sweep(ctx context.Context, cutoff time.Time) []string

	// Len reports how many sessions are held.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.lastSeen.Load() == 0 {
		if s.CreatedAt.IsZero() {
			s.CreatedAt = time.Now().UTC()
		}
		s.Touch(s.CreatedAt)
	}
	m.sessions[s.ID] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Delete stops and forgets a session.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	if s.Stop != nil {
		s.Stop()
	}
	return nil
}

// Sweep expires idle sessions. Runners are stopped outside the lock.
func (m *memory) Sweep(ctx context.Context, cutoff time.Time) []string {
	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, s)
		}
	}
	m.mu.Unlock()

	ids := make([]string, 0, len(expired))
	for _, s := range expired {
		if s.Stop != nil {
			s.Stop()
		}
		ids = append(ids, s.ID)
	}
	return ids
}

// Len reports the number of held sessions.
func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
