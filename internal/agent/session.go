package agent

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Dan9191/ambient-finance/internal/models"
)

// ErrSessionNotFound is returned when a session id is unknown
var ErrSessionNotFound = errors.New("session not found")

// Session is an append-only conversation history owned by its caller.
// It is never pruned or persisted.
type Session struct {
	ID string

	mu      sync.Mutex
	history []models.Message
}

// NewSession creates an empty session with a fresh id
func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// Append adds turns in order
func (s *Session) Append(msgs ...models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, msgs...)
}

// History returns a copy of the recorded turns
func (s *Session) History() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Len returns the number of recorded turns
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Sessions is a registry of live sessions for servers handling many callers
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessions creates an empty registry
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Session)}
}

// Create registers a new session
func (r *Sessions) Create() *Session {
	s := NewSession()
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get looks up a session by id
func (r *Sessions) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// GetOrCreate returns the session for id, creating one when id is empty
func (r *Sessions) GetOrCreate(id string) (*Session, error) {
	if id == "" {
		return r.Create(), nil
	}
	return r.Get(id)
}
