package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"saarthi/saarthi/utils/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// entry guards one session. The store map lock is only held for lookups and
// sweeps, so appends to different sessions never contend.
type entry struct {
	mu      sync.Mutex
	session Session
	removed bool
}

// Store is the process-wide session map. Construct one per server (or test).
type Store struct {
	mu            sync.RWMutex
	sessions      map[string]*entry
	ttl           time.Duration
	defaultPrompt string
	now           func() time.Time
}

type Option func(*Store)

// WithTTL sets the inactivity window; non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock injects the time source used for timestamps and expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithDefaultPrompt sets the system prompt used when Create is given none.
func WithDefaultPrompt(prompt string) Option {
	return func(s *Store) { s.defaultPrompt = prompt }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      DefaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return now.Sub(e.session.LastAccessedAt) > s.ttl
}

// Create stores a new empty session and returns its id. An empty id gets a
// random UUID. Creating an id that is already live is a no-op returning that id.
func (s *Store) Create(id, systemPrompt string) string {
	sess, _ := s.create(id, systemPrompt)
	return sess.ID
}

func (s *Store) create(id, systemPrompt string) (Session, bool) {
	if id == "" {
		id = uuid.NewString()
	}
	if systemPrompt == "" {
		systemPrompt = s.defaultPrompt
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[id]; ok {
		e.mu.Lock()
		if !e.removed && !s.expired(e, now) {
			e.session.LastAccessedAt = now
			out := snapshot(&e.session)
			e.mu.Unlock()
			return out, false
		}
		e.removed = true
		e.mu.Unlock()
	}
	e := &entry{session: Session{
		ID:             id,
		SystemPrompt:   systemPrompt,
		Messages:       []Message{},
		CreatedAt:      now,
		LastAccessedAt: now,
	}}
	s.sessions[id] = e
	logging.AppLogger.Info("session created", zap.String("session_id", id))
	return snapshot(&e.session), true
}

// Get returns a snapshot of a live session and refreshes its access time.
// Every call also sweeps expired sessions out of the store.
func (s *Store) Get(id string) (Session, error) {
	now := s.now()
	s.sweep(now)

	e, ok := s.lookup(id)
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed || s.expired(e, now) {
		return Session{}, ErrSessionNotFound
	}
	e.session.LastAccessedAt = now
	return snapshot(&e.session), nil
}

// GetOrCreate returns the live session for id, creating it when absent or expired.
// The bool reports whether a new session was created.
func (s *Store) GetOrCreate(id, systemPrompt string) (Session, bool) {
	if id != "" {
		if sess, err := s.Get(id); err == nil {
			return sess, false
		}
	}
	return s.create(id, systemPrompt)
}

// AddMessage appends a turn. It fails with ErrSessionNotFound when the session
// is unknown, deleted or expired.
func (s *Store) AddMessage(id string, role Role, content string) error {
	if role != RoleUser && role != RoleAssistant {
		return ErrInvalidRole
	}
	e, ok := s.lookup(id)
	if !ok {
		return ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	now := s.now()
	if e.removed || s.expired(e, now) {
		return ErrSessionNotFound
	}
	e.session.Messages = append(e.session.Messages, Message{Role: role, Content: content, Timestamp: now})
	e.session.LastAccessedAt = now
	return nil
}

// Delete removes a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	e.mu.Lock()
	wasLive := !e.removed && !s.expired(e, s.now())
	e.removed = true
	e.mu.Unlock()
	if !wasLive {
		return ErrSessionNotFound
	}
	logging.AppLogger.Info("session deleted", zap.String("session_id", id))
	return nil
}

// Len counts stored sessions, including expired ones not yet swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep purges expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	return s.sweep(s.now())
}

func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.sessions {
		e.mu.Lock()
		if e.removed || s.expired(e, now) {
			e.removed = true
			delete(s.sessions, id)
			removed++
		}
		e.mu.Unlock()
	}
	if removed > 0 {
		logging.AppLogger.Info("expired sessions swept", zap.Int("removed", removed))
	}
	return removed
}

// RunJanitor sweeps on a fixed interval until ctx is done. Lazy sweeping in Get
// already keeps the store bounded; the janitor reclaims memory of idle servers.
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) lookup(id string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	return e, ok
}

func snapshot(src *Session) Session {
	out := *src
	out.Messages = slices.Clone(src.Messages)
	if out.Messages == nil {
		out.Messages = []Message{}
	}
	return out
}
