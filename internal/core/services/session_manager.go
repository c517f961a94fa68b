package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchhub/internal/core/domain"
)

// StoreFactory builds a fresh store for a new session
type StoreFactory func(ctx context.Context) (*Store, error)

type session struct {
	store    *Store
	lastSeen time.Time
}

// SessionManager owns one Store per browser session. Sessions are
// independent: each gets its own copy of the seed data.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	factory  StoreFactory
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewSessionManager creates a new session manager
func NewSessionManager(factory StoreFactory, ttl time.Duration, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.Named("sessions"),
	}
}

// Create opens a new session and returns its id
func (m *SessionManager) Create(ctx context.Context) (string, *Store, error) {
	store, err := m.factory(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("create session store: %w", err)
	}

	id := uuid.NewString()

	m.mu.Lock()
	m.sessions[id] = &session{store: store, lastSeen: m.now()}
	total := len(m.sessions)
	m.mu.Unlock()

	m.logger.Debug("session created", zap.String("session_id", id), zap.Int("active", total))
	return id, store, nil
}

// Get returns the store of a live session and marks it as seen
func (m *SessionManager) Get(id string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok || m.expired(sess) {
		return nil, domain.ErrSessionNotFound
	}
	sess.lastSeen = m.now()
	return sess.store, nil
}

// Delete closes a session
func (m *SessionManager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Count returns the number of open sessions
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
func (m *SessionManager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, sess := range m.sessions {
		if m.expired(sess) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("expired sessions removed", zap.Int("removed", removed), zap.Int("active", len(m.sessions)))
	}
	return removed
}

func (m *SessionManager) expired(sess *session) bool {
	return m.ttl > 0 && m.now().Sub(sess.lastSeen) > m.ttl
}
