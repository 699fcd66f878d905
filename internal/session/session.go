// Package session tracks portal visitors: their storage bucket, where they
// currently are, and the live screen instance they are interacting with.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-portal/internal/navigation"
	"github.com/spec-kit/staff-portal/internal/storage"
)

// Screen is a live screen instance owned by a session.
type Screen interface {
	Close()
}

// Session is one visitor.
type Session struct {
	ID string

	bucket *storage.Bucket
	logger *zap.Logger

	mu         sync.Mutex
	location   navigation.Screen
	screen     Screen
	screenKind navigation.Screen
	lastSeen   time.Time
}

// Storage returns the visitor's key/value bucket.
func (s *Session) Storage() *storage.Bucket {
	return s.bucket
}

// Location returns the screen the visitor was last sent to.
func (s *Session) Location() navigation.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location
}

// Navigate implements navigation.Navigator. Leaving a screen tears down its
// instance, which cancels any redirect it still has pending.
func (s *Session) Navigate(to navigation.Screen) {
	s.mu.Lock()
	s.location = to
	var departed Screen
	if s.screen != nil && s.screenKind != to {
		departed = s.screen
		s.screen = nil
	}
	s.mu.Unlock()

	s.logger.Debug("navigate", zap.String("session_id", s.ID), zap.String("to", to.Name()))
	if departed != nil {
		departed.Close()
	}
}

// Enter opens a fresh instance of kind, tearing down the previous one.
func (s *Session) Enter(kind navigation.Screen, build func() Screen) Screen {
	next := build()

	s.mu.Lock()
	prev := s.screen
	s.screen = next
	s.screenKind = kind
	s.location = kind
	s.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	return next
}

// Current returns the live instance of kind, entering a new one when the
// visitor is elsewhere.
func (s *Session) Current(kind navigation.Screen, build func() Screen) Screen {
	s.mu.Lock()
	if s.screen != nil && s.screenKind == kind {
		screen := s.screen
		s.mu.Unlock()
		return screen
	}
	s.mu.Unlock()
	return s.Enter(kind, build)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) close() {
	s.mu.Lock()
	screen := s.screen
	s.screen = nil
	s.mu.Unlock()
	if screen != nil {
		screen.Close()
	}
}

// Manager owns the live sessions.
type Manager struct {
	store  storage.Store
	idle   time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a manager whose sessions keep their items in store.
func NewManager(store storage.Store, idle time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:    store,
		idle:     idle,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Store returns the backing storage.
func (m *Manager) Store() storage.Store {
	return m.store
}

// Acquire returns the session for id. Ids that are not UUIDs get a new
// session; a well-formed id unknown to this process is adopted so that
// items in a shared store survive restarts.
func (m *Manager) Acquire(id string) (*Session, bool) {
	now := m.now()
	if _, err := uuid.Parse(id); err != nil {
		id = ""
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			s.touch(now)
			return s, false
		}
	} else {
		id = uuid.NewString()
	}

	s := &Session{
		ID:       id,
		bucket:   storage.NewBucket(m.store, id),
		logger:   m.logger,
		location: navigation.ScreenLanding,
		lastSeen: now,
	}
	m.sessions[id] = s
	return s, true
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the idle timeout and tears down
// their screens. Stored items are kept.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) > m.idle {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	if len(expired) > 0 {
		m.logger.Info("swept idle sessions", zap.Int("count", len(expired)))
	}
	return len(expired)
}
