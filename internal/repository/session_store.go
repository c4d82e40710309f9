package repository

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/E72-BI/cartao-santa-casa/internal/domain"
	"github.com/E72-BI/cartao-santa-casa/internal/persistence"
)

// SessionStore holds the currently authenticated actor. The session is a
// read-only projection of the directory: it is established at login, cleared
// at logout, and refreshed by the directory when the same member is updated.
type SessionStore struct {
	mu      sync.RWMutex
	current domain.Session
	store   persistence.Store
	logger  *zap.Logger
}

// NewSessionStore returns a session store backed by the key-value store.
func NewSessionStore(store persistence.Store, logger *zap.Logger) *SessionStore {
	return &SessionStore{store: store, logger: logger}
}

// Load restores a persisted session, surviving process restarts.
func (s *SessionStore) Load(ctx context.Context) {
	raw, err := s.store.Get(ctx, persistence.KeySession)
	if err != nil {
		s.logger.Warn("load session", zap.Error(err))
		return
	}
	if len(raw) == 0 {
		return
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.logger.Warn("decode session", zap.Error(err))
		return
	}
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
}

// Current returns a snapshot of the session.
func (s *SessionStore) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.current
	if sess.Member != nil {
		member := *sess.Member
		sess.Member = &member
	}
	if sess.Role != nil {
		role := *sess.Role
		sess.Role = &role
	}
	return sess
}

// SignIn establishes an authenticated session for the member. The role is
// derived from the email at this point only.
func (s *SessionStore) SignIn(ctx context.Context, member domain.Member) domain.Session {
	role := domain.RoleForEmail(member.Email)

	s.mu.Lock()
	s.current = domain.Session{
		LoggedIn: true,
		Role:     &role,
		Member:   &member,
	}
	sess := s.current
	s.mu.Unlock()

	s.persist(ctx)
	return sess
}

// SignOut clears the session.
func (s *SessionStore) SignOut(ctx context.Context) {
	s.mu.Lock()
	s.current = domain.Session{}
	s.mu.Unlock()

	s.persist(ctx)
}

// refreshMember replaces the cached member when the directory rewrites the
// record the session points at (read-your-writes for the active session).
func (s *SessionStore) refreshMember(ctx context.Context, member domain.Member) {
	s.mu.Lock()
	if !s.current.LoggedIn || s.current.Member == nil || s.current.Member.ID != member.ID {
		s.mu.Unlock()
		return
	}
	s.current.Member = &member
	s.mu.Unlock()

	s.persist(ctx)
}

func (s *SessionStore) persist(ctx context.Context) {
	s.mu.RLock()
	raw, err := json.Marshal(s.current)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Warn("encode session", zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, persistence.KeySession, raw); err != nil {
		s.logger.Warn("persist session", zap.Error(err))
	}
}
