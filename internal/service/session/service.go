package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/love-arena/internal/model/session"
)

// Service owns every live session and cooldown record. All mutation
// goes through its methods; the underlying maps are never handed out.
// State is partitioned per scope so unrelated groups never contend on
// one lock.
type Service struct {
	mu     sync.Mutex
	scopes map[string]*scopeState
	now    func() time.Time
}

// scopeState serializes all session mutation within one chat group.
type scopeState struct {
	mu        sync.Mutex
	sessions  map[string]*session.Session
	cooldowns map[cooldownKey]time.Time
}

type cooldownKey struct {
	actor string
	mode  session.Mode
}

// NewService bootstraps the in-memory session service.
func NewService() *Service {
	return NewServiceWithClock(time.Now)
}

// NewServiceWithClock is NewService with an injectable time source so
// tests can drive expiry and cooldown math deterministically.
func NewServiceWithClock(now func() time.Time) *Service {
	return &Service{
		scopes: make(map[string]*scopeState),
		now:    now,
	}
}

func (s *Service) scope(scope string) *scopeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.scopes[scope]
	if !ok {
		st = &scopeState{
			sessions:  make(map[string]*session.Session),
			cooldowns: make(map[cooldownKey]time.Time),
		}
		s.scopes[scope] = st
	}
	return st
}

// Admit runs the admission path: cooldown, scope capacity, initiator
// capacity, in that order, first failure wins with no side effects.
// On success the session is live, stage init, and the initiator's
// cooldown record for the mode is stamped.
func (s *Service) Admit(_ context.Context, scope string, mode session.Mode, initiator, counterpart string) (session.Session, error) {
	if !mode.Valid() {
		return session.Session{}, ErrUnknownMode
	}
	if counterpart == "" && mode != session.ModeCrush {
		return session.Session{}, ErrCounterpartRequired
	}
	if initiator == counterpart {
		return session.Session{}, ErrSelfTarget
	}

	st := s.scope(scope)
	st.mu.Lock()
	defer st.mu.Unlock()

	now := s.now()

	if last, ok := st.cooldowns[cooldownKey{initiator, mode}]; ok {
		if elapsed := now.Sub(last); elapsed < session.CooldownWindow {
			return session.Session{}, &RateLimitedError{RetryAfter: session.CooldownWindow - elapsed}
		}
	}

	if len(st.sessions) >= session.MaxScopeSessions {
		return session.Session{}, ErrScopeCapacity
	}

	mine := 0
	for _, sess := range st.sessions {
		if sess.Initiator == initiator {
			mine++
		}
	}
	if mine >= session.MaxInitiatorSessions {
		return session.Session{}, ErrInitiatorCapacity
	}

	sess := &session.Session{
		ID:          uuid.NewString()[:8],
		Scope:       scope,
		Mode:        mode,
		Initiator:   initiator,
		Counterpart: counterpart,
		Stage:       session.StageInit,
		CreatedAt:   now,
		Status:      session.StatusActive,
	}
	st.sessions[sess.ID] = sess
	st.cooldowns[cooldownKey{initiator, mode}] = now

	return *sess, nil
}

// Get returns a snapshot of a live session.
func (s *Service) Get(_ context.Context, scope, id string) (session.Session, bool) {
	st := s.scope(scope)
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if !ok {
		return session.Session{}, false
	}
	return *sess, true
}

// Snapshot copies the live sessions of a scope. Callers get values,
// never pointers into the store.
func (s *Service) Snapshot(scope string) []session.Session {
	st := s.scope(scope)
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]session.Session, 0, len(st.sessions))
	for _, sess := range st.sessions {
		out = append(out, *sess)
	}
	return out
}

// LiveCount reports how many sessions are currently live in a scope.
func (s *Service) LiveCount(scope string) int {
	st := s.scope(scope)
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// end marks the session ended and drops it. Caller holds st.mu.
func (st *scopeState) end(sess *session.Session) {
	sess.Status = session.StatusEnded
	delete(st.sessions, sess.ID)
}
