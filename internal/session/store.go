// Package session owns the current authentication session: the single
// source of truth for the access/refresh token pair shared by the HTTP
// client and the UI.
//
// Every mutating operation persists the record before publishing the new
// state, so no subscriber ever observes a published state whose persisted
// form is stale. None of the operations return errors to callers on the
// request path: a malformed persisted record is treated as "no session"
// and deleted, and storage write failures are logged while the in-memory
// state still advances.
package session

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/bytedance/sonic"
	"github.com/golang-jwt/jwt/v5"

	"petmanager/internal/common"
	"petmanager/internal/logging"
	"petmanager/internal/models"
)

// TopicChanged is the event-bus topic carrying State snapshots.
const TopicChanged = "session:changed"

// State is a published snapshot of the session.
//
// Invariant: IsAuthenticated is true if and only if a non-empty access
// token is present.
type State struct {
	User            *models.User
	IsAuthenticated bool
}

// Store holds the session record, persists it under a single storage slot
// and publishes snapshots on the event bus.
type Store struct {
	mu      sync.Mutex
	user    *models.User
	storage Storage
	bus     EventBus.Bus
	log     logging.Logger
}

// NewStore builds a Store and restores any previously persisted session.
func NewStore(storage Storage, bus EventBus.Bus, log logging.Logger) *Store {
	s := &Store{storage: storage, bus: bus, log: log}
	s.mu.Lock()
	if u := s.loadSlotLocked(); u != nil {
		s.user = u
	}
	s.mu.Unlock()
	return s
}

// loadSlotLocked reads the persisted record. A corrupt or token-less record
// is deleted and reported as absent. Caller must hold s.mu.
func (s *Store) loadSlotLocked() *models.User {
	data, err := s.storage.Load(common.SessionStorageKey)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn(context.Background(), "session slot unreadable", "error", err)
		}
		return nil
	}
	var u models.User
	if err := sonic.Unmarshal(data, &u); err != nil || u.Token == "" {
		s.log.Warn(context.Background(), "discarding malformed session record")
		_ = s.storage.Delete(common.SessionStorageKey)
		return nil
	}
	return &u
}

// saveSlotLocked persists the record. Caller must hold s.mu.
func (s *Store) saveSlotLocked(u *models.User) {
	data, err := sonic.Marshal(u)
	if err == nil {
		err = s.storage.Save(common.SessionStorageKey, data)
	}
	if err != nil {
		s.log.Error(context.Background(), "persisting session failed", "error", err)
	}
}

func (s *Store) stateLocked() State {
	if s.user == nil || s.user.Token == "" {
		return State{}
	}
	u := *s.user
	return State{User: &u, IsAuthenticated: true}
}

func (s *Store) publish(st State) {
	if s.bus != nil {
		s.bus.Publish(TopicChanged, st)
	}
}

// State returns a snapshot of the current session.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// IsAuthenticated reports whether a non-empty access token is present.
func (s *Store) IsAuthenticated() bool {
	return s.State().IsAuthenticated
}

// Token returns the current access token or "". In-memory state is
// consulted first; on a miss the persisted slot is read and, when it holds
// a session, re-hydrates the in-memory state as a side effect.
func (s *Store) Token() string {
	s.mu.Lock()
	if s.user != nil && s.user.Token != "" {
		t := s.user.Token
		s.mu.Unlock()
		return t
	}
	u := s.loadSlotLocked()
	if u == nil {
		s.mu.Unlock()
		return ""
	}
	s.user = u
	st := s.stateLocked()
	s.mu.Unlock()
	s.publish(st)
	return u.Token
}

// RefreshToken returns the current refresh token or "", with the same
// fallback policy as Token.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	if s.user != nil && s.user.RefreshToken != "" {
		t := s.user.RefreshToken
		s.mu.Unlock()
		return t
	}
	u := s.loadSlotLocked()
	if u == nil {
		s.mu.Unlock()
		return ""
	}
	s.user = u
	st := s.stateLocked()
	s.mu.Unlock()
	s.publish(st)
	return u.RefreshToken
}

// SetUser replaces the session wholesale: persist, then publish.
func (s *Store) SetUser(u models.User) {
	s.mu.Lock()
	s.saveSlotLocked(&u)
	cp := u
	s.user = &cp
	st := s.stateLocked()
	s.mu.Unlock()
	s.publish(st)
}

// UpdateToken merges a new access token (and refresh token, when provided)
// into the existing session. No-op when no user is set: there is no session
// to update.
func (s *Store) UpdateToken(token, refreshToken string) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	updated := *s.user
	updated.Token = token
	if refreshToken != "" {
		updated.RefreshToken = refreshToken
	}
	s.saveSlotLocked(&updated)
	s.user = &updated
	st := s.stateLocked()
	s.mu.Unlock()
	s.publish(st)
}

// Reset clears the persisted record and publishes the logged-out state.
func (s *Store) Reset() {
	s.mu.Lock()
	if err := s.storage.Delete(common.SessionStorageKey); err != nil {
		s.log.Warn(context.Background(), "clearing session slot failed", "error", err)
	}
	s.user = nil
	s.mu.Unlock()
	s.publish(State{})
}

// TokenExpiry returns the access token's exp claim, or the zero time when
// the token is absent, opaque, or carries no expiry. The signature is not
// verified; this is display/refresh-hint data only.
func (s *Store) TokenExpiry() time.Time {
	token := s.Token()
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// Subscribe registers fn for session snapshots.
func (s *Store) Subscribe(fn func(State)) error {
	return s.bus.Subscribe(TopicChanged, fn)
}

// Unsubscribe removes a previously registered fn.
func (s *Store) Unsubscribe(fn func(State)) error {
	return s.bus.Unsubscribe(TopicChanged, fn)
}
