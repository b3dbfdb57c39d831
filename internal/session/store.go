// Package session keeps per-visitor state in memory for the lifetime of the
// process. There is no expiry and nothing is persisted across restarts.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/i18n"
)

// State is the mutable part of a session.
type State struct {
	Lang                 i18n.Lang
	Cart                 cart.Cart
	PendingCheckoutTotal decimal.Decimal
	LastOrderTotal       decimal.Decimal
}

// Session is one visitor's record. All access to its State goes through
// Update and Snapshot, which serialize on the session's own lock.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu    sync.Mutex
	state State
}

// Update runs fn with exclusive access to the state.
func (s *Session) Update(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// UpdateErr is Update for functions that can fail. Changes made by fn are
// kept even when it returns an error.
func (s *Session) UpdateErr(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

// Snapshot returns a copy of the state, including its cart lines.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Cart = cart.Cart{Lines: s.state.Cart.Snapshot()}
	return st
}

// Store maps session ids to records.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	defaultLang i18n.Lang
	newID       func() string
	now         func() time.Time
}

type Option func(*Store)

// WithIDGenerator replaces the random id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock replaces the time source.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

func NewStore(defaultLang i18n.Lang, opts ...Option) *Store {
	s := &Store{
		sessions:    make(map[string]*Session),
		defaultLang: defaultLang,
		newID:       func() string { return uuid.New().String() },
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreate returns the session for id. An empty or unknown id never fails:
// a fresh session with a newly minted id is created instead and created is
// true, telling the caller to hand the new id to the client.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if id != "" {
		s.mu.RLock()
		sess, ok := s.sessions[id]
		s.mu.RUnlock()
		if ok {
			return sess, false
		}
	}

	sess = &Session{
		ID:        s.newID(),
		CreatedAt: s.now(),
		state:     State{Lang: s.defaultLang},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if _, taken := s.sessions[sess.ID]; !taken {
			break
		}
		sess.ID = s.newID()
	}
	s.sessions[sess.ID] = sess
	return sess, true
}

// Len is the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
