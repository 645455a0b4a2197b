package api

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/youruser/botdb/internal/deck"
)

var ErrNoSession = errors.New("deck not found")

type session struct {
	store *deck.Store
	used  time.Time
}

// Sessions owns the deck stores of connected clients. Every access to a
// store goes through the registry lock. A deck untouched for longer than
// the idle timeout is dropped.
type Sessions struct {
	mu    sync.Mutex
	idle  time.Duration
	now   func() time.Time
	decks map[string]*session
}

// NewSessions keeps decks until they sit idle for idle; zero keeps them
// until deleted.
func NewSessions(idle time.Duration) *Sessions {
	return &Sessions{idle: idle, now: time.Now, decks: map[string]*session{}}
}

// Create starts an empty deck and returns its id. Idle decks are swept first.
func (s *Sessions) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	id := uuid.NewString()
	s.decks[id] = &session{store: deck.NewStore(), used: s.now()}
	return id
}

// With runs fn on the deck id while holding the lock.
func (s *Sessions) With(id string, fn func(*deck.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.decks[id]
	if !ok || s.expired(sess) {
		delete(s.decks, id)
		return ErrNoSession
	}
	sess.used = s.now()
	return fn(sess.store)
}

// Delete forgets a deck.
func (s *Sessions) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.decks[id]
	delete(s.decks, id)
	return ok && !s.expired(sess)
}

// Len returns the number of live decks.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	return len(s.decks)
}

func (s *Sessions) expired(sess *session) bool {
	return s.idle > 0 && s.now().Sub(sess.used) > s.idle
}

func (s *Sessions) sweep() {
	for id, sess := range s.decks {
		if s.expired(sess) {
			delete(s.decks, id)
		}
	}
}
