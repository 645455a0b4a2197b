// Package share keeps deck codes under short ids so a deck can be passed
// around as a link instead of a long code.
package share

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired ids.
var ErrNotFound = errors.New("shared deck not found")

// Store saves deck codes.
type Store interface {
	Save(ctx context.Context, code string) (string, error)
	Load(ctx context.Context, id string) (string, error)
}

// NewID returns a short random id.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

type memEntry struct {
	code    string
	expires time.Time
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	newID func() string
	m     map[string]memEntry
}

// NewMemoryStore keeps codes for ttl; zero keeps them forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, newID: NewID, m: map[string]memEntry{}}
}

// Save stores code under a fresh id. Expired entries are swept first.
func (s *MemoryStore) Save(_ context.Context, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	id := s.newID()
	for _, taken := s.m[id]; taken; _, taken = s.m[id] {
		id = s.newID()
	}
	e := memEntry{code: code}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.m[id] = e
	return id, nil
}

// Load returns the code saved under id.
func (s *MemoryStore) Load(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[id]
	if !ok {
		return "", ErrNotFound
	}
	if s.expired(e) {
		delete(s.m, id)
		return "", ErrNotFound
	}
	return e.code, nil
}

func (s *MemoryStore) expired(e memEntry) bool {
	return !e.expires.IsZero() && s.now().After(e.expires)
}

func (s *MemoryStore) sweep() {
	for id, e := range s.m {
		if s.expired(e) {
			delete(s.m, id)
		}
	}
}
