package session

import (
	"sync"
	"time"
)

// Store keeps live edit sessions in memory, keyed by form id. Sessions that
// see no interaction within the TTL are dropped by the expiry job; there is
// no shared state between sessions, each owns its fetched snapshot.
type Store struct {
	mu    sync.Mutex
	forms map[string]*Form
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{forms: make(map[string]*Form), ttl: ttl}
}

func (s *Store) Put(f *Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[f.ID] = f
}

func (s *Store) Get(id string) (*Form, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.forms[id]
	return f, ok
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}

// ExpireStale removes sessions idle past the TTL and returns how many were
// dropped.
func (s *Store) ExpireStale(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for id, f := range s.forms {
		if now.Sub(f.LastTouched()) > s.ttl {
			delete(s.forms, id)
			expired++
		}
	}
	return expired
}
