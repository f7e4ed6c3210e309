/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package session

import (
	"net/http"
	"sync"
	"time"
)

// Store keeps sessions in memory, keyed by id. All methods are safe for
// concurrent use.
type Store struct {
	cfg Config
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*memorySession
}

// NewStore creates an empty Store. Zero fields of cfg take their defaults.
func NewStore(cfg Config) *Store {
	c := DefaultConfig()
	c.Merge(&cfg)
	return &Store{
		cfg:      c,
		now:      time.Now,
		sessions: make(map[string]*memorySession),
	}
}

// Config returns the effective configuration.
func (s *Store) Config() Config { return s.cfg }

// Get returns the live session with the given id and marks it used. An
// expired session is evicted and reported as absent.
func (s *Store) Get(id string) (Session, bool) {
	if id == "" {
		return nil, false
	}
	now := s.now()
	s.mu.RLock()
	ms, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(ms, now) {
		s.mu.Lock()
		if cur, ok := s.sessions[id]; ok && s.expired(cur, now) {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return nil, false
	}
	ms.touch(now)
	return ms, true
}

// Create starts a new session.
func (s *Store) Create() Session {
	ms := newMemorySession(s.now())
	s.mu.Lock()
	s.sessions[ms.id] = ms
	s.mu.Unlock()
	return ms
}

// Len returns the number of stored sessions, expired ones included until
// they are evicted.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts every session idle for longer than the idle timeout at now
// and returns how many were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, ms := range s.sessions {
		if s.expired(ms, now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *Store) expired(ms *memorySession, now time.Time) bool {
	return ms.idleSince(now) > time.Duration(s.cfg.IdleTimeout)
}

// Source returns the Source of one HTTP request. The session id is read from
// the configured cookie; a created session sets that cookie on w.
func (s *Store) Source(w http.ResponseWriter, r *http.Request) Source {
	var id string
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		id = c.Value
	}
	return s.SourceFor(id, func(created string) {
		http.SetCookie(w, &http.Cookie{
			Name:     s.cfg.CookieName,
			Value:    created,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.cfg.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	})
}

// SourceFor returns a Source for a session id carried by some other means,
// e.g. RPC metadata. onCreate, when non-nil, receives the id of a session
// the Source creates.
func (s *Store) SourceFor(id string, onCreate func(id string)) Source {
	return &requestSource{store: s, id: id, onCreate: onCreate}
}

// requestSource caches the resolved session for the rest of the request.
type requestSource struct {
	store    *Store
	id       string
	onCreate func(string)

	mu      sync.Mutex
	current Session
}

func (rs *requestSource) Session(create bool) (Session, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.current != nil {
		return rs.current, true
	}
	if sess, ok := rs.store.Get(rs.id); ok {
		rs.current = sess
		return sess, true
	}
	if !create {
		return nil, false
	}
	rs.current = rs.store.Create()
	if rs.onCreate != nil {
		rs.onCreate(rs.current.ID())
	}
	return rs.current, true
}
