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
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type memorySession struct {
	id       string
	attrs    map[string]any
	mu       sync.RWMutex
	lastSeen atomic.Int64
}

// NewMemorySession creates a detached Session backed by a map. The session
// is assigned a unique UUIDv7 identifier.
func NewMemorySession() Session {
	return newMemorySession(time.Now())
}

func newMemorySession(now time.Time) *memorySession {
	s := &memorySession{
		id:    uuid.Must(uuid.NewV7()).String(),
		attrs: make(map[string]any),
	}
	s.lastSeen.Store(now.UnixNano())
	return s
}

func (s *memorySession) ID() string {
	return s.id
}

func (s *memorySession) Attribute(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.attrs[key]
	return v, ok
}

func (s *memorySession) SetAttribute(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs[key] = v
}

func (s *memorySession) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *memorySession) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}
