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

// Package session provides the session collaborator the accumulators bind
// to: a Session holding named attributes and a request-scoped Source that
// resolves the caller's session, creating one only when asked.
//
// Store is an in-memory, cookie-backed implementation suitable for a
// single process. Sessions expire after Config.IdleTimeout without access.
package session

// Session is a per-client attribute bag. Implementations must be safe for
// concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// Attribute returns the value stored under key.
	Attribute(key string) (any, bool)
	// SetAttribute stores v under key, replacing any previous value.
	SetAttribute(key string, v any)
}

// Source resolves the session of one request.
type Source interface {
	// Session returns the current session. When there is none it creates one
	// if create is true, and otherwise reports false.
	Session(create bool) (Session, bool)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(create bool) (Session, bool)

func (f SourceFunc) Session(create bool) (Session, bool) { return f(create) }

// Static returns a Source that always yields s and never creates a session.
// A nil s models a request without a session.
func Static(s Session) Source {
	return SourceFunc(func(bool) (Session, bool) {
		if s == nil {
			return nil, false
		}
		return s, true
	})
}
