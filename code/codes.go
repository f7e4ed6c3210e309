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

package code

// Server-side classes.
const (
	// Internal is the fallback variant. Conditions built from a bare message,
	// a bare tag or a foreign error use it. Default HTTP 500.
	Internal Code = "internal"

	// Unavailable marks a dependency that cannot be reached right now.
	// Default HTTP 503.
	Unavailable Code = "unavailable"

	// Timeout marks an upstream that did not answer in time. This is a data
	// value reported by business code, not a scheduling primitive.
	// Default HTTP 504.
	Timeout Code = "timeout"

	// Canceled marks work abandoned because the caller went away.
	// Default HTTP 408.
	Canceled Code = "canceled"
)

// Client-input classes.
const (
	// BadRequest is the generic client-input variant. Default HTTP 400.
	BadRequest Code = "bad_request"

	// Invalid marks input that is present but violates a rule. Default HTTP 400.
	Invalid Code = "invalid"

	// Missing marks a required value that was not supplied. Default HTTP 400.
	Missing Code = "missing"

	// Unsupported marks a known but unsupported option or operation.
	// Default HTTP 400.
	Unsupported Code = "unsupported"

	// NotFound marks a referenced entity that does not exist. Default HTTP 404.
	NotFound Code = "not_found"

	// Conflict marks a state or version clash. Default HTTP 409.
	Conflict Code = "conflict"

	// RateLimited marks a caller that exceeded its request budget.
	// Default HTTP 429.
	RateLimited Code = "rate_limited"
)

// Identity classes.
const (
	// Unauthenticated marks a caller without a verified identity.
	// Default HTTP 401.
	Unauthenticated Code = "unauthenticated"

	// SessionExpired marks a request that arrived without a live session.
	// Default HTTP 401.
	SessionExpired Code = "session_expired"

	// PermissionDenied marks an authenticated caller lacking rights.
	// Default HTTP 403.
	PermissionDenied Code = "permission_denied"
)

// builtin lists the well-known codes in a stable order.
var builtin = []Code{
	Internal, Unavailable, Timeout, Canceled,
	BadRequest, Invalid, Missing, Unsupported, NotFound, Conflict, RateLimited,
	Unauthenticated, SessionExpired, PermissionDenied,
}

// Builtin returns a copy of the well-known codes.
func Builtin() []Code {
	out := make([]Code, len(builtin))
	copy(out, builtin)
	return out
}

// IsBuiltin reports whether c is one of the well-known codes.
func (c Code) IsBuiltin() bool {
	for _, b := range builtin {
		if b == c {
			return true
		}
	}
	return false
}
