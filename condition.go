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

package emit

import (
	"fmt"

	"dirpx.dev/emit/code"
	"dirpx.dev/emit/mapper"
	"dirpx.dev/emit/tag"
)

// Condition is an exceptional condition raised while servicing a request.
//
// It carries:
//   - a code variant, which selects the default transport status;
//   - the HTTP status, resolved at construction and never <= 0;
//   - an optional tag, set once at construction;
//   - an optional human message and an optional cause.
//
// A Condition is raised deep in the call chain, travels as an ordinary error
// and is converted into exactly one message record at the boundary.
type Condition struct {
	code     code.Code
	status   int
	explicit bool
	tag      tag.Tag
	message  string
	cause    error
}

// New builds a condition of code c. Unless WithStatus is given, the status
// comes from the default variant table, refined by the tag when a tag rule
// exists for it.
//
// Usage:
//
//	return emit.New(code.Unavailable, "connector is down",
//	    emit.WithTag(tag.MustParse("{urn:dirpx:synch}connector")),
//	    emit.WithCause(err),
//	)
func New(c code.Code, msg string, opts ...Option) *Condition {
	e := &Condition{code: code.OrInternal(c), message: msg}
	for _, opt := range opts {
		opt(e)
	}
	if !e.explicit {
		e.status = mapper.Default().HTTPStatus(e.code, e.tag)
	}
	return e
}

// Internal builds an internal condition (500 unless WithStatus is given).
func Internal(msg string, opts ...Option) *Condition {
	return New(code.Internal, msg, opts...)
}

// BadRequest builds a bad_request condition (400 unless WithStatus is given).
func BadRequest(msg string, opts ...Option) *Condition {
	return New(code.BadRequest, msg, opts...)
}

// Timeout builds a timeout condition (504 unless WithStatus is given).
func Timeout(msg string, opts ...Option) *Condition {
	return New(code.Timeout, msg, opts...)
}

// NotFound builds a not_found condition (404 unless WithStatus is given).
func NotFound(msg string, opts ...Option) *Condition {
	return New(code.NotFound, msg, opts...)
}

// Forbidden builds a permission_denied condition (403 unless WithStatus is given).
func Forbidden(msg string, opts ...Option) *Condition {
	return New(code.PermissionDenied, msg, opts...)
}

// Unauthorized builds an unauthenticated condition (401 unless WithStatus is given).
func Unauthorized(msg string, opts ...Option) *Condition {
	return New(code.Unauthenticated, msg, opts...)
}

// Conflict builds a conflict condition (409 unless WithStatus is given).
func Conflict(msg string, opts ...Option) *Condition {
	return New(code.Conflict, msg, opts...)
}

// Unavailable builds an unavailable condition (503 unless WithStatus is given).
func Unavailable(msg string, opts ...Option) *Condition {
	return New(code.Unavailable, msg, opts...)
}

// FromStatus builds a condition with an explicit HTTP status. The code is
// derived from the status through the default reverse table. A status <= 0
// resolves to 500.
func FromStatus(status int, msg string, opts ...Option) *Condition {
	if status <= 0 {
		status = mapper.Default().HTTPStatus(code.Internal, tag.Empty)
	}
	c := mapper.Default().Code(status)
	opts = append(opts[:len(opts):len(opts)], WithStatus(status))
	return New(c, msg, opts...)
}

// Wrap builds an internal condition around err, taking its message from
// err. Wrap(nil) returns nil.
func Wrap(err error, opts ...Option) *Condition {
	if err == nil {
		return nil
	}
	opts = append([]Option{WithCause(err)}, opts...)
	return New(code.Internal, err.Error(), opts...)
}

// Code returns the variant of e.
func (e *Condition) Code() code.Code { return e.code }

// Status returns the HTTP status of e.
func (e *Condition) Status() int { return e.status }

// SetStatus overrides the status. Values <= 0 are ignored.
func (e *Condition) SetStatus(status int) {
	if status <= 0 {
		return
	}
	e.status = status
	e.explicit = true
}

// Explicit reports whether the status was set by the caller rather than
// taken from the variant table.
func (e *Condition) Explicit() bool { return e.explicit }

// Tag returns the tag of e, or tag.Empty.
func (e *Condition) Tag() tag.Tag { return e.tag }

// Message returns the human message, or "" when absent.
func (e *Condition) Message() string { return e.message }

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Condition) Unwrap() error { return e.cause }

// StatusCode implements apis.StatusError.
func (e *Condition) StatusCode() int { return e.status }

// ErrorCode implements apis.CodedError.
func (e *Condition) ErrorCode() string { return string(e.code) }

// ErrorTag implements apis.TaggedError.
func (e *Condition) ErrorTag() tag.Tag { return e.tag }

// Error implements the built-in error interface.
//
// The format is:
//
//	<code>: <message>
//
// or, when a tag is present:
//
//	<code>:<tag>: <message>
//
// When the message is absent the cause text is used instead.
func (e *Condition) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.message
	if msg == "" && e.cause != nil {
		msg = e.cause.Error()
	}
	head := string(e.code)
	if !e.tag.IsZero() {
		head += ":" + e.tag.String()
	}
	if msg == "" {
		return head
	}
	return fmt.Sprintf("%s: %s", head, msg)
}
