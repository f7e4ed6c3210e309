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

package mapper

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"dirpx.dev/emit/apis"
	"dirpx.dev/emit/code"
	"dirpx.dev/emit/tag"
	"google.golang.org/grpc/codes"
)

// New builds an immutable apis.Mapper.
//
// Build steps:
//
//  1. seed the builder with the library tables;
//  2. apply opts in order;
//  3. validate statuses, then tag patterns while building per-code tag
//     indexes;
//  4. freeze everything into fresh maps.
//
// Errors report an HTTP status outside 100..599, a gRPC status of
// codes.OK, or an invalid tag pattern.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for k, v := range defaultHTTP {
		b.httpDefaults[k] = v
	}
	for k, v := range defaultGRPC {
		b.grpcDefaults[k] = int(v)
	}
	for k, v := range defaultReverse {
		b.reverse[k] = v
	}

	for _, opt := range opts {
		opt(b)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}

	httpTags := make(map[code.Code]*tagIndex[int], len(b.httpTags))
	for c, rules := range b.httpTags {
		idx := newTagIndex[int]()
		for _, r := range rules {
			if err := idx.insert(r.pattern, r.val); err != nil {
				return nil, fmt.Errorf("mapper: HTTP tag rule %q for code %q: %w", r.pattern, c, err)
			}
		}
		httpTags[c] = idx
	}

	grpcTags := make(map[code.Code]*tagIndex[codes.Code], len(b.grpcTags))
	for c, rules := range b.grpcTags {
		idx := newTagIndex[codes.Code]()
		for _, r := range rules {
			if err := idx.insert(r.pattern, toGRPC(r.val)); err != nil {
				return nil, fmt.Errorf("mapper: gRPC tag rule %q for code %q: %w", r.pattern, c, err)
			}
		}
		grpcTags[c] = idx
	}

	reverse := make(map[int]code.Code, len(b.reverse))
	for k, v := range b.reverse {
		reverse[k] = v
	}

	return &mapper{
		httpDefault:  freezeHTTP(b.httpDefaults),
		grpcDefault:  freezeGRPC(b.grpcDefaults),
		httpOverride: freezeHTTP(b.httpOverride),
		grpcOverride: freezeGRPC(b.grpcOverride),
		httpTags:     httpTags,
		grpcTags:     grpcTags,
		reverse:      reverse,
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}, nil
}

var defaultMapper = sync.OnceValue(func() apis.Mapper {
	m, err := New()
	if err != nil {
		panic(err)
	}
	return m
})

// Default returns the shared mapper built from the library tables alone.
func Default() apis.Mapper {
	return defaultMapper()
}

// mapper combines per-code overrides, per-code tag indexes and per-code
// defaults. Lookups are map reads; the value is safe for concurrent use.
type mapper struct {
	httpDefault map[code.Code]int
	grpcDefault map[code.Code]codes.Code

	httpOverride map[code.Code]int
	grpcOverride map[code.Code]codes.Code

	httpTags map[code.Code]*tagIndex[int]
	grpcTags map[code.Code]*tagIndex[codes.Code]

	reverse map[int]code.Code

	fallbackHTTP int
	fallbackGRPC codes.Code
}

// HTTPStatus resolves the HTTP status of (c, t).
//
// Resolution order:
//  1. per-code override;
//  2. per-code tag rule, exact tag before namespace;
//  3. per-code default;
//  4. fallback (500 unless configured).
func (m *mapper) HTTPStatus(c code.Code, t tag.Tag) int {
	_, v := m.resolveHTTP(c, t)
	return v
}

// GRPCStatus resolves the gRPC status of (c, t) with the HTTPStatus order.
func (m *mapper) GRPCStatus(c code.Code, t tag.Tag) codes.Code {
	_, v := m.resolveGRPC(c, t)
	return v
}

// Status resolves both statuses from the same inputs.
func (m *mapper) Status(c code.Code, t tag.Tag) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(c, t),
		GRPC: m.GRPCStatus(c, t),
	}
}

// Code returns the variant registered for an explicit HTTP status.
func (m *mapper) Code(httpStatus int) code.Code {
	if c, ok := m.reverse[httpStatus]; ok {
		return c
	}
	if httpStatus >= http.StatusBadRequest && httpStatus < http.StatusInternalServerError {
		return code.BadRequest
	}
	return code.Internal
}

// Explain reports which tier resolved each status, e.g.
//
//	code="timeout" tag="{urn:dirpx:synch}x"
//	http: source=tag pattern="{urn:dirpx:synch}*" -> 503
//	grpc: source=default -> DeadlineExceeded(4)
//
// The text is for people, not for parsing.
func (m *mapper) Explain(c code.Code, t tag.Tag) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "code=%q tag=%q\n", c, t.String())

	src, v := m.resolveHTTP(c, t)
	_, _ = fmt.Fprintf(&b, "http: %s -> %d\n", src, v)

	src, g := m.resolveGRPC(c, t)
	_, _ = fmt.Fprintf(&b, "grpc: %s -> %s(%d)", src, g.String(), int(g))

	return b.String()
}

// resolveHTTP returns the source description and the HTTP status.
func (m *mapper) resolveHTTP(c code.Code, t tag.Tag) (string, int) {
	if v, ok := m.httpOverride[c]; ok {
		return "source=override", v
	}
	if idx, ok := m.httpTags[c]; ok {
		if v, ok, pat := idx.match(t); ok {
			return fmt.Sprintf("source=tag pattern=%q", pat), v
		}
	}
	if v, ok := m.httpDefault[c]; ok {
		return "source=default", v
	}
	return "source=fallback", m.fallbackHTTP
}

// resolveGRPC returns the source description and the gRPC status.
func (m *mapper) resolveGRPC(c code.Code, t tag.Tag) (string, codes.Code) {
	if v, ok := m.grpcOverride[c]; ok {
		return "source=override", v
	}
	if idx, ok := m.grpcTags[c]; ok {
		if v, ok, pat := idx.match(t); ok {
			return fmt.Sprintf("source=tag pattern=%q", pat), v
		}
	}
	if v, ok := m.grpcDefault[c]; ok {
		return "source=default", v
	}
	return "source=fallback", m.fallbackGRPC
}
