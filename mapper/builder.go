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
	"errors"
	"fmt"
	"net/http"

	"dirpx.dev/emit/code"
	"google.golang.org/grpc/codes"
)

type tagRule struct {
	// pattern is the raw tag pattern, validated when the index is built.
	pattern string
	// val is the status to apply on a match. gRPC values are kept as ints
	// until New converts them.
	val int
}

type builder struct {
	// httpDefaults and grpcDefaults start as copies of the library tables.
	httpDefaults map[code.Code]int
	grpcDefaults map[code.Code]int

	// httpOverride and grpcOverride win over everything for their code.
	httpOverride map[code.Code]int
	grpcOverride map[code.Code]int

	// httpTags and grpcTags hold per-code tag rules.
	httpTags map[code.Code][]tagRule
	grpcTags map[code.Code][]tagRule

	// reverse maps an explicit HTTP status back to a code.
	reverse map[int]code.Code

	fallbackHTTP int
	fallbackGRPC codes.Code
}

func newBuilder() *builder {
	return &builder{
		httpDefaults: make(map[code.Code]int, len(defaultHTTP)),
		grpcDefaults: make(map[code.Code]int, len(defaultGRPC)),

		httpOverride: make(map[code.Code]int),
		grpcOverride: make(map[code.Code]int),
		httpTags:     make(map[code.Code][]tagRule),
		grpcTags:     make(map[code.Code][]tagRule),
		reverse:      make(map[int]code.Code, len(defaultReverse)),

		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
}

// errInvalidStatus is returned for an HTTP status outside 100..599 or a gRPC
// status of codes.OK, which would make a condition look like a success.
var errInvalidStatus = errors.New("mapper: invalid status")

func validHTTP(v int) bool { return v >= 100 && v <= 599 }

func validGRPC(v int) bool { return toGRPC(v) != codes.OK }

// validate checks every status the builder holds.
func (b *builder) validate() error {
	for c, v := range b.httpDefaults {
		if !validHTTP(v) {
			return fmt.Errorf("mapper: HTTP default %d for code %q: %w", v, c, errInvalidStatus)
		}
	}
	for c, v := range b.httpOverride {
		if !validHTTP(v) {
			return fmt.Errorf("mapper: HTTP override %d for code %q: %w", v, c, errInvalidStatus)
		}
	}
	for c, v := range b.grpcDefaults {
		if !validGRPC(v) {
			return fmt.Errorf("mapper: gRPC default %d for code %q: %w", v, c, errInvalidStatus)
		}
	}
	for c, v := range b.grpcOverride {
		if !validGRPC(v) {
			return fmt.Errorf("mapper: gRPC override %d for code %q: %w", v, c, errInvalidStatus)
		}
	}
	for c, rules := range b.httpTags {
		for _, r := range rules {
			if !validHTTP(r.val) {
				return fmt.Errorf("mapper: HTTP tag rule %q for code %q: status %d: %w", r.pattern, c, r.val, errInvalidStatus)
			}
		}
	}
	for c, rules := range b.grpcTags {
		for _, r := range rules {
			if !validGRPC(r.val) {
				return fmt.Errorf("mapper: gRPC tag rule %q for code %q: status %d: %w", r.pattern, c, r.val, errInvalidStatus)
			}
		}
	}
	for st := range b.reverse {
		if !validHTTP(st) {
			return fmt.Errorf("mapper: reverse status %d: %w", st, errInvalidStatus)
		}
	}
	if !validHTTP(b.fallbackHTTP) || b.fallbackGRPC == codes.OK {
		return fmt.Errorf("mapper: fallback %d/%s: %w", b.fallbackHTTP, b.fallbackGRPC, errInvalidStatus)
	}
	return nil
}
