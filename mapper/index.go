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
	"strings"

	"dirpx.dev/emit/tag"
)

// wildcard is the local name that makes a rule match every tag in its
// namespace.
const wildcard = "*"

// errInvalidPattern is returned for a rule pattern that is neither a valid
// tag nor {space}*.
var errInvalidPattern = errors.New("mapper: invalid tag pattern")

// tagIndex resolves a tag to a value. Exact rules win over namespace-wide
// rules, so a documented tag can refine the status of its namespace.
type tagIndex[T any] struct {
	// exact holds rules registered for one full tag.
	exact map[tag.Tag]T
	// spaces holds rules registered as {space}*.
	spaces map[string]T
}

func newTagIndex[T any]() *tagIndex[T] {
	return &tagIndex[T]{
		exact:  make(map[tag.Tag]T),
		spaces: make(map[string]T),
	}
}

// insert registers val under a textual pattern: {space}local, local, or
// {space}*. A bare "*" is rejected as too generic; use a per-code default
// instead.
func (x *tagIndex[T]) insert(pattern string, val T) error {
	t, wild, err := parsePattern(pattern)
	if err != nil {
		return err
	}
	if wild {
		x.spaces[t.Space] = val
		return nil
	}
	x.exact[t] = val
	return nil
}

// match returns the value for t and the pattern that produced it.
func (x *tagIndex[T]) match(t tag.Tag) (T, bool, string) {
	var zero T
	if x == nil || t.IsZero() {
		return zero, false, ""
	}
	if v, ok := x.exact[t]; ok {
		return v, true, t.String()
	}
	if t.Space != "" {
		if v, ok := x.spaces[t.Space]; ok {
			return v, true, "{" + t.Space + "}" + wildcard
		}
	}
	return zero, false, ""
}

// parsePattern validates a rule pattern. It reports whether the pattern is
// namespace-wide.
func parsePattern(pattern string) (tag.Tag, bool, error) {
	p := strings.TrimSpace(pattern)
	if strings.HasSuffix(p, "}"+wildcard) {
		// validate the namespace with a stand-in local name
		t, err := tag.Parse(strings.TrimSuffix(p, wildcard) + "x")
		if err != nil || t.Space == "" {
			return tag.Empty, false, errInvalidPattern
		}
		return tag.New(t.Space, wildcard), true, nil
	}
	t, err := tag.Parse(p)
	if err != nil || t.IsZero() {
		return tag.Empty, false, errInvalidPattern
	}
	return t, false, nil
}
