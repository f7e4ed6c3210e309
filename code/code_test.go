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

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim spaces", "  timeout  ", "timeout"},
		{"to lower", "BAD_REQUEST", "bad_request"},
		{"dash to underscore", "not-found", "not_found"},
		{"space to underscore", "Permission Denied", "permission_denied"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	valid := map[string]Code{
		"internal":         Internal,
		" Bad-Request ":    BadRequest,
		"SESSION_EXPIRED":  SessionExpired,
		"abc":              Code("abc"),
		"upstream_timeout": Code("upstream_timeout"),
	}
	for in, want := range valid {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %q, want %q", in, got, want)
		}
	}

	invalid := []string{"", "ab", "1timeout", "time.out", "x-", strings.Repeat("a", MaxLength+1)}
	for _, in := range invalid {
		got, err := Parse(in)
		if err != ErrCodeInvalid {
			t.Fatalf("Parse(%q) error = %v, want ErrCodeInvalid", in, err)
		}
		if got != Empty {
			t.Fatalf("Parse(%q) on error must return Empty, got %q", in, got)
		}
	}
}

func TestParse_LengthBounds(t *testing.T) {
	longest := strings.Repeat("a", MaxLength)
	if _, err := Parse(longest); err != nil {
		t.Fatalf("Parse(len=%d) unexpected error: %v", MaxLength, err)
	}
	shortest := strings.Repeat("a", MinLength)
	if _, err := Parse(shortest); err != nil {
		t.Fatalf("Parse(len=%d) unexpected error: %v", MinLength, err)
	}
}

func TestValidate(t *testing.T) {
	for _, c := range Builtin() {
		if err := Validate(c); err != nil {
			t.Fatalf("builtin %q does not validate: %v", c, err)
		}
	}
	for _, c := range []Code{Empty, "Timeout", "not-found"} {
		if err := Validate(c); err == nil {
			t.Fatalf("Validate(%q) expected error", c)
		}
	}
}

func TestOrInternal(t *testing.T) {
	if got := OrInternal(Timeout); got != Timeout {
		t.Fatalf("OrInternal(timeout) = %q", got)
	}
	if got := OrInternal(Empty); got != Internal {
		t.Fatalf("OrInternal(empty) = %q, want internal", got)
	}
	if got := OrInternal("BAD"); got != Internal {
		t.Fatalf("OrInternal(BAD) = %q, want internal", got)
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustParse should panic on invalid input")
		}
	}()
	_ = MustParse("??")
}

func TestBuiltin_IsCopy(t *testing.T) {
	b := Builtin()
	b[0] = "mutated"
	if Builtin()[0] != Internal {
		t.Fatalf("Builtin() exposed internal slice")
	}
	if !BadRequest.IsBuiltin() || Code("custom_thing").IsBuiltin() {
		t.Fatalf("IsBuiltin mismatch")
	}
}

func TestCode_TextRoundTripInJSONMapKeys(t *testing.T) {
	var m map[Code]int
	if err := json.Unmarshal([]byte(`{"Not-Found": 410, "timeout": 503}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m[NotFound] != 410 || m[Timeout] != 503 {
		t.Fatalf("decoded map = %v", m)
	}

	if err := json.Unmarshal([]byte(`{"??": 1}`), &m); err == nil {
		t.Fatalf("invalid key must fail to decode")
	}

	if _, err := Code("Bad-Key").MarshalText(); err == nil {
		t.Fatalf("MarshalText on invalid code must fail")
	}
}
