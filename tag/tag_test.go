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

package tag

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Tag
	}{
		{"namespaced", "{urn:dirpx:synch}unknown-item-type", New("urn:dirpx:synch", "unknown-item-type")},
		{"uri namespace", " {http://example.com/ns/}valid_data ", New("http://example.com/ns/", "valid_data")},
		{"local only", "no-such-event", New("", "no-such-event")},
		{"empty namespace braces", "{}local", New("", "local")},
		{"empty is ok", "", Empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"{urn:x",           // unterminated namespace
		"{urn:x}",          // missing local name
		"{urn:x}1st",       // digit first
		"{urn:x}has space", // space in local
		"{urn x}name",      // space in namespace
		"{urn:{x}}name",    // nested brace
		"local/name",       // slash in local
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := Parse(in)
			if err != ErrTagInvalidFormat {
				t.Fatalf("Parse(%q) error = %v, want ErrTagInvalidFormat", in, err)
			}
			if !got.IsZero() {
				t.Fatalf("Parse(%q) on error must return Empty, got %v", in, got)
			}
		})
	}

	long := "{" + strings.Repeat("n", MaxLength) + "}x"
	if _, err := Parse(long); err != ErrTagInvalidLength {
		t.Fatalf("Parse(long) error = %v, want ErrTagInvalidLength", err)
	}
}

func TestString_RoundTrip(t *testing.T) {
	for _, tg := range []Tag{New("urn:dirpx:synch", "unknown-item-type"), New("", "bare")} {
		back, err := Parse(tg.String())
		if err != nil || back != tg {
			t.Fatalf("Parse(String(%#v)) = %#v, %v", tg, back, err)
		}
	}
	if Empty.String() != "" {
		t.Fatalf("Empty.String() = %q", Empty.String())
	}
}

func TestMustParse(t *testing.T) {
	if got := MustParse("{ns}name"); got != New("ns", "name") {
		t.Fatalf("MustParse = %#v", got)
	}
	for _, in := range []string{"", "{ns}"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("MustParse(%q) must panic", in)
				}
			}()
			_ = MustParse(in)
		}()
	}
}

func TestTag_JSON(t *testing.T) {
	type doc struct {
		Tag Tag `json:"tag"`
	}
	b, err := json.Marshal(doc{Tag: New("urn:a", "b")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"tag":"{urn:a}b"}` {
		t.Fatalf("marshal = %s", b)
	}

	var d doc
	if err := json.Unmarshal([]byte(`{"tag":"  {urn:a}b  "}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Tag != New("urn:a", "b") {
		t.Fatalf("unmarshal = %#v", d.Tag)
	}

	if err := json.Unmarshal([]byte(`{"tag":"{urn:a}"}`), &d); err == nil {
		t.Fatalf("unmarshal of invalid tag must fail")
	}

	if _, err := New("urn:a", "").MarshalText(); err == nil {
		t.Fatalf("MarshalText on tag without local name must fail")
	}
}
