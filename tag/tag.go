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
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Tag is a structured, machine-readable error discriminator made of a
// namespace and a local name, e.g. {urn:dirpx:synch}unknown-item-type.
//
// A tag is independent of the status code of the condition carrying it: two
// conditions with the same status may carry different tags and vice versa.
// The zero Tag means "no tag".
type Tag struct {
	// Space is the namespace, usually a URI or URN. It may be empty.
	Space string
	// Local is the name inside Space. It is required for a non-zero Tag.
	Local string
}

// MaxLength bounds the textual form {Space}Local.
const MaxLength = 256

// localFmt accepts XML-style local names: a letter or underscore followed by
// letters, digits, '.', '-' or '_'.
const localFmt = `^[A-Za-z_][A-Za-z0-9._-]*$`

var localRe = regexp.MustCompile(localFmt)

var (
	// ErrTagInvalidFormat is returned when a tag is not of the form
	// {space}local or local.
	ErrTagInvalidFormat = errors.New("emit: invalid tag format")
	// ErrTagInvalidLength is returned when a tag exceeds MaxLength.
	ErrTagInvalidLength = errors.New("emit: invalid tag length")
)

var (
	_ encoding.TextMarshaler   = Tag{}
	_ encoding.TextUnmarshaler = (*Tag)(nil)
)

// Empty is the zero tag.
var Empty = Tag{}

// New builds a tag from its parts without validation. Use Validate or Parse
// when the parts come from outside the program.
func New(space, local string) Tag {
	return Tag{Space: space, Local: local}
}

// IsZero reports whether t carries no tag.
func (t Tag) IsZero() bool {
	return t.Space == "" && t.Local == ""
}

// String returns the textual form {Space}Local, or Local when Space is empty.
func (t Tag) String() string {
	if t.Space == "" {
		return t.Local
	}
	return "{" + t.Space + "}" + t.Local
}

// Parse reads the textual form produced by String. Surrounding spaces are
// trimmed. The empty string parses to Empty without error.
func Parse(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Empty, nil
	}
	if len(s) > MaxLength {
		return Empty, ErrTagInvalidLength
	}
	var t Tag
	if s[0] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return Empty, ErrTagInvalidFormat
		}
		t.Space = s[1:end]
		t.Local = s[end+1:]
	} else {
		t.Local = s
	}
	if err := Validate(t); err != nil {
		return Empty, err
	}
	return t, nil
}

// MustParse is like Parse but panics on invalid or empty input.
func MustParse(s string) Tag {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if t.IsZero() {
		panic("emit: empty tag in MustParse")
	}
	return t
}

// Validate reports whether t is well formed. Empty is valid.
func Validate(t Tag) error {
	if t.IsZero() {
		return nil
	}
	if len(t.Space)+len(t.Local)+2 > MaxLength {
		return ErrTagInvalidLength
	}
	if strings.ContainsAny(t.Space, "{} \t\r\n") {
		return ErrTagInvalidFormat
	}
	if !localRe.MatchString(t.Local) {
		return ErrTagInvalidFormat
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	if err := Validate(t); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
