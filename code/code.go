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
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Code names the variant of an emit.Condition. The variant selects the
// default transport status of the condition through the mapper tables.
//
// Code is a distinct type so that raw configuration input cannot be mixed
// with validated variants by accident.
type Code string

// Length limits for a canonical code.
const (
	// MinLength rejects ambiguous one- or two-letter variants.
	MinLength = 3

	// MaxLength keeps codes short enough for log keys and JSON payloads.
	MaxLength = 48
)

// codeFmt is the canonical pattern for a code: a lowercase letter followed
// by 2..47 lowercase letters, digits or underscores.
//
// The quantifier is tied to MinLength and MaxLength.
const codeFmt = `^[a-z][a-z0-9_]{2,47}$`

var codeRe = regexp.MustCompile(codeFmt)

// ErrCodeInvalid is returned when a value cannot be parsed as a code.
var ErrCodeInvalid = errors.New("emit: invalid code")

var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero code. A Condition never carries it: constructors fall
// back to Internal.
var Empty Code = ""

// Parse normalizes s and validates the result.
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Code(s), nil
}

// MustParse is like Parse but panics on invalid input.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize trims spaces, lowercases and turns '-' and ' ' into '_'.
// The result still has to be validated.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Validate reports whether c is canonical. Empty is invalid.
func Validate(c Code) error {
	return validate(string(c))
}

// OrInternal returns c, or Internal when c is not a valid code.
func OrInternal(c Code) Code {
	if validate(string(c)) != nil {
		return Internal
	}
	return c
}

// String returns the code as a plain string.
func (c Code) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Config files use it for
// map keys such as {"timeout": 503}.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func validate(s string) error {
	if !codeRe.MatchString(s) {
		return ErrCodeInvalid
	}
	return nil
}
