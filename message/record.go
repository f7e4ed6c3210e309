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

package message

import (
	"encoding/json"
	"errors"
	"reflect"
	"slices"
)

// ErrEmptyID is returned by NewRecord for an empty message id.
var ErrEmptyID = errors.New("message: empty message id")

// Record is one message: an id a renderer maps to a localized template, and
// the positional parameters substituted into it. A Record is immutable.
type Record struct {
	id     string
	params []any
}

// NewRecord builds a record. Nil parameters are dropped rather than stored,
// so NewRecord(id, "a", nil, "c") carries ["a" "c"].
func NewRecord(id string, params ...any) (Record, error) {
	if id == "" {
		return Record{}, ErrEmptyID
	}
	return newRecord(id, params), nil
}

func newRecord(id string, params []any) Record {
	kept := make([]any, 0, len(params))
	for _, p := range params {
		if !isNil(p) {
			kept = append(kept, p)
		}
	}
	return Record{id: id, params: kept}
}

// ID returns the message id.
func (r Record) ID() string { return r.id }

// Params returns a copy of the parameters.
func (r Record) Params() []any { return slices.Clone(r.params) }

// MarshalJSON implements json.Marshaler as {"id":...,"params":[...]}.
func (r Record) MarshalJSON() ([]byte, error) {
	params := r.params
	if params == nil {
		params = []any{}
	}
	return json.Marshal(struct {
		ID     string `json:"id"`
		Params []any  `json:"params"`
	}{r.id, params})
}

// isNil reports untyped nil and typed nil pointers, maps, slices, funcs,
// channels and interfaces.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
