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
	"context"
	"errors"

	"dirpx.dev/emit/apis"
	"dirpx.dev/emit/code"
	"dirpx.dev/emit/tag"
)

// TagUnknownItemType is the tag of a request naming an item type the
// synchronization service does not know.
var TagUnknownItemType = tag.New("urn:dirpx:synch", "unknown-item-type")

// ConnectorNotStarted is the message of an internal condition raised when a
// connector is used before it was started.
const ConnectorNotStarted = "dirpx.synch.error.connectorNotStarted"

// Ensure converts any error into a Condition:
//
//   - nil gives nil;
//   - a *Condition anywhere in the chain is returned as is;
//   - context.DeadlineExceeded gives a timeout condition;
//   - context.Canceled gives a canceled condition;
//   - an apis.StatusError gives FromStatus with its status;
//   - an apis.CodedError with a valid code gives a condition of that code,
//     tagged when it is also an apis.TaggedError;
//   - anything else is wrapped as internal.
func Ensure(err error) *Condition {
	if err == nil {
		return nil
	}
	var c *Condition
	if errors.As(err, &c) && c != nil {
		return c
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout(err.Error(), WithCause(err))
	case errors.Is(err, context.Canceled):
		return New(code.Canceled, err.Error(), WithCause(err))
	}

	var se apis.StatusError
	if errors.As(err, &se) {
		return FromStatus(se.StatusCode(), err.Error(), WithCause(err))
	}
	var ce apis.CodedError
	if errors.As(err, &ce) {
		if cc, perr := code.Parse(ce.ErrorCode()); perr == nil {
			opts := []Option{WithCause(err)}
			var te apis.TaggedError
			if errors.As(err, &te) {
				opts = append(opts, WithTag(te.ErrorTag()))
			}
			return New(cc, err.Error(), opts...)
		}
	}
	return Wrap(err)
}

// HasCode reports whether err converts to a condition of code c.
func HasCode(err error, c code.Code) bool {
	e := Ensure(err)
	return e != nil && e.code == c
}

// ResolveHTTP returns the HTTP status of e under m. An explicit status is
// kept; a defaulted one is resolved again so m's overrides and tag rules
// apply. A nil m keeps the status of e.
func ResolveHTTP(e *Condition, m apis.Mapper) int {
	if e == nil {
		return 0
	}
	if e.explicit || m == nil {
		return e.status
	}
	return m.HTTPStatus(e.code, e.tag)
}
