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

import "dirpx.dev/emit/tag"

// Option configures a Condition under construction.
type Option func(*Condition)

// WithTag sets the tag. A tag can only be set at construction.
func WithTag(t tag.Tag) Option {
	return func(e *Condition) { e.tag = t }
}

// WithCause attaches an underlying cause. A nil err is ignored.
func WithCause(err error) Option {
	return func(e *Condition) {
		if err != nil {
			e.cause = err
		}
	}
}

// WithStatus sets an explicit HTTP status, bypassing the variant table.
// Values <= 0 are ignored.
func WithStatus(status int) Option {
	return func(e *Condition) { e.SetStatus(status) }
}
