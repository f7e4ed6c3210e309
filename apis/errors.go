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

package apis

import "dirpx.dev/emit/tag"

// StatusError is an error that already knows its transport status.
//
// emit.Ensure honours it when converting foreign errors: an error from
// another library that implements StatusCode keeps its status at the
// boundary instead of collapsing to 500.
type StatusError interface {
	error

	// StatusCode returns an HTTP status. Values <= 0 mean "unknown".
	StatusCode() int
}

// CodedError is an error classified by a machine-readable variant such as
// "bad_request" or "timeout".
type CodedError interface {
	error

	// ErrorCode returns the canonical code string. Callers treat unknown or
	// empty codes as internal errors.
	ErrorCode() string
}

// TaggedError is an error carrying an optional structured tag.
type TaggedError interface {
	error

	// ErrorTag returns the tag, or tag.Empty.
	ErrorTag() tag.Tag
}
