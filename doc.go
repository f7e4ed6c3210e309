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

// Package emit collects human-facing diagnostics for one client interaction
// and carries the exceptional conditions that produce them.
//
// A Condition is an error with a code variant, an HTTP status, an optional
// tag and an optional message. Business code returns conditions as plain
// errors; a boundary (see httpx, grpcx and connectx) turns the returned
// condition into one record of the request's message.Accumulator and
// answers with the condition's status.
//
// Example:
//
//	if kind == "" {
//	    return emit.BadRequest("missing item type", emit.WithTag(emit.TagUnknownItemType))
//	}
package emit
