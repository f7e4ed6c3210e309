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

// Package tag defines the optional structured discriminator carried by an
// emit.Condition.
//
// Where a code answers "what class of failure is this?", a tag answers
// "which exact, documented failure is this?" in a namespace owned by the
// component raising it:
//
//	{urn:dirpx:synch}unknown-item-type
//	{http://example.com/ns/caldav}valid-calendar-data
//
// Tags travel to clients: gRPC and Connect boundaries put them in an
// ErrorInfo detail (Domain = Space, Reason = Local).
package tag
