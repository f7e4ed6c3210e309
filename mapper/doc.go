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

// Package mapper resolves emit condition variants (package code), optionally
// refined by a structured tag (package tag), into HTTP and gRPC statuses.
//
// # Resolution model
//
// For a (code, tag) pair a Mapper tries, in order:
//
//  1. the exact override for the code;
//  2. a tag rule for the code: the full tag first, then its namespace;
//  3. the per-code default;
//  4. the fallback (500 / codes.Internal).
//
// The library tables are the variant → status table of emit.Condition:
// bad_request → 400, timeout → 504, internal → 500 and so on. Constructors
// that take an explicit status use the reverse table (Mapper.Code).
//
// # Building a mapper
//
//	m, err := mapper.New(
//	    mapper.WithHTTPOverride(code.Canceled, 499),
//	    mapper.WithHTTPTag(code.Internal, "{urn:dirpx:synch}*", 502),
//	)
//
// A Mapper is a snapshot: options are applied once and every table is
// copied, so one instance can be shared by all handlers.
package mapper
