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

// Package code defines the variants of an emit.Condition.
//
// A code is the machine-readable class of a failure: "bad_request",
// "timeout", "internal" and so on. Each code has a default HTTP status and a
// default gRPC status, held by package mapper. Codes are:
//
//   - lowercase;
//   - underscore-separated;
//   - 3 to 48 characters long.
//
// Projects may define their own codes; unknown codes resolve to the
// internal-error class at the transport boundary.
package code
