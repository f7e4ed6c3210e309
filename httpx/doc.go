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

// Package httpx is the HTTP boundary of emit.
//
// A Boundary wraps business handlers: it binds the session's accumulators
// for the request, passes them to the handler in an Exchange, and converts
// a returned error into one error record and a JSON response body shaped
// like apis.ErrorView.
package httpx
