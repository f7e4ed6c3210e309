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

import (
	"dirpx.dev/emit/code"
	"dirpx.dev/emit/tag"
	"google.golang.org/grpc/codes"
)

// Mapper resolves a condition variant, optionally refined by a tag, into
// transport statuses. Implementations are immutable and safe for concurrent
// use.
type Mapper interface {
	// HTTPStatus returns the HTTP status for (c, t). Without a tag rule the
	// per-code default applies; unknown codes resolve to 500.
	HTTPStatus(c code.Code, t tag.Tag) int

	// GRPCStatus returns the gRPC status for (c, t), with the same
	// precedence as HTTPStatus.
	GRPCStatus(c code.Code, t tag.Tag) codes.Code

	// Status resolves both in one call.
	Status(c code.Code, t tag.Tag) Status

	// Code maps an HTTP status back to the variant it most likely denotes.
	// Used by constructors that receive an explicit status.
	Code(httpStatus int) code.Code

	// Explain describes which rule produced the result.
	Explain(c code.Code, t tag.Tag) string
}

// Status is a resolved pair of transport statuses for one condition.
type Status struct {
	HTTP int        // net/http status.
	GRPC codes.Code // gRPC status; Connect uses the same numbering.
}
