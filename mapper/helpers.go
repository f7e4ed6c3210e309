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

package mapper

import (
	"maps"

	"dirpx.dev/emit/code"
	"google.golang.org/grpc/codes"
)

// freezeHTTP copies an int table so the mapper never sees later builder or
// caller mutations.
func freezeHTTP(src map[code.Code]int) map[code.Code]int {
	if len(src) == 0 {
		return nil
	}
	return maps.Clone(src)
}

// freezeGRPC copies a builder table, converting ints into gRPC codes.
func freezeGRPC(src map[code.Code]int) map[code.Code]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[code.Code]codes.Code, len(src))
	for k, v := range src {
		dst[k] = toGRPC(v)
	}
	return dst
}

// toGRPC clamps out-of-range values to codes.Unknown.
func toGRPC(v int) codes.Code {
	if v < 0 || v > int(codes.Unauthenticated) {
		return codes.Unknown
	}
	return codes.Code(v)
}
