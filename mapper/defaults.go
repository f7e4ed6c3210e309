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
	"net/http"

	"dirpx.dev/emit/code"
	"google.golang.org/grpc/codes"
)

// defaultHTTP is the variant → status table. emit.Condition constructors
// resolve their status from it when no explicit status is given.
var defaultHTTP = map[code.Code]int{
	code.Internal:    http.StatusInternalServerError,
	code.Unavailable: http.StatusServiceUnavailable,
	code.Timeout:     http.StatusGatewayTimeout, // upstream did not answer in time
	code.Canceled:    http.StatusRequestTimeout,

	code.BadRequest:  http.StatusBadRequest,
	code.Invalid:     http.StatusBadRequest,
	code.Missing:     http.StatusBadRequest,
	code.Unsupported: http.StatusBadRequest,
	code.NotFound:    http.StatusNotFound,
	code.Conflict:    http.StatusConflict,
	code.RateLimited: http.StatusTooManyRequests,

	code.Unauthenticated:  http.StatusUnauthorized,
	code.SessionExpired:   http.StatusUnauthorized,
	code.PermissionDenied: http.StatusForbidden,
}

// defaultGRPC mirrors defaultHTTP for gRPC and Connect.
var defaultGRPC = map[code.Code]codes.Code{
	code.Internal:    codes.Internal,
	code.Unavailable: codes.Unavailable,
	code.Timeout:     codes.DeadlineExceeded,
	code.Canceled:    codes.Canceled,

	code.BadRequest:  codes.InvalidArgument,
	code.Invalid:     codes.InvalidArgument,
	code.Missing:     codes.InvalidArgument,
	code.Unsupported: codes.Unimplemented,
	code.NotFound:    codes.NotFound,
	code.Conflict:    codes.Aborted,
	code.RateLimited: codes.ResourceExhausted,

	code.Unauthenticated:  codes.Unauthenticated,
	code.SessionExpired:   codes.Unauthenticated,
	code.PermissionDenied: codes.PermissionDenied,
}

// defaultReverse picks one variant per status for explicit-status
// constructors. Statuses not listed fall back by class: 4xx → bad_request,
// anything else → internal.
var defaultReverse = map[int]code.Code{
	http.StatusBadRequest:          code.BadRequest,
	http.StatusUnauthorized:        code.Unauthenticated,
	http.StatusForbidden:           code.PermissionDenied,
	http.StatusNotFound:            code.NotFound,
	http.StatusRequestTimeout:      code.Canceled,
	http.StatusConflict:            code.Conflict,
	http.StatusTooManyRequests:     code.RateLimited,
	http.StatusInternalServerError: code.Internal,
	http.StatusNotImplemented:      code.Unsupported,
	http.StatusServiceUnavailable:  code.Unavailable,
	http.StatusGatewayTimeout:      code.Timeout,
}
