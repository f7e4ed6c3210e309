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

package grpcx

import (
	"dirpx.dev/emit/adapter"
	"dirpx.dev/emit/apis"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ExtractInfo pulls the google.rpc.ErrorInfo detail out of a gRPC error, if
// present. Useful in tests and client code.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	st, ok := gstatus.FromError(err)
	if err == nil || !ok {
		return nil, false
	}
	for _, a := range st.Proto().GetDetails() {
		info := &errdetails.ErrorInfo{}
		if a.MessageIs(info) && a.UnmarshalTo(info) == nil {
			return info, true
		}
	}
	return nil, false
}

// ExtractView pulls the apis.ErrorView detail out of a gRPC error, if
// present.
func ExtractView(err error) (apis.ErrorView, bool) {
	st, ok := gstatus.FromError(err)
	if err == nil || !ok {
		return apis.ErrorView{}, false
	}
	for _, a := range st.Proto().GetDetails() {
		s := &structpb.Struct{}
		if !a.MessageIs(s) || a.UnmarshalTo(s) != nil {
			continue
		}
		v, err := adapter.FromStruct(s)
		if err != nil {
			return apis.ErrorView{}, false
		}
		return v, true
	}
	return apis.ErrorView{}, false
}
