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

package connectx

import (
	"errors"

	"connectrpc.com/connect"
	"dirpx.dev/emit/adapter"
	"dirpx.dev/emit/apis"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/types/known/structpb"
)

// ExtractInfo returns the google.rpc.ErrorInfo detail of a Connect error.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	var ce *connect.Error
	if !errors.As(err, &ce) {
		return nil, false
	}
	for _, d := range ce.Details() {
		v, derr := d.Value()
		if derr != nil {
			continue
		}
		if info, ok := v.(*errdetails.ErrorInfo); ok {
			return info, true
		}
	}
	return nil, false
}

// ExtractView returns the apis.ErrorView detail of a Connect error.
func ExtractView(err error) (apis.ErrorView, bool) {
	var ce *connect.Error
	if !errors.As(err, &ce) {
		return apis.ErrorView{}, false
	}
	for _, d := range ce.Details() {
		v, derr := d.Value()
		if derr != nil {
			continue
		}
		if s, ok := v.(*structpb.Struct); ok {
			view, err := adapter.FromStruct(s)
			return view, err == nil
		}
	}
	return apis.ErrorView{}, false
}
