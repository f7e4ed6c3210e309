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

package adapter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/emit"
	"dirpx.dev/emit/apis"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/types/known/structpb"
)

// Domain is the ErrorInfo domain of conditions without a tag namespace.
const Domain = "dirpx.emit"

// ToErrorInfo describes a condition as a google.rpc.ErrorInfo detail. The
// tag namespace becomes the domain and the tag local name the reason; an
// untagged condition uses Domain and its upper-cased code. Metadata always
// carries the code and the HTTP status, plus the tag and interaction id
// when present.
func ToErrorInfo(c *emit.Condition, st apis.Status, interaction string) *errdetails.ErrorInfo {
	if c == nil {
		return nil
	}
	info := &errdetails.ErrorInfo{
		Domain: Domain,
		Reason: strings.ToUpper(string(c.Code())),
		Metadata: map[string]string{
			"code":        string(c.Code()),
			"http_status": strconv.Itoa(st.HTTP),
		},
	}
	if t := c.Tag(); !t.IsZero() {
		if t.Space != "" {
			info.Domain = t.Space
		}
		info.Reason = t.Local
		info.Metadata["tag"] = t.String()
	}
	if interaction != "" {
		info.Metadata["interaction"] = interaction
	}
	return info
}

// ToStruct converts a view into a protobuf Struct so transports can carry
// it as a well-known type: an HTTP body through protojson, or a status
// detail on gRPC and Connect. Field names follow the view's json tags.
func ToStruct(v apis.ErrorView) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("adapter: encode view: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("adapter: decode view: %w", err)
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("adapter: view to struct: %w", err)
	}
	return s, nil
}

// FromStruct is the inverse of ToStruct.
func FromStruct(s *structpb.Struct) (apis.ErrorView, error) {
	var v apis.ErrorView
	if s == nil {
		return v, nil
	}
	b, err := s.MarshalJSON()
	if err != nil {
		return v, fmt.Errorf("adapter: encode struct: %w", err)
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("adapter: decode struct: %w", err)
	}
	return v, nil
}
