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

import "log/slog"

// ErrorDescriptor is a flat description of a condition together with its
// resolved statuses, shaped for structured logs.
type ErrorDescriptor struct {
	Code        string `json:"code"`
	Tag         string `json:"tag,omitempty"`
	HTTPStatus  int    `json:"http_status"`
	GRPCCode    int    `json:"grpc_code"`
	Message     string `json:"message,omitempty"`
	Interaction string `json:"interaction,omitempty"`
}

// LogValue implements slog.LogValuer so a descriptor logs as a group.
func (d ErrorDescriptor) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", d.Code),
		slog.Int("http_status", d.HTTPStatus),
		slog.Int("grpc_code", d.GRPCCode),
	}
	if d.Tag != "" {
		attrs = append(attrs, slog.String("tag", d.Tag))
	}
	if d.Message != "" {
		attrs = append(attrs, slog.String("message", d.Message))
	}
	if d.Interaction != "" {
		attrs = append(attrs, slog.String("interaction", d.Interaction))
	}
	return slog.GroupValue(attrs...)
}
