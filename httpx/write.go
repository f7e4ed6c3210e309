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

package httpx

import (
	"net/http"

	"dirpx.dev/emit/adapter"
	"dirpx.dev/emit/apis"
	"google.golang.org/protobuf/encoding/protojson"
)

// WriteView serializes view as JSON with the given status.
//
// No redaction or filtering is performed here: whatever is present in the
// view is exposed as-is. When the message lists cannot be encoded the
// response still goes out with status, carrying the view without them, and
// the encoding error is returned.
func WriteView(w http.ResponseWriter, status int, view apis.ErrorView) error {
	view.Status = status
	b, encErr := encodeView(view)
	if encErr != nil {
		view.Errors, view.Info = nil, nil
		b, _ = encodeView(view)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		return err
	}
	return encErr
}

// encodeView goes through structpb and protojson so the body matches the
// Struct carried in gRPC and Connect error details.
func encodeView(view apis.ErrorView) ([]byte, error) {
	s, err := adapter.ToStruct(view)
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{EmitUnpopulated: false}.Marshal(s)
}

// WriteMessages writes the records accumulated in x without a condition,
// for handlers that finish normally but have messages to report.
func WriteMessages(w http.ResponseWriter, status int, x *Exchange) error {
	return WriteView(w, status, adapter.Drain(nil, status, x.Errors, x.Info))
}
