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

package main

import (
	"context"
	"net/http"
	"sync/atomic"

	"connectrpc.com/connect"
	"dirpx.dev/emit"
	"dirpx.dev/emit/code"
	"dirpx.dev/emit/connectx"
	"dirpx.dev/emit/httpx"
	"dirpx.dev/emit/message"
	"google.golang.org/protobuf/types/known/structpb"
)

// itemKinds are the item types the demo connector stores.
var itemKinds = map[string]bool{"event": true, "task": true}

// items is a stand-in connector for a calendar store.
type items struct {
	started atomic.Bool
}

// put validates one item and reports it saved.
func (s *items) put(kind, name string, info *message.InfoAccumulator) error {
	if !s.started.Load() {
		return emit.Internal(emit.ConnectorNotStarted)
	}
	switch {
	case kind == "":
		return emit.New(code.Missing, "missing item type")
	case !itemKinds[kind]:
		return emit.BadRequest(kind, emit.WithTag(emit.TagUnknownItemType))
	case name == "":
		return emit.New(code.Missing, "missing item name")
	}
	info.Append("item.saved", kind, name)
	return nil
}

// putHTTP handles POST /items?type=...&name=...
func (s *items) putHTTP(w http.ResponseWriter, x *httpx.Exchange) error {
	if x.Request.Method != http.MethodPost {
		return emit.FromStatus(http.StatusMethodNotAllowed, "use POST")
	}
	q := x.Request.URL.Query()
	if err := s.put(q.Get("type"), q.Get("name"), x.Info); err != nil {
		return err
	}
	return httpx.WriteMessages(w, http.StatusOK, x)
}

// messagesHTTP handles GET /messages, reporting what the interaction kept.
func (s *items) messagesHTTP(w http.ResponseWriter, x *httpx.Exchange) error {
	return httpx.WriteMessages(w, http.StatusOK, x)
}

// putConnect is the Connect form of put. The request is a Struct with
// "type" and "name" fields.
func (s *items) putConnect(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	x, ok := connectx.FromContext(ctx)
	if !ok {
		return nil, emit.Internal("no exchange bound")
	}
	f := req.Msg.GetFields()
	if err := s.put(f["type"].GetStringValue(), f["name"].GetStringValue(), x.Info); err != nil {
		return nil, err
	}
	saved := make([]any, 0, x.Info.Len())
	for _, r := range x.Info.Records() {
		saved = append(saved, r.ID())
	}
	out, err := structpb.NewStruct(map[string]any{"interaction": x.Interaction, "info": saved})
	if err != nil {
		return nil, emit.Wrap(err)
	}
	return connect.NewResponse(out), nil
}
