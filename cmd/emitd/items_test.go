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
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"dirpx.dev/emit"
	"dirpx.dev/emit/code"
	"dirpx.dev/emit/connectx"
	"dirpx.dev/emit/httpx"
	"dirpx.dev/emit/message"
	"dirpx.dev/emit/session"
	"google.golang.org/protobuf/types/known/structpb"
)

func startedItems() *items {
	s := &items{}
	s.started.Store(true)
	return s
}

func TestItems_Put(t *testing.T) {
	tests := []struct {
		name       string
		kind, item string
		code       code.Code
	}{
		{"missing type", "", "x", code.Missing},
		{"unknown type", "journal", "x", code.BadRequest},
		{"missing name", "event", "", code.Missing},
		{"ok", "task", "write report", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := message.New[message.Info]()
			err := startedItems().put(tt.kind, tt.item, info)
			if tt.code == "" {
				if err != nil || info.Len() != 1 {
					t.Fatalf("err=%v len=%d", err, info.Len())
				}
				return
			}
			if !emit.HasCode(err, tt.code) {
				t.Fatalf("err = %v, want code %q", err, tt.code)
			}
		})
	}

	err := startedItems().put("journal", "x", message.New[message.Info]())
	if emit.Ensure(err).Tag() != emit.TagUnknownItemType {
		t.Fatal("unknown type must carry its tag")
	}
	err = (&items{}).put("event", "x", message.New[message.Info]())
	if emit.Ensure(err).Message() != emit.ConnectorNotStarted {
		t.Fatalf("stopped connector err = %v", err)
	}
}

func TestItems_PutHTTP(t *testing.T) {
	b := &httpx.Boundary{Sessions: session.NewStore(session.Config{}), CreateSession: true}
	h := b.Wrap(startedItems().putHTTP)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items?type=event&name=standup", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestItems_PutConnect(t *testing.T) {
	ci := &connectx.Interceptor{}
	mux := http.NewServeMux()
	mux.Handle(putProcedure, connect.NewUnaryHandler(putProcedure, startedItems().putConnect,
		connect.WithInterceptors(ci.Unary())))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := connect.NewClient[structpb.Struct, structpb.Struct](srv.Client(), srv.URL+putProcedure)

	ok, _ := structpb.NewStruct(map[string]any{"type": "event", "name": "standup"})
	resp, err := client.CallUnary(context.Background(), connect.NewRequest(ok))
	if err != nil {
		t.Fatalf("CallUnary: %v", err)
	}
	if n := len(resp.Msg.GetFields()["info"].GetListValue().GetValues()); n != 1 {
		t.Fatalf("info = %d", n)
	}

	bad, _ := structpb.NewStruct(map[string]any{"type": "journal", "name": "x"})
	_, err = client.CallUnary(context.Background(), connect.NewRequest(bad))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Fatalf("code = %v", connect.CodeOf(err))
	}
	info, found := connectx.ExtractInfo(err)
	if !found || info.GetReason() != "unknown-item-type" {
		t.Fatalf("info = %v", info)
	}
}
