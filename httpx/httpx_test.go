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
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dirpx.dev/emit"
	"dirpx.dev/emit/apis"
	"dirpx.dev/emit/code"
	"dirpx.dev/emit/mapper"
	"dirpx.dev/emit/message"
	"dirpx.dev/emit/observe"
	"dirpx.dev/emit/session"
)

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) apis.ErrorView {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	var v apis.ErrorView
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return v
}

func newBoundary(create bool) (*Boundary, *session.Store) {
	store := session.NewStore(session.Config{})
	return &Boundary{Sessions: store, CreateSession: create}, store
}

func TestBoundary_NoSession(t *testing.T) {
	b, store := newBoundary(false)
	called := false
	h := b.Wrap(func(w http.ResponseWriter, x *Exchange) error {
		called = true
		return nil
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if called {
		t.Fatal("handler must not run without a session")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	v := decodeView(t, rec)
	if v.Code != string(code.SessionExpired) || v.Status != 401 || v.Interaction == "" {
		t.Fatalf("view = %+v", v)
	}
	if store.Len() != 0 || len(rec.Result().Cookies()) != 0 {
		t.Fatal("no session may be created")
	}
}

func TestBoundary_SuccessWithMessages(t *testing.T) {
	b, _ := newBoundary(true)
	h := b.Wrap(func(w http.ResponseWriter, x *Exchange) error {
		if x.Session == nil || x.Errors == nil || x.Info == nil {
			t.Fatal("exchange not populated")
		}
		x.Info.Append("item.saved", "ev-1")
		return WriteMessages(w, http.StatusOK, x)
	})
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(InteractionHeader, "req-7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get(InteractionHeader) != "req-7" {
		t.Fatal("interaction id must be echoed")
	}
	v := decodeView(t, rec)
	if v.Code != "" || len(v.Info) != 1 || v.Info[0].ID != "item.saved" || v.Interaction != "req-7" {
		t.Fatalf("view = %+v", v)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatal("created session must set a cookie")
	}
}

func TestBoundary_ConditionBecomesRecord(t *testing.T) {
	var logs bytes.Buffer
	b, _ := newBoundary(true)
	b.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	h := b.Wrap(func(w http.ResponseWriter, x *Exchange) error {
		x.Errors.Append("validation.failed", "fieldX")
		return emit.BadRequest("bad item type", emit.WithTag(emit.TagUnknownItemType))
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	v := decodeView(t, rec)
	if v.Code != "bad_request" || v.Tag != "{urn:dirpx:synch}unknown-item-type" || v.Message != "bad item type" {
		t.Fatalf("view = %+v", v)
	}
	if len(v.Errors) != 2 || v.Errors[1].ID != message.ExceptionID {
		t.Fatalf("errors = %+v", v.Errors)
	}
	if len(v.Errors[1].Params) != 1 || v.Errors[1].Params[0] != "bad item type" {
		t.Fatalf("exception params = %v", v.Errors[1].Params)
	}
	if !strings.Contains(logs.String(), "request failed") {
		t.Fatalf("logs = %q", logs.String())
	}
}

func TestBoundary_MapperRefinesByTag(t *testing.T) {
	m, err := mapper.New(mapper.WithHTTPTag(code.BadRequest, "{urn:dirpx:synch}*", http.StatusUnprocessableEntity))
	if err != nil {
		t.Fatalf("mapper.New: %v", err)
	}
	b, _ := newBoundary(true)
	b.Mapper = m
	h := b.Wrap(func(w http.ResponseWriter, x *Exchange) error {
		return emit.BadRequest("", emit.WithTag(emit.TagUnknownItemType))
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	v := decodeView(t, rec)
	if v.Errors[0].Params[0] != message.NoMessage {
		t.Fatalf("params = %v", v.Errors[0].Params)
	}
}

func TestBoundary_PlainErrorAndPanic(t *testing.T) {
	b, _ := newBoundary(true)
	var rec observe.Recorder
	b.Observer = &rec

	plain := b.Wrap(func(w http.ResponseWriter, x *Exchange) error { return errors.New("boom") })
	r1 := httptest.NewRecorder()
	plain.ServeHTTP(r1, httptest.NewRequest(http.MethodGet, "/", nil))
	if r1.Code != http.StatusInternalServerError || decodeView(t, r1).Code != "internal" {
		t.Fatalf("plain error status = %d", r1.Code)
	}

	panicky := b.Wrap(func(w http.ResponseWriter, x *Exchange) error { panic("kaboom") })
	r2 := httptest.NewRecorder()
	panicky.ServeHTTP(r2, httptest.NewRequest(http.MethodGet, "/", nil))
	if r2.Code != http.StatusInternalServerError {
		t.Fatalf("panic status = %d", r2.Code)
	}
	if v := decodeView(t, r2); !strings.Contains(v.Message, "kaboom") {
		t.Fatalf("panic view = %+v", v)
	}

	n := 0
	for _, ev := range rec.Events() {
		if ev.Type == observe.EventCondition {
			n++
		}
	}
	if n != 2 {
		t.Fatalf("condition events = %d, want 2", n)
	}
}

func TestBoundary_AbortHandlerPropagates(t *testing.T) {
	b, _ := newBoundary(true)
	h := b.Wrap(func(w http.ResponseWriter, x *Exchange) error { panic(http.ErrAbortHandler) })
	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Fatal("ErrAbortHandler must propagate")
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestBoundary_ErrorAfterWrite(t *testing.T) {
	b, _ := newBoundary(true)
	var errs *message.ErrorAccumulator
	h := b.Wrap(func(w http.ResponseWriter, x *Exchange) error {
		errs = x.Errors
		w.WriteHeader(http.StatusAccepted)
		return emit.Timeout("late")
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusAccepted || rec.Body.Len() != 0 {
		t.Fatalf("response rewritten: %d %q", rec.Code, rec.Body.String())
	}
	if errs.Len() != 1 {
		t.Fatal("error must still be recorded")
	}
}

func TestBoundary_AccumulatorAcrossRequests(t *testing.T) {
	b, _ := newBoundary(true)
	b.Keep = func(r *http.Request) bool { return r.URL.Query().Get("keep") == "1" }

	var seen []*message.ErrorAccumulator
	var lens []int
	h := b.Wrap(func(w http.ResponseWriter, x *Exchange) error {
		seen = append(seen, x.Errors)
		lens = append(lens, x.Errors.Len())
		x.Errors.Append("validation.failed", "fieldX")
		w.WriteHeader(http.StatusNoContent)
		return nil
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := rec.Result().Cookies()[0]

	for _, target := range []string{"/", "/?keep=1"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.AddCookie(cookie)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	if seen[0] != seen[1] || seen[1] != seen[2] {
		t.Fatal("the session must keep one accumulator")
	}
	if lens[0] != 0 || lens[1] != 0 || lens[2] != 1 {
		t.Fatalf("lens = %v, want [0 0 1]", lens)
	}
}

func TestBoundary_NilSessions(t *testing.T) {
	b := &Boundary{}
	h := b.Wrap(func(w http.ResponseWriter, x *Exchange) error {
		x.Errors.Append("m")
		return WriteMessages(w, http.StatusOK, x)
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || len(decodeView(t, rec).Errors) != 1 {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body)
	}
}

func TestBoundary_UnencodableParamKeepsStatus(t *testing.T) {
	var logs bytes.Buffer
	b, _ := newBoundary(true)
	b.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	h := b.Wrap(func(w http.ResponseWriter, x *Exchange) error {
		x.Errors.Append("calc.result", math.NaN())
		return emit.BadRequest("bad input")
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	v := decodeView(t, rec)
	if v.Code != "bad_request" || v.Message != "bad input" || v.Interaction == "" {
		t.Fatalf("view = %+v", v)
	}
	if v.Errors != nil {
		t.Fatalf("unencodable records must be left out, got %+v", v.Errors)
	}
	if !strings.Contains(logs.String(), "write error view") {
		t.Fatalf("encoding failure must be logged: %q", logs.String())
	}
}
