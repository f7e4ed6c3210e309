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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"dirpx.dev/emit"
	"dirpx.dev/emit/adapter"
	"dirpx.dev/emit/apis"
	"dirpx.dev/emit/code"
	"dirpx.dev/emit/mapper"
	"dirpx.dev/emit/message"
	"dirpx.dev/emit/observe"
	"dirpx.dev/emit/session"
	"github.com/google/uuid"
)

// InteractionHeader carries the interaction id. A client may send one; the
// boundary always echoes the id it used.
const InteractionHeader = "X-Interaction-Id"

// Sessions resolves the session Source of a request. *session.Store
// implements it.
type Sessions interface {
	Source(w http.ResponseWriter, r *http.Request) session.Source
}

// Exchange is what a wrapped handler gets besides the ResponseWriter: the
// request, its session and the two accumulators bound for it.
type Exchange struct {
	Request     *http.Request
	Session     session.Session
	Interaction string
	Errors      *message.ErrorAccumulator
	Info        *message.InfoAccumulator
}

// HandlerFunc is a business handler. A returned error is converted into one
// error record and selects the response status.
type HandlerFunc func(w http.ResponseWriter, x *Exchange) error

// Boundary binds accumulators around business handlers and turns their
// errors into JSON error responses.
//
// Per request it:
//
//  1. resolves the session, creating it when CreateSession is set;
//  2. binds the error and informational accumulators with the interaction
//     id, clearing them unless Keep says otherwise;
//  3. runs the handler, recovering panics as internal conditions;
//  4. on error, records it with AppendError and writes the view with the
//     condition's status, unless the handler already wrote a response.
//
// A request without a session is answered with the status of
// code.SessionExpired. A nil Sessions gives every request a fresh session.
type Boundary struct {
	Sessions Sessions
	Mapper   apis.Mapper
	Logger   *slog.Logger
	Observer observe.Observer

	// CreateSession starts a session for requests that have none.
	CreateSession bool
	// Keep reports whether a request continues the previous interaction,
	// keeping its records. Nil clears on every request.
	Keep func(*http.Request) bool
}

// Wrap returns h as an http.Handler.
func (b *Boundary) Wrap(h HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.serve(w, r, h)
	})
}

func (b *Boundary) mapper() apis.Mapper {
	if b.Mapper == nil {
		return mapper.Default()
	}
	return b.Mapper
}

func (b *Boundary) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

func (b *Boundary) serve(w http.ResponseWriter, r *http.Request, h HandlerFunc) {
	ctx := r.Context()
	id := r.Header.Get(InteractionHeader)
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}
	w.Header().Set(InteractionHeader, id)

	var src session.Source
	if b.Sessions == nil {
		src = session.Static(session.NewMemorySession())
	} else {
		src = b.Sessions.Source(w, r)
	}
	if b.CreateSession {
		src.Session(true)
	}
	clear := b.Keep == nil || !b.Keep(r)
	opts := []message.Option{
		message.WithLogger(b.logger().With("interaction", id)),
		message.WithObserver(b.Observer),
	}

	errs, err := message.BindErrors(src, id, clear, opts...)
	if err != nil {
		b.fail(ctx, w, id, emit.New(code.SessionExpired, err.Error(), emit.WithCause(err)), nil, nil)
		return
	}
	info, err := message.BindInfo(src, id, clear, opts...)
	if err != nil {
		b.fail(ctx, w, id, emit.New(code.SessionExpired, err.Error(), emit.WithCause(err)), nil, nil)
		return
	}
	sess, _ := src.Session(false)

	tw := &trackingWriter{ResponseWriter: w}
	x := &Exchange{Request: r, Session: sess, Interaction: id, Errors: errs, Info: info}
	herr := run(h, tw, x)
	if herr == nil {
		return
	}

	c := emit.Ensure(herr)
	errs.AppendError(herr)
	if tw.wrote {
		b.logger().LogAttrs(ctx, slog.LevelWarn, "error after response was written",
			slog.String("interaction", id), slog.String("error", herr.Error()))
		return
	}
	b.fail(ctx, w, id, c, errs, info)
}

// run calls h and converts a panic into an internal condition.
// http.ErrAbortHandler keeps propagating.
func run(h HandlerFunc, w http.ResponseWriter, x *Exchange) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if pe, ok := p.(error); ok && errors.Is(pe, http.ErrAbortHandler) {
				panic(p)
			}
			err = emit.Internal(fmt.Sprintf("panic: %v", p))
		}
	}()
	return h(w, x)
}

func (b *Boundary) fail(ctx context.Context, w http.ResponseWriter, id string, c *emit.Condition,
	errs *message.ErrorAccumulator, info *message.InfoAccumulator) {
	m := b.mapper()
	status := emit.ResolveHTTP(c, m)
	st := apis.Status{HTTP: status, GRPC: m.GRPCStatus(c.Code(), c.Tag())}
	desc := adapter.ToDescriptor(c, st, id)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	b.logger().LogAttrs(ctx, level, "request failed", slog.Any("condition", desc))
	observe.OrNoOp(b.Observer).OnEvent(ctx, observe.Event{
		Type:      observe.EventCondition,
		Level:     observe.LevelInfo,
		Timestamp: time.Now(),
		Source:    "http",
		Data:      map[string]any{"code": desc.Code, "tag": desc.Tag, "status": status, "interaction": id},
	})

	view := adapter.Drain(c, status, errs, info)
	if view.Interaction == "" {
		view.Interaction = id
	}
	if err := WriteView(w, status, view); err != nil {
		b.logger().LogAttrs(ctx, slog.LevelError, "write error view", slog.String("error", err.Error()))
	}
}

// trackingWriter records whether the handler started the response.
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (t *trackingWriter) WriteHeader(code int) {
	t.wrote = true
	t.ResponseWriter.WriteHeader(code)
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	t.wrote = true
	return t.ResponseWriter.Write(p)
}

func (t *trackingWriter) Unwrap() http.ResponseWriter { return t.ResponseWriter }
