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

// Package connectx is the Connect boundary of emit: a unary interceptor
// that binds accumulators for each call and maps returned errors into
// *connect.Error values carrying a google.rpc.ErrorInfo detail.
package connectx

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
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

// Headers read from requests. SessionHeader is set on the response when
// the interceptor creates a session.
const (
	SessionHeader     = "X-Emit-Session"
	InteractionHeader = "X-Interaction-Id"
)

// Exchange holds the accumulators bound for one call.
type Exchange struct {
	Session     session.Session
	Interaction string
	Errors      *message.ErrorAccumulator
	Info        *message.InfoAccumulator
}

type exchangeKey struct{}

// FromContext returns the Exchange bound for the call.
func FromContext(ctx context.Context) (*Exchange, bool) {
	x, ok := ctx.Value(exchangeKey{}).(*Exchange)
	return x, ok
}

// Interceptor binds accumulators around Connect handlers. The zero value
// gives every call a fresh session and uses mapper.Default().
type Interceptor struct {
	Mapper   apis.Mapper
	Sessions *session.Store
	Create   bool
	Logger   *slog.Logger
	Observer observe.Observer
}

// Unary returns the interceptor as a connect.UnaryInterceptorFunc. Client
// calls pass through untouched.
func (i *Interceptor) Unary() connect.UnaryInterceptorFunc {
	m := i.Mapper
	if m == nil {
		m = mapper.Default()
	}
	logger := i.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				return next(ctx, req)
			}
			id := req.Header().Get(InteractionHeader)
			if id == "" {
				id = uuid.Must(uuid.NewV7()).String()
			}

			var created string
			src := i.source(req.Header().Get(SessionHeader), &created)
			opts := []message.Option{
				message.WithLogger(logger.With("interaction", id, "procedure", req.Spec().Procedure)),
				message.WithObserver(i.Observer),
			}
			errs, err := message.BindErrors(src, id, true, opts...)
			if err != nil {
				return nil, i.fail(ctx, m, logger, emit.New(code.SessionExpired, err.Error(), emit.WithCause(err)), id, nil, nil)
			}
			inf, err := message.BindInfo(src, id, true, opts...)
			if err != nil {
				return nil, i.fail(ctx, m, logger, emit.New(code.SessionExpired, err.Error(), emit.WithCause(err)), id, nil, nil)
			}
			sess, _ := src.Session(false)

			x := &Exchange{Session: sess, Interaction: id, Errors: errs, Info: inf}
			resp, err := next(context.WithValue(ctx, exchangeKey{}, x), req)
			if err == nil {
				if created != "" && resp != nil {
					resp.Header().Set(SessionHeader, created)
				}
				return resp, nil
			}

			errs.AppendError(err)
			var c *emit.Condition
			var ce *connect.Error
			if !errors.As(err, &c) && errors.As(err, &ce) {
				return nil, err
			}
			out := i.fail(ctx, m, logger, emit.Ensure(err), id, errs, inf)
			if created != "" {
				out.Meta().Set(SessionHeader, created)
			}
			return nil, out
		}
	}
}

func (i *Interceptor) source(id string, created *string) session.Source {
	if i.Sessions == nil {
		return session.Static(session.NewMemorySession())
	}
	src := i.Sessions.SourceFor(id, func(id string) { *created = id })
	if i.Create {
		src.Session(true)
	}
	return src
}

func (i *Interceptor) fail(ctx context.Context, m apis.Mapper, logger *slog.Logger, c *emit.Condition, id string,
	errs *message.ErrorAccumulator, inf *message.InfoAccumulator) *connect.Error {
	st := apis.Status{
		HTTP: emit.ResolveHTTP(c, m),
		GRPC: m.GRPCStatus(c.Code(), c.Tag()),
	}
	desc := adapter.ToDescriptor(c, st, id)
	logger.LogAttrs(ctx, slog.LevelWarn, "call failed", slog.Any("condition", desc))
	observe.OrNoOp(i.Observer).OnEvent(ctx, observe.Event{
		Type:      observe.EventCondition,
		Level:     observe.LevelInfo,
		Timestamp: time.Now(),
		Source:    "connect",
		Data:      map[string]any{"code": desc.Code, "tag": desc.Tag, "grpc": desc.GRPCCode, "interaction": id},
	})

	// connect codes share the gRPC numbering
	out := connect.NewError(connect.Code(st.GRPC), c)
	if d, err := connect.NewErrorDetail(adapter.ToErrorInfo(c, st, id)); err == nil {
		out.AddDetail(d)
	}
	view := adapter.Drain(c, st.HTTP, errs, inf)
	if view.Interaction == "" {
		view.Interaction = id
	}
	if s, err := adapter.ToStruct(view); err == nil {
		if d, err := connect.NewErrorDetail(s); err == nil {
			out.AddDetail(d)
		}
	}
	out.Meta().Set(InteractionHeader, id)
	return out
}
