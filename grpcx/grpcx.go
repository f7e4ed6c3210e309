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
	"context"
	"errors"
	"log/slog"
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
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Metadata keys read from incoming calls. SessionKey is also sent back as a
// header when the interceptor creates a session.
const (
	SessionKey     = "x-emit-session"
	InteractionKey = "x-interaction-id"
)

// Exchange holds the accumulators bound for one call.
type Exchange struct {
	Session     session.Session
	Interaction string
	Errors      *message.ErrorAccumulator
	Info        *message.InfoAccumulator
}

type exchangeKey struct{}

// FromContext returns the Exchange the interceptor bound for the call.
func FromContext(ctx context.Context) (*Exchange, bool) {
	x, ok := ctx.Value(exchangeKey{}).(*Exchange)
	return x, ok
}

// Option configures the interceptor.
type Option func(*config)

type config struct {
	sessions *session.Store
	create   bool
	logger   *slog.Logger
	observer observe.Observer
}

// WithSessions resolves sessions from the SessionKey metadata in store.
// Without it every call gets a fresh, unshared session.
func WithSessions(store *session.Store, create bool) Option {
	return func(c *config) {
		c.sessions = store
		c.create = create
	}
}

// WithLogger sets the logger for AppendError and boundary logs.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver sets the observer for accumulator and boundary events.
func WithObserver(o observe.Observer) Option {
	return func(c *config) { c.observer = o }
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that binds
// the call's accumulators, exposes them through FromContext and maps a
// returned error into a gRPC status.
//
// The status carries two details: a google.rpc.ErrorInfo built by
// adapter.ToErrorInfo, and a google.protobuf.Struct holding the
// apis.ErrorView with the accumulated records. A handler error that
// already is a gRPC status is recorded and returned unchanged.
//
// A nil m uses mapper.Default().
func UnaryServerInterceptor(m apis.Mapper, opts ...Option) grpc.UnaryServerInterceptor {
	if m == nil {
		m = mapper.Default()
	}
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		id := first(md, InteractionKey)
		if id == "" {
			id = uuid.Must(uuid.NewV7()).String()
		}

		src := cfg.source(ctx, md)
		msgOpts := []message.Option{
			message.WithLogger(cfg.logger.With("interaction", id, "method", info.FullMethod)),
			message.WithObserver(cfg.observer),
		}
		errs, err := message.BindErrors(src, id, true, msgOpts...)
		if err != nil {
			return nil, cfg.status(ctx, m, emit.New(code.SessionExpired, err.Error(), emit.WithCause(err)), id, nil, nil)
		}
		inf, err := message.BindInfo(src, id, true, msgOpts...)
		if err != nil {
			return nil, cfg.status(ctx, m, emit.New(code.SessionExpired, err.Error(), emit.WithCause(err)), id, nil, nil)
		}
		sess, _ := src.Session(false)

		x := &Exchange{Session: sess, Interaction: id, Errors: errs, Info: inf}
		resp, err := handler(context.WithValue(ctx, exchangeKey{}, x), req)
		if err == nil {
			return resp, nil
		}

		errs.AppendError(err)
		var c *emit.Condition
		if !errors.As(err, &c) {
			if _, ok := gstatus.FromError(err); ok {
				return nil, err
			}
		}
		return nil, cfg.status(ctx, m, emit.Ensure(err), id, errs, inf)
	}
}

func (cfg *config) source(ctx context.Context, md metadata.MD) session.Source {
	if cfg.sessions == nil {
		return session.Static(session.NewMemorySession())
	}
	src := cfg.sessions.SourceFor(first(md, SessionKey), func(id string) {
		_ = grpc.SetHeader(ctx, metadata.Pairs(SessionKey, id))
	})
	if cfg.create {
		src.Session(true)
	}
	return src
}

// status builds the outgoing gRPC error for c. If the details cannot be
// attached the bare status is returned.
func (cfg *config) status(ctx context.Context, m apis.Mapper, c *emit.Condition, id string,
	errs *message.ErrorAccumulator, inf *message.InfoAccumulator) error {
	st := apis.Status{
		HTTP: emit.ResolveHTTP(c, m),
		GRPC: m.GRPCStatus(c.Code(), c.Tag()),
	}
	desc := adapter.ToDescriptor(c, st, id)
	cfg.logger.LogAttrs(ctx, slog.LevelWarn, "call failed", slog.Any("condition", desc))
	observe.OrNoOp(cfg.observer).OnEvent(ctx, observe.Event{
		Type:      observe.EventCondition,
		Level:     observe.LevelInfo,
		Timestamp: time.Now(),
		Source:    "grpc",
		Data:      map[string]any{"code": desc.Code, "tag": desc.Tag, "grpc": desc.GRPCCode, "interaction": id},
	})

	base := gstatus.New(st.GRPC, c.Error())
	view := adapter.Drain(c, st.HTTP, errs, inf)
	if view.Interaction == "" {
		view.Interaction = id
	}
	body, err := adapter.ToStruct(view)
	if err != nil {
		body = nil
	}
	with, err := withDetails(base, adapter.ToErrorInfo(c, st, id), body)
	if err != nil {
		return base.Err()
	}
	return with.Err()
}

func withDetails(base *gstatus.Status, info *errdetails.ErrorInfo, body *structpb.Struct) (*gstatus.Status, error) {
	if body == nil {
		return base.WithDetails(info)
	}
	return base.WithDetails(info, body)
}

func first(md metadata.MD, key string) string {
	if vs := md.Get(key); len(vs) > 0 {
		return vs[0]
	}
	return ""
}
