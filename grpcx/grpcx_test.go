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
	"testing"

	"dirpx.dev/emit"
	"dirpx.dev/emit/code"
	"dirpx.dev/emit/mapper"
	"dirpx.dev/emit/message"
	"dirpx.dev/emit/session"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	gstatus "google.golang.org/grpc/status"
)

var unaryInfo = &grpc.UnaryServerInfo{FullMethod: "/dirpx.synch.v1.Synch/Put"}

func call(t *testing.T, icpt grpc.UnaryServerInterceptor, ctx context.Context, h grpc.UnaryHandler) (any, error) {
	t.Helper()
	return icpt(ctx, "req", unaryInfo, h)
}

func TestInterceptor_Success(t *testing.T) {
	icpt := UnaryServerInterceptor(nil)
	resp, err := call(t, icpt, context.Background(), func(ctx context.Context, req any) (any, error) {
		x, ok := FromContext(ctx)
		if !ok || x.Errors == nil || x.Info == nil || x.Interaction == "" {
			t.Fatal("exchange missing from context")
		}
		return "ok", nil
	})
	if err != nil || resp != "ok" {
		t.Fatalf("resp=%v err=%v", resp, err)
	}
}

func TestInterceptor_Condition(t *testing.T) {
	icpt := UnaryServerInterceptor(nil)
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(InteractionKey, "req-1"))
	_, err := call(t, icpt, ctx, func(ctx context.Context, req any) (any, error) {
		x, _ := FromContext(ctx)
		x.Errors.Append("validation.failed", "fieldX")
		return nil, emit.BadRequest("bad item", emit.WithTag(emit.TagUnknownItemType))
	})

	st, ok := gstatus.FromError(err)
	if !ok || st.Code() != codes.InvalidArgument {
		t.Fatalf("status = %v", st)
	}
	info, ok := ExtractInfo(err)
	if !ok {
		t.Fatal("ErrorInfo detail missing")
	}
	if info.GetDomain() != "urn:dirpx:synch" || info.GetReason() != "unknown-item-type" {
		t.Fatalf("info = %v", info)
	}
	if info.GetMetadata()["interaction"] != "req-1" || info.GetMetadata()["http_status"] != "400" {
		t.Fatalf("metadata = %v", info.GetMetadata())
	}

	view, ok := ExtractView(err)
	if !ok {
		t.Fatal("view detail missing")
	}
	if view.Code != "bad_request" || len(view.Errors) != 2 || view.Errors[1].ID != message.ExceptionID {
		t.Fatalf("view = %+v", view)
	}
}

func TestInterceptor_MapperAndPlainErrors(t *testing.T) {
	m, err := mapper.New(mapper.WithGRPCOverride(code.Internal, int(codes.Unavailable)))
	if err != nil {
		t.Fatalf("mapper.New: %v", err)
	}
	icpt := UnaryServerInterceptor(m)

	_, err = call(t, icpt, context.Background(), func(ctx context.Context, req any) (any, error) {
		return nil, errors.New("boom")
	})
	if gstatus.Code(err) != codes.Unavailable {
		t.Fatalf("code = %v, want Unavailable", gstatus.Code(err))
	}

	_, err = call(t, icpt, context.Background(), func(ctx context.Context, req any) (any, error) {
		return nil, context.DeadlineExceeded
	})
	if gstatus.Code(err) != codes.DeadlineExceeded {
		t.Fatalf("code = %v, want DeadlineExceeded", gstatus.Code(err))
	}
}

func TestInterceptor_PassesGRPCStatus(t *testing.T) {
	var seen *Exchange
	orig := gstatus.Error(codes.NotFound, "no such item")
	_, err := call(t, UnaryServerInterceptor(nil), context.Background(), func(ctx context.Context, req any) (any, error) {
		seen, _ = FromContext(ctx)
		return nil, orig
	})
	if err != orig {
		t.Fatalf("err = %v, want the original status", err)
	}
	if _, ok := ExtractInfo(err); ok {
		t.Fatal("foreign status must not gain details")
	}
	if seen.Errors.Len() != 1 {
		t.Fatal("foreign status must still be recorded")
	}
}

func TestInterceptor_Sessions(t *testing.T) {
	store := session.NewStore(session.Config{})
	h := func(ctx context.Context, req any) (any, error) { return nil, nil }

	_, err := call(t, UnaryServerInterceptor(nil, WithSessions(store, false)), context.Background(), h)
	if gstatus.Code(err) != codes.Unauthenticated {
		t.Fatalf("code = %v, want Unauthenticated", gstatus.Code(err))
	}
	if info, ok := ExtractInfo(err); !ok || info.GetMetadata()["code"] != string(code.SessionExpired) {
		t.Fatalf("info = %v", info)
	}
	if store.Len() != 0 {
		t.Fatal("no session may be created")
	}

	sess := store.Create()
	var first, second *message.ErrorAccumulator
	icpt := UnaryServerInterceptor(nil, WithSessions(store, false))
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(SessionKey, sess.ID()))
	_, _ = call(t, icpt, ctx, func(ctx context.Context, req any) (any, error) {
		x, _ := FromContext(ctx)
		first = x.Errors
		return nil, nil
	})
	_, _ = call(t, icpt, ctx, func(ctx context.Context, req any) (any, error) {
		x, _ := FromContext(ctx)
		second = x.Errors
		return nil, nil
	})
	if first == nil || first != second {
		t.Fatal("calls in one session must share the accumulator")
	}

	_, err = call(t, UnaryServerInterceptor(nil, WithSessions(store, true)), context.Background(), h)
	if err != nil || store.Len() != 2 {
		t.Fatalf("create: err=%v len=%d", err, store.Len())
	}
}

func TestExtract_NonStatus(t *testing.T) {
	if _, ok := ExtractInfo(nil); ok {
		t.Fatal("nil has no info")
	}
	if _, ok := ExtractView(errors.New("x")); ok {
		t.Fatal("plain error has no view")
	}
}
