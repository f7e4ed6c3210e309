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

// Command emitd serves a small item store over HTTP, Connect and gRPC to
// show the emit boundaries at work.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"connectrpc.com/connect"
	"dirpx.dev/emit/config"
	"dirpx.dev/emit/connectx"
	"dirpx.dev/emit/grpcx"
	"dirpx.dev/emit/httpx"
	"dirpx.dev/emit/observe"
	"dirpx.dev/emit/session"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const putProcedure = "/dirpx.emit.v1.Items/Put"

func main() {
	var (
		configFile = flag.String("config", "", "Path to emitd config JSON file")
		addr       = flag.String("addr", "", "HTTP listen address (overrides config)")
		grpcAddr   = flag.String("grpc-addr", "", "gRPC listen address (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable debug logging, including message traces")
		stopped    = flag.Bool("connector-stopped", false, "Leave the item connector stopped")
	)
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *grpcAddr != "" {
		cfg.GRPCAddr = *grpcAddr
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}

	level, err := cfg.Level()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	var logger *slog.Logger
	if cfg.LogJSON {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	}

	m, err := cfg.NewMapper()
	if err != nil {
		log.Fatalf("Invalid mapper config: %v", err)
	}
	store := session.NewStore(cfg.Session)
	obs := observe.NewSlogObserver(logger)

	svc := &items{}
	svc.started.Store(!*stopped)

	boundary := &httpx.Boundary{
		Sessions:      store,
		Mapper:        m,
		Logger:        logger,
		Observer:      obs,
		CreateSession: true,
		Keep:          func(r *http.Request) bool { return r.Method == http.MethodGet },
	}
	ci := &connectx.Interceptor{Mapper: m, Sessions: store, Create: true, Logger: logger, Observer: obs}

	mux := http.NewServeMux()
	mux.Handle("/items", boundary.Wrap(svc.putHTTP))
	mux.Handle("/messages", boundary.Wrap(svc.messagesHTTP))
	mux.Handle(putProcedure, connect.NewUnaryHandler(putProcedure, svc.putConnect,
		connect.WithInterceptors(ci.Unary())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go sweep(ctx, store, time.Duration(cfg.SweepInterval), logger)

	var gs *grpc.Server
	if cfg.GRPCAddr != "" {
		gs = grpc.NewServer(grpc.UnaryInterceptor(grpcx.UnaryServerInterceptor(m,
			grpcx.WithSessions(store, true),
			grpcx.WithLogger(logger),
			grpcx.WithObserver(obs),
		)))
		healthpb.RegisterHealthServer(gs, health.NewServer())
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			log.Fatalf("Failed to listen on %s: %v", cfg.GRPCAddr, err)
		}
		go func() {
			logger.Info("grpc listening", "addr", cfg.GRPCAddr)
			if err := gs.Serve(lis); err != nil {
				logger.Error("grpc serve", "error", err)
			}
		}()
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if gs != nil {
			gs.GracefulStop()
		}
		_ = srv.Shutdown(shutdown)
	}()

	logger.Info("http listening", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server failed: %v", err)
	}
}

// sweep evicts idle sessions until ctx is done.
func sweep(ctx context.Context, store *session.Store, every time.Duration, logger *slog.Logger) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := store.Sweep(now); n > 0 {
				logger.Debug("sessions swept", "count", n, "live", store.Len())
			}
		}
	}
}
