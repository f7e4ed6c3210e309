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

// Package config loads the emitd configuration: listen addresses, logging,
// session store parameters and status mapper rules.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"time"

	"dirpx.dev/emit/apis"
	"dirpx.dev/emit/code"
	"dirpx.dev/emit/mapper"
	"dirpx.dev/emit/session"
)

const (
	defaultAddr          = ":8080"
	defaultLogLevel      = "info"
	defaultSweepInterval = time.Minute
)

// Config holds initialization parameters for emitd.
type Config struct {
	// Addr is the HTTP listen address, serving the JSON and Connect routes.
	Addr string `json:"addr,omitempty"`
	// GRPCAddr is the gRPC listen address. Empty disables gRPC.
	GRPCAddr string `json:"grpc_addr,omitempty"`
	// LogLevel is a slog level name: debug, info, warn or error.
	LogLevel string `json:"log_level,omitempty"`
	// LogJSON selects the JSON log handler instead of text.
	LogJSON bool `json:"log_json,omitempty"`

	Session       session.Config   `json:"session"`
	SweepInterval session.Duration `json:"sweep_interval,omitempty"`
	Mapper        MapperConfig     `json:"mapper"`
}

// TagRule maps conditions of Code whose tag matches Pattern to Status.
type TagRule struct {
	Code    code.Code `json:"code"`
	Pattern string    `json:"pattern"`
	Status  int       `json:"status"`
}

// MapperConfig adjusts the library status tables. Code keys are validated
// when decoded.
type MapperConfig struct {
	HTTP     map[code.Code]int `json:"http,omitempty"`
	GRPC     map[code.Code]int `json:"grpc,omitempty"`
	HTTPTags []TagRule         `json:"http_tags,omitempty"`
	GRPCTags []TagRule         `json:"grpc_tags,omitempty"`
	Reverse  map[int]code.Code `json:"reverse,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all sections.
func DefaultConfig() Config {
	return Config{
		Addr:          defaultAddr,
		LogLevel:      defaultLogLevel,
		Session:       session.DefaultConfig(),
		SweepInterval: session.Duration(defaultSweepInterval),
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Addr != "" {
		c.Addr = source.Addr
	}
	if source.GRPCAddr != "" {
		c.GRPCAddr = source.GRPCAddr
	}
	if source.LogLevel != "" {
		c.LogLevel = source.LogLevel
	}
	if source.LogJSON {
		c.LogJSON = true
	}
	if source.SweepInterval > 0 {
		c.SweepInterval = source.SweepInterval
	}
	c.Session.Merge(&source.Session)
	c.Mapper.Merge(&source.Mapper)
}

// Merge adds the tables and rules of source to m. Keys in source win.
func (m *MapperConfig) Merge(source *MapperConfig) {
	m.HTTP = mergeMap(m.HTTP, source.HTTP)
	m.GRPC = mergeMap(m.GRPC, source.GRPC)
	m.Reverse = mergeMap(m.Reverse, source.Reverse)
	m.HTTPTags = append(m.HTTPTags, source.HTTPTags...)
	m.GRPCTags = append(m.GRPCTags, source.GRPCTags...)
}

func mergeMap[K comparable, V any](dst, src map[K]V) map[K]V {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[K]V, len(src))
	}
	maps.Copy(dst, src)
	return dst
}

// Options converts m into mapper options.
func (m *MapperConfig) Options() []mapper.Option {
	var opts []mapper.Option
	for c, st := range m.HTTP {
		opts = append(opts, mapper.WithHTTPDefault(c, st))
	}
	for c, st := range m.GRPC {
		opts = append(opts, mapper.WithGRPCDefault(c, st))
	}
	for _, r := range m.HTTPTags {
		opts = append(opts, mapper.WithHTTPTag(r.Code, r.Pattern, r.Status))
	}
	for _, r := range m.GRPCTags {
		opts = append(opts, mapper.WithGRPCTag(r.Code, r.Pattern, r.Status))
	}
	for st, c := range m.Reverse {
		opts = append(opts, mapper.WithReverse(st, c))
	}
	return opts
}

// NewMapper builds the status mapper described by c.
func (c *Config) NewMapper() (apis.Mapper, error) {
	m, err := mapper.New(c.Mapper.Options()...)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return m, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
