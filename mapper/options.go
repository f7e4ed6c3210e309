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

package mapper

import "dirpx.dev/emit/code"

// Option adjusts the builder before New freezes it.
type Option func(*builder)

// WithHTTPDefault replaces the default HTTP status of c.
func WithHTTPDefault(c code.Code, http int) Option {
	return func(b *builder) { b.httpDefaults[c] = http }
}

// WithGRPCDefault replaces the default gRPC status of c.
func WithGRPCDefault(c code.Code, grpc int) Option {
	return func(b *builder) { b.grpcDefaults[c] = grpc }
}

// WithHTTPOverride forces the HTTP status of c regardless of tag rules.
func WithHTTPOverride(c code.Code, http int) Option {
	return func(b *builder) { b.httpOverride[c] = http }
}

// WithGRPCOverride forces the gRPC status of c regardless of tag rules.
func WithGRPCOverride(c code.Code, grpc int) Option {
	return func(b *builder) { b.grpcOverride[c] = grpc }
}

// WithHTTPTag adds an HTTP rule for conditions of code c carrying a tag that
// matches pattern. The pattern is a full tag ({space}local) or a whole
// namespace ({space}*); a full tag wins over its namespace.
func WithHTTPTag(c code.Code, pattern string, http int) Option {
	return func(b *builder) { b.httpTags[c] = append(b.httpTags[c], tagRule{pattern, http}) }
}

// WithGRPCTag is the gRPC counterpart of WithHTTPTag.
func WithGRPCTag(c code.Code, pattern string, grpc int) Option {
	return func(b *builder) { b.grpcTags[c] = append(b.grpcTags[c], tagRule{pattern, grpc}) }
}

// WithReverse makes an explicit HTTP status construct conditions of code c.
func WithReverse(http int, c code.Code) Option {
	return func(b *builder) { b.reverse[http] = c }
}

// WithFallback sets the statuses used for codes with no default at all.
func WithFallback(http, grpc int) Option {
	return func(b *builder) {
		if http > 0 {
			b.fallbackHTTP = http
		}
		b.fallbackGRPC = toGRPC(grpc)
	}
}
