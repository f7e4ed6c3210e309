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

package message

import (
	"log/slog"

	"dirpx.dev/emit/observe"
)

type options struct {
	logger   *slog.Logger
	observer observe.Observer
}

func defaultOptions() options {
	return options{
		logger:   slog.New(slog.DiscardHandler),
		observer: observe.NoOpObserver{},
	}
}

// Option wires an Accumulator to its collaborators. Options are applied on
// every Bind, so they describe the process, not the session.
type Option func(*options)

// WithLogger sets the logger AppendError writes to. A nil logger discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the observer receiving append and bind events.
func WithObserver(obs observe.Observer) Option {
	return func(o *options) { o.observer = observe.OrNoOp(obs) }
}
