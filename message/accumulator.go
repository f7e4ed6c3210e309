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
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"dirpx.dev/emit"
	"dirpx.dev/emit/observe"
)

// Accumulator collects the records of one kind for a session. Records keep
// emission order and duplicates are allowed.
//
// Methods are serialized by an internal mutex. Appends from several
// goroutines do not race, but their relative order is unspecified.
type Accumulator[K Kind] struct {
	mu          sync.Mutex
	interaction string
	records     []Record
	opts        options
}

// New creates an empty accumulator. Most callers get one from Bind instead.
func New[K Kind](opts ...Option) *Accumulator[K] {
	a := &Accumulator[K]{}
	a.configure(opts)
	return a
}

func (a *Accumulator[K]) configure(opts []Option) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	a.mu.Lock()
	a.opts = o
	a.mu.Unlock()
}

// Reinit starts a new interaction. clear drops the records left by the
// previous one; without it they are kept. Reinit is idempotent.
func (a *Accumulator[K]) Reinit(interactionID string, clear bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.interaction = interactionID
	if clear {
		a.records = nil
	}
}

// InteractionID returns the id passed to the last Reinit.
func (a *Accumulator[K]) InteractionID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.interaction
}

// Append records message id with its parameters. Nil parameters are
// dropped. An empty id is a programming error and panics.
func (a *Accumulator[K]) Append(id string, params ...any) {
	if id == "" {
		panic("message: Append with empty message id")
	}
	a.commit(newRecord(id, params))
}

// AppendError converts err into one record with id ExceptionID. The
// parameter is the message of a condition passed directly, otherwise the
// full error text of err, or NoMessage when either is empty. The message is
// logged at error level together with err.
func (a *Accumulator[K]) AppendError(err error) {
	msg := ""
	if c, ok := err.(*emit.Condition); ok {
		if c != nil {
			msg = c.Message()
		}
	} else if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = NoMessage
	}
	a.mu.Lock()
	logger := a.opts.logger
	a.mu.Unlock()
	logger.Error(msg, "error", err)
	a.commit(newRecord(ExceptionID, []any{msg}))
}

func (a *Accumulator[K]) commit(r Record) {
	a.mu.Lock()
	a.records = append(a.records, r)
	obs := a.opts.observer
	a.mu.Unlock()

	var k K
	obs.OnEvent(context.Background(), observe.Event{
		Type:      observe.EventAppend,
		Level:     observe.LevelVerbose,
		Timestamp: time.Now(),
		Source:    k.Role(),
		Data: map[string]any{
			"property": r.id,
			"ptype":    ptype(r.params),
			"vals":     slices.Clone(r.params),
		},
	})
}

// ptype describes the parameters of a record: "none", the Go type of a
// single parameter, or "<n>objects".
func ptype(params []any) string {
	switch len(params) {
	case 0:
		return "none"
	case 1:
		return fmt.Sprintf("%T", params[0])
	default:
		return fmt.Sprintf("%dobjects", len(params))
	}
}

// MessagesEmitted reports whether any record is held.
func (a *Accumulator[K]) MessagesEmitted() bool {
	return a.Len() > 0
}

// Len returns the number of records held.
func (a *Accumulator[K]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records)
}

// ClearAll drops every record.
func (a *Accumulator[K]) ClearAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = nil
}

// Records returns the records in emission order. The slice is a copy.
func (a *Accumulator[K]) Records() []Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.records)
}
