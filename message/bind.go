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
	"time"

	"dirpx.dev/emit/observe"
	"dirpx.dev/emit/session"
)

// Bind attaches the accumulator of kind K to the request's session.
//
// Bind steps:
//
//  1. look up the current session without creating one; without a session
//     it returns ErrNoActiveSession and writes nothing;
//  2. read the attribute K.AttrKey();
//  3. create a fresh accumulator when the attribute is absent or holds
//     something else;
//  4. Reinit it with interactionID and clear;
//  5. store it back under the attribute.
//
// opts are applied to the accumulator on every call.
func Bind[K Kind](src session.Source, interactionID string, clear bool, opts ...Option) (*Accumulator[K], error) {
	if src == nil {
		return nil, ErrNoActiveSession
	}
	sess, ok := src.Session(false)
	if !ok || sess == nil {
		return nil, ErrNoActiveSession
	}

	var k K
	v, _ := sess.Attribute(k.AttrKey())
	acc, _ := v.(*Accumulator[K])
	created := acc == nil
	if created {
		acc = New[K](opts...)
	} else {
		acc.configure(opts)
	}

	acc.Reinit(interactionID, clear)
	sess.SetAttribute(k.AttrKey(), acc)

	acc.mu.Lock()
	obs := acc.opts.observer
	acc.mu.Unlock()
	obs.OnEvent(context.Background(), observe.Event{
		Type:      observe.EventBind,
		Level:     observe.LevelVerbose,
		Timestamp: time.Now(),
		Source:    k.Role(),
		Data: map[string]any{
			"session":     sess.ID(),
			"interaction": interactionID,
			"clear":       clear,
			"created":     created,
		},
	})
	return acc, nil
}

// BindErrors binds the error-class accumulator.
func BindErrors(src session.Source, interactionID string, clear bool, opts ...Option) (*ErrorAccumulator, error) {
	return Bind[Errors](src, interactionID, clear, opts...)
}

// BindInfo binds the informational accumulator.
func BindInfo(src session.Source, interactionID string, clear bool, opts ...Option) (*InfoAccumulator, error) {
	return Bind[Info](src, interactionID, clear, opts...)
}
