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

// Package message accumulates the human-facing messages produced while
// servicing one client interaction.
//
// An Accumulator lives in the client's session and is reused across
// requests. At the start of each request a boundary binds it with Bind,
// which reinitialises it with the request's interaction id and optionally
// clears what the previous request left behind. Business code appends
// records by message id; the boundary drains them once per interaction
// and hands them to a renderer.
//
// Two kinds of accumulator exist side by side in a session: Errors, for
// error-class messages, and Info, for informational ones. They share one
// generic implementation and differ only in the session attribute they
// are stored under.
//
//	errs, err := message.BindErrors(src, interactionID, true, message.WithLogger(log))
//	if err != nil {
//	    return err // message.ErrNoActiveSession
//	}
//	errs.Append("validation.failed", "fieldX")
package message

import "errors"

const (
	// ErrorsAttr is the session attribute holding the error accumulator.
	ErrorsAttr = "dirpx.emit.errorobj"
	// InfoAttr is the session attribute holding the informational
	// accumulator.
	InfoAttr = "dirpx.emit.messageobj"

	// ExceptionID is the message id of a record produced from an error.
	ExceptionID = "dirpx.emit.error.exc"
	// NoMessage is the parameter recorded for an error without a message.
	NoMessage = "<No-message>"
)

// ErrNoActiveSession is returned by Bind when the request has no session.
// Bind never creates one.
var ErrNoActiveSession = errors.New("message: no active session")
