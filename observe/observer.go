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

// Package observe carries trace events out of the emit packages.
//
// Accumulators and binders report what they did (a record appended, an
// accumulator bound to a session) as an Event after the change is
// committed. An Observer never alters what it observes. Level values follow
// OpenTelemetry severity numbers so events map onto slog levels and OTel
// log records without translation.
package observe

import (
	"context"
	"log/slog"
	"time"
)

// Level is the severity of an event, aligned with OTel SeverityNumber ranges.
type Level int

const (
	LevelVerbose Level = 5  // OTel DEBUG (5-8), slog.LevelDebug
	LevelInfo    Level = 9  // OTel INFO (9-12), slog.LevelInfo
	LevelWarning Level = 13 // OTel WARN (13-16), slog.LevelWarn
	LevelError   Level = 17 // OTel ERROR (17-20), slog.LevelError
)

// String returns the OTel severity text for the level.
func (l Level) String() string {
	switch {
	case l <= 4:
		return "TRACE"
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	case l <= 20:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// SlogLevel maps l to the slog level used when the event is logged.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= 8:
		return slog.LevelDebug
	case l <= 12:
		return slog.LevelInfo
	case l <= 16:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType names what happened, e.g. "message.append".
type EventType string

const (
	// EventAppend is emitted after a record is committed to an accumulator.
	EventAppend EventType = "message.append"
	// EventBind is emitted after an accumulator is written back to a session.
	EventBind EventType = "message.bind"
	// EventCondition is emitted by boundaries that converted a condition.
	EventCondition EventType = "boundary.condition"
)

// Event is one trace event. Source is the emitting role ("error", "info",
// "http", ...); Data holds the event attributes.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Observer receives events.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}
