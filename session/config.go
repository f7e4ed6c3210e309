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

package session

import (
	"fmt"
	"time"
)

const (
	defaultCookieName  = "EMITSESSION"
	defaultIdleTimeout = 30 * time.Minute
)

// Duration is a time.Duration written as text ("30m") in config files.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("session: invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Config holds the Store parameters.
type Config struct {
	CookieName  string   `json:"cookie_name,omitempty"`
	IdleTimeout Duration `json:"idle_timeout,omitempty"`
	Secure      bool     `json:"secure,omitempty"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:  defaultCookieName,
		IdleTimeout: Duration(defaultIdleTimeout),
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.CookieName != "" {
		c.CookieName = source.CookieName
	}
	if source.IdleTimeout > 0 {
		c.IdleTimeout = source.IdleTimeout
	}
	if source.Secure {
		c.Secure = true
	}
}
