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

// Kind selects a session attribute and a role for an Accumulator. The two
// kinds are Errors and Info.
type Kind interface {
	// AttrKey is the session attribute the accumulator is stored under.
	AttrKey() string
	// Role names the kind in logs and trace events.
	Role() string
}

// Errors is the Kind of the error-class accumulator.
type Errors struct{}

func (Errors) AttrKey() string { return ErrorsAttr }
func (Errors) Role() string    { return "error" }

// Info is the Kind of the informational accumulator.
type Info struct{}

func (Info) AttrKey() string { return InfoAttr }
func (Info) Role() string    { return "info" }

// ErrorAccumulator and InfoAccumulator name the two instantiations.
type (
	ErrorAccumulator = Accumulator[Errors]
	InfoAccumulator  = Accumulator[Info]
)
