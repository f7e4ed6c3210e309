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

package apis

// MessageView is the wire shape of one accumulated message: the id a
// renderer maps to a localized template, and its positional parameters.
type MessageView struct {
	ID     string `json:"id"`
	Params []any  `json:"params,omitempty"`
}

// ErrorView is the body a boundary sends for a request that ended in a
// condition, or that simply has messages to report.
//
// Nothing is redacted here; handlers decide what reaches the view.
type ErrorView struct {
	// Code is the condition variant. Empty when the view only reports
	// messages.
	Code string `json:"code,omitempty"`
	// Tag is the textual tag, {space}local.
	Tag string `json:"tag,omitempty"`
	// Status is the HTTP status the response was written with.
	Status int `json:"status"`
	// Message is the condition message.
	Message string `json:"message,omitempty"`
	// Interaction is the interaction id the accumulators were bound with.
	Interaction string `json:"interaction,omitempty"`
	// Errors are the error-class messages accumulated for the interaction.
	Errors []MessageView `json:"errors,omitempty"`
	// Info are the informational messages accumulated for the interaction.
	Info []MessageView `json:"info,omitempty"`
}
