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

package adapter

import (
	"dirpx.dev/emit"
	"dirpx.dev/emit/apis"
	"dirpx.dev/emit/message"
)

// ToDescriptor converts a condition together with its resolved transport
// status into a portable ErrorDescriptor for structured logging.
func ToDescriptor(c *emit.Condition, st apis.Status, interaction string) apis.ErrorDescriptor {
	if c == nil {
		return apis.ErrorDescriptor{}
	}
	return apis.ErrorDescriptor{
		Code:        string(c.Code()),
		Tag:         c.Tag().String(),
		HTTPStatus:  st.HTTP,
		GRPCCode:    int(st.GRPC),
		Message:     c.Message(),
		Interaction: interaction,
	}
}

// ToView converts a condition into the public ErrorView using the resolved
// HTTP status. No redaction happens here. A nil condition gives a view
// carrying only the status, for responses that just report messages.
func ToView(c *emit.Condition, status int) apis.ErrorView {
	v := apis.ErrorView{Status: status}
	if c == nil {
		return v
	}
	v.Code = string(c.Code())
	v.Tag = c.Tag().String()
	v.Message = c.Message()
	return v
}

// MessageViews converts accumulated records into their wire shape. It
// returns nil for no records.
func MessageViews(recs []message.Record) []apis.MessageView {
	if len(recs) == 0 {
		return nil
	}
	out := make([]apis.MessageView, len(recs))
	for i, r := range recs {
		out[i] = apis.MessageView{ID: r.ID(), Params: r.Params()}
	}
	return out
}

// Drain builds the view of one finished interaction: the condition (if
// any), the interaction id and the records of both accumulators. Nil
// accumulators contribute nothing.
func Drain(c *emit.Condition, status int, errs *message.ErrorAccumulator, info *message.InfoAccumulator) apis.ErrorView {
	v := ToView(c, status)
	if errs != nil {
		v.Interaction = errs.InteractionID()
		v.Errors = MessageViews(errs.Records())
	}
	if info != nil {
		if v.Interaction == "" {
			v.Interaction = info.InteractionID()
		}
		v.Info = MessageViews(info.Records())
	}
	return v
}
