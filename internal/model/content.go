package model

import "strings"

// Conversation roles. The model provider only distinguishes the user side
// from the model side; tool results travel back on the user side.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// FunctionCall represents a tool invocation requested by the model.
type FunctionCall struct {
	ID   string         `json:"id,omitempty" bson:"id,omitempty"`
	Name string         `json:"name" bson:"name"`
	Args map[string]any `json:"args,omitempty" bson:"args,omitempty"`
}

// FunctionResponse represents the result of a tool invocation, matched to
// its FunctionCall by ID and name.
type FunctionResponse struct {
	ID       string         `json:"id,omitempty" bson:"id,omitempty"`
	Name     string         `json:"name" bson:"name"`
	Response map[string]any `json:"response,omitempty" bson:"response,omitempty"`
}

// Part is a single piece of a conversation turn.
type Part struct {
	Text             string            `json:"text,omitempty" bson:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"function_call,omitempty" bson:"function_call,omitempty"`
	FunctionResponse *FunctionResponse `json:"function_response,omitempty" bson:"function_response,omitempty"`
}

// Content is a single conversation turn, composed of one or more parts.
type Content struct {
	Parts []Part `json:"parts" bson:"parts"`
	Role  string `json:"role" bson:"role"`
}

// NewUserContent returns a user turn carrying plain text.
func NewUserContent(text string) Content {
	return Content{
		Role:  RoleUser,
		Parts: []Part{{Text: text}},
	}
}

// NewFunctionResponseContent packs tool results into one user-side turn,
// preserving the order the corresponding calls were issued in.
func NewFunctionResponseContent(responses []FunctionResponse) Content {
	parts := make([]Part, 0, len(responses))
	for i := range responses {
		parts = append(parts, Part{FunctionResponse: &responses[i]})
	}
	return Content{Role: RoleUser, Parts: parts}
}

// Text concatenates all text parts of the turn.
func (c Content) Text() string {
	var sb strings.Builder
	for _, p := range c.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// FunctionCalls returns the tool invocations requested in this turn, in
// the order they appear.
func (c Content) FunctionCalls() []*FunctionCall {
	var calls []*FunctionCall
	for _, p := range c.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}
