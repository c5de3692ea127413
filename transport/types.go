package transport

import "encoding/json"

// Request is a transport-agnostic completion request. Messages always
// carry the full conversation; no server-side memory is assumed.
type Request struct {
	Model          string
	Messages       []Message
	Functions      []FunctionDef
	FunctionChoice FunctionChoice
	Temperature    *float64
	MaxTokens      *int
	TopP           *float64
	StopSequences  []string
}

// Message is a single conversation message on the wire.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message author.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response is the service's reply for one round. Content and
// FunctionCall are independent: either, both, or neither may be set.
type Response struct {
	Content      string
	FunctionCall *FunctionCall
	FinishReason FinishReason
	Usage        Usage
}

// FinishReason indicates why the model stopped generating.
type FinishReason string

const (
	FinishReasonStop         FinishReason = "stop"
	FinishReasonFunctionCall FinishReason = "function_call"
	FinishReasonLength       FinishReason = "length"
)

// FunctionCall is a function invocation requested by the model. Name
// and Arguments come from model output and are untrusted.
type FunctionCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON
}

// FunctionDef declares a callable function to the model.
type FunctionDef struct {
	Name        string
	Description string
	Parameters  json.RawMessage // JSON Schema
}

// FunctionChoice is the per-round function-call policy.
type FunctionChoice struct {
	Mode ChoiceMode
	Name string // required when Mode == ChoiceForced
}

// ChoiceMode selects how the model may use declared functions.
type ChoiceMode string

const (
	// ChoiceAuto lets the model decide whether to call a function.
	ChoiceAuto ChoiceMode = "auto"
	// ChoiceNone forbids function calls for the round.
	ChoiceNone ChoiceMode = "none"
	// ChoiceForced requires the model to call the named function.
	ChoiceForced ChoiceMode = "forced"
)

// Usage contains token usage statistics.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
