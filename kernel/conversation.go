package kernel

import "github.com/Woland2k/semantic-kernel/transport"

// TurnKind tags who authored a conversation turn.
type TurnKind string

const (
	TurnUser           TurnKind = "user"
	TurnAssistant      TurnKind = "assistant"
	TurnFunctionResult TurnKind = "function"
)

// Turn is one entry in the conversation log.
type Turn struct {
	Kind TurnKind
	Text string
}

// UserTurn creates a user turn.
func UserTurn(text string) Turn {
	return Turn{Kind: TurnUser, Text: text}
}

// AssistantTurn creates an assistant turn.
func AssistantTurn(text string) Turn {
	return Turn{Kind: TurnAssistant, Text: text}
}

// FunctionResultTurn creates a turn holding a normalized function
// outcome. On the wire it is sent as assistant-authored, since chat
// transports only recognize user and assistant roles here.
func FunctionResultTurn(text string) Turn {
	return Turn{Kind: TurnFunctionResult, Text: text}
}

// Conversation is an append-only ordered log of turns. The full log is
// re-sent on every round; no server-side memory is assumed.
type Conversation struct {
	turns []Turn
}

// NewConversation creates a conversation, optionally seeded with turns.
func NewConversation(turns ...Turn) *Conversation {
	return &Conversation{turns: turns}
}

// Append adds turns to the end of the log.
func (c *Conversation) Append(turns ...Turn) {
	c.turns = append(c.turns, turns...)
}

// Turns returns a copy of the log.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	return len(c.turns)
}

// Messages converts the log to wire messages. Function-result turns
// map to the assistant role.
func (c *Conversation) Messages() []transport.Message {
	msgs := make([]transport.Message, 0, len(c.turns))
	for _, t := range c.turns {
		role := transport.RoleUser
		switch t.Kind {
		case TurnAssistant, TurnFunctionResult:
			role = transport.RoleAssistant
		}
		msgs = append(msgs, transport.Message{Role: role, Content: t.Text})
	}
	return msgs
}
