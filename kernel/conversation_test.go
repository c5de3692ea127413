package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Woland2k/semantic-kernel/transport"
)

func TestTurnConstructors(t *testing.T) {
	assert.Equal(t, Turn{Kind: TurnUser, Text: "hi"}, UserTurn("hi"))
	assert.Equal(t, Turn{Kind: TurnAssistant, Text: "hello"}, AssistantTurn("hello"))
	assert.Equal(t, Turn{Kind: TurnFunctionResult, Text: "42"}, FunctionResultTurn("42"))
}

func TestConversation_Append(t *testing.T) {
	conv := NewConversation()
	assert.Equal(t, 0, conv.Len())

	conv.Append(UserTurn("one"))
	conv.Append(AssistantTurn("two"), FunctionResultTurn("three"))

	turns := conv.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, "one", turns[0].Text)
	assert.Equal(t, "three", turns[2].Text)
}

func TestConversation_TurnsReturnsCopy(t *testing.T) {
	conv := NewConversation(UserTurn("original"))

	turns := conv.Turns()
	turns[0].Text = "mutated"

	assert.Equal(t, "original", conv.Turns()[0].Text)
}

func TestConversation_Messages(t *testing.T) {
	conv := NewConversation(
		UserTurn("question"),
		AssistantTurn("answer"),
		FunctionResultTurn("result"),
	)

	msgs := conv.Messages()
	require.Len(t, msgs, 3)

	assert.Equal(t, transport.RoleUser, msgs[0].Role)
	assert.Equal(t, transport.RoleAssistant, msgs[1].Role)
	// Function results go out as assistant-authored messages.
	assert.Equal(t, transport.RoleAssistant, msgs[2].Role)
	assert.Equal(t, "result", msgs[2].Content)
}
