package timeplugin

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Woland2k/semantic-kernel/kernel"
	"github.com/Woland2k/semantic-kernel/transport"
)

func fixedClock() func() time.Time {
	// A Wednesday afternoon.
	at := time.Date(2024, time.March, 13, 15, 4, 5, 0, time.UTC)
	return func() time.Time { return at }
}

func TestFunctions(t *testing.T) {
	fns := Functions(WithClock(fixedClock()))
	require.Len(t, fns, 5)

	byName := make(map[string]kernel.Function, len(fns))
	for _, fn := range fns {
		byName[fn.Name()] = fn
	}

	tests := []struct {
		fn   string
		args string
		want string
	}{
		{fn: "Date", args: `{}`, want: "March 13, 2024"},
		{fn: "Today", args: `{}`, want: "March 13, 2024"},
		{fn: "Time", args: `{}`, want: "3:04:05 PM"},
		{fn: "Now", args: `{}`, want: "Wednesday, March 13, 2024 3:04 PM"},
		{fn: "DayOfWeek", args: `{}`, want: "Wednesday"},
		{fn: "Date", args: `{"format": "2006-01-02"}`, want: "2024-03-13"},
	}

	for _, tt := range tests {
		t.Run(tt.fn+" "+tt.args, func(t *testing.T) {
			fn, ok := byName[tt.fn]
			require.True(t, ok)

			out, err := fn.Execute(context.Background(), json.RawMessage(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFunctions_DeclarationSchema(t *testing.T) {
	fns := Functions()

	s := fns[0].Parameters()
	require.NotNil(t, s)
	format, ok := s.Properties.Get("format")
	require.True(t, ok)
	assert.Equal(t, "string", format.Type)
	assert.Empty(t, s.Required)
}

// scriptedTransport answers a forced date request the way a
// chat-completion service would: first a function call, then a reply
// grounded on its result.
type scriptedTransport struct {
	requests []*transport.Request
}

func (s *scriptedTransport) Name() string { return "scripted" }

func (s *scriptedTransport) Send(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	s.requests = append(s.requests, req)
	if req.FunctionChoice.Mode == transport.ChoiceForced {
		return &transport.Response{
			FunctionCall: &transport.FunctionCall{
				ID:        "call-1",
				Name:      req.FunctionChoice.Name,
				Arguments: `{}`,
			},
			FinishReason: transport.FinishReasonFunctionCall,
		}, nil
	}
	return &transport.Response{Content: "It is a lovely day."}, nil
}

func TestForcedDateRound(t *testing.T) {
	registry := kernel.NewRegistry()
	registry.Register(Namespace, Functions(WithClock(fixedClock()))...)

	tp := &scriptedTransport{}
	sess, err := kernel.NewSession(registry,
		kernel.WithTransportClient(tp),
		kernel.WithModel("gpt-4o-mini"),
	)
	require.NoError(t, err)

	round, err := sess.Send(context.Background(), "What day is today?",
		kernel.WithForcedFunction("TimePlugin-Date"))
	require.NoError(t, err)
	require.NoError(t, round.FunctionErr)

	require.NotNil(t, round.FunctionCall)
	assert.Equal(t, "TimePlugin-Date", round.FunctionCall.Name)

	// The outcome lands in the conversation as "Month day, year".
	datePattern := regexp.MustCompile(`^[A-Z][a-z]+ \d{1,2}, \d{4}$`)
	assert.Regexp(t, datePattern, round.FunctionResult)

	turns := sess.Conversation().Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, kernel.TurnUser, turns[0].Kind)
	assert.Equal(t, kernel.TurnFunctionResult, turns[1].Kind)
	assert.Equal(t, "March 13, 2024", turns[1].Text)

	// The declarations went out under qualified names.
	require.Len(t, tp.requests, 1)
	names := make([]string, 0, len(tp.requests[0].Functions))
	for _, def := range tp.requests[0].Functions {
		names = append(names, def.Name)
	}
	assert.Contains(t, names, "TimePlugin-Date")
	assert.Contains(t, names, "TimePlugin-DayOfWeek")

	// A follow-up round resends the function result with the history.
	round, err = sess.Send(context.Background(), "Thanks!")
	require.NoError(t, err)
	assert.Equal(t, "It is a lovely day.", round.Text)

	msgs := tp.requests[1].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, "March 13, 2024", msgs[1].Content)
}
