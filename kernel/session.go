// Package kernel orchestrates chat-completion function calling: it
// sends a conversation plus function declarations to a completion
// transport, reconciles the model's function-call decision against a
// registry, and folds outcomes back into the conversation.
package kernel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Woland2k/semantic-kernel/transport"
)

// Session runs orchestration rounds against one conversation. Rounds
// are strictly sequential; a Session must not be shared across
// goroutines.
type Session struct {
	registry *Registry
	conv     *Conversation
	cfg      *sessionConfig
}

// NewSession creates a session over the given registry.
//
// Example:
//
//	registry := kernel.NewRegistry()
//	registry.Register("TimePlugin", timeplugin.Functions()...)
//
//	sess, err := kernel.NewSession(registry,
//	    kernel.WithTransport("openai"),
//	    kernel.WithModel("gpt-4o-mini"),
//	)
func NewSession(registry *Registry, opts ...Option) (*Session, error) {
	cfg := &sessionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.transportName == "" && cfg.client == nil {
		return nil, ErrTransportRequired
	}
	if cfg.model == "" {
		return nil, ErrModelRequired
	}

	conv := cfg.conversation
	if conv == nil {
		conv = NewConversation()
	}

	if registry == nil {
		registry = NewRegistry()
	}

	return &Session{
		registry: registry,
		conv:     conv,
		cfg:      cfg,
	}, nil
}

// Conversation returns the session's conversation log.
func (s *Session) Conversation() *Conversation {
	return s.conv
}

// Registry returns the session's function registry.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Round reports the outcome of one orchestration round. Text and
// FunctionResult are whatever was surfaced and appended; FunctionErr
// carries a recovered per-round failure (FunctionNotFoundError,
// MalformedArgumentsError, or InvocationError) and never aborts the
// session.
type Round struct {
	Text           string
	FunctionCall   *transport.FunctionCall
	FunctionResult string
	FunctionErr    error
}

// Send runs one blocking round: append the user turn, send the full
// conversation plus declarations, then reconcile the response.
//
// A transport failure returns a *TransportError; the user turn stays
// appended, since the user did say it. All function-level failures are
// reported in the Round instead of an error.
func (s *Session) Send(ctx context.Context, prompt string, opts ...RoundOption) (*Round, error) {
	tp, err := s.transport()
	if err != nil {
		return nil, err
	}

	s.conv.Append(UserTurn(prompt))

	resp, err := tp.Send(ctx, s.buildRequest(opts))
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	round := &Round{}
	if resp.Content != "" {
		round.Text = resp.Content
		s.conv.Append(AssistantTurn(resp.Content))
	}
	if resp.FunctionCall != nil {
		s.reconcile(ctx, resp.FunctionCall, round)
	}
	return round, nil
}

// reconcile resolves and executes a requested function call, appending
// the normalized outcome when there is one. Failures are recorded on
// the round; the conversation is left untouched on any failure.
func (s *Session) reconcile(ctx context.Context, call *transport.FunctionCall, round *Round) {
	round.FunctionCall = call

	fn, ok := s.registry.Resolve(call.Name)
	if !ok {
		round.FunctionErr = &FunctionNotFoundError{Name: call.Name}
		return
	}

	args, err := validateArguments(call.Arguments)
	if err != nil {
		round.FunctionErr = &MalformedArgumentsError{
			Name:      call.Name,
			Arguments: call.Arguments,
			Cause:     err,
		}
		return
	}

	out, err := fn.Execute(ctx, args)
	if err != nil {
		round.FunctionErr = &InvocationError{Name: call.Name, Cause: err}
		return
	}

	text, err := normalizeOutcome(out)
	if err != nil {
		round.FunctionErr = &InvocationError{Name: call.Name, Cause: err}
		return
	}
	if text != "" {
		round.FunctionResult = text
		s.conv.Append(FunctionResultTurn(text))
	}
}

// validateArguments checks that the model's argument payload is a JSON
// object before it reaches the function. Empty payloads become "{}".
func validateArguments(raw string) (json.RawMessage, error) {
	if raw == "" {
		return json.RawMessage("{}"), nil
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

func (s *Session) transport() (transport.Transport, error) {
	if s.cfg.client != nil {
		return s.cfg.client, nil
	}
	tp, err := transport.Get(s.cfg.transportName)
	if err != nil {
		return nil, fmt.Errorf("getting transport: %w", err)
	}
	return tp, nil
}

func (s *Session) buildRequest(opts []RoundOption) *transport.Request {
	rc := roundConfig{
		choice: transport.FunctionChoice{Mode: transport.ChoiceAuto},
	}
	for _, opt := range opts {
		opt(&rc)
	}

	req := &transport.Request{
		Model:          s.cfg.model,
		Functions:      s.registry.functionDefs(),
		FunctionChoice: rc.choice,
		Temperature:    s.cfg.temperature,
		MaxTokens:      s.cfg.maxTokens,
		TopP:           s.cfg.topP,
		StopSequences:  s.cfg.stopSequences,
	}

	if s.cfg.systemPrompt != "" {
		req.Messages = append(req.Messages, transport.Message{
			Role:    transport.RoleSystem,
			Content: s.cfg.systemPrompt,
		})
	}
	req.Messages = append(req.Messages, s.conv.Messages()...)

	return req
}
