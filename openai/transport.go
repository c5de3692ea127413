// Package openai implements the completion transport for the OpenAI
// chat completions API.
package openai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/Woland2k/semantic-kernel/transport"
)

func init() {
	transport.Register("openai", func() (transport.Transport, error) {
		return New()
	})
}

// Transport implements transport.StreamingTransport over the OpenAI
// chat completions API.
type Transport struct {
	client *client
}

// Option configures the OpenAI transport.
type Option func(*config)

type config struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *config) {
		c.apiKey = key
	}
}

// WithBaseURL sets a custom base URL, e.g. for a compatible proxy.
func WithBaseURL(url string) Option {
	return func(c *config) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.httpClient = client
	}
}

// New creates an OpenAI transport. The API key falls back to the
// OPENAI_API_KEY environment variable.
func New(opts ...Option) (*Transport, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.apiKey == "" {
		cfg.apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.apiKey == "" {
		return nil, &APIError{
			Message: "OpenAI API key required: set OPENAI_API_KEY or use WithAPIKey",
		}
	}

	return &Transport{
		client: newClient(cfg.apiKey, cfg.baseURL, cfg.httpClient),
	}, nil
}

// Name returns the transport identifier.
func (t *Transport) Name() string {
	return "openai"
}

// Send implements transport.Transport.
func (t *Transport) Send(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	apiResp, err := t.client.chatCompletion(ctx, buildRequest(req))
	if err != nil {
		return nil, err
	}
	return convertResponse(apiResp), nil
}

// SendStream implements transport.StreamingTransport.
func (t *Transport) SendStream(ctx context.Context, req *transport.Request) (transport.ResponseStream, error) {
	reader, err := t.client.chatCompletionStream(ctx, buildRequest(req))
	if err != nil {
		return nil, err
	}

	return &stream{
		reader:      reader,
		accumulated: &transport.Response{},
	}, nil
}

// buildRequest converts a transport.Request to the wire form.
func buildRequest(req *transport.Request) *chatCompletionRequest {
	apiReq := &chatCompletionRequest{
		Model:       req.Model,
		Messages:    make([]message, 0, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		TopP:        req.TopP,
		Stop:        req.StopSequences,
	}

	for _, msg := range req.Messages {
		apiReq.Messages = append(apiReq.Messages, message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	for _, fn := range req.Functions {
		apiReq.Tools = append(apiReq.Tools, toolDef{
			Type: "function",
			Function: functionDef{
				Name:        fn.Name,
				Description: fn.Description,
				Parameters:  fn.Parameters,
			},
		})
	}

	// tool_choice is only meaningful when tools are declared.
	if len(apiReq.Tools) > 0 {
		switch req.FunctionChoice.Mode {
		case transport.ChoiceNone:
			apiReq.ToolChoice = "none"
		case transport.ChoiceForced:
			apiReq.ToolChoice = forcedToolChoice{
				Type:     "function",
				Function: forcedFunction{Name: req.FunctionChoice.Name},
			}
		}
	}

	return apiReq
}

// convertResponse converts a wire response to a transport.Response.
// Only the first requested tool call is kept: the orchestration loop
// reconciles a single function call per round.
func convertResponse(resp *chatCompletionResponse) *transport.Response {
	if len(resp.Choices) == 0 {
		return &transport.Response{}
	}

	choice := resp.Choices[0]
	result := &transport.Response{
		Content:      choice.Message.Content,
		FinishReason: convertFinishReason(choice.FinishReason),
		Usage: transport.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}

	if len(choice.Message.ToolCalls) > 0 {
		tc := choice.Message.ToolCalls[0]
		result.FunctionCall = &transport.FunctionCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		}
	}

	return result
}

func convertFinishReason(reason string) transport.FinishReason {
	switch reason {
	case "tool_calls", "function_call":
		return transport.FinishReasonFunctionCall
	case "length":
		return transport.FinishReasonLength
	default:
		return transport.FinishReasonStop
	}
}

// stream implements transport.ResponseStream. Tool-call argument JSON
// arrives split across fragments and is assembled into a single
// aggregated call, queryable from Accumulated after the stream ends.
type stream struct {
	reader      *sseReader
	accumulated *transport.Response
	call        *transport.FunctionCall
	current     *transport.Fragment
	err         error
	done        bool
}

func (s *stream) Next() bool {
	if s.done || s.err != nil {
		return false
	}

	chunk, err := s.reader.readChunk()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.done = true
			s.accumulated.FunctionCall = s.call
			return false
		}
		s.err = err
		return false
	}

	s.current = &transport.Fragment{}

	if len(chunk.Choices) > 0 {
		choice := chunk.Choices[0]
		delta := choice.Delta

		if delta.Content != "" {
			s.current.Delta = delta.Content
			s.accumulated.Content += delta.Content
		}

		for _, tc := range delta.ToolCalls {
			if tc.Index != 0 {
				continue // single call per round
			}
			if s.call == nil {
				s.call = &transport.FunctionCall{}
			}
			if tc.ID != "" {
				s.call.ID = tc.ID
			}
			if tc.Function.Name != "" {
				s.call.Name = tc.Function.Name
			}
			if tc.Function.Arguments != "" {
				s.call.Arguments += tc.Function.Arguments
				s.current.FunctionCallDelta = &transport.FunctionCallDelta{
					ID:             s.call.ID,
					Name:           s.call.Name,
					ArgumentsDelta: tc.Function.Arguments,
				}
			}
		}

		if choice.FinishReason != nil {
			s.current.FinishReason = convertFinishReason(*choice.FinishReason)
			s.accumulated.FinishReason = s.current.FinishReason
		}
	}

	if chunk.Usage != nil {
		s.accumulated.Usage = transport.Usage{
			PromptTokens:     chunk.Usage.PromptTokens,
			CompletionTokens: chunk.Usage.CompletionTokens,
			TotalTokens:      chunk.Usage.TotalTokens,
		}
	}

	return true
}

func (s *stream) Current() *transport.Fragment {
	return s.current
}

func (s *stream) Err() error {
	return s.err
}

func (s *stream) Close() error {
	return s.reader.Close()
}

func (s *stream) Accumulated() *transport.Response {
	return s.accumulated
}
