package kernel

import "github.com/Woland2k/semantic-kernel/transport"

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	transportName string
	client        transport.Transport
	model         string
	systemPrompt  string
	temperature   *float64
	maxTokens     *int
	topP          *float64
	stopSequences []string
	conversation  *Conversation
}

// WithTransport selects a registered transport by name (e.g. "openai").
func WithTransport(name string) Option {
	return func(c *sessionConfig) {
		c.transportName = name
	}
}

// WithTransportClient supplies a transport instance directly, bypassing
// the named registry.
func WithTransportClient(t transport.Transport) Option {
	return func(c *sessionConfig) {
		c.client = t
	}
}

// WithModel sets the model to use (e.g. "gpt-4o-mini").
func WithModel(name string) Option {
	return func(c *sessionConfig) {
		c.model = name
	}
}

// WithSystemPrompt sets a system message sent ahead of the conversation
// on every round.
func WithSystemPrompt(prompt string) Option {
	return func(c *sessionConfig) {
		c.systemPrompt = prompt
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *sessionConfig) {
		c.temperature = &t
	}
}

// WithMaxTokens sets the maximum tokens in the response.
func WithMaxTokens(n int) Option {
	return func(c *sessionConfig) {
		c.maxTokens = &n
	}
}

// WithTopP sets the nucleus sampling parameter (0.0 to 1.0).
func WithTopP(p float64) Option {
	return func(c *sessionConfig) {
		c.topP = &p
	}
}

// WithStopSequences sets stop sequences to end generation.
func WithStopSequences(seqs ...string) Option {
	return func(c *sessionConfig) {
		c.stopSequences = seqs
	}
}

// WithConversation seeds the session with an existing conversation
// instead of starting empty.
func WithConversation(conv *Conversation) Option {
	return func(c *sessionConfig) {
		c.conversation = conv
	}
}

// RoundOption configures a single round. The function-call policy is
// scoped to the round; no settings object is shared or mutated between
// rounds.
type RoundOption func(*roundConfig)

type roundConfig struct {
	choice transport.FunctionChoice
}

// WithForcedFunction requires the model to call the named function this
// round, e.g. "TimePlugin-Date".
func WithForcedFunction(qualifiedName string) RoundOption {
	return func(c *roundConfig) {
		c.choice = transport.FunctionChoice{
			Mode: transport.ChoiceForced,
			Name: qualifiedName,
		}
	}
}

// WithoutFunctions forbids function calls this round even though
// declarations are still listed.
func WithoutFunctions() RoundOption {
	return func(c *roundConfig) {
		c.choice = transport.FunctionChoice{Mode: transport.ChoiceNone}
	}
}
